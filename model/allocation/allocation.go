package allocation

import (
	"time"

	"github.com/viant/allocor/internal/clock"
)

// Service instance statuses.
const (
	ServiceStatusPending = "pending"
	ServiceStatusRunning = "running"
)

// Worker descriptor statuses.
const (
	WorkerStatusPending    = "pending"
	WorkerStatusActive     = "active"
	WorkerStatusDestroying = "destroying"
)

// ServiceInstance describes a running auxiliary service endpoint. Instances
// are shared: many allocations may reference the same instance, none owns it.
type ServiceInstance struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint,omitempty"`
	Status   string `json:"status"`
	Port     int    `json:"port,omitempty"`
}

// WorkerDescriptor describes a worker granted to exactly one allocation.
type WorkerDescriptor struct {
	ID       string  `json:"workerID"`
	CPU      float64 `json:"cpu"`
	MemoryMB int     `json:"memoryMB"`
	Status   string  `json:"status"`
	Endpoint string  `json:"endpoint,omitempty"`
}

// Allocation is a tracked grant of resources and services to one job.
type Allocation struct {
	ID       string   `json:"id"`
	JobID    string   `json:"jobID"`
	State    State    `json:"state"`
	Priority Priority `json:"priority"`

	// Requested resources
	Services         []string `json:"services,omitempty"`
	WorkersRequested int      `json:"workersRequested,omitempty"`

	// Granted resources
	ServiceInstances []*ServiceInstance  `json:"serviceInstances,omitempty"`
	Workers          []*WorkerDescriptor `json:"workers,omitempty"`

	// Committed totals, reversed on release with the same quantities
	CPU      float64 `json:"cpu,omitempty"`
	MemoryMB int     `json:"memoryMB,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	ActivatedAt *time.Time `json:"activatedAt,omitempty"`
	ReleasedAt  *time.Time `json:"releasedAt,omitempty"`
	TTLSeconds  int        `json:"ttlSeconds"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// New creates an allocation record in the Pending state.
func New(id, jobID string, services []string, workers int, priority Priority, ttlSeconds int, metadata map[string]interface{}) *Allocation {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &Allocation{
		ID:               id,
		JobID:            jobID,
		State:            StatePending,
		Priority:         priority,
		Services:         services,
		WorkersRequested: workers,
		CreatedAt:        clock.Now(),
		TTLSeconds:       ttlSeconds,
		Metadata:         metadata,
	}
}

// Activate marks the allocation active and stamps the grant time.
func (a *Allocation) Activate() {
	now := clock.Now()
	a.ActivatedAt = &now
	a.State = StateActive
}

// Release marks the allocation released and stamps the release time.
func (a *Allocation) Release() {
	now := clock.Now()
	a.ReleasedAt = &now
	a.State = StateReleased
}

// Fail marks the allocation failed, recording the reason in metadata under
// the supplied key so that failed records stay auditable.
func (a *Allocation) Fail(key string, err error) {
	if err != nil {
		if a.Metadata == nil {
			a.Metadata = make(map[string]interface{})
		}
		a.Metadata[key] = err.Error()
	}
	a.State = StateFailed
}

// IsExpired reports whether the allocation exceeded its TTL. Terminal
// allocations never expire. The reference time prefers the grant time over
// the request time so that queueing delay does not erode the usable TTL.
func (a *Allocation) IsExpired() bool {
	if a.State.IsTerminal() {
		return false
	}
	reference := a.CreatedAt
	if a.ActivatedAt != nil {
		reference = *a.ActivatedAt
	}
	expiry := reference.Add(time.Duration(a.TTLSeconds) * time.Second)
	return clock.Now().After(expiry)
}

// AgeSeconds returns the allocation age since creation.
func (a *Allocation) AgeSeconds() float64 {
	return clock.Now().Sub(a.CreatedAt).Seconds()
}

// Clone creates a deep copy of the allocation so that callers can inspect it
// without racing the engine. Granted instances and workers are copied by
// value; metadata values are shared (treated as immutable).
func (a *Allocation) Clone() *Allocation {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Services != nil {
		clone.Services = append([]string(nil), a.Services...)
	}
	if a.ServiceInstances != nil {
		clone.ServiceInstances = make([]*ServiceInstance, len(a.ServiceInstances))
		for i, instance := range a.ServiceInstances {
			cp := *instance
			clone.ServiceInstances[i] = &cp
		}
	}
	if a.Workers != nil {
		clone.Workers = make([]*WorkerDescriptor, len(a.Workers))
		for i, worker := range a.Workers {
			cp := *worker
			clone.Workers[i] = &cp
		}
	}
	if a.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(a.Metadata))
		for k, v := range a.Metadata {
			clone.Metadata[k] = v
		}
	}
	if a.ActivatedAt != nil {
		t := *a.ActivatedAt
		clone.ActivatedAt = &t
	}
	if a.ReleasedAt != nil {
		t := *a.ReleasedAt
		clone.ReleasedAt = &t
	}
	return &clone
}

// Summary is the listing projection of an allocation.
type Summary struct {
	AllocationID string   `json:"allocationID"`
	JobID        string   `json:"jobID"`
	State        State    `json:"state"`
	Priority     Priority `json:"priority"`
	Workers      int      `json:"workers"`
	AgeSeconds   float64  `json:"ageSeconds"`
	IsExpired    bool     `json:"isExpired"`
}

// Summarize builds the listing projection.
func (a *Allocation) Summarize() Summary {
	return Summary{
		AllocationID: a.ID,
		JobID:        a.JobID,
		State:        a.State,
		Priority:     a.Priority,
		Workers:      len(a.Workers),
		AgeSeconds:   a.AgeSeconds(),
		IsExpired:    a.IsExpired(),
	}
}

package allocation

import "time"

// Grant statuses returned by the request operation.
const (
	GrantStatusActive = "active"
	GrantStatusFailed = "failed"
)

// Release statuses returned by the release operation.
const (
	ReleaseStatusReleased        = "released"
	ReleaseStatusAlreadyReleased = "already_released"
	ReleaseStatusError           = "error"
)

// Committed carries the resource totals committed for a grant.
type Committed struct {
	CPU      float64 `json:"cpu"`
	MemoryMB int     `json:"memoryMB"`
	Workers  int     `json:"workers"`
}

// ServiceGrant is the caller-facing view of a granted auxiliary service.
type ServiceGrant struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Status   string `json:"status"`
}

// WorkerGrant is the caller-facing view of a granted worker.
type WorkerGrant struct {
	WorkerID string  `json:"workerID"`
	Endpoint string  `json:"endpoint"`
	CPU      float64 `json:"cpu"`
	MemoryMB int     `json:"memoryMB"`
}

// GrantResult is the outcome of a resource request.
type GrantResult struct {
	AllocationID string         `json:"allocationID"`
	Status       string         `json:"status"`
	Error        string         `json:"error,omitempty"`
	JobID        string         `json:"jobID,omitempty"`
	Services     []ServiceGrant `json:"services,omitempty"`
	Workers      []WorkerGrant  `json:"workers,omitempty"`
	Committed    Committed      `json:"committed"`
	TTLSeconds   int            `json:"ttlSeconds,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ReleaseResult is the outcome of a release.
type ReleaseResult struct {
	Status          string     `json:"status"`
	AllocationID    string     `json:"allocationID,omitempty"`
	JobID           string     `json:"jobID,omitempty"`
	Error           string     `json:"error,omitempty"`
	WorkersReleased int        `json:"workersReleased"`
	CPUFreed        float64    `json:"cpuFreed"`
	MemoryFreedMB   int        `json:"memoryFreedMB"`
	ReleasedAt      *time.Time `json:"releasedAt,omitempty"`
	DurationSeconds float64    `json:"durationSeconds"`
}

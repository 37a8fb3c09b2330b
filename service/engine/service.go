package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/viant/allocor/internal/idgen"
	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/model/capacity"
	"github.com/viant/allocor/policy"
	"github.com/viant/allocor/service/dao"
	"github.com/viant/allocor/service/event"
	"github.com/viant/allocor/service/ledger"
	"github.com/viant/allocor/service/messaging"
	"github.com/viant/allocor/service/provisioner"
	"github.com/viant/allocor/service/registry"
	"github.com/viant/allocor/tracing"
)

// DefaultTTLSeconds applies when a request does not specify a TTL.
const DefaultTTLSeconds = 3600

// Request describes a resource request for a job.
type Request struct {
	JobID      string                 `json:"jobID"`
	Services   []string               `json:"services,omitempty"`
	Workers    int                    `json:"workers,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
	TTLSeconds int                    `json:"ttlSeconds,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Service is the allocation lifecycle engine. It orchestrates
// request->admission->commit->active and active->releasing->released
// transitions against a single capacity ledger and allocation registry.
//
// All mutating operations are serialised under one mutex so that an
// admission check and its commit form a single critical section; no other
// request's commit can interleave between them. Read-only queries go
// straight to the ledger snapshot, the registry and the snapshot-isolated
// allocation store: state transitions happen on private copies saved back
// whole, so a reader never observes a record mid-transition.
type Service struct {
	mux         sync.Mutex
	ledger      *ledger.Service
	registry    *registry.Service
	provisioner *provisioner.Service
	allocations dao.Service[string, allocation.Allocation]
	teardown    messaging.Queue[allocation.WorkerDescriptor]
	events      *event.Service
}

// New creates a lifecycle engine over the supplied collaborators.
func New(
	capacityLedger *ledger.Service,
	serviceRegistry *registry.Service,
	workerProvisioner *provisioner.Service,
	allocations dao.Service[string, allocation.Allocation],
	options ...Option,
) *Service {
	ret := &Service{
		ledger:      capacityLedger,
		registry:    serviceRegistry,
		provisioner: workerProvisioner,
		allocations: allocations,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Request admits, grants and activates a resource allocation. Admission
// failures are returned as failed results with the record retained for
// auditability; no resources are touched on that path.
func (s *Service) Request(ctx context.Context, request Request) (*allocation.GrantResult, error) {
	ctx, span := tracing.StartSpan(ctx, "allocation.request")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	priority := allocation.ParsePriority(request.Priority)
	ttl := request.TTLSeconds
	if ttl <= 0 {
		ttl = DefaultTTLSeconds
	}

	record := allocation.New(idgen.Allocation(), request.JobID, request.Services, request.Workers, priority, ttl, request.Metadata)
	span.WithAttributes(map[string]string{"allocation.id": record.ID, "job.id": request.JobID})

	// Policy filtering happens before any side effect.
	if pol := policy.FromContext(ctx); pol != nil {
		for _, name := range request.Services {
			if !pol.IsAllowed(name) {
				return s.failRequest(ctx, record, fmt.Errorf("service %q blocked by policy", name))
			}
		}
		if pol.Mode == policy.ModeDeny && len(request.Services) == 0 {
			return s.failRequest(ctx, record, errors.New("request blocked by policy"))
		}
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	workerCPU, workerMemory := s.provisioner.Shape()
	delta := ledger.Delta{Allocations: 1}
	if request.Workers > 0 {
		delta.Workers = request.Workers
		delta.CPU = float64(request.Workers) * workerCPU
		delta.MemoryMB = request.Workers * workerMemory

		// Check and commit stay inside this critical section; another
		// request's commit can never interleave between them.
		if ok, reason := s.ledger.CheckAdmission(delta); !ok {
			result, failErr := s.failRequest(ctx, record, errors.New(reason))
			return result, failErr
		}
	}

	for _, name := range request.Services {
		record.ServiceInstances = append(record.ServiceInstances, s.registry.Acquire(name))
	}

	if request.Workers > 0 {
		record.Workers = s.provisioner.Synthesize(request.Workers, request.JobID)
		record.CPU = delta.CPU
		record.MemoryMB = delta.MemoryMB
	}
	s.ledger.Commit(delta)

	record.Activate()
	if err = s.allocations.Save(ctx, record); err != nil {
		// Roll the commit back so the ledger is not left charged for a
		// record that was never persisted.
		s.ledger.Reverse(delta)
		record.Fail("error", err)
		return &allocation.GrantResult{AllocationID: record.ID, Status: allocation.GrantStatusFailed, Error: err.Error(), CreatedAt: record.CreatedAt}, err
	}

	s.publish(event.TypeGranted, record)
	return grantResult(record), nil
}

// failRequest records an admission or policy failure and returns the failed
// result. Failed allocations are retained, not discarded.
func (s *Service) failRequest(ctx context.Context, record *allocation.Allocation, cause error) (*allocation.GrantResult, error) {
	record.Fail("error", cause)
	if err := s.allocations.Save(ctx, record); err != nil {
		return nil, err
	}
	s.publish(event.TypeFailed, record)
	return &allocation.GrantResult{
		AllocationID: record.ID,
		Status:       allocation.GrantStatusFailed,
		Error:        cause.Error(),
		CreatedAt:    record.CreatedAt,
	}, nil
}

// Release reverses an allocation's ledger delta and transitions it to
// Released. Releasing an already released (or releasing) allocation yields
// an idempotent already_released result; the ledger is only ever reversed
// once per allocation.
func (s *Service) Release(ctx context.Context, allocationID string) (*allocation.ReleaseResult, error) {
	return s.release(ctx, allocationID, event.TypeReleased)
}

func (s *Service) release(ctx context.Context, allocationID string, eventType string) (*allocation.ReleaseResult, error) {
	ctx, span := tracing.StartSpan(ctx, "allocation.release")
	var err error
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"allocation.id": allocationID})

	s.mux.Lock()
	defer s.mux.Unlock()

	record, err := s.allocations.Load(ctx, allocationID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return &allocation.ReleaseResult{
				Status: allocation.ReleaseStatusError,
				Error:  fmt.Sprintf("allocation %s not found", allocationID),
			}, err
		}
		return nil, err
	}

	switch record.State {
	case allocation.StateReleased, allocation.StateReleasing:
		return &allocation.ReleaseResult{
			Status:       allocation.ReleaseStatusAlreadyReleased,
			AllocationID: record.ID,
			ReleasedAt:   record.ReleasedAt,
		}, nil
	case allocation.StateFailed:
		err = fmt.Errorf("allocation %s is failed and holds no resources", allocationID)
		return &allocation.ReleaseResult{
			Status:       allocation.ReleaseStatusError,
			AllocationID: record.ID,
			Error:        err.Error(),
		}, err
	}

	record.State = allocation.StateReleasing
	if err = s.allocations.Save(ctx, record); err != nil {
		return &allocation.ReleaseResult{
			Status:       allocation.ReleaseStatusError,
			AllocationID: record.ID,
			Error:        err.Error(),
		}, err
	}

	workersReleased := len(record.Workers)
	delta := ledger.Delta{
		Workers:     workersReleased,
		CPU:         record.CPU,
		MemoryMB:    record.MemoryMB,
		Allocations: 1,
	}
	for _, w := range record.Workers {
		w.Status = allocation.WorkerStatusDestroying
	}
	// Reversal is a single atomic step, gated on the persisted Releasing
	// transition: if anything below fails, a retried release lands in the
	// already-released branch instead of reversing twice.
	s.ledger.Reverse(delta)

	record.Release()
	if err = s.allocations.Save(ctx, record); err != nil {
		record.Fail("release_error", err)
		_ = s.allocations.Save(ctx, record)
		return &allocation.ReleaseResult{
			Status:       allocation.ReleaseStatusError,
			AllocationID: record.ID,
			Error:        err.Error(),
		}, err
	}

	s.handOffWorkers(record)
	s.publish(eventType, record)

	return &allocation.ReleaseResult{
		Status:          allocation.ReleaseStatusReleased,
		AllocationID:    record.ID,
		JobID:           record.JobID,
		WorkersReleased: workersReleased,
		CPUFreed:        record.CPU,
		MemoryFreedMB:   record.MemoryMB,
		ReleasedAt:      record.ReleasedAt,
		DurationSeconds: record.ReleasedAt.Sub(record.CreatedAt).Seconds(),
	}, nil
}

// SweepExpired releases every allocation that is simultaneously active and
// past its TTL, returning the ids actually released. Releases racing with
// external callers are tolerated; the idempotent release makes the sweep
// safe.
func (s *Service) SweepExpired(ctx context.Context) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "allocation.sweep")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	candidates, err := s.allocations.List(ctx, dao.NewParameter("State", string(allocation.StateActive)))
	if err != nil {
		return nil, err
	}

	var released []string
	for _, candidate := range candidates {
		if !candidate.IsExpired() {
			continue
		}
		result, releaseErr := s.release(ctx, candidate.ID, event.TypeExpired)
		if releaseErr != nil {
			// Best effort: the next sweep cycle retries.
			log.Printf("sweep: failed to release %s: %v", candidate.ID, releaseErr)
			continue
		}
		if result.Status == allocation.ReleaseStatusReleased {
			released = append(released, result.AllocationID)
		}
	}
	return released, nil
}

// Capacity returns a consistent snapshot of cluster capacity.
func (s *Service) Capacity() capacity.Snapshot {
	return s.ledger.Snapshot()
}

// Allocation returns a copy of the allocation record or dao.ErrNotFound.
func (s *Service) Allocation(ctx context.Context, allocationID string) (*allocation.Allocation, error) {
	return s.allocations.Load(ctx, allocationID)
}

// List returns allocation summaries, optionally filtered by state and job
// id; both filters are conjunctive when supplied.
func (s *Service) List(ctx context.Context, state, jobID string) ([]allocation.Summary, error) {
	var parameters []*dao.Parameter
	if state != "" {
		parameters = append(parameters, dao.NewParameter("State", state))
	}
	if jobID != "" {
		parameters = append(parameters, dao.NewParameter("JobID", jobID))
	}
	records, err := s.allocations.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	out := make([]allocation.Summary, 0, len(records))
	for _, record := range records {
		out = append(out, record.Summarize())
	}
	return out, nil
}

// handOffWorkers publishes destroying workers to the teardown queue consumed
// by the external node-lifecycle adapter. The hand-off never blocks: the
// engine holds its mutex here, so a full queue drops the descriptor with a
// log line instead of stalling every caller.
func (s *Service) handOffWorkers(record *allocation.Allocation) {
	if s.teardown == nil {
		return
	}
	for _, w := range record.Workers {
		cp := *w
		if !s.teardown.TryPublish(&cp) {
			log.Printf("teardown queue full, dropped worker %s", w.ID)
		}
	}
}

// publish emits a lifecycle event without blocking; a full event queue drops
// the event rather than stalling the engine.
func (s *Service) publish(eventType string, record *allocation.Allocation) {
	if s.events == nil {
		return
	}
	publisher, err := event.PublisherOf[*allocation.Allocation](s.events)
	if err != nil {
		return
	}
	eCtx := &event.Context{AllocationID: record.ID, JobID: record.JobID, EventType: eventType}
	if !publisher.TryPublish(event.NewEvent(eCtx, record.Clone())) {
		log.Printf("event queue full, dropped %s event for %s", eventType, record.ID)
	}
}

func grantResult(record *allocation.Allocation) *allocation.GrantResult {
	result := &allocation.GrantResult{
		AllocationID: record.ID,
		Status:       allocation.GrantStatusActive,
		JobID:        record.JobID,
		Committed: allocation.Committed{
			CPU:      record.CPU,
			MemoryMB: record.MemoryMB,
			Workers:  len(record.Workers),
		},
		TTLSeconds: record.TTLSeconds,
		CreatedAt:  record.CreatedAt,
	}
	for _, instance := range record.ServiceInstances {
		result.Services = append(result.Services, allocation.ServiceGrant{
			Name:     instance.Name,
			Endpoint: instance.Endpoint,
			Status:   instance.Status,
		})
	}
	for _, w := range record.Workers {
		result.Workers = append(result.Workers, allocation.WorkerGrant{
			WorkerID: w.ID,
			Endpoint: w.Endpoint,
			CPU:      w.CPU,
			MemoryMB: w.MemoryMB,
		})
	}
	return result
}

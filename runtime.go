package allocor

import (
	"context"

	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/model/capacity"
	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/engine"
	"github.com/viant/allocor/service/ledger"
	"github.com/viant/allocor/service/messaging"
	"github.com/viant/allocor/service/node"
	"github.com/viant/allocor/service/registry"
	"github.com/viant/allocor/service/sweeper"
)

// Runtime exposes the broker operations to the transport-layer collaborator.
type Runtime struct {
	engine   *engine.Service
	sweeper  *sweeper.Service
	node     *node.Service
	ledger   *ledger.Service
	registry *registry.Service
	teardown messaging.Queue[allocation.WorkerDescriptor]
}

// Start launches the background expiry sweep.
func (r *Runtime) Start(ctx context.Context) error {
	go r.sweeper.Start(ctx)
	return nil
}

// Shutdown stops the background sweep. In-flight operations complete; no
// reversal is left partially applied.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.sweeper.Shutdown()
	return nil
}

// RequestResources reserves resources for a job: admission check, auxiliary
// service acquisition, worker synthesis and ledger commit as one unit.
func (r *Runtime) RequestResources(ctx context.Context, request engine.Request) (*allocation.GrantResult, error) {
	return r.engine.Request(ctx, request)
}

// ReleaseResources releases an allocation, reversing its ledger delta.
func (r *Runtime) ReleaseResources(ctx context.Context, allocationID string) (*allocation.ReleaseResult, error) {
	return r.engine.Release(ctx, allocationID)
}

// Capacity returns the current cluster capacity and utilization snapshot.
func (r *Runtime) Capacity() capacity.Snapshot {
	return r.engine.Capacity()
}

// Allocation returns the full allocation record or dao.ErrNotFound.
func (r *Runtime) Allocation(ctx context.Context, allocationID string) (*allocation.Allocation, error) {
	return r.engine.Allocation(ctx, allocationID)
}

// Allocations lists allocation summaries with optional state and job id
// filters; the filters are conjunctive when both are supplied.
func (r *Runtime) Allocations(ctx context.Context, state, jobID string) ([]allocation.Summary, error) {
	return r.engine.List(ctx, state, jobID)
}

// CleanupExpired releases every expired active allocation and returns the
// ids actually released.
func (r *Runtime) CleanupExpired(ctx context.Context) ([]string, error) {
	return r.engine.SweepExpired(ctx)
}

// Engine returns the lifecycle engine.
func (r *Runtime) Engine() *engine.Service {
	return r.engine
}

// TeardownQueue returns the queue carrying destroying worker descriptors,
// or nil when no queue was configured.
func (r *Runtime) TeardownQueue() messaging.Queue[allocation.WorkerDescriptor] {
	return r.teardown
}

// Workers lists worker node records, optionally filtered by type.
func (r *Runtime) Workers(ctx context.Context, typeFilter worker.Type) ([]*worker.Worker, error) {
	return r.node.List(ctx, typeFilter)
}

// ProvisionWorkers creates burst worker records.
func (r *Runtime) ProvisionWorkers(ctx context.Context, count, ttlHours int, size worker.Size) ([]*worker.Worker, error) {
	return r.node.Provision(ctx, count, ttlHours, size)
}

// DrainWorker marks a worker as draining.
func (r *Runtime) DrainWorker(ctx context.Context, name string) (*worker.Worker, error) {
	return r.node.Drain(ctx, name)
}

// DestroyWorker removes a drained burst worker; permanent workers are
// protected.
func (r *Runtime) DestroyWorker(ctx context.Context, name string, force bool) error {
	return r.node.Destroy(ctx, name, force)
}

// WorkerDetails returns a single worker node record.
func (r *Runtime) WorkerDetails(ctx context.Context, name string) (*worker.Worker, error) {
	return r.node.Details(ctx, name)
}

// RegisterPermanentWorkers seeds permanent worker records.
func (r *Runtime) RegisterPermanentWorkers(ctx context.Context, names ...string) error {
	return r.node.RegisterPermanent(ctx, names...)
}

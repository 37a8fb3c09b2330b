package node

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/allocor/internal/clock"
	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/dao"
)

// Safety errors surfaced by worker lifecycle operations.
var (
	// ErrPermanentWorker is returned when destroy targets a permanent
	// worker; only burst workers can be destroyed.
	ErrPermanentWorker = errors.New("node: cannot destroy permanent worker")

	// ErrNotDrained is returned when destroy targets a burst worker that
	// was not drained first and force was not set.
	ErrNotDrained = errors.New("node: worker not drained")
)

// Config represents worker lifecycle configuration.
type Config struct {
	// MaxBurstWorkers bounds a single provisioning call.
	MaxBurstWorkers int `json:"maxBurstWorkers" yaml:"maxBurstWorkers"`
	// MaxTTLHours bounds the burst worker lifetime.
	MaxTTLHours int `json:"maxTTLHours" yaml:"maxTTLHours"`
}

// DefaultConfig returns the default provisioning bounds (at most 10 workers
// per call, at most one week of TTL).
func DefaultConfig() Config {
	return Config{
		MaxBurstWorkers: 10,
		MaxTTLHours:     168,
	}
}

// sizes maps a worker size name onto its resource shape.
var sizes = map[worker.Size]worker.Resources{
	worker.SizeSmall:  {CPU: 2, MemoryGB: 4, DiskGB: 50},
	worker.SizeMedium: {CPU: 4, MemoryGB: 8, DiskGB: 100},
	worker.SizeLarge:  {CPU: 8, MemoryGB: 16, DiskGB: 200},
}

// Service manages cluster worker node records: listing, burst provisioning,
// draining and destruction. It is the in-core stand-in for the external
// infrastructure adapter - it keeps the records, validation and state
// machine while VM creation and cluster joins stay outside the core.
type Service struct {
	config  Config
	workers dao.Service[string, worker.Worker]
}

// New creates a worker lifecycle service over the supplied store.
func New(workers dao.Service[string, worker.Worker], config Config) *Service {
	if config.MaxBurstWorkers <= 0 {
		config = DefaultConfig()
	}
	return &Service{config: config, workers: workers}
}

// RegisterPermanent seeds permanent, ready worker records. Permanent workers
// are protected from destruction.
func (s *Service) RegisterPermanent(ctx context.Context, names ...string) error {
	for _, name := range names {
		record := &worker.Worker{
			Name:      name,
			Type:      worker.TypePermanent,
			Status:    worker.StatusReady,
			CreatedAt: clock.Now(),
		}
		if err := s.workers.Save(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// List returns worker records, optionally filtered by type.
func (s *Service) List(ctx context.Context, typeFilter worker.Type) ([]*worker.Worker, error) {
	var parameters []*dao.Parameter
	if typeFilter != "" {
		parameters = append(parameters, dao.NewParameter("Type", string(typeFilter)))
	}
	return s.workers.List(ctx, parameters...)
}

// Provision creates count burst worker records with the supplied size and
// TTL. Bounds: 1 <= count <= MaxBurstWorkers, 1 <= ttlHours <= MaxTTLHours.
func (s *Service) Provision(ctx context.Context, count, ttlHours int, size worker.Size) ([]*worker.Worker, error) {
	if count < 1 || count > s.config.MaxBurstWorkers {
		return nil, fmt.Errorf("node: worker count must be between 1 and %d, had: %d", s.config.MaxBurstWorkers, count)
	}
	if ttlHours < 1 || ttlHours > s.config.MaxTTLHours {
		return nil, fmt.Errorf("node: ttl must be between 1 and %d hours, had: %d", s.config.MaxTTLHours, ttlHours)
	}
	shape, ok := sizes[size]
	if !ok {
		return nil, fmt.Errorf("node: invalid size %q, expected one of small, medium, large", size)
	}

	now := clock.Now()
	expiry := now.Add(time.Duration(ttlHours) * time.Hour)

	provisioned := make([]*worker.Worker, 0, count)
	for i := 0; i < count; i++ {
		record := &worker.Worker{
			Name:      fmt.Sprintf("burst-worker-%d-%d", now.Unix(), i),
			Type:      worker.TypeBurst,
			Status:    worker.StatusProvisioning,
			Size:      size,
			Resources: shape,
			Labels: map[string]string{
				"worker-type": string(worker.TypeBurst),
			},
			Annotations: map[string]string{
				"worker-ttl": expiry.Format(time.RFC3339),
			},
			CreatedAt:  now,
			TTLExpires: &expiry,
		}
		if err := s.workers.Save(ctx, record); err != nil {
			return nil, err
		}
		provisioned = append(provisioned, record)
	}
	return provisioned, nil
}

// Drain marks a worker as draining so that it can be destroyed safely. The
// transition happens on a private copy saved back whole, so concurrent reads
// never observe a half-updated record.
func (s *Service) Drain(ctx context.Context, name string) (*worker.Worker, error) {
	record, err := s.workers.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("node: worker %s not found: %w", name, err)
	}
	record.Status = worker.StatusDraining
	if err := s.workers.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Destroy removes a burst worker record. Permanent workers are protected;
// burst workers must be drained first unless force is set.
func (s *Service) Destroy(ctx context.Context, name string, force bool) error {
	record, err := s.workers.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("node: worker %s not found: %w", name, err)
	}
	if record.Type != worker.TypeBurst {
		return fmt.Errorf("%w: %s", ErrPermanentWorker, name)
	}
	if !force && record.Status != worker.StatusDraining {
		return fmt.Errorf("%w: %s, drain first or use force", ErrNotDrained, name)
	}
	return s.workers.Delete(ctx, name)
}

// Details returns a copy of a single worker record.
func (s *Service) Details(ctx context.Context, name string) (*worker.Worker, error) {
	return s.workers.Load(ctx, name)
}

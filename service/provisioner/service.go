package provisioner

import (
	"fmt"
	"sync"

	"github.com/viant/allocor/model/allocation"
)

// Config represents the per-worker resource shape and endpoint synthesis
// parameters.
type Config struct {
	// WorkerCPU is the CPU committed per worker.
	WorkerCPU float64 `json:"workerCPU" yaml:"workerCPU"`
	// WorkerMemoryMB is the memory committed per worker.
	WorkerMemoryMB int `json:"workerMemoryMB" yaml:"workerMemoryMB"`
	// BasePort is the base of the synthetic worker endpoint port range.
	BasePort int `json:"basePort" yaml:"basePort"`
}

// DefaultConfig returns the default worker shape.
func DefaultConfig() Config {
	return Config{
		WorkerCPU:      1.0,
		WorkerMemoryMB: 2048,
		BasePort:       8000,
	}
}

// Service synthesizes worker descriptors for a grant. It is a deterministic
// stand-in for the external node-lifecycle adapter, which in production
// blocks until real nodes join the cluster.
type Service struct {
	config Config
	mux    sync.Mutex
	batch  int
}

// New creates a worker provisioning stub.
func New(config Config) *Service {
	if config.WorkerCPU == 0 && config.WorkerMemoryMB == 0 {
		config = DefaultConfig()
	}
	return &Service{config: config}
}

// Shape returns the per-worker CPU and memory committed for each descriptor.
func (s *Service) Shape() (cpu float64, memoryMB int) {
	return s.config.WorkerCPU, s.config.WorkerMemoryMB
}

// Synthesize generates count active worker descriptors for the job, with
// identifiers derived from the job id and an ordinal index and synthetic
// endpoints spaced per batch.
func (s *Service) Synthesize(count int, jobID string) []*allocation.WorkerDescriptor {
	s.mux.Lock()
	batch := s.batch
	s.batch++
	s.mux.Unlock()

	workers := make([]*allocation.WorkerDescriptor, 0, count)
	for i := 0; i < count; i++ {
		workers = append(workers, &allocation.WorkerDescriptor{
			ID:       fmt.Sprintf("worker-%s-%03d", jobID, i),
			CPU:      s.config.WorkerCPU,
			MemoryMB: s.config.WorkerMemoryMB,
			Status:   allocation.WorkerStatusActive,
			Endpoint: fmt.Sprintf("http://localhost:%d", s.config.BasePort+batch*10+i),
		})
	}
	return workers
}

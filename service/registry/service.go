package registry

import (
	"fmt"
	"sync"

	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/service/ledger"
)

// Config represents auxiliary service registry configuration.
type Config struct {
	// PortRangeStart is the first port of the allocation pool.
	PortRangeStart int `json:"portRangeStart" yaml:"portRangeStart"`
	// PortRangeSize is the size of the allocation pool.
	PortRangeSize int `json:"portRangeSize" yaml:"portRangeSize"`
}

// DefaultConfig returns the default port pool (9000..9099).
func DefaultConfig() Config {
	return Config{
		PortRangeStart: 9000,
		PortRangeSize:  100,
	}
}

// Service maps a logical auxiliary service name to a running instance and
// its endpoint, enabling reuse across allocations. Instances are only ever
// created or reused here; teardown belongs to the external control-plane
// adapter.
type Service struct {
	config      Config
	ledger      *ledger.Service
	mux         sync.Mutex
	instances   map[string]*allocation.ServiceInstance
	nextPortIdx int
}

// New creates an auxiliary service registry backed by the supplied ledger.
func New(ledger *ledger.Service, config Config) *Service {
	if config.PortRangeSize <= 0 {
		config = DefaultConfig()
	}
	return &Service{
		config:    config,
		ledger:    ledger,
		instances: make(map[string]*allocation.ServiceInstance),
	}
}

// Acquire returns the running instance registered under name, creating one
// on first reference. Newly created instances are recorded in the ledger's
// running service set.
func (s *Service) Acquire(name string) *allocation.ServiceInstance {
	s.mux.Lock()
	defer s.mux.Unlock()

	if instance, ok := s.instances[name]; ok && instance.Status == allocation.ServiceStatusRunning {
		return instance
	}

	port := s.allocatePort()
	instance := &allocation.ServiceInstance{
		Name:     name,
		Endpoint: fmt.Sprintf("http://localhost:%d", port),
		Status:   allocation.ServiceStatusRunning,
		Port:     port,
	}
	s.instances[name] = instance
	s.ledger.AddService(name)
	return instance
}

// Instances returns a snapshot of all registered instances.
func (s *Service) Instances() []*allocation.ServiceInstance {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := make([]*allocation.ServiceInstance, 0, len(s.instances))
	for _, instance := range s.instances {
		cp := *instance
		out = append(out, &cp)
	}
	return out
}

// allocatePort hands out the next port of the pool, wrapping modulo the pool
// size. NOTE: the wrap performs no collision detection against services
// still holding a previously issued port; the external service layer is
// assumed to keep reused ports from colliding over time. Latent bug when the
// number of distinct concurrent services exceeds the pool size.
func (s *Service) allocatePort() int {
	port := s.config.PortRangeStart + s.nextPortIdx
	s.nextPortIdx = (s.nextPortIdx + 1) % s.config.PortRangeSize
	return port
}

package allocor

import (
	"time"

	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/dao"
	amemory "github.com/viant/allocor/service/dao/allocation/memory"
	wmemory "github.com/viant/allocor/service/dao/worker/memory"
	"github.com/viant/allocor/service/engine"
	"github.com/viant/allocor/service/event"
	"github.com/viant/allocor/service/ledger"
	"github.com/viant/allocor/service/messaging"
	"github.com/viant/allocor/service/node"
	"github.com/viant/allocor/service/provisioner"
	"github.com/viant/allocor/service/registry"
	"github.com/viant/allocor/service/sweeper"
)

// Service wires the capacity ledger, auxiliary service registry, worker
// provisioning stub and lifecycle engine into a runnable broker.
type Service struct {
	config        *Config
	runtime       *Runtime
	allocationDAO dao.Service[string, allocation.Allocation]
	workerDAO     dao.Service[string, worker.Worker]
	teardownQueue messaging.Queue[allocation.WorkerDescriptor]
	eventService  *event.Service
	sweepInterval time.Duration
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()

	capacityLedger := ledger.New(s.config.Capacity)
	serviceRegistry := registry.New(capacityLedger, s.config.Registry)
	workerProvisioner := provisioner.New(s.config.Worker)

	var engineOptions []engine.Option
	if s.teardownQueue != nil {
		engineOptions = append(engineOptions, engine.WithTeardownQueue(s.teardownQueue))
	}
	if s.eventService != nil {
		engineOptions = append(engineOptions, engine.WithEventService(s.eventService))
	}

	s.runtime.ledger = capacityLedger
	s.runtime.registry = serviceRegistry
	s.runtime.engine = engine.New(capacityLedger, serviceRegistry, workerProvisioner, s.allocationDAO, engineOptions...)
	s.runtime.sweeper = sweeper.New(s.runtime.engine, sweeper.Config{Interval: s.sweepInterval})
	s.runtime.node = node.New(s.workerDAO, s.config.Node)
	s.runtime.teardown = s.teardownQueue
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.allocationDAO == nil {
		s.allocationDAO = amemory.New()
	}
	if s.workerDAO == nil {
		s.workerDAO = wmemory.New()
	}
	if s.sweepInterval <= 0 {
		s.sweepInterval = time.Duration(s.config.SweepIntervalSeconds) * time.Second
	}
}

// Runtime returns the broker runtime.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// New creates a broker service.
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}

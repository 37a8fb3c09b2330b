package engine

import (
	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/service/event"
	"github.com/viant/allocor/service/messaging"
)

// Option customises the lifecycle engine.
type Option func(s *Service)

// WithTeardownQueue sets the queue that receives worker descriptors marked
// destroying on release; the external node-lifecycle adapter consumes it.
func WithTeardownQueue(queue messaging.Queue[allocation.WorkerDescriptor]) Option {
	return func(s *Service) {
		s.teardown = queue
	}
}

// WithEventService sets the service used to publish allocation lifecycle
// events.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.events = service
	}
}

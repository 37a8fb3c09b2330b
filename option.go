package allocor

import (
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/viant/allocor/model/allocation"
	"github.com/viant/allocor/model/worker"
	"github.com/viant/allocor/service/dao"
	"github.com/viant/allocor/service/event"
	"github.com/viant/allocor/service/messaging"
	"github.com/viant/allocor/tracing"
)

// Option customises the broker service.
type Option func(s *Service)

// WithConfig sets the broker configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithAllocationDAO sets the allocation registry store.
func WithAllocationDAO(dao dao.Service[string, allocation.Allocation]) Option {
	return func(s *Service) {
		s.allocationDAO = dao
	}
}

// WithWorkerDAO sets the worker node store.
func WithWorkerDAO(dao dao.Service[string, worker.Worker]) Option {
	return func(s *Service) {
		s.workerDAO = dao
	}
}

// WithTeardownQueue sets the queue receiving destroying worker descriptors
// on release, consumed by the external node-lifecycle adapter.
func WithTeardownQueue(queue messaging.Queue[allocation.WorkerDescriptor]) Option {
	return func(s *Service) {
		s.teardownQueue = queue
	}
}

// WithEventService sets the event service used to publish allocation
// lifecycle events.
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithSweepInterval overrides the expiry sweep interval.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.sweepInterval = interval
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path. Safe to call multiple times - the
// first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter (OTLP, Jaeger, Zipkin, ...).
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}

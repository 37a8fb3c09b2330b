package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/viant/allocor/service/engine"
)

// Config represents sweeper configuration.
type Config struct {
	// Interval is how often the sweeper scans for expired allocations.
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// DefaultConfig returns the default sweeper configuration.
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Minute,
	}
}

// Service periodically reclaims expired allocations. Failures are logged
// and retried on the next cycle; the sweep never blocks engine callers.
type Service struct {
	config     Config
	engine     *engine.Service
	shutdownCh chan struct{}
}

// New creates a sweeper over the supplied engine.
func New(engine *engine.Service, config Config) *Service {
	if config.Interval <= 0 {
		config = DefaultConfig()
	}
	return &Service{
		config:     config,
		engine:     engine,
		shutdownCh: make(chan struct{}),
	}
}

// Start begins the sweep loop and blocks until the context is cancelled or
// Shutdown is called.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.shutdownCh:
			return nil
		case <-ticker.C:
			released, err := s.engine.SweepExpired(ctx)
			if err != nil {
				log.Printf("error sweeping expired allocations: %v", err)
				continue
			}
			if len(released) > 0 {
				log.Printf("reclaimed %d expired allocations: %v", len(released), released)
			}
		}
	}
}

// Shutdown stops the sweep loop.
func (s *Service) Shutdown() {
	close(s.shutdownCh)
}

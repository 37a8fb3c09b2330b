package allocor

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/allocor/service/ledger"
	"github.com/viant/allocor/service/node"
	"github.com/viant/allocor/service/provisioner"
	"github.com/viant/allocor/service/registry"
)

// Config is a serialisable representation of the broker configuration. It
// can be populated from JSON or YAML; the zero-value is useful - all nested
// fields inherit their package defaults.
type Config struct {
	Capacity ledger.Config      `json:"capacity" yaml:"capacity"`
	Registry registry.Config    `json:"registry" yaml:"registry"`
	Worker   provisioner.Config `json:"worker" yaml:"worker"`
	Node     node.Config        `json:"node" yaml:"node"`

	// SweepIntervalSeconds is how often expired allocations are reclaimed.
	SweepIntervalSeconds int `json:"sweepIntervalSeconds" yaml:"sweepIntervalSeconds"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Capacity:             ledger.DefaultConfig(),
		Registry:             registry.DefaultConfig(),
		Worker:               provisioner.DefaultConfig(),
		Node:                 node.DefaultConfig(),
		SweepIntervalSeconds: 300,
	}
}

// Validate returns an aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Capacity.Validate(); err != nil {
		return err
	}
	if c.Worker.WorkerCPU <= 0 {
		return fmt.Errorf("worker.workerCPU must be > 0")
	}
	if c.Worker.WorkerMemoryMB <= 0 {
		return fmt.Errorf("worker.workerMemoryMB must be > 0")
	}
	if c.SweepIntervalSeconds <= 0 {
		return fmt.Errorf("sweepIntervalSeconds must be > 0")
	}
	return nil
}

// LoadConfig reads a YAML config from any afs-addressable URL (file, s3,
// gs, mem, ...), overlaying the package defaults.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

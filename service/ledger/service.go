package ledger

import (
	"fmt"
	"sort"
	"sync"

	"github.com/viant/allocor/model/capacity"
)

// Config holds the fixed cluster totals the ledger accounts against.
type Config struct {
	TotalCPU      float64 `json:"totalCPU" yaml:"totalCPU"`
	TotalMemoryMB int     `json:"totalMemoryMB" yaml:"totalMemoryMB"`
	TotalWorkers  int     `json:"totalWorkers" yaml:"totalWorkers"`
}

// DefaultConfig returns the default cluster totals.
func DefaultConfig() Config {
	return Config{
		TotalCPU:      16.0,
		TotalMemoryMB: 32768,
		TotalWorkers:  10,
	}
}

// Validate returns an error describing invalid totals or nil.
func (c *Config) Validate() error {
	if c.TotalCPU < 0 {
		return fmt.Errorf("ledger: totalCPU must be >= 0")
	}
	if c.TotalMemoryMB < 0 {
		return fmt.Errorf("ledger: totalMemoryMB must be >= 0")
	}
	if c.TotalWorkers < 0 {
		return fmt.Errorf("ledger: totalWorkers must be >= 0")
	}
	return nil
}

// Delta is the quantity a single grant commits to or reverses from the
// ledger. Allocations counts the grant itself so that worker-less grants
// still show up in the active allocation count.
type Delta struct {
	Workers     int
	CPU         float64
	MemoryMB    int
	Allocations int
}

// Service is the authoritative counter set for total versus committed
// cluster resources. Each primitive is atomic under the service mutex; the
// lifecycle engine serialises the check+commit pair under its own lock so
// that no other commit can interleave between a check and its commit.
type Service struct {
	mux sync.RWMutex

	totalCPU      float64
	totalMemoryMB int
	totalWorkers  int

	allocatedCPU      float64
	allocatedMemoryMB int
	allocatedWorkers  int

	activeAllocations int
	runningServices   map[string]bool
}

// New creates a ledger with the supplied totals and zero committed counters.
func New(config Config) *Service {
	return &Service{
		totalCPU:        config.TotalCPU,
		totalMemoryMB:   config.TotalMemoryMB,
		totalWorkers:    config.TotalWorkers,
		runningServices: make(map[string]bool),
	}
}

// CheckAdmission reports whether the delta fits within available capacity.
// It is a pure read: callable repeatedly for pre-flight checks without
// mutating state.
func (s *Service) CheckAdmission(delta Delta) (bool, string) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	if availableWorkers := s.totalWorkers - s.allocatedWorkers; delta.Workers > availableWorkers {
		return false, fmt.Sprintf("insufficient workers: requested %d, available %d", delta.Workers, availableWorkers)
	}
	if availableCPU := s.totalCPU - s.allocatedCPU; delta.CPU > availableCPU {
		return false, fmt.Sprintf("insufficient CPU: needed %.1f, available %.1f", delta.CPU, availableCPU)
	}
	if availableMemory := s.totalMemoryMB - s.allocatedMemoryMB; delta.MemoryMB > availableMemory {
		return false, fmt.Sprintf("insufficient memory: needed %dMB, available %dMB", delta.MemoryMB, availableMemory)
	}
	return true, ""
}

// Commit atomically adds the delta to the committed counters. Callers must
// have passed CheckAdmission for the same quantities; the ledger does not
// re-validate to avoid double-checking races.
func (s *Service) Commit(delta Delta) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.allocatedWorkers += delta.Workers
	s.allocatedCPU += delta.CPU
	s.allocatedMemoryMB += delta.MemoryMB
	s.activeAllocations += delta.Allocations
}

// Reverse atomically subtracts the delta from the committed counters. The
// lifecycle engine gates on allocation state so that Reverse is invoked at
// most once per allocation.
func (s *Service) Reverse(delta Delta) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.allocatedWorkers -= delta.Workers
	s.allocatedCPU -= delta.CPU
	s.allocatedMemoryMB -= delta.MemoryMB
	s.activeAllocations -= delta.Allocations
}

// AddService records an auxiliary service as running. Returns true when the
// name was newly added.
func (s *Service) AddService(name string) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.runningServices[name] {
		return false
	}
	s.runningServices[name] = true
	return true
}

// Snapshot returns a consistent, read-only copy of all counters plus the
// derived availability and the running service set.
func (s *Service) Snapshot() capacity.Snapshot {
	s.mux.RLock()
	defer s.mux.RUnlock()

	services := make([]string, 0, len(s.runningServices))
	for name := range s.runningServices {
		services = append(services, name)
	}
	sort.Strings(services)

	return capacity.Snapshot{
		TotalCPU:          s.totalCPU,
		TotalMemoryMB:     s.totalMemoryMB,
		TotalWorkers:      s.totalWorkers,
		AllocatedCPU:      s.allocatedCPU,
		AllocatedMemoryMB: s.allocatedMemoryMB,
		AllocatedWorkers:  s.allocatedWorkers,
		AvailableCPU:      s.totalCPU - s.allocatedCPU,
		AvailableMemoryMB: s.totalMemoryMB - s.allocatedMemoryMB,
		AvailableWorkers:  s.totalWorkers - s.allocatedWorkers,
		RunningServices:   services,
		ActiveAllocations: s.activeAllocations,
	}
}

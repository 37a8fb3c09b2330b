// Package capacity defines the cluster capacity view exposed to callers.
package capacity

// Snapshot is a consistent, read-only view of the capacity ledger. Available
// quantities are derived; they are never negative while the ledger invariant
// 0 <= allocated <= total holds.
type Snapshot struct {
	TotalCPU      float64 `json:"totalCPU"`
	TotalMemoryMB int     `json:"totalMemoryMB"`
	TotalWorkers  int     `json:"totalWorkers"`

	AllocatedCPU      float64 `json:"allocatedCPU"`
	AllocatedMemoryMB int     `json:"allocatedMemoryMB"`
	AllocatedWorkers  int     `json:"allocatedWorkers"`

	AvailableCPU      float64 `json:"availableCPU"`
	AvailableMemoryMB int     `json:"availableMemoryMB"`
	AvailableWorkers  int     `json:"availableWorkers"`

	RunningServices   []string `json:"runningServices"`
	ActiveAllocations int      `json:"activeAllocations"`
}

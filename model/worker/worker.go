// Package worker defines cluster worker node records managed by the node
// lifecycle service.
package worker

import "time"

// Type classifies a worker node.
type Type string

const (
	TypePermanent Type = "permanent"
	TypeBurst     Type = "burst"
)

// Status states of a worker node.
type Status string

const (
	StatusProvisioning Status = "provisioning"
	StatusReady        Status = "ready"
	StatusDraining     Status = "draining"
	StatusNotReady     Status = "not_ready"
)

// Size names a worker shape.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Resources describes the shape of a worker node.
type Resources struct {
	CPU      int `json:"cpu"`
	MemoryGB int `json:"memoryGB"`
	DiskGB   int `json:"diskGB"`
}

// Worker is a cluster worker node record. Burst workers carry a TTL and can
// be destroyed; permanent workers are protected.
type Worker struct {
	Name        string            `json:"name"`
	Type        Type              `json:"type"`
	Status      Status            `json:"status"`
	Size        Size              `json:"size,omitempty"`
	Resources   Resources         `json:"resources"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	TTLExpires  *time.Time        `json:"ttlExpires,omitempty"`
}

// Clone returns a deep copy of the worker record.
func (w *Worker) Clone() *Worker {
	if w == nil {
		return nil
	}
	clone := *w
	if w.Labels != nil {
		clone.Labels = make(map[string]string, len(w.Labels))
		for k, v := range w.Labels {
			clone.Labels[k] = v
		}
	}
	if w.Annotations != nil {
		clone.Annotations = make(map[string]string, len(w.Annotations))
		for k, v := range w.Annotations {
			clone.Annotations[k] = v
		}
	}
	if w.TTLExpires != nil {
		t := *w.TTLExpires
		clone.TTLExpires = &t
	}
	return &clone
}

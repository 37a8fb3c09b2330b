package event

import "time"

// Lifecycle event types published by the engine.
const (
	TypeGranted  = "granted"
	TypeReleased = "released"
	TypeExpired  = "expired"
	TypeFailed   = "failed"
)

// Context identifies the allocation an event belongs to.
type Context struct {
	AllocationID string `json:"allocationID"`
	JobID        string `json:"jobID"`
	EventType    string `json:"eventType"`
}

// Event carries a typed payload with its allocation context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event for the supplied context and payload.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}

package allocation

// State represents the allocation lifecycle state.
type State string

// Allocation lifecycle states. Pending and Failed are never re-entered from
// Active or Released; Failed is reachable from Pending (admission failure)
// and from Releasing (reclaim error).
const (
	StatePending   State = "pending"
	StateActive    State = "active"
	StateReleasing State = "releasing"
	StateReleased  State = "released"
	StateFailed    State = "failed"
)

// IsTerminal reports whether the state admits no further transitions other
// than Releasing->Failed bookkeeping.
func (s State) IsTerminal() bool {
	return s == StateReleased || s == StateFailed
}

// Priority represents a job priority level.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority maps a raw priority string onto the closed priority set.
// Unknown values fall back to PriorityNormal; this leniency is part of the
// request contract, not an error.
func ParsePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return Priority(raw)
	}
	return PriorityNormal
}

// Package policy provides a simple, optional admission policy over requested
// auxiliary service names that can be attached to a request via context. It
// is deliberately decoupled from the engine so that using it is entirely
// opt-in - callers that do not embed a Policy in their context keep the
// original "admit everything" behaviour.

package policy

import (
	"context"
	"strings"
)

// Admission modes recognised by the engine.
const (
	ModeAuto = "auto" // admit automatically (default)
	ModeDeny = "deny" // block every request
)

// Policy represents the admission settings for a request.
//
//   - Mode controls the high-level behaviour (auto / deny).
//   - AllowList, BlockList filter requested auxiliary service names
//     regardless of Mode.
//
// A nil *Policy means "admit everything" and is therefore the zero-cost
// default.
type Policy struct {
	Mode      string   // auto / deny (default = auto)
	AllowList []string // whitelist (empty => all)
	BlockList []string // blacklist
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a stored Config back to a runtime Policy.
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates Mode and AllowList / BlockList for the supplied
// auxiliary service name. Both lists match by exact, case-insensitive
// comparison.
func (p *Policy) IsAllowed(service string) bool {
	if p == nil {
		return true
	}
	if p.Mode == ModeDeny {
		return false
	}

	normalized := strings.ToLower(service)

	// BlockList has priority.
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}

	// AllowList - if empty everything is allowed, otherwise only the listed
	// entries.
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}

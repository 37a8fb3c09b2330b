package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// NewFunc returns a new globally unique identifier as string. It is a
// variable so tests can stub it.
var NewFunc = func() string { return uuid.New().String() }

// New returns a fresh unique identifier.
func New() string { return NewFunc() }

// Allocation returns an allocation identifier of the form alloc-<12 hex>.
func Allocation() string {
	hex := strings.ReplaceAll(NewFunc(), "-", "")
	if len(hex) > 12 {
		hex = hex[:12]
	}
	return "alloc-" + hex
}

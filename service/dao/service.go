package dao

import (
	"context"
)

// Service abstracts a keyed registry of records. The engine only ever talks
// to this interface so that the in-memory store can be swapped for an
// external one without touching lifecycle logic.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

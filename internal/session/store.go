// Package session persists wagon trains behind a small generic key-value
// contract.
package session

import "context"

// Store loads and saves values by id. Implementations are safe for
// concurrent use; they do not serialize read-modify-write cycles, see Locks.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	List(ctx context.Context) ([]T, error)
	NewID() string
}

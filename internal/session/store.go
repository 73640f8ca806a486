package session

import "context"

// Store keeps per-visitor values, such as a player's Progress, keyed by
// session ID.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	NewID() string
}

// Package kv defines the persistent key-value port the financial state
// store writes through. Implementations live in the subpackages; all of
// them are synchronous and last-write-wins across processes.
package kv

import "context"

// Store is a string-keyed persistent store. Get reports ok=false when the
// key has never been written. Implementations must be safe for concurrent
// use.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

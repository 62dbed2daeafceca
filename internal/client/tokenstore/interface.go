// Package tokenstore persists the access token between runs. The storage is a
// single well-known slot: at most one token exists at any time.
package tokenstore

import "context"

// Store is the durable holder of the access token.
//
// Contract:
//   - Get returns the stored token, or "" with a nil error when the slot is empty.
//   - Set replaces the slot contents.
//   - Clear empties the slot; clearing an empty slot is not an error.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

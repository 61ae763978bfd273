// Package usecase defines the interfaces of the engine's application layer and
// the input/output types callers exchange with it.
package usecase

import (
	"context"

	"plunder/internal/domain/service"
)

// KeyManager hands out per-owner symmetric keys. Repeated calls for the same
// owner are idempotent and return bit-identical key material. The manager never
// falls back to a default key; when the salt store is unreachable the call
// fails with the key-store-unavailable variant.
type KeyManager interface {
	// GetOrCreateKey returns the owner's key, deriving and caching it on first use.
	GetOrCreateKey(ctx context.Context, ownerID string) (service.KeyHandle, error)
}

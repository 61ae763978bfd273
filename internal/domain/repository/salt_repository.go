package repository

import (
	"context"
	"errors"
)

// ErrSaltNotFound is returned when no salt has been persisted for an owner yet.
var ErrSaltNotFound = errors.New("owner salt not found")

// SaltRepository is the key-store collaborator. It persists the per-owner random
// salt the key manager derives owner keys from. The salt is written exactly once
// per owner; key rotation is an administrative action outside the core.
type SaltRepository interface {
	// GetSalt retrieves the persisted salt for an owner. Returns ErrSaltNotFound
	// when the owner has no salt yet.
	GetSalt(ctx context.Context, ownerID string) ([]byte, error)

	// PutSaltIfAbsent persists the salt for an owner unless one already exists,
	// and returns the salt that won. Two concurrent first-campaign creations for
	// the same owner therefore converge on identical key material.
	PutSaltIfAbsent(ctx context.Context, ownerID string, salt []byte) ([]byte, error)
}

package usecase

import (
	"context"

	"plunder/internal/domain/entity"
	"plunder/internal/domain/service"
)

// TakenFunc reports whether an alias is already in use within the namespace the
// caller is issuing into. Callers pass a transaction-bound lookup so uniqueness
// is checked against the state the surrounding transaction sees.
type TakenFunc func(ctx context.Context, alias string) (bool, error)

// Anonymizer is the anonymization codec: deterministic alias issuance plus
// authenticated encryption of real names.
type Anonymizer interface {
	// UniqueAlias proposes the deterministic alias for the given text and, on
	// collision, walks deterministic numeric suffixes until a free alias is
	// found. Never re-randomizes, so issuance is reproducible.
	UniqueAlias(ctx context.Context, text string, namespace service.AliasNamespace, taken TakenFunc) (string, error)

	// CustomAlias validates a caller-supplied alias and checks it for uniqueness
	// instead of generating one.
	CustomAlias(ctx context.Context, alias string, taken TakenFunc) (string, error)

	// Seal encrypts a real name under the owner key.
	Seal(plaintext string, key service.KeyHandle) (entity.SealedName, error)

	// Reveal decrypts a sealed name. Fails with the integrity-violation variant
	// when the ciphertext does not authenticate under the given key.
	Reveal(sealed entity.SealedName, key service.KeyHandle) (string, error)
}

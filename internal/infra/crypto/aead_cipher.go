package crypto

import (
	"crypto/rand"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"

	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/service"
)

// aeadCipher is a concrete implementation of the AliasCipher interface using
// XChaCha20-Poly1305. The extended 24-byte nonce is drawn from crypto/rand per
// seal, which makes accidental nonce reuse a non-issue at this volume.
type aeadCipher struct{}

// NewAEADCipher is the constructor for aeadCipher.
// It returns the implementation as a service.AliasCipher interface.
func NewAEADCipher() service.AliasCipher {
	return &aeadCipher{}
}

// Seal encrypts the plaintext under the owner key with a fresh random nonce.
func (c *aeadCipher) Seal(plaintext string, key service.KeyHandle) (entity.SealedName, error) {
	aead, err := chacha20poly1305.NewX(key.Material())
	if err != nil {
		return entity.SealedName{}, errors.Wrap(err, "failed to construct AEAD")
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return entity.SealedName{}, errors.Wrap(err, "failed to generate nonce")
	}

	return entity.SealedName{
		Ciphertext: aead.Seal(nil, nonce, []byte(plaintext), nil),
		Nonce:      nonce,
	}, nil
}

// Open decrypts a sealed name. Any authentication failure (tampered bytes,
// wrong key, mangled nonce) surfaces as the integrity-violation variant; the
// plaintext is returned only when the tag verifies.
func (c *aeadCipher) Open(sealed entity.SealedName, key service.KeyHandle) (string, error) {
	aead, err := chacha20poly1305.NewX(key.Material())
	if err != nil {
		return "", errors.Wrap(err, "failed to construct AEAD")
	}

	if len(sealed.Nonce) != aead.NonceSize() {
		return "", domainerrors.ErrIntegrityViolation.WrapMessage("nonce has wrong length")
	}

	plaintext, err := aead.Open(nil, sealed.Nonce, sealed.Ciphertext, nil)
	if err != nil {
		return "", domainerrors.ErrIntegrityViolation.WrapMessage("authentication tag mismatch")
	}

	return string(plaintext), nil
}

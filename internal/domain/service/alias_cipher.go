package service

import "plunder/internal/domain/entity"

// AliasCipher seals and opens real names with an owner key using authenticated
// encryption. Implementations must be pure and safe for concurrent use.
type AliasCipher interface {
	// Seal encrypts the plaintext under the owner key with a fresh nonce.
	// The nonce travels with the ciphertext and is never reused.
	Seal(plaintext string, key KeyHandle) (entity.SealedName, error)

	// Open decrypts a sealed name. It fails when the authentication tag does
	// not verify (tampered ciphertext or wrong key); it never returns garbled
	// plaintext. This is the only path by which real names are reconstructed.
	Open(sealed entity.SealedName, key KeyHandle) (string, error)
}

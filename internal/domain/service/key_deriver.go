package service

// KeyDeriver derives per-owner symmetric key material from the owner identifier
// and a persisted random salt. The derivation must be deterministic (same owner
// and salt always yield bit-identical keys) and computationally expensive, so a
// leaked salt alone is not enough to brute-force owner keys.
type KeyDeriver interface {
	// Derive produces the owner key for the given identifier and salt.
	Derive(ownerID string, salt []byte) KeyHandle

	// SaltLength returns the number of random bytes a fresh salt must have.
	SaltLength() int
}

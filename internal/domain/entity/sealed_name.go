// Package entity contains the core business objects of the project.
package entity

// SealedName holds the authenticated ciphertext of a real participant or item name.
// The nonce is generated fresh for every seal operation and stored alongside the
// ciphertext; the plaintext itself is never persisted anywhere.
type SealedName struct {
	Ciphertext []byte `json:"-"`
	Nonce      []byte `json:"-"`
}

// IsZero reports whether the sealed name carries no ciphertext.
func (s SealedName) IsZero() bool {
	return len(s.Ciphertext) == 0 && len(s.Nonce) == 0
}

// Package service defines interfaces for core, stateless domain logic and for
// the external collaborators the engine talks to. Keeping them here keeps the
// domain pure; concrete implementations live under internal/infra.
package service

import "log/slog"

// redactedKey is what every textual rendering of a KeyHandle produces.
const redactedKey = "[REDACTED]"

// KeyHandle wraps derived symmetric key material for one owning account.
// String, GoString, LogValue and MarshalJSON all redact. Key material must
// never appear in logs or responses.
type KeyHandle struct {
	material []byte
}

// NewKeyHandle wraps raw key material. The slice is not copied; callers hand
// over ownership.
func NewKeyHandle(material []byte) KeyHandle {
	return KeyHandle{material: material}
}

// Material exposes the raw key bytes to cipher implementations.
func (k KeyHandle) Material() []byte {
	return k.material
}

// IsZero reports whether the handle carries no key material.
func (k KeyHandle) IsZero() bool {
	return len(k.material) == 0
}

// String implements fmt.Stringer and always redacts.
func (k KeyHandle) String() string {
	return redactedKey
}

// GoString implements fmt.GoStringer and always redacts.
func (k KeyHandle) GoString() string {
	return redactedKey
}

// LogValue implements slog.LogValuer and always redacts.
func (k KeyHandle) LogValue() slog.Value {
	return slog.StringValue(redactedKey)
}

// MarshalJSON always serializes the redaction marker, never the key.
func (k KeyHandle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redactedKey + `"`), nil
}

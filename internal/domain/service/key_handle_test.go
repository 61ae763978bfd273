package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyHandle_NeverLeaksMaterial(t *testing.T) {
	key := NewKeyHandle([]byte("super-secret-key-material-32byte"))

	assert.Equal(t, "[REDACTED]", key.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", key))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", key))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", key))

	data, err := json.Marshal(key)
	require.NoError(t, err)
	assert.Equal(t, `"[REDACTED]"`, string(data))
	assert.NotContains(t, string(data), "super-secret")
}

func TestKeyHandle_LogValueRedacts(t *testing.T) {
	key := NewKeyHandle([]byte("super-secret-key-material-32byte"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("derived key", slog.Any("key", key))

	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "super-secret")
}

func TestKeyHandle_MaterialAndIsZero(t *testing.T) {
	assert.True(t, KeyHandle{}.IsZero())

	key := NewKeyHandle([]byte{1, 2, 3})
	assert.False(t, key.IsZero())
	assert.Equal(t, []byte{1, 2, 3}, key.Material())
}

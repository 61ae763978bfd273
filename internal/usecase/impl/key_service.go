// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"

	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/repository"
	"plunder/internal/domain/service"
	"plunder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// keyService implements the KeyManager interface. Derived keys are cached in
// memory for the life of the process; derivation is deterministic, so a cache
// miss after restart reproduces the exact same key material.
type keyService struct {
	saltRepo repository.SaltRepository
	deriver  service.KeyDeriver
	logger   *slog.Logger

	mu    sync.Mutex
	cache map[string]service.KeyHandle
}

// KeyServiceParams holds dependencies for KeyService, injected by Fx.
type KeyServiceParams struct {
	fx.In

	SaltRepo repository.SaltRepository
	Deriver  service.KeyDeriver
	Logger   *slog.Logger
}

// NewKeyService is the constructor for keyService. It receives all dependencies as interfaces.
func NewKeyService(params KeyServiceParams) usecase.KeyManager {
	return &keyService{
		saltRepo: params.SaltRepo,
		deriver:  params.Deriver,
		logger:   params.Logger,
		cache:    make(map[string]service.KeyHandle),
	}
}

// GetOrCreateKey returns the owner's key, deriving and caching it on first use.
// The per-owner salt is generated once and persisted through the key store;
// losing the store makes the call fail rather than fall back to a default key.
func (srv *keyService) GetOrCreateKey(ctx context.Context, ownerID string) (service.KeyHandle, error) {
	if ownerID == "" {
		return service.KeyHandle{}, domainerrors.ErrValidationFailed.WrapMessage("owner id is empty")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if key, ok := srv.cache[ownerID]; ok {
		return key, nil
	}

	salt, err := srv.loadOrCreateSalt(ctx, ownerID)
	if err != nil {
		return service.KeyHandle{}, err
	}

	key := srv.deriver.Derive(ownerID, salt)
	srv.cache[ownerID] = key

	srv.logger.DebugContext(ctx, "derived owner key", slog.String("ownerID", ownerID))

	return key, nil
}

// loadOrCreateSalt fetches the persisted salt, generating and persisting a fresh
// one when the owner has none yet. PutSaltIfAbsent returns the winning salt, so
// concurrent first calls converge on identical key material.
func (srv *keyService) loadOrCreateSalt(ctx context.Context, ownerID string) ([]byte, error) {
	salt, err := srv.saltRepo.GetSalt(ctx, ownerID)
	if err == nil {
		return salt, nil
	}
	if !errors.Is(err, repository.ErrSaltNotFound) {
		return nil, domainerrors.ErrKeyStoreUnavailable.WrapMessage(err.Error())
	}

	fresh := make([]byte, srv.deriver.SaltLength())
	if _, err := rand.Read(fresh); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	salt, err = srv.saltRepo.PutSaltIfAbsent(ctx, ownerID, fresh)
	if err != nil {
		return nil, domainerrors.ErrKeyStoreUnavailable.WrapMessage(err.Error())
	}

	return salt, nil
}

package impl

import (
	"context"
	"log/slog"
	"strings"

	"plunder/config"
	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/service"
	"plunder/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// defaultMaxSuffixAttempts bounds the deterministic-suffix walk. A campaign
// would need that many identical base proposals before this trips.
const defaultMaxSuffixAttempts = 10_000

// anonymizerService implements the Anonymizer interface by composing the
// deterministic namer with the AEAD cipher.
type anonymizerService struct {
	namer             service.AliasNamer
	cipher            service.AliasCipher
	maxSuffixAttempts int
	logger            *slog.Logger
}

// AnonymizerServiceParams holds dependencies for AnonymizerService, injected by Fx.
type AnonymizerServiceParams struct {
	fx.In

	Namer  service.AliasNamer
	Cipher service.AliasCipher
	Config *config.Config `optional:"true"`
	Logger *slog.Logger
}

// NewAnonymizerService is the constructor for anonymizerService.
func NewAnonymizerService(params AnonymizerServiceParams) usecase.Anonymizer {
	attempts := defaultMaxSuffixAttempts
	if params.Config != nil && params.Config.Anonymizer != nil && params.Config.Anonymizer.MaxSuffixAttempts > 0 {
		attempts = params.Config.Anonymizer.MaxSuffixAttempts
	}

	return &anonymizerService{
		namer:             params.Namer,
		cipher:            params.Cipher,
		maxSuffixAttempts: attempts,
		logger:            params.Logger,
	}
}

// UniqueAlias proposes the deterministic alias for the text and resolves
// collisions by appending deterministic numeric suffixes, never by
// re-randomizing.
func (srv *anonymizerService) UniqueAlias(ctx context.Context, text string, namespace service.AliasNamespace, taken usecase.TakenFunc) (string, error) {
	if !namespace.IsValid() {
		return "", domainerrors.ErrValidationFailed.WrapMessage("unknown alias namespace")
	}

	base := srv.namer.ProposeAlias(text, namespace)

	alias := base
	for n := 2; n <= srv.maxSuffixAttempts; n++ {
		inUse, err := taken(ctx, alias)
		if err != nil {
			return "", errors.Wrap(err, "failed to check alias availability")
		}
		if !inUse {
			return alias, nil
		}
		alias = srv.namer.WithSuffix(base, n)
	}

	return "", domainerrors.ErrInternalError.WrapMessage("alias namespace exhausted")
}

// CustomAlias validates a caller-supplied alias and checks per-campaign
// uniqueness before acceptance.
func (srv *anonymizerService) CustomAlias(ctx context.Context, alias string, taken usecase.TakenFunc) (string, error) {
	alias = strings.TrimSpace(alias)
	if len(alias) < 2 {
		return "", domainerrors.ErrValidationFailed.WrapMessage("alias too short")
	}

	inUse, err := taken(ctx, alias)
	if err != nil {
		return "", errors.Wrap(err, "failed to check alias availability")
	}
	if inUse {
		return "", domainerrors.ErrAliasTaken.WithDetails(alias)
	}

	return alias, nil
}

// Seal encrypts a real name under the owner key.
func (srv *anonymizerService) Seal(plaintext string, key service.KeyHandle) (entity.SealedName, error) {
	if strings.TrimSpace(plaintext) == "" {
		return entity.SealedName{}, domainerrors.ErrValidationFailed.WrapMessage("plaintext is empty")
	}

	sealed, err := srv.cipher.Seal(plaintext, key)
	if err != nil {
		return entity.SealedName{}, errors.Wrap(err, "failed to seal name")
	}

	return sealed, nil
}

// Reveal decrypts a sealed name. Authentication failures are logged for audit;
// the log carries no ciphertext and no key material.
func (srv *anonymizerService) Reveal(sealed entity.SealedName, key service.KeyHandle) (string, error) {
	plaintext, err := srv.cipher.Open(sealed, key)
	if err != nil {
		srv.logger.Warn("sealed name failed authentication")

		return "", err
	}

	return plaintext, nil
}

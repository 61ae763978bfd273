package postgres

import (
	"context"

	"plunder/internal/domain/repository"
	"plunder/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saltRepository implements the repository.SaltRepository interface. It is the
// key-store collaborator: one immutable salt row per owning account.
type saltRepository struct {
	db *gorm.DB
}

// NewSaltRepository is the constructor for saltRepository.
func NewSaltRepository(db *gorm.DB) repository.SaltRepository {
	return &saltRepository{
		db: db,
	}
}

// GetSalt retrieves the persisted salt for an owner.
func (repo *saltRepository) GetSalt(ctx context.Context, ownerID string) ([]byte, error) {
	var saltM model.OwnerSaltModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&saltM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSaltNotFound
		}

		return nil, errors.Wrap(err, "failed to read owner salt")
	}

	return saltM.Salt, nil
}

// PutSaltIfAbsent persists the salt unless one already exists and returns the
// salt that won. ON CONFLICT DO NOTHING plus a re-read keeps two concurrent
// first calls from ever diverging on key material.
func (repo *saltRepository) PutSaltIfAbsent(ctx context.Context, ownerID string, salt []byte) ([]byte, error) {
	saltM := &model.OwnerSaltModel{
		OwnerID: ownerID,
		Salt:    salt,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(saltM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to write owner salt")
	}

	return repo.GetSalt(ctx, ownerID)
}

package postgres

import (
	"context"

	"plunder/internal/domain/entity"
	domainerrors "plunder/internal/domain/errors"
	"plunder/internal/domain/repository"
	"plunder/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// pirateRepository implements the repository.PirateRepository interface.
type pirateRepository struct {
	db *gorm.DB
}

// NewPirateRepository is the constructor for pirateRepository.
func NewPirateRepository(db *gorm.DB) repository.PirateRepository {
	return &pirateRepository{
		db: db,
	}
}

// Create persists a new pirate. The composite unique index on
// (campaign_id, alias) backs the per-campaign alias uniqueness invariant.
func (repo *pirateRepository) Create(ctx context.Context, pirate *entity.Pirate) error {
	pirateM := fromPirateDomain(pirate)

	if err := repo.db.WithContext(ctx).Create(pirateM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAliasExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create pirate")
	}

	pirate.CreatedAt = pirateM.CreatedAt

	return nil
}

// FindByID retrieves a single pirate by its unique ID.
func (repo *pirateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Pirate, error) {
	var pirateM model.PirateModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pirateM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPirateNotFound
		}

		return nil, errors.Wrap(err, "failed to find pirate by ID")
	}

	return toPirateDomain(&pirateM), nil
}

// FindByAlias retrieves a pirate by its alias within one campaign.
func (repo *pirateRepository) FindByAlias(ctx context.Context, campaignID uuid.UUID, alias string) (*entity.Pirate, error) {
	var pirateM model.PirateModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ? AND alias = ?", campaignID, alias).
		First(&pirateM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPirateNotFound
		}

		return nil, errors.Wrap(err, "failed to find pirate by alias")
	}

	return toPirateDomain(&pirateM), nil
}

// ListByCampaign retrieves all pirates registered to a campaign.
func (repo *pirateRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Pirate, error) {
	var pirateModels []*model.PirateModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&pirateModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list pirates by campaign")
	}

	pirates := make([]*entity.Pirate, 0, len(pirateModels))
	for _, pirateM := range pirateModels {
		pirates = append(pirates, toPirateDomain(pirateM))
	}

	return pirates, nil
}

// CountByCampaign returns the number of pirates registered to a campaign.
func (repo *pirateRepository) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PirateModel{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count pirates")
	}

	return count, nil
}

// AliasExists reports whether an alias is already taken within the campaign's
// participant namespace.
func (repo *pirateRepository) AliasExists(ctx context.Context, campaignID uuid.UUID, alias string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PirateModel{}).
		Where("campaign_id = ? AND alias = ?", campaignID, alias).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check pirate alias")
	}

	return count > 0, nil
}

// Delete removes a pirate.
func (repo *pirateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.PirateModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete pirate")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPirateNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPirateDomain converts a GORM PirateModel to a domain Pirate entity.
func toPirateDomain(data *model.PirateModel) *entity.Pirate {
	if data == nil {
		return nil
	}

	return &entity.Pirate{
		ID:         data.ID,
		CampaignID: data.CampaignID,
		Alias:      data.Alias,
		SealedName: entity.SealedName{
			Ciphertext: data.Ciphertext,
			Nonce:      data.Nonce,
		},
		CreatedAt: data.CreatedAt,
	}
}

// fromPirateDomain converts a domain Pirate entity to a GORM PirateModel.
func fromPirateDomain(data *entity.Pirate) *model.PirateModel {
	if data == nil {
		return nil
	}

	return &model.PirateModel{
		ID:         data.ID,
		CampaignID: data.CampaignID,
		Alias:      data.Alias,
		Ciphertext: data.SealedName.Ciphertext,
		Nonce:      data.SealedName.Nonce,
		CreatedAt:  data.CreatedAt,
	}
}

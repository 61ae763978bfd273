// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// campaignRepository implements the repository.CampaignRepository interface.
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository is the constructor for campaignRepository.
func NewCampaignRepository(db *gorm.DB) repository.CampaignRepository {
	return &campaignRepository{
		db: db,
	}
}

// Create persists a new campaign.
func (repo *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	campaignM := fromCampaignDomain(campaign)

	if err := repo.db.WithContext(ctx).Create(campaignM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create campaign")
	}

	campaign.CreatedAt = campaignM.CreatedAt
	campaign.UpdatedAt = campaignM.UpdatedAt

	return nil
}

// FindByID retrieves a single campaign by its unique ID.
func (repo *campaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	var campaignM model.CampaignModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&campaignM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCampaignNotFound
		}

		return nil, errors.Wrap(err, "failed to find campaign by ID")
	}

	return toCampaignDomain(&campaignM), nil
}

// ListByOwner retrieves all campaigns belonging to one owning account.
func (repo *campaignRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Campaign, error) {
	var campaignModels []*model.CampaignModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&campaignModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list campaigns by owner")
	}

	campaigns := make([]*entity.Campaign, 0, len(campaignModels))
	for _, campaignM := range campaignModels {
		campaigns = append(campaigns, toCampaignDomain(campaignM))
	}

	return campaigns, nil
}

// UpdateStatus moves a campaign from the expected current status to the next
// one. The WHERE clause on the current status turns the update into a
// compare-and-set; zero affected rows means a concurrent transition won.
func (repo *campaignRepository) UpdateStatus(ctx context.Context, id uuid.UUID, current, next entity.CampaignStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CampaignModel{}).
		Where("id = ? AND status = ?", id, current.String()).
		Update("status", next.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update campaign status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCampaignStale
	}

	return nil
}

// AddToActualTotal accumulates the given delta onto the campaign's actual total.
func (repo *campaignRepository) AddToActualTotal(ctx context.Context, id uuid.UUID, delta int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CampaignModel{}).
		Where("id = ?", id).
		Update("actual_total", gorm.Expr("actual_total + ?", delta))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update campaign actual total")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCampaignNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCampaignDomain converts a GORM CampaignModel to a domain Campaign entity.
func toCampaignDomain(data *model.CampaignModel) *entity.Campaign {
	if data == nil {
		return nil
	}

	return &entity.Campaign{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Deadline:    data.Deadline,
		Status:      entity.CampaignStatus(data.Status),
		TargetTotal: data.TargetTotal,
		ActualTotal: data.ActualTotal,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromCampaignDomain converts a domain Campaign entity to a GORM CampaignModel.
func fromCampaignDomain(data *entity.Campaign) *model.CampaignModel {
	if data == nil {
		return nil
	}

	return &model.CampaignModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Deadline:    data.Deadline,
		Status:      data.Status.String(),
		TargetTotal: data.TargetTotal,
		ActualTotal: data.ActualTotal,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

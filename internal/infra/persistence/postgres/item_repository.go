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

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// Create persists a new item.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAliasExists
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindByID retrieves a single item by its unique ID.
func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// FindByAlias retrieves an item by its alias within one campaign.
func (repo *itemRepository) FindByAlias(ctx context.Context, campaignID uuid.UUID, alias string) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ? AND alias = ?", campaignID, alias).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by alias")
	}

	return toItemDomain(&itemM), nil
}

// ListByCampaign retrieves all items registered to a campaign.
func (repo *itemRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Item, error) {
	var itemModels []*model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items by campaign")
	}

	items := make([]*entity.Item, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toItemDomain(itemM))
	}

	return items, nil
}

// AliasExists reports whether an alias is already taken within the campaign's
// item namespace.
func (repo *itemRepository) AliasExists(ctx context.Context, campaignID uuid.UUID, alias string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("campaign_id = ? AND alias = ?", campaignID, alias).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check item alias")
	}

	return count > 0, nil
}

// CountIncomplete returns how many of the campaign's items have not yet reached
// their target quantity.
func (repo *itemRepository) CountIncomplete(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("campaign_id = ? AND status <> ?", campaignID, entity.ItemStatusCompleted.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count incomplete items")
	}

	return count, nil
}

// CasConsumed sets the consumed quantity and status guarded by the quantity
// observed at read time. Zero affected rows means another assignment committed
// in between and the caller must retry with a fresh read.
func (repo *itemRepository) CasConsumed(ctx context.Context, id uuid.UUID, expectedConsumed, newConsumed int64, status entity.ItemStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ? AND consumed_qty = ?", id, expectedConsumed).
		Updates(map[string]any{
			"consumed_qty": newConsumed,
			"status":       status.String(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update consumed quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemStale
	}

	return nil
}

// SetConsumed overwrites the consumed quantity and status without a guard.
func (repo *itemRepository) SetConsumed(ctx context.Context, id uuid.UUID, consumed int64, status entity.ItemStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"consumed_qty": consumed,
			"status":       status.String(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set consumed quantity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toItemDomain converts a GORM ItemModel to a domain Item entity.
func toItemDomain(data *model.ItemModel) *entity.Item {
	if data == nil {
		return nil
	}

	return &entity.Item{
		ID:         data.ID,
		CampaignID: data.CampaignID,
		Alias:      data.Alias,
		SealedName: entity.SealedName{
			Ciphertext: data.Ciphertext,
			Nonce:      data.Nonce,
		},
		Kind:        data.Kind,
		TargetQty:   data.TargetQty,
		ConsumedQty: data.ConsumedQty,
		Status:      entity.ItemStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromItemDomain converts a domain Item entity to a GORM ItemModel.
func fromItemDomain(data *entity.Item) *model.ItemModel {
	if data == nil {
		return nil
	}

	return &model.ItemModel{
		ID:          data.ID,
		CampaignID:  data.CampaignID,
		Alias:       data.Alias,
		Ciphertext:  data.SealedName.Ciphertext,
		Nonce:       data.SealedName.Nonce,
		Kind:        data.Kind,
		TargetQty:   data.TargetQty,
		ConsumedQty: data.ConsumedQty,
		Status:      data.Status.String(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

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

// assignmentRepository implements the repository.AssignmentRepository interface.
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository is the constructor for assignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{
		db: db,
	}
}

// Create persists a new assignment.
func (repo *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	assignmentM := fromAssignmentDomain(assignment)

	if err := repo.db.WithContext(ctx).Create(assignmentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create assignment")
	}

	assignment.CreatedAt = assignmentM.CreatedAt

	return nil
}

// FindByID retrieves a single assignment by its unique ID.
func (repo *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignmentM model.AssignmentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by ID")
	}

	return toAssignmentDomain(&assignmentM), nil
}

// ListByPirate retrieves all assignments consumed by one pirate.
func (repo *assignmentRepository) ListByPirate(ctx context.Context, pirateID uuid.UUID) ([]*entity.Assignment, error) {
	var assignmentModels []*model.AssignmentModel

	if err := repo.db.WithContext(ctx).
		Where("pirate_id = ?", pirateID).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by pirate")
	}

	return toAssignmentDomainList(assignmentModels), nil
}

// ListByItem retrieves all assignments against one item.
func (repo *assignmentRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Assignment, error) {
	var assignmentModels []*model.AssignmentModel

	if err := repo.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by item")
	}

	return toAssignmentDomainList(assignmentModels), nil
}

// UpdatePaymentStatus updates the payment status of an assignment.
func (repo *assignmentRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AssignmentModel{}).
		Where("id = ?", id).
		Update("payment_status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update payment status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

// Delete removes an assignment.
func (repo *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.AssignmentModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete assignment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAssignmentDomain converts a GORM AssignmentModel to a domain Assignment entity.
func toAssignmentDomain(data *model.AssignmentModel) *entity.Assignment {
	if data == nil {
		return nil
	}

	return &entity.Assignment{
		ID:            data.ID,
		CampaignID:    data.CampaignID,
		ItemID:        data.ItemID,
		PirateID:      data.PirateID,
		Quantity:      data.Quantity,
		UnitPrice:     data.UnitPrice,
		TotalCost:     data.TotalCost,
		PaymentStatus: entity.PaymentStatus(data.PaymentStatus),
		SaleRef:       data.SaleRef,
		CreatedAt:     data.CreatedAt,
	}
}

func toAssignmentDomainList(models []*model.AssignmentModel) []*entity.Assignment {
	assignments := make([]*entity.Assignment, 0, len(models))
	for _, assignmentM := range models {
		assignments = append(assignments, toAssignmentDomain(assignmentM))
	}

	return assignments
}

// fromAssignmentDomain converts a domain Assignment entity to a GORM AssignmentModel.
func fromAssignmentDomain(data *entity.Assignment) *model.AssignmentModel {
	if data == nil {
		return nil
	}

	return &model.AssignmentModel{
		ID:            data.ID,
		CampaignID:    data.CampaignID,
		ItemID:        data.ItemID,
		PirateID:      data.PirateID,
		Quantity:      data.Quantity,
		UnitPrice:     data.UnitPrice,
		TotalCost:     data.TotalCost,
		PaymentStatus: data.PaymentStatus.String(),
		SaleRef:       data.SaleRef,
		CreatedAt:     data.CreatedAt,
	}
}

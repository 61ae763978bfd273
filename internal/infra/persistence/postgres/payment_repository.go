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

// paymentRepository implements the repository.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create persists a new payment.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	return nil
}

// ListByAssignment retrieves all payments recorded against one assignment.
func (repo *paymentRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("recorded_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments by assignment")
	}

	payments := make([]*entity.Payment, 0, len(paymentModels))
	for _, paymentM := range paymentModels {
		payments = append(payments, toPaymentDomain(paymentM))
	}

	return payments, nil
}

// SumByAssignment returns the total amount paid against one assignment.
func (repo *paymentRepository) SumByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error) {
	var sum int64

	if err := repo.db.WithContext(ctx).
		Model(&model.PaymentModel{}).
		Where("assignment_id = ?", assignmentID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum payments")
	}

	return sum, nil
}

// DeleteByAssignment removes all payments for an assignment.
func (repo *paymentRepository) DeleteByAssignment(ctx context.Context, assignmentID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Delete(&model.PaymentModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete payments")
	}

	return nil
}

// --- Mapper Functions ---

// toPaymentDomain converts a GORM PaymentModel to a domain Payment entity.
func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	return &entity.Payment{
		ID:           data.ID,
		AssignmentID: data.AssignmentID,
		Amount:       data.Amount,
		Method:       data.Method,
		RecordedAt:   data.RecordedAt,
	}
}

// fromPaymentDomain converts a domain Payment entity to a GORM PaymentModel.
func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	return &model.PaymentModel{
		ID:           data.ID,
		AssignmentID: data.AssignmentID,
		Amount:       data.Amount,
		Method:       data.Method,
		RecordedAt:   data.RecordedAt,
	}
}

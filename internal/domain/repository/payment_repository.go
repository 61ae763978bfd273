package repository

import (
	"context"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// PaymentRepository defines the standard operations for payment persistence.
// Payments are append-only; corrections happen through further payments.
type PaymentRepository interface {
	// Create persists a new payment entity to the storage.
	Create(ctx context.Context, payment *entity.Payment) error

	// ListByAssignment retrieves all payments recorded against one assignment.
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*entity.Payment, error)

	// SumByAssignment returns the total amount paid against one assignment.
	SumByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error)

	// DeleteByAssignment removes all payments for an assignment. Only reached
	// through an explicit pirate removal cascade.
	DeleteByAssignment(ctx context.Context, assignmentID uuid.UUID) error
}

package repository

import (
	"context"
	"errors"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAssignmentNotFound is a domain-specific error returned when an assignment is not found.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepository defines the standard operations for assignment persistence.
// Assignments are immutable once created except for their payment status.
type AssignmentRepository interface {
	// Create persists a new assignment entity to the storage.
	Create(ctx context.Context, assignment *entity.Assignment) error

	// FindByID retrieves a single assignment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)

	// ListByPirate retrieves all assignments consumed by one pirate.
	ListByPirate(ctx context.Context, pirateID uuid.UUID) ([]*entity.Assignment, error)

	// ListByItem retrieves all assignments against one item.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.Assignment, error)

	// UpdatePaymentStatus updates the payment status of an assignment.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status entity.PaymentStatus) error

	// Delete removes an assignment. Only reached through an explicit pirate
	// removal cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

package usecase

import (
	"context"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// AssignInput carries the fields of one consumption event. Quantity must be
// positive; unit price is in minor currency units and may be zero for freebies.
type AssignInput struct {
	CampaignID       uuid.UUID `validate:"required"`
	ParticipantAlias string    `validate:"required"`
	ItemAlias        string    `validate:"required"`
	Quantity         int64     `validate:"gt=0"`
	UnitPrice        int64     `validate:"gte=0"`
}

// AssignmentUsecase records consumption of an item by a pirate while enforcing
// stock limits. Repeated calls for the same pair are additive; every call is a
// new consumption event.
type AssignmentUsecase interface {
	// Assign atomically consumes quantity units of the item for the pirate,
	// records the movement with the external sales ledger and pushes the initial
	// outstanding debt. The stock mutation, the assignment row and the external
	// sale are all-or-nothing.
	Assign(ctx context.Context, input *AssignInput) (*entity.Assignment, error)

	// GetAssignment retrieves a single assignment by ID.
	GetAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
}

package repository

import (
	"context"
	"errors"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPirateNotFound is a domain-specific error returned when a pirate is not found.
var ErrPirateNotFound = errors.New("pirate not found")

// ErrAliasExists is returned when an alias is already taken within the campaign's
// namespace. Participant and item alias spaces are scoped independently.
var ErrAliasExists = errors.New("alias already exists in campaign")

// PirateRepository defines the standard operations for pirate persistence.
type PirateRepository interface {
	// Create persists a new pirate. Returns ErrAliasExists when the alias is
	// already taken within the campaign.
	Create(ctx context.Context, pirate *entity.Pirate) error

	// FindByID retrieves a single pirate by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Pirate, error)

	// FindByAlias retrieves a pirate by its alias within one campaign.
	FindByAlias(ctx context.Context, campaignID uuid.UUID, alias string) (*entity.Pirate, error)

	// ListByCampaign retrieves all pirates registered to a campaign.
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Pirate, error)

	// CountByCampaign returns the number of pirates registered to a campaign.
	// The item lock guard depends on this count.
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)

	// AliasExists reports whether an alias is already taken within the campaign's
	// participant namespace.
	AliasExists(ctx context.Context, campaignID uuid.UUID, alias string) (bool, error)

	// Delete removes a pirate. Cascading of its assignments is the caller's
	// responsibility inside the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCampaignNotFound is a domain-specific error returned when a campaign is not found.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrCampaignStale is returned when a guarded status update observed a different
// current status than expected. Status transitions are compare-and-set so that a
// cancellation committing first wins over a concurrent mutation.
var ErrCampaignStale = errors.New("campaign status changed since read")

// CampaignRepository defines the standard operations for campaign persistence.
// The application layer will depend on this interface, not the concrete implementation.
type CampaignRepository interface {
	// Create persists a new campaign entity to the storage.
	Create(ctx context.Context, campaign *entity.Campaign) error

	// FindByID retrieves a single campaign by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)

	// ListByOwner retrieves all campaigns belonging to one owning account.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Campaign, error)

	// UpdateStatus moves a campaign from the expected current status to the next
	// one. Returns ErrCampaignStale when the stored status no longer matches.
	UpdateStatus(ctx context.Context, id uuid.UUID, current, next entity.CampaignStatus) error

	// AddToActualTotal accumulates the given delta onto the campaign's actual total.
	AddToActualTotal(ctx context.Context, id uuid.UUID, delta int64) error
}

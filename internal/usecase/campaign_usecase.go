package usecase

import (
	"context"
	"time"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCampaignInput carries the fields needed to open a new campaign.
type CreateCampaignInput struct {
	OwnerID     string    `validate:"required"`
	Name        string    `validate:"required,min=2,max=120"`
	Deadline    time.Time `validate:"required"`
	TargetTotal int64     `validate:"gte=0"`
}

// AddItemInput carries the fields needed to register an item alias.
// CustomAlias, when set, is used instead of a generated alias; uniqueness is
// validated either way.
type AddItemInput struct {
	RealName    string `validate:"required,min=2,max=200"`
	Kind        string `validate:"max=60"`
	TargetQty   int64  `validate:"gt=0"`
	CustomAlias string `validate:"omitempty,min=2,max=120"`
}

// AddPirateInput carries the fields needed to register a participant alias.
type AddPirateInput struct {
	RealIdentity string `validate:"required,min=2,max=200"`
	CustomAlias  string `validate:"omitempty,min=2,max=120"`
}

// CampaignUsecase drives the campaign lifecycle and alias registration rules.
type CampaignUsecase interface {
	// CreateCampaign opens a campaign in Planning for the owning account. The
	// owner's key is derived on first use so sealing is possible from the start.
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*entity.Campaign, error)

	// GetCampaign retrieves a single campaign by ID.
	GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)

	// ListCampaigns retrieves all campaigns of one owning account.
	ListCampaigns(ctx context.Context, ownerID string) ([]*entity.Campaign, error)

	// AddItem registers an item alias. Allowed while Planning, or while Active
	// with zero pirates; items lock the instant the first pirate joins.
	AddItem(ctx context.Context, campaignID uuid.UUID, input *AddItemInput) (*entity.Item, error)

	// AddPirate registers a participant alias. Allowed any time before the
	// campaign reaches a terminal state. Adding the first pirate activates a
	// Planning campaign.
	AddPirate(ctx context.Context, campaignID uuid.UUID, input *AddPirateInput) (*entity.Pirate, error)

	// RemovePirate deletes a pirate by explicit owner action, cascading its
	// assignments and their payments, and releasing the consumed quantities.
	RemovePirate(ctx context.Context, campaignID uuid.UUID, alias string) error

	// CancelCampaign moves a non-terminal campaign to Cancelled. All historical
	// records are preserved.
	CancelCampaign(ctx context.Context, campaignID uuid.UUID) (*entity.Campaign, error)

	// ListItems retrieves all item aliases of a campaign.
	ListItems(ctx context.Context, campaignID uuid.UUID) ([]*entity.Item, error)

	// ListPirates retrieves all participant aliases of a campaign.
	ListPirates(ctx context.Context, campaignID uuid.UUID) ([]*entity.Pirate, error)

	// RevealPirate decrypts the real identity behind a participant alias using
	// the owning account's key.
	RevealPirate(ctx context.Context, campaignID uuid.UUID, alias string) (string, error)

	// RevealItem decrypts the real name behind an item alias using the owning
	// account's key.
	RevealItem(ctx context.Context, campaignID uuid.UUID, alias string) (string, error)
}

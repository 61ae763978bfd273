package repository

import (
	"context"
	"errors"

	"plunder/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is a domain-specific error returned when an item is not found.
var ErrItemNotFound = errors.New("item not found")

// ErrItemStale is returned when a compare-and-set consumption update observed a
// consumed quantity different from the one read. Callers retry with a fresh read;
// a blind increment is never performed.
var ErrItemStale = errors.New("item consumed quantity changed since read")

// ItemRepository defines the standard operations for item persistence.
type ItemRepository interface {
	// Create persists a new item. Returns ErrAliasExists when the alias is
	// already taken within the campaign.
	Create(ctx context.Context, item *entity.Item) error

	// FindByID retrieves a single item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// FindByAlias retrieves an item by its alias within one campaign.
	FindByAlias(ctx context.Context, campaignID uuid.UUID, alias string) (*entity.Item, error)

	// ListByCampaign retrieves all items registered to a campaign.
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*entity.Item, error)

	// AliasExists reports whether an alias is already taken within the campaign's
	// item namespace.
	AliasExists(ctx context.Context, campaignID uuid.UUID, alias string) (bool, error)

	// CountIncomplete returns how many of the campaign's items have not yet
	// reached their target quantity. Zero means the campaign auto-completes.
	CountIncomplete(ctx context.Context, campaignID uuid.UUID) (int64, error)

	// CasConsumed sets the item's consumed quantity and derived status, guarded
	// by the consumed quantity observed at read time. Returns ErrItemStale when
	// another assignment committed in between.
	CasConsumed(ctx context.Context, id uuid.UUID, expectedConsumed, newConsumed int64, status entity.ItemStatus) error

	// SetConsumed overwrites the consumed quantity and status without a guard.
	// Only used inside a transaction that already holds the rows, e.g. when a
	// pirate removal cascades its assignments.
	SetConsumed(ctx context.Context, id uuid.UUID, consumed int64, status entity.ItemStatus) error
}

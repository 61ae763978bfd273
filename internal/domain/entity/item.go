// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus represents the consumption progress of an item alias.
type ItemStatus string

const (
	// ItemStatusPending indicates nothing has been consumed yet.
	ItemStatusPending ItemStatus = "pending"
	// ItemStatusPartial indicates some, but not all, of the target quantity is consumed.
	ItemStatusPartial ItemStatus = "partial"
	// ItemStatusCompleted indicates the consumed quantity reached the target.
	ItemStatusCompleted ItemStatus = "completed"
)

// String returns the string representation of the ItemStatus.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid checks if the ItemStatus is a valid value.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPending, ItemStatusPartial, ItemStatusCompleted:
		return true
	default:
		return false
	}
}

// ItemStatusFor derives the item status from consumed and target quantities.
func ItemStatusFor(consumed, target int64) ItemStatus {
	switch {
	case consumed <= 0:
		return ItemStatusPending
	case consumed < target:
		return ItemStatusPartial
	default:
		return ItemStatusCompleted
	}
}

// Item is the anonymized stand-in for a real purchasable item within one campaign.
// Items lock the instant the campaign registers its first pirate.
type Item struct {
	ID          uuid.UUID  `json:"id"`           // The unique identifier of the item.
	CampaignID  uuid.UUID  `json:"campaign_id"`  // The campaign this item belongs to.
	Alias       string     `json:"alias"`        // Human-readable alias, unique per campaign.
	SealedName  SealedName `json:"-"`            // Authenticated ciphertext of the real item name.
	Kind        string     `json:"kind"`         // Free-form item category supplied by the owner.
	TargetQty   int64      `json:"target_qty"`   // Quantity the campaign intends to move.
	ConsumedQty int64      `json:"consumed_qty"` // Quantity consumed so far; never exceeds TargetQty.
	Status      ItemStatus `json:"status"`       // Derived consumption progress.
	CreatedAt   time.Time  `json:"created_at"`   // Timestamp of registration.
	UpdatedAt   time.Time  `json:"updated_at"`   // Timestamp of the last consumption.
}

// Remaining returns the quantity still available for assignment.
func (i *Item) Remaining() int64 {
	return i.TargetQty - i.ConsumedQty
}

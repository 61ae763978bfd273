// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents how much of an assignment's total cost has been paid.
type PaymentStatus string

const (
	// PaymentStatusPending indicates no payment has been recorded yet.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPartial indicates payments cover part of the total cost.
	PaymentStatusPartial PaymentStatus = "partial"
	// PaymentStatusPaid indicates payments cover the full total cost.
	PaymentStatusPaid PaymentStatus = "paid"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	default:
		return false
	}
}

// PaymentStatusFor derives the payment status from the paid amount and total cost.
func PaymentStatusFor(paid, totalCost int64) PaymentStatus {
	switch {
	case paid <= 0:
		return PaymentStatusPending
	case paid < totalCost:
		return PaymentStatusPartial
	default:
		return PaymentStatusPaid
	}
}

// Assignment is one recorded consumption event linking a pirate to an item.
// Immutable once created except for its payment status. Every assignment carries
// the reference handed back by the external sales ledger; the two are written in
// the same transaction, so an assignment without a sale reference cannot exist.
type Assignment struct {
	ID            uuid.UUID     `json:"id"`            // The unique identifier of the assignment.
	CampaignID    uuid.UUID     `json:"campaign_id"`   // The campaign this assignment belongs to.
	ItemID        uuid.UUID     `json:"item_id"`       // The consumed item.
	PirateID      uuid.UUID     `json:"pirate_id"`     // The consuming pirate.
	Quantity      int64         `json:"quantity"`      // Consumed quantity; always positive.
	UnitPrice     int64         `json:"unit_price"`    // Price per unit, in minor currency units.
	TotalCost     int64         `json:"total_cost"`    // Quantity times unit price.
	PaymentStatus PaymentStatus `json:"payment_status"`
	SaleRef       string        `json:"sale_ref"` // Opaque handle into the external sales ledger.
	CreatedAt     time.Time     `json:"created_at"`
}

// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the lifecycle state of a group-purchase campaign.
// Transitions are one-directional: Planning -> Active -> {Completed | Cancelled}.
type CampaignStatus string

const (
	// CampaignStatusPlanning indicates the campaign is being set up; items may still be added.
	CampaignStatusPlanning CampaignStatus = "planning"
	// CampaignStatusActive indicates at least one pirate or assignment exists.
	CampaignStatusActive CampaignStatus = "active"
	// CampaignStatusCompleted indicates every item reached its target quantity. Terminal.
	CampaignStatusCompleted CampaignStatus = "completed"
	// CampaignStatusCancelled indicates the owner cancelled the campaign. Terminal, records preserved.
	CampaignStatusCancelled CampaignStatus = "cancelled"
)

// String returns the string representation of the CampaignStatus.
func (s CampaignStatus) String() string {
	return string(s)
}

// IsValid checks if the CampaignStatus is a valid value.
func (s CampaignStatus) IsValid() bool {
	switch s {
	case CampaignStatusPlanning, CampaignStatusActive, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusCompleted || s == CampaignStatusCancelled
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// The lifecycle only ever moves forward; terminal states are retrievable but final.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	switch s {
	case CampaignStatusPlanning:
		return next == CampaignStatusActive || next == CampaignStatusCancelled
	case CampaignStatusActive:
		return next == CampaignStatusCompleted || next == CampaignStatusCancelled
	default:
		return false
	}
}

// Campaign represents a bounded group-purchase effort ("expedition") owned by a single account.
type Campaign struct {
	ID          uuid.UUID      `json:"id"`           // The unique identifier of the campaign.
	OwnerID     string         `json:"owner_id"`     // The owning account; scopes the encryption key.
	Name        string         `json:"name"`         // Display name of the campaign.
	Deadline    time.Time      `json:"deadline"`     // Deadline after which the campaign counts as overdue.
	Status      CampaignStatus `json:"status"`       // Current lifecycle state.
	TargetTotal int64          `json:"target_total"` // Planned total value, in minor currency units.
	ActualTotal int64          `json:"actual_total"` // Accumulated value of all assignments, in minor units.
	CreatedAt   time.Time      `json:"created_at"`   // Timestamp of creation.
	UpdatedAt   time.Time      `json:"updated_at"`   // Timestamp of the last modification.
}

// IsOverdue reports whether the campaign deadline has passed at the given instant
// while the campaign is still open. Pure predicate with no storage side effects;
// the periodic sweep that consumes it lives outside the core.
func (c *Campaign) IsOverdue(now time.Time) bool {
	if c.Status.IsTerminal() {
		return false
	}

	return now.After(c.Deadline)
}

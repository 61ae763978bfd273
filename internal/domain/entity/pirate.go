// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Pirate is the anonymized stand-in for a real participant identity within one campaign.
// The alias is unique within the campaign's participant namespace; the real identity is
// only recoverable by sealing/opening with the owning account's key.
type Pirate struct {
	ID         uuid.UUID  `json:"id"`          // The unique identifier of the pirate.
	CampaignID uuid.UUID  `json:"campaign_id"` // The campaign this pirate belongs to.
	Alias      string     `json:"alias"`       // Human-readable alias, unique per campaign.
	SealedName SealedName `json:"-"`           // Authenticated ciphertext of the real identity.
	CreatedAt  time.Time  `json:"created_at"`  // Timestamp of registration.
}

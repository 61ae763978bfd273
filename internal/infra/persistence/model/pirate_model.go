package model

import (
	"time"

	"github.com/google/uuid"
)

// PirateModel is the GORM-specific struct for the 'pirates' table. Only the
// alias and the authenticated ciphertext of the real identity are stored; the
// composite unique index enforces per-campaign alias uniqueness in the
// participant namespace.
type PirateModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CampaignID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pirates_campaign_alias"`
	Alias      string    `gorm:"type:varchar(160);not null;uniqueIndex:idx_pirates_campaign_alias"`
	Ciphertext []byte    `gorm:"type:bytea;not null"`
	Nonce      []byte    `gorm:"type:bytea;not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PirateModel) TableName() string {
	return "pirates"
}

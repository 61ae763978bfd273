package model

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel is the GORM-specific struct for the 'items' table. The composite
// unique index scopes alias uniqueness per campaign, independently of the
// pirates table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	CampaignID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_items_campaign_alias"`
	Alias       string    `gorm:"type:varchar(160);not null;uniqueIndex:idx_items_campaign_alias"`
	Ciphertext  []byte    `gorm:"type:bytea;not null"`
	Nonce       []byte    `gorm:"type:bytea;not null"`
	Kind        string    `gorm:"type:varchar(60)"`
	TargetQty   int64     `gorm:"not null"`
	ConsumedQty int64     `gorm:"not null;default:0"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

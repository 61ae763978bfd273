// Package model holds the GORM-specific structs the persistence layer maps the
// domain entities onto.
package model

import (
	"time"

	"github.com/google/uuid"
)

// CampaignModel is the GORM-specific struct for the 'campaigns' table.
type CampaignModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID     string    `gorm:"type:varchar(120);not null;index"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Deadline    time.Time `gorm:"not null"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	TargetTotal int64     `gorm:"not null;default:0"`
	ActualTotal int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CampaignModel) TableName() string {
	return "campaigns"
}

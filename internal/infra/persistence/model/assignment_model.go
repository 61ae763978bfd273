package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentModel is the GORM-specific struct for the 'assignments' table.
type AssignmentModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	CampaignID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PirateID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int64     `gorm:"not null"`
	UnitPrice     int64     `gorm:"not null"`
	TotalCost     int64     `gorm:"not null"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;index"`
	SaleRef       string    `gorm:"type:varchar(120);not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (AssignmentModel) TableName() string {
	return "assignments"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentModel is the GORM-specific struct for the 'payments' table. Rows are
// append-only; nothing in the core updates or deletes them outside the pirate
// removal cascade.
type PaymentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount       int64     `gorm:"not null"`
	Method       string    `gorm:"type:varchar(60)"`
	RecordedAt   time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

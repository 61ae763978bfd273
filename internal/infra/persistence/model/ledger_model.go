package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLotModel is the GORM-specific struct for the 'inventory_lots' table
// owned by the sales/inventory collaborator. Lots are decremented FIFO by
// received_at when consumption is recorded.
type InventoryLotModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ItemRef    string    `gorm:"type:varchar(160);not null;index"`
	Remaining  int64     `gorm:"not null"`
	ReceivedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (InventoryLotModel) TableName() string {
	return "inventory_lots"
}

// SaleRecordModel is the GORM-specific struct for the 'sale_records' table
// owned by the sales/inventory collaborator. Its primary key is the opaque
// sale reference handed back to the engine.
type SaleRecordModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	ItemRef          string    `gorm:"type:varchar(160);not null;index"`
	ParticipantAlias string    `gorm:"type:varchar(160);not null;index"`
	Quantity         int64     `gorm:"not null"`
	UnitPrice        int64     `gorm:"not null"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (SaleRecordModel) TableName() string {
	return "sale_records"
}

// DebtRecordModel is the GORM-specific struct for the 'debt_records' table
// owned by the debt collaborator. The idempotency key (one per assignment) is
// the primary key, which makes every push a plain upsert.
type DebtRecordModel struct {
	IdempotencyKey   string `gorm:"type:varchar(120);primary_key"`
	ParticipantAlias string `gorm:"type:varchar(160);not null;index"`
	Outstanding      int64  `gorm:"not null"`
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (DebtRecordModel) TableName() string {
	return "debt_records"
}

package model

import "time"

// OwnerSaltModel is the GORM-specific struct for the 'owner_salts' table. One
// immutable row per owning account; only the random salt is stored, never any
// derived key material.
type OwnerSaltModel struct {
	OwnerID   string `gorm:"type:varchar(120);primary_key"`
	Salt      []byte `gorm:"type:bytea;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (OwnerSaltModel) TableName() string {
	return "owner_salts"
}

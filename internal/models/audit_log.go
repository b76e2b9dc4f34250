package models

import "time"

// AuditLog rows are append-only: written once per catalog mutation,
// never updated or deleted.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action    string `gorm:"size:20;not null" json:"action"`
	ProductID string `gorm:"size:36;index" json:"product_id"`
	Details   string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}

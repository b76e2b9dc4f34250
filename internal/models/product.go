package models

import "time"

type Product struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name        string   `gorm:"size:255;not null" json:"name"`
	Description string   `gorm:"size:2000;not null" json:"description"`
	Tags        []string `gorm:"serializer:json;type:text" json:"tags"`
	Price       float64  `gorm:"not null" json:"price"`

	Category string `gorm:"size:100" json:"category,omitempty"`
	Brand    string `gorm:"size:100" json:"brand,omitempty"`

	ImageURL string `gorm:"size:512" json:"image_url,omitempty"`

	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

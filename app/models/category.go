package models

import "gorm.io/gorm"

// Category groups products for browsing. Slug is the URL identity and
// stays unique across the store.
type Category struct {
	gorm.Model
	Name     string    `gorm:"size:255;not null" json:"name"`
	Slug     string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Products []Product `gorm:"constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

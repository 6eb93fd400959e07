package models

import "gorm.io/gorm"

// Product is a sellable catalogue item.
//
// Price is stored in minor currency units (cents) to keep arithmetic
// exact. Stock is the on-hand quantity checkout decrements; it never
// goes below zero.
type Product struct {
	gorm.Model
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null;default:0" json:"price"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Image       string    `gorm:"size:512" json:"image"` // storage path, e.g. "products/a1b2.jpg"
}

// InStock reports whether at least qty units are available.
func (p *Product) InStock(qty int) bool { return p.Stock >= qty }

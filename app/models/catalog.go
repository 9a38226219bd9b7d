package models

import "gorm.io/gorm"

// Category groups medicines for browsing.
type Category struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// Medicine is one sellable catalog item. Stock and Sales move together
// inside the checkout transaction and never independently.
type Medicine struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
	Sales       int     `gorm:"not null;default:0" json:"sales"`
	CategoryID  uint    `gorm:"not null;index" json:"category_id"`
	Image       string  `gorm:"size:512" json:"image"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"not null;default:0" json:"review_count"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

package models

import "gorm.io/gorm"

// Address is a delivery address. Rows are deduplicated per user on the
// full (street, city, state, zip) tuple; at most one row per user carries
// IsDefault.
type Address struct {
	gorm.Model
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	Street    string `gorm:"size:255;not null" json:"street"`
	City      string `gorm:"size:100;not null" json:"city"`
	State     string `gorm:"size:100;not null" json:"state"`
	Zip       string `gorm:"size:20;not null" json:"zip"`
	Country   string `gorm:"size:100" json:"country"`
	Phone     string `gorm:"size:30" json:"phone"`
	IsDefault bool   `gorm:"not null;default:false" json:"is_default"`
}

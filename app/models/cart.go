package models

import "gorm.io/gorm"

// CartItem is one medicine in a user's cart. A (user, medicine) pair holds
// at most one row; re-adding increments Quantity.
type CartItem struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_cart_user_medicine" json:"user_id"`
	MedicineID uint `gorm:"not null;uniqueIndex:idx_cart_user_medicine" json:"medicine_id"`
	Quantity   int  `gorm:"not null;default:1" json:"quantity"`

	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine"`
}

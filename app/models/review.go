package models

import "gorm.io/gorm"

// Review is one user's rating of a medicine. One review per (user,
// medicine); the medicine's aggregate rating is recomputed on every write.
type Review struct {
	gorm.Model
	UserID     uint   `gorm:"not null;uniqueIndex:idx_review_user_medicine" json:"user_id"`
	MedicineID uint   `gorm:"not null;uniqueIndex:idx_review_user_medicine" json:"medicine_id"`
	Rating     int    `gorm:"not null" json:"rating"` // 1..5
	Comment    string `gorm:"type:text" json:"comment"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ForMedicine lists reviews of a medicine, newest first, with authors.
func (r *ReviewRepository) ForMedicine(medicineID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Where("medicine_id = ?", medicineID).Order("id desc").Find(&reviews).Error
	return reviews, err
}

// Upsert writes the user's review of a medicine, replacing any earlier one.
func (r *ReviewRepository) Upsert(review *models.Review) error {
	var existing models.Review
	err := r.db.Where("user_id = ? AND medicine_id = ?", review.UserID, review.MedicineID).First(&existing).Error

	switch {
	case err == nil:
		existing.Rating = review.Rating
		existing.Comment = review.Comment
		*review = existing
		return r.db.Save(&existing).Error

	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.Create(review).Error

	default:
		return err
	}
}

func (r *ReviewRepository) Delete(userID, id uint) (models.Review, error) {
	var review models.Review
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
		return review, err
	}
	return review, r.db.Delete(&review).Error
}

// Aggregate recomputes the average rating and count for a medicine.
func (r *ReviewRepository) Aggregate(medicineID uint) (float64, int, error) {
	var agg struct {
		Avg   float64
		Count int
	}
	err := r.db.Model(&models.Review{}).
		Where("medicine_id = ?", medicineID).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&agg).Error
	return agg.Avg, agg.Count, err
}

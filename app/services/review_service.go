package services

import (
	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
)

// ReviewService writes reviews and keeps each medicine's aggregate rating
// in step.
type ReviewService struct {
	reviews   *repositories.ReviewRepository
	medicines *repositories.MedicineRepository
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		reviews:   repositories.NewReviewRepository(db),
		medicines: repositories.NewMedicineRepository(db),
	}
}

func (s *ReviewService) ForMedicine(medicineID uint) ([]models.Review, error) {
	return s.reviews.ForMedicine(medicineID)
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"nullable,max=2000"`
}

// Upsert writes the user's review (one per medicine) and recomputes the
// medicine's average rating and count.
func (s *ReviewService) Upsert(userID, medicineID uint, in ReviewInput) (models.Review, error) {
	if _, err := s.medicines.FindByID(medicineID); err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		UserID:     userID,
		MedicineID: medicineID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	if err := s.reviews.Upsert(&review); err != nil {
		return review, err
	}

	return review, s.recompute(medicineID)
}

// Delete removes the user's review and recomputes the aggregate.
func (s *ReviewService) Delete(userID, reviewID uint) error {
	review, err := s.reviews.Delete(userID, reviewID)
	if err != nil {
		return err
	}
	return s.recompute(review.MedicineID)
}

func (s *ReviewService) recompute(medicineID uint) error {
	avg, count, err := s.reviews.Aggregate(medicineID)
	if err != nil {
		return err
	}
	return s.medicines.SetRating(medicineID, avg, count)
}

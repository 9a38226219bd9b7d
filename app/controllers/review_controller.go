package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/resources"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/bind"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/resource"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

func (c *ReviewController) ForMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID := pathID(r, "id")
	if medicineID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	reviews, err := c.service.ForMedicine(medicineID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list reviews", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, resource.Many(resources.ReviewResource{}, reviews))
}

func (c *ReviewController) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	medicineID := pathID(r, "id")
	if medicineID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid medicine id")
		return
	}

	var in services.ReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.service.Upsert(userID, medicineID, in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Medicine not found")
			return
		}
		logger.WithCtx(r.Context()).Error("save review", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, "Review saved", review)
}

func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	reviewID := pathID(r, "id")
	if reviewID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid review id")
		return
	}

	if err := c.service.Delete(userID, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Review not found")
			return
		}
		logger.WithCtx(r.Context()).Error("delete review", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Review deleted", nil)
}

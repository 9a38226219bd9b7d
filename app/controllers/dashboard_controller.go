package controllers

import (
	"errors"
	"net/http"

	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (c *DashboardController) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := c.service.Overview()
	if err != nil {
		logger.WithCtx(r.Context()).Error("dashboard overview", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, overview)
}

func (c *DashboardController) SalesReport(w http.ResponseWriter, r *http.Request) {
	sales, err := c.service.SalesReport(
		r.URL.Query().Get("start"),
		r.URL.Query().Get("end"),
	)
	if err != nil {
		if errors.Is(err, services.ErrBadDateRange) {
			response.Error(w, http.StatusBadRequest, "Dates must be YYYY-MM-DD")
			return
		}
		logger.WithCtx(r.Context()).Error("sales report", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, sales)
}

// Me serves the signed-in user's account summary.
func (c *DashboardController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	summary, err := c.service.ForUser(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("account summary", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, summary)
}

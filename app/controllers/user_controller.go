package controllers

import (
	"errors"
	"net/http"

	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// List is the admin account listing, optionally filtered by ?role=.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, pagination, err := c.service.All(
		r.URL.Query().Get("role"),
		queryInt(r, "page", 1),
		queryInt(r, "limit", 20),
	)
	if err != nil {
		if errors.Is(err, services.ErrBadRole) {
			response.Error(w, http.StatusBadRequest, "Invalid role filter")
			return
		}
		logger.WithCtx(r.Context()).Error("list users", "error", err)
		response.ServerError(w)
		return
	}
	response.Paginated(w, users, pagination)
}

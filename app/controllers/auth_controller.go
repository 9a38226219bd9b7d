package controllers

import (
	"errors"
	"net/http"

	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/bind"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.service.Register(in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Error(w, http.StatusConflict, "Email already registered")
			return
		}
		logger.WithCtx(r.Context()).Error("register failed", "error", err)
		response.ServerError(w)
		return
	}

	response.Created(w, "Account created", result)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.service.Login(in)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.ServerError(w)
		return
	}

	response.Message(w, "Logged in", result)
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(userID)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	response.Success(w, user)
}

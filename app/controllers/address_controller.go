package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/bind"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type AddressController struct {
	service *services.AddressService
}

func NewAddressController(service *services.AddressService) *AddressController {
	return &AddressController{service: service}
}

func (c *AddressController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	addresses, err := c.service.List(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list addresses", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, addresses)
}

func (c *AddressController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in services.AddressInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	address, err := c.service.Create(userID, in)
	if err != nil {
		logger.WithCtx(r.Context()).Error("create address", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, "Address saved", address)
}

func (c *AddressController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	var in services.AddressInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	address, err := c.service.Update(userID, id, in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Address not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update address", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Address updated", address)
}

func (c *AddressController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	if err := c.service.Delete(userID, id); err != nil {
		logger.WithCtx(r.Context()).Error("delete address", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Address deleted", nil)
}

func (c *AddressController) SetDefault(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid address id")
		return
	}

	if err := c.service.SetDefault(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Address not found")
			return
		}
		logger.WithCtx(r.Context()).Error("set default address", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Default address updated", nil)
}

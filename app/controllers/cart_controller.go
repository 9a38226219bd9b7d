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

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	cart, err := c.service.Get(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("load cart", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in services.AddToCartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.Add(userID, in)
	if err != nil {
		if errors.Is(err, services.ErrUnknownMedicine) {
			response.NotFound(w, "Medicine not found")
			return
		}
		logger.WithCtx(r.Context()).Error("add to cart", "error", err)
		response.ServerError(w)
		return
	}
	response.Created(w, "Added to cart", item)
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	itemID := pathID(r, "id")
	if itemID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	var in services.UpdateCartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.service.UpdateQuantity(userID, itemID, in)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Cart item not found")
			return
		}
		logger.WithCtx(r.Context()).Error("update cart", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Cart updated", item)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	itemID := pathID(r, "id")
	if itemID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid cart item id")
		return
	}

	if err := c.service.Remove(userID, itemID); err != nil {
		logger.WithCtx(r.Context()).Error("remove from cart", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Removed from cart", nil)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	if err := c.service.Clear(userID); err != nil {
		logger.WithCtx(r.Context()).Error("clear cart", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Cart cleared", nil)
}

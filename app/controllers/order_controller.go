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

type OrderController struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
}

func NewOrderController(checkout *services.CheckoutService, orders *services.OrderService) *OrderController {
	return &OrderController{checkout: checkout, orders: orders}
}

// Place runs the checkout. Validation problems come back as 400/422,
// a losing stock race as 409, and any transactional failure as one
// generic 500 — detail stays in the server log.
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	var in services.PlaceOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.checkout.PlaceOrder(userID, in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyOrder), errors.Is(err, services.ErrInvalidLine):
			response.Error(w, http.StatusBadRequest, "Order has no valid items")
		case errors.Is(err, services.ErrTotalMismatch):
			response.Error(w, http.StatusBadRequest, "Order total does not match item prices")
		case errors.Is(err, services.ErrInsufficientStock):
			response.Error(w, http.StatusConflict, "One or more items are out of stock")
		default:
			logger.WithCtx(r.Context()).Error("checkout failed", "error", err)
			response.ServerError(w)
		}
		return
	}

	response.Created(w, "Order placed", map[string]interface{}{"order": result})
}

func (c *OrderController) Mine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	orders, pagination, err := c.orders.ForUser(userID, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders", "error", err)
		response.ServerError(w)
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())
	role, _ := middleware.RoleFromCtx(r.Context())

	orderID := pathID(r, "id")
	if orderID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := c.orders.Find(orderID, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, services.ErrNotYourOrder) {
			response.NotFound(w, "Order not found")
			return
		}
		logger.WithCtx(r.Context()).Error("load order", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, order)
}

// Items lists one order's lines; users only see their own orders.
func (c *OrderController) Items(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())
	role, _ := middleware.RoleFromCtx(r.Context())

	orderID := pathID(r, "id")
	if orderID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	items, err := c.orders.Items(orderID, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, services.ErrNotYourOrder) {
			response.NotFound(w, "Order not found")
			return
		}
		logger.WithCtx(r.Context()).Error("load order items", "error", err)
		response.ServerError(w)
		return
	}
	response.Success(w, items)
}

func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	orders, pagination, err := c.orders.All(r.URL.Query().Get("status"),
		queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		if errors.Is(err, services.ErrBadStatus) {
			response.Error(w, http.StatusBadRequest, "Invalid order status")
			return
		}
		logger.WithCtx(r.Context()).Error("list all orders", "error", err)
		response.ServerError(w)
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := pathID(r, "id")
	if orderID == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var in struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(orderID, in.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadStatus):
			response.Error(w, http.StatusBadRequest, "Invalid order status")
		case errors.Is(err, services.ErrOrderClosed):
			response.Error(w, http.StatusConflict, "Cancelled orders cannot be reopened")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(w, "Order not found")
		default:
			logger.WithCtx(r.Context()).Error("update order status", "error", err)
			response.ServerError(w)
		}
		return
	}
	response.Message(w, "Order status updated", order)
}

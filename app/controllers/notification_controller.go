package controllers

import (
	"net/http"

	"github.com/hassanmehmood/medicart/app/resources"
	"github.com/hassanmehmood/medicart/app/services"
	"github.com/hassanmehmood/medicart/pkg/logger"
	"github.com/hassanmehmood/medicart/pkg/middleware"
	"github.com/hassanmehmood/medicart/pkg/resource"
	"github.com/hassanmehmood/medicart/pkg/response"
)

type NotificationController struct {
	service *services.NotificationService
}

func NewNotificationController(service *services.NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

func (c *NotificationController) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	notifications, err := c.service.Inbox(userID, queryInt(r, "limit", 50))
	if err != nil {
		logger.WithCtx(r.Context()).Error("load inbox", "error", err)
		response.ServerError(w)
		return
	}

	unread, err := c.service.UnreadCount(userID)
	if err != nil {
		logger.WithCtx(r.Context()).Error("count unread", "error", err)
		response.ServerError(w)
		return
	}

	response.Success(w, map[string]interface{}{
		"notifications": resource.Many(resources.NotificationResource{}, notifications),
		"unread":        unread,
	})
}

func (c *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	id := pathID(r, "id")
	if id == 0 {
		response.Error(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	if err := c.service.MarkRead(userID, id); err != nil {
		logger.WithCtx(r.Context()).Error("mark notification read", "error", err)
		response.ServerError(w)
		return
	}
	response.Message(w, "Notification read", nil)
}

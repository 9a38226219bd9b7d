package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
	"github.com/hassanmehmood/medicart/app/repositories"
	"github.com/hassanmehmood/medicart/pkg/notification"
)

// NotificationService exposes the in-app inbox and wires the database
// channel of the notification system to the notifications table.
type NotificationService struct {
	notifications *repositories.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{notifications: repositories.NewNotificationRepository(db)}
}

// Store is the database-channel sink; register it at boot with
// notification.SetStore(svc.Store).
func (s *NotificationService) Store(userID uint, data notification.DatabaseData) error {
	if userID == 0 {
		return nil // broadcast notifications have no inbox row
	}

	payload := ""
	if data.Data != nil {
		raw, err := json.Marshal(data.Data)
		if err == nil {
			payload = string(raw)
		}
	}

	return s.notifications.Create(&models.Notification{
		UserID:  userID,
		Type:    data.Type,
		Message: data.Message,
		Data:    payload,
	})
}

func (s *NotificationService) Inbox(userID uint, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.notifications.ForUser(userID, limit)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.notifications.MarkRead(userID, id)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.notifications.UnreadCount(userID)
}

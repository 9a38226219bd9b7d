package repositories

import (
	"time"

	"gorm.io/gorm"

	"github.com/hassanmehmood/medicart/app/models"
)

// NotificationRepository handles database operations for Notification.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ForUser lists a user's inbox, unread first, newest first.
func (r *NotificationRepository) ForUser(userID uint, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("read_at IS NULL desc, id desc").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead stamps one notification owned by userID.
func (r *NotificationRepository) MarkRead(userID, id uint) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", &now).Error
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&n).Error
	return n, err
}

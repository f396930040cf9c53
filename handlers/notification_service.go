// handlers/notification_service.go
package handlers

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// NotificationService owns creation and querying of in-app notifications.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// CreateNotification persists a notification for a single recipient.
func (s *NotificationService) CreateNotification(userID, workID uuid.UUID, title, message string) (*models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		WorkID:  workID,
		Title:   title,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		log.Printf("❌ Failed to create notification for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// NotificationFilters narrows the listing query.
type NotificationFilters struct {
	UnreadOnly bool
	WorkID     *uuid.UUID
	Limit      int
}

// GetNotificationsForUser returns the user's notifications, newest first.
func (s *NotificationService) GetNotificationsForUser(userID uuid.UUID, filters NotificationFilters) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)

	if filters.UnreadOnly {
		query = query.Where("read = ?", false)
	}
	if filters.WorkID != nil {
		query = query.Where("work_id = ?", *filters.WorkID)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}

// GetUnreadCount returns how many unread notifications the user has.
func (s *NotificationService) GetUnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationAsRead marks one notification as read, enforcing that
// it belongs to the given user.
func (s *NotificationService) MarkNotificationAsRead(notificationID, userID uuid.UUID) error {
	var n models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		return fmt.Errorf("notification not found: %w", err)
	}
	if n.Read {
		return nil
	}
	n.MarkAsRead()
	if err := s.db.Save(&n).Error; err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllNotificationsAsRead marks every unread notification for the user.
func (s *NotificationService) MarkAllNotificationsAsRead(userID uuid.UUID) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": gorm.Expr("NOW()")})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications as read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// NotifyWorkCreated tells the client a new work exists. Failures are
// logged, not returned: notification delivery never blocks a write.
func (s *NotificationService) NotifyWorkCreated(work *models.Work) {
	message := fmt.Sprintf("A new work %q has been created for you", work.Title)
	if _, err := s.CreateNotification(work.ClientID, work.ID, "New Work Created", message); err != nil {
		log.Printf("⚠️ Work %s created but client notification failed: %v", work.ID, err)
		return
	}
	log.Printf("✅ Notified client %s about new work %s", work.ClientID, work.ID)
}

// NotifySiteVisitCompleted tells the client a QC inspection happened on
// their work. Best effort, same as NotifyWorkCreated.
func (s *NotificationService) NotifySiteVisitCompleted(work *models.Work) {
	message := fmt.Sprintf("QC inspection completed for %s", work.Title)
	if _, err := s.CreateNotification(work.ClientID, work.ID, "Site Visit Completed", message); err != nil {
		log.Printf("⚠️ Site visit recorded but client notification failed: %v", err)
	}
}

// handlers/notification_digest.go
package handlers

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// DigestScheduler periodically rolls each opted-in user's unread
// notifications into a single summary notification.
type DigestScheduler struct {
	db      *gorm.DB
	service *NotificationService
	cron    *cron.Cron
}

func NewDigestScheduler(db *gorm.DB, service *NotificationService) *DigestScheduler {
	return &DigestScheduler{
		db:      db,
		service: service,
		cron:    cron.New(),
	}
}

// Start registers the daily (07:00) and weekly (Monday 07:00) digest jobs
// and starts the cron loop.
func (s *DigestScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 7 * * *", func() { s.runDigest("daily") }); err != nil {
		return fmt.Errorf("failed to schedule daily digest: %w", err)
	}
	if _, err := s.cron.AddFunc("0 7 * * 1", func() { s.runDigest("weekly") }); err != nil {
		return fmt.Errorf("failed to schedule weekly digest: %w", err)
	}
	s.cron.Start()
	log.Println("✅ Notification digest scheduler started")
	return nil
}

// Stop halts the cron loop. Running jobs finish first.
func (s *DigestScheduler) Stop() {
	s.cron.Stop()
	log.Println("⚠️ Notification digest scheduler stopped")
}

func (s *DigestScheduler) runDigest(frequency string) {
	var prefs []models.NotificationPreference
	err := s.db.Where("digest_enabled = ? AND digest_frequency = ?", true, frequency).Find(&prefs).Error
	if err != nil {
		log.Printf("❌ Digest run (%s) failed to load preferences: %v", frequency, err)
		return
	}

	for _, pref := range prefs {
		count, err := s.service.GetUnreadCount(pref.UserID)
		if err != nil {
			log.Printf("⚠️ Digest: unread count failed for user %s: %v", pref.UserID, err)
			continue
		}
		if count == 0 {
			continue
		}
		message := fmt.Sprintf("You have %d unread notifications waiting", count)
		if _, err := s.service.CreateNotification(pref.UserID, uuid.Nil, "Notification Digest", message); err != nil {
			log.Printf("⚠️ Digest: delivery failed for user %s: %v", pref.UserID, err)
		}
	}
	log.Printf("✅ Digest run (%s) completed for %d users", frequency, len(prefs))
}

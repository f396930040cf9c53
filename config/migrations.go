package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Work{}, &models.FinanceEntry{},
					&models.LabourLog{}, &models.SiteVisit{}, &models.TimelineEvent{},
					&models.Notification{}, &models.Equipment{})
			},
		},
		{
			ID: "20250829_add_notification_preferences",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.NotificationPreference{})
			},
		},
		{
			ID: "20250830_index_finance_work_type",
			Migrate: func(tx *gorm.DB) error {
				// Reconciliation reads are always (work_id, type) scans.
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_finance_entries_work_type ON finance_entries (work_id, type)").Error
			},
		},
	})

	return m.Migrate()
}

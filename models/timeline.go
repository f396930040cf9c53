package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timeline event labels written by the domain workflows.
const (
	EventWorkCreated = "Work Created"
	EventSiteVisit   = "Site Visit"
)

// TimelineEvent is one append-only audit entry describing a notable
// action on a work. Events are never updated or deleted.
type TimelineEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID      uuid.UUID `gorm:"type:uuid;not null;index" json:"workId"`
	Event       string    `gorm:"size:100;not null" json:"event"`
	Description string    `gorm:"type:text" json:"description"`
	Date        JSONTime  `gorm:"not null" json:"date"`
	CreatedBy   uuid.UUID `gorm:"type:uuid" json:"createdBy"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (e *TimelineEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

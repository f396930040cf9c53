package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app message for a single recipient, tied to a work.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkID  uuid.UUID `gorm:"type:uuid;index" json:"workId"`
	Title   string    `gorm:"size:200;not null" json:"title"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Read    bool      `gorm:"default:false;index" json:"read"`
	ReadAt  *time.Time `json:"readAt,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}

// MarkAsRead marks the notification as read. Idempotent: a second call
// leaves the record unchanged.
func (n *Notification) MarkAsRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
}

// NotificationDTO is the API response shape.
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	WorkID    uuid.UUID  `json:"workId"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ToDTO converts Notification to DTO
func (n *Notification) ToDTO() NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		WorkID:    n.WorkID,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationPreference stores per-user digest settings consumed by the
// digest scheduler.
type NotificationPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`

	DigestEnabled   bool   `gorm:"default:false" json:"digestEnabled"`
	DigestFrequency string `gorm:"size:20" json:"digestFrequency,omitempty"` // daily, weekly

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *NotificationPreference) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

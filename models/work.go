package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkStatus is the lifecycle state of a work (construction job).
type WorkStatus string

const (
	WorkStatusInProgress WorkStatus = "in_progress"
	WorkStatusCompleted  WorkStatus = "completed"
	WorkStatusCancelled  WorkStatus = "cancelled"
)

// workTransitions is the explicit transition table. completed and
// cancelled are terminal.
var workTransitions = map[WorkStatus][]WorkStatus{
	WorkStatusInProgress: {WorkStatusCompleted, WorkStatusCancelled},
	WorkStatusCompleted:  {},
	WorkStatusCancelled:  {},
}

// ValidWorkStatus reports whether s is a known status value.
func ValidWorkStatus(s WorkStatus) bool {
	_, ok := workTransitions[s]
	return ok
}

// Work represents a tracked construction job under contract with a client.
type Work struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	ClientID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"clientId"`
	Client         *User      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	EstimatedValue float64    `gorm:"not null" json:"estimatedValue"`
	ActualValue    float64    `gorm:"default:0" json:"actualValue"`
	Status         WorkStatus `gorm:"size:20;not null;index" json:"status"`
	StartDate      JSONTime   `gorm:"not null" json:"startDate"`
	EndDate        JSONTime   `gorm:"not null" json:"endDate"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid" json:"createdBy"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *Work) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// CanTransition reports whether the work may move to the target status.
func (w *Work) CanTransition(to WorkStatus) bool {
	for _, next := range workTransitions[w.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the work to the target status, rejecting moves the
// transition table does not allow.
func (w *Work) Transition(to WorkStatus) error {
	if !ValidWorkStatus(to) {
		return fmt.Errorf("unknown work status %q", to)
	}
	if !w.CanTransition(to) {
		return fmt.Errorf("illegal work transition %s -> %s", w.Status, to)
	}
	w.Status = to
	return nil
}

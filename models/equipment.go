package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentStatus tracks whether an item is on a site or in the yard.
type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentAssigned  EquipmentStatus = "assigned"
)

// Equipment is one inventory item. Invariant: status=available iff
// WorkID and AssignedTo are both nil.
type Equipment struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string          `gorm:"size:100;not null" json:"name"`
	Type       string          `gorm:"size:50;not null" json:"type"`
	Status     EquipmentStatus `gorm:"size:20;not null;index" json:"status"`
	DailyRate  float64         `gorm:"not null" json:"dailyRate"`
	WorkID     *uuid.UUID      `gorm:"type:uuid;index" json:"workId"`
	Work       *Work           `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	AssignedTo *string         `gorm:"size:100" json:"assignedTo"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// Assign moves an available item onto a work. Assigning an item that is
// already out is rejected rather than silently reassigned.
func (e *Equipment) Assign(workID uuid.UUID, assignedTo string) error {
	if e.Status == EquipmentAssigned {
		return fmt.Errorf("equipment %s is already assigned", e.ID)
	}
	if workID == uuid.Nil {
		return fmt.Errorf("assignment requires a work id")
	}
	if assignedTo == "" {
		return fmt.Errorf("assignment requires an assignee")
	}
	e.Status = EquipmentAssigned
	e.WorkID = &workID
	e.AssignedTo = &assignedTo
	return nil
}

// Release returns an assigned item to the yard, clearing both fields.
func (e *Equipment) Release() error {
	if e.Status == EquipmentAvailable {
		return fmt.Errorf("equipment %s is not assigned", e.ID)
	}
	e.Status = EquipmentAvailable
	e.WorkID = nil
	e.AssignedTo = nil
	return nil
}

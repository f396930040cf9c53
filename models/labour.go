package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkerEntry is one worker's line on a daily labour log.
type WorkerEntry struct {
	Name        string  `json:"name"`
	Role        string  `json:"role"`
	HoursWorked float64 `json:"hoursWorked"`
	HourlyRate  float64 `json:"hourlyRate"`
}

// Cost is the line cost for this worker.
func (w WorkerEntry) Cost() float64 {
	return w.HoursWorked * w.HourlyRate
}

// WorkerList is the ordered worker sequence stored as jsonb.
type WorkerList []WorkerEntry

// Scan implements the sql.Scanner interface
func (wl *WorkerList) Scan(value interface{}) error {
	if value == nil {
		*wl = WorkerList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("WorkerList.Scan: unsupported type %T", value)
		}
	}
	var workers []WorkerEntry
	if err := json.Unmarshal(bytes, &workers); err != nil {
		return err
	}
	*wl = workers
	return nil
}

// Value implements the driver.Valuer interface
func (wl WorkerList) Value() (driver.Value, error) {
	if wl == nil {
		wl = WorkerList{}
	}
	return json.Marshal([]WorkerEntry(wl))
}

// GormDataType defines the data type for GORM
func (WorkerList) GormDataType() string {
	return "jsonb"
}

// TotalCost sums hours x rate across all workers.
func (wl WorkerList) TotalCost() float64 {
	var total float64
	for _, w := range wl {
		total += w.Cost()
	}
	return total
}

// TotalHours sums hours across all workers.
func (wl WorkerList) TotalHours() float64 {
	var total float64
	for _, w := range wl {
		total += w.HoursWorked
	}
	return total
}

// Validate rejects empty sheets and malformed worker lines.
func (wl WorkerList) Validate() error {
	if len(wl) == 0 {
		return fmt.Errorf("labour log requires at least one worker")
	}
	for i, w := range wl {
		if w.Name == "" {
			return fmt.Errorf("worker %d: name required", i)
		}
		if w.HoursWorked < 0 || w.HourlyRate < 0 {
			return fmt.Errorf("worker %d: hours and rate must be non-negative", i)
		}
	}
	return nil
}

// LabourLog is one day's labour sheet for a work. TotalCost is computed at
// creation and stored; it is never recomputed from the workers array later.
type LabourLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"workId"`
	Work      *Work      `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	Date      JSONTime   `gorm:"not null" json:"date"`
	Workers   WorkerList `gorm:"type:jsonb;not null" json:"workers"`
	TotalCost float64    `gorm:"not null" json:"totalCost"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (l *LabourLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// DerivedExpense builds the single finance entry a labour log produces.
// The two records carry no back-link; pairing is by work, category and date.
func (l *LabourLog) DerivedExpense() FinanceEntry {
	return FinanceEntry{
		WorkID:      l.WorkID,
		Type:        FinanceEntryExpense,
		Category:    CategoryLabour,
		Amount:      l.TotalCost,
		Description: fmt.Sprintf("Daily labour cost - %s", l.Date.Time().Format("02/01/2006")),
		Date:        l.Date,
	}
}

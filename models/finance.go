package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FinanceEntryType separates money in from money out. Direction always
// comes from the type; amounts are never negative.
type FinanceEntryType string

const (
	FinanceEntryIncome  FinanceEntryType = "income"
	FinanceEntryExpense FinanceEntryType = "expense"
)

// CategoryLabour is the category used for entries derived from labour logs.
const CategoryLabour = "labour"

// FinanceEntry is one append-only ledger line against a work. Entries are
// either recorded directly or derived from a labour log submission.
type FinanceEntry struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"workId"`
	Work        *Work            `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	Type        FinanceEntryType `gorm:"size:10;not null;index" json:"type"`
	Category    string           `gorm:"size:100;not null;index" json:"category"`
	Amount      float64          `gorm:"not null" json:"amount"`
	Description string           `gorm:"type:text" json:"description"`
	Date        JSONTime         `gorm:"not null" json:"date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (f *FinanceEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

// Validate checks the invariants enforced before any write.
func (f *FinanceEntry) Validate() error {
	if f.Type != FinanceEntryIncome && f.Type != FinanceEntryExpense {
		return fmt.Errorf("unknown finance entry type %q", f.Type)
	}
	if f.Amount < 0 {
		return fmt.Errorf("finance entry amount must be non-negative, got %v", f.Amount)
	}
	if f.WorkID == uuid.Nil {
		return fmt.Errorf("finance entry requires a work id")
	}
	if f.Category == "" {
		return fmt.Errorf("finance entry requires a category")
	}
	return nil
}

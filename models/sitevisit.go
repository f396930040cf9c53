package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QCChecklistKeys is the fixed criteria set evaluated on every site visit.
var QCChecklistKeys = []string{
	"materialQuality",
	"safetyCompliance",
	"workmanship",
	"timelineAdherence",
}

// QC score bands. Lower bounds are inclusive; ties resolve upward.
const (
	QCBandExcellent      = "Excellent"
	QCBandGood           = "Good"
	QCBandNeedsAttention = "Needs Attention"
)

// QCChecklist maps each fixed criterion to pass/fail, stored as jsonb.
type QCChecklist map[string]bool

// Scan implements the sql.Scanner interface
func (qc *QCChecklist) Scan(value interface{}) error {
	if value == nil {
		*qc = QCChecklist{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("QCChecklist.Scan: unsupported type %T", value)
		}
	}
	var m map[string]bool
	if err := json.Unmarshal(bytes, &m); err != nil {
		return err
	}
	*qc = m
	return nil
}

// Value implements the driver.Valuer interface
func (qc QCChecklist) Value() (driver.Value, error) {
	if qc == nil {
		qc = QCChecklist{}
	}
	return json.Marshal(map[string]bool(qc))
}

// GormDataType defines the data type for GORM
func (QCChecklist) GormDataType() string {
	return "jsonb"
}

// Validate requires exactly the fixed key set, no more, no fewer.
func (qc QCChecklist) Validate() error {
	if len(qc) != len(QCChecklistKeys) {
		return fmt.Errorf("qc checklist must contain exactly %d entries, got %d", len(QCChecklistKeys), len(qc))
	}
	for _, key := range QCChecklistKeys {
		if _, ok := qc[key]; !ok {
			return fmt.Errorf("qc checklist missing entry %q", key)
		}
	}
	return nil
}

// Score counts the passed criteria.
func (qc QCChecklist) Score() int {
	score := 0
	for _, passed := range qc {
		if passed {
			score++
		}
	}
	return score
}

// Percentage is the pass rate over the full criteria set.
func (qc QCChecklist) Percentage() float64 {
	total := len(QCChecklistKeys)
	return float64(qc.Score()) / float64(total) * 100
}

// Band classifies the pass rate: >=80 Excellent, >=60 Good, else
// Needs Attention.
func (qc QCChecklist) Band() string {
	pct := qc.Percentage()
	switch {
	case pct >= 80:
		return QCBandExcellent
	case pct >= 60:
		return QCBandGood
	default:
		return QCBandNeedsAttention
	}
}

// SiteVisit records one QC inspection of a work site.
type SiteVisit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	WorkID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"workId"`
	Work        *Work          `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	VisitDate   JSONTime       `gorm:"not null" json:"visitDate"`
	Inspector   string         `gorm:"size:100;not null" json:"inspector"`
	QCChecklist QCChecklist    `gorm:"type:jsonb;not null" json:"qcChecklist"`
	Notes       string         `gorm:"type:text" json:"notes"`
	Photos      datatypes.JSON `gorm:"type:jsonb" json:"photos"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (v *SiteVisit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestWorkerListTotals(t *testing.T) {
	workers := WorkerList{
		{Name: "Ravi", Role: "mason", HoursWorked: 8, HourlyRate: 50},
		{Name: "Sita", Role: "casual", HoursWorked: 6, HourlyRate: 30},
		{Name: "Kumar", Role: "foreman", HoursWorked: 0, HourlyRate: 100},
	}

	if got := workers.TotalCost(); got != 580 {
		t.Errorf("TotalCost() = %v, want 580", got)
	}
	if got := workers.TotalHours(); got != 14 {
		t.Errorf("TotalHours() = %v, want 14", got)
	}
}

func TestWorkerListValidate(t *testing.T) {
	tests := []struct {
		name    string
		workers WorkerList
		wantErr bool
	}{
		{"valid single worker", WorkerList{{Name: "Ravi", HoursWorked: 8, HourlyRate: 50}}, false},
		{"empty list", WorkerList{}, true},
		{"nil list", nil, true},
		{"missing name", WorkerList{{HoursWorked: 8, HourlyRate: 50}}, true},
		{"negative hours", WorkerList{{Name: "Ravi", HoursWorked: -1, HourlyRate: 50}}, true},
		{"negative rate", WorkerList{{Name: "Ravi", HoursWorked: 8, HourlyRate: -5}}, true},
		{"zero hours allowed", WorkerList{{Name: "Ravi", HoursWorked: 0, HourlyRate: 50}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.workers.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivedExpense(t *testing.T) {
	workID := uuid.New()
	date := JSONTime(time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC))
	log := LabourLog{
		WorkID: workID,
		Date:   date,
		Workers: WorkerList{
			{Name: "Ravi", HoursWorked: 8, HourlyRate: 50},
			{Name: "Sita", HoursWorked: 4, HourlyRate: 25},
		},
		TotalCost: 500,
	}

	entry := log.DerivedExpense()
	if entry.WorkID != workID {
		t.Errorf("WorkID = %v, want %v", entry.WorkID, workID)
	}
	if entry.Type != FinanceEntryExpense {
		t.Errorf("Type = %q, want %q", entry.Type, FinanceEntryExpense)
	}
	if entry.Category != CategoryLabour {
		t.Errorf("Category = %q, want %q", entry.Category, CategoryLabour)
	}
	// Amount mirrors the stored total, not a recomputation.
	if entry.Amount != 500 {
		t.Errorf("Amount = %v, want 500", entry.Amount)
	}
	if entry.Description != "Daily labour cost - 15/08/2025" {
		t.Errorf("Description = %q", entry.Description)
	}
	if err := entry.Validate(); err != nil {
		t.Errorf("derived entry failed validation: %v", err)
	}
}

func TestWorkerListRoundTrip(t *testing.T) {
	workers := WorkerList{{Name: "Ravi", Role: "mason", HoursWorked: 8, HourlyRate: 50}}

	value, err := workers.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var scanned WorkerList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(scanned) != 1 || scanned[0].Name != "Ravi" || scanned[0].Cost() != 400 {
		t.Errorf("round trip mismatch: %+v", scanned)
	}
}

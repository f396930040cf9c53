package utils

import (
	"testing"

	"github.com/google/uuid"
	"p9e.in/buildtrack/models"
)

func expenseEntry(workID uuid.UUID, category string, amount float64) models.FinanceEntry {
	return models.FinanceEntry{
		ID:       uuid.New(),
		WorkID:   workID,
		Type:     models.FinanceEntryExpense,
		Category: category,
		Amount:   amount,
	}
}

func incomeEntry(workID uuid.UUID, category string, amount float64) models.FinanceEntry {
	return models.FinanceEntry{
		ID:       uuid.New(),
		WorkID:   workID,
		Type:     models.FinanceEntryIncome,
		Category: category,
		Amount:   amount,
	}
}

func TestReconcileWork(t *testing.T) {
	engine := NewReconciliationEngine()
	workID := uuid.New()

	tests := []struct {
		name           string
		estimatedValue float64
		entries        []models.FinanceEntry
		wantExpenses   float64
		wantIncome     float64
		wantNet        float64
		wantVariance   float64
		wantStatus     string
		wantPct        float64
		wantHasPct     bool
	}{
		{
			name:           "under budget",
			estimatedValue: 1000,
			entries: []models.FinanceEntry{
				expenseEntry(workID, "labour", 300),
				expenseEntry(workID, "materials", 200),
				incomeEntry(workID, "advance", 400),
			},
			wantExpenses: 500,
			wantIncome:   400,
			wantNet:      -100,
			wantVariance: 500,
			wantStatus:   BudgetStatusOn,
			wantPct:      50,
			wantHasPct:   true,
		},
		{
			name:           "over budget",
			estimatedValue: 100,
			entries: []models.FinanceEntry{
				expenseEntry(workID, "labour", 150),
			},
			wantExpenses: 150,
			wantIncome:   0,
			wantNet:      -150,
			wantVariance: -50,
			wantStatus:   BudgetStatusOver,
			wantPct:      150,
			wantHasPct:   true,
		},
		{
			name:           "exactly on budget",
			estimatedValue: 200,
			entries: []models.FinanceEntry{
				expenseEntry(workID, "labour", 200),
			},
			wantExpenses: 200,
			wantIncome:   0,
			wantNet:      -200,
			wantVariance: 0,
			wantStatus:   BudgetStatusOn,
			wantPct:      100,
			wantHasPct:   true,
		},
		{
			name:           "zero estimate omits completion percentage",
			estimatedValue: 0,
			entries: []models.FinanceEntry{
				expenseEntry(workID, "labour", 50),
			},
			wantExpenses: 50,
			wantIncome:   0,
			wantNet:      -50,
			wantVariance: -50,
			wantStatus:   BudgetStatusOver,
			wantHasPct:   false,
		},
		{
			name:           "no entries",
			estimatedValue: 1000,
			entries:        nil,
			wantExpenses:   0,
			wantIncome:     0,
			wantNet:        0,
			wantVariance:   1000,
			wantStatus:     BudgetStatusOn,
			wantPct:        0,
			wantHasPct:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			work := models.Work{ID: workID, Title: "Test Work", EstimatedValue: tt.estimatedValue}
			rec := engine.ReconcileWork(&work, tt.entries)

			if rec.TotalExpenses != tt.wantExpenses {
				t.Errorf("TotalExpenses = %v, want %v", rec.TotalExpenses, tt.wantExpenses)
			}
			if rec.TotalIncome != tt.wantIncome {
				t.Errorf("TotalIncome = %v, want %v", rec.TotalIncome, tt.wantIncome)
			}
			if rec.NetPosition != tt.wantNet {
				t.Errorf("NetPosition = %v, want %v", rec.NetPosition, tt.wantNet)
			}
			if rec.Variance != tt.wantVariance {
				t.Errorf("Variance = %v, want %v", rec.Variance, tt.wantVariance)
			}
			if rec.BudgetStatus != tt.wantStatus {
				t.Errorf("BudgetStatus = %q, want %q", rec.BudgetStatus, tt.wantStatus)
			}
			if rec.HasCompletionPercentage != tt.wantHasPct {
				t.Errorf("HasCompletionPercentage = %v, want %v", rec.HasCompletionPercentage, tt.wantHasPct)
			}
			if tt.wantHasPct && rec.CompletionPercentage != tt.wantPct {
				t.Errorf("CompletionPercentage = %v, want %v", rec.CompletionPercentage, tt.wantPct)
			}
		})
	}
}

func TestReconcileWorkIgnoresOtherWorks(t *testing.T) {
	engine := NewReconciliationEngine()
	workID := uuid.New()
	otherID := uuid.New()

	work := models.Work{ID: workID, EstimatedValue: 1000}
	entries := []models.FinanceEntry{
		expenseEntry(workID, "labour", 100),
		expenseEntry(otherID, "labour", 999),
		incomeEntry(otherID, "advance", 999),
	}

	rec := engine.ReconcileWork(&work, entries)
	if rec.TotalExpenses != 100 {
		t.Errorf("TotalExpenses = %v, want 100 (other work's entries leaked in)", rec.TotalExpenses)
	}
	if rec.TotalIncome != 0 {
		t.Errorf("TotalIncome = %v, want 0", rec.TotalIncome)
	}
}

func TestReconcileWorks(t *testing.T) {
	engine := NewReconciliationEngine()
	workA := models.Work{ID: uuid.New(), Title: "A", EstimatedValue: 500}
	workB := models.Work{ID: uuid.New(), Title: "B", EstimatedValue: 300}

	entries := []models.FinanceEntry{
		expenseEntry(workA.ID, "labour", 200),
		expenseEntry(workB.ID, "materials", 400),
	}

	recs := engine.ReconcileWorks([]models.Work{workA, workB}, entries)
	if len(recs) != 2 {
		t.Fatalf("got %d reconciliations, want 2", len(recs))
	}
	if recs[0].WorkID != workA.ID || recs[1].WorkID != workB.ID {
		t.Error("reconciliations not in input work order")
	}
	if recs[0].BudgetStatus != BudgetStatusOn {
		t.Errorf("work A status = %q, want %q", recs[0].BudgetStatus, BudgetStatusOn)
	}
	if recs[1].BudgetStatus != BudgetStatusOver {
		t.Errorf("work B status = %q, want %q", recs[1].BudgetStatus, BudgetStatusOver)
	}
}

func TestGroupByCategory(t *testing.T) {
	engine := NewReconciliationEngine()
	workID := uuid.New()

	entries := []models.FinanceEntry{
		expenseEntry(workID, "labour", 60),
		expenseEntry(workID, "labour", 40),
		incomeEntry(workID, "labour", 30),
		expenseEntry(workID, "materials", 500),
		incomeEntry(workID, "advance", 1000),
	}

	breakdown := engine.GroupByCategory(entries)
	if len(breakdown) != 3 {
		t.Fatalf("got %d categories, want 3", len(breakdown))
	}

	// First-seen order is preserved.
	wantOrder := []string{"labour", "materials", "advance"}
	for i, want := range wantOrder {
		if breakdown[i].Category != want {
			t.Errorf("breakdown[%d].Category = %q, want %q", i, breakdown[i].Category, want)
		}
	}

	labour := breakdown[0]
	if labour.Expenses != 100 {
		t.Errorf("labour expenses = %v, want 100", labour.Expenses)
	}
	if labour.Income != 30 {
		t.Errorf("labour income = %v, want 30", labour.Income)
	}
	if labour.Net != -70 {
		t.Errorf("labour net = %v, want -70", labour.Net)
	}

	advance := breakdown[2]
	if advance.Net != 1000 {
		t.Errorf("advance net = %v, want 1000", advance.Net)
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	engine := NewReconciliationEngine()
	breakdown := engine.GroupByCategory(nil)
	if len(breakdown) != 0 {
		t.Errorf("got %d categories for empty ledger, want 0", len(breakdown))
	}
}

func TestComputeDashboardStats(t *testing.T) {
	engine := NewReconciliationEngine()
	workA := models.Work{ID: uuid.New(), Status: models.WorkStatusInProgress}
	workB := models.Work{ID: uuid.New(), Status: models.WorkStatusCompleted}
	workC := models.Work{ID: uuid.New(), Status: models.WorkStatusCancelled}

	entries := []models.FinanceEntry{
		expenseEntry(workA.ID, "labour", 100),
		expenseEntry(workB.ID, "materials", 250),
		incomeEntry(workA.ID, "advance", 5000),
	}

	equipment := []models.Equipment{
		{ID: uuid.New(), Status: models.EquipmentAvailable},
		{ID: uuid.New(), Status: models.EquipmentAssigned},
		{ID: uuid.New(), Status: models.EquipmentAvailable},
	}

	stats := engine.ComputeDashboardStats([]models.Work{workA, workB, workC}, entries, equipment)

	if stats.TotalWorks != 3 {
		t.Errorf("TotalWorks = %d, want 3", stats.TotalWorks)
	}
	if stats.ActiveWorks != 1 {
		t.Errorf("ActiveWorks = %d, want 1", stats.ActiveWorks)
	}
	// Expenses only; income never counts toward the total.
	if stats.TotalExpenses != 350 {
		t.Errorf("TotalExpenses = %v, want 350", stats.TotalExpenses)
	}
	if stats.AvailableEquipment != 2 {
		t.Errorf("AvailableEquipment = %d, want 2", stats.AvailableEquipment)
	}
}

func BenchmarkReconcileWork(b *testing.B) {
	engine := NewReconciliationEngine()
	workID := uuid.New()
	work := models.Work{ID: workID, EstimatedValue: 100000}
	entries := make([]models.FinanceEntry, 0, 1000)
	for i := 0; i < 1000; i++ {
		entries = append(entries, expenseEntry(workID, "labour", float64(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.ReconcileWork(&work, entries)
	}
}

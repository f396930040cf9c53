package utils

import (
	"github.com/google/uuid"

	"p9e.in/buildtrack/models"
)

// ReconciliationEngine derives financial summaries from already-fetched
// collections. All methods are pure: they take snapshots and return derived
// views, recomputed from scratch on every call.
type ReconciliationEngine struct{}

// NewReconciliationEngine creates a new reconciliation engine
func NewReconciliationEngine() *ReconciliationEngine {
	return &ReconciliationEngine{}
}

// Budget status labels derived from the variance sign.
const (
	BudgetStatusOn   = "On Budget"
	BudgetStatusOver = "Over Budget"
)

// WorkReconciliation compares a work's estimate against its recorded ledger.
type WorkReconciliation struct {
	WorkID         uuid.UUID `json:"workId"`
	WorkTitle      string    `json:"workTitle"`
	EstimatedValue float64   `json:"estimatedValue"`
	TotalExpenses  float64   `json:"totalExpenses"`
	TotalIncome    float64   `json:"totalIncome"`
	NetPosition    float64   `json:"netPosition"`
	Variance       float64   `json:"variance"`
	BudgetStatus   string    `json:"budgetStatus"`

	// CompletionPercentage is left uncapped; values above 100 mean the
	// work has spent past its estimate. With a zero estimate the ratio is
	// undefined and the field is omitted.
	CompletionPercentage    float64 `json:"completionPercentage,omitempty"`
	HasCompletionPercentage bool    `json:"-"`
}

// CategoryBreakdown sums a single category's entries by direction.
type CategoryBreakdown struct {
	Category string  `json:"category"`
	Expenses float64 `json:"expenses"`
	Income   float64 `json:"income"`
	Net      float64 `json:"net"`
}

// DashboardStats are the four headline counters on the dashboard.
type DashboardStats struct {
	TotalWorks         int     `json:"totalWorks"`
	ActiveWorks        int     `json:"activeWorks"`
	TotalExpenses      float64 `json:"totalExpenses"`
	AvailableEquipment int     `json:"availableEquipment"`
}

// ReconcileWork computes the financial summary for one work from its
// finance entries. Entries for other works are ignored.
func (re *ReconciliationEngine) ReconcileWork(work *models.Work, entries []models.FinanceEntry) WorkReconciliation {
	rec := WorkReconciliation{
		WorkID:         work.ID,
		WorkTitle:      work.Title,
		EstimatedValue: work.EstimatedValue,
	}

	for _, entry := range entries {
		if entry.WorkID != work.ID {
			continue
		}
		switch entry.Type {
		case models.FinanceEntryExpense:
			rec.TotalExpenses += entry.Amount
		case models.FinanceEntryIncome:
			rec.TotalIncome += entry.Amount
		}
	}

	rec.NetPosition = rec.TotalIncome - rec.TotalExpenses
	rec.Variance = work.EstimatedValue - rec.TotalExpenses
	if rec.Variance >= 0 {
		rec.BudgetStatus = BudgetStatusOn
	} else {
		rec.BudgetStatus = BudgetStatusOver
	}

	if work.EstimatedValue != 0 {
		rec.CompletionPercentage = rec.TotalExpenses / work.EstimatedValue * 100
		rec.HasCompletionPercentage = true
	}

	return rec
}

// ReconcileWorks computes per-work summaries for every work in the snapshot.
func (re *ReconciliationEngine) ReconcileWorks(works []models.Work, entries []models.FinanceEntry) []WorkReconciliation {
	result := make([]WorkReconciliation, 0, len(works))
	for i := range works {
		result = append(result, re.ReconcileWork(&works[i], entries))
	}
	return result
}

// GroupByCategory sums income and expenses per category across all entries.
func (re *ReconciliationEngine) GroupByCategory(entries []models.FinanceEntry) []CategoryBreakdown {
	byCategory := make(map[string]*CategoryBreakdown)
	order := []string{}

	for _, entry := range entries {
		group, ok := byCategory[entry.Category]
		if !ok {
			group = &CategoryBreakdown{Category: entry.Category}
			byCategory[entry.Category] = group
			order = append(order, entry.Category)
		}
		switch entry.Type {
		case models.FinanceEntryExpense:
			group.Expenses += entry.Amount
		case models.FinanceEntryIncome:
			group.Income += entry.Amount
		}
	}

	result := make([]CategoryBreakdown, 0, len(order))
	for _, category := range order {
		group := byCategory[category]
		group.Net = group.Income - group.Expenses
		result = append(result, *group)
	}
	return result
}

// ComputeDashboardStats derives the dashboard counters from full snapshots.
func (re *ReconciliationEngine) ComputeDashboardStats(
	works []models.Work,
	entries []models.FinanceEntry,
	equipment []models.Equipment,
) DashboardStats {
	stats := DashboardStats{
		TotalWorks: len(works),
	}
	for _, work := range works {
		if work.Status == models.WorkStatusInProgress {
			stats.ActiveWorks++
		}
	}
	for _, entry := range entries {
		if entry.Type == models.FinanceEntryExpense {
			stats.TotalExpenses += entry.Amount
		}
	}
	for _, item := range equipment {
		if item.Status == models.EquipmentAvailable {
			stats.AvailableEquipment++
		}
	}
	return stats
}

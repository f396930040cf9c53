// handlers/finance_management.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
	"p9e.in/buildtrack/utils"
)

// FinanceHandler serves the append-only ledger and the reconciliation
// views built from it.
type FinanceHandler struct {
	db     *gorm.DB
	engine *utils.ReconciliationEngine
}

func NewFinanceHandler(db *gorm.DB) *FinanceHandler {
	return &FinanceHandler{db: db, engine: utils.NewReconciliationEngine()}
}

type createFinanceEntryReq struct {
	WorkID      uuid.UUID               `json:"workId"`
	Type        models.FinanceEntryType `json:"type"`
	Category    string                  `json:"category"`
	Amount      float64                 `json:"amount"`
	Description string                  `json:"description"`
	Date        models.JSONTime         `json:"date"`
}

// CreateFinanceEntry appends one ledger line. Entries are never updated
// or deleted afterwards; there is deliberately no PUT or DELETE route.
func (h *FinanceHandler) CreateFinanceEntry(w http.ResponseWriter, r *http.Request) {
	var req createFinanceEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	entry := models.FinanceEntry{
		WorkID:      req.WorkID,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := entry.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", req.WorkID).Error; err != nil {
		http.Error(w, "work not found", http.StatusBadRequest)
		return
	}

	if err := h.db.Create(&entry).Error; err != nil {
		http.Error(w, "failed to create finance entry: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// GetFinanceEntries lists ledger lines, filterable by work, type and
// category.
func (h *FinanceHandler) GetFinanceEntries(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var entries []models.FinanceEntry
	if err := params.Apply(h.db.Model(&models.FinanceEntry{})).Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// GetReconciliation returns the per-work financial summaries across all
// works, computed from full snapshots of both tables.
func (h *FinanceHandler) GetReconciliation(w http.ResponseWriter, r *http.Request) {
	var works []models.Work
	if err := h.db.Find(&works).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var entries []models.FinanceEntry
	if err := h.db.Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summaries := h.engine.ReconcileWorks(works, entries)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaries)
}

// GetCategoryBreakdown returns expense/income/net per category, over all
// entries or a single work when workId is given.
func (h *FinanceHandler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.FinanceEntry{})
	if workIDStr := r.URL.Query().Get("workId"); workIDStr != "" {
		workID, err := uuid.Parse(workIDStr)
		if err != nil {
			http.Error(w, "invalid workId", http.StatusBadRequest)
			return
		}
		query = query.Where("work_id = ?", workID)
	}

	var entries []models.FinanceEntry
	if err := query.Order("created_at ASC").Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	breakdown := h.engine.GroupByCategory(entries)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(breakdown)
}

// GetDashboardStats returns the landing page counters.
func (h *FinanceHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var works []models.Work
	if err := h.db.Find(&works).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var entries []models.FinanceEntry
	if err := h.db.Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	var equipment []models.Equipment
	if err := h.db.Find(&equipment).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stats := h.engine.ComputeDashboardStats(works, entries, equipment)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

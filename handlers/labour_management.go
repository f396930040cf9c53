// handlers/labour_management.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// LabourHandler serves daily labour logs and the derived expense entries.
type LabourHandler struct {
	db *gorm.DB
}

func NewLabourHandler(db *gorm.DB) *LabourHandler {
	return &LabourHandler{db: db}
}

type logLabourReq struct {
	WorkID  uuid.UUID         `json:"workId"`
	Date    models.JSONTime   `json:"date"`
	Workers models.WorkerList `json:"workers"`
}

// LogLabour persists the day's labour sheet and then records the matching
// labour expense. The expense write is best effort: the log stands even
// if the finance insert fails.
func (h *LabourHandler) LogLabour(w http.ResponseWriter, r *http.Request) {
	var req logLabourReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.WorkID == uuid.Nil {
		http.Error(w, "workId is required", http.StatusBadRequest)
		return
	}
	if req.Date.Time().IsZero() {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	if err := req.Workers.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", req.WorkID).Error; err != nil {
		http.Error(w, "work not found", http.StatusBadRequest)
		return
	}

	logEntry := models.LabourLog{
		WorkID:    req.WorkID,
		Date:      req.Date,
		Workers:   req.Workers,
		TotalCost: req.Workers.TotalCost(),
	}
	if err := h.db.Create(&logEntry).Error; err != nil {
		http.Error(w, "failed to create labour log: "+err.Error(), http.StatusInternalServerError)
		return
	}

	expense := logEntry.DerivedExpense()
	if err := h.db.Create(&expense).Error; err != nil {
		log.Printf("⚠️ Labour log %s saved but expense entry failed: %v", logEntry.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(logEntry)
}

// GetLabourLogs lists labour logs, filterable by work.
func (h *LabourHandler) GetLabourLogs(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var logs []models.LabourLog
	if err := params.Apply(h.db.Model(&models.LabourLog{})).Find(&logs).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// GetLabourLog returns one labour log with its work preloaded.
func (h *LabourHandler) GetLabourLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid labour log id", http.StatusBadRequest)
		return
	}

	var logEntry models.LabourLog
	if err := h.db.Preload("Work").First(&logEntry, "id = ?", id).Error; err != nil {
		http.Error(w, "labour log not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logEntry)
}

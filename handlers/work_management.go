// handlers/work_management.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/middleware"
	"p9e.in/buildtrack/models"
	"p9e.in/buildtrack/utils"
)

// WorkHandler serves the work CRUD surface plus the multi-step create
// workflow (work row, timeline event, client notification).
type WorkHandler struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewWorkHandler(db *gorm.DB, notifications *NotificationService) *WorkHandler {
	return &WorkHandler{db: db, notifications: notifications}
}

type createWorkReq struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	ClientID       uuid.UUID       `json:"clientId"`
	EstimatedValue float64         `json:"estimatedValue"`
	StartDate      models.JSONTime `json:"startDate"`
	EndDate        models.JSONTime `json:"endDate"`
}

type updateWorkReq struct {
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	EstimatedValue *float64           `json:"estimatedValue"`
	ActualValue    *float64           `json:"actualValue"`
	Status         *models.WorkStatus `json:"status"`
	StartDate      *models.JSONTime   `json:"startDate"`
	EndDate        *models.JSONTime   `json:"endDate"`
}

// CreateWork writes the work row, then appends the timeline event and
// notifies the client. The follow-up steps are best effort: if one fails
// the work still stands and the failure is logged.
func (h *WorkHandler) CreateWork(w http.ResponseWriter, r *http.Request) {
	var req createWorkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Description == "" || req.ClientID == uuid.Nil {
		http.Error(w, "title, description and clientId are required", http.StatusBadRequest)
		return
	}
	if req.EstimatedValue < 0 {
		http.Error(w, "estimatedValue cannot be negative", http.StatusBadRequest)
		return
	}
	if req.StartDate.Time().IsZero() || req.EndDate.Time().IsZero() {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	var client models.User
	if err := h.db.First(&client, "id = ?", req.ClientID).Error; err != nil {
		http.Error(w, "client not found", http.StatusBadRequest)
		return
	}

	work := models.Work{
		Title:          req.Title,
		Description:    req.Description,
		ClientID:       req.ClientID,
		EstimatedValue: req.EstimatedValue,
		ActualValue:    0,
		Status:         models.WorkStatusInProgress,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CreatedBy:      middleware.GetUserID(r),
	}
	if err := h.db.Create(&work).Error; err != nil {
		http.Error(w, "failed to create work: "+err.Error(), http.StatusInternalServerError)
		return
	}

	event := models.TimelineEvent{
		WorkID:      work.ID,
		Event:       models.EventWorkCreated,
		Description: work.Title + " has been created",
		Date:        work.StartDate,
		CreatedBy:   work.CreatedBy,
	}
	if err := h.db.Create(&event).Error; err != nil {
		log.Printf("⚠️ Work %s created but timeline event failed: %v", work.ID, err)
	}

	h.notifications.NotifyWorkCreated(&work)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(work)
}

// GetWorks lists works. Clients only see their own works; staff see all,
// optionally narrowed by filter/sort/expand query params.
func (h *WorkHandler) GetWorks(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query := h.db.Model(&models.Work{})
	if claims := middleware.GetClaims(r); claims != nil && claims.Role == models.RoleClient {
		query = query.Where("client_id = ?", middleware.GetUserID(r))
	}
	query = params.Apply(query)

	var works []models.Work
	if err := query.Find(&works).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(works)
}

// GetWork returns one work with its client preloaded.
func (h *WorkHandler) GetWork(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work id", http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := h.db.Preload("Client").First(&work, "id = ?", id).Error; err != nil {
		http.Error(w, "work not found", http.StatusNotFound)
		return
	}
	if claims := middleware.GetClaims(r); claims != nil && claims.Role == models.RoleClient && work.ClientID != middleware.GetUserID(r) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(work)
}

// UpdateWork patches a work. Status changes go through the transition
// table; an illegal move is rejected without touching the row.
func (h *WorkHandler) UpdateWork(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work id", http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", id).Error; err != nil {
		http.Error(w, "work not found", http.StatusNotFound)
		return
	}

	var req updateWorkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Status != nil && *req.Status != work.Status {
		if err := work.Transition(*req.Status); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
	}
	if req.Title != nil {
		work.Title = *req.Title
	}
	if req.Description != nil {
		work.Description = *req.Description
	}
	if req.EstimatedValue != nil {
		if *req.EstimatedValue < 0 {
			http.Error(w, "estimatedValue cannot be negative", http.StatusBadRequest)
			return
		}
		work.EstimatedValue = *req.EstimatedValue
	}
	if req.ActualValue != nil {
		work.ActualValue = *req.ActualValue
	}
	if req.StartDate != nil {
		work.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		work.EndDate = *req.EndDate
	}

	if err := h.db.Save(&work).Error; err != nil {
		http.Error(w, "failed to update work: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(work)
}

// DeleteWork soft deletes a work. Its labour logs, finance entries and
// timeline survive for reporting.
func (h *WorkHandler) DeleteWork(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work id", http.StatusBadRequest)
		return
	}

	result := h.db.Delete(&models.Work{}, "id = ?", id)
	if result.Error != nil {
		http.Error(w, "failed to delete work: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "work not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetWorkReconciliation returns the financial summary for one work.
func (h *WorkHandler) GetWorkReconciliation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work id", http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", id).Error; err != nil {
		http.Error(w, "work not found", http.StatusNotFound)
		return
	}

	var entries []models.FinanceEntry
	if err := h.db.Where("work_id = ?", id).Find(&entries).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	engine := utils.NewReconciliationEngine()
	summary := engine.ReconcileWork(&work, entries)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

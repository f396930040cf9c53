// handlers/timeline_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// TimelineHandler serves the read side of the per-work audit trail.
// Events are only ever written by the domain workflows.
type TimelineHandler struct {
	db *gorm.DB
}

func NewTimelineHandler(db *gorm.DB) *TimelineHandler {
	return &TimelineHandler{db: db}
}

// GetWorkTimeline lists a work's events in chronological order.
func (h *TimelineHandler) GetWorkTimeline(w http.ResponseWriter, r *http.Request) {
	workID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid work id", http.StatusBadRequest)
		return
	}

	var events []models.TimelineEvent
	if err := h.db.Where("work_id = ?", workID).Order("date ASC, created_at ASC").Find(&events).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// GetTimelineEvents lists events across works, filterable by work.
func (h *TimelineHandler) GetTimelineEvents(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var events []models.TimelineEvent
	if err := params.Apply(h.db.Model(&models.TimelineEvent{})).Find(&events).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

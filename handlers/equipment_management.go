// handlers/equipment_management.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/models"
)

// EquipmentHandler serves the equipment inventory and assignment moves.
type EquipmentHandler struct {
	db *gorm.DB
}

func NewEquipmentHandler(db *gorm.DB) *EquipmentHandler {
	return &EquipmentHandler{db: db}
}

type createEquipmentReq struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	DailyRate float64 `json:"dailyRate"`
}

type assignEquipmentReq struct {
	WorkID     uuid.UUID `json:"workId"`
	AssignedTo string    `json:"assignedTo"`
}

// CreateEquipment registers a new inventory item, always available.
func (h *EquipmentHandler) CreateEquipment(w http.ResponseWriter, r *http.Request) {
	var req createEquipmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Type == "" {
		http.Error(w, "name and type are required", http.StatusBadRequest)
		return
	}

	item := models.Equipment{
		Name:      req.Name,
		Type:      req.Type,
		Status:    models.EquipmentAvailable,
		DailyRate: req.DailyRate,
	}
	if err := h.db.Create(&item).Error; err != nil {
		http.Error(w, "failed to create equipment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// GetEquipment lists inventory, filterable by status or work.
func (h *EquipmentHandler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var items []models.Equipment
	if err := params.Apply(h.db.Model(&models.Equipment{})).Find(&items).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// AssignEquipment puts an available item onto a work site.
func (h *EquipmentHandler) AssignEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid equipment id", http.StatusBadRequest)
		return
	}

	var req assignEquipmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var item models.Equipment
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "equipment not found", http.StatusNotFound)
		return
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", req.WorkID).Error; err != nil {
		http.Error(w, "work not found", http.StatusBadRequest)
		return
	}

	if err := item.Assign(req.WorkID, req.AssignedTo); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err := h.db.Save(&item).Error; err != nil {
		http.Error(w, "failed to assign equipment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// ReleaseEquipment returns an assigned item to the yard.
func (h *EquipmentHandler) ReleaseEquipment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid equipment id", http.StatusBadRequest)
		return
	}

	var item models.Equipment
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		http.Error(w, "equipment not found", http.StatusNotFound)
		return
	}

	if err := item.Release(); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	// Clear both columns explicitly so the row can't keep a stale link.
	updates := map[string]interface{}{
		"status":      item.Status,
		"work_id":     nil,
		"assigned_to": nil,
	}
	if err := h.db.Model(&item).Updates(updates).Error; err != nil {
		http.Error(w, "failed to release equipment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

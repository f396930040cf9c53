// handlers/site_visit_management.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"p9e.in/buildtrack/middleware"
	"p9e.in/buildtrack/models"
)

// SiteVisitHandler serves QC inspection records and their follow-up
// timeline and notification steps.
type SiteVisitHandler struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewSiteVisitHandler(db *gorm.DB, notifications *NotificationService) *SiteVisitHandler {
	return &SiteVisitHandler{db: db, notifications: notifications}
}

type recordSiteVisitReq struct {
	WorkID      uuid.UUID          `json:"workId"`
	VisitDate   models.JSONTime    `json:"visitDate"`
	Inspector   string             `json:"inspector"`
	QCChecklist models.QCChecklist `json:"qcChecklist"`
	Notes       string             `json:"notes"`
	Photos      datatypes.JSON     `json:"photos"`
}

// siteVisitResp is a visit plus the derived QC reading.
type siteVisitResp struct {
	models.SiteVisit
	QCScore      int     `json:"qcScore"`
	QCPercentage float64 `json:"qcPercentage"`
	QCBand       string  `json:"qcBand"`
}

func toSiteVisitResp(v models.SiteVisit) siteVisitResp {
	return siteVisitResp{
		SiteVisit:    v,
		QCScore:      v.QCChecklist.Score(),
		QCPercentage: v.QCChecklist.Percentage(),
		QCBand:       v.QCChecklist.Band(),
	}
}

// RecordSiteVisit stores the inspection, appends the timeline event and
// notifies the client. If the work can't be resolved for the notification
// step, that step is skipped; the visit record always stands.
func (h *SiteVisitHandler) RecordSiteVisit(w http.ResponseWriter, r *http.Request) {
	var req recordSiteVisitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.WorkID == uuid.Nil {
		http.Error(w, "workId is required", http.StatusBadRequest)
		return
	}
	if req.VisitDate.Time().IsZero() {
		http.Error(w, "visitDate is required", http.StatusBadRequest)
		return
	}
	if err := req.QCChecklist.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inspector := req.Inspector
	if inspector == "" {
		if claims := middleware.GetClaims(r); claims != nil {
			inspector = claims.Name
		}
	}
	if inspector == "" {
		http.Error(w, "inspector is required", http.StatusBadRequest)
		return
	}

	visit := models.SiteVisit{
		WorkID:      req.WorkID,
		VisitDate:   req.VisitDate,
		Inspector:   inspector,
		QCChecklist: req.QCChecklist,
		Notes:       req.Notes,
		Photos:      req.Photos,
	}
	if err := h.db.Create(&visit).Error; err != nil {
		http.Error(w, "failed to record site visit: "+err.Error(), http.StatusInternalServerError)
		return
	}

	event := models.TimelineEvent{
		WorkID:      visit.WorkID,
		Event:       models.EventSiteVisit,
		Description: "QC inspection completed by " + inspector,
		Date:        visit.VisitDate,
		CreatedBy:   middleware.GetUserID(r),
	}
	if err := h.db.Create(&event).Error; err != nil {
		log.Printf("⚠️ Site visit %s recorded but timeline event failed: %v", visit.ID, err)
	}

	var work models.Work
	if err := h.db.First(&work, "id = ?", visit.WorkID).Error; err == nil {
		h.notifications.NotifySiteVisitCompleted(&work)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toSiteVisitResp(visit))
}

// GetSiteVisits lists inspections with QC score, percentage and band
// attached to each record.
func (h *SiteVisitHandler) GetSiteVisits(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var visits []models.SiteVisit
	if err := params.Apply(h.db.Model(&models.SiteVisit{})).Find(&visits).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]siteVisitResp, len(visits))
	for i, v := range visits {
		out[i] = toSiteVisitResp(v)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetSiteVisit returns one inspection with QC reading and work preloaded.
func (h *SiteVisitHandler) GetSiteVisit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid site visit id", http.StatusBadRequest)
		return
	}

	var visit models.SiteVisit
	if err := h.db.Preload("Work").First(&visit, "id = ?", id).Error; err != nil {
		http.Error(w, "site visit not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toSiteVisitResp(visit))
}

// handlers/notification_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/middleware"
	"p9e.in/buildtrack/models"
)

// NotificationHandler is the HTTP layer over NotificationService. Every
// route is scoped to the caller's own notifications.
type NotificationHandler struct {
	service *NotificationService
	db      *gorm.DB
}

func NewNotificationHandler(db *gorm.DB, service *NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service, db: db}
}

// GetMyNotifications lists the caller's notifications, newest first.
func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	filters := NotificationFilters{}
	if r.URL.Query().Get("unread") == "true" {
		filters.UnreadOnly = true
	}
	if workIDStr := r.URL.Query().Get("workId"); workIDStr != "" {
		workID, err := uuid.Parse(workIDStr)
		if err != nil {
			http.Error(w, "invalid workId", http.StatusBadRequest)
			return
		}
		filters.WorkID = &workID
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			filters.Limit = l
		}
	}

	notifications, err := h.service.GetNotificationsForUser(userID, filters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]models.NotificationDTO, len(notifications))
	for i, n := range notifications {
		out[i] = n.ToDTO()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// GetUnreadCount returns the caller's unread badge count.
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	count, err := h.service.GetUnreadCount(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"unread": count})
}

// MarkAsRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	notificationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	if err := h.service.MarkNotificationAsRead(notificationID, userID); err != nil {
		http.Error(w, "notification not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllAsRead marks every unread notification the caller has.
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	updated, err := h.service.MarkAllNotificationsAsRead(userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"updated": updated})
}

type preferenceReq struct {
	DigestEnabled   *bool   `json:"digestEnabled"`
	DigestFrequency *string `json:"digestFrequency"`
}

// GetMyPreferences returns the caller's digest settings, creating the
// default row on first read.
func (h *NotificationHandler) GetMyPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var pref models.NotificationPreference
	if err := h.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		pref = models.NotificationPreference{UserID: userID}
		if err := h.db.Create(&pref).Error; err != nil {
			http.Error(w, "failed to create preferences: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

// UpdateMyPreferences patches the caller's digest settings.
func (h *NotificationHandler) UpdateMyPreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == uuid.Nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req preferenceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.DigestFrequency != nil && *req.DigestFrequency != "daily" && *req.DigestFrequency != "weekly" {
		http.Error(w, "digestFrequency must be daily or weekly", http.StatusBadRequest)
		return
	}

	var pref models.NotificationPreference
	if err := h.db.Where("user_id = ?", userID).First(&pref).Error; err != nil {
		pref = models.NotificationPreference{UserID: userID}
	}
	if req.DigestEnabled != nil {
		pref.DigestEnabled = *req.DigestEnabled
	}
	if req.DigestFrequency != nil {
		pref.DigestFrequency = *req.DigestFrequency
	}

	if err := h.db.Save(&pref).Error; err != nil {
		http.Error(w, "failed to update preferences: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

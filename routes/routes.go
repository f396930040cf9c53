package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/buildtrack/handlers"
	"p9e.in/buildtrack/middleware"
	"p9e.in/buildtrack/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(db *gorm.DB) http.Handler {
	r := mux.NewRouter()

	notificationService := handlers.NewNotificationService(db)
	workHandler := handlers.NewWorkHandler(db, notificationService)
	labourHandler := handlers.NewLabourHandler(db)
	siteVisitHandler := handlers.NewSiteVisitHandler(db, notificationService)
	equipmentHandler := handlers.NewEquipmentHandler(db)
	financeHandler := handlers.NewFinanceHandler(db)
	timelineHandler := handlers.NewTimelineHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db, notificationService)

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(
		http.HandlerFunc(handlers.GetCurrentUser))).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/profile", handleProfile).Methods("GET")
	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")
	api.HandleFunc("/me/password", handlers.ChangePassword).Methods("PUT")

	// Works
	registerCRUDRoutes(api, "/works", "work", crudHandlers{
		getAll: workHandler.GetWorks,
		create: workHandler.CreateWork,
		getOne: workHandler.GetWork,
		update: workHandler.UpdateWork,
		delete: workHandler.DeleteWork,
	})
	api.Handle("/works/{id}/timeline", middleware.RequirePermission("timeline:read")(
		http.HandlerFunc(timelineHandler.GetWorkTimeline))).Methods("GET")
	api.Handle("/works/{id}/reconciliation", middleware.RequirePermission("finance:read")(
		http.HandlerFunc(workHandler.GetWorkReconciliation))).Methods("GET")

	// Labour logs
	api.Handle("/labour-logs", middleware.RequirePermission("labour:read")(
		http.HandlerFunc(labourHandler.GetLabourLogs))).Methods("GET")
	api.Handle("/labour-logs", middleware.RequirePermission("labour:create")(
		http.HandlerFunc(labourHandler.LogLabour))).Methods("POST")
	api.Handle("/labour-logs/{id}", middleware.RequirePermission("labour:read")(
		http.HandlerFunc(labourHandler.GetLabourLog))).Methods("GET")

	// Site visits
	api.Handle("/site-visits", middleware.RequirePermission("site_visit:read")(
		http.HandlerFunc(siteVisitHandler.GetSiteVisits))).Methods("GET")
	api.Handle("/site-visits", middleware.RequirePermission("site_visit:create")(
		http.HandlerFunc(siteVisitHandler.RecordSiteVisit))).Methods("POST")
	api.Handle("/site-visits/{id}", middleware.RequirePermission("site_visit:read")(
		http.HandlerFunc(siteVisitHandler.GetSiteVisit))).Methods("GET")

	// Equipment
	api.Handle("/equipment", middleware.RequirePermission("equipment:read")(
		http.HandlerFunc(equipmentHandler.GetEquipment))).Methods("GET")
	api.Handle("/equipment/{id}/assign", middleware.RequirePermission("equipment:assign")(
		http.HandlerFunc(equipmentHandler.AssignEquipment))).Methods("POST")
	api.Handle("/equipment/{id}/release", middleware.RequirePermission("equipment:assign")(
		http.HandlerFunc(equipmentHandler.ReleaseEquipment))).Methods("POST")

	// Finance ledger and reconciliation views. The ledger is append-only:
	// no update or delete routes exist.
	api.Handle("/finances", middleware.RequirePermission("finance:read")(
		http.HandlerFunc(financeHandler.GetFinanceEntries))).Methods("GET")
	api.Handle("/finances", middleware.RequirePermission("finance:create")(
		http.HandlerFunc(financeHandler.CreateFinanceEntry))).Methods("POST")
	api.Handle("/finances/reconciliation", middleware.RequirePermission("finance:read")(
		http.HandlerFunc(financeHandler.GetReconciliation))).Methods("GET")
	api.Handle("/finances/categories", middleware.RequirePermission("finance:read")(
		http.HandlerFunc(financeHandler.GetCategoryBreakdown))).Methods("GET")
	api.Handle("/reports/reconciliation/export", middleware.RequirePermission("finance:read")(
		http.HandlerFunc(financeHandler.ExportReconciliation))).Methods("GET")

	// Timeline (cross-work view)
	api.Handle("/timeline", middleware.RequirePermission("timeline:read")(
		http.HandlerFunc(timelineHandler.GetTimelineEvents))).Methods("GET")

	// Dashboard
	api.Handle("/dashboard/stats", middleware.RequirePermission("dashboard:read")(
		http.HandlerFunc(financeHandler.GetDashboardStats))).Methods("GET")

	// Notifications (always scoped to the caller)
	api.HandleFunc("/notifications", notificationHandler.GetMyNotifications).Methods("GET")
	api.HandleFunc("/notifications/unread-count", notificationHandler.GetUnreadCount).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	api.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	api.HandleFunc("/notifications/preferences", notificationHandler.GetMyPreferences).Methods("GET")
	api.HandleFunc("/notifications/preferences", notificationHandler.UpdateMyPreferences).Methods("PUT")

	// File uploads
	api.Handle("/files/upload", middleware.RequirePermission("file:upload")(
		http.HandlerFunc(handlers.UploadFile))).Methods("POST")

	// =====================================================
	// Admin Routes
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(func(next http.Handler) http.Handler {
		return middleware.RequireRole([]string{models.RoleAdmin}, next)
	})
	admin.HandleFunc("/users", handlers.GetAllUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", handlers.GetUserByID).Methods("GET")
	admin.HandleFunc("/users/{id}", handlers.UpdateUser).Methods("PUT")
	admin.HandleFunc("/users/{id}", handlers.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/equipment", equipmentHandler.CreateEquipment).Methods("POST")

	return r
}

// handleProfile returns the caller's identity and effective permissions.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	permissions := middleware.GetUserPermissions(r)

	response := map[string]interface{}{
		"userID":      claims.UserID,
		"name":        claims.Name,
		"email":       claims.Email,
		"role":        claims.Role,
		"permissions": permissions,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource
func registerCRUDRoutes(router *mux.Router, path string, resourceType string, h crudHandlers) {
	readPerm := resourceType + ":read"
	createPerm := resourceType + ":create"
	updatePerm := resourceType + ":update"
	deletePerm := resourceType + ":delete"

	router.Handle(path, middleware.RequirePermission(readPerm)(
		http.HandlerFunc(h.getAll))).Methods("GET")

	router.Handle(path, middleware.RequirePermission(createPerm)(
		http.HandlerFunc(h.create))).Methods("POST")

	router.Handle(path+"/{id}", middleware.RequirePermission(readPerm)(
		http.HandlerFunc(h.getOne))).Methods("GET")

	router.Handle(path+"/{id}", middleware.RequirePermission(updatePerm)(
		http.HandlerFunc(h.update))).Methods("PUT")

	router.Handle(path+"/{id}", middleware.RequirePermission(deletePerm)(
		http.HandlerFunc(h.delete))).Methods("DELETE")
}

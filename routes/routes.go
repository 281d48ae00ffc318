package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/finca/handlers"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
)

// staff is the allow-set for farm-scoped resources. User and farm
// management stay admin-only. Any role outside these sets is denied.
var (
	staff     = []string{models.RoleAdmin, models.RoleHR, models.RoleCropLead}
	adminOnly = []string{models.RoleAdmin}
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.Handle("/token", middleware.JWTMiddleware(
		middleware.FarmScopeMiddleware(http.HandlerFunc(handlers.GetCurrentUser)))).Methods("GET")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)
	api.Use(middleware.FarmScopeMiddleware)

	api.HandleFunc("/logout", handlers.Logout).Methods("POST")
	api.Handle("/dashboard", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetDashboard))).Methods("GET")

	// Zones
	api.Handle("/zones", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetAllZones))).Methods("GET")
	api.Handle("/zones", middleware.RequireRole(staff, http.HandlerFunc(handlers.CreateZone))).Methods("POST")
	api.Handle("/zones/assignments", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetZoneAssignments))).Methods("GET")

	// Supervisors
	api.Handle("/supervisors", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetAllSupervisors))).Methods("GET")
	api.Handle("/supervisors", middleware.RequireRole(staff, http.HandlerFunc(handlers.CreateSupervisor))).Methods("POST")
	api.Handle("/supervisors/assign-zone", middleware.RequireRole(staff, http.HandlerFunc(handlers.AssignSupervisorZone))).Methods("POST")
	api.Handle("/supervisors/assignments", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetSupervisorAssignments))).Methods("GET")

	// Codes
	api.Handle("/codes", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetAllCodes))).Methods("GET")
	api.Handle("/codes", middleware.RequireRole(staff, http.HandlerFunc(handlers.CreateCode))).Methods("POST")
	api.Handle("/codes/assign-zone", middleware.RequireRole(staff, http.HandlerFunc(handlers.AssignCodesToZone))).Methods("POST")
	api.Handle("/codes/assign-code", middleware.RequireRole(staff, http.HandlerFunc(handlers.AssignCodeToZone))).Methods("POST")
	api.Handle("/codes/assignments", middleware.RequireRole(staff, http.HandlerFunc(handlers.GetCodeAssignments))).Methods("GET")
	api.Handle("/codes/export", middleware.RequireRole(staff, http.HandlerFunc(handlers.ExportCodes))).Methods("GET")

	// =====================================================
	// Admin Routes (farm and user management)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()

	admin.Handle("/farms", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.GetAllFarms))).Methods("GET")
	admin.Handle("/farms", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.CreateFarm))).Methods("POST")
	admin.Handle("/farms/{id}", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.DeactivateFarm))).Methods("DELETE")

	admin.Handle("/users", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.GetAllUsers))).Methods("GET")
	admin.Handle("/users", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.CreateUser))).Methods("POST")
	admin.Handle("/users/{id}/assign", middleware.RequireRole(adminOnly, http.HandlerFunc(handlers.AssignUserFarm))).Methods("POST")

	return r
}

package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
)

// GetDashboard returns entity counts within the caller's scope plus the
// sizes of both orphan pools.
func GetDashboard(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var farms, zones, codes, supervisors, unassignedCodes int64

	if scope.Admin {
		config.DB.Model(&models.Farm{}).Where("is_active = ?", true).Count(&farms)
	} else if scope.FarmID != nil {
		farms = 1
	}
	scope.Scoped(config.DB.Model(&models.Zone{}).Where("is_active = ?", true)).Count(&zones)
	scope.Scoped(config.DB.Model(&models.Code{}).Where("is_active = ?", true)).Count(&codes)
	config.DB.Model(&models.Supervisor{}).Where("is_active = ?", true).Count(&supervisors)
	scope.Scoped(config.DB.Model(&models.Code{}).Where("zone_id IS NULL")).Count(&unassignedCodes)

	// Orphan supervisors: active ones not referenced by any visible zone
	var assigned []uuid.UUID
	scope.Scoped(config.DB.Model(&models.Zone{}).
		Where("is_active = ? AND supervisor_id IS NOT NULL", true)).
		Pluck("supervisor_id", &assigned)

	pool := config.DB.Model(&models.Supervisor{}).Where("is_active = ?", true)
	if len(assigned) > 0 {
		pool = pool.Where("id NOT IN ?", assigned)
	}
	var unassignedSupervisors int64
	pool.Count(&unassignedSupervisors)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"farms":                 farms,
		"zones":                 zones,
		"codes":                 codes,
		"supervisors":           supervisors,
		"unassignedCodes":       unassignedCodes,
		"unassignedSupervisors": unassignedSupervisors,
		"role":                  scope.User.Role,
	})
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
)

// GetAllSupervisors lists active supervisors. Supervisor records are
// global; farm scoping applies only at the zone-assignment step.
func GetAllSupervisors(w http.ResponseWriter, r *http.Request) {
	var supervisors []models.Supervisor
	if err := config.DB.Where("is_active = ?", true).Order("last_name, first_name").Find(&supervisors).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, supervisors)
}

type createSupervisorReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	AccessKey string `json:"accessKey"`
}

func CreateSupervisor(w http.ResponseWriter, r *http.Request) {
	var req createSupervisorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.AccessKey == "" {
		http.Error(w, "first name, last name and access key are required", http.StatusBadRequest)
		return
	}

	var count int64
	config.DB.Model(&models.Supervisor{}).Where("access_key = ?", req.AccessKey).Count(&count)
	if count > 0 {
		http.Error(w, fmt.Sprintf("access key %q is already in use", req.AccessKey), http.StatusConflict)
		return
	}

	supervisor := models.Supervisor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		AccessKey: req.AccessKey,
		IsActive:  true,
	}
	if err := config.DB.Create(&supervisor).Error; err != nil {
		if isDuplicateErr(err) {
			http.Error(w, fmt.Sprintf("access key %q is already in use", req.AccessKey), http.StatusConflict)
			return
		}
		http.Error(w, "failed to create supervisor: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, supervisor)
}

type assignSupervisorReq struct {
	SupervisorID uuid.UUID `json:"supervisorId"`
	ZoneID       uuid.UUID `json:"zoneId"`
}

// AssignSupervisorZone links a supervisor to a zone. Non-admins may only
// target zones of their own farm; a zone that already has a supervisor is
// overwritten with no history kept.
func AssignSupervisorZone(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var req assignSupervisorReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var supervisor models.Supervisor
	if err := config.DB.First(&supervisor, "id = ? AND is_active = ?", req.SupervisorID, true).Error; err != nil {
		http.Error(w, "supervisor not found", http.StatusNotFound)
		return
	}
	var zone models.Zone
	if err := config.DB.First(&zone, "id = ?", req.ZoneID).Error; err != nil {
		http.Error(w, "zone not found", http.StatusNotFound)
		return
	}

	if !scope.OwnsFarm(zone.FarmID) {
		http.Error(w, "cannot assign supervisors to zones of another farm", http.StatusForbidden)
		return
	}

	zone.SupervisorID = &supervisor.ID
	if err := config.DB.Save(&zone).Error; err != nil {
		http.Error(w, "failed to assign supervisor: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("supervisor %s %s assigned to zone %s", supervisor.FirstName, supervisor.LastName, zone.Name),
		"zoneId":  zone.ID,
	})
}

type supervisorAssignment struct {
	Zone       models.Zone        `json:"zone"`
	Supervisor *models.Supervisor `json:"supervisor,omitempty"`
}

type supervisorAssignmentsResp struct {
	ByZone     []supervisorAssignment `json:"byZone"`
	Unassigned []models.Supervisor    `json:"unassignedSupervisors"`
}

// GetSupervisorAssignments reports the supervisor of each visible zone and
// the orphan pool: active supervisors not referenced by any of those zones.
// The pool is a set difference computed on read, never persisted.
func GetSupervisorAssignments(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var zones []models.Zone
	q := scope.Scoped(config.DB.Where("is_active = ?", true)).Preload("Supervisor").Order("name")
	if err := q.Find(&zones).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	byZone := make([]supervisorAssignment, 0, len(zones))
	assigned := make([]uuid.UUID, 0, len(zones))
	for _, zone := range zones {
		byZone = append(byZone, supervisorAssignment{Zone: zone, Supervisor: zone.Supervisor})
		if zone.SupervisorID != nil {
			assigned = append(assigned, *zone.SupervisorID)
		}
	}

	pool := config.DB.Where("is_active = ?", true)
	if len(assigned) > 0 {
		pool = pool.Where("id NOT IN ?", assigned)
	}
	var unassigned []models.Supervisor
	if err := pool.Order("last_name, first_name").Find(&unassigned).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, supervisorAssignmentsResp{
		ByZone:     byZone,
		Unassigned: unassigned,
	})
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
	"p9e.in/finca/utils"
)

// GetAllZones lists the active zones visible to the caller. Empty scope
// (non-admin with no farm) yields an empty list, not an error.
func GetAllZones(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var zones []models.Zone
	q := scope.Scoped(config.DB.Where("is_active = ?", true)).Preload("Supervisor").Order("name")
	if err := q.Find(&zones).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

type createZoneReq struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	FarmID      *uuid.UUID `json:"farmId"`
	ZonesList   string     `json:"zonesList"` // comma list, e.g. "1,2,3" -> bulk creation
}

// CreateZone creates a single zone, or a batch when zonesList is set.
// Bulk tokens that are not non-negative integers are silently skipped.
func CreateZone(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var req createZoneReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	farmID, err := resolveFarmID(scope, req.FarmID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var farm models.Farm
	if err := config.DB.First(&farm, "id = ? AND is_active = ?", farmID, true).Error; err != nil {
		http.Error(w, "farm not found", http.StatusNotFound)
		return
	}

	if req.ZonesList != "" {
		created := 0
		err := config.DB.Transaction(func(tx *gorm.DB) error {
			for _, tok := range utils.NumericTokens(req.ZonesList) {
				zone := models.Zone{
					Name:        fmt.Sprintf("Zone %s", tok),
					Description: fmt.Sprintf("Cultivation zone %s", tok),
					FarmID:      farmID,
					IsActive:    true,
				}
				if err := tx.Create(&zone).Error; err != nil {
					return err
				}
				created++
			}
			return nil
		})
		if err != nil {
			http.Error(w, "failed to create zones: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"created": created,
			"message": fmt.Sprintf("%d zones created", created),
		})
		return
	}

	if req.Name == "" {
		http.Error(w, "zone name is required", http.StatusBadRequest)
		return
	}
	zone := models.Zone{
		Name:        req.Name,
		Description: req.Description,
		FarmID:      farmID,
		IsActive:    true,
	}
	if err := config.DB.Create(&zone).Error; err != nil {
		http.Error(w, "failed to create zone: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, zone)
}

type zoneAssignment struct {
	Zone       models.Zone        `json:"zone"`
	Supervisor *models.Supervisor `json:"supervisor,omitempty"`
	Codes      []models.Code      `json:"codes"`
	TotalCodes int                `json:"totalCodes"`
}

// GetZoneAssignments reports, per visible zone, the assigned supervisor and
// the active codes working it. This is the zone<->supervisor<->code summary
// view; the pools are recomputed on every read.
func GetZoneAssignments(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var zones []models.Zone
	q := scope.Scoped(config.DB.Where("is_active = ?", true)).Preload("Supervisor").Order("name")
	if err := q.Find(&zones).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]zoneAssignment, 0, len(zones))
	for _, zone := range zones {
		var codes []models.Code
		if err := config.DB.Where("zone_id = ? AND is_active = ?", zone.ID, true).Order("code").Find(&codes).Error; err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, zoneAssignment{
			Zone:       zone,
			Supervisor: zone.Supervisor,
			Codes:      codes,
			TotalCodes: len(codes),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

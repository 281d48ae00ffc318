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

// GetAllCodes lists the codes visible to the caller.
func GetAllCodes(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var codes []models.Code
	q := scope.Scoped(config.DB).Preload("Zone").Order("code")
	if err := q.Find(&codes).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, codes)
}

type createCodeReq struct {
	Code            string     `json:"code"`
	PersonFirstName string     `json:"personFirstName"`
	PersonLastName  string     `json:"personLastName"`
	Phone           string     `json:"phone"`
	ZoneID          *uuid.UUID `json:"zoneId"`
	FarmID          *uuid.UUID `json:"farmId"`
	Range           string     `json:"range"` // "001-010" -> bulk creation
}

// CreateCode creates a single code, or a whole range when Range is set.
//
// The two paths intentionally treat duplicates differently: the range path
// skips existing codes and counts them, the single path rejects with a
// conflict naming the value.
func CreateCode(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var req createCodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	farmID, err := resolveFarmID(scope, req.FarmID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ZoneID != nil {
		var zone models.Zone
		if err := config.DB.First(&zone, "id = ?", *req.ZoneID).Error; err != nil {
			http.Error(w, "zone not found", http.StatusNotFound)
			return
		}
		if zone.FarmID != farmID {
			http.Error(w, "zone does not belong to the selected farm", http.StatusForbidden)
			return
		}
	}

	if req.Range != "" {
		createCodeRange(w, req, farmID)
		return
	}
	createSingleCode(w, req, farmID)
}

func createCodeRange(w http.ResponseWriter, req createCodeReq, farmID uuid.UUID) {
	start, end, err := utils.ParseCodeRange(req.Range)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, skipped := 0, 0
	// One transaction for the whole batch: a genuine fault mid-loop rolls
	// everything back, duplicate skips are not faults.
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i := start; i <= end; i++ {
			codeStr := utils.FormatCode(i)

			var count int64
			if err := tx.Model(&models.Code{}).
				Where("code = ? AND farm_id = ?", codeStr, farmID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				skipped++
				continue
			}

			code := models.Code{
				Code:            codeStr,
				PersonFirstName: fmt.Sprintf("Person %s", codeStr),
				PersonLastName:  "Harvester",
				Phone:           "",
				ZoneID:          req.ZoneID,
				FarmID:          farmID,
				IsActive:        true,
			}
			if err := tx.Create(&code).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		if isDuplicateErr(err) {
			// Lost the race against a concurrent batch; the unique index on
			// (code, farm_id) is the final arbiter.
			http.Error(w, "a concurrent request already created part of this range", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create codes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	status := "success"
	if created == 0 {
		status = "warning"
	}
	message := fmt.Sprintf("%d codes created", created)
	if skipped > 0 {
		message += fmt.Sprintf(" (%d already existed and were skipped)", skipped)
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"created": created,
		"skipped": skipped,
		"status":  status,
		"message": message,
	})
}

func createSingleCode(w http.ResponseWriter, req createCodeReq, farmID uuid.UUID) {
	if req.Code == "" {
		http.Error(w, "code is required", http.StatusBadRequest)
		return
	}

	var count int64
	config.DB.Model(&models.Code{}).Where("code = ? AND farm_id = ?", req.Code, farmID).Count(&count)
	if count > 0 {
		http.Error(w, fmt.Sprintf("code %s already exists in this farm", req.Code), http.StatusConflict)
		return
	}

	code := models.Code{
		Code:            req.Code,
		PersonFirstName: req.PersonFirstName,
		PersonLastName:  req.PersonLastName,
		Phone:           req.Phone,
		ZoneID:          req.ZoneID,
		FarmID:          farmID,
		IsActive:        true,
	}
	if err := config.DB.Create(&code).Error; err != nil {
		if isDuplicateErr(err) {
			http.Error(w, fmt.Sprintf("code %s already exists in this farm", req.Code), http.StatusConflict)
			return
		}
		http.Error(w, "failed to create code: "+err.Error(), http.StatusInternalServerError)
		return
	}

	message := "code created"
	if code.ZoneID == nil {
		message += "; remember to assign it to a zone"
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"code":         code,
		"zoneAssigned": code.ZoneID != nil,
		"message":      message,
	})
}

type assignCodesReq struct {
	ZoneID  *uuid.UUID  `json:"zoneId"`
	CodeIDs []uuid.UUID `json:"codeIds"`
}

// AssignCodesToZone moves a selection of codes into one zone in a single
// transaction. Codes outside the caller's farm scope are not touched.
func AssignCodesToZone(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var req assignCodesReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.ZoneID == nil {
		http.Error(w, "a zone must be selected", http.StatusBadRequest)
		return
	}
	if len(req.CodeIDs) == 0 {
		http.Error(w, "at least one code must be selected", http.StatusBadRequest)
		return
	}

	var zone models.Zone
	if err := config.DB.First(&zone, "id = ?", *req.ZoneID).Error; err != nil {
		http.Error(w, "zone not found", http.StatusNotFound)
		return
	}
	if !scope.OwnsFarm(zone.FarmID) {
		http.Error(w, "cannot assign codes to zones of another farm", http.StatusForbidden)
		return
	}

	var moved int64
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := scope.Scoped(tx.Model(&models.Code{}).Where("id IN ?", req.CodeIDs)).
			Update("zone_id", zone.ID)
		moved = res.RowsAffected
		return res.Error
	})
	if err != nil {
		http.Error(w, "failed to assign codes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"moved":   moved,
		"message": fmt.Sprintf("%d codes assigned to zone %s", moved, zone.Name),
	})
}

type assignCodeReq struct {
	CodeID uuid.UUID `json:"codeId"`
	ZoneID uuid.UUID `json:"zoneId"`
}

// AssignCodeToZone assigns one code to one zone, with the same cross-farm
// denial as the supervisor path.
func AssignCodeToZone(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var req assignCodeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var code models.Code
	if err := config.DB.First(&code, "id = ?", req.CodeID).Error; err != nil {
		http.Error(w, "code not found", http.StatusNotFound)
		return
	}
	var zone models.Zone
	if err := config.DB.First(&zone, "id = ?", req.ZoneID).Error; err != nil {
		http.Error(w, "zone not found", http.StatusNotFound)
		return
	}

	if !scope.OwnsFarm(zone.FarmID) || !scope.OwnsFarm(code.FarmID) {
		http.Error(w, "cannot assign codes to zones of another farm", http.StatusForbidden)
		return
	}
	if code.FarmID != zone.FarmID {
		http.Error(w, "code and zone belong to different farms", http.StatusForbidden)
		return
	}

	code.ZoneID = &zone.ID
	if err := config.DB.Save(&code).Error; err != nil {
		http.Error(w, "failed to assign code: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("code %s assigned to zone %s", code.Code, zone.Name),
	})
}

type codeAssignmentsResp struct {
	ByZone     []zoneAssignment `json:"byZone"`
	Unassigned []models.Code    `json:"unassignedCodes"`
}

// GetCodeAssignments reports active codes grouped by visible zone along
// with the unassigned pool (zone_id is null), both recomputed on read.
func GetCodeAssignments(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)

	var zones []models.Zone
	if err := scope.Scoped(config.DB.Where("is_active = ?", true)).Order("name").Find(&zones).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	byZone := make([]zoneAssignment, 0, len(zones))
	for _, zone := range zones {
		var codes []models.Code
		if err := config.DB.Where("zone_id = ? AND is_active = ?", zone.ID, true).Order("code").Find(&codes).Error; err != nil {
			http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		byZone = append(byZone, zoneAssignment{
			Zone:       zone,
			Codes:      codes,
			TotalCodes: len(codes),
		})
	}

	var unassigned []models.Code
	if err := scope.Scoped(config.DB.Where("zone_id IS NULL")).Order("code").Find(&unassigned).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, codeAssignmentsResp{
		ByZone:     byZone,
		Unassigned: unassigned,
	})
}

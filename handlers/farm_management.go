package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"p9e.in/finca/config"
	"p9e.in/finca/models"
	"p9e.in/finca/utils"
)

type farmOut struct {
	models.Farm
	BoundaryArea *float64    `json:"boundaryArea,omitempty"`
	Centroid     *[2]float64 `json:"centroid,omitempty"`
}

func decorateFarm(f models.Farm) farmOut {
	out := farmOut{Farm: f}
	if len(f.Boundary) == 0 {
		return out
	}
	poly, err := utils.ParseBoundary(f.Boundary)
	if err != nil {
		// Stored boundaries are validated on create; don't fail the listing
		// over a legacy row.
		return out
	}
	area, centroid := utils.BoundaryStats(poly)
	out.BoundaryArea = &area
	out.Centroid = &[2]float64{centroid.Lon(), centroid.Lat()}
	return out
}

// GetAllFarms returns all active farms. Admin only.
func GetAllFarms(w http.ResponseWriter, r *http.Request) {
	var farms []models.Farm
	if err := config.DB.Where("is_active = ?", true).Order("name").Find(&farms).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]farmOut, len(farms))
	for i, f := range farms {
		out[i] = decorateFarm(f)
	}
	writeJSON(w, http.StatusOK, out)
}

type createFarmReq struct {
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Boundary    json.RawMessage `json:"boundary"`
}

// CreateFarm creates a farm. Admin only.
func CreateFarm(w http.ResponseWriter, r *http.Request) {
	var req createFarmReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "farm name is required", http.StatusBadRequest)
		return
	}

	farm := models.Farm{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		IsActive:    true,
	}

	if len(req.Boundary) > 0 && string(req.Boundary) != "null" {
		if _, err := utils.ParseBoundary(req.Boundary); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		farm.Boundary = datatypes.JSON(req.Boundary)
	}

	if err := config.DB.Create(&farm).Error; err != nil {
		http.Error(w, "failed to create farm: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, decorateFarm(farm))
}

// DeactivateFarm soft-deletes a farm by flipping its active flag. The row
// and its zones/codes are kept.
func DeactivateFarm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid farm ID", http.StatusBadRequest)
		return
	}

	var farm models.Farm
	if err := config.DB.First(&farm, "id = ?", id).Error; err != nil {
		http.Error(w, "farm not found", http.StatusNotFound)
		return
	}

	farm.IsActive = false
	if err := config.DB.Save(&farm).Error; err != nil {
		http.Error(w, "failed to deactivate farm: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

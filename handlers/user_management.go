package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/finca/config"
	"p9e.in/finca/models"
)

// GetAllUsers lists every account, active or not. Admin only.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := config.DB.Preload("Farm").Order("username").Find(&users).Error; err != nil {
		http.Error(w, "DB error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

type createUserReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateUser creates an account without a farm; assignment is a separate
// step. Admin only.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "username, email and password are required", http.StatusBadRequest)
		return
	}
	if !models.IsValidRole(req.Role) {
		http.Error(w, fmt.Sprintf("unknown role %q", req.Role), http.StatusBadRequest)
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		http.Error(w, fmt.Sprintf("username %q is already taken", req.Username), http.StatusConflict)
		return
	}
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		http.Error(w, fmt.Sprintf("email %q is already registered", req.Email), http.StatusConflict)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		FarmID:       nil, // assigned later via /users/{id}/assign
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			http.Error(w, "username or email already taken", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"message": "user created; assign a farm to make it useful",
	})
}

type assignUserFarmReq struct {
	FarmID *uuid.UUID `json:"farmId"` // null clears the assignment
}

// AssignUserFarm sets or clears a user's farm. Admin only.
func AssignUserFarm(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req assignUserFarmReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	if req.FarmID != nil {
		var farm models.Farm
		if err := config.DB.First(&farm, "id = ? AND is_active = ?", *req.FarmID, true).Error; err != nil {
			http.Error(w, "farm not found", http.StatusNotFound)
			return
		}
	}

	user.FarmID = req.FarmID
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "failed to assign user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("user %s assigned", user.Username),
		"user":    user,
	})
}

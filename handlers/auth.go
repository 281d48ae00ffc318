// handlers/auth.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	FarmID   *uuid.UUID `json:"farmId,omitempty"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var u models.User
	if err := config.DB.Where("username = ? AND is_active = ?", req.Username, true).First(&u).Error; err != nil {
		// Same message for unknown user and wrong password
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.GenerateToken(u.ID.String(), u.Role, u.Username)
	if err != nil {
		http.Error(w, "couldn't create token", http.StatusInternalServerError)
		return
	}

	out := loginResp{
		Token: token,
		User: userPayload{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
			FarmID:   u.FarmID,
		},
	}
	writeJSON(w, http.StatusOK, out)
}

// Logout exists for client symmetry with the login flow. Tokens are
// stateless, so the server side has nothing to clear; clients drop the
// token on this response.
func Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "session closed",
	})
}

// GetCurrentUser returns the account behind the presented token.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	scope := middleware.GetScope(r)
	if scope == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	u := scope.User
	writeJSON(w, http.StatusOK, userPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		FarmID:   u.FarmID,
	})
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/finca/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// isDuplicateErr recognizes unique-constraint violations surfaced by the
// driver. This is the backstop for the check-then-insert race described in
// the concurrency model: two overlapping bulk requests can both pass the
// existence check, and exactly one hits the (code, farm_id) index here.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// resolveFarmID picks the farm a create operation targets. Admins must name
// a farm explicitly; everyone else inherits their assigned farm. The error
// string is the user-facing validation message.
func resolveFarmID(scope *middleware.FarmScope, requested *uuid.UUID) (uuid.UUID, error) {
	if scope.Admin {
		if requested == nil {
			return uuid.Nil, errors.New("a farm must be selected for this operation")
		}
		return *requested, nil
	}
	if scope.FarmID == nil {
		return uuid.Nil, errors.New("you have no farm assigned")
	}
	return *scope.FarmID, nil
}

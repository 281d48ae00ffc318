package middleware

import (
	"context"
	"net/http"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"p9e.in/finca/config"
	"p9e.in/finca/models"
)

// FarmScope is the resolved visibility for the current request.
// Admins are unrestricted. hr and crop_lead users see exactly their
// assigned farm; if they have none, the scope is empty: list queries match
// nothing and create operations must fail upstream.
type FarmScope struct {
	User   models.User
	Admin  bool
	FarmID *uuid.UUID // nil for admins and for unassigned non-admins
}

// Empty reports whether the scope resolves to the empty set.
func (s FarmScope) Empty() bool {
	return !s.Admin && s.FarmID == nil
}

// Scoped narrows a query on a table with a farm_id column to the caller's
// visible farm set.
func (s FarmScope) Scoped(q *gorm.DB) *gorm.DB {
	if s.Admin {
		return q
	}
	if s.FarmID == nil {
		return q.Where("1 = 0")
	}
	return q.Where("farm_id = ?", *s.FarmID)
}

// OwnsFarm reports whether the caller may link entities to the given farm.
func (s FarmScope) OwnsFarm(farmID uuid.UUID) bool {
	if s.Admin {
		return true
	}
	return s.FarmID != nil && *s.FarmID == farmID
}

// FarmScopeMiddleware reloads the user record behind the validated token
// and computes the request's FarmScope. Deactivated users and stale tokens
// are rejected here even if the JWT itself is still valid.
func FarmScopeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			http.Error(w, "invalid token subject", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := config.DB.First(&user, "id = ? AND is_active = ?", userID, true).Error; err != nil {
			http.Error(w, "account not found or deactivated", http.StatusUnauthorized)
			return
		}

		scope := FarmScope{
			User:  user,
			Admin: user.Role == models.RoleAdmin,
		}
		if !scope.Admin {
			scope.FarmID = user.FarmID
		}

		ctx := context.WithValue(r.Context(), farmScopeKey, scope)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetScope pulls the resolved FarmScope out of the request context.
func GetScope(r *http.Request) *FarmScope {
	if s, ok := r.Context().Value(farmScopeKey).(FarmScope); ok {
		return &s
	}
	return nil
}

// RequireRole wraps a handler and ensures the caller's current role (from
// the database, not the token) is in the allow-set. Unknown roles are
// denied by omission.
func RequireRole(roles []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := GetScope(r)
		if scope == nil {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		if slices.Contains(roles, scope.User.Role) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}

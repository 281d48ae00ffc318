package handlers_test

import (
	"net/http"
	"testing"

	"p9e.in/finca/config"
	"p9e.in/finca/models"
)

func TestUnassignedNonAdminHasEmptyScope(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	createZone(t, "Zone 1", farm.ID)
	_, adminToken := createUser(t, "admin1", models.RoleAdmin, nil)
	doJSON(t, srv, "POST", "/api/v1/codes", adminToken, map[string]interface{}{
		"range": "001-003", "farmId": farm.ID,
	})

	// hr user with no farm: lists are empty, not errors
	_, token := createUser(t, "hr1", models.RoleHR, nil)

	rec := doJSON(t, srv, "GET", "/api/v1/zones", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("zones list status = %d", rec.Code)
	}
	var zones []models.Zone
	decodeBody(t, rec, &zones)
	if len(zones) != 0 {
		t.Errorf("expected empty zone list, got %d", len(zones))
	}

	rec = doJSON(t, srv, "GET", "/api/v1/codes", token, nil)
	var codes []models.Code
	decodeBody(t, rec, &codes)
	if len(codes) != 0 {
		t.Errorf("expected empty code list, got %d", len(codes))
	}

	// ...but creation is a validation error, not an empty no-op
	rec = doJSON(t, srv, "POST", "/api/v1/zones", token, map[string]interface{}{"name": "Zone X"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zone create status = %d, expected 400", rec.Code)
	}
	rec = doJSON(t, srv, "POST", "/api/v1/codes", token, map[string]interface{}{"code": "009"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code create status = %d, expected 400", rec.Code)
	}
}

func TestCrossTenantSupervisorAssignmentDenied(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farmA := createFarm(t, "Farm A")
	farmB := createFarm(t, "Farm B")
	zoneB := createZone(t, "Zone B1", farmB.ID)
	sup := createSupervisor(t, "Maria", "Lopez", "KEY-001")

	_, token := createUser(t, "hr1", models.RoleHR, &farmA.ID)

	rec := doJSON(t, srv, "POST", "/api/v1/supervisors/assign-zone", token, map[string]interface{}{
		"supervisorId": sup.ID, "zoneId": zoneB.ID,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("cross-farm assign status = %d, expected 403", rec.Code)
	}

	// The zone must be untouched
	var zone models.Zone
	config.DB.First(&zone, "id = ?", zoneB.ID)
	if zone.SupervisorID != nil {
		t.Fatal("zone supervisor changed despite denial")
	}

	// Admin may cross farms freely
	_, adminToken := createUser(t, "admin1", models.RoleAdmin, nil)
	rec = doJSON(t, srv, "POST", "/api/v1/supervisors/assign-zone", adminToken, map[string]interface{}{
		"supervisorId": sup.ID, "zoneId": zoneB.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin cross-farm assign status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAdminOnlyRoutesDenyStaff(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	_, hrToken := createUser(t, "hr1", models.RoleHR, &farm.ID)

	for _, route := range []struct{ method, path string }{
		{"GET", "/api/v1/admin/farms"},
		{"POST", "/api/v1/admin/farms"},
		{"GET", "/api/v1/admin/users"},
		{"POST", "/api/v1/admin/users"},
	} {
		rec := doJSON(t, srv, route.method, route.path, hrToken, map[string]interface{}{})
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s status = %d, expected 403", route.method, route.path, rec.Code)
		}
	}

	// No token at all
	rec := doJSON(t, srv, "GET", "/api/v1/zones", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, expected 401", rec.Code)
	}
}

// An unrecognized role has no access anywhere.
func TestUnknownRoleDeniedByOmission(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	_, token := createUser(t, "ghost", "contractor", &farm.ID)

	for _, path := range []string{"/api/v1/zones", "/api/v1/codes", "/api/v1/supervisors", "/api/v1/admin/users"} {
		rec := doJSON(t, srv, "GET", path, token, nil)
		if rec.Code != http.StatusForbidden {
			t.Errorf("GET %s status = %d, expected 403", path, rec.Code)
		}
	}
}

// Role and activation are re-read from the database on every request, so a
// still-valid token stops working the moment the account is deactivated.
func TestDeactivatedUserTokenRejected(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	user, token := createUser(t, "hr1", models.RoleHR, &farm.ID)

	rec := doJSON(t, srv, "GET", "/api/v1/zones", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("active user status = %d", rec.Code)
	}

	config.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false)

	rec = doJSON(t, srv, "GET", "/api/v1/zones", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated user status = %d, expected 401", rec.Code)
	}
}

package handlers_test

import (
	"net/http"
	"testing"

	"p9e.in/finca/config"
	"p9e.in/finca/models"
)

func TestUnassignedSupervisorPool(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	zone := createZone(t, "Zone 1", farm.ID)
	supA := createSupervisor(t, "Maria", "Lopez", "KEY-001")
	supB := createSupervisor(t, "Juan", "Perez", "KEY-002")

	_, token := createUser(t, "hr1", models.RoleHR, &farm.ID)

	// Both supervisors start in the orphan pool
	rec := doJSON(t, srv, "GET", "/api/v1/supervisors/assignments", token, nil)
	var report struct {
		Unassigned []models.Supervisor `json:"unassignedSupervisors"`
	}
	decodeBody(t, rec, &report)
	if len(report.Unassigned) != 2 {
		t.Fatalf("initial pool = %d, expected 2", len(report.Unassigned))
	}

	rec = doJSON(t, srv, "POST", "/api/v1/supervisors/assign-zone", token, map[string]interface{}{
		"supervisorId": supA.ID, "zoneId": zone.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("assign status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// The just-assigned supervisor left the pool immediately
	rec = doJSON(t, srv, "GET", "/api/v1/supervisors/assignments", token, nil)
	decodeBody(t, rec, &report)
	if len(report.Unassigned) != 1 || report.Unassigned[0].ID != supB.ID {
		t.Fatalf("pool after assignment = %+v", report.Unassigned)
	}
}

func TestSupervisorReassignmentOverwrites(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	zone := createZone(t, "Zone 1", farm.ID)
	supA := createSupervisor(t, "Maria", "Lopez", "KEY-001")
	supB := createSupervisor(t, "Juan", "Perez", "KEY-002")

	_, token := createUser(t, "lead1", models.RoleCropLead, &farm.ID)

	doJSON(t, srv, "POST", "/api/v1/supervisors/assign-zone", token, map[string]interface{}{
		"supervisorId": supA.ID, "zoneId": zone.ID,
	})
	rec := doJSON(t, srv, "POST", "/api/v1/supervisors/assign-zone", token, map[string]interface{}{
		"supervisorId": supB.ID, "zoneId": zone.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reassign status = %d", rec.Code)
	}

	var got models.Zone
	config.DB.First(&got, "id = ?", zone.ID)
	if got.SupervisorID == nil || *got.SupervisorID != supB.ID {
		t.Fatalf("zone supervisor = %v, expected %s", got.SupervisorID, supB.ID)
	}
}

func TestDuplicateAccessKeyConflict(t *testing.T) {
	setupTestDB(t)
	srv := newServer(t)

	farm := createFarm(t, "Green Valley")
	_, token := createUser(t, "hr1", models.RoleHR, &farm.ID)

	rec := doJSON(t, srv, "POST", "/api/v1/supervisors", token, map[string]interface{}{
		"firstName": "Maria", "lastName": "Lopez", "accessKey": "KEY-001",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}

	rec = doJSON(t, srv, "POST", "/api/v1/supervisors", token, map[string]interface{}{
		"firstName": "Juan", "lastName": "Perez", "accessKey": "KEY-001",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate access key status = %d, expected 409", rec.Code)
	}
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"p9e.in/finca/config"
	"p9e.in/finca/middleware"
	"p9e.in/finca/models"
	"p9e.in/finca/routes"
)

// setupTestDB points config.DB at a fresh in-memory SQLite database for the
// duration of one test. cache=shared keeps the database alive across the
// pool's connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Farm{}, &models.Supervisor{}, &models.Zone{},
		&models.Code{}, &models.User{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	config.DB = db
	return db
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	return routes.RegisterRoutes()
}

func createFarm(t *testing.T, name string) models.Farm {
	t.Helper()
	farm := models.Farm{Name: name, Location: "Test Valley", IsActive: true}
	if err := config.DB.Create(&farm).Error; err != nil {
		t.Fatalf("creating farm: %v", err)
	}
	return farm
}

func createZone(t *testing.T, name string, farmID uuid.UUID) models.Zone {
	t.Helper()
	zone := models.Zone{Name: name, FarmID: farmID, IsActive: true}
	if err := config.DB.Create(&zone).Error; err != nil {
		t.Fatalf("creating zone: %v", err)
	}
	return zone
}

func createSupervisor(t *testing.T, first, last, accessKey string) models.Supervisor {
	t.Helper()
	s := models.Supervisor{FirstName: first, LastName: last, AccessKey: accessKey, IsActive: true}
	if err := config.DB.Create(&s).Error; err != nil {
		t.Fatalf("creating supervisor: %v", err)
	}
	return s
}

// createUser persists a user and returns it with a valid bearer token.
func createUser(t *testing.T, username, role string, farmID *uuid.UUID) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: string(hash),
		Role:         role,
		FarmID:       farmID,
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("creating user: %v", err)
	}
	token, err := middleware.GenerateToken(user.ID.String(), user.Role, user.Username)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return user, token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

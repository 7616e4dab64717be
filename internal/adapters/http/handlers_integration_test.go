//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	handler "github.com/samirrijal/fitpass/internal/adapters/http"
	"github.com/samirrijal/fitpass/internal/adapters/postgres"
	"github.com/samirrijal/fitpass/internal/core/domain"
	"github.com/samirrijal/fitpass/internal/core/usecases"
	"github.com/samirrijal/fitpass/internal/pkg/config"
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("fitpass-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with real DB and repos, no cache or broker.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	userRepo := postgres.NewUserRepo(db)
	gymRepo := postgres.NewGymRepo(db)
	checkInRepo := postgres.NewCheckInRepo(db)

	return &handler.Dependencies{
		Users:    usecases.NewUserService(userRepo),
		Auth:     usecases.NewAuthService(userRepo, testTokens, newMemoryTokenStore()),
		Gyms:     usecases.NewGymService(gymRepo, nil),
		CheckIns: usecases.NewCheckInService(checkInRepo, gymRepo, nil),
		Tokens:   testTokens,
		DB:       db,
	}
}

// seedTestGym inserts a gym at Bilbao coordinates and returns its UUID.
func seedTestGym(t *testing.T, db *postgres.DB, title string) string {
	ctx := context.Background()
	var id string
	if err := db.Pool.QueryRow(ctx, `
		INSERT INTO gyms (title, description, phone, location)
		VALUES ($1, 'integration test gym', '944000000',
		        ST_SetSRID(ST_MakePoint(-2.935, 43.263), 4326)::geography)
		RETURNING id
	`, title).Scan(&id); err != nil {
		t.Fatalf("seed gym: %v", err)
	}
	return id
}

// registerTestUser creates a user through the API and returns its ID.
func registerTestUser(t *testing.T, app *fiber.App, email string) string {
	body := `{"name":"Integration User","email":"` + email + `","password":"secret123"}`
	req := httptest.NewRequest("POST", "/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("register request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}

	var user struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return user.ID
}

// TestCheckInFlow_Integration exercises the full register → check-in → history
// flow against a real database, including the same-day unique constraint.
func TestCheckInFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	gymID := seedTestGym(t, db, "Integ Gym "+time.Now().Format("20060102150405"))

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	email := "integ_" + time.Now().Format("20060102150405.000") + "@example.com"
	userID := registerTestUser(t, app, email)
	auth := bearerFor(t, userID, domain.RoleMember)

	// First check-in at the gym's location succeeds
	body := `{"latitude":43.263,"longitude":-2.935}`
	req := httptest.NewRequest("POST", "/gyms/"+gymID+"/check-ins", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("check-in request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("check-in: expected 201, got %d", resp.StatusCode)
	}

	// Second check-in on the same day hits the unique index
	req = httptest.NewRequest("POST", "/gyms/"+gymID+"/check-ins", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 409 {
		t.Fatalf("second check-in: expected 409, got %d", resp.StatusCode)
	}

	// History shows exactly one check-in
	req = httptest.NewRequest("GET", "/check-ins/history", nil)
	req.Header.Set("Authorization", auth)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("history: expected 200, got %d", resp.StatusCode)
	}

	var history struct {
		Total int `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if history.Total != 1 {
		t.Errorf("expected 1 check-in in history, got %d", history.Total)
	}
}

// TestNearbyGyms_Integration tests the PostGIS radius query.
func TestNearbyGyms_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Pool.Close()

	seedTestGym(t, db, "Nearby Gym "+time.Now().Format("20060102150405"))

	deps := setupTestDeps(t, db)
	app := setupApp(deps)

	email := "nearby_" + time.Now().Format("20060102150405.000") + "@example.com"
	userID := registerTestUser(t, app, email)
	auth := bearerFor(t, userID, domain.RoleMember)

	req := httptest.NewRequest("GET", "/gyms/nearby?latitude=43.263&longitude=-2.935", nil)
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("nearby request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Gyms []json.RawMessage `json:"gyms"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Gyms) == 0 {
		t.Error("expected at least 1 nearby gym, got 0")
	}
}

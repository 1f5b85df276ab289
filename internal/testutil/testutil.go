package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/api"
	"github.com/asterah/chaos-full-nightmare/internal/config"
	"github.com/asterah/chaos-full-nightmare/internal/repository"
	"github.com/asterah/chaos-full-nightmare/internal/repository/gormdb"
	"github.com/asterah/chaos-full-nightmare/internal/scoring"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/asterah/chaos-full-nightmare/internal/websocket"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Child tables come first so deletes never trip a foreign key.
var tables = []string{
	"slot_actions",
	"slots",
	"calc_sessions",
	"combatants",
	"user_sessions",
	"users",
}

// TestDB is a migrated database for one test. Container is nil for SQLite.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB opens a private in-memory SQLite database.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("sqlite:file:test_%s?mode=memory&cache=shared", uuid.NewString()[:8])
	db, err := gormdb.NewConnection(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	testDB := &TestDB{DB: db, DSN: dsn}
	t.Cleanup(func() {
		testDB.Cleanup()
	})
	return testDB
}

// NewPostgresTestDB starts a PostgreSQL testcontainer. It is skipped in
// short mode.
func NewPostgresTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_chaos_calc"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gormdb.NewConnection(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup closes the connection and terminates the container, if any.
func (tdb *TestDB) Cleanup() {
	if sqlDB, err := tdb.DB.DB(); err == nil {
		sqlDB.Close()
	}
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range tables {
		stmt := fmt.Sprintf("DELETE FROM %s", table)
		if tdb.DB.Dialector.Name() == "postgres" {
			stmt = fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)
		}
		if err := tdb.DB.Exec(stmt).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		AllowedOrigins:     []string{"*"},
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Hub      *websocket.Hub
	Config   *config.Config
}

// NewTestServer creates a complete test server backed by SQLite, with the
// built-in combatant catalog already synced.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()
	logger := zap.NewNop()

	repos := gormdb.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg, scoring.DefaultRules(), logger)
	if _, err := services.Combatant.Sync(context.Background()); err != nil {
		t.Fatalf("failed to sync combatants: %v", err)
	}

	hub := websocket.NewHub(services.Session, logger)
	go hub.Run()
	t.Cleanup(hub.Stop)

	router := api.NewRouter(services, hub, cfg, logger)
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Hub:      hub,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// ResetData clears every table and re-syncs the combatant catalog.
func (ts *TestServer) ResetData(t *testing.T) {
	t.Helper()

	ts.DB.Truncate(t)
	if _, err := ts.Services.Combatant.Sync(context.Background()); err != nil {
		t.Fatalf("failed to sync combatants: %v", err)
	}
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL with token
func (ts *TestServer) WebSocketURL(token string) string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return fmt.Sprintf("%s/api/v1/ws?token=%s", wsURL, token)
}

package gormdb

import (
	"strings"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite:"

// Dialector picks the driver from the URL. "sqlite:<dsn>" and "file:" URLs
// open SQLite; everything else is handed to the PostgreSQL driver.
func Dialector(databaseURL string) gorm.Dialector {
	switch {
	case strings.HasPrefix(databaseURL, sqlitePrefix):
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqlitePrefix))
	case strings.HasPrefix(databaseURL, "file:"):
		return sqlite.Open(databaseURL)
	default:
		return postgres.Open(databaseURL)
	}
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(Dialector(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if db.Dialector.Name() == "sqlite" {
		// An in-memory database lives only as long as its connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.UserSession{},
		&domain.Combatant{},
		&domain.CalcSession{},
		&domain.Slot{},
		&domain.SlotAction{},
	)
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:        NewUserRepository(db),
		Session:     NewSessionRepository(db),
		Combatant:   NewCombatantRepository(db),
		CalcSession: NewCalcSessionRepository(db),
		Slot:        NewSlotRepository(db),
		SlotAction:  NewSlotActionRepository(db),
	}
}

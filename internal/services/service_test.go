package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"offerwall-service/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB opens a fresh in-memory sqlite database per test. The shared
// cache keeps the database alive across gorm's pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.Campaign{},
		&models.User{},
		&models.Conversion{},
		&models.Referral{},
		&models.Payout{},
		&models.Admin{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

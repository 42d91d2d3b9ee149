package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"redaccion/models"
)

// newTestDB opens an in-memory sqlite database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = gdb.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Disc{},
		&models.Rating{},
		&models.Favorite{},
		&models.Version{},
		&models.List{},
		&models.Asignation{},
		&models.ListLink{},
		&models.Reunion{},
		&models.Point{},
		&models.Spotify{},
		&models.Article{},
		&models.Content{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@example.com", Role: "redactor"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func newContentsService(t *testing.T) (*ContentsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewContentsService(db, zap.NewNop()), db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package services

import (
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

func newReunionsService(t *testing.T) (*ReunionsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	contents := NewContentsService(db, zap.NewNop())
	return NewReunionsService(db, zap.NewNop(), contents), db
}

func TestReunionPoints(t *testing.T) {
	svc, _ := newReunionsService(t)

	reunion, err := svc.Create(ReunionInput{Title: strPtr("Planning")})
	if err != nil {
		t.Fatalf("create reunion: %v", err)
	}

	point, err := svc.AddPoint(reunion.ID, PointInput{Title: "Review backlog", Order: 1})
	if err != nil {
		t.Fatalf("add point: %v", err)
	}

	done := true
	updated, err := svc.UpdatePoint(point.ID, PointInput{Title: point.Title, Done: &done})
	if err != nil {
		t.Fatalf("update point: %v", err)
	}
	if !updated.Done {
		t.Error("point not marked done")
	}
}

func TestReunionRemoveStandalone(t *testing.T) {
	svc, db := newReunionsService(t)

	reunion, err := svc.Create(ReunionInput{Title: strPtr("Standalone")})
	if err != nil {
		t.Fatalf("create reunion: %v", err)
	}
	if _, err := svc.AddPoint(reunion.ID, PointInput{Title: "Only point"}); err != nil {
		t.Fatalf("add point: %v", err)
	}

	if err := svc.Remove(reunion.ID); err != nil {
		t.Fatalf("remove reunion: %v", err)
	}

	var count int64
	db.Model(&models.Reunion{}).Where("id = ?", reunion.ID).Count(&count)
	if count != 0 {
		t.Error("reunion still present after removal")
	}
	db.Model(&models.Point{}).Where("reunion_id = ?", reunion.ID).Count(&count)
	if count != 0 {
		t.Error("points survived the reunion removal")
	}
}

func TestReunionRemoveDelegatesToContent(t *testing.T) {
	svc, db := newReunionsService(t)
	author := createTestUser(t, db, "chair")

	reunion, err := svc.Create(ReunionInput{Title: strPtr("Weekly sync")})
	if err != nil {
		t.Fatalf("create reunion: %v", err)
	}
	content := models.Content{Type: models.ContentTypeReunion, Name: reunion.Title, AuthorID: author.ID, ReunionID: &reunion.ID}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	if err := svc.Remove(reunion.ID); err != nil {
		t.Fatalf("remove reunion: %v", err)
	}

	var count int64
	db.Model(&models.Reunion{}).Where("id = ?", reunion.ID).Count(&count)
	if count != 0 {
		t.Error("reunion still present after removal")
	}
	db.Model(&models.Content{}).Where("id = ?", content.ID).Count(&count)
	if count != 0 {
		t.Error("calendar entry survived the reunion removal")
	}
}

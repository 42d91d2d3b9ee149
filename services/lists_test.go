package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

func newListsService(t *testing.T) (*ListsService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewListsService(db, zap.NewNop()), db
}

func TestListCreateDefaults(t *testing.T) {
	svc, _ := newListsService(t)

	list, err := svc.Create(ListInput{Name: strPtr("Radar semana 12")})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if list.Type != models.ListTypeWeek {
		t.Errorf("expected default type week, got %q", list.Type)
	}
	if list.Status != models.ListStatusAbierta {
		t.Errorf("expected default status abierta, got %q", list.Status)
	}
}

func TestListUpdateClearsDateWithExplicitNull(t *testing.T) {
	svc, _ := newListsService(t)

	release := date(2024, time.March, 8)
	list, err := svc.Create(ListInput{Name: strPtr("Radar"), ReleaseDate: At(release)})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	// An update without the field leaves the date alone.
	updated, err := svc.Update(list.ID, ListInput{Name: strPtr("Radar renamed")})
	if err != nil {
		t.Fatalf("update list: %v", err)
	}
	if updated.ReleaseDate == nil {
		t.Fatal("absent field must not clear the date")
	}

	// An explicit null clears it.
	updated, err = svc.Update(list.ID, ListInput{ReleaseDate: Null()})
	if err != nil {
		t.Fatalf("update list with null: %v", err)
	}
	if updated.ReleaseDate != nil {
		t.Error("explicit null must clear the date")
	}
}

func TestAsignationLifecycle(t *testing.T) {
	svc, db := newListsService(t)
	user := createTestUser(t, db, "reviewer")

	artist := models.Artist{Name: "Yob"}
	if err := db.Create(&artist).Error; err != nil {
		t.Fatalf("create artist: %v", err)
	}
	disc := models.Disc{Name: "Clearing the Path", ArtistID: artist.ID}
	if err := db.Create(&disc).Error; err != nil {
		t.Fatalf("create disc: %v", err)
	}

	list, err := svc.Create(ListInput{Name: strPtr("Radar")})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}

	asignation, err := svc.AddAsignation(list.ID, AsignationInput{DiscID: disc.ID, UserID: user.ID})
	if err != nil {
		t.Fatalf("add asignation: %v", err)
	}
	if asignation.Done {
		t.Error("new asignation must start undone")
	}

	done := true
	updated, err := svc.UpdateAsignation(asignation.ID, AsignationInput{DiscID: disc.ID, UserID: user.ID, Done: &done})
	if err != nil {
		t.Fatalf("update asignation: %v", err)
	}
	if !updated.Done {
		t.Error("asignation not marked done")
	}

	if err := svc.RemoveAsignation(asignation.ID); err != nil {
		t.Fatalf("remove asignation: %v", err)
	}
	if err := svc.RemoveAsignation(asignation.ID); !errors.Is(err, ErrAsignationNotFound) {
		t.Fatalf("expected ErrAsignationNotFound, got %v", err)
	}
}

func TestAddAsignationToMissingList(t *testing.T) {
	svc, _ := newListsService(t)

	_, err := svc.AddAsignation(42, AsignationInput{DiscID: 1, UserID: 1})
	if !errors.Is(err, ErrListNotFound) {
		t.Fatalf("expected ErrListNotFound, got %v", err)
	}
}

func TestListRemoveTakesAsignationsAndLinks(t *testing.T) {
	svc, db := newListsService(t)
	user := createTestUser(t, db, "reviewer")

	list, err := svc.Create(ListInput{Name: strPtr("Radar")})
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	if _, err := svc.AddAsignation(list.ID, AsignationInput{DiscID: 1, UserID: user.ID}); err != nil {
		t.Fatalf("add asignation: %v", err)
	}
	if _, err := svc.AddLink(list.ID, ListLinkInput{Name: "published post", URL: "https://example.com/radar"}); err != nil {
		t.Fatalf("add link: %v", err)
	}

	if err := svc.Remove(list.ID); err != nil {
		t.Fatalf("remove list: %v", err)
	}

	var count int64
	db.Model(&models.Asignation{}).Where("list_id = ?", list.ID).Count(&count)
	if count != 0 {
		t.Error("asignations survived the list removal")
	}
	db.Model(&models.ListLink{}).Where("list_id = ?", list.ID).Count(&count)
	if count != 0 {
		t.Error("links survived the list removal")
	}
}

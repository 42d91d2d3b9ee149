package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

func newSpotifyService(t *testing.T) (*SpotifyService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	contents := NewContentsService(db, zap.NewNop())
	return NewSpotifyService(db, zap.NewNop(), contents), db
}

func TestSpotifyParaPublicarRequiresAssignedUser(t *testing.T) {
	svc, db := newSpotifyService(t)

	playlist := models.Spotify{Name: "Orphan playlist", Status: models.SpotifyStatusEnDesarrollo}
	if err := db.Create(&playlist).Error; err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	_, err := svc.Update(playlist.ID, SpotifyInput{Status: strPtr(models.SpotifyStatusParaPublicar)})
	if !errors.Is(err, ErrNoAssignedUser) {
		t.Fatalf("expected ErrNoAssignedUser, got %v", err)
	}
}

func TestSpotifyParaPublicarCreatesBacklogContent(t *testing.T) {
	svc, db := newSpotifyService(t)
	curator := createTestUser(t, db, "curator")

	playlist := models.Spotify{Name: "Doom essentials", Status: models.SpotifyStatusEnDesarrollo, Type: models.SpotifyTypeGenero, UserID: &curator.ID}
	if err := db.Create(&playlist).Error; err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if _, err := svc.Update(playlist.ID, SpotifyInput{Status: strPtr(models.SpotifyStatusParaPublicar)}); err != nil {
		t.Fatalf("update to para_publicar: %v", err)
	}

	var content models.Content
	if err := db.Where("spotify_id = ?", playlist.ID).First(&content).Error; err != nil {
		t.Fatalf("expected a linked content: %v", err)
	}
	if content.Type != models.ContentTypeSpotify {
		t.Errorf("expected content type spotify, got %q", content.Type)
	}
	if content.PublicationDate != nil {
		t.Error("fresh content should sit in the backlog")
	}
}

func TestSpotifyPublicadaStampsContent(t *testing.T) {
	svc, db := newSpotifyService(t)
	curator := createTestUser(t, db, "curator")

	playlist := models.Spotify{Name: "New finds", Status: models.SpotifyStatusParaPublicar, UserID: &curator.ID}
	if err := db.Create(&playlist).Error; err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	content := models.Content{Type: models.ContentTypeSpotify, Name: playlist.Name, AuthorID: curator.ID, SpotifyID: &playlist.ID}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	updated, err := svc.Update(playlist.ID, SpotifyInput{Status: strPtr(models.SpotifyStatusPublicada)})
	if err != nil {
		t.Fatalf("update to publicada: %v", err)
	}
	if updated.UpdateDate == nil {
		t.Fatal("expected the publish instant on the playlist")
	}

	var reloaded models.Content
	if err := db.First(&reloaded, content.ID).Error; err != nil {
		t.Fatalf("reload content: %v", err)
	}
	if reloaded.PublicationDate == nil || !reloaded.PublicationDate.Equal(*updated.UpdateDate) {
		t.Errorf("content date %v does not match playlist date %v", reloaded.PublicationDate, updated.UpdateDate)
	}
}

func TestSpotifyListFilters(t *testing.T) {
	svc, db := newSpotifyService(t)

	march := date(2024, time.March, 10)
	june := date(2024, time.June, 10)
	seed := []models.Spotify{
		{Name: "Doom", Status: models.SpotifyStatusPublicada, Type: models.SpotifyTypeGenero, UpdateDate: &march},
		{Name: "Specials 2024", Status: models.SpotifyStatusPublicada, Type: models.SpotifyTypeEspecial, UpdateDate: &june},
		{Name: "Work in progress", Status: models.SpotifyStatusEnDesarrollo, Type: models.SpotifyTypeOtras},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed playlist: %v", err)
		}
	}

	byTypes, err := svc.List(SpotifyFilter{Types: []string{models.SpotifyTypeGenero, models.SpotifyTypeEspecial}})
	if err != nil {
		t.Fatalf("list by types: %v", err)
	}
	if len(byTypes) != 2 {
		t.Errorf("expected 2 playlists by types, got %d", len(byTypes))
	}

	from := date(2024, time.May, 1)
	byWindow, err := svc.List(SpotifyFilter{UpdatedFrom: &from})
	if err != nil {
		t.Fatalf("list by update window: %v", err)
	}
	if len(byWindow) != 1 || byWindow[0].Name != "Specials 2024" {
		t.Errorf("expected only the June playlist, got %d entries", len(byWindow))
	}
}

func TestSpotifyRemoveGoesThroughContent(t *testing.T) {
	svc, db := newSpotifyService(t)
	curator := createTestUser(t, db, "curator")

	playlist := models.Spotify{Name: "To be removed", Status: models.SpotifyStatusParaPublicar, UserID: &curator.ID}
	if err := db.Create(&playlist).Error; err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	content := models.Content{Type: models.ContentTypeSpotify, Name: playlist.Name, AuthorID: curator.ID, SpotifyID: &playlist.ID}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	if err := svc.Remove(playlist.ID); err != nil {
		t.Fatalf("remove playlist: %v", err)
	}

	var count int64
	db.Model(&models.Spotify{}).Where("id = ?", playlist.ID).Count(&count)
	if count != 0 {
		t.Error("playlist still present after removal")
	}
	db.Model(&models.Content{}).Where("id = ?", content.ID).Count(&count)
	if count != 0 {
		t.Error("content still present after removal")
	}
}

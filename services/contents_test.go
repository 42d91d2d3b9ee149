package services

import (
	"errors"
	"testing"
	"time"

	"redaccion/models"
)

func TestCreateContentRequiresAuthor(t *testing.T) {
	svc, _ := newContentsService(t)

	_, err := svc.Create(ContentCreateInput{Type: models.ContentTypePhotos, Name: "Festival gallery", AuthorID: 99})
	if !errors.Is(err, ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestCreateArticleContentCreatesArticle(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "ana")

	content, err := svc.Create(ContentCreateInput{Type: models.ContentTypeArticle, Name: "Interview with the band", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if content.ArticleID == nil {
		t.Fatal("expected an auto-created article")
	}

	var article models.Article
	if err := db.First(&article, *content.ArticleID).Error; err != nil {
		t.Fatalf("load article: %v", err)
	}
	if article.Status != models.ArticleStatusNotStarted {
		t.Errorf("expected status not_started, got %q", article.Status)
	}
	if article.UserID == nil || *article.UserID != author.ID {
		t.Errorf("expected article assigned to author %d", author.ID)
	}
}

func TestCreateRadarContentCreatesWeekList(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "bea")

	pub := date(2024, time.March, 8)
	content, err := svc.Create(ContentCreateInput{
		Type:            models.ContentTypeRadar,
		Name:            "Radar semana 10",
		AuthorID:        author.ID,
		PublicationDate: At(pub),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if content.ListID == nil {
		t.Fatal("expected an auto-created list")
	}

	var list models.List
	if err := db.First(&list, *content.ListID).Error; err != nil {
		t.Fatalf("load list: %v", err)
	}
	if list.Type != models.ListTypeWeek {
		t.Errorf("expected list type week, got %q", list.Type)
	}
	if list.Status != models.ListStatusAbierta {
		t.Errorf("expected list status abierta, got %q", list.Status)
	}
	if list.ReleaseDate == nil || !list.ReleaseDate.Equal(pub) {
		t.Errorf("expected release date %v, got %v", pub, list.ReleaseDate)
	}
}

func TestCreateReunionContentCreatesDefaultAgenda(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "carla")

	content, err := svc.Create(ContentCreateInput{Type: models.ContentTypeReunion, Name: "Reunión semanal", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if content.ReunionID == nil {
		t.Fatal("expected an auto-created reunion")
	}

	var points []models.Point
	if err := db.Where("reunion_id = ?", *content.ReunionID).Order("position asc").Find(&points).Error; err != nil {
		t.Fatalf("load points: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 default agenda points, got %d", len(points))
	}
	if points[0].Title != "Repaso de contenidos" {
		t.Errorf("unexpected first point %q", points[0].Title)
	}
}

func TestUpdateContentSyncsListDates(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "dario")

	content, err := svc.Create(ContentCreateInput{Type: models.ContentTypeBest, Name: "Lo mejor de marzo", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	pub := date(2024, time.April, 1)
	if _, err := svc.Update(content.ID, ContentUpdateInput{PublicationDate: At(pub)}); err != nil {
		t.Fatalf("update content: %v", err)
	}

	var list models.List
	if err := db.First(&list, *content.ListID).Error; err != nil {
		t.Fatalf("load list: %v", err)
	}
	if list.ReleaseDate == nil || !list.ReleaseDate.Equal(pub) {
		t.Errorf("expected synced release date %v, got %v", pub, list.ReleaseDate)
	}
}

func TestUpdateContentDoesNotRewriteUnchangedList(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "elena")

	pub := date(2024, time.April, 5)
	content, err := svc.Create(ContentCreateInput{
		Type:            models.ContentTypeRadar,
		Name:            "Radar",
		AuthorID:        author.ID,
		PublicationDate: At(pub),
	})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	if _, err := svc.Update(content.ID, ContentUpdateInput{PublicationDate: At(pub)}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	var before models.List
	if err := db.First(&before, *content.ListID).Error; err != nil {
		t.Fatalf("load list: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Update(content.ID, ContentUpdateInput{PublicationDate: At(pub)}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	var after models.List
	if err := db.First(&after, *content.ListID).Error; err != nil {
		t.Fatalf("reload list: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("list was rewritten although nothing changed")
	}
}

func TestUpdateContentSyncsSpotifyStatus(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "fede")

	content, err := svc.Create(ContentCreateInput{Type: models.ContentTypeSpotify, Name: "Playlist doom", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}

	pub := date(2024, time.May, 10)
	if _, err := svc.Update(content.ID, ContentUpdateInput{PublicationDate: At(pub)}); err != nil {
		t.Fatalf("set publication date: %v", err)
	}

	var spotify models.Spotify
	if err := db.First(&spotify, *content.SpotifyID).Error; err != nil {
		t.Fatalf("load spotify: %v", err)
	}
	if spotify.Status != models.SpotifyStatusPublicada {
		t.Errorf("expected status publicada, got %q", spotify.Status)
	}
	if spotify.UpdateDate == nil || !spotify.UpdateDate.Equal(pub) {
		t.Errorf("expected update date %v, got %v", pub, spotify.UpdateDate)
	}

	// Clearing the date sends the playlist back to para_publicar.
	if _, err := svc.Update(content.ID, ContentUpdateInput{PublicationDate: Null()}); err != nil {
		t.Fatalf("clear publication date: %v", err)
	}
	if err := db.First(&spotify, *content.SpotifyID).Error; err != nil {
		t.Fatalf("reload spotify: %v", err)
	}
	if spotify.Status != models.SpotifyStatusParaPublicar {
		t.Errorf("expected status para_publicar, got %q", spotify.Status)
	}
}

func TestFindByMonthPaddedWindow(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "gema")

	mk := func(name string, day time.Time) {
		t.Helper()
		content := models.Content{Type: models.ContentTypePhotos, Name: name, AuthorID: author.ID, PublicationDate: &day}
		if err := db.Create(&content).Error; err != nil {
			t.Fatalf("create content %s: %v", name, err)
		}
	}

	mk("before-window", date(2024, time.February, 22))
	mk("window-start", date(2024, time.February, 23))
	mk("mid-month", date(2024, time.March, 15))
	mk("window-end", date(2024, time.April, 6))
	mk("after-window", date(2024, time.April, 7))
	mk("backlog", time.Time{}) // zero date row, created directly below
	if err := db.Model(&models.Content{}).Where("name = ?", "backlog").Update("publication_date", nil).Error; err != nil {
		t.Fatalf("clear backlog date: %v", err)
	}

	contents, err := svc.FindByMonth(2024, time.March)
	if err != nil {
		t.Fatalf("find by month: %v", err)
	}

	got := map[string]bool{}
	for _, c := range contents {
		got[c.Name] = true
	}
	for _, want := range []string{"window-start", "mid-month", "window-end"} {
		if !got[want] {
			t.Errorf("expected %q in the March window", want)
		}
	}
	for _, reject := range []string{"before-window", "after-window", "backlog"} {
		if got[reject] {
			t.Errorf("did not expect %q in the March window", reject)
		}
	}
}

func TestRemoveContentCascades(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "hugo")

	content, err := svc.Create(ContentCreateInput{Type: models.ContentTypeRadar, Name: "Radar", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("create content: %v", err)
	}
	listID := *content.ListID

	asignation := models.Asignation{ListID: listID, DiscID: 1, UserID: author.ID}
	if err := db.Create(&asignation).Error; err != nil {
		t.Fatalf("create asignation: %v", err)
	}

	if err := svc.Remove(content.ID); err != nil {
		t.Fatalf("remove content: %v", err)
	}

	var count int64
	db.Model(&models.Content{}).Where("id = ?", content.ID).Count(&count)
	if count != 0 {
		t.Error("content still present after removal")
	}
	db.Model(&models.List{}).Where("id = ?", listID).Count(&count)
	if count != 0 {
		t.Error("linked list still present after removal")
	}
	db.Model(&models.Asignation{}).Where("list_id = ?", listID).Count(&count)
	if count != 0 {
		t.Error("asignations still present after removal")
	}
}

func TestMarkBacklogOnlyWritesWhenDateSet(t *testing.T) {
	svc, db := newContentsService(t)
	author := createTestUser(t, db, "ines")

	pub := date(2024, time.June, 1)
	content := models.Content{Type: models.ContentTypeArticle, Name: "Piece", AuthorID: author.ID, PublicationDate: &pub}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	if err := svc.MarkBacklog(&content); err != nil {
		t.Fatalf("mark backlog: %v", err)
	}
	if content.PublicationDate != nil {
		t.Error("publication date not cleared")
	}

	var reloaded models.Content
	if err := db.First(&reloaded, content.ID).Error; err != nil {
		t.Fatalf("reload content: %v", err)
	}
	if reloaded.PublicationDate != nil {
		t.Error("publication date still set in the database")
	}

	// Second call is a no-op.
	if err := svc.MarkBacklog(&content); err != nil {
		t.Fatalf("second mark backlog: %v", err)
	}
}

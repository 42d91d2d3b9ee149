package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

func newArticlesService(t *testing.T) (*ArticlesService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	contents := NewContentsService(db, zap.NewNop())
	return NewArticlesService(db, zap.NewNop(), contents), db
}

func strPtr(s string) *string { return &s }

func TestArticleReadyRequiresAssignedUser(t *testing.T) {
	svc, db := newArticlesService(t)

	article := models.Article{Name: "Unassigned piece", Status: models.ArticleStatusWriting}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}

	_, err := svc.Update(article.ID, ArticleInput{Status: strPtr(models.ArticleStatusReady)})
	if !errors.Is(err, ErrNoAssignedUser) {
		t.Fatalf("expected ErrNoAssignedUser, got %v", err)
	}

	var reloaded models.Article
	if err := db.First(&reloaded, article.ID).Error; err != nil {
		t.Fatalf("reload article: %v", err)
	}
	if reloaded.Status != models.ArticleStatusWriting {
		t.Errorf("status changed despite the rejected transition: %q", reloaded.Status)
	}
}

func TestArticleReadyCreatesBacklogContent(t *testing.T) {
	svc, db := newArticlesService(t)
	writer := createTestUser(t, db, "writer")

	article := models.Article{Name: "Festival report", Status: models.ArticleStatusEditing, UserID: &writer.ID}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}

	if _, err := svc.Update(article.ID, ArticleInput{Status: strPtr(models.ArticleStatusReady)}); err != nil {
		t.Fatalf("update to ready: %v", err)
	}

	var content models.Content
	if err := db.Where("article_id = ?", article.ID).First(&content).Error; err != nil {
		t.Fatalf("expected a linked content: %v", err)
	}
	if content.Type != models.ContentTypeArticle {
		t.Errorf("expected content type article, got %q", content.Type)
	}
	if content.AuthorID != writer.ID {
		t.Errorf("expected author %d, got %d", writer.ID, content.AuthorID)
	}
	if content.PublicationDate != nil {
		t.Error("fresh ready content should sit in the backlog")
	}
}

func TestArticleReadyAgainSendsContentToBacklog(t *testing.T) {
	svc, db := newArticlesService(t)
	writer := createTestUser(t, db, "writer")

	article := models.Article{Name: "Column", Status: models.ArticleStatusEditing, UserID: &writer.ID}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}
	pub := date(2024, time.July, 1)
	content := models.Content{Type: models.ContentTypeArticle, Name: article.Name, AuthorID: writer.ID, ArticleID: &article.ID, PublicationDate: &pub}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	if _, err := svc.Update(article.ID, ArticleInput{Status: strPtr(models.ArticleStatusReady)}); err != nil {
		t.Fatalf("update to ready: %v", err)
	}

	var reloaded models.Content
	if err := db.First(&reloaded, content.ID).Error; err != nil {
		t.Fatalf("reload content: %v", err)
	}
	if reloaded.PublicationDate != nil {
		t.Error("expected the existing content back in the backlog")
	}

	var count int64
	db.Model(&models.Content{}).Where("article_id = ?", article.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one linked content, got %d", count)
	}
}

func TestArticlePublishedStampsContent(t *testing.T) {
	svc, db := newArticlesService(t)
	writer := createTestUser(t, db, "writer")

	article := models.Article{Name: "Big interview", Status: models.ArticleStatusReady, UserID: &writer.ID}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}
	content := models.Content{Type: models.ContentTypeArticle, Name: article.Name, AuthorID: writer.ID, ArticleID: &article.ID}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	updated, err := svc.Update(article.ID, ArticleInput{Status: strPtr(models.ArticleStatusPublished)})
	if err != nil {
		t.Fatalf("update to published: %v", err)
	}
	if updated.UpdateDate == nil {
		t.Fatal("expected the publish instant on the article")
	}

	var reloaded models.Content
	if err := db.First(&reloaded, content.ID).Error; err != nil {
		t.Fatalf("reload content: %v", err)
	}
	if reloaded.PublicationDate == nil {
		t.Fatal("expected the publish instant on the content")
	}
	if !reloaded.PublicationDate.Equal(*updated.UpdateDate) {
		t.Errorf("content date %v does not match article date %v", reloaded.PublicationDate, updated.UpdateDate)
	}
}

func TestArticlePublishedWithoutContentIsFine(t *testing.T) {
	svc, db := newArticlesService(t)
	writer := createTestUser(t, db, "writer")

	article := models.Article{Name: "Standalone", Status: models.ArticleStatusReady, UserID: &writer.ID}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}

	if _, err := svc.Update(article.ID, ArticleInput{Status: strPtr(models.ArticleStatusPublished)}); err != nil {
		t.Fatalf("update to published: %v", err)
	}
}

func TestArticleRemoveGoesThroughContent(t *testing.T) {
	svc, db := newArticlesService(t)
	writer := createTestUser(t, db, "writer")

	article := models.Article{Name: "Doomed piece", Status: models.ArticleStatusReady, UserID: &writer.ID}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}
	content := models.Content{Type: models.ContentTypeArticle, Name: article.Name, AuthorID: writer.ID, ArticleID: &article.ID}
	if err := db.Create(&content).Error; err != nil {
		t.Fatalf("create content: %v", err)
	}

	if err := svc.Remove(article.ID); err != nil {
		t.Fatalf("remove article: %v", err)
	}

	var count int64
	db.Model(&models.Article{}).Where("id = ?", article.ID).Count(&count)
	if count != 0 {
		t.Error("article still present after removal")
	}
	db.Model(&models.Content{}).Where("id = ?", content.ID).Count(&count)
	if count != 0 {
		t.Error("content still present after removal")
	}
}

func TestArticleListFilters(t *testing.T) {
	svc, db := newArticlesService(t)

	seed := []models.Article{
		{Name: "Doom review", Status: models.ArticleStatusWriting, Type: "cronica"},
		{Name: "Sludge interview", Status: models.ArticleStatusReady, Type: "entrevista"},
		{Name: "Doom interview", Status: models.ArticleStatusReady, Type: "entrevista"},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed article: %v", err)
		}
	}

	byStatus, err := svc.List(ArticleFilter{Status: models.ArticleStatusReady})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(byStatus) != 2 {
		t.Errorf("expected 2 ready articles, got %d", len(byStatus))
	}

	byQuery, err := svc.List(ArticleFilter{Query: "Doom"})
	if err != nil {
		t.Fatalf("list by query: %v", err)
	}
	if len(byQuery) != 2 {
		t.Errorf("expected 2 doom articles, got %d", len(byQuery))
	}

	limited, err := svc.List(ArticleFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list with paging: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 article with limit, got %d", len(limited))
	}
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

// ArticlesService handles article CRUD and the status workflow. Only the
// ready and published transitions carry logic; every other field update is
// plain assignment.
type ArticlesService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Contents *ContentsService
}

// NewArticlesService builds an ArticlesService.
func NewArticlesService(db *gorm.DB, logger *zap.Logger, contents *ContentsService) *ArticlesService {
	return &ArticlesService{DB: db, Logger: logger, Contents: contents}
}

// ArticleFilter describes the listing filters.
type ArticleFilter struct {
	Query  string
	Status string
	Type   string
	Limit  int
	Offset int
}

// ArticleInput carries the updatable fields; nil pointers are left untouched.
type ArticleInput struct {
	Name     *string `json:"name"`
	Status   *string `json:"status"`
	Type     *string `json:"type"`
	Link     *string `json:"link"`
	UserID   *uint   `json:"user_id"`
	EditorID *uint   `json:"editor_id"`
}

// List returns articles matching the filter.
func (s *ArticlesService) List(filter ArticleFilter) ([]models.Article, error) {
	query := s.DB.Model(&models.Article{}).Preload("User").Preload("Editor")

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR link LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var articles []models.Article
	if err := query.Order("updated_at desc").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// Get returns one article with its people loaded.
func (s *ArticlesService) Get(id uint) (*models.Article, error) {
	var article models.Article
	if err := s.DB.Preload("User").Preload("Editor").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &article, nil
}

// Create inserts a new article.
func (s *ArticlesService) Create(input ArticleInput) (*models.Article, error) {
	article := models.Article{Status: models.ArticleStatusNotStarted}
	applyArticleInput(&article, input)
	if err := s.DB.Create(&article).Error; err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return &article, nil
}

// Update applies plain field changes and runs the transition logic when the
// status moves to ready or published. The ready precondition is checked
// before anything is persisted. The Content sync runs after the article is
// saved; a sync failure is surfaced but the article's own changes stay.
func (s *ArticlesService) Update(id uint, input ArticleInput) (*models.Article, error) {
	var article models.Article
	if err := s.DB.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	statusChanged := input.Status != nil && *input.Status != article.Status
	applyArticleInput(&article, input)

	if statusChanged && article.Status == models.ArticleStatusReady && article.UserID == nil {
		return nil, ErrNoAssignedUser
	}

	var publishedAt time.Time
	if statusChanged && article.Status == models.ArticleStatusPublished {
		publishedAt = time.Now()
		article.UpdateDate = &publishedAt
	}

	if err := s.DB.Save(&article).Error; err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}

	if statusChanged {
		switch article.Status {
		case models.ArticleStatusReady:
			if err := s.onReady(&article); err != nil {
				return nil, fmt.Errorf("article saved but content sync failed: %w", err)
			}
		case models.ArticleStatusPublished:
			if err := s.onPublished(&article, publishedAt); err != nil {
				return nil, fmt.Errorf("article saved but content sync failed: %w", err)
			}
		}
	}

	return &article, nil
}

// onReady creates the linked Content if it does not exist yet, or sends the
// existing one back to the backlog.
func (s *ArticlesService) onReady(article *models.Article) error {
	content, err := s.Contents.FindOneByArticleID(article.ID)
	if errors.Is(err, ErrContentNotFound) {
		_, err = s.Contents.CreateForArticle(article)
		return err
	}
	if err != nil {
		return err
	}
	return s.Contents.MarkBacklog(content)
}

// onPublished stamps the linked Content with the article's publish instant.
func (s *ArticlesService) onPublished(article *models.Article, at time.Time) error {
	content, err := s.Contents.FindOneByArticleID(article.ID)
	if errors.Is(err, ErrContentNotFound) {
		return nil // nothing linked, nothing to sync
	}
	if err != nil {
		return err
	}
	return s.Contents.SetPublicationDate(content, at)
}

// Remove deletes the article through its linked Content when one exists, so
// the cascade removes both; otherwise it deletes the article directly.
func (s *ArticlesService) Remove(id uint) error {
	var article models.Article
	if err := s.DB.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return fmt.Errorf("get article: %w", err)
	}

	content, err := s.Contents.FindOneByArticleID(article.ID)
	if err == nil {
		return s.Contents.Remove(content.ID)
	}
	if !errors.Is(err, ErrContentNotFound) {
		return err
	}

	if err := s.DB.Delete(&models.Article{}, article.ID).Error; err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func applyArticleInput(article *models.Article, input ArticleInput) {
	if input.Name != nil {
		article.Name = *input.Name
	}
	if input.Status != nil {
		article.Status = *input.Status
	}
	if input.Type != nil {
		article.Type = *input.Type
	}
	if input.Link != nil {
		article.Link = *input.Link
	}
	if input.UserID != nil {
		article.UserID = input.UserID
	}
	if input.EditorID != nil {
		article.EditorID = input.EditorID
	}
}

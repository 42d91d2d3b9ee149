package services

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
)

// ContentsService orchestrates the editorial calendar. Every editorial item
// has one Content row; creating one auto-creates the linked Article, Spotify,
// Reunion or List, and date edits propagate into the linked entity. The
// propagation steps are independent read-modify-writes, not a transaction; a
// crash mid-way leaves the entities to be reconciled by the next edit.
type ContentsService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewContentsService builds a ContentsService.
func NewContentsService(db *gorm.DB, logger *zap.Logger) *ContentsService {
	return &ContentsService{DB: db, Logger: logger}
}

// ContentCreateInput carries the fields accepted when creating a Content.
// The linked-entity ids are optional: when absent for a type that needs one,
// the entity is created with defaults.
type ContentCreateInput struct {
	Type            string       `json:"type" binding:"required"`
	Name            string       `json:"name" binding:"required"`
	Notes           string       `json:"notes"`
	AuthorID        uint         `json:"author_id" binding:"required"`
	PublicationDate NullableTime `json:"publication_date"`
	CloseDate       NullableTime `json:"close_date"`
	ListDate        NullableTime `json:"list_date"`

	SpotifyID *uint `json:"spotify_id"`
	ArticleID *uint `json:"article_id"`
	ReunionID *uint `json:"reunion_id"`
	ListID    *uint `json:"list_id"`
}

// ContentUpdateInput carries the fields accepted when updating a Content.
// Pointer fields left nil are not touched; the date fields distinguish
// absent from explicit null.
type ContentUpdateInput struct {
	Name      *string `json:"name"`
	Notes     *string `json:"notes"`
	AuthorID  *uint   `json:"author_id"`
	ReunionID *uint   `json:"reunion_id"`

	PublicationDate NullableTime `json:"publication_date"`
	CloseDate       NullableTime `json:"close_date"`
	ListDate        NullableTime `json:"list_date"`
}

// Create validates the author and the optional reunion reference, creates
// the linked entity for types that need one, and persists the Content.
func (s *ContentsService) Create(input ContentCreateInput) (*models.Content, error) {
	var author models.User
	if err := s.DB.First(&author, input.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	if input.ReunionID != nil {
		var reunion models.Reunion
		if err := s.DB.First(&reunion, *input.ReunionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReunionNotFound
			}
			return nil, fmt.Errorf("resolve reunion: %w", err)
		}
	}

	content := models.Content{
		Type:            input.Type,
		Name:            input.Name,
		Notes:           input.Notes,
		AuthorID:        author.ID,
		PublicationDate: input.PublicationDate.Value,
		CloseDate:       input.CloseDate.Value,
		ListDate:        input.ListDate.Value,
		SpotifyID:       input.SpotifyID,
		ArticleID:       input.ArticleID,
		ReunionID:       input.ReunionID,
		ListID:          input.ListID,
	}

	switch input.Type {
	case models.ContentTypeSpotify:
		if content.SpotifyID == nil {
			spotify := models.Spotify{
				Name:   content.Name,
				Status: models.SpotifyStatusEnDesarrollo,
				UserID: &author.ID,
			}
			if err := s.DB.Create(&spotify).Error; err != nil {
				return nil, fmt.Errorf("create linked spotify: %w", err)
			}
			content.SpotifyID = &spotify.ID
		}
	case models.ContentTypeArticle:
		if content.ArticleID == nil {
			article := models.Article{
				Name:   content.Name,
				Status: models.ArticleStatusNotStarted,
				UserID: &author.ID,
			}
			if err := s.DB.Create(&article).Error; err != nil {
				return nil, fmt.Errorf("create linked article: %w", err)
			}
			content.ArticleID = &article.ID
		}
	case models.ContentTypeReunion:
		if content.ReunionID == nil {
			reunion := models.Reunion{
				Title: content.Name,
				Date:  content.PublicationDate,
				Points: []models.Point{
					{Title: "Repaso de contenidos", Order: 1},
					{Title: "Propuestas y asignaciones", Order: 2},
				},
			}
			if err := s.DB.Create(&reunion).Error; err != nil {
				return nil, fmt.Errorf("create linked reunion: %w", err)
			}
			content.ReunionID = &reunion.ID
		}
	case models.ContentTypeRadar, models.ContentTypeBest, models.ContentTypeVideo:
		if content.ListID == nil {
			list := models.List{
				Name:        content.Name,
				Type:        listTypeForContent(input.Type),
				Status:      models.ListStatusAbierta,
				ReleaseDate: content.PublicationDate,
				ListDate:    content.ListDate,
				CloseDate:   content.CloseDate,
			}
			if err := s.DB.Create(&list).Error; err != nil {
				return nil, fmt.Errorf("create linked list: %w", err)
			}
			content.ListID = &list.ID
		}
	}

	if err := s.DB.Create(&content).Error; err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return s.Get(content.ID)
}

// Get returns one Content with its relations loaded.
func (s *ContentsService) Get(id uint) (*models.Content, error) {
	var content models.Content
	err := s.DB.
		Preload("Author").
		Preload("List").
		Preload("Spotify").
		Preload("Article").
		Preload("Reunion").
		First(&content, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("get content: %w", err)
	}
	return &content, nil
}

// Update applies the input, saves the Content and then pushes the resulting
// dates into the linked List, or status+date into the linked Spotify/Article.
// Linked entities are only written when something actually changed, so a
// round-trip through the sync never loops.
func (s *ContentsService) Update(id uint, input ContentUpdateInput) (*models.Content, error) {
	var content models.Content
	if err := s.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("get content: %w", err)
	}

	if input.AuthorID != nil && *input.AuthorID != content.AuthorID {
		var author models.User
		if err := s.DB.First(&author, *input.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAuthorNotFound
			}
			return nil, fmt.Errorf("resolve author: %w", err)
		}
		content.AuthorID = author.ID
	}
	if input.ReunionID != nil {
		var reunion models.Reunion
		if err := s.DB.First(&reunion, *input.ReunionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReunionNotFound
			}
			return nil, fmt.Errorf("resolve reunion: %w", err)
		}
		content.ReunionID = input.ReunionID
	}

	if input.Name != nil {
		content.Name = *input.Name
	}
	if input.Notes != nil {
		content.Notes = *input.Notes
	}
	if input.PublicationDate.Set {
		content.PublicationDate = input.PublicationDate.Value
	}
	if input.CloseDate.Set {
		content.CloseDate = input.CloseDate.Value
	}
	if input.ListDate.Set {
		content.ListDate = input.ListDate.Value
	}

	if err := s.DB.Save(&content).Error; err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}

	if err := s.syncLinked(&content); err != nil {
		// The content itself is already persisted; surface the sync failure.
		return nil, fmt.Errorf("content saved but sync failed: %w", err)
	}

	return s.Get(content.ID)
}

// syncLinked pushes the content's dates into its linked entity.
func (s *ContentsService) syncLinked(content *models.Content) error {
	switch content.Type {
	case models.ContentTypeRadar, models.ContentTypeBest, models.ContentTypeVideo:
		if content.ListID == nil {
			return nil
		}
		var list models.List
		if err := s.DB.First(&list, *content.ListID).Error; err != nil {
			return fmt.Errorf("load linked list: %w", err)
		}
		changed := false
		if !timePtrEqual(list.ReleaseDate, content.PublicationDate) {
			list.ReleaseDate = content.PublicationDate
			changed = true
		}
		if !timePtrEqual(list.ListDate, content.ListDate) {
			list.ListDate = content.ListDate
			changed = true
		}
		if !timePtrEqual(list.CloseDate, content.CloseDate) {
			list.CloseDate = content.CloseDate
			changed = true
		}
		if !changed {
			return nil
		}
		if err := s.DB.Save(&list).Error; err != nil {
			return fmt.Errorf("sync list dates: %w", err)
		}

	case models.ContentTypeSpotify:
		if content.SpotifyID == nil {
			return nil
		}
		var spotify models.Spotify
		if err := s.DB.First(&spotify, *content.SpotifyID).Error; err != nil {
			return fmt.Errorf("load linked spotify: %w", err)
		}
		changed := false
		if content.PublicationDate != nil {
			if spotify.Status != models.SpotifyStatusPublicada {
				spotify.Status = models.SpotifyStatusPublicada
				changed = true
			}
			if !timePtrEqual(spotify.UpdateDate, content.PublicationDate) {
				spotify.UpdateDate = content.PublicationDate
				changed = true
			}
		} else if spotify.Status == models.SpotifyStatusPublicada {
			spotify.Status = models.SpotifyStatusParaPublicar
			changed = true
		}
		if !changed {
			return nil
		}
		if err := s.DB.Save(&spotify).Error; err != nil {
			return fmt.Errorf("sync spotify: %w", err)
		}

	case models.ContentTypeArticle:
		if content.ArticleID == nil {
			return nil
		}
		var article models.Article
		if err := s.DB.First(&article, *content.ArticleID).Error; err != nil {
			return fmt.Errorf("load linked article: %w", err)
		}
		changed := false
		if content.PublicationDate != nil {
			if article.Status != models.ArticleStatusPublished {
				article.Status = models.ArticleStatusPublished
				changed = true
			}
			if !timePtrEqual(article.UpdateDate, content.PublicationDate) {
				article.UpdateDate = content.PublicationDate
				changed = true
			}
		} else if article.Status == models.ArticleStatusPublished {
			article.Status = models.ArticleStatusReady
			changed = true
		}
		if !changed {
			return nil
		}
		if err := s.DB.Save(&article).Error; err != nil {
			return fmt.Errorf("sync article: %w", err)
		}
	}
	return nil
}

// Remove deletes the Content and then, best-effort, its linked List,
// Reunion, Spotify and Article rows. Each delete is independent; failures
// are logged and do not stop the cascade.
func (s *ContentsService) Remove(id uint) error {
	var content models.Content
	if err := s.DB.First(&content, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return fmt.Errorf("get content: %w", err)
	}

	if err := s.DB.Delete(&models.Content{}, id).Error; err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	if content.ListID != nil {
		if err := s.deleteList(*content.ListID); err != nil {
			s.Logger.Error("cascade delete of linked list failed",
				zap.Uint("content_id", id), zap.Uint("list_id", *content.ListID), zap.Error(err))
		}
	}
	if content.ReunionID != nil {
		if err := s.deleteReunion(*content.ReunionID); err != nil {
			s.Logger.Error("cascade delete of linked reunion failed",
				zap.Uint("content_id", id), zap.Uint("reunion_id", *content.ReunionID), zap.Error(err))
		}
	}
	if content.SpotifyID != nil {
		if err := s.DB.Delete(&models.Spotify{}, *content.SpotifyID).Error; err != nil {
			s.Logger.Error("cascade delete of linked spotify failed",
				zap.Uint("content_id", id), zap.Uint("spotify_id", *content.SpotifyID), zap.Error(err))
		}
	}
	if content.ArticleID != nil {
		if err := s.DB.Delete(&models.Article{}, *content.ArticleID).Error; err != nil {
			s.Logger.Error("cascade delete of linked article failed",
				zap.Uint("content_id", id), zap.Uint("article_id", *content.ArticleID), zap.Error(err))
		}
	}
	return nil
}

func (s *ContentsService) deleteList(listID uint) error {
	if err := s.DB.Where("list_id = ?", listID).Delete(&models.Asignation{}).Error; err != nil {
		return fmt.Errorf("delete asignations: %w", err)
	}
	if err := s.DB.Where("list_id = ?", listID).Delete(&models.ListLink{}).Error; err != nil {
		return fmt.Errorf("delete list links: %w", err)
	}
	if err := s.DB.Delete(&models.List{}, listID).Error; err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

func (s *ContentsService) deleteReunion(reunionID uint) error {
	if err := s.DB.Where("reunion_id = ?", reunionID).Delete(&models.Point{}).Error; err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	if err := s.DB.Delete(&models.Reunion{}, reunionID).Error; err != nil {
		return fmt.Errorf("delete reunion: %w", err)
	}
	return nil
}

// FindByMonth returns every Content whose publication date falls in the
// padded calendar-month window [first day − 7d, last day + 6d], with the
// linked entities eagerly loaded.
func (s *ContentsService) FindByMonth(year int, month time.Month) ([]models.Content, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -7)
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, 7) // exclusive upper bound: last day + 6 inclusive

	var contents []models.Content
	err := s.DB.
		Preload("Author").
		Preload("List").
		Preload("Spotify").
		Preload("Article").
		Preload("Reunion").
		Where("publication_date >= ? AND publication_date < ?", start, end).
		Order("publication_date asc").
		Find(&contents).Error
	if err != nil {
		return nil, fmt.Errorf("find contents by month: %w", err)
	}
	return contents, nil
}

// FindOneBySpotifyID returns the Content linked to the given Spotify row.
func (s *ContentsService) FindOneBySpotifyID(spotifyID uint) (*models.Content, error) {
	return s.findOneByLink("spotify_id", spotifyID)
}

// FindOneByArticleID returns the Content linked to the given Article row.
func (s *ContentsService) FindOneByArticleID(articleID uint) (*models.Content, error) {
	return s.findOneByLink("article_id", articleID)
}

func (s *ContentsService) findOneByLink(column string, id uint) (*models.Content, error) {
	var content models.Content
	err := s.DB.Where(column+" = ?", id).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, fmt.Errorf("find content by %s: %w", column, err)
	}
	return &content, nil
}

// DefaultAuthorID returns the first user row, used as a fallback author for
// scheduled jobs.
func (s *ContentsService) DefaultAuthorID() (uint, error) {
	var user models.User
	if err := s.DB.Order("id asc").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoUsers
		}
		return 0, fmt.Errorf("default author: %w", err)
	}
	return user.ID, nil
}

// CreateForArticle creates the backlog Content row for an article that just
// reached ready. The article's assigned user becomes the author.
func (s *ContentsService) CreateForArticle(article *models.Article) (*models.Content, error) {
	if article.UserID == nil {
		return nil, ErrNoAssignedUser
	}
	content := models.Content{
		Type:      models.ContentTypeArticle,
		Name:      article.Name,
		AuthorID:  *article.UserID,
		ArticleID: &article.ID,
	}
	if err := s.DB.Create(&content).Error; err != nil {
		return nil, fmt.Errorf("create content for article: %w", err)
	}
	return &content, nil
}

// CreateForSpotify creates the backlog Content row for a playlist that just
// reached para_publicar.
func (s *ContentsService) CreateForSpotify(spotify *models.Spotify) (*models.Content, error) {
	if spotify.UserID == nil {
		return nil, ErrNoAssignedUser
	}
	content := models.Content{
		Type:      models.ContentTypeSpotify,
		Name:      spotify.Name,
		AuthorID:  *spotify.UserID,
		SpotifyID: &spotify.ID,
	}
	if err := s.DB.Create(&content).Error; err != nil {
		return nil, fmt.Errorf("create content for spotify: %w", err)
	}
	return &content, nil
}

// MarkBacklog clears the content's publication date, sending the item back
// to the backlog. Writes only when a date was set.
func (s *ContentsService) MarkBacklog(content *models.Content) error {
	if content.PublicationDate == nil {
		return nil
	}
	if err := s.DB.Model(content).Update("publication_date", nil).Error; err != nil {
		return fmt.Errorf("clear publication date: %w", err)
	}
	content.PublicationDate = nil
	return nil
}

// SetPublicationDate stamps the content's publication date.
func (s *ContentsService) SetPublicationDate(content *models.Content, at time.Time) error {
	if err := s.DB.Model(content).Update("publication_date", at).Error; err != nil {
		return fmt.Errorf("set publication date: %w", err)
	}
	content.PublicationDate = &at
	return nil
}

func listTypeForContent(contentType string) string {
	switch contentType {
	case models.ContentTypeRadar:
		return models.ListTypeWeek
	case models.ContentTypeBest:
		return models.ListTypeMonth
	default:
		return models.ListTypeVideo
	}
}

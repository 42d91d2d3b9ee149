package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"redaccion/config"
	"redaccion/models"
	"redaccion/providers"
)

// CoverUploader mirrors downloaded cover art to object storage.
type CoverUploader interface {
	Upload(ctx context.Context, key string, data []byte) (string, error)
}

var coverHTTPClient = &http.Client{Timeout: 30 * time.Second}

// SchedulerService runs the time-triggered jobs: the daily disc-link
// backfill and the Monday creation of the weekly contents. Both jobs keep
// going past per-item failures; each disc is persisted as soon as it is
// resolved so a crash mid-batch loses nothing already done.
type SchedulerService struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *zap.Logger
	Contents *ContentsService

	// Primary and Fallback search sources; either may be nil.
	Primary  providers.Searcher
	Fallback providers.Searcher

	// Covers is optional; when set, found cover art is mirrored to S3.
	Covers CoverUploader

	// Now is injectable for the Monday gate in tests.
	Now func() time.Time
}

// NewSchedulerService builds a SchedulerService.
func NewSchedulerService(cfg *config.Config, db *gorm.DB, logger *zap.Logger, contents *ContentsService, primary, fallback providers.Searcher, covers CoverUploader) *SchedulerService {
	return &SchedulerService{
		Config:   cfg,
		DB:       db,
		Logger:   logger,
		Contents: contents,
		Primary:  primary,
		Fallback: fallback,
		Covers:   covers,
		Now:      time.Now,
	}
}

// RunDailyLinkUpdate searches a link for every released disc that still has
// none (or only the not-found sentinel). Returns how many discs got linked.
func (s *SchedulerService) RunDailyLinkUpdate(ctx context.Context) (int, error) {
	now := s.Now()

	var discs []models.Disc
	err := s.DB.Preload("Artist").
		Where("release_date IS NOT NULL AND release_date <= ?", now).
		Where("link = '' OR link IS NULL OR link = ?", models.DiscLinkNotFound).
		Find(&discs).Error
	if err != nil {
		return 0, fmt.Errorf("load discs needing links: %w", err)
	}

	s.Logger.Info("daily link update started", zap.Int("discs", len(discs)))

	linked := 0
	for i := range discs {
		disc := &discs[i]
		artistName := ""
		if disc.Artist != nil {
			artistName = disc.Artist.Name
		}
		log := s.Logger.With(zap.Uint("disc_id", disc.ID), zap.String("disc", disc.Name), zap.String("artist", artistName))

		result := s.search(ctx, log, artistName, disc.Name)
		if result == nil {
			disc.Link = models.DiscLinkNotFound
		} else {
			disc.Link = result.Link
			disc.Image = result.Image
			disc.Verified = true
			if len(result.Raw) > 0 {
				disc.SearchEvidence = datatypes.JSON(result.Raw)
			}
			s.mirrorCover(ctx, log, disc)
			linked++
		}

		// Persist immediately so partial failures keep prior progress.
		if err := s.DB.Save(disc).Error; err != nil {
			log.Error("failed to save disc after search", zap.Error(err))
		}
	}

	s.Logger.Info("daily link update finished", zap.Int("discs", len(discs)), zap.Int("linked", linked))
	return linked, nil
}

// search tries the primary source, then the fallback. A nil return means
// both sources were exhausted.
func (s *SchedulerService) search(ctx context.Context, log *zap.Logger, artist, title string) *providers.Result {
	for _, source := range []providers.Searcher{s.Primary, s.Fallback} {
		if source == nil {
			continue
		}
		result, err := source.SearchDisc(ctx, artist, title)
		if err != nil {
			log.Warn("search source failed", zap.String("source", source.Name()), zap.Error(err))
			continue
		}
		if result != nil {
			return result
		}
	}
	return nil
}

// mirrorCover downloads the disc's cover art and uploads it to object
// storage. Best-effort: failures are logged and the link job carries on.
func (s *SchedulerService) mirrorCover(ctx context.Context, log *zap.Logger, disc *models.Disc) {
	if s.Covers == nil || disc.Image == "" {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, disc.Image, nil)
	if err != nil {
		log.Warn("cover download request failed", zap.Error(err))
		return
	}
	resp, err := coverHTTPClient.Do(req)
	if err != nil {
		log.Warn("cover download failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn("cover download returned bad status", zap.Int("status", resp.StatusCode))
		return
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("cover download read failed", zap.Error(err))
		return
	}

	key := fmt.Sprintf("covers/%d.jpg", disc.ID)
	link, err := s.Covers.Upload(ctx, key, data)
	if err != nil {
		log.Warn("cover upload failed", zap.Error(err))
		return
	}
	disc.CoverS3Link = link
}

// RunWeeklyContentCreation creates the two standing Contents of the week: a
// reunion on Wednesday evening and the weekly radar list. The job only does
// work on Mondays; the external trigger may fire daily. Returns how many
// contents were created.
func (s *SchedulerService) RunWeeklyContentCreation(ctx context.Context) (int, error) {
	_ = ctx
	now := s.Now()
	if now.Weekday() != time.Monday {
		s.Logger.Info("weekly content job skipped", zap.String("weekday", now.Weekday().String()))
		return 0, nil
	}

	authorID, err := s.Contents.DefaultAuthorID()
	if err != nil {
		return 0, fmt.Errorf("weekly content job: %w", err)
	}

	year, week := now.ISOWeek()
	created := 0

	// Reunion on the upcoming Wednesday at 19:00.
	wednesday := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, now.Location()).AddDate(0, 0, 2)
	_, err = s.Contents.Create(ContentCreateInput{
		Type:            models.ContentTypeReunion,
		Name:            fmt.Sprintf("Reunión semana %d/%d", week, year),
		AuthorID:        authorID,
		PublicationDate: At(wednesday),
	})
	if err != nil {
		s.Logger.Error("failed to create weekly reunion content", zap.Error(err))
	} else {
		created++
	}

	// Radar for the current week, published on Friday evening.
	friday := time.Date(now.Year(), now.Month(), now.Day(), 18, 0, 0, 0, now.Location()).AddDate(0, 0, 4)
	_, err = s.Contents.Create(ContentCreateInput{
		Type:            models.ContentTypeRadar,
		Name:            fmt.Sprintf("Radar semana %d/%d", week, year),
		AuthorID:        authorID,
		PublicationDate: At(friday),
		ListDate:        At(now),
	})
	if err != nil {
		s.Logger.Error("failed to create weekly radar content", zap.Error(err))
	} else {
		created++
	}

	s.Logger.Info("weekly content job finished", zap.Int("created", created))
	return created, nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/services"
)

// handleServiceError maps service errors onto HTTP status codes.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrContentNotFound),
		errors.Is(err, services.ErrArticleNotFound),
		errors.Is(err, services.ErrSpotifyNotFound),
		errors.Is(err, services.ErrListNotFound),
		errors.Is(err, services.ErrReunionNotFound),
		errors.Is(err, services.ErrAsignationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAuthorNotFound),
		errors.Is(err, services.ErrNoAssignedUser),
		errors.Is(err, services.ErrNoUsers),
		errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func parseTimeQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func setupContentRoutes(router *gin.Engine, contents *services.ContentsService, scheduler *services.SchedulerService, log *zap.Logger) {
	router.GET("/contents/month/:year/:month", func(c *gin.Context) {
		year, err := strconv.Atoi(c.Param("year"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		month, err := strconv.Atoi(c.Param("month"))
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		result, err := contents.FindByMonth(year, time.Month(month))
		if err != nil {
			log.Error("month query failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/contents/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		content, err := contents.Get(id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, content)
	})

	router.POST("/contents", func(c *gin.Context) {
		var input services.ContentCreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		content, err := contents.Create(input)
		if err != nil {
			log.Error("content creation failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, content)
	})

	router.PATCH("/contents/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.ContentUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		content, err := contents.Update(id, input)
		if err != nil {
			log.Error("content update failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, content)
	})

	router.DELETE("/contents/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := contents.Remove(id); err != nil {
			log.Error("content removal failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})

	router.POST("/contents/trigger-daily-link-update", func(c *gin.Context) {
		go func() {
			count, err := scheduler.RunDailyLinkUpdate(context.Background())
			if err != nil {
				log.Error("triggered link update failed", zap.Error(err))
				return
			}
			discsLinkedCounter.Add(float64(count))
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Daily link update triggered."})
	})
}

func setupArticleRoutes(router *gin.Engine, articles *services.ArticlesService, log *zap.Logger) {
	router.GET("/articles", func(c *gin.Context) {
		filter := services.ArticleFilter{
			Query:  c.Query("q"),
			Status: c.Query("status"),
			Type:   c.Query("type"),
			Limit:  intQuery(c, "limit"),
			Offset: intQuery(c, "offset"),
		}
		result, err := articles.List(filter)
		if err != nil {
			log.Error("article listing failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/articles/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		article, err := articles.Get(id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, article)
	})

	router.POST("/articles", func(c *gin.Context) {
		var input services.ArticleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		article, err := articles.Create(input)
		if err != nil {
			log.Error("article creation failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, article)
	})

	router.PATCH("/articles/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.ArticleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		article, err := articles.Update(id, input)
		if err != nil {
			log.Error("article update failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, article)
	})

	router.DELETE("/articles/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := articles.Remove(id); err != nil {
			log.Error("article removal failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupSpotifyRoutes(router *gin.Engine, spotify *services.SpotifyService, log *zap.Logger) {
	router.GET("/spotify", func(c *gin.Context) {
		filter := services.SpotifyFilter{
			Query:       c.Query("q"),
			Status:      c.Query("status"),
			UpdatedFrom: parseTimeQuery(c, "updated_from"),
			UpdatedTo:   parseTimeQuery(c, "updated_to"),
			Limit:       intQuery(c, "limit"),
			Offset:      intQuery(c, "offset"),
		}
		if types := c.Query("types"); types != "" {
			filter.Types = strings.Split(types, ",")
		}
		result, err := spotify.List(filter)
		if err != nil {
			log.Error("spotify listing failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/spotify/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		playlist, err := spotify.Get(id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, playlist)
	})

	router.POST("/spotify", func(c *gin.Context) {
		var input services.SpotifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		playlist, err := spotify.Create(input)
		if err != nil {
			log.Error("spotify creation failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, playlist)
	})

	router.PATCH("/spotify/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.SpotifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		playlist, err := spotify.Update(id, input)
		if err != nil {
			log.Error("spotify update failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, playlist)
	})

	router.DELETE("/spotify/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := spotify.Remove(id); err != nil {
			log.Error("spotify removal failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupListRoutes(router *gin.Engine, lists *services.ListsService, log *zap.Logger) {
	router.GET("/lists", func(c *gin.Context) {
		filter := services.ListFilter{
			Query:  c.Query("q"),
			Type:   c.Query("type"),
			Status: c.Query("status"),
			Limit:  intQuery(c, "limit"),
			Offset: intQuery(c, "offset"),
		}
		result, err := lists.List(filter)
		if err != nil {
			log.Error("list listing failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/lists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		list, err := lists.Get(id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	router.POST("/lists", func(c *gin.Context) {
		var input services.ListInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		list, err := lists.Create(input)
		if err != nil {
			log.Error("list creation failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, list)
	})

	router.PATCH("/lists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.ListInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		list, err := lists.Update(id, input)
		if err != nil {
			log.Error("list update failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	router.DELETE("/lists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := lists.Remove(id); err != nil {
			log.Error("list removal failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})

	router.POST("/lists/:id/asignations", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.AsignationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		asignation, err := lists.AddAsignation(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, asignation)
	})

	router.PATCH("/asignations/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.AsignationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		asignation, err := lists.UpdateAsignation(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, asignation)
	})

	router.DELETE("/asignations/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := lists.RemoveAsignation(id); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})

	router.POST("/lists/:id/links", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.ListLinkInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		link, err := lists.AddLink(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, link)
	})

	router.DELETE("/list-links/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := lists.RemoveLink(id); err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupReunionRoutes(router *gin.Engine, reunions *services.ReunionsService, log *zap.Logger) {
	router.GET("/reunions", func(c *gin.Context) {
		result, err := reunions.List()
		if err != nil {
			log.Error("reunion listing failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/reunions/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		reunion, err := reunions.Get(id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, reunion)
	})

	router.POST("/reunions", func(c *gin.Context) {
		var input services.ReunionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		reunion, err := reunions.Create(input)
		if err != nil {
			log.Error("reunion creation failed", zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, reunion)
	})

	router.PATCH("/reunions/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.ReunionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		reunion, err := reunions.Update(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, reunion)
	})

	router.DELETE("/reunions/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := reunions.Remove(id); err != nil {
			log.Error("reunion removal failed", zap.Uint("id", id), zap.Error(err))
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})

	router.POST("/reunions/:id/points", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.PointInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		point, err := reunions.AddPoint(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, point)
	})

	router.PATCH("/points/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var input services.PointInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		point, err := reunions.UpdatePoint(id, input)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, point)
	})
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

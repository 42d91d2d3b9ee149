package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"redaccion/models"
	"redaccion/services"
)

// The catalog routes are plain gorm CRUD; no workflow logic lives here.

func setupUserRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/users", func(c *gin.Context) {
		var users []models.User
		query := db.Order("name asc")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}
		if err := query.Find(&users).Error; err != nil {
			log.Error("user listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, users)
	})

	router.GET("/users/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, user)
	})

	router.POST("/users", func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			log.Error("user creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, user)
	})

	router.PATCH("/users/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		var patch struct {
			Name  *string `json:"name"`
			Email *string `json:"email"`
			Role  *string `json:"role"`
		}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Role != nil {
			user.Role = *patch.Role
		}
		if err := db.Save(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	})

	router.DELETE("/users/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.User{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupArtistRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/artists", func(c *gin.Context) {
		query := db.Model(&models.Artist{}).Order("name asc")
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			query = query.Where("name LIKE ?", "%"+q+"%")
		}
		if country := c.Query("country"); country != "" {
			query = query.Where("country = ?", country)
		}
		if limit := intQuery(c, "limit"); limit > 0 {
			query = query.Limit(limit)
		}
		if offset := intQuery(c, "offset"); offset > 0 {
			query = query.Offset(offset)
		}
		var artists []models.Artist
		if err := query.Find(&artists).Error; err != nil {
			log.Error("artist listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, artists)
	})

	router.GET("/artists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var artist models.Artist
		if err := db.Preload("Discs").First(&artist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, artist)
	})

	router.POST("/artists", func(c *gin.Context) {
		var artist models.Artist
		if err := c.ShouldBindJSON(&artist); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := db.Create(&artist).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "artist already exists"})
				return
			}
			log.Error("artist creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create artist"})
			return
		}
		c.JSON(http.StatusCreated, artist)
	})

	router.PATCH("/artists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var artist models.Artist
		if err := db.First(&artist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "artist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		var patch struct {
			Name        *string `json:"name"`
			Country     *string `json:"country"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if patch.Name != nil {
			artist.Name = *patch.Name
		}
		if patch.Country != nil {
			artist.Country = *patch.Country
		}
		if patch.Description != nil {
			artist.Description = *patch.Description
		}
		if err := db.Save(&artist).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "artist already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update artist"})
			return
		}
		c.JSON(http.StatusOK, artist)
	})

	router.DELETE("/artists/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.Artist{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete artist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupDiscRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/discs", func(c *gin.Context) {
		query := db.Model(&models.Disc{}).Preload("Artist").Order("release_date desc")
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			query = query.Where("name LIKE ?", "%"+q+"%")
		}
		if artistID := intQuery(c, "artist_id"); artistID > 0 {
			query = query.Where("artist_id = ?", artistID)
		}
		if genre := c.Query("genre"); genre != "" {
			query = query.Where("genre = ?", genre)
		}
		if c.Query("needs_link") == "true" {
			query = query.Where("link = '' OR link IS NULL OR link = ?", models.DiscLinkNotFound)
		}
		if from := parseTimeQuery(c, "released_from"); from != nil {
			query = query.Where("release_date >= ?", *from)
		}
		if to := parseTimeQuery(c, "released_to"); to != nil {
			query = query.Where("release_date <= ?", *to)
		}
		if limit := intQuery(c, "limit"); limit > 0 {
			query = query.Limit(limit)
		}
		if offset := intQuery(c, "offset"); offset > 0 {
			query = query.Offset(offset)
		}
		var discs []models.Disc
		if err := query.Find(&discs).Error; err != nil {
			log.Error("disc listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, discs)
	})

	router.GET("/discs/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var disc models.Disc
		if err := db.Preload("Artist").First(&disc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "disc not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, disc)
	})

	router.POST("/discs", func(c *gin.Context) {
		var disc models.Disc
		if err := c.ShouldBindJSON(&disc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if disc.ArtistID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "artist_id required"})
			return
		}
		if err := db.Create(&disc).Error; err != nil {
			log.Error("disc creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create disc"})
			return
		}
		c.JSON(http.StatusCreated, disc)
	})

	router.PATCH("/discs/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var disc models.Disc
		if err := db.First(&disc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "disc not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		var patch struct {
			Name        *string               `json:"name"`
			ArtistID    *uint                 `json:"artist_id"`
			Genre       *string               `json:"genre"`
			ReleaseDate services.NullableTime `json:"release_date"`
			Link        *string               `json:"link"`
			Image       *string               `json:"image"`
			Verified    *bool                 `json:"verified"`
		}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if patch.Name != nil {
			disc.Name = *patch.Name
		}
		if patch.ArtistID != nil {
			disc.ArtistID = *patch.ArtistID
		}
		if patch.Genre != nil {
			disc.Genre = *patch.Genre
		}
		if patch.ReleaseDate.Set {
			disc.ReleaseDate = patch.ReleaseDate.Value
		}
		if patch.Link != nil {
			disc.Link = *patch.Link
		}
		if patch.Image != nil {
			disc.Image = *patch.Image
		}
		if patch.Verified != nil {
			disc.Verified = *patch.Verified
		}
		if err := db.Save(&disc).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update disc"})
			return
		}
		c.JSON(http.StatusOK, disc)
	})

	router.DELETE("/discs/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.Disc{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete disc"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupRatingRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/ratings", func(c *gin.Context) {
		query := db.Model(&models.Rating{}).Preload("User").Preload("Disc")
		if userID := intQuery(c, "user_id"); userID > 0 {
			query = query.Where("user_id = ?", userID)
		}
		if discID := intQuery(c, "disc_id"); discID > 0 {
			query = query.Where("disc_id = ?", discID)
		}
		var ratings []models.Rating
		if err := query.Order("updated_at desc").Find(&ratings).Error; err != nil {
			log.Error("rating listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, ratings)
	})

	router.POST("/ratings", func(c *gin.Context) {
		var rating models.Rating
		if err := c.ShouldBindJSON(&rating); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if rating.UserID == 0 || rating.DiscID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and disc_id required"})
			return
		}
		if err := db.Create(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user already rated this disc"})
				return
			}
			log.Error("rating creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rating"})
			return
		}
		c.JSON(http.StatusCreated, rating)
	})

	router.PATCH("/ratings/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		var rating models.Rating
		if err := db.First(&rating, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		var patch struct {
			Score   *float64 `json:"score"`
			Comment *string  `json:"comment"`
		}
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if patch.Score != nil {
			rating.Score = *patch.Score
		}
		if patch.Comment != nil {
			rating.Comment = *patch.Comment
		}
		if err := db.Save(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update rating"})
			return
		}
		c.JSON(http.StatusOK, rating)
	})

	router.DELETE("/ratings/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.Rating{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rating"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupFavoriteRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/favorites", func(c *gin.Context) {
		query := db.Model(&models.Favorite{}).Preload("User").Preload("Disc")
		if userID := intQuery(c, "user_id"); userID > 0 {
			query = query.Where("user_id = ?", userID)
		}
		var favorites []models.Favorite
		if err := query.Order("created_at desc").Find(&favorites).Error; err != nil {
			log.Error("favorite listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, favorites)
	})

	router.POST("/favorites", func(c *gin.Context) {
		var favorite models.Favorite
		if err := c.ShouldBindJSON(&favorite); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if favorite.UserID == 0 || favorite.DiscID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and disc_id required"})
			return
		}
		if err := db.Create(&favorite).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "disc already in favorites"})
				return
			}
			log.Error("favorite creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create favorite"})
			return
		}
		c.JSON(http.StatusCreated, favorite)
	})

	router.DELETE("/favorites/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.Favorite{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

func setupVersionRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	router.GET("/versions", func(c *gin.Context) {
		var versions []models.Version
		if err := db.Order("date desc").Find(&versions).Error; err != nil {
			log.Error("version listing failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, versions)
	})

	router.POST("/versions", func(c *gin.Context) {
		var version models.Version
		if err := c.ShouldBindJSON(&version); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := db.Create(&version).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "version already exists"})
				return
			}
			log.Error("version creation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create version"})
			return
		}
		c.JSON(http.StatusCreated, version)
	})

	router.DELETE("/versions/:id", func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		if err := db.Delete(&models.Version{}, id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete version"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	})
}

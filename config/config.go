package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every configuration parameter read from environment variables.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Spotify Web API credentials for the disc link search (client-credentials flow).
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
	SpotifyTokenURL     string `envconfig:"SPOTIFY_TOKEN_URL" default:"https://accounts.spotify.com/api/token"`
	SpotifyAPIBaseURL   string `envconfig:"SPOTIFY_API_BASE_URL" default:"https://api.spotify.com/v1"`

	// Bandcamp search page, used as fallback when the Spotify API finds nothing.
	BandcampBaseURL string `envconfig:"BANDCAMP_BASE_URL" default:"https://bandcamp.com"`

	// Cron expressions for the scheduler. The weekly expression fires daily on
	// purpose; the Monday gate lives in the service.
	CronDailySchedule  string `envconfig:"CRON_DAILY_SCHEDULE" default:"0 6 * * *"`
	CronWeeklySchedule string `envconfig:"CRON_WEEKLY_SCHEDULE" default:"0 7 * * *"`

	CoverS3Key    string `envconfig:"COVER_S3_KEY"`
	CoverS3Secret string `envconfig:"COVER_S3_SECRET"`
	CoverS3URL    string `envconfig:"COVER_S3_URL"`
	CoverS3Region string `envconfig:"COVER_S3_REGION"`
	CoverS3Bucket string `envconfig:"COVER_S3_BUCKET"`
}

// DSN returns the data source name for the PostgreSQL connection.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// CoverStorageEnabled reports whether cover-art mirroring to S3 is configured.
func (c *Config) CoverStorageEnabled() bool {
	return c.CoverS3URL != "" && c.CoverS3Bucket != ""
}

// Load reads the configuration from the environment, honouring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings for the route generator.
type Config struct {
	Port           string        `mapstructure:"PORT"`
	GoogleAPIKey   string        `mapstructure:"GOOGLE_API_KEY"`
	GoogleBaseURL  string        `mapstructure:"GOOGLE_BASE_URL"`
	IntervalMeters float64       `mapstructure:"INTERVAL_METERS"`
	CacheTTL       time.Duration `mapstructure:"CACHE_TTL"`
}

// LoadConfig reads configuration from .env.<APP_ENV> and the process
// environment; environment variables take precedence over the file.
func LoadConfig() (c Config, err error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	viper.SetDefault("PORT", ":8080")
	viper.SetDefault("GOOGLE_BASE_URL", "https://maps.googleapis.com")
	viper.SetDefault("INTERVAL_METERS", 10.0)
	viper.SetDefault("CACHE_TTL", 5*time.Minute)

	viper.SetConfigName(fmt.Sprintf(".env.%s", env))
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Continue even if file is not found
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = viper.Unmarshal(&c)
	return
}

// Validate checks that settings required at boot are present and sane.
func (c Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return errors.New("GOOGLE_API_KEY is required")
	}
	if c.IntervalMeters <= 0 {
		return errors.New("INTERVAL_METERS must be positive")
	}
	return nil
}

// Package config holds runtime settings for the ByteTogether client.
//
// Values come from the environment (the deployment's source of truth for
// backend coordinates), with a small command-line overlay for the endpoint
// and local database path. Environment parsing and the required-field policy
// are handled by caarlos0/env.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config identifies the backend project and the collections the client
// touches. The IDs are opaque strings; nothing beyond presence is validated.
type Config struct {
	EndpointURL string `env:"BYTETOGETHER_ENDPOINT,required,notEmpty"`
	ProjectID   string `env:"BYTETOGETHER_PROJECT_ID,required,notEmpty"`
	DatabaseID  string `env:"BYTETOGETHER_DATABASE_ID,required,notEmpty"`

	UsernamesCollectionID string `env:"BYTETOGETHER_COLLECTION_USERNAMES,required,notEmpty"`
	ProjectsCollectionID  string `env:"BYTETOGETHER_COLLECTION_PROJECTS,required,notEmpty"`
	FilesCollectionID     string `env:"BYTETOGETHER_COLLECTION_FILES,required,notEmpty"`

	// Application routes the provider embeds into recovery/verification
	// emails.
	ResetURL  string `env:"BYTETOGETHER_RESET_URL" envDefault:"https://bytetogether.app/reset-password"`
	VerifyURL string `env:"BYTETOGETHER_VERIFY_URL" envDefault:"https://bytetogether.app/verify-email"`

	LocalDBPath    string        `env:"BYTETOGETHER_LOCAL_DB" envDefault:"bytetogether.db"`
	RequestTimeout time.Duration `env:"BYTETOGETHER_REQUEST_TIMEOUT" envDefault:"15s"`
}

// LoadConfig reads the environment and then overlays command-line flags.
// Missing required variables are a startup error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	parseFlags(cfg)
	return cfg, nil
}

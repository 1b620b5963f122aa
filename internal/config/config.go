package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// S3Config holds the settings for the optional bucket-backed avatar store.
// When Bucket is empty, avatars go to the local uploads directory instead.
type S3Config struct {
	Bucket        string `yaml:"bucket" envconfig:"S3_BUCKET"`
	Region        string `yaml:"region" envconfig:"S3_REGION"`
	Endpoint      string `yaml:"endpoint" envconfig:"S3_ENDPOINT"`
	AccessKey     string `yaml:"access_key" envconfig:"S3_ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" envconfig:"S3_SECRET_KEY"`
	PublicBaseURL string `yaml:"public_base_url" envconfig:"S3_PUBLIC_BASE_URL"`
}

// Config represents the application configuration
type Config struct {
	Addr            string   `yaml:"addr" envconfig:"ADDR"`
	DatabasePath    string   `yaml:"database_path" envconfig:"DATABASE_PATH"`
	JWTSecret       string   `yaml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTLMinutes int      `yaml:"token_ttl_minutes" envconfig:"TOKEN_TTL_MINUTES"`
	UploadsDir      string   `yaml:"uploads_dir" envconfig:"UPLOADS_DIR"`
	S3              S3Config `yaml:"s3"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Addr:            ":5001",
		DatabasePath:    "tablero.db",
		JWTSecret:       "change-me",
		TokenTTLMinutes: 24 * 60,
		UploadsDir:      "uploads",
	}
}

// Load builds the configuration in three layers: defaults, then the YAML
// file at path (skipped when path is empty or missing), then TABLERO_*
// environment variables.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file falls through to defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("TABLERO", config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return config, nil
}

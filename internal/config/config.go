// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MinSessionSecretLength is the minimum required length for the session
// secret. AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"INFLU_DB_PATH" envDefault:"./data/influencons.db"`
	SessionSecret string `env:"INFLU_SESSION_SECRET,required"`
	ServerHost    string `env:"INFLU_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"INFLU_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"INFLU_ENV" envDefault:"development"`
	LogLevel      string `env:"INFLU_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"INFLU_UPLOADS_DIR" envDefault:"./static/uploads"`

	// Admin bootstrap credentials, used by the idempotent seed step.
	AdminEmail    string `env:"INFLU_ADMIN_EMAIL" envDefault:"admin@influencons.com"`
	AdminPassword string `env:"INFLU_ADMIN_PASSWORD" envDefault:"changeme123"`

	// MaxUploadSize is the upload size ceiling in bytes (default 16 MiB).
	MaxUploadSize int64 `env:"INFLU_MAX_UPLOAD_SIZE" envDefault:"16777216"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("INFLU_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("INFLU_MAX_UPLOAD_SIZE must be positive, got %d", cfg.MaxUploadSize)
	}

	return cfg, nil
}

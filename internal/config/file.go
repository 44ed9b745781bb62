package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the subset of Config that may be set from a YAML file.
// Environment variables take precedence only for values the file leaves unset,
// because the file is applied as an overlay on top of the env-derived config.
type fileConfig struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"server"`
	Database struct {
		URL            string `yaml:"url"`
		MaxConnections int    `yaml:"max_connections"`
		MaxIdle        int    `yaml:"max_idle_connections"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret      string `yaml:"jwt_secret"`
		JWTExpiryHours int    `yaml:"jwt_expiry_hours"`
		JWTIssuer      string `yaml:"jwt_issuer"`
	} `yaml:"auth"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Environment string `yaml:"environment"`
}

// ApplyFile overlays values from a YAML config file onto cfg.
// Unset file values leave the existing config untouched.
func ApplyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Server.Host != "" {
		cfg.Server.Host = fc.Server.Host
	}
	if fc.Server.Port != 0 {
		cfg.Server.Port = fc.Server.Port
	}
	if fc.Server.BaseURL != "" {
		cfg.Server.BaseURL = fc.Server.BaseURL
	}
	if fc.Database.URL != "" {
		cfg.Database.URL = fc.Database.URL
	}
	if fc.Database.MaxConnections != 0 {
		cfg.Database.MaxConnections = fc.Database.MaxConnections
	}
	if fc.Database.MaxIdle != 0 {
		cfg.Database.MaxIdle = fc.Database.MaxIdle
	}
	if fc.Auth.JWTSecret != "" {
		cfg.Auth.JWTSecret = fc.Auth.JWTSecret
	}
	if fc.Auth.JWTExpiryHours != 0 {
		cfg.Auth.JWTExpiry = time.Duration(fc.Auth.JWTExpiryHours) * time.Hour
	}
	if fc.Auth.JWTIssuer != "" {
		cfg.Auth.JWTIssuer = fc.Auth.JWTIssuer
	}
	if fc.Logging.Level != "" {
		cfg.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.Format != "" {
		cfg.Logging.Format = fc.Logging.Format
	}
	if len(fc.CORS.AllowedOrigins) > 0 {
		cfg.CORS.AllowedOrigins = fc.CORS.AllowedOrigins
	}
	if fc.Environment != "" {
		cfg.Environment = fc.Environment
		cfg.CORS.AllowAllOrigins = fc.Environment == "development" || fc.Environment == "test"
	}
	return nil
}

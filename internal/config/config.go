package config

import (
	"errors"
	"os"
	"strings"
)

// Config is loaded once at startup and injected into constructors.
// Nothing mutates it afterwards.
type Config struct {
	Database    Database
	JWTSecret   string
	Port        string
	CORSOrigins []string
}

type Database struct {
	URL      string // takes precedence when set
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func Load() (*Config, error) {
	cfg := &Config{
		Database: Database{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Port:      os.Getenv("PORT"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = defaultOrigins
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port             string
	MongoDBURI       string
	MongoDBPassword  string
	JWTSecret        string
	SendgridAPIKey   string
	SendgridFromMail string
	FrontendURL      string
	Environment      string
	LogLevel         string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBPassword:  os.Getenv("MONGODB_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SendgridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		SendgridFromMail: os.Getenv("SENDGRID_FROM_EMAIL"),
		FrontendURL:      getEnvWithDefault("FRONTEND_URL", "http://localhost:3000"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

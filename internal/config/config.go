package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables.
type Config struct {
	App       AppConfig
	CMS       CMSConfig
	Instagram InstagramConfig
	Redis     RedisConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// CMSConfig configures the headless CMS client.
type CMSConfig struct {
	BaseURL      string        // e.g. http://localhost:1337
	APIToken     string        // optional bearer token
	DebugLogging bool          // verbose request/response logging
	Timeout      time.Duration // per-request timeout
}

// InstagramConfig configures the social feed proxy.
type InstagramConfig struct {
	AccessToken string        // required for the proxy endpoint to function
	APIURL      string        // upstream Graph API base URL
	FeedLimit   int           // number of media items requested upstream
	CacheTTL    time.Duration // proxy cache slot lifetime
}

// RedisConfig is optional: when Host is empty the in-memory cache
// backend is used instead.
type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AdminConfig guards the mutating CRUD endpoints. When JWTSecret is
// empty the endpoints stay open (the original site shipped without
// backend auth).
type AdminConfig struct {
	JWTSecret    string
	Email        string
	PasswordHash string // bcrypt hash of the admin password
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "School Site API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		CMS: CMSConfig{
			BaseURL:      getEnv("CMS_BASE_URL", "http://localhost:1337"),
			APIToken:     getEnv("CMS_API_TOKEN", ""),
			DebugLogging: getEnvBool("DEBUG_CMS_LOGGING", false),
			Timeout:      getEnvDuration("CMS_TIMEOUT", 12*time.Second),
		},
		Instagram: InstagramConfig{
			AccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
			APIURL:      getEnv("INSTAGRAM_API_URL", "https://graph.instagram.com"),
			FeedLimit:   getEnvInt("INSTAGRAM_FEED_LIMIT", 12),
			CacheTTL:    getEnvDuration("INSTAGRAM_CACHE_TTL", 10*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
			Email:        getEnv("ADMIN_EMAIL", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config for consistency.
func (c *Config) Validate() error {
	if c.CMS.BaseURL == "" {
		return fmt.Errorf("CMS_BASE_URL must not be empty")
	}

	if c.Admin.JWTSecret != "" && (c.Admin.Email == "" || c.Admin.PasswordHash == "") {
		return fmt.Errorf("ADMIN_JWT_SECRET is set but ADMIN_EMAIL or ADMIN_PASSWORD_HASH is missing")
	}

	if c.App.Environment == "production" {
		if c.Admin.JWTSecret == "" {
			fmt.Println("WARNING: ADMIN_JWT_SECRET not set - mutating endpoints are unauthenticated")
		}
		if c.Instagram.AccessToken == "" {
			fmt.Println("WARNING: INSTAGRAM_ACCESS_TOKEN not set - /api/instagram will return 500")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port        string
	DBDriver    string
	DBURL       string
	CORSOrigins []string

	// Auth0 tenant used to validate RS256 tokens. Takes precedence over JWTSecret.
	Auth0Domain   string
	Auth0Audience string

	// Shared secret for HS256 tokens minted by cmd/devtoken.
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	ClassCodesPath string
	PrettyLog      bool
}

var defaultOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Load reads .env (outside production) and then the process environment.
func Load() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		if err := godotenv.Load(); err != nil {
			log.Warn().Err(err).Msg(".env file not found, relying on environment variables")
		}
	}

	return &Config{
		Port:           getEnv("PORT", "6500"),
		DBDriver:       getEnv("DB_DRIVER", DriverPostgres),
		DBURL:          os.Getenv("DB_URL"),
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", defaultOrigins),
		Auth0Domain:    os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience:  os.Getenv("AUTH0_AUDIENCE"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      getEnv("JWT_ISSUER", "fliply"),
		JWTAudience:    getEnv("JWT_AUDIENCE", "fliply-api"),
		ClassCodesPath: os.Getenv("CLASS_CODES_PATH"),
		PrettyLog:      os.Getenv("PRETTY_LOG") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

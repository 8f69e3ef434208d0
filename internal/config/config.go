// internal/config/config.go
//
// Process configuration read from the environment.
// A `.env` file in the working directory is loaded first (development);
// real environment variables take precedence over it.

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const devSecret = "dev_secret_change_me"

// Config holds every tunable the server reads at startup.
type Config struct {
	Port           string // PORT
	LogLevel       string // LOG_LEVEL (zerolog level name)
	WordsFile      string // WORDS_FILE; empty means the embedded list
	DBPath         string // DB_PATH
	JWTSecret      string // JWT_SECRET
	JWTExpiresDays int    // JWT_EXPIRES_DAYS
	CookieName     string // COOKIE_NAME
	ClientOrigin   string // CLIENT_ORIGIN (CORS)
	Production     bool   // NODE_ENV == "production"
	DailySalt      string // DAILY_SALT
}

// Load reads .env (if present) and then the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	return Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		WordsFile:      os.Getenv("WORDS_FILE"),
		DBPath:         getEnv("DB_PATH", "./data/app.db"),
		JWTSecret:      getEnv("JWT_SECRET", devSecret),
		JWTExpiresDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "wordle_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("NODE_ENV") == "production",
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// InsecureSecret reports whether the JWT secret is the built-in dev value.
func (c Config) InsecureSecret() bool { return c.JWTSecret == devSecret }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

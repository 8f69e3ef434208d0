package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "WORDS_FILE", "DB_PATH", "JWT_SECRET",
		"JWT_EXPIRES_DAYS", "COOKIE_NAME", "CLIENT_ORIGIN", "NODE_ENV", "DAILY_SALT"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.WordsFile)
	assert.Equal(t, "./data/app.db", c.DBPath)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, "wordle_token", c.CookieName)
	assert.False(t, c.Production)
	assert.True(t, c.InsecureSecret())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("WORDS_FILE", "/tmp/words.txt")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_DAYS", "3")
	t.Setenv("NODE_ENV", "production")

	c := FromEnv()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "/tmp/words.txt", c.WordsFile)
	assert.Equal(t, 3, c.JWTExpiresDays)
	assert.True(t, c.Production)
	assert.False(t, c.InsecureSecret())
}

func TestFromEnvBadInt(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	assert.Equal(t, 14, FromEnv().JWTExpiresDays)
}

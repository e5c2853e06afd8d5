package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BOOKSTORE_SERVER_URL", "")
	t.Setenv("BOOKSTORE_DB_PATH", "")

	cfg := Load()

	assert.Equal(t, "http://localhost:8000/api", cfg.ServerURL)
	assert.Equal(t, "bookstore-client.db", cfg.DBPath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BOOKSTORE_SERVER_URL", "https://books.example.com/api")
	t.Setenv("BOOKSTORE_DB_PATH", "/tmp/custom.db")

	cfg := Load()

	assert.Equal(t, "https://books.example.com/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config содержит настройки клиента. Каждое поле имеет дефолт,
// поэтому клиент работает без какой-либо конфигурации вообще.
type Config struct {
	ServerURL string // базовый URL API, включая префикс /api
	DBPath    string // путь к локальной базе с токенами
}

const (
	defaultServerURL = "http://localhost:8000/api"
	defaultDBPath    = "bookstore-client.db"
)

// Load читает конфигурацию из переменных окружения.
// Файл .env в текущей директории подхватывается, если существует.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerURL: getenv("BOOKSTORE_SERVER_URL", defaultServerURL),
		DBPath:    getenv("BOOKSTORE_DB_PATH", defaultDBPath),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatabaseURL указывает на локальный файл hrms.db в рабочем каталоге
const DefaultDatabaseURL = "sqlite:///./hrms.db"

// Config содержит настройки приложения
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	URL             string
	AppName         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// LogConfig - настройки логгера
type LogConfig struct {
	Level slog.Level
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env в рабочем каталоге подхватывается, если он есть.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", DefaultDatabaseURL),
			AppName:         getEnv("DB_APP_NAME", "hrms-api"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Log: LogConfig{
			Level: parseLevel(getEnv("LOG_LEVEL", "info")),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hrms-api/internal/config"
	"github.com/hrms-api/internal/database"
)

// dbcheck поднимает пул так же, как это делает сервис при старте,
// берёт одну сессию и завершается. Ненулевой код выхода означает,
// что хранилище недоступно.
func main() {
	cfg := config.Load()

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.Level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Подключение к БД
	manager, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer manager.Close()

	err = manager.WithSession(ctx, func(s *database.Session) error {
		var one int
		if err := s.DB().Raw("SELECT 1").Scan(&one).Error; err != nil {
			return err
		}
		logger.Info("session check passed",
			slog.Uint64("session_id", s.ID()),
			slog.String("target", manager.Target().String()),
			slog.Bool("file_store", manager.Target().IsFile()),
		)
		return nil
	})
	if err != nil {
		logger.Error("session check failed", slog.Any("error", err))
		manager.Close()
		os.Exit(1)
	}
}

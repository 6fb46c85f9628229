package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hrms-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Manager владеет пулом соединений и выдаёт сессии.
// Создаётся один раз при старте и передаётся явно.
type Manager struct {
	target Target
	sqlDB  *sql.DB
	db     *gorm.DB
	logger *slog.Logger

	nextSessionID atomic.Uint64
}

// Open разбирает строку подключения, строит пул и проверяет доступность
// хранилища. Ошибка здесь фатальна для процесса: повторов нет.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Manager, error) {
	target, err := ParseTarget(cfg.URL)
	if err != nil {
		return nil, err
	}

	var (
		sqlDB     *sql.DB
		dialector gorm.Dialector
	)

	switch target.Kind {
	case KindSQLite:
		sqlDB, err = openSQLite(target)
		if err == nil {
			dialector = &sqlite.Dialector{DriverName: sqliteDriverName, Conn: sqlDB}
		}
	case KindPostgres:
		sqlDB, err = openPostgres(target, cfg.AppName)
		if err == nil {
			dialector = postgres.New(postgres.Config{Conn: sqlDB})
		}
	default:
		err = fmt.Errorf("%w: kind %q", ErrUnsupportedURL, target.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", target, err)
	}

	configurePool(sqlDB, cfg)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach %s: %w", target, err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// границы транзакций задаёт вызывающий код через Session.Transaction
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormLogger(logger),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	logger.Info("database connected",
		slog.String("target", target.String()),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return &Manager{
		target: target,
		sqlDB:  sqlDB,
		db:     db,
		logger: logger,
	}, nil
}

func configurePool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// Target возвращает разобранную цель подключения
func (m *Manager) Target() Target {
	return m.target
}

// DB возвращает корневой gorm.DB поверх общего пула.
// Для единиц работы используйте NewSession или WithSession.
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Stats возвращает статистику пула
func (m *Manager) Stats() sql.DBStats {
	return m.sqlDB.Stats()
}

// Close закрывает пул
func (m *Manager) Close() error {
	return m.sqlDB.Close()
}

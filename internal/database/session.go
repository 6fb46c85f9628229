package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// ErrSessionClosed возвращается при обращении к закрытой сессии
var ErrSessionClosed = errors.New("session is closed")

// maxCheckoutAttempts ограничивает число замен мёртвых соединений при выдаче сессии
const maxCheckoutAttempts = 3

// SessionProvider выдаёт сессию на одну единицу работы
type SessionProvider interface {
	WithSession(ctx context.Context, fn func(*Session) error) error
}

// Session - одна единица работы поверх выделенного соединения пула.
// Сессию нельзя использовать из нескольких горутин одновременно.
type Session struct {
	id     uint64
	conn   *sql.Conn
	db     *gorm.DB
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewSession берёт соединение из пула, проверяет его пингом и
// привязывает к нему новый gorm.DB. Сессию нужно закрыть вызовом Close.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	conn, err := m.checkout(ctx)
	if err != nil {
		return nil, err
	}

	db := m.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	db.Statement.ConnPool = conn

	s := &Session{
		id:     m.nextSessionID.Add(1),
		conn:   conn,
		db:     db,
		logger: m.logger,
	}
	s.logger.Debug("session opened", slog.Uint64("session_id", s.id))
	return s, nil
}

// checkout возвращает живое соединение. Соединение, не ответившее на пинг,
// помечается как сломанное и выбрасывается из пула.
func (m *Manager) checkout(ctx context.Context) (*sql.Conn, error) {
	var lastErr error
	for range maxCheckoutAttempts {
		conn, err := m.sqlDB.Conn(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire connection: %w", err)
		}

		if lastErr = conn.PingContext(ctx); lastErr == nil {
			return conn, nil
		}

		m.logger.Warn("discarding dead connection", slog.Any("error", lastErr))
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
		_ = conn.Close()

		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("failed to acquire live connection: %w", lastErr)
}

// WithSession открывает сессию, передаёт её в fn и закрывает при любом
// выходе из fn, включая ошибку и панику. Ошибка закрытия добавляется к
// ошибке fn.
func (m *Manager) WithSession(ctx context.Context, fn func(*Session) error) (err error) {
	s, err := m.NewSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, s.Close())
	}()

	return fn(s)
}

// ID - порядковый номер сессии в пределах процесса
func (s *Session) ID() uint64 {
	return s.id
}

// DB возвращает gorm.DB, привязанный к соединению сессии.
// После Close все запросы завершаются ошибкой ErrSessionClosed.
func (s *Session) DB() *gorm.DB {
	if s.Closed() {
		db := s.db.Session(&gorm.Session{NewDB: true})
		_ = db.AddError(ErrSessionClosed)
		return db
	}
	return s.db
}

// Transaction выполняет fn в транзакции на соединении сессии.
// Коммит происходит, только если fn вернула nil.
func (s *Session) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.Closed() {
		return ErrSessionClosed
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// Closed сообщает, закрыта ли сессия
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close возвращает соединение в пул. Повторный вызов возвращает ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.closed = true
	s.mu.Unlock()

	s.logger.Debug("session closed", slog.Uint64("session_id", s.id))
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to release connection: %w", err)
	}
	return nil
}

package database

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedURL возвращается для строки подключения, которую не удалось разобрать
var ErrUnsupportedURL = errors.New("unsupported database url")

// Kind - семейство драйвера хранилища
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

const memoryPath = ":memory:"

// Target описывает разобранную строку подключения
type Target struct {
	Kind Kind
	// Path задан только для SQLite
	Path string
	// DSN передаётся драйверу как есть
	DSN string
}

// IsFile сообщает, указывает ли цель на локальный файл SQLite
func (t Target) IsFile() bool {
	return t.Kind == KindSQLite && t.Path != memoryPath
}

// String возвращает цель без пароля, пригодную для логов
func (t Target) String() string {
	if t.Kind == KindSQLite {
		return "sqlite:" + t.Path
	}
	return string(t.Kind) + "://" + redact(t.DSN)
}

// ParseTarget разбирает строку подключения в формате URL.
//
// Поддерживаются sqlite:///relative.db, sqlite:////abs/path.db,
// sqlite:// (в памяти) и postgres[ql][+driver]://...
func ParseTarget(rawURL string) (Target, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(rawURL), "://")
	if !ok || scheme == "" {
		return Target{}, fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	// postgresql+psycopg://, sqlite+pysqlite:// и подобные
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "sqlite", "sqlite3":
		return parseSQLite(rest)
	case "postgres", "postgresql":
		if rest == "" {
			return Target{}, fmt.Errorf("%w: empty postgres location", ErrUnsupportedURL)
		}
		return Target{Kind: KindPostgres, DSN: "postgres://" + rest}, nil
	default:
		return Target{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, scheme)
	}
}

func parseSQLite(rest string) (Target, error) {
	rest, _, _ = strings.Cut(rest, "?")

	var path string
	switch {
	case rest == "", rest == "/", rest == "/"+memoryPath:
		path = memoryPath
	case strings.HasPrefix(rest, "/"):
		// sqlite:///./hrms.db -> ./hrms.db, sqlite:////var/hrms.db -> /var/hrms.db
		path = rest[1:]
	default:
		// sqlite://host/... не имеет смысла для файловой базы
		return Target{}, fmt.Errorf("%w: sqlite url must not contain a host", ErrUnsupportedURL)
	}

	return Target{
		Kind: KindSQLite,
		Path: path,
		DSN:  sqliteDSN(path),
	}, nil
}

// sqliteDSN отключает привязку соединения к одному потоку (_mutex=full),
// чтобы пул можно было разделять между горутинами. Транзакция берёт
// блокировку на запись в BEGIN (_txlock=immediate) и ждёт её не дольше
// _busy_timeout миллисекунд.
func sqliteDSN(path string) string {
	const params = "_mutex=full&_txlock=immediate&_busy_timeout=5000"
	if path == memoryPath {
		return "file::memory:?cache=shared&" + params
	}
	return "file:" + path + "?" + params
}

func redact(dsn string) string {
	rest := strings.TrimPrefix(dsn, "postgres://")
	userinfo, host, ok := strings.Cut(rest, "@")
	if !ok {
		return rest
	}
	user, _, hasPassword := strings.Cut(userinfo, ":")
	if hasPassword {
		return user + ":***@" + host
	}
	return userinfo + "@" + host
}

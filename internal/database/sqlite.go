package database

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/mattn/go-sqlite3"
)

// sqliteDriverName - драйвер go-sqlite3 с хуком на каждое новое соединение
const sqliteDriverName = "sqlite3_hrms"

var registerSQLite sync.Once

// ConnectStatements возвращает команды, выполняемые на каждом новом
// физическом соединении. Для не-файловых хранилищ список пуст.
func ConnectStatements(kind Kind) []string {
	if kind != KindSQLite {
		return nil
	}
	return []string{"PRAGMA foreign_keys = ON"}
}

func sqliteConnectHook(conn *sqlite3.SQLiteConn) error {
	for _, stmt := range ConnectStatements(KindSQLite) {
		if _, err := conn.Exec(stmt, nil); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func openSQLite(target Target) (*sql.DB, error) {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: sqliteConnectHook,
		})
	})

	return sql.Open(sqliteDriverName, target.DSN)
}

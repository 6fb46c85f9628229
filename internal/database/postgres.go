package database

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// openPostgres строит пул поверх pgx. Некорректная строка подключения
// отклоняется сразу, без обращения к серверу.
func openPostgres(target Target, appName string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(target.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}

	if appName != "" {
		cfg.RuntimeParams["application_name"] = appName
	}

	return stdlib.OpenDB(*cfg), nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrUnknownType = errors.New("unknown database type")

// Open connects to the configured database and verifies the connection.
// For sqlite the URL may be a bare file path.
func Open(ctx context.Context, dbType, url string) (*sql.DB, error) {
	var (
		conn *sql.DB
		err  error
	)

	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		conn, err = sql.Open("sqlite", SQLiteDSN(url))
		if err == nil {
			// sqlite allows a single writer
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbType, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", dbType, err)
	}

	return conn, nil
}

// SQLiteDSN turns a file path into a modernc DSN with a busy timeout and
// foreign keys enabled. DSNs already starting with "file:" pass through.
func SQLiteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
}

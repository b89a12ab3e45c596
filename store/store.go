// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/survey"
)

// Store implements the survey, crawl, archive and catalog stores over
// database/sql. Queries use $N placeholders, which both lib/pq and
// modernc sqlite accept.
type Store struct {
	db *sql.DB
}

var (
	_ survey.Store        = (*Store)(nil)
	_ survey.CrawlStore   = (*Store)(nil)
	_ survey.ArchiveStore = (*Store)(nil)
	_ catalog.Store       = (*Store)(nil)
)

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a unique or primary key
// constraint failure from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}

// placeholders returns "$start, $start+1, ..." for n arguments.
func placeholders(start, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}

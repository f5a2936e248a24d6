// Copyright 2026 The Nasapay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/lopezator/migrator"
)

// New establishes the sqlite connection and runs pending migrations.
func New(ctx context.Context, logger log.Logger, path string) (*sql.DB, error) {
	path = sqlitePath(path)
	logger.Log("database", fmt.Sprintf("opening sqlite at %s", path))
	return sqliteConnection(logger, path).Connect(ctx)
}

func sqlitePath(path string) string {
	if path == "" || strings.Contains(path, "..") {
		// set default if empty or trying to escape
		// don't filepath.ABS to avoid full-fs reads
		path = "cobranca.db"
	}
	return path
}

func execsql(name, raw string) *migrator.MigrationNoTx {
	return &migrator.MigrationNoTx{
		Name: name,
		Func: func(db *sql.DB) error {
			_, err := db.Exec(raw)
			return err
		},
	}
}

// UniqueViolation returns true when the provided error matches a database error
// for duplicate entries (violating a unique table constraint).
func UniqueViolation(err error) bool {
	return SqliteUniqueViolation(err)
}

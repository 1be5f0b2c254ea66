// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose schema migrations of the device-local
// SQLite store and of the server PostgreSQL store.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed client/*.sql
var clientMigrations embed.FS

//go:embed server/*.sql
var serverMigrations embed.FS

// ErrNilDB is returned when a migration is attempted without a connection.
var ErrNilDB = errors.New("migration error: nil database")

// MigrateClient brings the device-local SQLite schema up to date.
func MigrateClient(db *sql.DB) error {
	return migrate(db, clientMigrations, "client", "sqlite3")
}

// MigrateServer brings the server PostgreSQL schema up to date.
func MigrateServer(db *sql.DB) error {
	return migrate(db, serverMigrations, "server", "pgx")
}

func migrate(db *sql.DB, fsys embed.FS, dir, dialect string) error {
	if db == nil {
		return ErrNilDB
	}

	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", dir, err)
	}
	goose.SetBaseFS(sub)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// Z3 Radar - Vehicle Registration Tracking Dashboard
// Copyright 2026 TheOnly3aq
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TheOnly3aq/z3radar

// Package photos provides the read side of the photo catalog. Photos are
// created and edited out-of-band; this service only serves the active set,
// ordered for gallery display.
package photos

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/TheOnly3aq/z3radar/internal/config"
	"github.com/TheOnly3aq/z3radar/internal/logging"
	"github.com/TheOnly3aq/z3radar/internal/metrics"
	"github.com/TheOnly3aq/z3radar/internal/models"
)

// Store reads the photo catalog from DuckDB.
type Store struct {
	conn *sql.DB
}

// NewStore opens the photo catalog database and ensures its schema exists.
// An empty path is not valid here; the caller decides whether to run without
// a catalog at all.
func NewStore(cfg *config.DatabaseConfig) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments; the catalog needs no extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo database: %w", err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)

	store := &Store{conn: conn}
	if err := store.initialize(); err != nil {
		if cerr := conn.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close photo database after init error")
		}
		return nil, fmt.Errorf("failed to initialize photo schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Photo store ready")
	return store, nil
}

// initialize creates the photo table when absent. "order" is a reserved word
// in SQL and stays quoted everywhere.
func (s *Store) initialize() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS photos (
			id          VARCHAR PRIMARY KEY,
			title       VARCHAR NOT NULL,
			description VARCHAR,
			image_url   VARCHAR NOT NULL,
			"order"     INTEGER NOT NULL DEFAULT 0,
			active      BOOLEAN NOT NULL DEFAULT true,
			website     VARCHAR,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// ListActive returns the active photos in display order. A non-empty website
// narrows the set to that deployment's photos; callers are responsible for
// deciding which website values are meaningful.
func (s *Store) ListActive(ctx context.Context, website string) ([]models.Photo, error) {
	start := time.Now()
	defer func() {
		metrics.PhotoQueryDuration.Observe(time.Since(start).Seconds())
	}()

	query := `
		SELECT id, title, description, image_url, "order", active, website, created_at, updated_at
		FROM photos
		WHERE active = true`
	args := []any{}
	if website != "" {
		query += ` AND website = ?`
		args = append(args, website)
	}
	query += ` ORDER BY "order" ASC`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		metrics.PhotoQueryErrors.Inc()
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			logging.Warn().Err(cerr).Msg("Failed to close photo rows")
		}
	}()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.Order, &p.Active, &p.Website, &p.CreatedAt, &p.UpdatedAt); err != nil {
			metrics.PhotoQueryErrors.Inc()
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		metrics.PhotoQueryErrors.Inc()
		return nil, fmt.Errorf("failed to iterate photo rows: %w", err)
	}
	return photos, nil
}

// Insert adds a photo to the catalog. Exposed for seeding and tests; the
// HTTP surface has no write path.
func (s *Store) Insert(ctx context.Context, p models.Photo) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO photos (id, title, description, image_url, "order", active, website, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.ImageURL, p.Order, p.Active, p.Website, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert photo: %w", err)
	}
	return nil
}

// Ping verifies the catalog connection for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Package sqlitemigrate applies embedded SQL migrations to a SQLite
// database. Game stores embed their .sql files with go:embed and call
// ApplyMigrations at open time; each file runs at most once, tracked in a
// schema_migrations table keyed by file path.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const trackingTable = "schema_migrations"

const upMarker = "-- +migrate Up"
const downMarker = "-- +migrate Down"

// ApplyMigrations runs every pending .sql file under migrationRoot in
// lexical order. Files already recorded in the tracking table are skipped,
// so calling it on every open is safe.
func ApplyMigrations(sqlDB *sql.DB, migrationFS fs.FS, migrationRoot string) error {
	if sqlDB == nil {
		return fmt.Errorf("sqlitemigrate: sql db is required")
	}

	root := strings.TrimSpace(migrationRoot)
	if root == "" {
		root = "."
	}

	files, err := listMigrationFiles(migrationFS, root)
	if err != nil {
		return err
	}

	if err := ensureTrackingTable(sqlDB); err != nil {
		return err
	}

	for _, file := range files {
		if err := applyOne(sqlDB, migrationFS, root, file); err != nil {
			return err
		}
	}
	return nil
}

func listMigrationFiles(migrationFS fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("sqlitemigrate: read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func ensureTrackingTable(sqlDB *sql.DB) error {
	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, trackingTable)
	if _, err := sqlDB.Exec(createSQL); err != nil {
		return fmt.Errorf("sqlitemigrate: ensure tracking table: %w", err)
	}
	return nil
}

func applyOne(sqlDB *sql.DB, migrationFS fs.FS, root, file string) error {
	// The tracking key includes the root so two stores sharing one
	// database never collide on file names.
	key := file
	if root != "." {
		key = filepath.ToSlash(filepath.Join(root, file))
	}

	applied, err := isApplied(sqlDB, key)
	if err != nil {
		return fmt.Errorf("sqlitemigrate: check migration %s: %w", file, err)
	}
	if applied {
		return nil
	}

	content, err := fs.ReadFile(migrationFS, filepath.Join(root, file))
	if err != nil {
		return fmt.Errorf("sqlitemigrate: read migration %s: %w", file, err)
	}

	upSQL := upSection(string(content))
	if strings.TrimSpace(upSQL) == "" {
		return nil
	}

	tx, err := sqlDB.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("sqlitemigrate: begin migration %s: %w", file, err)
	}

	if _, err := tx.Exec(upSQL); err != nil {
		if !isAlreadyExists(err) {
			_ = tx.Rollback()
			return fmt.Errorf("sqlitemigrate: exec migration %s: %w", file, err)
		}
	}

	if _, err := tx.Exec(
		fmt.Sprintf("INSERT OR IGNORE INTO %s (name, applied_at) VALUES (?, ?)", trackingTable),
		key,
		time.Now().UTC().UnixMilli(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("sqlitemigrate: record migration %s: %w", file, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlitemigrate: commit migration %s: %w", file, err)
	}
	return nil
}

// upSection extracts the statements between the Up and Down markers. A file
// without markers runs whole.
func upSection(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	body := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(body, downMarker); downIdx != -1 {
		body = body[:downIdx]
	}
	return body
}

// isAlreadyExists reports whether the DDL error means the object is already
// in place, which counts as success for idempotent re-runs.
func isAlreadyExists(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}

func isApplied(sqlDB *sql.DB, name string) (bool, error) {
	var found int
	row := sqlDB.QueryRow("SELECT 1 FROM "+trackingTable+" WHERE name = ?", name)
	if err := row.Scan(&found); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

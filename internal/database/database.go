// Package database provides SQLite persistence for resolution telemetry and
// user-confirmed alias overrides
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"exercise-resolver/pkg/models"
	"exercise-resolver/pkg/textnorm"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Add connection parameters to help with concurrent access
	connString := dbPath
	if dbPath != ":memory:" {
		connString = dbPath + "?_busy_timeout=30000&_journal_mode=WAL&_synchronous=NORMAL"
	}

	conn, err := sql.Open("sqlite", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't handle concurrent writes well
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resolution_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input TEXT NOT NULL,
		matched_slug TEXT,
		method TEXT NOT NULL,
		score REAL NOT NULL,
		matched BOOLEAN NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_resolution_log_created_at ON resolution_log(created_at);
	CREATE INDEX IF NOT EXISTS idx_resolution_log_method ON resolution_log(method);

	CREATE TABLE IF NOT EXISTS alias_overrides (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		alias TEXT NOT NULL UNIQUE,
		exercise_slug TEXT NOT NULL,
		use_count INTEGER DEFAULT 1,
		last_used DATETIME NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_alias_overrides_use_count ON alias_overrides(use_count DESC);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// CreateResolutionRecord persists a single match decision
func (db *DB) CreateResolutionRecord(record *models.ResolutionRecord) error {
	query := `
	INSERT INTO resolution_log (
		input, matched_slug, method, score, matched, created_at
	) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		record.Input, record.MatchedSlug, record.Method,
		record.Score, record.Matched, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create resolution record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	record.ID = id
	return nil
}

// ListResolutionRecords retrieves resolution records with pagination, newest
// first
func (db *DB) ListResolutionRecords(limit, offset int) ([]*models.ResolutionRecord, error) {
	query := `
	SELECT id, input, matched_slug, method, score, matched, created_at
	FROM resolution_log
	ORDER BY created_at DESC, id DESC
	LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolution records: %w", err)
	}
	defer rows.Close()

	var records []*models.ResolutionRecord
	for rows.Next() {
		var record models.ResolutionRecord
		err := rows.Scan(
			&record.ID, &record.Input, &record.MatchedSlug,
			&record.Method, &record.Score, &record.Matched, &record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resolution record: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}

// GetResolutionStats returns per-method counts of logged resolutions
func (db *DB) GetResolutionStats() (map[string]int, error) {
	query := `
	SELECT method, COUNT(*) as count
	FROM resolution_log
	GROUP BY method
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get resolution stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var method string
		var count int
		if err := rows.Scan(&method, &count); err != nil {
			return nil, fmt.Errorf("failed to scan resolution stats: %w", err)
		}
		stats[method] = count
	}

	return stats, nil
}

// DeleteOldResolutionRecords removes log entries older than the given age
func (db *DB) DeleteOldResolutionRecords(olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)

	result, err := db.conn.Exec("DELETE FROM resolution_log WHERE created_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old resolution records: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		slog.Info("Deleted old resolution records", "count", rowsAffected, "cutoff", cutoff)
	}

	return nil
}

// CreateOrBumpAliasOverride registers a user-confirmed alias correction,
// incrementing the use count when the alias is already known. The alias is
// stored normalized so lookups are formatting-insensitive.
func (db *DB) CreateOrBumpAliasOverride(alias, exerciseSlug string) (*models.AliasOverride, error) {
	normalized := textnorm.Normalize(alias)
	if normalized == "" {
		return nil, fmt.Errorf("alias is empty after normalization")
	}

	now := time.Now()
	query := `
	INSERT INTO alias_overrides (alias, exercise_slug, use_count, last_used, created_at)
	VALUES (?, ?, 1, ?, ?)
	ON CONFLICT(alias) DO UPDATE SET
		use_count = use_count + 1,
		last_used = excluded.last_used,
		exercise_slug = excluded.exercise_slug
	`

	if _, err := db.conn.Exec(query, normalized, exerciseSlug, now, now); err != nil {
		return nil, fmt.Errorf("failed to upsert alias override: %w", err)
	}

	return db.GetAliasOverride(normalized)
}

// GetAliasOverride retrieves the override for a normalized alias, or nil
// when none is registered
func (db *DB) GetAliasOverride(alias string) (*models.AliasOverride, error) {
	normalized := textnorm.Normalize(alias)
	if normalized == "" {
		return nil, nil
	}

	query := `
	SELECT id, alias, exercise_slug, use_count, last_used, created_at
	FROM alias_overrides WHERE alias = ?
	`

	var override models.AliasOverride
	err := db.conn.QueryRow(query, normalized).Scan(
		&override.ID, &override.Alias, &override.ExerciseSlug,
		&override.UseCount, &override.LastUsed, &override.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alias override: %w", err)
	}

	return &override, nil
}

// ListAliasOverrides retrieves overrides ordered by use count
func (db *DB) ListAliasOverrides(limit int) ([]*models.AliasOverride, error) {
	query := `
	SELECT id, alias, exercise_slug, use_count, last_used, created_at
	FROM alias_overrides
	ORDER BY use_count DESC, last_used DESC
	LIMIT ?
	`

	rows, err := db.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alias overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*models.AliasOverride
	for rows.Next() {
		var override models.AliasOverride
		err := rows.Scan(
			&override.ID, &override.Alias, &override.ExerciseSlug,
			&override.UseCount, &override.LastUsed, &override.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alias override: %w", err)
		}
		overrides = append(overrides, &override)
	}

	return overrides, nil
}

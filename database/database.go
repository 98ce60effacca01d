package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Database is the local sync history store. Every processed beatmap file is
// recorded so later runs can show what was added, skipped, or failed before.
type Database struct {
	db *sql.DB
}

// SyncRecord is one processed file as stored in sync_history.
type SyncRecord struct {
	ID          int64
	FilePath    string
	Title       string
	Artist      string
	TrackID     string
	TrackURL    string
	Outcome     string
	Detail      string
	ProcessedAt time.Time
}

// OutcomeCount is the per-outcome tally across the whole history.
type OutcomeCount struct {
	Outcome string
	Count   int
}

// New opens (or creates) the history database at dbPath and runs migrations.
func New(dbPath string) (*Database, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Infof("Sync history database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sync_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_path TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			artist TEXT NOT NULL DEFAULT '',
			track_id TEXT NOT NULL DEFAULT '',
			track_url TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			processed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_history_outcome ON sync_history(outcome)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_history_track_id ON sync_history(track_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sync_history_processed_at ON sync_history(processed_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// RecordResult inserts one processed-file record.
func (d *Database) RecordResult(filePath, title, artist, trackID, trackURL, outcome, detail string) error {
	_, err := d.db.Exec(
		`INSERT INTO sync_history (file_path, title, artist, track_id, track_url, outcome, detail, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		filePath, title, artist, trackID, trackURL, outcome, detail,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}
	return nil
}

// GetRecent returns the most recently processed files, newest first.
func (d *Database) GetRecent(limit int) ([]SyncRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.db.Query(
		`SELECT id, file_path, title, artist, track_id, track_url, outcome, detail, processed_at
		 FROM sync_history
		 ORDER BY processed_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []SyncRecord
	for rows.Next() {
		var r SyncRecord
		var processedAt string
		if err := rows.Scan(&r.ID, &r.FilePath, &r.Title, &r.Artist, &r.TrackID,
			&r.TrackURL, &r.Outcome, &r.Detail, &processedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		r.ProcessedAt = parseTimestamp(processedAt)
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountByOutcome tallies all history rows by outcome.
func (d *Database) CountByOutcome() ([]OutcomeCount, error) {
	rows, err := d.db.Query(
		`SELECT outcome, COUNT(*) FROM sync_history GROUP BY outcome ORDER BY outcome`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcome counts: %w", err)
	}
	defer rows.Close()

	var counts []OutcomeCount
	for rows.Next() {
		var c OutcomeCount
		if err := rows.Scan(&c.Outcome, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// WasAdded reports whether a track id already has an "added" row in history.
func (d *Database) WasAdded(trackID string) bool {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM sync_history WHERE track_id = ? AND outcome = 'added'`,
		trackID,
	).Scan(&count)
	return err == nil && count > 0
}

func parseTimestamp(value string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	log.Warnf("failed to parse processed_at timestamp '%s' with all known formats", value)
	return time.Now()
}

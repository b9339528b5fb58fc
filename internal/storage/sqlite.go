// Package storage provides SQLite-based persistence for save slots and
// headless run results. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tomb-engine/internal/platform"
)

// ErrSlotNotFound is returned when a save slot holds nothing.
var ErrSlotNotFound = errors.New("storage: slot not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Slot is one stored save image.
type Slot struct {
	Slot      int
	Level     int
	LevelName string
	Tick      uint64
	Data      []byte
	SavedAt   time.Time
}

// SlotInfo describes a slot without its image.
type SlotInfo struct {
	Slot      int
	Level     int
	LevelName string
	Tick      uint64
	Size      int
	SavedAt   time.Time
}

// RunResult records one headless run.
type RunResult struct {
	ID        int64
	LevelName string
	Seed      int32
	Ticks     uint64
	Hash      string
	Faults    int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := platform.GetFullPath(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS save_slots (
			slot INTEGER PRIMARY KEY,
			level INTEGER NOT NULL,
			level_name TEXT NOT NULL,
			tick INTEGER NOT NULL DEFAULT 0,
			data BLOB NOT NULL,
			saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_name TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			hash TEXT NOT NULL,
			faults INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// PutSlot writes a save image into a slot, replacing what it held.
func (s *Store) PutSlot(slot Slot) error {
	_, err := s.db.Exec(
		`INSERT INTO save_slots (slot, level, level_name, tick, data, saved_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   level = excluded.level,
		   level_name = excluded.level_name,
		   tick = excluded.tick,
		   data = excluded.data,
		   saved_at = excluded.saved_at`,
		slot.Slot, slot.Level, slot.LevelName, int64(slot.Tick), slot.Data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %d: %w", slot.Slot, err)
	}
	return nil
}

// GetSlot reads a slot. Returns ErrSlotNotFound for an empty slot.
func (s *Store) GetSlot(slot int) (*Slot, error) {
	var out Slot
	var tick int64
	var savedAt any

	err := s.db.QueryRow(
		`SELECT slot, level, level_name, tick, data, saved_at
		 FROM save_slots
		 WHERE slot = ?`,
		slot,
	).Scan(&out.Slot, &out.Level, &out.LevelName, &tick, &out.Data, &savedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slot %d: %w", slot, err)
	}

	out.Tick = uint64(tick)
	out.SavedAt = parseTime(savedAt)
	return &out, nil
}

// ListSlots returns every occupied slot ordered by number.
func (s *Store) ListSlots() ([]SlotInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, level, level_name, tick, length(data), saved_at
		 FROM save_slots
		 ORDER BY slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var infos []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var tick int64
		var savedAt any
		if err := rows.Scan(&info.Slot, &info.Level, &info.LevelName, &tick, &info.Size, &savedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.Tick = uint64(tick)
		info.SavedAt = parseTime(savedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// DeleteSlot empties a slot. Returns ErrSlotNotFound if it was empty.
func (s *Store) DeleteSlot(slot int) error {
	res, err := s.db.Exec("DELETE FROM save_slots WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %d: %w", slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete slot %d: %w", slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
	}
	return nil
}

// RecordRun stores the result of a headless run.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(run RunResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (level_name, seed, ticks, hash, faults)
		 VALUES (?, ?, ?, ?, ?)`,
		run.LevelName, run.Seed, int64(run.Ticks), run.Hash, run.Faults,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs of a level, newest first.
func (s *Store) RecentRuns(levelName string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, level_name, seed, ticks, hash, faults, created_at
		 FROM runs
		 WHERE level_name = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelName, &r.Seed, &ticks, &r.Hash, &r.Faults, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

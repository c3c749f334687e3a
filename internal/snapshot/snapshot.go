// Persists hydrated records as JSONL snapshot files.

// Package snapshot stores hydrated records on disk, one JSONL file per
// database, keyed by local field keys. Snapshots give a diffable local
// copy of remote data for backups and offline inspection.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store writes and reads database snapshots under one directory.
type Store struct {
	dir string
}

// NewStore creates the snapshot directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the snapshot file path for a database.
func (s *Store) Path(databaseID string) string {
	return filepath.Join(s.dir, databaseID+".jsonl")
}

// Write replaces the snapshot of a database with the given records,
// one JSON object per line in record order.
func (s *Store) Write(databaseID string, records []map[string]any) error {
	path := s.Path(databaseID)
	f, err := os.Create(path) //nolint:gosec // Path is derived from the configured snapshot dir
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush snapshot: %w", err)
	}
	return nil
}

// Read loads the snapshot of a database. A missing snapshot yields no
// records and no error.
func (s *Store) Read(databaseID string) ([]map[string]any, error) {
	path := s.Path(databaseID)
	f, err := os.Open(path) //nolint:gosec // Path is derived from the configured snapshot dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record in %s: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return records, nil
}

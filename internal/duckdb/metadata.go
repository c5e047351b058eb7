package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// WriteInputFiles records the fingerprint of each input, keyed by role
// ("fasta", "bed", "cytoband"). Existing roles are overwritten.
func (s *Store) WriteInputFiles(files map[string]FileFingerprint) error {
	for role, fp := range files {
		if _, err := s.db.Exec(`INSERT OR REPLACE INTO input_files (role, path, size, mod_time) VALUES (?, ?, ?, ?)`,
			role, fp.Path, fp.Size, fp.ModTime.UTC()); err != nil {
			return fmt.Errorf("record %s input: %w", role, err)
		}
	}
	return nil
}

// InputFiles returns the recorded fingerprints keyed by role.
func (s *Store) InputFiles() (map[string]FileFingerprint, error) {
	rows, err := s.db.Query(`SELECT role, path, size, mod_time FROM input_files`)
	if err != nil {
		return nil, fmt.Errorf("query input files: %w", err)
	}
	defer rows.Close()

	files := make(map[string]FileFingerprint)
	for rows.Next() {
		var role string
		var fp FileFingerprint
		if err := rows.Scan(&role, &fp.Path, &fp.Size, &fp.ModTime); err != nil {
			return nil, fmt.Errorf("scan input file: %w", err)
		}
		files[role] = fp
	}
	return files, rows.Err()
}

// Package fileupload implements the out-of-core file upload/download side
// feature (spec §1 Out of scope, §4.4, §6): uploaded files are never
// replicated, just stored compressed in this host's own `files` table
// alongside the clipboard log and clock.
//
// The original implementation this spec was distilled from compresses
// uploads with zstd before writing them (db.rs's upload_file calls
// encode_all). No example repo in this pack pulls a zstd binding, so this
// package uses compress/flate from the standard library instead -- the
// one deliberate stdlib choice in this repo, since reaching for a
// third-party codec here would mean fabricating a dependency rather than
// reusing one the corpus actually shows.
package fileupload

import (
	"bytes"
	"compress/flate"
	"database/sql"
	"errors"
	"fmt"
	"io"
)

// ErrAlreadyExists is returned by Upload when file_name is already taken
// (the files table enforces this with a UNIQUE constraint).
var ErrAlreadyExists = errors.New("fileupload: name already exists")

// ErrNotFound is returned by Download when no row matches the name.
var ErrNotFound = errors.New("fileupload: not found")

// Store persists uploaded files. It shares the Store component's
// *sql.DB rather than opening a second connection to the same SQLite
// file.
type Store struct {
	db *sql.DB
}

// New wraps db for file upload/download use.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Upload compresses and stores the bytes read from r under name. Returns
// ErrAlreadyExists if name is already taken.
func (s *Store) Upload(name string, r io.Reader) error {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		return fmt.Errorf("fileupload: new compressor: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("fileupload: compress %s: %w", name, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("fileupload: compress %s: %w", name, err)
	}

	res, err := s.db.Exec(`INSERT OR IGNORE INTO files (file_name, content) VALUES (?, ?)`, name, buf.Bytes())
	if err != nil {
		return fmt.Errorf("fileupload: insert %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("fileupload: insert %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
	}
	return nil
}

// List returns every uploaded file's name, alphabetically.
func (s *Store) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT file_name FROM files ORDER BY file_name`)
	if err != nil {
		return nil, fmt.Errorf("fileupload: list: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("fileupload: list: scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Download decompresses the stored content for name and writes it to w.
// Returns ErrNotFound if no such file was ever uploaded.
func (s *Store) Download(name string, w io.Writer) error {
	var content []byte
	err := s.db.QueryRow(`SELECT content FROM files WHERE file_name = ?`, name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("fileupload: download %s: %w", name, err)
	}

	fr := flate.NewReader(bytes.NewReader(content))
	defer fr.Close()
	if _, err := io.Copy(w, fr); err != nil {
		return fmt.Errorf("fileupload: decompress %s: %w", name, err)
	}
	return nil
}

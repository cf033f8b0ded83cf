package fileupload

import (
	"bytes"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sql.Open("sqlite3", filepath.Join(dir, "files.db"))
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE files (
		key       INTEGER PRIMARY KEY AUTOINCREMENT,
		file_name TEXT UNIQUE NOT NULL,
		content   BLOB NOT NULL
	)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	s := New(openTestDB(t))

	want := []byte("the quick brown fox jumps over the lazy dog, repeated for compression")
	if err := s.Upload("doc.txt", bytes.NewReader(want)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	var got bytes.Buffer
	if err := s.Download("doc.txt", &got); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !bytes.Equal(got.Bytes(), want) {
		t.Fatalf("downloaded bytes differ from uploaded bytes")
	}
}

func TestUploadRejectsDuplicateName(t *testing.T) {
	s := New(openTestDB(t))

	if err := s.Upload("a.txt", bytes.NewReader([]byte("first"))); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	err := s.Upload("a.txt", bytes.NewReader([]byte("second")))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestDownloadMissingFile(t *testing.T) {
	s := New(openTestDB(t))

	var buf bytes.Buffer
	err := s.Download("missing.txt", &buf)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListAlphabetical(t *testing.T) {
	s := New(openTestDB(t))

	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		if err := s.Upload(name, bytes.NewReader([]byte(name))); err != nil {
			t.Fatalf("Upload(%s): %v", name, err)
		}
	}

	got, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.txt", "b.txt", "c.txt"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() = %v, want %v", got, want)
		}
	}
}

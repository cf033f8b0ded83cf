// Package store implements the Store component (spec §4.1): the
// exclusive owner of the on-disk clipboard log and the authoritative
// vector clock.
//
// Store is realized as a single long-running receiver loop reading from a
// bounded channel (spec §5): every public method packages its request as
// a command, sends it down the channel, and blocks for the reply. Because
// exactly one goroutine runs the Store's clipboard and clock commands
// against the *sql.DB (only the unrelated files table is reached through
// DB()), there is no mutex here —
// the same "serialize by queue order instead of by lock" idea the
// reference distributed-kvstore codebase documents for its own
// RWMutex-guarded map, just realized with a channel instead of a lock, per
// this spec's concurrency model.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/entrykey"
	"clipsync/internal/wire"
)

// ErrNoSuchOffset is returned by ReadAtOffset when n is past the end of
// the log (spec §7 NoSuchOffset).
var ErrNoSuchOffset = errors.New("store: no such offset")

const queueCapacity = 100

// Store owns the clipboard log and the clock. Safe for concurrent use by
// many callers; internally, all work is serialized onto one goroutine.
type Store struct {
	jobs chan job
	quit chan struct{}
	db   *sql.DB
}

// Open opens (creating if necessary) the SQLite file at path and starts
// the Store's receiver loop. hostID is used only to know which clock row
// is "self" when executing commands; callers still call InsertSelf to
// actually create that row.
func Open(path string, hostID clock.HostID) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// SQLite serializes writers regardless; cap at one open connection so
	// "ErrBusy" from a second writer can't happen out from under our own
	// single-goroutine design.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate %s: %w", path, err)
	}

	s := &Store{
		jobs: make(chan job, queueCapacity),
		quit: make(chan struct{}),
		db:   db,
	}
	e := &engine{db: db, hostID: hostID, gen: entrykey.NewGenerator()}
	go s.run(e)
	return s, nil
}

// Close stops the receiver loop and closes the database file.
func (s *Store) Close() error {
	close(s.quit)
	return s.db.Close()
}

// DB returns the underlying connection, for the fileupload package's
// exclusive use of the unrelated `files` table (spec §6: file upload is
// an out-of-core side feature sharing this host's one SQLite file, not
// one of the Store's own clipboard/clock operations in §4.1).
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) run(e *engine) {
	for {
		select {
		case j := <-s.jobs:
			val, err := j.cmd.execute(e)
			j.reply <- jobResult{val: val, err: err}
		case <-s.quit:
			return
		}
	}
}

// do enqueues cmd and blocks for its reply. This is the only place a
// caller goroutine ever touches the channel — every public method below
// is a thin, typed wrapper over it.
func (s *Store) do(cmd command) (any, error) {
	reply := make(chan jobResult, 1)
	s.jobs <- job{cmd: cmd, reply: reply}
	r := <-reply
	return r.val, r.err
}

// InsertSelf inserts a self-marked clock row with counter 0 if none
// exists; no-op if one does (spec §4.1, idempotent).
func (s *Store) InsertSelf(hostID clock.HostID) error {
	_, err := s.do(insertSelfCmd{hostID: hostID})
	return err
}

// WriteLocal assigns a fresh EntryKey, appends (key, entry) to the log,
// and increments the self counter by 1, all in one transaction (spec
// §4.1). Returns the assigned key.
func (s *Store) WriteLocal(entry clipboard.Entry) (entrykey.Key, error) {
	val, err := s.do(writeLocalCmd{entry: entry})
	if err != nil {
		return entrykey.Key{}, err
	}
	return val.(entrykey.Key), nil
}

// WriteReplicated inserts (key, entry) if key is not already present; it
// never touches a counter. Returns inserted=true if this call actually
// added the row, false if the key was already present (spec §4.1:
// "DuplicateKey... treated as success", never an error).
func (s *Store) WriteReplicated(key entrykey.Key, entry clipboard.Entry) (inserted bool, err error) {
	val, err := s.do(writeReplicatedCmd{key: key, entry: entry})
	if err != nil {
		return false, err
	}
	return val.(bool), nil
}

// MergeClock sets, for each (host, counter) pair in incoming, the local
// counter to max(local, counter). The self row is never touched, even if
// incoming happens to name this host (spec §4.1).
func (s *Store) MergeClock(incoming clock.Clock) error {
	_, err := s.do(mergeClockCmd{incoming: incoming})
	return err
}

// LoadClock returns a full snapshot of the clock.
func (s *Store) LoadClock() (clock.Clock, error) {
	val, err := s.do(loadClockCmd{})
	if err != nil {
		return nil, err
	}
	return val.(clock.Clock), nil
}

// ReadAtOffset returns the n-th most recent entry by key-descending sort;
// n=0 is newest. Returns ErrNoSuchOffset if n is out of range.
func (s *Store) ReadAtOffset(n int) (entrykey.Key, clipboard.Entry, error) {
	val, err := s.do(readAtOffsetCmd{offset: n})
	if err != nil {
		return entrykey.Key{}, clipboard.Entry{}, err
	}
	r := val.(wire.RecentItem)
	return r.Key, r.Entry, nil
}

// RecentEntries returns up to limit most-recent (entry, key) pairs,
// newest first.
func (s *Store) RecentEntries(limit int) ([]wire.RecentItem, error) {
	val, err := s.do(recentEntriesCmd{limit: limit})
	if err != nil {
		return nil, err
	}
	return val.([]wire.RecentItem), nil
}

// History returns up to limit most-recent textual summaries; images are
// represented by the literal token "image" (spec §4.1).
func (s *Store) History(limit int) ([]string, error) {
	val, err := s.do(historyCmd{limit: limit})
	if err != nil {
		return nil, err
	}
	return val.([]string), nil
}

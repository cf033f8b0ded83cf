package store

import (
	"database/sql"
	"fmt"

	"clipsync/internal/clipboard"
	"clipsync/internal/clock"
	"clipsync/internal/entrykey"
	"clipsync/internal/wire"
)

// ─── InsertSelf ─────────────────────────────────────────────────────────

type insertSelfCmd struct {
	hostID clock.HostID
}

func (c insertSelfCmd) execute(e *engine) (any, error) {
	_, err := e.db.Exec(
		`INSERT OR IGNORE INTO clock (key, self, time) VALUES (?, 1, 0)`,
		string(c.hostID),
	)
	if err != nil {
		return nil, fmt.Errorf("store: insert self: %w", err)
	}
	return nil, nil
}

// ─── WriteLocal ─────────────────────────────────────────────────────────

type writeLocalCmd struct {
	entry clipboard.Entry
}

func (c writeLocalCmd) execute(e *engine) (any, error) {
	key, err := e.gen.New()
	if err != nil {
		return nil, fmt.Errorf("store: write local: %w", err)
	}

	tx, err := e.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: write local: begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertClipboardRow(tx, key, c.entry); err != nil {
		return nil, fmt.Errorf("store: write local: insert: %w", err)
	}

	res, err := tx.Exec(`UPDATE clock SET time = time + 1 WHERE key = ? AND self = 1`, string(e.hostID))
	if err != nil {
		return nil, fmt.Errorf("store: write local: bump self: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("store: write local: no self clock row for host %q (InsertSelf not called?)", e.hostID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: write local: commit: %w", err)
	}
	return key, nil
}

// ─── WriteReplicated ────────────────────────────────────────────────────

type writeReplicatedCmd struct {
	key   entrykey.Key
	entry clipboard.Entry
}

func (c writeReplicatedCmd) execute(e *engine) (any, error) {
	res, err := insertClipboardRowIgnore(e.db, c.key, c.entry)
	if err != nil {
		return nil, fmt.Errorf("store: write replicated: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: write replicated: %w", err)
	}
	return n > 0, nil
}

// ─── MergeClock ─────────────────────────────────────────────────────────

type mergeClockCmd struct {
	incoming clock.Clock
}

func (c mergeClockCmd) execute(e *engine) (any, error) {
	tx, err := e.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: merge clock: begin: %w", err)
	}
	defer tx.Rollback()

	for host, count := range c.incoming {
		// Raise an existing peer row's counter, but never the self row.
		if _, err := tx.Exec(
			`UPDATE clock SET time = MAX(time, ?) WHERE key = ? AND self = 0`,
			count, string(host),
		); err != nil {
			return nil, fmt.Errorf("store: merge clock: update %s: %w", host, err)
		}
		// First observation of this host: insert it as a peer row. The
		// NOT EXISTS guard means this is a no-op when the host already
		// has a row -- including when host is our own self row, which
		// must never be created or touched by a merge.
		if _, err := tx.Exec(
			`INSERT INTO clock (key, self, time)
			 SELECT ?, 0, ? WHERE NOT EXISTS (SELECT 1 FROM clock WHERE key = ?)`,
			string(host), count, string(host),
		); err != nil {
			return nil, fmt.Errorf("store: merge clock: insert %s: %w", host, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: merge clock: commit: %w", err)
	}
	return nil, nil
}

// ─── LoadClock ──────────────────────────────────────────────────────────

type loadClockCmd struct{}

func (c loadClockCmd) execute(e *engine) (any, error) {
	rows, err := e.db.Query(`SELECT key, time FROM clock`)
	if err != nil {
		return nil, fmt.Errorf("store: load clock: %w", err)
	}
	defer rows.Close()

	out := clock.New()
	for rows.Next() {
		var host string
		var t uint64
		if err := rows.Scan(&host, &t); err != nil {
			return nil, fmt.Errorf("store: load clock: scan: %w", err)
		}
		out[clock.HostID(host)] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load clock: %w", err)
	}
	return out, nil
}

// ─── ReadAtOffset ───────────────────────────────────────────────────────

type readAtOffsetCmd struct {
	offset int
}

func (c readAtOffsetCmd) execute(e *engine) (any, error) {
	row := e.db.QueryRow(
		`SELECT key, text_data, width, height, image_content
		 FROM clipboard ORDER BY key DESC LIMIT 1 OFFSET ?`,
		c.offset,
	)

	var keyStr string
	var text sql.NullString
	var width, height sql.NullInt64
	var imageContent []byte
	switch err := row.Scan(&keyStr, &text, &width, &height, &imageContent); err {
	case nil:
		key, entry, err := scanClipboardRow(keyStr, text, width, height, imageContent)
		if err != nil {
			return nil, err
		}
		return wire.RecentItem{Key: key, Entry: entry}, nil
	case sql.ErrNoRows:
		return nil, ErrNoSuchOffset
	default:
		return nil, fmt.Errorf("store: read at offset %d: %w", c.offset, err)
	}
}

// ─── RecentEntries ──────────────────────────────────────────────────────

type recentEntriesCmd struct {
	limit int
}

func (c recentEntriesCmd) execute(e *engine) (any, error) {
	rows, err := e.db.Query(
		`SELECT key, text_data, width, height, image_content
		 FROM clipboard ORDER BY key DESC LIMIT ?`,
		c.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: recent entries: %w", err)
	}
	defer rows.Close()

	var out []wire.RecentItem
	for rows.Next() {
		var keyStr string
		var text sql.NullString
		var width, height sql.NullInt64
		var imageContent []byte
		if err := rows.Scan(&keyStr, &text, &width, &height, &imageContent); err != nil {
			return nil, fmt.Errorf("store: recent entries: scan: %w", err)
		}
		key, entry, err := scanClipboardRow(keyStr, text, width, height, imageContent)
		if err != nil {
			return nil, err
		}
		out = append(out, wire.RecentItem{Key: key, Entry: entry})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: recent entries: %w", err)
	}
	return out, nil
}

// ─── History ────────────────────────────────────────────────────────────

type historyCmd struct {
	limit int
}

func (c historyCmd) execute(e *engine) (any, error) {
	rows, err := e.db.Query(
		`SELECT text_data, width FROM clipboard ORDER BY key DESC LIMIT ?`,
		c.limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text sql.NullString
		var width sql.NullInt64
		if err := rows.Scan(&text, &width); err != nil {
			return nil, fmt.Errorf("store: history: scan: %w", err)
		}
		if text.Valid {
			out = append(out, text.String)
		} else {
			out = append(out, "image")
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	return out, nil
}

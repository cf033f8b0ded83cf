package store

import (
	"database/sql"
	"fmt"

	"clipsync/internal/clipboard"
	"clipsync/internal/entrykey"
)

// insertClipboardRow appends (key, entry) unconditionally. Used by
// WriteLocal, inside a transaction that also bumps the self counter.
func insertClipboardRow(ex execer, key entrykey.Key, entry clipboard.Entry) error {
	if entry.IsImage() {
		img := entry.Image()
		_, err := ex.Exec(
			`INSERT INTO clipboard (key, width, height, image_content) VALUES (?, ?, ?, ?)`,
			key.String(), img.Width, img.Height, img.Bytes,
		)
		return err
	}
	_, err := ex.Exec(
		`INSERT INTO clipboard (key, text_data) VALUES (?, ?)`,
		key.String(), entry.Text(),
	)
	return err
}

// insertClipboardRowIgnore is the idempotent variant WriteReplicated uses:
// a duplicate key is silently dropped rather than erroring (spec §4.1,
// §7 DuplicateKey).
func insertClipboardRowIgnore(ex execer, key entrykey.Key, entry clipboard.Entry) (sql.Result, error) {
	if entry.IsImage() {
		img := entry.Image()
		return ex.Exec(
			`INSERT OR IGNORE INTO clipboard (key, width, height, image_content) VALUES (?, ?, ?, ?)`,
			key.String(), img.Width, img.Height, img.Bytes,
		)
	}
	return ex.Exec(
		`INSERT OR IGNORE INTO clipboard (key, text_data) VALUES (?, ?)`,
		key.String(), entry.Text(),
	)
}

// scanClipboardRow decodes one row of (key, text_data, width, height,
// image_content) into an EntryKey + ClipboardEntry.
func scanClipboardRow(keyStr string, text sql.NullString, width, height sql.NullInt64, imageContent []byte) (entrykey.Key, clipboard.Entry, error) {
	key, err := entrykey.Parse(keyStr)
	if err != nil {
		return entrykey.Key{}, clipboard.Entry{}, fmt.Errorf("store: corrupt key %q: %w", keyStr, err)
	}

	if text.Valid {
		return key, clipboard.NewText(text.String), nil
	}

	img := clipboard.Image{
		Width:  int(width.Int64),
		Height: int(height.Int64),
		Bytes:  imageContent,
	}
	entry, err := clipboard.NewImage(img)
	if err != nil {
		return entrykey.Key{}, clipboard.Entry{}, fmt.Errorf("store: corrupt image row %q: %w", keyStr, err)
	}
	return key, entry, nil
}

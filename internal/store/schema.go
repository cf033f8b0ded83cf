package store

import "database/sql"

// schema is the relational layout from spec §6. files is out-of-core but
// lives in the same database file so a single SQLite path (spec's "one
// file per host") covers both the replication engine and the
// non-replicated file-upload side feature (internal/fileupload).
const schema = `
CREATE TABLE IF NOT EXISTS files (
	key         INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name   TEXT UNIQUE NOT NULL,
	content     BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS clipboard (
	key           TEXT PRIMARY KEY,
	text_data     TEXT,
	width         INTEGER,
	height        INTEGER,
	image_content BLOB
);

CREATE TABLE IF NOT EXISTS clock (
	key  TEXT PRIMARY KEY,
	self BOOLEAN NOT NULL,
	time INTEGER NOT NULL
);
`

func migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

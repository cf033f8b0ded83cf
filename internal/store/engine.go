package store

import (
	"database/sql"

	"clipsync/internal/clock"
	"clipsync/internal/entrykey"
)

// engine holds everything a command needs to execute. It is only ever
// touched from the Store's single receiver goroutine.
type engine struct {
	db     *sql.DB
	hostID clock.HostID
	gen    *entrykey.Generator
}

// command is one unit of work handed to the receiver loop.
type command interface {
	execute(e *engine) (any, error)
}

type job struct {
	cmd   command
	reply chan jobResult
}

type jobResult struct {
	val any
	err error
}

// execer is satisfied by both *sql.DB and *sql.Tx, so row-insert helpers
// work inside or outside a transaction without duplicating SQL.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// queryer is the read-side analog of execer.
type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

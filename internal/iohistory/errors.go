package iohistory

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL history database cannot be
// reached.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to history database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Check <em>database</em> settings in config.yaml
  3. Set <em>history.backend: sqlite</em> to keep history locally

<em>Database:</em> %s
<em>User:</em> %s`
	vars := []any{host, port, database, user}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// OpenError is returned when a history database cannot be opened.
func OpenError(target string, err error) error {
	msg := "Cannot open history database <em>%s</em>"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HistoryOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), target, err),
	}
}

// MigrateError is returned when the snapshots table cannot be created.
func MigrateError(err error) error {
	msg := "Cannot create history tables"
	return &gn.Error{
		Code: errcode.HistoryMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("cannot migrate history schema: %w", err),
	}
}

// SaveError is returned when a snapshot cannot be stored.
func SaveError(id string, err error) error {
	msg := "Cannot save snapshot <em>%s</em>"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.HistorySaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save snapshot %s: %w", id, err),
	}
}

// NotFoundError is returned when there is no snapshot with a given ID.
func NotFoundError(id string) error {
	msg := `Snapshot <em>%s</em> not found

<em>Tip:</em> run <em>nutrigap history list</em> to see saved snapshots`
	vars := []any{id}
	return &gn.Error{
		Code: errcode.HistoryNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("snapshot %s not found", id),
	}
}

// QueryError is returned when reading snapshots fails.
func QueryError(err error) error {
	msg := "Cannot read snapshots from history"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HistoryQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: history query failed: %w", fn.Name(), err),
	}
}

// DecodeError is returned when a stored table cannot be restored.
func DecodeError(id string, err error) error {
	msg := "Stored table of snapshot <em>%s</em> is corrupted"
	vars := []any{id}
	return &gn.Error{
		Code: errcode.HistoryDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot restore snapshot %s: %w", id, err),
	}
}

// DisabledError is returned by history operations when the backend is
// "none".
func DisabledError() error {
	msg := `History is disabled

<em>How to fix:</em>
  Set <em>history.backend</em> to <em>sqlite</em> or <em>postgres</em>
  in config.yaml`
	return &gn.Error{
		Code: errcode.HistoryDisabledError,
		Msg:  msg,
		Err:  fmt.Errorf("history backend is 'none'"),
	}
}

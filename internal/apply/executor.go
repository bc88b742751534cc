// Package apply runs generated scripts against PostgreSQL.
//
// A script is executed inside one transaction: either every table is
// replaced or the database is left as it was.
package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JonMunkholm/cda/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmptyScript is returned for a script with no statements.
var ErrEmptyScript = errors.New("script is empty")

// DBTX is what the executor needs from a database handle.
// *pgxpool.Pool and *pgx.Conn both satisfy it.
type DBTX interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// StatementError carries the server's report for a failed statement.
type StatementError struct {
	Code     string
	Message  string
	Detail   string
	Position int32 // 1-based character offset into the script, 0 if unknown
	Err      error
}

func (e *StatementError) Error() string {
	msg := fmt.Sprintf("statement failed (SQLSTATE %s): %s", e.Code, e.Message)
	if e.Position > 0 {
		msg += fmt.Sprintf(" at character %d", e.Position)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Executor applies scripts through a DBTX.
type Executor struct {
	db      DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewExecutor creates an Executor. A zero timeout means no deadline beyond
// the caller's context.
func NewExecutor(db DBTX, timeout time.Duration, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{db: db, timeout: timeout, logger: logger}
}

// Apply executes script in a single transaction.
func (e *Executor) Apply(ctx context.Context, script string) error {
	if strings.TrimSpace(script) == "" {
		return ErrEmptyScript
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	logger := logging.FromContextWith(ctx, e.logger)
	start := time.Now()

	err := pgx.BeginFunc(ctx, e.db, func(tx pgx.Tx) error {
		// The script holds many statements, which only the simple protocol accepts.
		_, err := tx.Exec(ctx, script, pgx.QueryExecModeSimpleProtocol)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			err = &StatementError{
				Code:     pgErr.Code,
				Message:  pgErr.Message,
				Detail:   pgErr.Detail,
				Position: pgErr.Position,
				Err:      pgErr,
			}
		}
		logger.Error("script rolled back", "error", err)
		return fmt.Errorf("apply script: %w", err)
	}

	logger.Info("script applied",
		"statements", Statements(script),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Statements counts the statements of a generated script.
func Statements(script string) int {
	n := 0
	for _, stmt := range strings.Split(script, "\n;\n") {
		if strings.TrimSpace(stmt) != "" {
			n++
		}
	}
	return n
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/CyberAustin/AFSCbot/internal/ports"
)

// The ledger is a single-column set of comment ids. Rows are append-only;
// nothing ever deletes from this table.
const schema = `CREATE TABLE IF NOT EXISTS comments (comment TEXT PRIMARY KEY)`

// SQLiteLedger persists replied-to comment ids in a local SQLite file.
type SQLiteLedger struct {
	db *sql.DB
}

var _ ports.CommentLedger = (*SQLiteLedger)(nil)

// Open opens (creating if needed) the ledger database and ensures the
// schema exists.
func Open(path string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure ledger schema: %w", err)
	}

	return &SQLiteLedger{db: db}, nil
}

// Contains reports whether the comment id was already replied to.
func (l *SQLiteLedger) Contains(ctx context.Context, commentID string) (bool, error) {
	query, args, err := sq.Select("1").
		From("comments").
		Where(sq.Eq{"comment": commentID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build contains query: %w", err)
	}

	var one int
	err = l.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return true, nil
}

// Insert records a comment id. Inserting an id that is already present is
// a no-op, which makes the call safe to retry and is the correctness
// boundary if fetch-ahead concurrency is ever introduced.
func (l *SQLiteLedger) Insert(ctx context.Context, commentID string) error {
	query, args, err := sq.Insert("comments").
		Columns("comment").
		Values(commentID).
		Suffix("ON CONFLICT(comment) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ledger row: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

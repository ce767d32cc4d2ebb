package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/bnema/social-actions-cli/internal/adapters/fsutil"
	"github.com/bnema/social-actions-cli/internal/adapters/ledger"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const fileExt = ".db"

const schema = `
CREATE TABLE IF NOT EXISTS actions_log (
	id         TEXT PRIMARY KEY,
	account    TEXT NOT NULL,
	post_id    TEXT NOT NULL,
	action     TEXT NOT NULL,
	outcome    TEXT NOT NULL,
	at_unix_ns INTEGER NOT NULL,
	note       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_actions_log_post ON actions_log(post_id, action, outcome);
CREATE INDEX IF NOT EXISTS idx_actions_log_window ON actions_log(action, outcome, at_unix_ns);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=FULL",
	"PRAGMA busy_timeout=5000",
}

// Ledger keeps one sqlite database per account under root.
type Ledger struct {
	root  string
	clock ports.Clock

	mu  sync.Mutex
	dbs map[domain.AccountID]*sql.DB
}

var _ ports.Ledger = (*Ledger)(nil)

func NewLedger(root string, clock ports.Clock) (*Ledger, error) {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	absRoot, err := fsutil.AbsPath(root)
	if err != nil {
		return nil, err
	}

	return &Ledger{root: absRoot, clock: clock, dbs: map[domain.AccountID]*sql.DB{}}, nil
}

func (l *Ledger) Record(ctx context.Context, rec domain.ActionRecord) error {
	db, err := l.open(ctx, rec.AccountID)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.At.IsZero() {
		rec.At = l.clock.Now()
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO actions_log (id, account, post_id, action, outcome, at_unix_ns, note) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.AccountID), string(rec.PostID), string(rec.Action), string(rec.Outcome), rec.At.UnixNano(), rec.Note,
	)
	if err != nil {
		return fmt.Errorf("insert ledger record: %w", err)
	}

	return nil
}

func (l *Ledger) HasSucceeded(ctx context.Context, account domain.AccountID, post domain.PostID, action domain.ActionKind) (bool, error) {
	db, err := l.open(ctx, account)
	if err != nil {
		return false, err
	}

	var exists int
	err = db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM actions_log WHERE post_id = ? AND action = ? AND outcome IN (?, ?, ?))`,
		string(post), string(action), string(domain.OutcomeSuccess), string(domain.OutcomeSkipped), string(domain.OutcomeDryRun),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query ledger record: %w", err)
	}

	return exists == 1, nil
}

func (l *Ledger) CountInWindow(ctx context.Context, account domain.AccountID, action domain.ActionKind, window time.Duration) (int, error) {
	db, err := l.open(ctx, account)
	if err != nil {
		return 0, err
	}

	now := l.clock.Now()
	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM actions_log WHERE action = ? AND outcome = ? AND at_unix_ns > ? AND at_unix_ns <= ?`,
		string(action), string(domain.OutcomeSuccess), now.Add(-window).UnixNano(), now.UnixNano(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count ledger records: %w", err)
	}

	return count, nil
}

func (l *Ledger) List(ctx context.Context, account domain.AccountID) ([]domain.ActionRecord, error) {
	db, err := l.open(ctx, account)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, account, post_id, action, outcome, at_unix_ns, note FROM actions_log ORDER BY at_unix_ns, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list ledger records: %w", err)
	}
	defer rows.Close()

	var records []domain.ActionRecord
	for rows.Next() {
		var (
			rec                              domain.ActionRecord
			accountID, post, action, outcome string
			atUnixNano                       int64
		)
		if err := rows.Scan(&rec.ID, &accountID, &post, &action, &outcome, &atUnixNano, &rec.Note); err != nil {
			return nil, fmt.Errorf("scan ledger record: %w", err)
		}
		rec.AccountID = domain.AccountID(accountID)
		rec.PostID = domain.PostID(post)
		rec.Action = domain.ActionKind(action)
		rec.Outcome = domain.Outcome(outcome)
		rec.At = time.Unix(0, atUnixNano).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger records: %w", err)
	}

	return records, nil
}

func (l *Ledger) Prune(ctx context.Context, account domain.AccountID, before time.Time, outcomes ...domain.Outcome) (int, error) {
	db, err := l.open(ctx, account)
	if err != nil {
		return 0, err
	}

	query := `DELETE FROM actions_log WHERE at_unix_ns < ?`
	args := []any{before.UnixNano()}
	if len(outcomes) > 0 {
		query += ` AND outcome IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(outcomes)), ", ") + `)`
		for _, outcome := range outcomes {
			args = append(args, string(outcome))
		}
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune ledger records: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned records: %w", err)
	}

	return int(affected), nil
}

func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for account, db := range l.dbs {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close ledger for %s: %w", account, err))
		}
		delete(l.dbs, account)
	}

	return errors.Join(errs...)
}

func (l *Ledger) open(ctx context.Context, account domain.AccountID) (*sql.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := ledger.PartitionPath(l.root, account, fileExt)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if db, ok := l.dbs[account]; ok {
		return db, nil
	}

	if err := os.MkdirAll(l.root, fsutil.DirMode); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite ledger schema: %w", err)
	}

	l.dbs[account] = db
	return db, nil
}

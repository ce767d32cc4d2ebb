package ports

import (
	"context"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
)

// Ledger is the append-only record of action attempts, partitioned per account.
type Ledger interface {
	// Record appends rec and returns once it is durable.
	Record(ctx context.Context, rec domain.ActionRecord) error
	// HasSucceeded is true when a success, skipped or dry_run record exists for the triple.
	HasSucceeded(ctx context.Context, account domain.AccountID, post domain.PostID, action domain.ActionKind) (bool, error)
	// CountInWindow counts success records for account and action inside the trailing window.
	CountInWindow(ctx context.Context, account domain.AccountID, action domain.ActionKind, window time.Duration) (int, error)
	List(ctx context.Context, account domain.AccountID) ([]domain.ActionRecord, error)
	// Prune drops records older than before. With no outcomes given every outcome is eligible.
	Prune(ctx context.Context, account domain.AccountID, before time.Time, outcomes ...domain.Outcome) (int, error)
	Close() error
}

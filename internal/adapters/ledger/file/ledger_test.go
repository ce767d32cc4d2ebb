package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestLedger(t *testing.T, now *time.Time) *Ledger {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().RunAndReturn(func() time.Time { return *now }).Maybe()

	l, err := NewLedger(t.TempDir(), clock)
	require.NoError(t, err)
	return l
}

func TestLedgerRecordThenHasSucceeded(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	ok, err := l.HasSucceeded(ctx, "maya", "p1", domain.ActionFavorite)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.Record(ctx, domain.ActionRecord{
		AccountID: "maya", PostID: "p1", Action: domain.ActionFavorite, Outcome: domain.OutcomeFailed,
	}))
	ok, err = l.HasSucceeded(ctx, "maya", "p1", domain.ActionFavorite)
	require.NoError(t, err)
	assert.False(t, ok, "failed attempts stay retryable")

	require.NoError(t, l.Record(ctx, domain.ActionRecord{
		AccountID: "maya", PostID: "p1", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess,
	}))
	ok, err = l.HasSucceeded(ctx, "maya", "p1", domain.ActionFavorite)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.HasSucceeded(ctx, "maya", "p1", domain.ActionBookmark)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.HasSucceeded(ctx, "other", "p1", domain.ActionFavorite)
	require.NoError(t, err)
	assert.False(t, ok, "ledgers are partitioned per account")
}

func TestLedgerSkippedAndDryRunCountAsSettled(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p1", Action: domain.ActionReshare, Outcome: domain.OutcomeSkipped}))
	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p1", Action: domain.ActionComment, Outcome: domain.OutcomeDryRun}))

	for _, action := range []domain.ActionKind{domain.ActionReshare, domain.ActionComment} {
		ok, err := l.HasSucceeded(ctx, "maya", "p1", action)
		require.NoError(t, err)
		assert.True(t, ok, action)
	}
}

func TestLedgerCountInWindowCountsOnlyRecentSuccess(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	record := func(at time.Time, outcome domain.Outcome, action domain.ActionKind) {
		require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p", Action: action, Outcome: outcome, At: at}))
	}

	record(now.Add(-61*time.Minute), domain.OutcomeSuccess, domain.ActionFavorite)
	record(now.Add(-59*time.Minute), domain.OutcomeSuccess, domain.ActionFavorite)
	record(now.Add(-time.Minute), domain.OutcomeSuccess, domain.ActionFavorite)
	record(now.Add(-time.Minute), domain.OutcomeFailed, domain.ActionFavorite)
	record(now.Add(-time.Minute), domain.OutcomeDryRun, domain.ActionFavorite)
	record(now.Add(-time.Minute), domain.OutcomeSuccess, domain.ActionComment)

	count, err := l.CountInWindow(ctx, "maya", domain.ActionFavorite, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	now = now.Add(time.Hour)
	count, err = l.CountInWindow(ctx, "maya", domain.ActionFavorite, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "hour rollover frees the budget")
}

func TestLedgerRecordAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p1", Action: domain.ActionBookmark, Outcome: domain.OutcomeSuccess}))

	records, err := l.List(ctx, "maya")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.True(t, records[0].At.Equal(now))
}

func TestLedgerToleratesTornTrailingLine(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p1", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess}))

	f, err := os.OpenFile(filepath.Join(l.root, "maya.jsonl"), os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":"x","account":"maya","post_`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := l.List(ctx, "maya")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLedgerPruneByAgeAndOutcome(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	old := now.Add(-48 * time.Hour)
	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p1", Action: domain.ActionFavorite, Outcome: domain.OutcomeDryRun, At: old}))
	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p2", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: old}))
	require.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: "maya", PostID: "p3", Action: domain.ActionFavorite, Outcome: domain.OutcomeDryRun, At: now}))

	pruned, err := l.Prune(ctx, "maya", now.Add(-24*time.Hour), domain.OutcomeDryRun)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	records, err := l.List(ctx, "maya")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, domain.PostID("p2"), records[0].PostID)

	pruned, err = l.Prune(ctx, "maya", now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)
}

func TestLedgerRejectsUnsafeAccountID(t *testing.T) {
	t.Parallel()

	now := time.Now()
	l := newTestLedger(t, &now)

	err := l.Record(context.Background(), domain.ActionRecord{AccountID: "../escape", PostID: "p1", Action: domain.ActionFavorite})
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLedgerConcurrentRecordsAcrossAccounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l := newTestLedger(t, &now)
	ctx := context.Background()

	const perAccount = 50
	var wg sync.WaitGroup
	for _, account := range []domain.AccountID{"a", "b", "c"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perAccount; i++ {
				assert.NoError(t, l.Record(ctx, domain.ActionRecord{AccountID: account, PostID: "p", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess}))
			}
		}()
	}
	wg.Wait()

	for _, account := range []domain.AccountID{"a", "b", "c"} {
		count, err := l.CountInWindow(ctx, account, domain.ActionFavorite, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, perAccount, count)
	}
}

func TestLedgerCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	now := time.Now()
	l := newTestLedger(t, &now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Record(ctx, domain.ActionRecord{AccountID: "maya"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLedgerSettledMatchesAnySettledRecordProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "ledger-prop-*")
		if err != nil {
			rt.Fatalf("temp dir: %v", err)
		}
		defer os.RemoveAll(dir)

		l, err := NewLedger(dir, nil)
		if err != nil {
			rt.Fatalf("new ledger: %v", err)
		}

		outcomes := []domain.Outcome{domain.OutcomeSuccess, domain.OutcomeFailed, domain.OutcomeSkipped, domain.OutcomeDryRun}
		written := rapid.SliceOfN(rapid.SampledFrom(outcomes), 0, 8).Draw(rt, "outcomes")

		want := false
		for _, outcome := range written {
			if err := l.Record(context.Background(), domain.ActionRecord{AccountID: "acct", PostID: "p", Action: domain.ActionComment, Outcome: outcome}); err != nil {
				rt.Fatalf("record: %v", err)
			}
			want = want || outcome.Settled()
		}

		got, err := l.HasSucceeded(context.Background(), "acct", "p", domain.ActionComment)
		if err != nil {
			rt.Fatalf("has succeeded: %v", err)
		}
		if got != want {
			rt.Fatalf("HasSucceeded = %v after %v, want %v", got, written, want)
		}
	})
}

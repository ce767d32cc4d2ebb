package status

import (
	"testing"
	"time"

	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingleAccountBudgets(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Account: domain.Account{ID: "main", Handle: "@maya"},
			Budgets: []application.ActionBudget{
				{Action: domain.ActionFavorite, Used: 3, Limit: 4, ResetsAt: now.Add(40 * time.Minute)},
				{Action: domain.ActionComment, Used: 2},
			},
			Records: 12,
			LastRecord: &domain.ActionRecord{
				PostID: "1890", Action: domain.ActionComment, Outcome: domain.OutcomeSuccess, At: now.Add(-5 * time.Minute),
			},
			AsOf: now,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "main (@maya)")
	assert.Contains(t, output, "ledger: 12 records, last comment success on 1890 at 10:55")
	assert.Contains(t, output, "favorite:")
	assert.Contains(t, output, "3/4 used")
	assert.Contains(t, output, "resets in 40 min (11:40)")
	assert.Contains(t, output, "2 this hour (no limit)")
	assert.Contains(t, output, "[")
	assert.NotContains(t, output, "[exhausted]")
	assert.NotContains(t, output, "[idle]")
}

func TestRenderMultiAccountStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Account: domain.Account{ID: "main", Handle: "@maya"},
			Budgets: []application.ActionBudget{{Action: domain.ActionReshare, Used: 5, Limit: 5, ResetsAt: now.Add(3 * time.Minute)}},
		},
		{
			Account: domain.Account{ID: "alt", Handle: "@alt"},
			Budgets: []application.ActionBudget{{Action: domain.ActionBookmark, Limit: 10}},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "main (@maya)")
	assert.Contains(t, output, "@alt")
	assert.Contains(t, output, "5/5 used")
	assert.Contains(t, output, "[exhausted]")
	assert.Contains(t, output, "0/10 used")
	assert.Contains(t, output, "ledger: empty")
}

func TestRenderMarksIdleAccounts(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)
	status := application.Status{
		Account: domain.Account{ID: "main", Handle: "@maya"},
		Records: 1,
		LastRecord: &domain.ActionRecord{
			PostID: "7", Action: domain.ActionFavorite, Outcome: domain.OutcomeFailed, At: now.Add(-72 * time.Hour),
		},
	}

	output, err := Render([]application.Status{status}, RenderOptions{Now: now, IdleAfter: 24 * time.Hour})
	require.NoError(t, err)
	assert.Contains(t, output, "[idle]")
	assert.Contains(t, output, "11:00 on 11 Feb")
	assert.Contains(t, output, "no actions enabled")

	output, err = Render([]application.Status{status}, RenderOptions{IdleAfter: 24 * time.Hour})
	require.NoError(t, err)
	assert.NotContains(t, output, "[idle]")
}

func TestRenderEmpty(t *testing.T) {
	output, err := Render(nil, RenderOptions{})
	require.NoError(t, err)
	assert.Contains(t, output, "No accounts configured.")
}

func TestFormatResetRelative(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, "reset now", formatResetRelative(now.Add(-time.Second), now))
	assert.Equal(t, "resets in 1 min (11:00)", formatResetRelative(now.Add(10*time.Second), now))
	assert.Equal(t, "resets 2026-02-14T11:30:00Z", formatResetRelative(now.Add(30*time.Minute), time.Time{}))
}

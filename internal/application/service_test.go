package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func statusAccount() domain.Account {
	return domain.Account{
		ID:      "maya",
		Handle:  "@maya",
		Enabled: domain.NewActionSet(domain.ActionFavorite, domain.ActionComment),
		RateLimits: domain.RateLimits{PerHour: map[domain.ActionKind]int{
			domain.ActionFavorite: 4,
		}},
	}
}

func TestServiceGetStatusComputesBudgets(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	ledger := mocks.NewMockLedger(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, ledger, steppingClock(t, &now))

	records := []domain.ActionRecord{
		{PostID: "1", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: now.Add(-90 * time.Minute)},
		{PostID: "2", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: now.Add(-50 * time.Minute)},
		{PostID: "3", Action: domain.ActionFavorite, Outcome: domain.OutcomeFailed, At: now.Add(-40 * time.Minute)},
		{PostID: "4", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: now.Add(-10 * time.Minute)},
		{PostID: "4", Action: domain.ActionComment, Outcome: domain.OutcomeDryRun, At: now.Add(-5 * time.Minute)},
	}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("maya")).Return(statusAccount(), nil)
	ledger.EXPECT().List(mockAnyContext(), domain.AccountID("maya")).Return(records, nil)

	status, err := service.GetStatus(context.Background(), "maya")
	require.NoError(t, err)

	assert.Equal(t, 5, status.Records)
	require.NotNil(t, status.LastRecord)
	assert.Equal(t, domain.OutcomeDryRun, status.LastRecord.Outcome)
	assert.Equal(t, now, status.AsOf)

	require.Len(t, status.Budgets, 2)
	favorite := status.Budgets[0]
	assert.Equal(t, domain.ActionFavorite, favorite.Action)
	assert.Equal(t, 2, favorite.Used)
	assert.Equal(t, 4, favorite.Limit)
	assert.InDelta(t, 50.0, favorite.Percent(), 0.001)
	assert.Equal(t, now.Add(10*time.Minute), favorite.ResetsAt)

	comment := status.Budgets[1]
	assert.True(t, comment.Unlimited())
	assert.Zero(t, comment.Used)
	assert.True(t, comment.ResetsAt.IsZero())
}

func TestServiceGetStatusUnknownAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	service := NewService(repo, mocks.NewMockLedger(t), mocks.NewMockClock(t))

	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("ghost")).Return(domain.Account{}, domain.ErrAccountNotFound)

	_, err := service.GetStatus(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestServiceGetStatusAllStopsOnLedgerError(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	ledger := mocks.NewMockLedger(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, ledger, steppingClock(t, &now))

	boom := errors.New("corrupt ledger")
	repo.EXPECT().List(mockAnyContext()).Return([]domain.Account{statusAccount()}, nil)
	ledger.EXPECT().List(mockAnyContext(), domain.AccountID("maya")).Return(nil, boom)

	_, err := service.GetStatusAll(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestBudgetPercentIsCapped(t *testing.T) {
	assert.Equal(t, 100.0, ActionBudget{Used: 7, Limit: 5}.Percent())
	assert.Zero(t, ActionBudget{Used: 7}.Percent())
}

func TestServiceListLedgerFiltersAndLimits(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	ledger := mocks.NewMockLedger(t)
	service := NewService(repo, ledger, mocks.NewMockClock(t))
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	records := []domain.ActionRecord{
		{PostID: "1", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: base},
		{PostID: "2", Action: domain.ActionComment, Outcome: domain.OutcomeFailed, At: base.Add(time.Minute)},
		{PostID: "3", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: base.Add(2 * time.Minute)},
		{PostID: "4", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess, At: base.Add(3 * time.Minute)},
	}
	repo.EXPECT().GetByID(mockAnyContext(), domain.AccountID("maya")).Return(statusAccount(), nil)
	ledger.EXPECT().List(mockAnyContext(), domain.AccountID("maya")).RunAndReturn(func(context.Context, domain.AccountID) ([]domain.ActionRecord, error) {
		return append([]domain.ActionRecord(nil), records...), nil
	})

	got, err := service.ListLedger(context.Background(), LedgerQuery{Account: "maya", Action: domain.ActionFavorite, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.PostID("3"), got[0].PostID)
	assert.Equal(t, domain.PostID("4"), got[1].PostID)

	got, err = service.ListLedger(context.Background(), LedgerQuery{Account: "maya", Outcome: domain.OutcomeFailed})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ActionComment, got[0].Action)

	got, err = service.ListLedger(context.Background(), LedgerQuery{Account: "maya", Since: base.Add(90 * time.Second)})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestServicePruneLedger(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	ledger := mocks.NewMockLedger(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := NewService(repo, ledger, steppingClock(t, &now))

	repo.EXPECT().List(mockAnyContext()).Return([]domain.Account{{ID: "maya", Handle: "@maya"}, {ID: "alt", Handle: "@alt"}}, nil)
	ledger.EXPECT().Prune(mockAnyContext(), domain.AccountID("maya"), now, domain.OutcomeDryRun).Return(3, nil)
	ledger.EXPECT().Prune(mockAnyContext(), domain.AccountID("alt"), now, domain.OutcomeDryRun).Return(0, nil)

	results, err := service.PruneLedger(context.Background(), PruneLedgerCommand{
		Accounts: []string{"all"},
		Outcomes: []domain.Outcome{domain.OutcomeDryRun},
	})
	require.NoError(t, err)
	assert.Equal(t, []PruneResult{{Account: "maya", Removed: 3}, {Account: "alt", Removed: 0}}, results)
}

func TestServicePruneLedgerUnknownAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	service := NewService(repo, mocks.NewMockLedger(t), mocks.NewMockClock(t))

	repo.EXPECT().List(mockAnyContext()).Return([]domain.Account{{ID: "maya"}}, nil)

	_, err := service.PruneLedger(context.Background(), PruneLedgerCommand{Accounts: []string{"nobody"}, Before: time.Now()})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

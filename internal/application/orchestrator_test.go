package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	fileledger "github.com/bnema/social-actions-cli/internal/adapters/ledger/file"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchestratorHarness struct {
	now      time.Time
	repo     *mocks.MockAccountRepository
	ledger   *fileledger.Ledger
	factory  *fakeFactory
	locker   *fakeLocker
	observer *recordingObserver
}

func newOrchestratorHarness(t *testing.T, accounts ...domain.Account) *orchestratorHarness {
	t.Helper()

	h := &orchestratorHarness{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)}
	clock := steppingClock(t, &h.now)

	ledger, err := fileledger.NewLedger(filepath.Join(t.TempDir(), "ledger"), clock)
	require.NoError(t, err)

	h.ledger = ledger
	h.repo = mocks.NewMockAccountRepository(t)
	h.repo.EXPECT().List(context.Background()).Return(accounts, nil).Maybe()
	h.locker = &fakeLocker{busy: map[string]bool{}}
	h.observer = &recordingObserver{}
	h.factory = &fakeFactory{pages: map[string]string{
		"https://x.com/alice":          renderPage(articleFixture{author: "alice", id: "100", text: "hello", controls: defaultControls()}),
		"https://x.com/bob":            renderPage(articleFixture{author: "bob", id: "101", text: "lunch", controls: defaultControls()}),
		"https://x.com/any/status/100": renderPage(articleFixture{author: "alice", id: "100", text: "hello", controls: defaultControls()}),
		"https://x.com/any/status/101": renderPage(articleFixture{author: "bob", id: "101", text: "lunch", controls: defaultControls()}),
	}}
	return h
}

func (h *orchestratorHarness) orchestrator(t *testing.T, dryRun bool) *Orchestrator {
	t.Helper()
	clock := steppingClock(t, &h.now)
	return NewOrchestrator(OrchestratorDeps{
		Accounts:   h.repo,
		Ledger:     h.ledger,
		Supervisor: NewSupervisor(h.factory, h.locker, time.Second, nil),
		Locator:    NewPostLocator("", time.Second),
		Resolver:   NewPolicyResolver(nil, nil),
		Executor:   NewExecutor(ExecutorDeps{Ledger: h.ledger, Observer: h.observer}, ExecutorConfig{DryRun: dryRun}),
		Observer:   h.observer,
		Clock:      clock,
	}, OrchestratorConfig{})
}

func favoriteOnlyAccount() domain.Account {
	return domain.Account{
		ID:         "a",
		Handle:     "@maya",
		Profile:    domain.BrowserProfile{Path: "/profiles/a"},
		Enabled:    domain.NewActionSet(domain.ActionFavorite),
		RateLimits: domain.RateLimits{PerHour: map[domain.ActionKind]int{domain.ActionFavorite: 1}},
		Targets:    []domain.TargetPolicy{{Handle: "alice"}, {Handle: "bob"}},
	}
}

func postResults(report domain.AccountReport) map[domain.PostID]domain.ActionResult {
	out := map[domain.PostID]domain.ActionResult{}
	for _, post := range report.Posts {
		for _, result := range post.Results {
			out[post.PostID] = result
		}
	}
	return out
}

func TestOrchestratorHourlyCeilingAcrossRuns(t *testing.T) {
	h := newOrchestratorHarness(t, favoriteOnlyAccount())
	ctx := context.Background()

	reports, err := h.orchestrator(t, false).Run(ctx, []string{"all"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.AccountCompleted, reports[0].Status)
	results := postResults(reports[0])
	assert.Equal(t, domain.StateSucceeded, results["100"].State)
	assert.Equal(t, domain.SkipRateLimit, results["101"].Reason)

	h.now = h.now.Add(20 * time.Minute)
	reports, err = h.orchestrator(t, false).Run(ctx, []string{"all"})
	require.NoError(t, err)
	results = postResults(reports[0])
	assert.Equal(t, domain.SkipIdempotent, results["100"].Reason)
	assert.Equal(t, domain.SkipRateLimit, results["101"].Reason)

	h.now = h.now.Add(41 * time.Minute)
	reports, err = h.orchestrator(t, false).Run(ctx, []string{"all"})
	require.NoError(t, err)
	results = postResults(reports[0])
	assert.Equal(t, domain.SkipIdempotent, results["100"].Reason)
	assert.Equal(t, domain.StateSucceeded, results["101"].State, "the hour rolled over")

	records, err := h.ledger.List(ctx, "a")
	require.NoError(t, err)
	successes := 0
	for _, rec := range records {
		if rec.Outcome == domain.OutcomeSuccess {
			successes++
		}
	}
	assert.Equal(t, 2, successes)
	assert.Equal(t, domain.AccountCompleted, h.observer.status["a"])
}

func TestOrchestratorContainsAccountFailures(t *testing.T) {
	invalid := favoriteOnlyAccount()
	invalid.ID, invalid.Profile.Path = "broken", ""
	busy := favoriteOnlyAccount()
	busy.ID, busy.Profile.Path = "busy", "/profiles/busy"
	h := newOrchestratorHarness(t, invalid, busy, favoriteOnlyAccount())
	h.locker.busy["/profiles/busy"] = true

	reports, err := h.orchestrator(t, false).Run(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, domain.AccountInvalid, reports[0].Status)
	assert.ErrorIs(t, reports[0].Err, domain.ErrInvalidConfig)
	assert.True(t, reports[0].Fatal())

	assert.Equal(t, domain.AccountBusy, reports[1].Status)
	assert.False(t, reports[1].Fatal())

	assert.Equal(t, domain.AccountCompleted, reports[2].Status)
	assert.Equal(t, domain.StateSucceeded, postResults(reports[2])["100"].State)
	assert.Len(t, h.factory.launches, 1)
}

func TestOrchestratorAbortsAccountWhenSessionKeepsDying(t *testing.T) {
	h := newOrchestratorHarness(t, favoriteOnlyAccount())
	for range 2 {
		d := newFakeDriver(nil)
		d.kill()
		h.factory.drivers = append(h.factory.drivers, d)
	}

	reports, err := h.orchestrator(t, false).Run(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountAborted, reports[0].Status)
	assert.ErrorIs(t, reports[0].Err, domain.ErrAccountAborted)
	assert.True(t, reports[0].Fatal())
	assert.Len(t, h.factory.launches, 2, "one relaunch only")
	assert.Equal(t, domain.AccountAborted, h.observer.status["a"])
}

func TestOrchestratorKeepsActionsAppliedBeforeSessionDied(t *testing.T) {
	account := favoriteOnlyAccount()
	account.Enabled = domain.NewActionSet(domain.ActionFavorite, domain.ActionBookmark)
	account.Targets = []domain.TargetPolicy{{Handle: "alice"}}
	h := newOrchestratorHarness(t, account)

	pages := make(map[string]string, len(h.factory.pages))
	for url, page := range h.factory.pages {
		pages[url] = page
	}
	first := newFakeDriver(pages)
	first.onClick = func(d *fakeDriver, selector string) {
		if selector == selectorLike {
			d.kill()
		}
	}
	h.factory.drivers = append(h.factory.drivers, first)

	reports, err := h.orchestrator(t, false).Run(context.Background(), []string{"a"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.AccountCompleted, reports[0].Status)
	assert.Len(t, h.factory.launches, 2)

	require.Len(t, reports[0].Posts, 1)
	post := reports[0].Posts[0]
	assert.Equal(t, domain.PostID("100"), post.PostID)
	require.Len(t, post.Results, 2)
	assert.Equal(t, domain.ActionResult{Action: domain.ActionFavorite, State: domain.StateSucceeded}, post.Results[0])
	assert.Equal(t, domain.ActionBookmark, post.Results[1].Action)
	assert.Equal(t, domain.StateSucceeded, post.Results[1].State)
	assert.Equal(t, 2, post.Count(domain.StateSucceeded))
}

func TestMergeAttempt(t *testing.T) {
	earlier := domain.PostReport{Target: "alice", PostID: "100", Results: []domain.ActionResult{
		{Action: domain.ActionFavorite, State: domain.StateSucceeded},
		{Action: domain.ActionReshare, State: domain.StateFailed, Note: "menu missing"},
	}}
	retried := domain.PostReport{Target: "alice", PostID: "100", Results: []domain.ActionResult{
		{Action: domain.ActionFavorite, State: domain.StateSkipped, Reason: domain.SkipIdempotent},
		{Action: domain.ActionReshare, State: domain.StateSucceeded},
		{Action: domain.ActionBookmark, State: domain.StateSucceeded},
	}}

	posts := mergeAttempt([]domain.PostReport{earlier}, &retried)
	require.Len(t, posts, 1)
	assert.Equal(t, []domain.ActionResult{
		{Action: domain.ActionFavorite, State: domain.StateSucceeded},
		{Action: domain.ActionReshare, State: domain.StateSucceeded},
		{Action: domain.ActionBookmark, State: domain.StateSucceeded},
	}, posts[0].Results)

	kept := mergeAttempt([]domain.PostReport{earlier}, nil)
	assert.Equal(t, []domain.PostReport{earlier}, kept, "a retry that found nothing keeps what was applied")

	newer := domain.PostReport{Target: "alice", PostID: "200", Results: []domain.ActionResult{
		{Action: domain.ActionFavorite, State: domain.StateSucceeded},
	}}
	both := mergeAttempt([]domain.PostReport{earlier}, &newer)
	require.Len(t, both, 2)
	assert.Equal(t, domain.PostID("100"), both[0].PostID)
	assert.Equal(t, domain.PostID("200"), both[1].PostID)

	empty := domain.PostReport{Target: "alice", PostID: "100"}
	replaced := mergeAttempt([]domain.PostReport{empty}, &newer)
	assert.Equal(t, []domain.PostReport{newer}, replaced)
}

func TestOrchestratorDryRunLeavesPagesUntouched(t *testing.T) {
	account := favoriteOnlyAccount()
	account.RateLimits = domain.RateLimits{}
	h := newOrchestratorHarness(t, account)

	reports, err := h.orchestrator(t, true).Run(context.Background(), []string{"maya"})
	require.NoError(t, err)
	for _, result := range postResults(reports[0]) {
		assert.True(t, result.DryRun)
		assert.Equal(t, domain.StateSucceeded, result.State)
	}

	records, err := h.ledger.List(context.Background(), "a")
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, domain.OutcomeDryRun, rec.Outcome)
	}
}

func TestOrchestratorActOverridesEnabledActions(t *testing.T) {
	account := favoriteOnlyAccount()
	account.Targets = []domain.TargetPolicy{{Handle: "alice"}, {Handle: "bob", Actions: actionSet(domain.ActionFavorite)}}
	h := newOrchestratorHarness(t, account)
	orchestrator := h.orchestrator(t, false)

	report, err := orchestrator.Act(context.Background(), "A", "@alice", domain.NewActionSet(domain.ActionBookmark))
	require.NoError(t, err)
	require.Len(t, report.Posts, 1)
	require.Len(t, report.Posts[0].Results, 1)
	assert.Equal(t, domain.ActionBookmark, report.Posts[0].Results[0].Action)
	assert.Equal(t, domain.StateSucceeded, report.Posts[0].Results[0].State)

	report, err = orchestrator.Act(context.Background(), "a", "bob", domain.NewActionSet(domain.ActionBookmark))
	require.NoError(t, err)
	assert.Empty(t, report.Posts, "bob only accepts favorites")
	assert.Equal(t, domain.AccountCompleted, report.Status)
}

func TestSelectAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository(t)
	accounts := []domain.Account{
		{ID: "main", Handle: "@Maya"},
		{ID: "alt", Handle: "@maya_alt"},
		{ID: "third", Handle: "@third"},
	}
	repo.EXPECT().List(context.Background()).Return(accounts, nil)

	got, err := SelectAccounts(context.Background(), repo, []string{"all"})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = SelectAccounts(context.Background(), repo, []string{"third,@MAYA"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{accounts[0], accounts[2]}, got, "configuration order is kept")

	got, err = SelectAccounts(context.Background(), repo, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = SelectAccounts(context.Background(), repo, []string{"main", "nobody"})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestOrchestratorRetentionPrunesOldRecords(t *testing.T) {
	account := favoriteOnlyAccount()
	account.Targets = nil
	h := newOrchestratorHarness(t, account)
	ctx := context.Background()

	require.NoError(t, h.ledger.Record(ctx, domain.ActionRecord{
		AccountID: "a", PostID: "1", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess,
		At: h.now.Add(-40 * 24 * time.Hour),
	}))
	require.NoError(t, h.ledger.Record(ctx, domain.ActionRecord{
		AccountID: "a", PostID: "2", Action: domain.ActionFavorite, Outcome: domain.OutcomeSuccess,
		At: h.now.Add(-time.Hour),
	}))

	orchestrator := h.orchestrator(t, false)
	orchestrator.cfg.Retention = 30 * 24 * time.Hour
	reports, err := orchestrator.Run(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountCompleted, reports[0].Status)

	records, err := h.ledger.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.PostID("2"), records[0].PostID)
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountLoggerFunc derives the per-account decision logger. The returned func is called when the
// account finishes.
type AccountLoggerFunc func(account domain.AccountID, runID string) (*zap.Logger, func() error, error)

type OrchestratorConfig struct {
	Retention      time.Duration
	BetweenTargets time.Duration
}

type OrchestratorDeps struct {
	Accounts   ports.AccountRepository
	Ledger     ports.Ledger
	Supervisor *Supervisor
	Locator    *PostLocator
	Resolver   *PolicyResolver
	Executor   *Executor
	Observer   ports.ActionObserver
	Clock      ports.Clock
	Logger     *zap.Logger

	// AccountLogger defaults to tagging Logger with the account and run id.
	AccountLogger AccountLoggerFunc
}

// Orchestrator walks accounts one at a time and, for each, every configured target in order.
// A failure is contained to the account it happened in.
type Orchestrator struct {
	deps OrchestratorDeps
	cfg  OrchestratorConfig
}

func NewOrchestrator(deps OrchestratorDeps, cfg OrchestratorConfig) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Observer == nil {
		deps.Observer = ports.NopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.AccountLogger == nil {
		base := deps.Logger
		deps.AccountLogger = func(account domain.AccountID, runID string) (*zap.Logger, func() error, error) {
			return base.With(zap.String("account", string(account)), zap.String("run_id", runID)), func() error { return nil }, nil
		}
	}
	return &Orchestrator{deps: deps, cfg: cfg}
}

// SelectAccounts resolves "all" or a list of account ids and handles, matched case-insensitively,
// keeping configuration order.
func SelectAccounts(ctx context.Context, repo ports.AccountRepository, selectors []string) ([]domain.Account, error) {
	accounts, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	wanted := map[string]bool{}
	for _, raw := range selectors {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.ToLower(domain.NormalizeHandle(part)); part != "" {
				wanted[part] = false
			}
		}
	}
	if len(wanted) == 0 {
		return accounts, nil
	}
	if _, all := wanted["all"]; all {
		return accounts, nil
	}

	selected := make([]domain.Account, 0, len(wanted))
	for _, account := range accounts {
		id := strings.ToLower(string(account.ID))
		handle := strings.ToLower(domain.NormalizeHandle(account.Handle))
		_, byID := wanted[id]
		_, byHandle := wanted[handle]
		if !byID && !byHandle {
			continue
		}
		wanted[id], wanted[handle] = true, true
		selected = append(selected, account)
	}

	for selector, matched := range wanted {
		if !matched {
			return nil, fmt.Errorf("account %q: %w", selector, domain.ErrAccountNotFound)
		}
	}

	return selected, nil
}

// Run processes the selected accounts sequentially. The error is non-nil only when accounts could
// not be selected; per-account outcomes are in the reports.
func (o *Orchestrator) Run(ctx context.Context, selectors []string) ([]domain.AccountReport, error) {
	accounts, err := SelectAccounts(ctx, o.deps.Accounts, selectors)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.AccountReport, 0, len(accounts))
	for _, account := range accounts {
		if ctx.Err() != nil {
			reports = append(reports, domain.AccountReport{AccountID: account.ID, Status: domain.AccountAborted, Err: ctx.Err()})
			continue
		}
		reports = append(reports, o.RunAccount(ctx, account, nil))
	}

	return reports, nil
}

// Act runs a single target for one account with an explicit action set, which replaces the
// account's enabled actions for this invocation. The target's own restrictions still apply.
func (o *Orchestrator) Act(ctx context.Context, selector string, target string, actions domain.ActionSet) (domain.AccountReport, error) {
	accounts, err := SelectAccounts(ctx, o.deps.Accounts, []string{selector})
	if err != nil {
		return domain.AccountReport{}, err
	}
	if len(accounts) != 1 {
		return domain.AccountReport{}, fmt.Errorf("select exactly one account, got %d: %w", len(accounts), domain.ErrInvalidConfig)
	}

	account := accounts[0]
	if !actions.Empty() {
		account.Enabled = actions
	}
	return o.RunAccount(ctx, account, []string{target}), nil
}

// RunAccount processes one account. With targets nil every configured target is visited.
func (o *Orchestrator) RunAccount(ctx context.Context, account domain.Account, targets []string) domain.AccountReport {
	started := o.deps.Clock.Now()
	report := domain.AccountReport{AccountID: account.ID}
	defer func() {
		o.deps.Observer.ObserveAccount(account.ID, report.Status, o.deps.Clock.Now().Sub(started))
	}()

	runID := uuid.NewString()
	logger, closeLog, err := o.deps.AccountLogger(account.ID, runID)
	if err != nil {
		o.deps.Logger.Warn("account log unavailable", zap.String("account", string(account.ID)), zap.Error(err))
		logger, closeLog = o.deps.Logger.With(zap.String("account", string(account.ID)), zap.String("run_id", runID)), func() error { return nil }
	}
	defer func() { _ = closeLog() }()

	if err := account.Validate(); err != nil {
		logger.Error("account configuration invalid", zap.Error(err))
		report.Status, report.Err = domain.AccountInvalid, err
		return report
	}

	if targets == nil {
		for _, target := range account.Targets {
			targets = append(targets, domain.NormalizeHandle(target.Handle))
		}
	}

	logger.Info("account run started",
		zap.Int("targets", len(targets)),
		zap.String("actions", account.Enabled.String()),
		zap.Bool("dry_run", o.deps.Executor.DryRun()))

	state, err := o.deps.Supervisor.Open(ctx, account.Profile)
	if err != nil {
		if errors.Is(err, domain.ErrProfileBusy) {
			logger.Warn("profile busy, skipping account", zap.String("profile", account.Profile.Path))
			report.Status, report.Err = domain.AccountBusy, err
			return report
		}
		logger.Error("browser session unavailable", zap.Error(err))
		report.Status, report.Err = domain.AccountAborted, fmt.Errorf("%w: %w", domain.ErrAccountAborted, err)
		return report
	}
	defer func() {
		if err := o.deps.Supervisor.Close(state); err != nil {
			logger.Warn("session teardown", zap.Error(err))
		}
	}()

	o.applyRetention(ctx, logger, account.ID)

	run := NewAccountRun(account, NewPacer(account.RateLimits.MinInterval), logger)
	betweenTargets := NewPacer(o.cfg.BetweenTargets)

	report.Status = domain.AccountCompleted
	for _, target := range targets {
		if err := betweenTargets.Wait(ctx); err != nil {
			report.Status, report.Err = domain.AccountAborted, err
			break
		}

		var posts []domain.PostReport
		state, err = o.deps.Supervisor.Run(ctx, state, func(ctx context.Context, driver ports.Driver) error {
			attempt, err := o.processTarget(ctx, run, driver, target)
			posts = mergeAttempt(posts, attempt)
			return err
		})
		report.Posts = append(report.Posts, posts...)

		switch {
		case err == nil:
		case errors.Is(err, domain.ErrAccountAborted):
			logger.Error("account aborted", zap.String("target", target), zap.Error(err))
			report.Status, report.Err = domain.AccountAborted, err
		case ctx.Err() != nil:
			report.Status, report.Err = domain.AccountAborted, ctx.Err()
		default:
			logger.Warn("target failed", zap.String("target", target), zap.Error(err))
		}
		if report.Status == domain.AccountAborted {
			break
		}
	}

	logger.Info("account run finished", zap.String("status", string(report.Status)), zap.Int("posts", len(report.Posts)))
	return report
}

// processTarget locates the target's newest post and runs the executor on it. A missing profile or
// post is a routine skip and returns no report.
func (o *Orchestrator) processTarget(ctx context.Context, run *AccountRun, driver ports.Driver, target string) (*domain.PostReport, error) {
	logger := run.Logger.With(zap.String("target", target))

	post, err := o.deps.Locator.Latest(ctx, driver, target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionDead):
			return nil, err
		case errors.Is(err, domain.ErrTargetNotFound), errors.Is(err, domain.ErrPostNotFound):
			logger.Warn("no post to act on", zap.Error(err))
			return nil, nil
		default:
			return nil, err
		}
	}

	policy := o.deps.Resolver.Resolve(run.Account, target, post)
	if policy.Allowed.Empty() {
		logger.Info("no actions allowed for target", zap.String("post_id", string(post.ID)))
		return nil, nil
	}

	report, err := o.deps.Executor.ExecutePost(ctx, run, driver, target, post, policy)
	return &report, err
}

// mergeAttempt adds a target attempt to the reports of earlier attempts that a dead session cut
// short. On the same post, actions the earlier attempt applied or failed keep that outcome; the
// retry would only see them as idempotent skips.
func mergeAttempt(posts []domain.PostReport, attempt *domain.PostReport) []domain.PostReport {
	if attempt == nil {
		return posts
	}
	if len(posts) == 0 {
		return append(posts, *attempt)
	}
	last := &posts[len(posts)-1]
	if len(last.Results) == 0 {
		*last = *attempt
		return posts
	}
	if last.PostID != attempt.PostID {
		return append(posts, *attempt)
	}

	settled := make(map[domain.ActionKind]domain.ActionResult, len(last.Results))
	for _, result := range last.Results {
		if result.State == domain.StateSucceeded || result.State == domain.StateFailed {
			settled[result.Action] = result
		}
	}

	merged := domain.PostReport{Target: attempt.Target, PostID: attempt.PostID}
	seen := make(map[domain.ActionKind]bool, len(attempt.Results))
	for _, result := range attempt.Results {
		seen[result.Action] = true
		if prior, ok := settled[result.Action]; ok && result.State == domain.StateSkipped {
			result = prior
		}
		merged.Results = append(merged.Results, result)
	}
	for _, result := range last.Results {
		if !seen[result.Action] {
			merged.Results = append(merged.Results, result)
		}
	}
	*last = merged
	return posts
}

func (o *Orchestrator) applyRetention(ctx context.Context, logger *zap.Logger, account domain.AccountID) {
	if o.cfg.Retention <= 0 {
		return
	}

	cutoff := o.deps.Clock.Now().Add(-o.cfg.Retention)
	pruned, err := o.deps.Ledger.Prune(ctx, account, cutoff)
	if err != nil {
		logger.Warn("ledger retention failed", zap.Error(err))
		return
	}
	if pruned > 0 {
		logger.Info("ledger records pruned", zap.Int("count", pruned), zap.Time("before", cutoff))
	}
}

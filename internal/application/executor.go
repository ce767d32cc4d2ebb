package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"go.uber.org/zap"
)

const (
	selectorLike           = `[data-testid="like"]`
	selectorBookmark       = `[data-testid="bookmark"]`
	selectorRetweet        = `[data-testid="retweet"]`
	selectorRetweetConfirm = `[data-testid="retweetConfirm"]`
	selectorReplyButton    = `article[data-testid="tweet"] [data-testid="reply"]`
	selectorReplyTextarea  = `[data-testid="tweetTextarea_0"]`
	selectorReplyInline    = `[data-testid="tweetButtonInline"]`
	selectorReplySubmit    = `[data-testid="tweetButton"]`
)

const (
	DefaultPageTimeout    = 30 * time.Second
	DefaultConfirmTimeout = 8 * time.Second
	composerProbeTimeout  = 5 * time.Second
	maxConfirmArticles    = 50
)

var replyErrorPhrases = []string{"something went wrong", "問題が発生しました"}

type ExecutorConfig struct {
	BaseURL        string
	PageTimeout    time.Duration
	ConfirmTimeout time.Duration
	ConfirmPoll    time.Duration
	DryRun         bool
}

func (c ExecutorConfig) withDefaults() ExecutorConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.PageTimeout <= 0 {
		c.PageTimeout = DefaultPageTimeout
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = DefaultConfirmTimeout
	}
	if c.ConfirmPoll <= 0 {
		c.ConfirmPoll = 500 * time.Millisecond
	}
	return c
}

// AccountRun is the state one account carries across its targets: the pacing clock, the decision
// logger and the action kinds whose hourly budget ran out.
type AccountRun struct {
	Account domain.Account
	Pacer   ports.Pacer
	Logger  *zap.Logger

	exhausted map[domain.ActionKind]bool
	// dry-run attempts per kind; they write no success records
	simulated map[domain.ActionKind]int
}

func NewAccountRun(account domain.Account, pacer ports.Pacer, logger *zap.Logger) *AccountRun {
	if pacer == nil {
		pacer = NewPacer(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountRun{
		Account:   account,
		Pacer:     pacer,
		Logger:    logger,
		exhausted: map[domain.ActionKind]bool{},
		simulated: map[domain.ActionKind]int{},
	}
}

func (r *AccountRun) Exhausted(kind domain.ActionKind) bool {
	return r.exhausted[kind]
}

// Executor applies the resolved actions to one post in the fixed order, containing every
// interaction failure to the action it happened in.
type Executor struct {
	ledger     ports.Ledger
	limiter    *RateLimiter
	reconciler *Reconciler
	greetings  *GreetingService
	generator  ports.ReplyGenerator
	observer   ports.ActionObserver
	cfg        ExecutorConfig
}

type ExecutorDeps struct {
	Ledger     ports.Ledger
	Reconciler *Reconciler
	Greetings  *GreetingService
	Generator  ports.ReplyGenerator
	Observer   ports.ActionObserver
}

func NewExecutor(deps ExecutorDeps, cfg ExecutorConfig) *Executor {
	if deps.Reconciler == nil {
		deps.Reconciler = NewReconciler()
	}
	if deps.Observer == nil {
		deps.Observer = ports.NopObserver{}
	}
	return &Executor{
		ledger:     deps.Ledger,
		limiter:    NewRateLimiter(deps.Ledger),
		reconciler: deps.Reconciler,
		greetings:  deps.Greetings,
		generator:  deps.Generator,
		observer:   deps.Observer,
		cfg:        cfg.withDefaults(),
	}
}

func (e *Executor) DryRun() bool {
	return e.cfg.DryRun
}

func (e *Executor) PostURL(id domain.PostID) string {
	return e.cfg.BaseURL + "/any/status/" + string(id)
}

// ExecutePost runs every allowed action against post. Only a dead session stops it early; the
// returned report then covers the actions handled so far.
func (e *Executor) ExecutePost(ctx context.Context, run *AccountRun, driver ports.Driver, target string, post domain.Post, policy domain.ResolvedPolicy) (domain.PostReport, error) {
	report := domain.PostReport{Target: target, PostID: post.ID}
	logger := run.Logger.With(zap.String("target", target), zap.String("post_id", string(post.ID)))

	kinds := policy.Allowed.Kinds()
	if len(kinds) == 0 {
		return report, nil
	}

	if err := e.openPost(ctx, driver, post.ID); err != nil {
		if errors.Is(err, domain.ErrSessionDead) || ctx.Err() != nil {
			return report, err
		}
		logger.Warn("post page unavailable", zap.Error(err))
		for _, kind := range kinds {
			result := domain.ActionResult{Action: kind, State: domain.StateFailed, Note: err.Error()}
			e.record(ctx, run, post.ID, kind, domain.OutcomeFailed, result.Note)
			e.finish(run, logger, &report, result)
		}
		return report, nil
	}

	snapshot, err := e.reconciler.Inspect(ctx, driver, post.ID, run.Account.Handle)
	if err != nil {
		if errors.Is(err, domain.ErrSessionDead) {
			return report, err
		}
		logger.Warn("ui state unavailable", zap.Error(err))
		snapshot = domain.UIStateSnapshot{}
	}

	for _, kind := range kinds {
		result, err := e.executeAction(ctx, run, driver, logger, target, post, kind, snapshot, policy.Reply)
		if err != nil {
			return report, err
		}
		e.finish(run, logger, &report, result)
	}

	return report, nil
}

func (e *Executor) openPost(ctx context.Context, driver ports.Driver, id domain.PostID) error {
	if err := driver.Navigate(ctx, e.PostURL(id)); err != nil {
		return fmt.Errorf("open post %s: %w", id, err)
	}
	if err := driver.WaitFor(ctx, articleSelector, e.cfg.PageTimeout); err != nil {
		return fmt.Errorf("wait for post %s: %w", id, err)
	}
	return nil
}

func (e *Executor) executeAction(
	ctx context.Context,
	run *AccountRun,
	driver ports.Driver,
	logger *zap.Logger,
	target string,
	post domain.Post,
	kind domain.ActionKind,
	snapshot domain.UIStateSnapshot,
	reply domain.ReplySource,
) (domain.ActionResult, error) {
	result := domain.ActionResult{Action: kind, State: domain.StateChecking, DryRun: e.cfg.DryRun}
	account := run.Account.ID

	if snapshot.Applied(kind) {
		e.record(ctx, run, post.ID, kind, domain.OutcomeSkipped, string(domain.SkipUIDetected))
		return skipped(result, domain.SkipUIDetected), nil
	}

	done, err := e.ledger.HasSucceeded(ctx, account, post.ID, kind)
	if err != nil {
		return failed(result, fmt.Errorf("check ledger: %w", err)), ctx.Err()
	}
	if done {
		return skipped(result, domain.SkipIdempotent), nil
	}

	if run.exhausted[kind] {
		return skipped(result, domain.SkipRateLimit), nil
	}
	decision, err := e.limiter.Allow(ctx, account, kind, run.Account.RateLimits.Limit(kind))
	if err != nil {
		return failed(result, err), ctx.Err()
	}
	if !decision.Unlimited() {
		decision.Used += run.simulated[kind]
		decision.Allowed = decision.Used < decision.Limit
	}
	if !decision.Allowed {
		run.exhausted[kind] = true
		logger.Info("hourly budget exhausted",
			zap.String("action", string(kind)),
			zap.Int("used", decision.Used),
			zap.Int("limit", decision.Limit))
		return skipped(result, domain.SkipRateLimit), nil
	}

	var text string
	if kind == domain.ActionComment {
		text, err = e.replyText(ctx, run, target, post, reply)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result = failed(result, err)
			e.record(ctx, run, post.ID, kind, domain.OutcomeFailed, result.Note)
			return result, nil
		}
		if text == "" {
			return skipped(result, domain.SkipNoReply), nil
		}
	}

	// Paced before every attempted action, whatever its outcome, so consecutive attempts stay spaced.
	if err := run.Pacer.Wait(ctx); err != nil {
		return result, err
	}

	result.State = domain.StateApplying
	if e.cfg.DryRun {
		logger.Info("dry run, action not applied", zap.String("action", string(kind)), zap.String("text", text))
		run.simulated[kind]++
		e.record(ctx, run, post.ID, kind, domain.OutcomeDryRun, text)
		e.rememberGreeting(ctx, run, target, reply, kind)
		result.State = domain.StateSucceeded
		return result, nil
	}

	if err := e.apply(ctx, driver, kind, post.ID, run.Account.Handle, text); err != nil {
		if errors.Is(err, domain.ErrSessionDead) || ctx.Err() != nil {
			return result, err
		}
		result = failed(result, err)
		e.record(ctx, run, post.ID, kind, domain.OutcomeFailed, result.Note)
		return result, nil
	}

	e.record(ctx, run, post.ID, kind, domain.OutcomeSuccess, text)
	e.rememberGreeting(ctx, run, target, reply, kind)
	result.State = domain.StateSucceeded
	return result, nil
}

func (e *Executor) replyText(ctx context.Context, run *AccountRun, target string, post domain.Post, reply domain.ReplySource) (string, error) {
	switch reply.Kind {
	case domain.ReplyFixed:
		return strings.TrimSpace(reply.Text), nil
	case domain.ReplyGreeting:
		if e.greetings == nil {
			return "", nil
		}
		return e.greetings.Compose(ctx, run.Account.ID, target, reply)
	case domain.ReplyGenerated:
		if e.generator == nil {
			return "", nil
		}
		text, err := e.generator.GenerateReply(ctx, ports.ThreadContext{
			Account:  run.Account.ID,
			Handle:   domain.NormalizeHandle(run.Account.Handle),
			Target:   target,
			Nickname: reply.Nickname,
			Post:     post,
		})
		if err != nil {
			return "", fmt.Errorf("generate reply: %w", err)
		}
		return strings.TrimSpace(text), nil
	default:
		return "", nil
	}
}

func (e *Executor) apply(ctx context.Context, driver ports.Driver, kind domain.ActionKind, post domain.PostID, ownHandle string, text string) error {
	switch kind {
	case domain.ActionFavorite:
		return driver.FindAndClick(ctx, selectorLike)
	case domain.ActionBookmark:
		return driver.FindAndClick(ctx, selectorBookmark)
	case domain.ActionReshare:
		if err := driver.FindAndClick(ctx, selectorRetweet); err != nil {
			return err
		}
		return driver.FindAndClick(ctx, selectorRetweetConfirm)
	case domain.ActionComment:
		return e.comment(ctx, driver, post, ownHandle, text)
	default:
		return fmt.Errorf("unsupported action %q", kind)
	}
}

func (e *Executor) comment(ctx context.Context, driver ports.Driver, post domain.PostID, ownHandle string, text string) error {
	if err := driver.WaitFor(ctx, selectorReplyTextarea, composerProbeTimeout); err != nil {
		if errors.Is(err, domain.ErrSessionDead) {
			return err
		}
		if err := driver.FindAndClick(ctx, selectorReplyButton); err != nil {
			return fmt.Errorf("open reply composer: %w", err)
		}
		if err := driver.WaitFor(ctx, selectorReplyTextarea, e.cfg.PageTimeout); err != nil {
			return fmt.Errorf("wait for reply composer: %w", err)
		}
	}

	if err := driver.TypeText(ctx, selectorReplyTextarea, text); err != nil {
		return fmt.Errorf("type reply: %w", err)
	}

	if err := driver.FindAndClick(ctx, selectorReplyInline); err != nil {
		if !errors.Is(err, domain.ErrElementNotFound) {
			return fmt.Errorf("submit reply: %w", err)
		}
		if err := driver.FindAndClick(ctx, selectorReplySubmit); err != nil {
			return fmt.Errorf("submit reply: %w", err)
		}
	}

	return e.confirmReply(ctx, driver, post, ownHandle)
}

// confirmReply polls the page until the account's own reply shows up in the thread.
func (e *Executor) confirmReply(ctx context.Context, driver ports.Driver, post domain.PostID, ownHandle string) error {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(e.cfg.ConfirmPoll)
	defer ticker.Stop()

	for {
		content, err := driver.RenderedContent(ctx)
		if err != nil && errors.Is(err, domain.ErrSessionDead) {
			return err
		}
		if err == nil {
			if containsAnyFold(content, replyErrorPhrases...) {
				return fmt.Errorf("platform rejected reply: %w", domain.ErrNotConfirmed)
			}
			if doc, parseErr := parseDocument(content); parseErr == nil {
				if hasOwnReply(doc.Find(articleSelector), post, ownHandle, maxConfirmArticles) {
					return nil
				}
			}
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("reply not visible after %s: %w", e.cfg.ConfirmTimeout, domain.ErrNotConfirmed)
		case <-ticker.C:
		}
	}
}

func (e *Executor) record(ctx context.Context, run *AccountRun, post domain.PostID, kind domain.ActionKind, outcome domain.Outcome, note string) {
	err := e.ledger.Record(ctx, domain.ActionRecord{
		AccountID: run.Account.ID,
		PostID:    post,
		Action:    kind,
		Outcome:   outcome,
		Note:      note,
	})
	if err != nil {
		run.Logger.Warn("ledger write failed",
			zap.String("action", string(kind)),
			zap.String("post_id", string(post)),
			zap.String("outcome", string(outcome)),
			zap.Error(err))
	}
}

func (e *Executor) rememberGreeting(ctx context.Context, run *AccountRun, target string, reply domain.ReplySource, kind domain.ActionKind) {
	if kind != domain.ActionComment || reply.Kind != domain.ReplyGreeting || e.greetings == nil {
		return
	}
	if err := e.greetings.Remember(ctx, run.Account.ID, target, reply.Greeting); err != nil {
		run.Logger.Warn("greeting counter not updated", zap.Error(err))
	}
}

func (e *Executor) finish(run *AccountRun, logger *zap.Logger, report *domain.PostReport, result domain.ActionResult) {
	fields := []zap.Field{
		zap.String("action", string(result.Action)),
		zap.String("state", string(result.State)),
	}
	if result.Reason != "" {
		fields = append(fields, zap.String("reason", string(result.Reason)))
	}
	if result.DryRun {
		fields = append(fields, zap.Bool("dry_run", true))
	}
	if result.Note != "" && result.State == domain.StateFailed {
		fields = append(fields, zap.String("note", result.Note))
	}

	if result.State == domain.StateFailed {
		logger.Warn("action", fields...)
	} else {
		logger.Info("action", fields...)
	}

	e.observer.ObserveAction(run.Account.ID, result.Action, result.State, result.Reason)
	report.Results = append(report.Results, result)
}

func skipped(result domain.ActionResult, reason domain.SkipReason) domain.ActionResult {
	result.State = domain.StateSkipped
	result.Reason = reason
	return result
}

func failed(result domain.ActionResult, err error) domain.ActionResult {
	result.State = domain.StateFailed
	result.Note = err.Error()
	return result
}

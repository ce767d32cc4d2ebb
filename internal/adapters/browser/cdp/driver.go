package cdp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultPageTimeout  = 30 * time.Second
	defaultProbeTimeout = 5 * time.Second
)

type Config struct {
	ExecPath     string
	PageTimeout  time.Duration
	WindowWidth  int
	WindowHeight int
	Lang         string
}

func (c Config) withDefaults() Config {
	if c.PageTimeout <= 0 {
		c.PageTimeout = defaultPageTimeout
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth, c.WindowHeight = 1280, 900
	}
	if c.Lang == "" {
		c.Lang = "ja-JP"
	}
	return c
}

// Factory launches a Chrome process bound to a persistent user data directory.
type Factory struct {
	cfg    Config
	logger *zap.Logger

	// start performs the first Run, which allocates the browser. The browser lives as long as the
	// context handed to it, so it must be the session's own context.
	start func(ctx context.Context) error
}

var _ ports.DriverFactory = (*Factory)(nil)

func NewFactory(cfg Config, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Factory{
		cfg:    cfg.withDefaults(),
		logger: logger.With(zap.String("component", "chromedp_driver")),
		start: func(ctx context.Context) error {
			return chromedp.Run(ctx)
		},
	}
}

func (f *Factory) Launch(ctx context.Context, profile domain.BrowserProfile) (ports.Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(profile.Path),
		chromedp.Flag("headless", profile.Headless),
		chromedp.WindowSize(f.cfg.WindowWidth, f.cfg.WindowHeight),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", f.cfg.Lang),
	)
	if f.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(f.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			f.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)

	shutdown := func() {
		cancel()
		allocCancel()
	}

	if err := f.startWithin(ctx, browserCtx, shutdown); err != nil {
		shutdown()
		return nil, fmt.Errorf("start browser for profile %s: %w", profile.Path, err)
	}

	f.logger.Info("browser started",
		zap.String("profile", profile.Path),
		zap.Bool("headless", profile.Headless))

	return &Driver{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		pageTimeout: f.cfg.PageTimeout,
		logger:      f.logger,
	}, nil
}

// startWithin runs the first action on browserCtx itself. Start-up is bounded by the page timeout and
// by ctx through shutdown, which tears the whole browser down, never through a derived context.
func (f *Factory) startWithin(ctx context.Context, browserCtx context.Context, shutdown func()) error {
	timer := time.AfterFunc(f.cfg.PageTimeout, shutdown)
	stop := context.AfterFunc(ctx, shutdown)

	err := f.start(browserCtx)
	timerStopped := timer.Stop()
	ctxStopped := stop()

	switch {
	case !ctxStopped:
		return fmt.Errorf("launch cancelled: %w", context.Cause(ctx))
	case !timerStopped:
		return fmt.Errorf("browser did not start within %s: %w", f.cfg.PageTimeout, context.DeadlineExceeded)
	default:
		return err
	}
}

type Driver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	pageTimeout time.Duration
	logger      *zap.Logger

	mu     sync.Mutex
	closed bool
}

var _ ports.Driver = (*Driver)(nil)

func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.logger.Debug("navigating", zap.String("url", url))
	return d.run(ctx, d.pageTimeout, chromedp.Navigate(url))
}

func (d *Driver) FindAndClick(ctx context.Context, selector string) error {
	d.logger.Debug("clicking", zap.String("selector", selector))
	err := d.run(ctx, d.pageTimeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible),
	)
	return elementError(selector, err)
}

// TypeText focuses selector and inserts text as a single IME-style commit, which keeps emoji intact.
func (d *Driver) TypeText(ctx context.Context, selector string, text string) error {
	err := d.run(ctx, d.pageTimeout,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Focus(selector, chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return input.InsertText(text).Do(ctx)
		}),
	)
	return elementError(selector, err)
}

func (d *Driver) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = d.pageTimeout
	}
	return elementError(selector, d.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)))
}

func (d *Driver) RenderedContent(ctx context.Context) (string, error) {
	var content string
	err := d.run(ctx, d.pageTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		node, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		content, err = dom.GetOuterHTML().WithNodeID(node.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("read rendered page: %w", err)
	}

	return content, nil
}

func (d *Driver) IsAlive(ctx context.Context) bool {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed || d.ctx.Err() != nil {
		return false
	}

	var result int
	probeCtx, cancel := context.WithTimeout(d.ctx, defaultProbeTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(probeCtx, chromedp.Evaluate(`1 + 1`, &result)) == nil && result == 2
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	d.logger.Info("closing browser")
	d.cancel()
	d.allocCancel()
	return nil
}

// run executes actions against the browser tab, bounded by timeout and by the caller's ctx. A failure
// observed after the tab itself went away is reported as a dead session.
func (d *Driver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed || d.ctx.Err() != nil {
		return domain.ErrSessionDead
	}

	runCtx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if d.ctx.Err() != nil || !d.IsAlive(context.Background()) {
		return fmt.Errorf("%w: %w", domain.ErrSessionDead, err)
	}

	return err
}

func elementError(selector string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrSessionDead) {
		return fmt.Errorf("%s: %w", selector, domain.ErrElementNotFound)
	}
	return fmt.Errorf("%s: %w", selector, err)
}

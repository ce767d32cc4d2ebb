package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
	"github.com/bnema/social-actions-cli/internal/ports/mocks"
)

type articleFixture struct {
	author   string
	id       string
	text     string
	social   string
	controls []string
	labels   []string
}

func renderArticle(a articleFixture) string {
	var b strings.Builder
	b.WriteString(`<article data-testid="tweet">`)
	if a.social != "" {
		fmt.Fprintf(&b, `<div data-testid="socialContext"><span>%s</span></div>`, a.social)
	}
	fmt.Fprintf(&b, `<div data-testid="User-Name"><a role="link" href="/%s"><span>%s</span></a>`, a.author, a.author)
	fmt.Fprintf(&b, `<a role="link" href="/%s/status/%s"><time datetime="2026-03-01T09:00:00Z">9h</time></a></div>`, a.author, a.id)
	fmt.Fprintf(&b, `<div data-testid="tweetText"><span>%s</span></div>`, a.text)
	b.WriteString(`<div role="group">`)
	for _, control := range a.controls {
		fmt.Fprintf(&b, `<button data-testid="%s"></button>`, control)
	}
	for _, label := range a.labels {
		fmt.Fprintf(&b, `<button aria-label="%s"></button>`, label)
	}
	b.WriteString(`</div></article>`)
	return b.String()
}

func renderPage(articles ...articleFixture) string {
	var b strings.Builder
	b.WriteString(`<html><body><main>`)
	for _, a := range articles {
		b.WriteString(renderArticle(a))
	}
	b.WriteString(`</main></body></html>`)
	return b.String()
}

func defaultControls() []string {
	return []string{"reply", "retweet", "like", "bookmark"}
}

// fakeDriver serves canned pages by URL and records every interaction.
type fakeDriver struct {
	mu sync.Mutex

	pages   map[string]string
	current string

	navigations []string
	clicks      []string
	typed       []string

	clickErrs map[string]error
	waitErrs  map[string]error
	onClick   func(d *fakeDriver, selector string)

	dead   bool
	closed bool
}

func newFakeDriver(pages map[string]string) *fakeDriver {
	if pages == nil {
		pages = map[string]string{}
	}
	return &fakeDriver{pages: pages, clickErrs: map[string]error{}, waitErrs: map[string]error{}}
}

var _ ports.Driver = (*fakeDriver)(nil)

func (d *fakeDriver) deadErr(op string) error {
	return fmt.Errorf("%s: %w", op, domain.ErrSessionDead)
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dead {
		return d.deadErr("navigate")
	}
	d.current = url
	d.navigations = append(d.navigations, url)
	return nil
}

func (d *fakeDriver) FindAndClick(ctx context.Context, selector string) error {
	d.mu.Lock()
	if d.dead {
		d.mu.Unlock()
		return d.deadErr("click")
	}
	d.clicks = append(d.clicks, selector)
	err := d.clickErrs[selector]
	hook := d.onClick
	d.mu.Unlock()

	if err != nil {
		return err
	}
	if hook != nil {
		hook(d, selector)
	}
	return nil
}

func (d *fakeDriver) TypeText(ctx context.Context, selector string, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dead {
		return d.deadErr("type")
	}
	d.typed = append(d.typed, text)
	return nil
}

func (d *fakeDriver) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dead {
		return d.deadErr("wait")
	}
	return d.waitErrs[selector]
}

func (d *fakeDriver) RenderedContent(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dead {
		return "", d.deadErr("content")
	}
	return d.pages[d.current], nil
}

func (d *fakeDriver) IsAlive(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.dead && !d.closed
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *fakeDriver) kill() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dead = true
}

func (d *fakeDriver) setPage(url, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pages[url] = content
}

func (d *fakeDriver) clickLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

// fakeFactory hands out prepared drivers in order; once they run out it builds fresh ones from pages.
type fakeFactory struct {
	mu       sync.Mutex
	drivers  []*fakeDriver
	pages    map[string]string
	launches []domain.BrowserProfile
	err      error
}

func (f *fakeFactory) Launch(ctx context.Context, profile domain.BrowserProfile) (ports.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.launches = append(f.launches, profile)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.drivers) > 0 {
		d := f.drivers[0]
		f.drivers = f.drivers[1:]
		return d, nil
	}
	pages := make(map[string]string, len(f.pages))
	for k, v := range f.pages {
		pages[k] = v
	}
	return newFakeDriver(pages), nil
}

type fakeLock struct {
	path     string
	held     bool
	released int
}

func (l *fakeLock) Path() string { return l.path }
func (l *fakeLock) Held() bool   { return l.held }
func (l *fakeLock) Release() error {
	l.held = false
	l.released++
	return nil
}

type fakeLocker struct {
	busy     map[string]bool
	acquired []*fakeLock
}

func (l *fakeLocker) Acquire(ctx context.Context, path string, timeout time.Duration) (ports.ProfileLock, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if l.busy[path] {
		return nil, false, nil
	}
	lock := &fakeLock{path: path, held: true}
	l.acquired = append(l.acquired, lock)
	return lock, true, nil
}

type recordingObserver struct {
	mu      sync.Mutex
	actions []string
	status  map[domain.AccountID]domain.AccountStatus
}

func (o *recordingObserver) ObserveAction(account domain.AccountID, action domain.ActionKind, state domain.ActionState, reason domain.SkipReason) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.actions = append(o.actions, fmt.Sprintf("%s/%s/%s/%s", account, action, state, reason))
}

func (o *recordingObserver) ObserveAccount(account domain.AccountID, status domain.AccountStatus, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status == nil {
		o.status = map[domain.AccountID]domain.AccountStatus{}
	}
	o.status[account] = status
}

func steppingClock(t *testing.T, now *time.Time) *mocks.MockClock {
	t.Helper()
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().RunAndReturn(func() time.Time { return *now }).Maybe()
	return clock
}

func actionSet(kinds ...domain.ActionKind) *domain.ActionSet {
	set := domain.NewActionSet(kinds...)
	return &set
}

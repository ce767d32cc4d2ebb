package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/social-actions-cli/internal/application"
	tea "github.com/charmbracelet/bubbletea"
)

const DefaultWatchInterval = 30 * time.Second

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// Loader fetches the statuses shown on every refresh of Watch.
type Loader func(ctx context.Context) ([]application.Status, error)

// statusesMsg carries one load. A failed load keeps the previous statuses on screen.
type statusesMsg struct {
	statuses []application.Status
	at       time.Time
	err      error
}

type refreshMsg struct{}

type model struct {
	statuses []application.Status
	opts     RenderOptions
	styles   styles
	output   string

	// watch mode only
	ctx      context.Context
	load     Loader
	interval time.Duration
	now      func() time.Time
	err      error
}

func newModel(statuses []application.Status, opts RenderOptions) model {
	return model{
		statuses: statuses,
		opts:     opts,
		styles:   newStyles(),
	}
}

func newWatchModel(ctx context.Context, load Loader, opts RenderOptions, interval time.Duration, now func() time.Time) model {
	m := newModel(nil, opts)
	m.ctx = ctx
	m.load = load
	m.interval = interval
	m.now = now
	return m
}

func (m model) watching() bool {
	return m.load != nil
}

func (m model) Init() tea.Cmd {
	if m.watching() {
		return m.fetch()
	}

	statuses := m.statuses
	return func() tea.Msg {
		return statusesMsg{statuses: statuses}
	}
}

func (m model) fetch() tea.Cmd {
	ctx, load, now := m.ctx, m.load, m.now
	return func() tea.Msg {
		statuses, err := load(ctx)
		return statusesMsg{statuses: statuses, at: now(), err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusesMsg:
		m.err = msg.err
		if msg.err == nil {
			m.statuses = msg.statuses
		}
		if !msg.at.IsZero() {
			m.opts.Now = msg.at
		}
		m.output = renderView(m.statuses, m.opts, m.styles)

		if !m.watching() {
			return m, tea.Quit
		}
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg {
			return refreshMsg{}
		})
	case refreshMsg:
		return m, m.fetch()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.watching() {
				return m, m.fetch()
			}
		}
	}

	return m, nil
}

func (m model) View() string {
	if !m.watching() {
		return m.output
	}

	view := m.output
	if m.err != nil {
		view += "\n" + m.styles.warning.Render("refresh failed: "+m.err.Error())
	}
	footer := fmt.Sprintf("updated %s, every %s. r refresh, q quit", m.opts.Now.Format("15:04:05"), m.interval)
	return view + "\n" + m.styles.footer.Render(footer)
}

func Render(statuses []application.Status, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(statuses, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}

// Watch redraws the budgets from load every interval until ctx ends or the user quits.
func Watch(ctx context.Context, in io.Reader, out io.Writer, load Loader, opts RenderOptions, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	p := tea.NewProgram(
		newWatchModel(ctx, load, opts, interval, time.Now),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("watch status: %w", err)
	}
	return nil
}

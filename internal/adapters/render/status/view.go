package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/social-actions-cli/internal/application"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

type RenderOptions struct {
	Now time.Time
	// IdleAfter marks accounts whose last ledger record is older than this. Zero disables it.
	IdleAfter time.Duration
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Social Action Budgets"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts configured."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, opts RenderOptions, s styles) string {
	parts := []string{
		s.account.Render(accountTitle(status.Account)),
		s.activity.Render(activityLine(status, opts, s)),
	}

	parts = append(parts, budgetLines(status, opts, s)...)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func accountTitle(account domain.Account) string {
	handle := domain.NormalizeHandle(account.Handle)
	if handle == "" || strings.EqualFold(handle, string(account.ID)) {
		return fmt.Sprintf("@%s", account.ID)
	}
	return fmt.Sprintf("%s (@%s)", account.ID, handle)
}

func activityLine(status application.Status, opts RenderOptions, s styles) string {
	if status.LastRecord == nil {
		return "ledger: empty"
	}

	last := status.LastRecord
	line := fmt.Sprintf("ledger: %d records, last %s %s on %s at %s",
		status.Records, last.Action, last.Outcome, last.PostID, formatClock(last.At, opts.Now))

	if opts.IdleAfter > 0 && !opts.Now.IsZero() && opts.Now.Sub(last.At) > opts.IdleAfter {
		line += " " + s.warning.Render("[idle]")
	}

	return line
}

func budgetLines(status application.Status, opts RenderOptions, s styles) []string {
	if len(status.Budgets) == 0 {
		return []string{s.empty.Render("no actions enabled")}
	}

	width := 0
	for _, budget := range status.Budgets {
		width = max(width, len(budget.Action))
	}

	lines := make([]string, 0, len(status.Budgets))
	for _, budget := range status.Budgets {
		lines = append(lines, budgetLine(budget, width, opts, s))
	}
	return lines
}

func budgetLine(budget application.ActionBudget, width int, opts RenderOptions, s styles) string {
	label := s.budgetKey.Render(fmt.Sprintf("%-*s", width+1, string(budget.Action)+":"))

	if budget.Unlimited() {
		return lipgloss.JoinHorizontal(
			lipgloss.Top,
			label,
			" ",
			s.budgetMeta.Render(fmt.Sprintf("%d this hour (no limit)", budget.Used)),
		)
	}

	leftPercent := clampPercent(100 - budget.Percent())
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))
	meta := percentStyle.Render(fmt.Sprintf("%d/%d used", budget.Used, budget.Limit))

	segments := []string{label, " ", renderProgressBar(budget.Percent(), barWidth, s), " ", meta}
	if !budget.ResetsAt.IsZero() {
		resetStyle := lipgloss.NewStyle().Foreground(resetTimeColor(budget.ResetsAt, opts.Now))
		segments = append(segments, " ", resetStyle.Render(fmt.Sprintf("(%s)", formatResetRelative(budget.ResetsAt, opts.Now))))
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, segments...)
	if budget.Used >= budget.Limit {
		line += " " + s.exhausted.Render("[exhausted]")
	}
	return line
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatClock(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return at.Format("15:04")
	}

	return at.Format("15:04 on 02 Jan")
}

func formatResetRelative(resetsAt, now time.Time) string {
	if now.IsZero() {
		return "resets " + formatClock(resetsAt, now)
	}
	if !resetsAt.After(now) {
		return "reset now"
	}

	minutes := int(math.Ceil(resetsAt.Sub(now).Minutes()))
	if minutes < 1 {
		minutes = 1
	}

	return fmt.Sprintf("resets in %d min (%s)", minutes, resetsAt.Format("15:04"))
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale: 240 is faded, 255 is bright white.
	baseColor := 240.0
	targetColor := 255.0

	interpolated := baseColor + (targetColor-baseColor)*normalized
	return lipgloss.Color(fmt.Sprintf("%d", int(interpolated)))
}

// resetTimeColor brightens as the reset approaches across the one hour window.
func resetTimeColor(resetsAt, now time.Time) lipgloss.Color {
	if now.IsZero() || resetsAt.Before(now) {
		return lipgloss.Color("255")
	}

	inverted := domain.RateWindow.Seconds() - resetsAt.Sub(now).Seconds()
	return interpolateColor(inverted, 0, domain.RateWindow.Seconds())
}

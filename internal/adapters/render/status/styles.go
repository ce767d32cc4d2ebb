package status

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	account    lipgloss.Style
	activity   lipgloss.Style
	warning    lipgloss.Style
	exhausted  lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	budgetKey  lipgloss.Style
	budgetMeta lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	footer     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		activity:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		exhausted:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Reverse(true),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		budgetKey:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		budgetMeta: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		footer:     lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}

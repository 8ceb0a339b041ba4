package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette and symbols. Renderers pull from Current().
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Tab, ActiveTab, Button        lipgloss.Style

	BoxChecked string // done item, activating unchecks it
	Cart       string // pending item, activating marks it bought
	Trash      string
	SymDone    string
	SymPending string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),

		Selected:  lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:      lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Tab:       lipgloss.NewStyle().Faint(true).Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12")).Padding(0, 2),
		Button:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 2),

		BoxChecked: "☑",
		Cart:       "🛒",
		Trash:      "🗑",
		SymDone:    "✔",
		SymPending: "•",
	}
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title: plain.Bold(true), Muted: plain, Accent: plain,
		Success: plain, Error: plain.Bold(true), Pending: plain,

		Selected:  plain.Reverse(true),
		Done:      plain,
		Tab:       plain.Padding(0, 2),
		ActiveTab: plain.Bold(true).Underline(true).Padding(0, 2),
		Button:    plain.Border(lipgloss.NormalBorder()).Padding(0, 2),

		BoxChecked: "[x]",
		Cart:       "[ ]",
		Trash:      "del",
		SymDone:    "x",
		SymPending: "-",
	}
}

// SetTheme switches the palette; unknown names fall back to classic.
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

func Current() Theme { return current }

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ThemeName string

const (
	ThemePorcelain ThemeName = "porcelain"
	ThemeMidnight  ThemeName = "midnight"
)

type Theme struct {
	Name ThemeName

	// Colors
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor
	BorderHi    lipgloss.AdaptiveColor

	// Chrome
	TopBarTitle lipgloss.Style
	TopBarMeta  lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	InputBoxF   lipgloss.Style
	Spinner     lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style

	// List
	ItemTitle    lipgloss.Style
	ItemTitleSel lipgloss.Style
	ItemMeta     lipgloss.Style
	ItemPreview  lipgloss.Style
	Cursor       lipgloss.Style
	TagBadge     lipgloss.Style
	OverflowTag  lipgloss.Style
	EmptyState   lipgloss.Style

	// Detail
	DetailTitle   lipgloss.Style
	DetailMeta    lipgloss.Style
	RoleUser      lipgloss.Style
	RoleAssistant lipgloss.Style
}

func NewTheme() Theme {
	name := ThemeName(os.Getenv("PENSIEVE_THEME"))
	if name == "" {
		name = ThemePorcelain
	}
	if os.Getenv("PENSIEVE_NO_COLOR") == "1" {
		return NewNoColorTheme()
	}
	switch name {
	case ThemeMidnight:
		return newMidnightTheme()
	default:
		return newPorcelainTheme()
	}
}

func NewNoColorTheme() Theme {
	t := Theme{
		Name:        "no-color",
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		Border:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
	}
	return t.build()
}

func newPorcelainTheme() Theme {
	t := Theme{
		Name:        ThemePorcelain,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		Accent:      lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#46d1b7"},
		Error:       lipgloss.AdaptiveColor{Light: "#b42318", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3a3a3a"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
	}
	return t.build()
}

func newMidnightTheme() Theme {
	t := Theme{
		Name:        ThemeMidnight,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#eaeaea"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#374151", Dark: "#b7b7b7"},
		Accent:      lipgloss.AdaptiveColor{Light: "#0ea5e9", Dark: "#5cc8ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#059669", Dark: "#46d1b7"},
		Error:       lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#2a2a2a"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#7aa2ff"},
	}
	return t.build()
}

func (t Theme) build() Theme {
	accent := t.Accent
	if accent.Dark == "" {
		accent = t.TextPrimary
	}
	errColor := t.Error
	if errColor.Dark == "" {
		errColor = t.TextPrimary
	}
	success := t.Success
	if success.Dark == "" {
		success = t.TextPrimary
	}

	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.TopBarMeta = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.StatusInfo = lipgloss.NewStyle().Foreground(success)
	t.StatusError = lipgloss.NewStyle().Bold(true).Foreground(errColor)

	t.ItemTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.ItemTitleSel = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.ItemMeta = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.ItemPreview = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Cursor = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.TagBadge = lipgloss.NewStyle().Foreground(accent)
	t.OverflowTag = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.EmptyState = lipgloss.NewStyle().Foreground(t.TextMuted).Align(lipgloss.Center).Padding(1, 0)

	t.DetailTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.DetailMeta = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.RoleUser = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.RoleAssistant = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	return t
}

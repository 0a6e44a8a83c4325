// Package tuistyles holds the colors and lipgloss styles shared by the TUI
// packages. It sits below tui, scenes and components to avoid import cycles.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

var (
	ColorPrimary   = lipgloss.Color("#5A9BD5")
	ColorSecondary = lipgloss.Color("#8E7CC3")
	ColorAccent    = lipgloss.Color("#F6B26B")
	ColorSuccess   = lipgloss.Color("#6AA84F")
	ColorDanger    = lipgloss.Color("#E06666")
	ColorInfo      = lipgloss.Color("#76A5AF")

	ColorForeground = lipgloss.Color("#E6E6E6")
	ColorMuted      = lipgloss.Color("#8C8C8C")
	ColorBorder     = lipgloss.Color("#4A4A4A")
)

// category colors follow catalog.CategoryOrder
var categoryColors = map[domain.Category]lipgloss.Color{
	domain.CategoryFinancial: ColorSuccess,
	domain.CategoryMedical:   ColorDanger,
	domain.CategoryChildcare: ColorAccent,
	domain.CategorySupport:   ColorSecondary,
}

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true).
			Padding(1, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)
)

// MetricTrendStyle returns a style for trend indicators
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// CategoryStyle colors a category tag
func CategoryStyle(c domain.Category) lipgloss.Style {
	color, ok := categoryColors[c]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(color)
}

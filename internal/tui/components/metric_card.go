package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuistyles"
)

// MetricCard displays a single figure with a label and an optional change
type MetricCard struct {
	Label       string
	Value       string
	Change      int64 // signed yen delta; zero hides the trend line
	Description string
	Width       int
}

// NewMetricCard creates a new metric card
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{
		Label: label,
		Value: value,
		Width: 26,
	}
}

// WithChange shows a yen delta under the value
func (m *MetricCard) WithChange(delta int64) *MetricCard {
	m.Change = delta
	return m
}

// WithDescription adds a description line
func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

// WithWidth sets the card width
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value)

	if m.Change != 0 {
		up := m.Change > 0
		amount := m.Change
		if !up {
			amount = -amount
		}
		content += "\n" + tuistyles.MetricTrendStyle(up).Render(
			fmt.Sprintf("%s %s", tuistyles.TrendIndicator(up), output.FormatManYen(amount)))
	}

	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// MetricRow renders cards side by side
func MetricRow(cards ...*MetricCard) string {
	rendered := make([]string, len(cards))
	for i, card := range cards {
		rendered[i] = card.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

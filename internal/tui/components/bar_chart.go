package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuistyles"
)

// Bar is one labelled value of a bar chart
type Bar struct {
	Label string
	Value int64
}

// BarChart draws horizontal bars scaled to the largest value
type BarChart struct {
	Title string
	Bars  []Bar
	Width int // width of the longest bar in cells
}

// NewBarChart creates a new bar chart
func NewBarChart(title string) *BarChart {
	return &BarChart{Title: title, Width: 40}
}

// Add appends a bar
func (c *BarChart) Add(label string, value int64) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Value: value})
	return c
}

// WithWidth sets the maximum bar width
func (c *BarChart) WithWidth(width int) *BarChart {
	c.Width = width
	return c
}

// Render returns the chart, one line per bar
func (c *BarChart) Render() string {
	if len(c.Bars) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var top int64
	labelWidth := 0
	for _, b := range c.Bars {
		if b.Value > top {
			top = b.Value
		}
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(tuistyles.TableHeaderStyle.Render(c.Title))
		sb.WriteString("\n\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(labelWidth).Align(lipgloss.Right)
	barStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)

	for _, b := range c.Bars {
		sb.WriteString(labelStyle.Render(b.Label))
		sb.WriteString(" │ ")
		sb.WriteString(barStyle.Render(strings.Repeat("█", barLength(b.Value, top, c.Width))))
		sb.WriteString(" ")
		sb.WriteString(output.FormatManYen(b.Value))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// barLength scales value into [0, width]; any positive value gets at least one cell
func barLength(value, top int64, width int) int {
	if value <= 0 || top <= 0 || width <= 0 {
		return 0
	}
	n := int(value * int64(width) / top)
	if n == 0 {
		n = 1
	}
	return n
}

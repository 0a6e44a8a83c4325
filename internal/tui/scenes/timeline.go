package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/tui/components"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuistyles"
)

// TimelineModel shows the life-plan projection and each program's age window
type TimelineModel struct {
	plan    *calculation.LifePlan
	windows []calculation.ProgramWindow
	width   int
	height  int
}

// NewTimelineModel creates a new timeline scene model
func NewTimelineModel() *TimelineModel {
	return &TimelineModel{}
}

// SetPlan replaces the projection shown
func (m *TimelineModel) SetPlan(plan *calculation.LifePlan, windows []calculation.ProgramWindow) {
	m.plan = plan
	m.windows = windows
}

// SetSize updates the scene dimensions
func (m *TimelineModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the timeline scene; it is read-only
func (m *TimelineModel) Update(msg tea.Msg) (*TimelineModel, tea.Cmd) {
	return m, nil
}

// View renders the timeline scene
func (m *TimelineModel) View() string {
	if m.plan == nil || len(m.plan.Years) == 0 {
		return "No projection available."
	}

	first := m.plan.Years[0]
	cards := components.MetricRow(
		components.NewMetricCard("This Year", output.FormatManYen(first.TotalEstimate)),
		components.NewMetricCard(fmt.Sprintf("%d-Year Total", len(m.plan.Years)), output.FormatManYen(m.plan.CumulativeTotal)),
	)

	barWidth := 40
	if m.width > 0 {
		barWidth = max(10, m.width-40)
	}
	chart := components.NewBarChart("Estimated support by year").WithWidth(barWidth)
	for _, y := range m.plan.Years {
		chart.Add(yearLabel(y), y.TotalEstimate)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		chart.Render(),
		"",
		m.renderWindows(),
	)
}

func (m *TimelineModel) renderWindows() string {
	if len(m.windows) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render("Program age windows"))
	sb.WriteString("\n")
	for _, w := range m.windows {
		sb.WriteString(tuistyles.TableCellStyle.Render(fmt.Sprintf("%-36s %2d-%-2d  %s",
			truncate(w.Name, 36), w.MinAge, w.MaxAge,
			tuistyles.CategoryStyle(w.Category).Render(string(w.Category)))))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// yearLabel renders "2026 (1y, 4y)": the year and each child's age then
func yearLabel(y calculation.YearEstimate) string {
	ages := make([]string, len(y.ChildAges))
	for i, a := range y.ChildAges {
		ages[i] = a.String()
	}
	return fmt.Sprintf("%d (%s)", y.Date.Year(), strings.Join(ages, ", "))
}

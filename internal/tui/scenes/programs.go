package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/tui/components"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuistyles"
)

// ProgramsModel is the ranked list of eligible programs
type ProgramsModel struct {
	result        *domain.SimulatorResult
	selectedIndex int
	width         int
	height        int
}

// NewProgramsModel creates a new programs scene model
func NewProgramsModel() *ProgramsModel {
	return &ProgramsModel{}
}

// SetResult replaces the displayed result and resets the selection when it no longer fits
func (m *ProgramsModel) SetResult(result *domain.SimulatorResult) {
	m.result = result
	if result == nil || m.selectedIndex >= len(result.EligiblePrograms) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ProgramsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedSlug returns the slug under the cursor
func (m *ProgramsModel) SelectedSlug() string {
	if m.result == nil || m.selectedIndex < 0 || m.selectedIndex >= len(m.result.EligiblePrograms) {
		return ""
	}
	return m.result.EligiblePrograms[m.selectedIndex].Program.Slug
}

// Update handles messages for the programs scene
func (m *ProgramsModel) Update(msg tea.Msg) (*ProgramsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result == nil {
		return m, nil
	}

	last := len(m.result.EligiblePrograms) - 1
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < last {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(last, 0)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		slug := m.SelectedSlug()
		if slug == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.ProgramSelectedMsg{Slug: slug} }
	}
	return m, nil
}

// View renders the programs scene
func (m *ProgramsModel) View() string {
	if m.result == nil || len(m.result.EligiblePrograms) == 0 {
		return `No eligible programs for this household.

Check the birth dates in the household file.`
	}

	summary := components.MetricRow(
		components.NewMetricCard("Annual Estimate", output.FormatManYen(m.result.TotalAnnualEstimate)),
		components.NewMetricCard("Cash Programs", fmt.Sprintf("%d", len(m.result.FinancialPrograms()))),
		components.NewMetricCard("Services", fmt.Sprintf("%d", len(m.result.ServicePrograms()))),
	)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderList(),
		"  ",
		m.renderPreview(m.result.EligiblePrograms[m.selectedIndex]),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		summary,
		"",
		content,
		"",
		tuistyles.InfoStyle.Render("↑/k up • ↓/j down • Enter details • g top • G bottom"),
	)
}

func (m *ProgramsModel) renderList() string {
	lines := make([]string, len(m.result.EligiblePrograms))
	for i, ep := range m.result.EligiblePrograms {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == m.selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		lines[i] = style.Render(fmt.Sprintf("%s%2d. %-34s %10s",
			prefix, i+1, truncate(ep.Program.Name, 34), shortAmount(ep.EstimatedAmount)))
	}
	return strings.Join(lines, "\n")
}

func (m *ProgramsModel) renderPreview(ep domain.EligibleProgram) string {
	var sb strings.Builder
	sb.WriteString(tuistyles.SelectedItemStyle.Render(ep.Program.Name))
	sb.WriteString("\n")
	sb.WriteString(tuistyles.CategoryStyle(ep.Program.Category).Render(catalog.CategoryLabels[ep.Program.Category]))
	sb.WriteString("\n\n")
	sb.WriteString(output.FormatProgramAmount(ep.EstimatedAmount))
	sb.WriteString("\n\n")
	sb.WriteString(tuistyles.MetricLabelStyle.Render("Next step"))
	sb.WriteString("\n")
	sb.WriteString(ep.ActionItems[0])

	width := 40
	if m.width > 0 {
		width = max(30, m.width-60)
	}
	return tuistyles.BorderStyle.Width(width).Render(sb.String())
}

func shortAmount(amount int64) string {
	if amount == 0 {
		return "service"
	}
	return output.FormatManYen(amount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/output"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuimsg"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuistyles"
)

// DetailModel shows one eligible program with its application guidance
type DetailModel struct {
	program *domain.EligibleProgram
	offset  int
	width   int
	height  int
}

// NewDetailModel creates a new detail scene model
func NewDetailModel() *DetailModel {
	return &DetailModel{}
}

// SetProgram selects the program to show and scrolls back to the top
func (m *DetailModel) SetProgram(ep *domain.EligibleProgram) {
	m.program = ep
	m.offset = 0
}

// SetSize updates the scene dimensions
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update scrolls the detail text
func (m *DetailModel) Update(msg tea.Msg) (*DetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.offset < len(m.lines())-1 {
			m.offset++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("backspace", "left"))):
		return m, func() tea.Msg { return tuimsg.BackMsg{} }
	}
	return m, nil
}

// View renders the visible window of the detail text
func (m *DetailModel) View() string {
	if m.program == nil {
		return "No program selected.\n\nPress ESC to go back."
	}

	lines := m.lines()
	visible := len(lines)
	if m.height > 6 {
		visible = m.height - 6
	}
	end := min(m.offset+visible, len(lines))

	return strings.Join(lines[m.offset:end], "\n") + "\n\n" +
		tuistyles.InfoStyle.Render("↑/k ↓/j scroll • ← back • ESC back")
}

func (m *DetailModel) lines() []string {
	if m.program == nil {
		return nil
	}
	p := m.program.Program

	var sb strings.Builder
	sb.WriteString(tuistyles.SelectedItemStyle.Render(p.Name))
	sb.WriteString("  ")
	sb.WriteString(tuistyles.CategoryStyle(p.Category).Render(catalog.CategoryLabels[p.Category]))
	sb.WriteString("\n")
	if p.Description != "" {
		sb.WriteString(p.Description + "\n")
	}

	section(&sb, "Estimate")
	sb.WriteString(output.FormatProgramAmount(m.program.EstimatedAmount) + "\n")
	if p.Amount.Description != "" {
		sb.WriteString(tuistyles.MetricLabelStyle.Render(p.Amount.Description) + "\n")
	}

	lo, hi := p.AgeWindow(0, 18)
	sb.WriteString(fmt.Sprintf("Ages %d to %d\n", lo, hi))
	if p.Deadline != nil {
		sb.WriteString("Deadline: " + *p.Deadline + "\n")
	}
	if p.ApplicationURL != "" {
		sb.WriteString("Apply: " + p.ApplicationURL + "\n")
	}

	section(&sb, "What to do")
	for _, item := range m.program.ActionItems {
		sb.WriteString("• " + item + "\n")
	}

	if len(p.ApplicationSteps) > 0 {
		section(&sb, "Application steps")
		for _, step := range p.ApplicationSteps {
			sb.WriteString(fmt.Sprintf("%d. %s: %s\n", step.Step, step.Title, step.Description))
			if step.Tip != nil {
				sb.WriteString("   tip: " + *step.Tip + "\n")
			}
		}
	}

	if len(p.RequiredDocuments) > 0 {
		section(&sb, "Documents")
		for _, doc := range p.RequiredDocuments {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", doc.Name, doc.ObtainHow))
		}
	}

	if len(p.ApplicationMethods) > 0 {
		section(&sb, "How to apply")
		for _, method := range p.ApplicationMethods {
			sb.WriteString(fmt.Sprintf("• %s: %s\n", method.Label, method.Description))
		}
	}

	if len(p.FAQ) > 0 {
		section(&sb, "FAQ")
		for _, faq := range p.FAQ {
			sb.WriteString("Q: " + faq.Question + "\n")
			sb.WriteString("A: " + faq.Answer + "\n")
		}
	}

	if p.Notes != "" {
		section(&sb, "Notes")
		sb.WriteString(p.Notes + "\n")
	}

	return strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
}

func section(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(tuistyles.TableHeaderStyle.Render(title))
	sb.WriteString("\n")
}

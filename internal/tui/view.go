package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ Running simulation..."))
	}

	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue, q to quit.", m.err.Error())))
	}

	var content string
	switch m.currentScene {
	case ScenePrograms:
		content = m.programsModel.View()
	case SceneDetail:
		content = m.detailModel.View()
	case SceneTimeline:
		content = m.timelineModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(m.height-4, 1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("benefitsim - Child Benefit Navigator")

	crumb := m.currentScene.String()
	if m.result != nil {
		crumb = fmt.Sprintf("%s / %s / reference %s",
			crumb, m.householdSummary(), m.result.ReferenceDate.Format(domain.DateLayout))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) householdSummary() string {
	if m.config == nil {
		return ""
	}
	names := m.config.ChildNames
	if len(names) == 0 {
		return fmt.Sprintf("%d children", len(m.config.Input.Children))
	}
	return strings.Join(names, ", ")
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("p", "programs"),
		formatShortcut("t", "timeline"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	return BorderStyle.Render(`benefitsim - Child Benefit Navigator

KEYBOARD SHORTCUTS:
  p        Eligible programs
  t        Life-plan timeline
  ?        Show this help
  ESC      Back to programs
  q/Ctrl+C Quit

PROGRAMS:
  ↑/k ↓/j  Move the cursor
  g / G    Top / bottom
  Enter    Show details and action items

DETAIL:
  ↑/k ↓/j  Scroll
  ←        Back`)
}

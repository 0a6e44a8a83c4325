package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.programsModel.SetSize(msg.Width, msg.Height)
		m.detailModel.SetSize(msg.Width, msg.Height)
		m.timelineModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case SimulationCompleteMsg:
		m.loading = false
		m.config = msg.Config
		m.result = msg.Result
		m.plan = msg.Plan
		m.programsModel.SetResult(msg.Result)
		m.timelineModel.SetPlan(msg.Plan, calculation.ProgramWindows(msg.Result))
		return m, nil

	case tuimsg.ProgramSelectedMsg:
		if m.result == nil {
			return m, nil
		}
		for i := range m.result.EligiblePrograms {
			if m.result.EligiblePrograms[i].Program.Slug == msg.Slug {
				m.detailModel.SetProgram(&m.result.EligiblePrograms[i])
				return m, navigate(SceneDetail)
			}
		}
		return m, nil

	case tuimsg.BackMsg:
		return m, navigate(ScenePrograms)
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	// any other key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != ScenePrograms {
			return m, navigate(ScenePrograms)
		}

	case "p":
		if m.currentScene != ScenePrograms {
			return m, navigate(ScenePrograms)
		}

	case "t":
		if m.currentScene != SceneTimeline {
			return m, navigate(SceneTimeline)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case ScenePrograms:
		m.programsModel, cmd = m.programsModel.Update(msg)
	case SceneDetail:
		m.detailModel, cmd = m.detailModel.Update(msg)
	case SceneTimeline:
		m.timelineModel, cmd = m.timelineModel.Update(msg)
	}
	return m, cmd
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

package tui

import (
	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	ScenePrograms Scene = iota
	SceneDetail
	SceneTimeline
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case ScenePrograms:
		return "Programs"
	case SceneDetail:
		return "Program Detail"
	case SceneTimeline:
		return "Timeline"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// SimulationCompleteMsg carries the evaluated household file
type SimulationCompleteMsg struct {
	Config *config.Configuration
	Result *domain.SimulatorResult
	Plan   *calculation.LifePlan
}

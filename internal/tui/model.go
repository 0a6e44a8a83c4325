package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/config"
	"github.com/rgehrsitz/benefitsim/internal/domain"
	"github.com/rgehrsitz/benefitsim/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	householdPath string
	engine        *calculation.SimulationEngine
	years         int

	config *config.Configuration
	result *domain.SimulatorResult
	plan   *calculation.LifePlan

	programsModel *scenes.ProgramsModel
	detailModel   *scenes.DetailModel
	timelineModel *scenes.TimelineModel

	err     error
	loading bool
}

// NewModel creates the application model for a household file.
// The engine supplies the default catalog and the clock.
func NewModel(householdPath string, engine *calculation.SimulationEngine) Model {
	return Model{
		currentScene:  ScenePrograms,
		householdPath: householdPath,
		engine:        engine,
		years:         calculation.DefaultProjectionYears,
		programsModel: scenes.NewProgramsModel(),
		detailModel:   scenes.NewDetailModel(),
		timelineModel: scenes.NewTimelineModel(),
		width:         80,
		height:        24,
		loading:       true,
	}
}

// Init starts loading the household (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadHouseholdCmd(m.householdPath, m.engine, m.years)
}

// loadHouseholdCmd reads the household file and runs the simulation and projection
func loadHouseholdCmd(path string, engine *calculation.SimulationEngine, years int) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		sim := engine
		if cfg.CatalogPath != "" {
			c, err := catalog.LoadFromFile(cfg.CatalogPath)
			if err != nil {
				return ErrorMsg{Err: err}
			}
			sim = &calculation.SimulationEngine{Catalog: c, Logger: engine.Logger, Now: engine.Now}
		}

		ref := sim.Now()
		if cfg.ReferenceDate != nil {
			ref = *cfg.ReferenceDate
		}

		result, err := sim.RunAt(cfg.Input, ref)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		plan, err := sim.ProjectLifePlan(cfg.Input, ref, years)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		return SimulationCompleteMsg{Config: cfg, Result: result, Plan: plan}
	}
}

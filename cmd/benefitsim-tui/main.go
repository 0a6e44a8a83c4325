package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/benefitsim/internal/calculation"
	"github.com/rgehrsitz/benefitsim/internal/catalog"
	"github.com/rgehrsitz/benefitsim/internal/tui"
)

func main() {
	householdPath := ""
	if len(os.Args) > 1 {
		householdPath = os.Args[1]
	} else {
		fmt.Println("Usage: benefitsim-tui <household-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(householdPath); os.IsNotExist(err) {
		fmt.Printf("Error: Household file not found: %s\n", householdPath)
		os.Exit(1)
	}

	c, err := catalog.Default()
	if err != nil {
		fmt.Printf("Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	model := tui.NewModel(householdPath, calculation.NewSimulationEngine(c))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

package calculation

import "github.com/rgehrsitz/benefitsim/internal/domain"

const (
	// GenericActionItem is used for programs that list no procedure of their own
	GenericActionItem = "Contact the ward office for details."

	// SingleParentActionItem is appended for single-parent households
	SingleParentActionItem = "Also check the additional support available to single-parent families."
)

// BuildActionItems returns the next steps for a program, never empty.
// The program's own steps come first; single-parent households get one
// supplementary line at the end regardless of the program.
func BuildActionItems(program *domain.Program, input domain.SimulatorInput) []string {
	items := make([]string, 0, len(program.ActionItems)+1)

	if len(program.ActionItems) > 0 {
		items = append(items, program.ActionItems...)
	} else {
		items = append(items, GenericActionItem)
	}

	if input.IsSingleParent() {
		items = append(items, SingleParentActionItem)
	}

	return items
}

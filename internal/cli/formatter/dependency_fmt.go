package formatter

import (
	"fmt"

	"github.com/alexanderramin/trestle/internal/domain"
)

// FormatDependencyList renders edges by item code. codes maps item IDs to
// WBS codes; unknown IDs fall back to a truncated ID.
func FormatDependencyList(deps []domain.Dependency, codes map[string]string) string {
	if len(deps) == 0 {
		return Dim("No dependencies.")
	}
	label := func(id string) string {
		if c, ok := codes[id]; ok {
			return c
		}
		return TruncID(id)
	}
	headers := []string{"PREDECESSOR", "", "SUCCESSOR", "TYPE", "LAG"}
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			label(d.PredecessorID),
			Dim("→"),
			label(d.SuccessorID),
			StyleBlue.Render(string(d.Type)),
			FormatLag(d.Lag),
		})
	}
	return RenderTableAligned(headers, rows, map[int]bool{4: true})
}

// FormatLag renders a lag in days; negative lags are leads.
func FormatLag(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("+%dd", days)
	case days < 0:
		return StyleYellow.Render(fmt.Sprintf("%dd", days))
	default:
		return Dim("0d")
	}
}

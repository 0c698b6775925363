package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/wbs"
)

// FormatScheduleChanges summarises a propagation run.
func FormatScheduleChanges(changes []wbs.Change, passes int, dryRun bool) string {
	var b strings.Builder
	verb := "Moved"
	if dryRun {
		verb = "Would move"
	}
	if len(changes) == 0 {
		b.WriteString(StyleGreen.Render("✔ Schedule already satisfies every dependency"))
		b.WriteString(Dim(fmt.Sprintf(" (%d %s)", passes, plural(passes, "pass", "passes"))) + "\n")
		return b.String()
	}

	b.WriteString(Bold(fmt.Sprintf("%s %d %s", verb, len(changes), plural(len(changes), "item", "items"))))
	b.WriteString(Dim(fmt.Sprintf(" in %d %s", passes, plural(passes, "pass", "passes"))) + "\n\n")

	headers := []string{"CODE", "FROM", "", "TO", "END", "SHIFT"}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		shift := int(c.ToStartDate.Sub(c.FromStartDate).Hours() / 24)
		rows = append(rows, []string{
			c.Code,
			Dim(FormatDate(c.FromStartDate)),
			Dim("→"),
			StyleFg.Render(FormatDate(c.ToStartDate)),
			FormatDate(c.ToEndDate),
			StyleYellow.Render(fmt.Sprintf("+%dd", shift)),
		})
	}
	b.WriteString(RenderTableAligned(headers, rows, map[int]bool{5: true}))
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

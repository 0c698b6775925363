package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single row in a WBS tree display.
type TreeItem struct {
	Code    string
	Title   string
	Badge   string
	Percent float64
	Detail  string
	// Prefix holds the connector glyphs for the row, already laid out.
	Prefix string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// TreeItemsFromNodes lays out connectors for a depth-first walk.
func TreeItemsFromNodes(flat []wbs.FlatNode) []TreeItem {
	items := make([]TreeItem, 0, len(flat))
	// lastAt[d] records whether the most recent node at depth d was the
	// last of its siblings; it decides between a pipe and a blank.
	var lastAt []bool
	for _, fn := range flat {
		if len(lastAt) <= fn.Depth {
			lastAt = append(lastAt, make([]bool, fn.Depth+1-len(lastAt))...)
		}
		lastAt[fn.Depth] = fn.IsLast

		var prefix strings.Builder
		if fn.Depth > 0 {
			for d := 1; d < fn.Depth; d++ {
				if lastAt[d] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(treePipe)
				}
			}
			if fn.IsLast {
				prefix.WriteString(treeCorner)
			} else {
				prefix.WriteString(treeBranch)
			}
		}

		item := fn.Node.Item
		items = append(items, TreeItem{
			Code:    item.Code,
			Title:   item.Title,
			Badge:   WbsTypeBadge(item.Type),
			Percent: item.PercentComplete,
			Detail:  fmt.Sprintf("%s → %s", FormatDate(item.StartDate), FormatDate(item.EndDate)),
			Prefix:  prefix.String(),
		})
	}
	return items
}

// RenderTree renders tree rows with right-aligned date details. Complete
// items get a green ✔ prefix and started items an amber ▶ prefix.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		detail  string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		title := StyleDim.Render(item.Code+" ") + item.Title
		statusPrefix := ""
		switch {
		case item.Percent >= 100:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(item.Code + " " + item.Title)
		case item.Percent > 0:
			statusPrefix = StyleYellowBold.Render("▶ ")
		}

		content := item.Prefix + statusPrefix + title
		if item.Badge != "" {
			content += " " + item.Badge
		}
		lines[idx].content = content
		if item.Detail != "" {
			lines[idx].detail = StyleBlue.Render(fmt.Sprintf("[ %s ]", item.Detail)) +
				" " + RenderCompactBar(item.Percent/100, 8, item.Percent >= 100)
		}
		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.detail == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.detail + "\n")
	}
	return b.String()
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type browseKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Collapse key.Binding
	Detail   key.Binding
	Quit     key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Collapse: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space", "fold")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Collapse, k.Detail, k.Top, k.Bottom, k.Quit}
}

// browseModel is a scrollable, foldable WBS tree.
type browseModel struct {
	title string
	flat  []wbs.FlatNode
	// collapsed holds item IDs whose children are hidden.
	collapsed map[string]bool

	cursor     int
	showDetail bool
	keys       browseKeyMap
	vp         viewport.Model
	width      int
	height     int
	quitting   bool
}

func newBrowseModel(title string, roots []*wbs.Node) browseModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
	return browseModel{
		title:     title,
		flat:      wbs.Flatten(roots),
		collapsed: make(map[string]bool),
		keys:      defaultBrowseKeyMap(),
		vp:        vp,
	}
}

// visible returns the rows not hidden under a collapsed ancestor.
func (m browseModel) visible() []wbs.FlatNode {
	out := make([]wbs.FlatNode, 0, len(m.flat))
	hideBelow := -1
	for _, fn := range m.flat {
		if hideBelow >= 0 {
			if fn.Depth > hideBelow {
				continue
			}
			hideBelow = -1
		}
		out = append(out, fn)
		if m.collapsed[fn.Node.Item.ID] && len(fn.Node.Children) > 0 {
			hideBelow = fn.Depth
		}
	}
	return out
}

func (m browseModel) current() (wbs.FlatNode, bool) {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return wbs.FlatNode{}, false
	}
	return rows[m.cursor], true
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		n := len(m.visible())
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < n-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = max(n-1, 0)
		case key.Matches(msg, m.keys.Collapse):
			if fn, ok := m.current(); ok && len(fn.Node.Children) > 0 {
				id := fn.Node.Item.ID
				m.collapsed[id] = !m.collapsed[id]
			}
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

// refresh re-renders the tree into the viewport and keeps the cursor row
// on screen.
func (m *browseModel) refresh() {
	m.vp.Width = m.width
	m.vp.Height = max(m.height-lipgloss.Height(m.footer())-1, 1)

	rows := m.visible()
	lines := strings.Split(strings.TrimRight(formatter.RenderTree(formatter.TreeItemsFromNodes(rows)), "\n"), "\n")
	for i := range lines {
		if i == m.cursor {
			lines[i] = formatter.StyleHeader.Render("› ") + lines[i]
		} else {
			lines[i] = "  " + lines[i]
		}
	}
	if len(rows) == 0 {
		lines = []string{formatter.Dim("  No WBS items.")}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))

	switch {
	case m.cursor < m.vp.YOffset:
		m.vp.SetYOffset(m.cursor)
	case m.cursor >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m browseModel) footer() string {
	var b strings.Builder
	if m.showDetail {
		if fn, ok := m.current(); ok {
			b.WriteString(formatter.FormatWbsItem(&fn.Node.Item) + "\n")
		}
	}
	help := make([]string, 0, len(m.keys.bindings()))
	for _, kb := range m.keys.bindings() {
		h := kb.Help()
		help = append(help, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	b.WriteString(strings.Join(help, formatter.Dim(" · ")))
	return b.String()
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	header := formatter.Header(m.title) + "  " + scrollIndicator(m.vp)
	return header + "\n" + m.vp.View() + "\n" + m.footer()
}

// scrollIndicator returns a dim scroll position string for the header.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

func newWbsBrowseCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the WBS tree interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("browse needs an interactive terminal; use `trestle wbs tree`")
			}
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			roots, err := app.Wbs.Tree(ctx, p.ID)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("%s · %s", p.ShortID, p.Name)
			_, err = tea.NewProgram(newBrowseModel(title, roots), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

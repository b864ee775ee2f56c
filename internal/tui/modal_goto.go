package tui

import (
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// GoToModal is a command palette that fuzzy-matches menu entries.
type GoToModal struct {
	ctx      ModalContext
	input    textinput.Model
	viewport viewport.Model
	items    []workspace.MenuItem
	matches  []workspace.MenuItem
	cursor   int
}

func NewGoToModal(ctx ModalContext) *GoToModal {
	ti := textinput.New()
	ti.Placeholder = "Go to..."
	ti.Prompt = "> "
	ti.Focus()
	g := &GoToModal{ctx: ctx, input: ti, viewport: viewport.New(80, 20), items: workspace.MenuItems()}
	g.filter()
	return g
}

func (g *GoToModal) ID() string { return "goto" }

// Matches returns the current candidates, best first.
func (g *GoToModal) Matches() []workspace.MenuItem { return g.matches }

// filter ranks menu labels against the input. An empty input lists everything in menu order.
func (g *GoToModal) filter() {
	g.cursor = 0
	pattern := g.input.Value()
	if pattern == "" {
		g.matches = g.items
		return
	}
	labels := make([]string, len(g.items))
	for i, it := range g.items {
		labels[i] = it.Label
	}
	found := fuzzy.Find(pattern, labels)
	g.matches = make([]workspace.MenuItem, 0, len(found))
	for _, f := range found {
		g.matches = append(g.matches, g.items[f.Index])
	}
}

func (g *GoToModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		g.move(wheelDelta(g.ctx, msg))
		return false, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "escape":
			return true, nil
		case "enter":
			if g.cursor < len(g.matches) {
				return true, openTabCmd(workspace.MenuTab(g.matches[g.cursor]))
			}
			return false, nil
		case "up", "ctrl+k":
			g.move(-1)
			return false, nil
		case "down", "ctrl+j":
			g.move(1)
			return false, nil
		}
		var cmd tea.Cmd
		before := g.input.Value()
		g.input, cmd = g.input.Update(msg)
		if g.input.Value() != before {
			g.filter()
		}
		return false, cmd
	}
	return false, nil
}

func (g *GoToModal) move(delta int) {
	if len(g.matches) == 0 {
		return
	}
	g.cursor = min(max(g.cursor+delta, 0), len(g.matches)-1)
}

func (g *GoToModal) View(width, height int) string {
	content := helpStyle.Render("No matching views.")
	if len(g.matches) > 0 {
		labels := make([]string, len(g.matches))
		for i, it := range g.matches {
			labels[i] = it.Label
		}
		content = renderChoices(labels, g.cursor)
	}
	return renderModalFrame(&g.viewport, modalFrame{
		Title:   "Go To",
		Input:   g.input.View(),
		Content: content,
		Status:  []string{"type to filter", "Enter: Open", "ESC: Close"},
	}, width, height)
}

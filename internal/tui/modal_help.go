package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModal lists every key binding by group.
type HelpModal struct {
	ctx      ModalContext
	keys     KeyMap
	viewport viewport.Model
}

func NewHelpModal(keys KeyMap, ctx ModalContext) *HelpModal {
	return &HelpModal{ctx: ctx, keys: keys, viewport: viewport.New(80, 20)}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "?", "h", "escape", "esc":
			return true, nil
		}
	}
	scrollViewport(&h.viewport, h.ctx, msg)
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderModalFrame(&h.viewport, modalFrame{
		Title:   "Dealer365 Help",
		Content: h.content(),
		Status:  []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "?/h: Toggle Help", "ESC: Close"},
	}, width, height)
}

func (h *HelpModal) content() string {
	k := h.keys
	groups := []struct {
		title    string
		bindings []key.Binding
	}{
		{"GLOBAL", []key.Binding{k.Help, k.Quit, k.ForceQuit, k.Escape, k.ToggleSidebar, k.CycleRole}},
		{"NAVIGATION", []key.Binding{k.NextSection, k.PrevSection, k.Up, k.Down, k.Home, k.End, k.Enter, k.NextTab, k.PrevTab, k.CloseTab}},
		{"TOOLS", []key.Binding{k.Search, k.GoTo, k.Copilot, k.Reload, k.Console, k.Inspect, k.NewDeal}},
		{"DEAL DESK", []key.Binding{k.DeskMode, k.DeskDownUp, k.DeskDownDown, k.DeskTermUp, k.DeskTermDown,
			k.DeskTier, k.DeskTierBack, k.DeskTradeIn, k.DeskSuggestion, k.DeskManager, k.DeskFinalize}},
	}

	heading := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading.Render(g.title) + "\n")
		for _, bind := range g.bindings {
			hb := bind.Help()
			fmt.Fprintf(&b, "  %-12s - %s\n", hb.Key, hb.Desc)
		}
	}
	b.WriteString("\nMouse: click the sidebar to open a view, wheel to move the selection.\n")
	return b.String()
}

package tui

import tea "github.com/charmbracelet/bubbletea"

// Deck is one bordered panel of a workspace view.
type Deck interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool, selIdx int) string
	ContentLines(ctx ViewContext) int
	ItemCount() int
	OnSelect(ctx ViewContext, selIdx int) tea.Cmd // returns nil or ActionMsg
}

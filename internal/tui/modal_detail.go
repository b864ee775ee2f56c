package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DetailModal displays read-only record content.
type DetailModal struct {
	id       string
	title    string
	content  string
	ctx      ModalContext
	viewport viewport.Model
}

func NewDetailModal(id, title, content string, ctx ModalContext) *DetailModal {
	return &DetailModal{
		id:       id,
		title:    title,
		content:  content,
		ctx:      ctx,
		viewport: viewport.New(80, 20),
	}
}

func (d *DetailModal) ID() string { return d.id }

func (d *DetailModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "escape" || k.String() == "q") {
		return true, nil
	}
	scrollViewport(&d.viewport, d.ctx, msg)
	return false, nil
}

func (d *DetailModal) View(width, height int) string {
	return renderModalFrame(&d.viewport, modalFrame{Title: d.title, Content: d.content}, width, height)
}

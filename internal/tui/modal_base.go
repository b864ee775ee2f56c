package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var defaultModalStatus = []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "ESC: Close"}

// modalFrame is what a modal puts inside the shared chrome.
type modalFrame struct {
	Title   string
	Input   string // optional line under the title, e.g. a text input
	Content string
	Status  []string
	Bottom  bool // keep the pane scrolled to the end
}

// renderModalFrame renders a centred, bordered modal with a scrollable content pane.
func renderModalFrame(vp *viewport.Model, f modalFrame, width, height int) string {
	modalWidth := max(20, width-8)   // 4 chars margin on each side
	modalHeight := max(8, height-4)  // 2 lines margin top and bottom
	contentWidth := modalWidth - 4   // modal borders
	contentHeight := modalHeight - 4 // header + status

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(f.Title)

	parts := []string{header}
	if f.Input != "" {
		parts = append(parts, f.Input)
		contentHeight--
	}

	vp.Width = contentWidth
	vp.Height = max(1, contentHeight-2)
	vp.SetContent(f.Content)
	if f.Bottom {
		vp.GotoBottom()
	}

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(max(1, contentHeight-2)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	status := f.Status
	if len(status) == 0 {
		status = defaultModalStatus
	}
	statusBar := lipgloss.NewStyle().
		Foreground(ColorGray).
		Render(strings.Join(status, " | "))

	parts = append(parts, contentPane, statusBar)
	modal := lipgloss.JoinVertical(lipgloss.Left, parts...)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// scrollViewport applies the shared scroll keys and wheel events to vp.
// It reports whether msg was consumed.
func scrollViewport(vp *viewport.Model, ctx ModalContext, msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			vp.ScrollUp(1)
		case "down", "j":
			vp.ScrollDown(1)
		case "pgup":
			vp.HalfPageUp()
		case "pgdown":
			vp.HalfPageDown()
		default:
			return false
		}
		return true

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false
		}
		up := msg.Button == tea.MouseButtonWheelUp
		down := msg.Button == tea.MouseButtonWheelDown
		if !up && !down {
			return false
		}
		if ctx.ReverseScrollWheel {
			up, down = down, up
		}
		if up {
			vp.ScrollUp(1)
		} else {
			vp.ScrollDown(1)
		}
		return true
	}
	return false
}

// wheelDelta turns a wheel event into a cursor step for list modals.
func wheelDelta(ctx ModalContext, msg tea.MouseMsg) int {
	if msg.Action != tea.MouseActionPress {
		return 0
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	}
	if ctx.ReverseScrollWheel {
		delta = -delta
	}
	return delta
}

// renderChoices renders a cursor list for modal content.
func renderChoices(items []string, cursor int) string {
	lines := make([]string, len(items))
	for i, it := range items {
		if i == cursor {
			lines[i] = selectedRowStyle.Render("> " + it)
			continue
		}
		lines[i] = rowStyle.Render("  " + it)
	}
	return strings.Join(lines, "\n")
}

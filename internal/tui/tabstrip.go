package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	maxTabTitle  = 24
	tabCloseMark = " ×"
)

// tabSpan is the horizontal extent of one visible tab in the strip.
type tabSpan struct {
	id       string
	start    int // first column
	end      int // one past the last column
	closeAt  int // first column of the close mark, or -1
	rendered string
}

// tabStripLayout places the tabs that fit in width. The window scrolls so
// the active tab is always visible; hidden tabs on either side show as "…".
func (m *WorkspaceModel) tabStripLayout(width int) (spans []tabSpan, leading, trailing bool) {
	tabs := m.nav.Tabs()
	if len(tabs) == 0 {
		return nil, false, false
	}
	activeID := m.nav.ActiveID()

	all := make([]tabSpan, len(tabs))
	widths := make([]int, len(tabs))
	activeIdx := 0
	for i, t := range tabs {
		title := runewidth.Truncate(t.Title, maxTabTitle, "…")
		style := tabStyle
		if t.ID == activeID {
			style = activeTabStyle
			activeIdx = i
		}
		closeAt := -1
		if t.Closable {
			// Offset from the tab's start: left padding plus the title.
			closeAt = style.GetPaddingLeft() + runewidth.StringWidth(title)
			title += tabCloseMark
		}
		r := style.Render(title)
		all[i] = tabSpan{id: t.ID, closeAt: closeAt, rendered: r}
		widths[i] = lipgloss.Width(r)
	}

	ellipsis := lipgloss.Width(helpStyle.Render("…"))
	avail := max(1, width-2*ellipsis)

	first := 0
	used := 0
	for i := 0; i <= activeIdx; i++ {
		used += widths[i]
	}
	for used > avail && first < activeIdx {
		used -= widths[first]
		first++
	}

	x := 0
	if first > 0 {
		leading = true
		x = ellipsis
	}
	used = 0
	for i := first; i < len(all); i++ {
		if used+widths[i] > avail && i > activeIdx {
			trailing = true
			break
		}
		s := all[i]
		s.start = x
		s.end = x + widths[i]
		if s.closeAt >= 0 {
			s.closeAt += x
		}
		spans = append(spans, s)
		x += widths[i]
		used += widths[i]
	}
	return spans, leading, trailing
}

// renderTabStrip renders the open tabs, highlighting the active one.
func (m *WorkspaceModel) renderTabStrip(width int) string {
	spans, leading, trailing := m.tabStripLayout(width)
	var parts []string
	if leading {
		parts = append(parts, helpStyle.Render("…"))
	}
	for _, s := range spans {
		parts = append(parts, s.rendered)
	}
	if trailing {
		parts = append(parts, helpStyle.Render("…"))
	}
	return lipgloss.NewStyle().
		Width(width).
		MaxWidth(width).
		Render(strings.Join(parts, ""))
}

// tabAt returns the tab under column x of the strip and whether x falls
// on its close mark.
func (m *WorkspaceModel) tabAt(width, x int) (id string, onClose, ok bool) {
	spans, _, _ := m.tabStripLayout(width)
	for _, s := range spans {
		if x < s.start || x >= s.end {
			continue
		}
		return s.id, s.closeAt >= 0 && x >= s.closeAt, true
	}
	return "", false, false
}

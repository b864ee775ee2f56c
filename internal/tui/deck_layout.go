package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// WideDeck is implemented by decks that take a full row of the grid.
type WideDeck interface {
	Wide() bool
}

func isWide(d Deck) bool {
	w, ok := d.(WideDeck)
	return ok && w.Wide()
}

// deckRows groups deck indices into grid rows: wide decks sit alone, the rest
// pair up two per row.
func (m *WorkspaceModel) deckRows() [][]int {
	var rows [][]int
	var pending []int
	flush := func() {
		if len(pending) > 0 {
			rows = append(rows, pending)
			pending = nil
		}
	}
	for i, d := range m.decks {
		if isWide(d) || len(m.decks) == 1 {
			flush()
			rows = append(rows, []int{i})
			continue
		}
		pending = append(pending, i)
		if len(pending) == 2 {
			flush()
		}
	}
	flush()
	return rows
}

func (m *WorkspaceModel) deckHeight(idx int) int {
	return max(4, m.decks[idx].ContentLines(m.viewContext())+3)
}

func (m *WorkspaceModel) deckRowHeights() []int {
	rows := m.deckRows()
	heights := make([]int, len(rows))
	for r, row := range rows {
		h := 4
		for _, idx := range row {
			h = max(h, m.deckHeight(idx))
		}
		heights[r] = h
	}
	return heights
}

// deckRowHeightsFor fits the rows into height. Rows keep their natural height
// when everything fits; otherwise the space is shared out evenly.
func (m *WorkspaceModel) deckRowHeightsFor(height int) []int {
	required := m.deckRowHeights()
	if len(required) == 0 {
		return nil
	}

	totalReq := 0
	for _, h := range required {
		totalReq += h
	}
	if totalReq <= height {
		// Give the slack to the last row.
		required[len(required)-1] += height - totalReq
		return required
	}

	rows := len(required)
	perRow := max(3, height/rows)
	scaled := make([]int, rows)
	for i := range scaled {
		scaled[i] = perRow
	}
	scaled[rows-1] = max(3, height-perRow*(rows-1))
	return scaled
}

// deckAt maps a point in the deck area to a deck index.
func (m *WorkspaceModel) deckAt(contentWidth, areaHeight, x, y int) (int, bool) {
	if len(m.decks) == 0 || x < 0 || y < 0 {
		return 0, false
	}

	rows := m.deckRows()
	rowY := 0
	for r, rowHeight := range m.deckRowHeightsFor(areaHeight) {
		if y < rowY+rowHeight {
			row := rows[r]
			if len(row) == 1 {
				return row[0], true
			}
			stride := max(1, (contentWidth+1)/len(row))
			col := min(x/stride, len(row)-1)
			return row[col], true
		}
		rowY += rowHeight
	}
	return 0, false
}

// deckTitle appends a loading marker to a deck title while data is in flight.
func deckTitle(title string, ctx ViewContext) string {
	if ctx.Loading {
		title += " …"
	}
	return title
}

// renderDecksGrid renders the decks of the active tab.
func (m *WorkspaceModel) renderDecksGrid(width, height int) string {
	if width < 20 {
		return "Terminal too narrow"
	}
	if len(m.decks) == 0 {
		return renderEmptyPagePlaceholder(width, height, m.nav.ActiveTab().Title)
	}

	// Each deck adds 2 chars for borders (left+right) on top of its Width.
	borderWidth := 2
	rows := m.deckRows()
	rowHeights := m.deckRowHeightsFor(height)
	ctx := m.viewContext()

	rendered := make([]string, 0, len(rows))
	for r, row := range rows {
		h := rowHeights[r]
		cols := len(row)
		deckWidth := width - borderWidth
		if cols > 1 {
			deckWidth = max(25, (width-(cols-1)-cols*borderWidth)/cols)
		}

		panels := make([]string, 0, cols)
		for _, idx := range row {
			active := m.activeSection == SectionDecks && m.activeDeckIdx == idx
			panels = append(panels, m.decks[idx].Render(ctx, deckWidth, h-2, active, m.deckSelIdx[idx]))
		}
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, withGaps(panels)...))
	}

	return lipgloss.NewStyle().
		Height(height).
		MaxHeight(height).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rendered...))
}

// renderEmptyPagePlaceholder fills views that have nothing to show yet.
func renderEmptyPagePlaceholder(width, height int, title string) string {
	text := lipgloss.JoinVertical(lipgloss.Center,
		deckTitleStyle.Render(title),
		helpStyle.Render("Coming soon"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

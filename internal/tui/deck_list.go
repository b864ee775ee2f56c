package tui

import (
	"strings"

	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// listRow is one selectable line. Selecting it runs onSelect, or opens the
// tab when onSelect is nil.
type listRow struct {
	cells    []string
	status   string
	open     *workspace.Tab
	onSelect func() tea.Cmd
}

// ListDeck renders rows as aligned columns with a coloured status column.
type ListDeck struct {
	id    string
	title string
	rows  []listRow
	empty string
}

// NewListDeck creates a list deck.
func NewListDeck(id, title string, rows []listRow) *ListDeck {
	return &ListDeck{id: id, title: title, rows: rows, empty: "Nothing to show"}
}

func (d *ListDeck) ID() string    { return d.id }
func (d *ListDeck) Title() string { return d.title }

func (d *ListDeck) ContentLines(_ ViewContext) int { return max(3, len(d.rows)) }

func (d *ListDeck) ItemCount() int { return len(d.rows) }

func (d *ListDeck) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if selIdx < 0 || selIdx >= len(d.rows) {
		return nil
	}
	row := d.rows[selIdx]
	switch {
	case row.onSelect != nil:
		return row.onSelect()
	case row.open != nil:
		return openTabCmd(*row.open)
	}
	return nil
}

func (d *ListDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d.title, ctx))

	if len(d.rows) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, helpStyle.Render(d.empty)))
	}

	visible := max(1, height-1)
	offset := 0
	if active && selIdx >= visible {
		offset = selIdx - visible + 1
	}
	end := min(len(d.rows), offset+visible)

	lines := formatRows(d.rows, width-2)
	out := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		row := d.rows[i]
		line := lines[i]
		if active && i == selIdx {
			out = append(out, selectedRowStyle.Render(runewidth.FillRight(line, width-2)))
			continue
		}
		if row.status == "" {
			out = append(out, rowStyle.Render(line))
			continue
		}
		// Status is the trailing column; colour it separately.
		cut := strings.LastIndex(line, row.status)
		if cut < 0 {
			out = append(out, rowStyle.Render(line))
			continue
		}
		out = append(out, rowStyle.Render(line[:cut])+
			lipgloss.NewStyle().Foreground(statusColor(row.status)).Render(line[cut:]))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(out, "\n")))
}

// formatRows pads every column to its widest cell and truncates the line to width.
func formatRows(rows []listRow, width int) []string {
	var widths []int
	for _, r := range rows {
		for i, c := range r.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(c))
		}
	}

	lines := make([]string, len(rows))
	for ri, r := range rows {
		var b strings.Builder
		for i, c := range r.cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(r.cells)-1 || r.status != "" {
				b.WriteString(runewidth.FillRight(c, widths[i]))
			} else {
				b.WriteString(c)
			}
		}
		if r.status != "" {
			b.WriteString("  ")
			b.WriteString(r.status)
		}
		lines[ri] = runewidth.Truncate(b.String(), max(1, width), "…")
	}
	return lines
}

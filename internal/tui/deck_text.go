package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// textLine is a key/value line. A line without a key renders as prose.
type textLine struct {
	key   string
	value string
	color lipgloss.Color
}

func kv(key, value string) textLine { return textLine{key: key, value: value} }

func note(text string) textLine { return textLine{value: text} }

// TextDeck renders fixed key/value content such as a record detail.
type TextDeck struct {
	id      string
	title   string
	lines   []textLine
	wide    bool
	onEnter func() tea.Cmd
}

// NewTextDeck creates a text deck.
func NewTextDeck(id, title string, lines ...textLine) *TextDeck {
	return &TextDeck{id: id, title: title, lines: lines}
}

func (d *TextDeck) ID() string    { return d.id }
func (d *TextDeck) Title() string { return d.title }
func (d *TextDeck) Wide() bool    { return d.wide }

func (d *TextDeck) ContentLines(_ ViewContext) int { return max(1, len(d.lines)) }

func (d *TextDeck) ItemCount() int { return 0 }

func (d *TextDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	if d.onEnter == nil {
		return nil
	}
	return d.onEnter()
}

func (d *TextDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d.title, ctx))

	inner := max(1, width-2)
	out := make([]string, 0, len(d.lines))
	for _, l := range d.lines {
		vs := valueStyle
		if l.color != "" {
			vs = vs.Foreground(l.color)
		}
		if l.key == "" {
			out = append(out, helpStyle.Render(runewidth.Truncate(l.value, inner, "…")))
			continue
		}
		keyWidth := min(keyStyle.GetWidth(), inner/2)
		val := runewidth.Truncate(l.value, max(1, inner-keyWidth), "…")
		out = append(out, keyStyle.Width(keyWidth).Render(runewidth.Truncate(l.key, keyWidth-1, ""))+vs.Render(val))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(out, "\n")))
}

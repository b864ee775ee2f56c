package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/duckdb"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sqlResultMsg struct {
	seq    int
	result duckdb.QueryResult
	err    error
}

// SQLConsoleModal runs read-only queries against the data store.
type SQLConsoleModal struct {
	ctx      ModalContext
	console  Console
	input    textinput.Model
	viewport viewport.Model

	seq     int
	running bool
	result  *duckdb.QueryResult
	err     error
}

func NewSQLConsoleModal(c Console, ctx ModalContext) *SQLConsoleModal {
	ti := textinput.New()
	ti.Prompt = "sql> "
	ti.Placeholder = "SELECT id, status FROM repair_orders"
	ti.CharLimit = 1024
	ti.Focus()
	return &SQLConsoleModal{ctx: ctx, console: c, input: ti, viewport: viewport.New(80, 20)}
}

func (s *SQLConsoleModal) ID() string { return "sql-console" }

func (s *SQLConsoleModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case sqlResultMsg:
		if msg.seq == s.seq {
			s.running = false
			s.err = msg.err
			s.result = nil
			if msg.err == nil {
				res := msg.result
				s.result = &res
			}
			s.viewport.GotoTop()
		}
		return false, nil
	case tea.MouseMsg:
		scrollViewport(&s.viewport, s.ctx, msg)
		return false, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "escape":
			return true, nil
		case "enter":
			return false, s.run(s.input.Value())
		case "up", "down", "pgup", "pgdown":
			scrollViewport(&s.viewport, s.ctx, msg)
			return false, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return false, cmd
	}
	return false, nil
}

func (s *SQLConsoleModal) run(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" || s.console == nil {
		return nil
	}
	s.seq++
	s.running = true
	seq, console := s.seq, s.console
	return func() tea.Msg {
		res, err := console.ExecuteQuery(query)
		return sqlResultMsg{seq: seq, result: res, err: err}
	}
}

// formatQueryResult renders a result as aligned columns.
func formatQueryResult(res duckdb.QueryResult, width int) string {
	if len(res.Columns) == 0 {
		return helpStyle.Render("Query returned no columns.")
	}
	rows := make([]listRow, 0, len(res.Rows)+1)
	rows = append(rows, listRow{cells: res.Columns})
	for _, r := range res.Rows {
		cells := make([]string, len(r))
		for i, v := range r {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, listRow{cells: cells})
	}
	lines := formatRows(rows, width)
	lines[0] = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(lines[0])

	footer := fmt.Sprintf("%d row(s)", len(res.Rows))
	if res.Truncated {
		footer += fmt.Sprintf(", truncated at %d", duckdb.MaxQueryRows)
	}
	return strings.Join(lines, "\n") + "\n\n" + helpStyle.Render(footer)
}

func (s *SQLConsoleModal) View(width, height int) string {
	var content string
	switch {
	case s.running:
		content = helpStyle.Render("Running...")
	case s.err != nil:
		content = lipgloss.NewStyle().Foreground(ColorRed).Render("Error: " + s.err.Error())
	case s.result != nil:
		content = formatQueryResult(*s.result, max(20, width-14))
	default:
		content = helpStyle.Render("Read-only console. SELECT and WITH queries only.")
	}
	return renderModalFrame(&s.viewport, modalFrame{
		Title:   "SQL Console",
		Input:   s.input.View(),
		Content: content,
		Status:  []string{"Enter: Run", "up/down/Wheel: Scroll", "ESC: Close"},
	}, width, height)
}

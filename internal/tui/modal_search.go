package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// roSearchResultMsg carries the results of one search round trip.
type roSearchResultMsg struct {
	seq     int
	results []model.RepairOrder
	err     error
}

// ROSearchModal is the header search over repair orders.
type ROSearchModal struct {
	ctx      ModalContext
	store    model.ServiceQuerier
	input    textinput.Model
	viewport viewport.Model

	seq     int
	results []model.RepairOrder
	cursor  int
	err     error
}

func NewROSearchModal(store model.ServiceQuerier, ctx ModalContext) *ROSearchModal {
	ti := textinput.New()
	ti.Placeholder = "Search ROs, VIN, or customers..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()
	return &ROSearchModal{ctx: ctx, store: store, input: ti, viewport: viewport.New(80, 20)}
}

func (s *ROSearchModal) ID() string { return "ro-search" }

func (s *ROSearchModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case roSearchResultMsg:
		if msg.seq == s.seq {
			s.results, s.err = msg.results, msg.err
			s.cursor = 0
		}
		return false, nil

	case tea.MouseMsg:
		s.moveCursor(wheelDelta(s.ctx, msg))
		return false, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "escape":
			return true, nil
		case "enter":
			if s.cursor < len(s.results) {
				return true, openTabCmd(workspace.RepairOrderTab(s.results[s.cursor].ID))
			}
			return false, nil
		case "up", "ctrl+k":
			s.moveCursor(-1)
			return false, nil
		case "down", "ctrl+j":
			s.moveCursor(1)
			return false, nil
		}

		before := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() == before {
			return false, cmd
		}
		return false, tea.Batch(cmd, s.search(s.input.Value()))
	}
	return false, nil
}

func (s *ROSearchModal) moveCursor(delta int) {
	if len(s.results) == 0 {
		return
	}
	s.cursor = min(max(s.cursor+delta, 0), len(s.results)-1)
}

// search queries the store off the update loop. Blank terms clear the results.
func (s *ROSearchModal) search(term string) tea.Cmd {
	s.seq++
	seq := s.seq
	store := s.store
	if strings.TrimSpace(term) == "" || store == nil {
		s.results, s.err = nil, nil
		return nil
	}
	return func() tea.Msg {
		ros, err := store.SearchRepairOrders(term, model.DefaultSearchLimit)
		return roSearchResultMsg{seq: seq, results: ros, err: err}
	}
}

func (s *ROSearchModal) View(width, height int) string {
	var content string
	switch {
	case s.err != nil:
		content = lipgloss.NewStyle().Foreground(ColorRed).Render("Search failed: " + s.err.Error())
	case strings.TrimSpace(s.input.Value()) == "":
		content = helpStyle.Render("Type to search repair orders by id, customer, vehicle or VIN.")
	case len(s.results) == 0:
		content = helpStyle.Render("No repair orders match.")
	default:
		items := make([]string, len(s.results))
		for i, ro := range s.results {
			items[i] = fmt.Sprintf("%-12s %-18s %-28s %s", ro.ID, ro.CustomerName, ro.Vehicle, ro.Status)
		}
		content = renderChoices(items, s.cursor)
	}
	return renderModalFrame(&s.viewport, modalFrame{
		Title:   "Search Repair Orders",
		Input:   s.input.View(),
		Content: content,
		Status:  []string{"up/down: Select", "Enter: Open", "ESC: Close"},
	}, width, height)
}

package tui

import (
	"context"
	"time"

	"github.com/tinytelemetry/dealer365/internal/dashboard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoadingPlaceholder renders an animated loading indicator.
// The frame is selected based on the current time so it animates on re-render.
func renderLoadingPlaceholder(width, height int) string {
	frame := spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]

	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	text := loadingStyle.Render(frame + " Loading...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// handleSpinnerTick re-schedules spinner ticks while data is loading.
func (m *WorkspaceModel) handleSpinnerTick() (tea.Model, tea.Cmd) {
	return m, m.startSpinnerIfNeeded()
}

// startSpinnerIfNeeded schedules a spinner tick if a load is in flight.
func (m *WorkspaceModel) startSpinnerIfNeeded() tea.Cmd {
	if m.loadInFlight {
		return spinnerTick()
	}
	return nil
}

// loadDataCmd queries everything the views render. The dashboard snapshot
// loads concurrently; the remaining lists follow. Partial results are kept.
func (m *WorkspaceModel) loadDataCmd() tea.Cmd {
	store := m.store
	console := m.console
	if store == nil {
		return func() tea.Msg { return dataLoadedMsg{} }
	}

	return func() tea.Msg {
		msg := dataLoadedMsg{}

		// collectErr records the first store error encountered.
		collectErr := func(err error) {
			if err != nil && msg.lastError == "" {
				msg.lastError = err.Error()
			}
		}

		snap, err := dashboard.Load(context.Background(), store)
		collectErr(err)
		msg.data.snap = snap

		if v, err := store.Customers(); err == nil {
			msg.data.customers = v
		} else {
			collectErr(err)
		}
		if v, err := store.Activities(); err == nil {
			msg.data.activities = v
		} else {
			collectErr(err)
		}
		if v, err := store.Quotes(); err == nil {
			msg.data.quotes = v
		} else {
			collectErr(err)
		}
		if v, err := store.Deals(); err == nil {
			msg.data.deals = v
		} else {
			collectErr(err)
		}
		if console != nil {
			if v, err := console.TableRowCounts(); err == nil {
				msg.data.tableCounts = v
			} else {
				collectErr(err)
			}
		}
		return msg
	}
}

// applyData installs a completed load and rebuilds the active decks.
func (m *WorkspaceModel) applyData(msg dataLoadedMsg) {
	m.loadInFlight = false
	m.loaded = true
	m.data = msg.data
	if msg.lastError != "" {
		m.lastError = msg.lastError
		m.lastErrorAt = m.now()
	} else {
		m.lastError = ""
	}
	m.persistViewState()
	m.rebuildDecks()
}

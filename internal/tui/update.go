package tui

import (
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles messages.
func (m *WorkspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case ActionMsg:
		return m, m.handleAction(msg)

	case dataLoadedMsg:
		m.applyData(msg)
		if msg.lastError != "" {
			m.log.Warn("data load incomplete", zap.String("error", msg.lastError))
		}
		return m, nil

	case assistantReplyMsg:
		m.transcript.Reply(msg.pending)
		return m, nil

	case SpinnerTickMsg:
		return m.handleSpinnerTick()
	}

	// Results of async modal work (searches, queries) go to the top modal.
	if modal := m.TopModal(); modal != nil {
		return m, m.updateModal(modal, msg)
	}
	return m, nil
}

func (m *WorkspaceModel) handleAction(msg ActionMsg) tea.Cmd {
	switch msg.Action {
	case ActionOpenTab:
		if t, ok := msg.Payload.(workspace.Tab); ok {
			m.openTab(t)
		}
	case ActionPushModal:
		if modal, ok := msg.Payload.(Modal); ok {
			m.PushModal(modal)
		}
	case ActionStatus:
		if text, ok := msg.Payload.(string); ok {
			m.setNotice(text)
			m.refreshDecks()
		}
	case ActionReload:
		return m.reload()
	}
	return nil
}

// handleMouseEvent processes mouse interactions.
func (m *WorkspaceModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		return m, m.updateModal(modal, msg)
	}

	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.handleMouseClick(msg.X, msg.Y)
	case tea.MouseButtonWheelUp:
		if m.reverseScrollWheel {
			m.moveSelection(1)
		} else {
			m.moveSelection(-1)
		}
	case tea.MouseButtonWheelDown:
		if m.reverseScrollWheel {
			m.moveSelection(-1)
		} else {
			m.moveSelection(1)
		}
	}
	return m, nil
}

// handleMouseClick focuses the sidebar entry, tab or deck under the pointer.
func (m *WorkspaceModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	if m.nav.SidebarOpen() {
		if x < sidebarWidth {
			m.activeSection = SectionSidebar
			if idx, ok := m.sidebarCursorAtMouseRow(y); ok {
				m.sidebarCursor = idx
				m.activateSidebarCursor()
			}
			return m, nil
		}
		x -= sidebarWidth
	}

	if y >= headerHeight && y < headerHeight+tabStripHeight {
		if id, onClose, ok := m.tabAt(m.contentWidth(), x); ok {
			if onClose {
				m.closeTab(id)
			} else {
				m.activateTab(id)
				m.activeSection = SectionDecks
			}
		}
		return m, nil
	}

	y -= headerHeight + tabStripHeight
	if y < 0 {
		return m, nil
	}
	if idx, ok := m.deckAt(m.contentWidth(), m.decksHeight(), x, y); ok {
		m.activeSection = SectionDecks
		m.activeDeckIdx = idx
	}
	return m, nil
}

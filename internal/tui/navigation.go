package tui

import (
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress dispatches key events: modal stack first, then the deal desk
// controls of an active deal editor, then global workspace shortcuts.
func (m *WorkspaceModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	// Modal on stack gets the event first.
	if modal := m.TopModal(); modal != nil {
		return m, m.updateModal(modal, msg)
	}

	if m.activeSection == SectionDecks {
		if handled, cmd := m.handleDeskKey(msg); handled {
			return m, cmd
		}
	}

	return m.handleGlobalKeys(msg)
}

// updateModal forwards msg to modal and pops it when it asks to close.
// Closing a modal can change desk or inspection state, so the decks are rebuilt.
func (m *WorkspaceModel) updateModal(modal Modal, msg tea.Msg) tea.Cmd {
	pop, cmd := modal.Update(msg)
	if pop {
		m.PopModal()
		m.refreshDecks()
	}
	return cmd
}

// handleGlobalKeys handles workspace-level shortcuts.
// Only reached when no modal is on the stack.
func (m *WorkspaceModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m.keys, m.modalContext()))

	case key.Matches(msg, k.Escape):
		if m.activeSection == SectionSidebar && len(m.decks) > 0 {
			m.activeSection = SectionDecks
		}

	case key.Matches(msg, k.ToggleSidebar):
		m.nav.ToggleSidebar()
		if !m.nav.SidebarOpen() && m.activeSection == SectionSidebar {
			m.activeSection = SectionDecks
		}

	case key.Matches(msg, k.CycleRole):
		m.cycleRole()
		m.setNotice("Role: " + m.nav.Role().Label())

	case key.Matches(msg, k.NextSection):
		m.nextSection()

	case key.Matches(msg, k.PrevSection):
		m.prevSection()

	case key.Matches(msg, k.Up):
		m.moveSelection(-1)

	case key.Matches(msg, k.Down):
		m.moveSelection(1)

	case key.Matches(msg, k.Home):
		m.jumpSelection(false)

	case key.Matches(msg, k.End):
		m.jumpSelection(true)

	case key.Matches(msg, k.Enter):
		return m.showDetails()

	case key.Matches(msg, k.NextTab):
		m.cycleTab(1)

	case key.Matches(msg, k.PrevTab):
		m.cycleTab(-1)

	case key.Matches(msg, k.CloseTab):
		m.closeTab(m.nav.ActiveID())

	case key.Matches(msg, k.Search):
		m.PushModal(NewROSearchModal(m.store, m.modalContext()))

	case key.Matches(msg, k.GoTo):
		m.PushModal(NewGoToModal(m.modalContext()))

	case key.Matches(msg, k.Copilot):
		m.PushModal(NewCopilotModal(m.transcript, m.typingDelay, m.modalContext()))

	case key.Matches(msg, k.Reload):
		return m, m.reload()

	case key.Matches(msg, k.Console):
		if m.console == nil {
			m.setNotice("SQL console unavailable")
			break
		}
		m.PushModal(NewSQLConsoleModal(m.console, m.modalContext()))

	case key.Matches(msg, k.Inspect):
		ro, ok := m.inspectionTarget()
		if !ok {
			m.setNotice("No repair order to inspect here")
			break
		}
		m.PushModal(m.inspectionModal(ro))

	case key.Matches(msg, k.NewDeal):
		m.openTab(workspace.ShowroomTab())
	}

	return m, nil
}

// reload starts a fresh data load unless one is already running.
func (m *WorkspaceModel) reload() tea.Cmd {
	if m.loadInFlight {
		return nil
	}
	m.loadInFlight = true
	return tea.Batch(m.loadDataCmd(), m.startSpinnerIfNeeded())
}

// nextSection moves focus sidebar -> decks -> ... -> sidebar.
func (m *WorkspaceModel) nextSection() {
	switch m.activeSection {
	case SectionSidebar:
		if len(m.decks) > 0 {
			m.activeSection = SectionDecks
			m.activeDeckIdx = 0
		}
	case SectionDecks:
		if m.activeDeckIdx < len(m.decks)-1 {
			m.activeDeckIdx++
			return
		}
		if m.nav.SidebarOpen() {
			m.activeSection = SectionSidebar
			return
		}
		m.activeDeckIdx = 0
	}
}

// prevSection moves focus in the opposite direction to nextSection.
func (m *WorkspaceModel) prevSection() {
	switch m.activeSection {
	case SectionSidebar:
		if len(m.decks) > 0 {
			m.activeSection = SectionDecks
			m.activeDeckIdx = len(m.decks) - 1
		}
	case SectionDecks:
		if m.activeDeckIdx > 0 {
			m.activeDeckIdx--
			return
		}
		if m.nav.SidebarOpen() {
			m.activeSection = SectionSidebar
			return
		}
		m.activeDeckIdx = max(0, len(m.decks)-1)
	}
}

// moveSelection moves the selection within the active section.
func (m *WorkspaceModel) moveSelection(delta int) {
	if m.activeSection == SectionSidebar {
		m.moveSidebarCursor(delta)
		return
	}
	if m.activeDeckIdx >= len(m.decks) {
		return
	}

	maxItems := m.decks[m.activeDeckIdx].ItemCount()
	if maxItems == 0 {
		return
	}
	cur := m.deckSelIdx[m.activeDeckIdx]
	m.deckSelIdx[m.activeDeckIdx] = min(max(cur+delta, 0), maxItems-1)
}

func (m *WorkspaceModel) jumpSelection(toEnd bool) {
	if m.activeSection == SectionSidebar {
		if toEnd {
			m.sidebarCursor = len(m.sidebarItems()) - 1
		} else {
			m.sidebarCursor = 0
		}
		return
	}
	if m.activeDeckIdx >= len(m.decks) {
		return
	}
	if toEnd {
		m.deckSelIdx[m.activeDeckIdx] = max(0, m.decks[m.activeDeckIdx].ItemCount()-1)
	} else {
		m.deckSelIdx[m.activeDeckIdx] = 0
	}
}

// showDetails triggers the selected sidebar entry or deck row.
func (m *WorkspaceModel) showDetails() (tea.Model, tea.Cmd) {
	if m.activeSection == SectionSidebar {
		m.activateSidebarCursor()
		return m, nil
	}

	if m.activeDeckIdx < len(m.decks) {
		cmd := m.decks[m.activeDeckIdx].OnSelect(m.viewContext(), m.deckSelIdx[m.activeDeckIdx])
		// Desk rows mutate state in place; redraw them.
		if m.nav.ActiveTab().Type == workspace.ViewDealEditor {
			m.refreshDecks()
		}
		return m, cmd
	}
	return m, nil
}

package tui

import (
	"time"

	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

// ViewContext provides read-only context to decks for rendering,
// replacing direct access to *WorkspaceModel.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	Role          workspace.Role
	Now           time.Time
	Loading       bool // true while the data load is in flight
}

// ModalContext provides read-only context to modals.
type ModalContext struct {
	ReverseScrollWheel bool
}

// Action identifies what a deck or modal wants the workspace to do.
type Action int

const (
	ActionOpenTab Action = iota
	ActionPushModal
	ActionStatus
	ActionReload
)

// ActionMsg is returned by deck OnSelect and by modals to communicate with
// the workspace without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// actionMsg wraps ActionMsg as a tea.Cmd.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}

func openTabCmd(t workspace.Tab) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionOpenTab, Payload: t})
}

func pushModalCmd(m Modal) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionPushModal, Payload: m})
}

func statusCmd(text string) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionStatus, Payload: text})
}

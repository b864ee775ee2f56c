package workspace

import (
	"go.uber.org/zap"
)

// Navigator owns the open tabs, the active tab, sidebar visibility and the
// user role for one session. Its methods are the only mutation entry points.
// A Navigator is not safe for concurrent use; the TUI serializes access
// through its update loop.
type Navigator struct {
	sidebarOpen bool
	tabs        []Tab
	activeID    string
	role        Role
	log         *zap.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// WithRole sets the initial role.
func WithRole(r Role) Option {
	return func(n *Navigator) { n.role = r }
}

// WithSidebar sets the initial sidebar visibility.
func WithSidebar(open bool) Option {
	return func(n *Navigator) { n.sidebarOpen = open }
}

// New returns a Navigator with only the home tab open and active.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		sidebarOpen: true,
		tabs:        []Tab{HomeTab()},
		activeID:    HomeTabID,
		role:        RoleManager,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// OpenTab activates the tab with t.ID if it is already open, leaving its
// title and data untouched. Otherwise t is appended and activated.
func (n *Navigator) OpenTab(t Tab) {
	if n.indexOf(t.ID) >= 0 {
		n.activeID = t.ID
		return
	}
	n.tabs = append(n.tabs, t)
	n.activeID = t.ID
	n.log.Debug("tab opened", zap.String("id", t.ID), zap.String("type", string(t.Type)))
}

// CloseTab removes the tab with the given id. When the home tab is the only
// tab the call does nothing. Closing the active tab activates its left
// neighbour, or the new last tab when there is none. Closing the last tab
// restores the home tab.
func (n *Navigator) CloseTab(id string) {
	if len(n.tabs) == 1 && n.tabs[0].ID == HomeTabID {
		return
	}

	closedIdx := n.indexOf(id)
	if closedIdx < 0 {
		return
	}

	remaining := make([]Tab, 0, len(n.tabs)-1)
	remaining = append(remaining, n.tabs[:closedIdx]...)
	remaining = append(remaining, n.tabs[closedIdx+1:]...)

	if len(remaining) == 0 {
		n.tabs = []Tab{HomeTab()}
		n.activeID = HomeTabID
		n.log.Debug("last tab closed, home restored", zap.String("id", id))
		return
	}

	n.tabs = remaining
	if id == n.activeID {
		next := min(max(0, closedIdx-1), len(remaining)-1)
		n.activeID = remaining[next].ID
	}
	n.log.Debug("tab closed", zap.String("id", id), zap.String("active", n.activeID))
}

// SetActiveTab activates an open tab. Unknown ids leave the state unchanged
// and report false.
func (n *Navigator) SetActiveTab(id string) bool {
	if n.indexOf(id) < 0 {
		n.log.Debug("set active tab ignored: not open", zap.String("id", id))
		return false
	}
	n.activeID = id
	return true
}

// ToggleSidebar flips sidebar visibility.
func (n *Navigator) ToggleSidebar() {
	n.sidebarOpen = !n.sidebarOpen
}

// SetUserRole replaces the role. Open tabs are not touched.
func (n *Navigator) SetUserRole(r Role) {
	if r == n.role {
		return
	}
	n.log.Info("role changed", zap.String("from", string(n.role)), zap.String("to", string(r)))
	n.role = r
}

// Tabs returns a copy of the open tabs in display order.
func (n *Navigator) Tabs() []Tab {
	return append([]Tab(nil), n.tabs...)
}

// ActiveID returns the id of the active tab.
func (n *Navigator) ActiveID() string { return n.activeID }

// ActiveTab returns the active tab.
func (n *Navigator) ActiveTab() Tab {
	if idx := n.indexOf(n.activeID); idx >= 0 {
		return n.tabs[idx]
	}
	return HomeTab()
}

// ActiveIndex returns the display position of the active tab.
func (n *Navigator) ActiveIndex() int {
	return max(0, n.indexOf(n.activeID))
}

// SidebarOpen reports sidebar visibility.
func (n *Navigator) SidebarOpen() bool { return n.sidebarOpen }

// Role returns the active role.
func (n *Navigator) Role() Role { return n.role }

// Tab looks up an open tab by id.
func (n *Navigator) Tab(id string) (Tab, bool) {
	if idx := n.indexOf(id); idx >= 0 {
		return n.tabs[idx], true
	}
	return Tab{}, false
}

func (n *Navigator) indexOf(id string) int {
	for i, t := range n.tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

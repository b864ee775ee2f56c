package tui

import (
	"strings"

	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const sidebarWidth = 26

type sidebarItemKind int

const (
	sidebarItemView sidebarItemKind = iota
	sidebarItemRole
)

type sidebarItem struct {
	kind  sidebarItemKind
	label string
	tab   workspace.Tab
	role  workspace.Role
}

// sidebarItems lists the selectable rows: the dashboard, every menu entry and
// the role switcher.
func (m *WorkspaceModel) sidebarItems() []sidebarItem {
	items := []sidebarItem{{kind: sidebarItemView, label: "Dashboard", tab: workspace.HomeTab()}}
	for _, s := range workspace.Menu {
		for _, it := range s.Items {
			items = append(items, sidebarItem{kind: sidebarItemView, label: it.Label, tab: workspace.MenuTab(it)})
		}
	}
	for _, r := range workspace.Roles {
		items = append(items, sidebarItem{kind: sidebarItemRole, label: r.Label(), role: r})
	}
	return items
}

func (m *WorkspaceModel) clampSidebarCursor() {
	n := len(m.sidebarItems())
	m.sidebarCursor = min(max(m.sidebarCursor, 0), max(0, n-1))
}

func (m *WorkspaceModel) moveSidebarCursor(delta int) {
	m.sidebarCursor += delta
	m.clampSidebarCursor()
}

// activateSidebarCursor opens the view or switches to the role under the cursor.
func (m *WorkspaceModel) activateSidebarCursor() {
	items := m.sidebarItems()
	if len(items) == 0 {
		return
	}
	m.clampSidebarCursor()
	m.applySidebarItem(items[m.sidebarCursor])
}

func (m *WorkspaceModel) applySidebarItem(item sidebarItem) {
	switch item.kind {
	case sidebarItemView:
		m.openTab(item.tab)
	case sidebarItemRole:
		m.setRole(item.role)
		m.setNotice("Role: " + item.role.Label())
	}
}

func (m *WorkspaceModel) buildSidebarLines() ([]string, map[int]int) {
	rowToCursor := make(map[int]int)
	var lines []string
	heading := lipgloss.NewStyle().Bold(true).Foreground(ColorGray)
	maxLabel := sidebarWidth - 6

	items := m.sidebarItems()
	cursor := 0
	addItem := func(item sidebarItem, current bool) {
		label := "  " + runewidth.Truncate(item.label, maxLabel, "~")
		if current {
			label = "> " + runewidth.Truncate(item.label, maxLabel, "~")
		}
		rowToCursor[len(lines)] = cursor
		if m.activeSection == SectionSidebar && m.sidebarCursor == cursor {
			label = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(label)
		} else if current {
			label = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true).Render(label)
		}
		lines = append(lines, label)
		cursor++
	}

	activeID := m.nav.ActiveID()
	addItem(items[0], activeID == workspace.HomeTabID)
	next := 1
	for _, s := range workspace.Menu {
		lines = append(lines, "", heading.Render(strings.ToUpper(s.Label)))
		for range s.Items {
			it := items[next]
			addItem(it, it.tab.ID == activeID)
			next++
		}
	}

	lines = append(lines, "", heading.Render("ROLE"))
	for _, it := range items[next:] {
		addItem(it, it.role == m.nav.Role())
	}
	return lines, rowToCursor
}

func (m *WorkspaceModel) sidebarCursorAtMouseRow(y int) (int, bool) {
	_, rowToCursor := m.buildSidebarLines()

	// The reported row can include the border depending on the renderer.
	for _, offset := range []int{-1, 0, -2, 1} {
		row := y + offset
		if row < 0 {
			continue
		}
		if idx, ok := rowToCursor[row]; ok {
			return idx, true
		}
	}
	return 0, false
}

// renderSidebar renders the menu and role switcher.
func (m *WorkspaceModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(height).
		MaxHeight(height+2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Padding(0, 1)

	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(ColorBlue)
	}

	lines, _ := m.buildSidebarLines()
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

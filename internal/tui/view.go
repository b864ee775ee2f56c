package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	headerHeight   = 1
	tabStripHeight = 1
	statusHeight   = 1

	errorDisplayWindow  = 30 * time.Second
	noticeDisplayWindow = 5 * time.Second
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *WorkspaceModel) contentWidth() int {
	if m.nav.SidebarOpen() {
		return max(40, m.width-sidebarWidth)
	}
	return m.width
}

// decksHeight is the height of the deck grid below the header and tab strip.
func (m *WorkspaceModel) decksHeight() int {
	return max(3, m.height-headerHeight-tabStripHeight-statusHeight)
}

// View renders the workspace.
func (m *WorkspaceModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing workspace..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	if m.height < 20 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x20."
	}

	contentWidth := m.contentWidth()
	var body string
	switch {
	case !m.loaded:
		body = renderLoadingPlaceholder(contentWidth, m.decksHeight())
	default:
		body = m.renderDecksGrid(contentWidth, m.decksHeight())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(contentWidth),
		m.renderTabStrip(contentWidth),
		body,
		m.renderStatusLine(),
	)

	result := content
	if m.nav.SidebarOpen() {
		result = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(m.height-2), content)
	}
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(result)
}

// renderBranding renders "Dealer365" with a navy to indigo gradient.
func renderBranding() string {
	colors := []string{"#4F8EF7", "#5389F5", "#5784F3", "#5B7FF1", "#5F7AEF", "#6375ED", "#6370EB", "#6366F1", "#6E5DF0"}
	var b strings.Builder
	for i, ch := range "Dealer365" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i%len(colors)])).Bold(true).Render(string(ch)))
	}
	return b.String()
}

func (m *WorkspaceModel) renderHeader(width int) string {
	left := renderBranding() + "  " + helpStyle.Render(m.nav.ActiveTab().Title)
	right := lipgloss.NewStyle().Foreground(ColorGray).Render("/ search  g go to  c copilot  " + m.nav.Role().Label())
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderStatusLine renders the status/help line at the bottom of the screen.
func (m *WorkspaceModel) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	w := m.contentWidth()
	narrow := w < 80
	medium := w < 120

	var leftText string
	tab := m.nav.ActiveTab()
	switch m.activeSection {
	case SectionSidebar:
		leftText = "[Menu]"
	case SectionDecks:
		if m.activeDeckIdx < len(m.decks) {
			leftText = fmt.Sprintf("[%s/%s]", tab.Title, m.decks[m.activeDeckIdx].Title())
		} else {
			leftText = fmt.Sprintf("[%s]", tab.Title)
		}
	}
	leftText = runewidth.Truncate(leftText, max(10, w/3), "…]")

	var statusText string
	switch {
	case tab.Type == workspace.ViewDealEditor && !narrow:
		statusText = "m: Mode • +/-: Down • </>: Term • t: Tier • v: Trade • s: Suggest • f: Finalize"
	case narrow:
		statusText = "?: Help • Tab: Nav • q: Quit"
	case medium:
		statusText = "?: Help • Tab: Navigate • []: Tabs • x: Close • Enter: Open • q: Quit"
	default:
		statusText = "?: Help • Tab: Navigate • []: Switch tab • x: Close tab • R: Role • b: Sidebar • Enter: Open • q: Quit"
	}

	var rightParts []string
	now := m.now()
	if m.lastError != "" && now.Sub(m.lastErrorAt) < errorDisplayWindow {
		rightParts = append(rightParts, lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color("#FF6666")).
			Faint(true).
			Render("DB error"))
	}
	if m.notice != "" && now.Sub(m.noticeAt) < noticeDisplayWindow {
		rightParts = append(rightParts, lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorGreen).Render(m.notice))
	}
	if m.store != nil && !narrow {
		dot := lipgloss.NewStyle().Background(ColorNavy).Foreground(lipgloss.Color("#44FF44")).Render("●")
		if m.lastError != "" {
			dot = lipgloss.NewStyle().Background(ColorNavy).Foreground(lipgloss.Color("#FF4444")).Render("●")
		}
		rightParts = append(rightParts, dot+" DuckDB")
	}
	rightText := strings.Join(rightParts, "  ")

	leftWidth := lipgloss.Width(leftText) + 2
	rightWidth := lipgloss.Width(rightText) + 2
	if leftWidth+rightWidth >= w {
		if w < 20 {
			return baseStyle.Width(w).Render(leftText)
		}
		rightText = ""
		rightWidth = 0
	}
	centerWidth := max(0, w-leftWidth-rightWidth)
	statusText = runewidth.Truncate(statusText, max(0, centerWidth-1), "")

	return lipgloss.JoinHorizontal(lipgloss.Top,
		baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(leftText),
		baseStyle.Align(lipgloss.Center).Width(centerWidth).Render(statusText),
		baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText),
	)
}

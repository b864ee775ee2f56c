package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all workspace key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit          key.Binding
	ForceQuit     key.Binding
	Help          key.Binding
	Escape        key.Binding
	ToggleSidebar key.Binding
	CycleRole     key.Binding

	// Navigation
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	Enter       key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	CloseTab    key.Binding

	// Tools
	Search  key.Binding
	GoTo    key.Binding
	Copilot key.Binding
	Reload  key.Binding
	Console key.Binding
	Inspect key.Binding
	NewDeal key.Binding

	// Deal desk
	DeskMode       key.Binding
	DeskDownUp     key.Binding
	DeskDownDown   key.Binding
	DeskTermUp     key.Binding
	DeskTermDown   key.Binding
	DeskTier       key.Binding
	DeskTierBack   key.Binding
	DeskTradeIn    key.Binding
	DeskSuggestion key.Binding
	DeskManager    key.Binding
	DeskFinalize   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "clear/close"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle sidebar"),
		),
		CycleRole: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "switch role"),
		),

		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first item"),
		),
		End: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last item"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/select"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		CloseTab: key.NewBinding(
			key.WithKeys("x", "ctrl+w"),
			key.WithHelp("x", "close tab"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search ROs"),
		),
		GoTo: key.NewBinding(
			key.WithKeys("g", "ctrl+p"),
			key.WithHelp("g", "go to"),
		),
		Copilot: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copilot"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload data"),
		),
		Console: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "SQL console"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "inspection"),
		),
		NewDeal: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new deal"),
		),

		DeskMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "finance/lease/cash"),
		),
		DeskDownUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "down +$500"),
		),
		DeskDownDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "down -$500"),
		),
		DeskTermUp: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "term +12"),
		),
		DeskTermDown: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "term -12"),
		),
		DeskTier: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next credit tier"),
		),
		DeskTierBack: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "prev credit tier"),
		),
		DeskTradeIn: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "trade-in"),
		),
		DeskSuggestion: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "apply suggestion"),
		),
		DeskManager: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "manager mode"),
		),
		DeskFinalize: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "finalize quote"),
		),
	}
}

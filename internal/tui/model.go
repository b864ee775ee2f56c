package tui

import (
	"time"

	"github.com/tinytelemetry/dealer365/internal/assistant"
	"github.com/tinytelemetry/dealer365/internal/dashboard"
	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/duckdb"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Section is the focused area of the workspace.
type Section int

const (
	SectionSidebar Section = iota // menu and role switcher
	SectionDecks                  // a deck of the active tab is focused
)

// Console is the ad-hoc SQL surface of the data store.
type Console interface {
	ExecuteQuery(query string) (duckdb.QueryResult, error)
	TableRowCounts() (map[string]int64, error)
}

// SidebarState holds sidebar cursor state. Visibility lives on the Navigator.
type SidebarState struct {
	sidebarCursor int
}

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// NavigationState holds deck focus for the active tab.
type NavigationState struct {
	activeSection Section
	activeDeckIdx int
	decks         []Deck
	deckSelIdx    []int
	views         map[string]*ViewState
}

// ViewState remembers deck focus per tab so switching tabs preserves it.
type ViewState struct {
	TabID         string
	DeckSelIdx    []int
	ActiveDeckIdx int
}

// appData is everything the views render, loaded from the store in one pass.
type appData struct {
	snap        dashboard.Snapshot
	customers   []model.Customer
	activities  []model.Activity
	quotes      []model.Quote
	deals       []model.Deal
	tableCounts map[string]int64
}

// WorkspaceModel is the dealership workspace: sidebar, tab strip and the
// decks of the active tab.
type WorkspaceModel struct {
	SidebarState
	ModalStackState
	NavigationState

	width  int
	height int

	nav     *workspace.Navigator
	store   model.DealerQuerier
	catalog model.ModelCatalog
	rates   *deal.RateTable
	console Console
	log     *zap.Logger
	keys    KeyMap

	data         appData
	loaded       bool
	loadInFlight bool

	// Last store error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time

	// Transient notice such as "Quote copied".
	notice   string
	noticeAt time.Time

	desks       map[string]*deal.Desk // by tab id
	inspections map[string]*dashboard.Inspection
	transcript  *assistant.Transcript

	typingDelay        time.Duration
	reverseScrollWheel bool
	clipboardWrite     func(string) error
	now                func() time.Time
	ratesLoader        func() (*deal.RateTable, error)
}

// Option configures a WorkspaceModel.
type Option func(*WorkspaceModel)

// WithCatalog sets the showroom model catalog.
func WithCatalog(c model.ModelCatalog) Option {
	return func(m *WorkspaceModel) { m.catalog = c }
}

// WithRates replaces the embedded finance rate table.
func WithRates(rt *deal.RateTable) Option {
	return func(m *WorkspaceModel) {
		if rt != nil {
			m.rates = rt
		}
	}
}

// WithConsole enables the SQL console and table counts on the admin view.
func WithConsole(c Console) Option {
	return func(m *WorkspaceModel) { m.console = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *WorkspaceModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithTypingDelay sets how long the copilot "types" before replying.
func WithTypingDelay(d time.Duration) Option {
	return func(m *WorkspaceModel) {
		if d >= 0 {
			m.typingDelay = d
		}
	}
}

// WithReverseScrollWheel flips mouse wheel direction.
func WithReverseScrollWheel(on bool) Option {
	return func(m *WorkspaceModel) { m.reverseScrollWheel = on }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *WorkspaceModel) { m.clipboardWrite = write }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *WorkspaceModel) { m.now = now }
}

// Messages.
type (
	dataLoadedMsg struct {
		data      appData
		lastError string // first store error encountered during the load
	}

	assistantReplyMsg struct {
		pending assistant.Pending
	}
)

// NewWorkspaceModel creates the workspace over a navigator and a store.
func NewWorkspaceModel(nav *workspace.Navigator, store model.DealerQuerier, opts ...Option) *WorkspaceModel {
	if nav == nil {
		nav = workspace.New()
	}
	m := &WorkspaceModel{
		NavigationState: NavigationState{
			activeSection: SectionDecks,
			views:         make(map[string]*ViewState),
		},
		nav:            nav,
		store:          store,
		log:            zap.NewNop(),
		keys:           DefaultKeyMap(),
		desks:          make(map[string]*deal.Desk),
		inspections:    make(map[string]*dashboard.Inspection),
		transcript:     assistant.New(),
		typingDelay:    model.DefaultTypingDelay,
		clipboardWrite: clipboard.WriteAll,
		now:            time.Now,
		ratesLoader:    deal.DefaultRates,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rates == nil {
		rates, err := m.ratesLoader()
		if err != nil {
			m.log.Error("loading embedded rate table", zap.Error(err))
			m.lastError = "rate table unavailable: " + err.Error()
			m.lastErrorAt = m.now()
		}
		m.rates = rates
	}
	m.rebuildDecks()
	return m
}

// Init starts the initial data load.
func (m *WorkspaceModel) Init() tea.Cmd {
	m.loadInFlight = true
	return tea.Batch(
		func() tea.Msg { return tea.EnableMouseCellMotion() },
		m.loadDataCmd(),
		m.startSpinnerIfNeeded(),
	)
}

// Navigator exposes the injected navigation state.
func (m *WorkspaceModel) Navigator() *workspace.Navigator { return m.nav }

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *WorkspaceModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *WorkspaceModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *WorkspaceModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *WorkspaceModel) HasModal() bool {
	return len(m.modalStack) > 0
}

// openTab opens or activates a tab and rebuilds the decks for it.
func (m *WorkspaceModel) openTab(t workspace.Tab) {
	m.persistViewState()
	m.nav.OpenTab(t)
	m.activeSection = SectionDecks
	m.rebuildDecks()
}

// closeTab closes a tab and forgets its per-tab state.
func (m *WorkspaceModel) closeTab(id string) {
	m.persistViewState()
	m.nav.CloseTab(id)
	if _, still := m.nav.Tab(id); !still {
		delete(m.views, id)
		delete(m.desks, id)
	}
	m.rebuildDecks()
}

// activateTab switches to an open tab.
func (m *WorkspaceModel) activateTab(id string) {
	if id == m.nav.ActiveID() {
		return
	}
	m.persistViewState()
	if m.nav.SetActiveTab(id) {
		m.rebuildDecks()
	}
}

// cycleTab moves to the neighbouring tab in strip order.
func (m *WorkspaceModel) cycleTab(delta int) {
	tabs := m.nav.Tabs()
	if len(tabs) <= 1 {
		return
	}
	idx := (m.nav.ActiveIndex() + delta + len(tabs)) % len(tabs)
	m.activateTab(tabs[idx].ID)
}

// setRole switches the persona. Open tabs are kept; dashboards are rebuilt.
func (m *WorkspaceModel) setRole(r workspace.Role) {
	m.persistViewState()
	m.nav.SetUserRole(r)
	for _, d := range m.desks {
		if r != workspace.RoleManager {
			d.ManagerMode = false
		}
	}
	m.rebuildDecks()
}

func (m *WorkspaceModel) cycleRole() {
	roles := workspace.Roles
	cur := 0
	for i, r := range roles {
		if r == m.nav.Role() {
			cur = i
			break
		}
	}
	m.setRole(roles[(cur+1)%len(roles)])
}

// rebuildDecks builds the decks of the active tab from the loaded data and
// restores the tab's remembered focus.
func (m *WorkspaceModel) rebuildDecks() {
	tab := m.nav.ActiveTab()
	m.decks = m.buildDecks(tab)
	m.deckSelIdx = make([]int, len(m.decks))
	m.activeDeckIdx = 0

	if vs, ok := m.views[tab.ID]; ok {
		for i := range m.deckSelIdx {
			if i < len(vs.DeckSelIdx) {
				m.deckSelIdx[i] = vs.DeckSelIdx[i]
			}
		}
		if vs.ActiveDeckIdx >= 0 && vs.ActiveDeckIdx < len(m.decks) {
			m.activeDeckIdx = vs.ActiveDeckIdx
		}
	}
	for i, d := range m.decks {
		if n := d.ItemCount(); m.deckSelIdx[i] >= n {
			m.deckSelIdx[i] = max(0, n-1)
		}
	}
}

func (m *WorkspaceModel) persistViewState() {
	id := m.nav.ActiveID()
	if id == "" {
		return
	}
	m.views[id] = &ViewState{
		TabID:         id,
		DeckSelIdx:    append([]int(nil), m.deckSelIdx...),
		ActiveDeckIdx: m.activeDeckIdx,
	}
}

// viewContext builds a ViewContext snapshot for deck rendering.
func (m *WorkspaceModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:  m.contentWidth(),
		ContentHeight: m.height,
		Role:          m.nav.Role(),
		Now:           m.now(),
		Loading:       m.loadInFlight && !m.loaded,
	}
}

func (m *WorkspaceModel) modalContext() ModalContext {
	return ModalContext{ReverseScrollWheel: m.reverseScrollWheel}
}

// setError records a failure for the status line.
func (m *WorkspaceModel) setError(err error) {
	if err == nil {
		return
	}
	m.lastError = err.Error()
	m.lastErrorAt = m.now()
	m.log.Warn("workspace error", zap.Error(err))
}

// setNotice shows a transient status message.
func (m *WorkspaceModel) setNotice(text string) {
	m.notice = text
	m.noticeAt = m.now()
}

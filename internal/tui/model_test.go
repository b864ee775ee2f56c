package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWorkspaceModel_StartsOnDashboard(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	m := NewWorkspaceModel(nil, &memStore{ds: ds})

	if got := m.nav.ActiveID(); got != workspace.HomeTabID {
		t.Fatalf("active tab = %q, want %q", got, workspace.HomeTabID)
	}
	if got := len(m.decks); got != 0 {
		t.Fatalf("decks before load = %d, want 0", got)
	}
	if m.rates == nil {
		t.Fatal("embedded rate table not loaded")
	}

	m.Update(m.loadDataCmd()())
	if got := len(m.decks); got == 0 {
		t.Fatal("dashboard has no decks after load")
	}
	if got := m.decks[0].Title(); !strings.Contains(got, "Executive Dashboard") {
		t.Fatalf("first deck title = %q, want executive dashboard", got)
	}
}

func TestNewWorkspaceModel_LogsRateTableFailure(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	failing := func(m *WorkspaceModel) {
		m.ratesLoader = func() (*deal.RateTable, error) { return nil, errors.New("bad rates yaml") }
	}
	m := NewWorkspaceModel(workspace.New(), nil, WithLogger(zap.New(core)), failing)

	if got := logs.FilterMessage("loading embedded rate table").Len(); got != 1 {
		t.Fatalf("logged %d rate table errors, want 1", got)
	}
	if !strings.Contains(m.lastError, "bad rates yaml") {
		t.Fatalf("lastError = %q", m.lastError)
	}
}

func TestNewWorkspaceModel_SuppliedRatesSkipEmbedded(t *testing.T) {
	t.Parallel()

	rt, err := deal.DefaultRates()
	if err != nil {
		t.Fatal(err)
	}
	loader := func(m *WorkspaceModel) {
		m.ratesLoader = func() (*deal.RateTable, error) {
			t.Error("embedded rates loaded despite WithRates")
			return nil, nil
		}
	}
	m := NewWorkspaceModel(workspace.New(), nil, WithRates(rt), loader)
	if m.rates != rt {
		t.Fatal("WithRates table not used")
	}
}

func TestLoad_WithoutStoreStillCompletes(t *testing.T) {
	t.Parallel()

	m := NewWorkspaceModel(workspace.New(), nil)
	m.Update(m.loadDataCmd()())

	if !m.loaded || m.loadInFlight {
		t.Fatalf("loaded = %v, inFlight = %v; want loaded", m.loaded, m.loadInFlight)
	}
}

func TestOpenTab_ReusesOpenTab(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	item, _ := workspace.FindMenuItem("crm-leads")

	m.openTab(workspace.MenuTab(item))
	m.openTab(workspace.HomeTab())
	m.openTab(workspace.MenuTab(item))

	if got := len(m.nav.Tabs()); got != 2 {
		t.Fatalf("tabs = %d, want 2", got)
	}
	if got := m.nav.ActiveID(); got != "tab-crm-leads" {
		t.Fatalf("active = %q, want tab-crm-leads", got)
	}
	if got := deckIDs(m); len(got) != 2 || got[1] != "leads" {
		t.Fatalf("decks = %v, want [crm-stats leads]", got)
	}
}

func TestCloseTab_ForgetsDesk(t *testing.T) {
	t.Parallel()

	m, ds := newTestModel(t)
	tab := workspace.DealTab(dealByID(t, ds, "D-24-001"))
	m.openTab(tab)
	if m.activeDesk() == nil {
		t.Fatal("deal editor has no desk")
	}

	m.closeTab(tab.ID)

	if _, ok := m.desks[tab.ID]; ok {
		t.Fatal("desk kept after its tab closed")
	}
	if got := m.nav.ActiveID(); got != workspace.HomeTabID {
		t.Fatalf("active = %q, want home", got)
	}
}

func TestTabSwitch_PreservesDeckSelection(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	item, _ := workspace.FindMenuItem("crm-leads")
	m.openTab(workspace.MenuTab(item))

	m.activeDeckIdx = 1
	m.deckSelIdx[1] = 2

	m.cycleTab(-1)
	if got := m.nav.ActiveID(); got != workspace.HomeTabID {
		t.Fatalf("active after cycle = %q, want home", got)
	}
	m.cycleTab(1)

	if m.activeDeckIdx != 1 {
		t.Fatalf("active deck = %d, want 1", m.activeDeckIdx)
	}
	if got := m.deckSelIdx[1]; got != 2 {
		t.Fatalf("selection = %d, want 2", got)
	}
}

func TestSetRole_RebuildsDashboard(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.setRole(workspace.RoleTechnician)

	if got := deckIndex(m, "active-job"); got < 0 {
		t.Fatalf("technician dashboard decks = %v, want active-job", deckIDs(m))
	}

	m.setRole(workspace.RoleSales)
	if got := m.decks[0].Title(); strings.Contains(got, "Executive") {
		t.Fatalf("sales dashboard still shows %q", got)
	}
}

func TestSetRole_LeavingManagerLocksProfit(t *testing.T) {
	t.Parallel()

	m, ds := newTestModel(t)
	m.openTab(workspace.DealTab(dealByID(t, ds, "D-24-001")))
	d := m.activeDesk()
	d.ManagerMode = true

	m.setRole(workspace.RoleSales)

	if d.ManagerMode {
		t.Fatal("manager mode survived a switch away from the manager role")
	}
	if got := deckIndex(m, "desk-profit"); got >= 0 {
		t.Fatal("profit deck shown to a non-manager role")
	}
}

func TestSidebarActivation_OpensViewAndSwitchesRole(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	items := m.sidebarItems()

	// Row 0 is the dashboard; row 1 is the first menu entry.
	m.sidebarCursor = 1
	m.activateSidebarCursor()
	if got := m.nav.ActiveID(); got != "tab-crm-leads" {
		t.Fatalf("active = %q, want tab-crm-leads", got)
	}

	m.sidebarCursor = len(items) - 1
	m.activateSidebarCursor()
	if got := m.nav.Role(); got != workspace.RoleTechnician {
		t.Fatalf("role = %q, want technician", got)
	}
	if !strings.Contains(m.notice, "Technician") {
		t.Fatalf("notice = %q, want role notice", m.notice)
	}
}

func TestSidebarCursor_Clamped(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.moveSidebarCursor(-5)
	if m.sidebarCursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.sidebarCursor)
	}
	m.moveSidebarCursor(1000)
	if got, want := m.sidebarCursor, len(m.sidebarItems())-1; got != want {
		t.Fatalf("cursor = %d, want %d", got, want)
	}
}

func TestPushModal_DeduplicatesByID(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.PushModal(NewHelpModal(m.keys, ModalContext{}))
	m.PushModal(NewHelpModal(m.keys, ModalContext{}))

	if got := len(m.modalStack); got != 1 {
		t.Fatalf("modal stack = %d, want 1", got)
	}
	m.PopModal()
	m.PopModal()
	if m.HasModal() {
		t.Fatal("stack not empty after pops")
	}
}

func TestSetError_ShownOnStatusLine(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.setError(errors.New("connection reset"))

	if !strings.Contains(m.renderStatusLine(), "DB error") {
		t.Fatal("status line does not flag the error")
	}

	later := testNow.Add(errorDisplayWindow + time.Second)
	m.now = func() time.Time { return later }
	if strings.Contains(m.renderStatusLine(), "DB error") {
		t.Fatal("error still shown after its display window")
	}
}

func TestAssistantReply_LandsWithModalClosed(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	p, ok := m.transcript.Send("inventory")
	if !ok {
		t.Fatal("send rejected")
	}

	m.Update(assistantReplyMsg{pending: p})

	if m.transcript.Typing() {
		t.Fatal("still typing after reply")
	}
	if got := len(m.transcript.Messages()); got != 3 {
		t.Fatalf("messages = %d, want greeting, prompt and reply", got)
	}
}

func TestWindowSize_Recorded(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.width != 100 || m.height != 30 {
		t.Fatalf("size = %dx%d, want 100x30", m.width, m.height)
	}
}

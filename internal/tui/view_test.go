package tui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tinytelemetry/dealer365/internal/dashboard"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

func TestView_BeforeLoad(t *testing.T) {
	t.Parallel()

	m := NewWorkspaceModel(workspace.New(), nil)
	if got := m.View(); got != "Initializing workspace..." {
		t.Fatalf("view before size = %q", got)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := m.View(); !strings.Contains(got, "Loading...") {
		t.Fatal("no loading placeholder before data arrives")
	}
}

func TestView_TerminalTooSmall(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 50, Height: 15})

	if got := m.View(); !strings.Contains(got, "Terminal too small") {
		t.Fatalf("view = %q", got)
	}
}

func TestView_RoleDashboards(t *testing.T) {
	t.Parallel()

	cases := map[workspace.Role]string{
		workspace.RoleManager:    "Executive Dashboard",
		workspace.RoleSales:      "Sales Overview",
		workspace.RoleService:    "Service Operations",
		workspace.RoleTechnician: "Technician Hub",
	}
	for role, header := range cases {
		t.Run(string(role), func(t *testing.T) {
			t.Parallel()

			m, _ := newTestModel(t)
			m.setRole(role)
			if got := m.View(); !strings.Contains(got, header) {
				t.Fatalf("%s dashboard does not show %q", role, header)
			}
		})
	}
}

func TestView_EveryMenuView(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	for _, item := range workspace.MenuItems() {
		m.openTab(workspace.MenuTab(item))
		if len(m.decks) == 0 {
			t.Fatalf("%s has no decks", item.ID)
		}
		if m.nav.ActiveTab().Title != item.Label {
			t.Fatalf("%s opened %q", item.ID, m.nav.ActiveTab().Title)
		}
		if got := m.View(); got == "" || strings.Contains(got, "Terminal too small") {
			t.Fatalf("%s rendered %q", item.ID, got)
		}
		m.closeTab(m.nav.ActiveID())
	}
}

func TestView_DealAndQuoteTabs(t *testing.T) {
	t.Parallel()

	m, ds := newTestModel(t)
	m.openTab(workspace.DealTab(dealByID(t, ds, "D-24-001")))
	if got := m.View(); !strings.Contains(got, "D-24-001") {
		t.Fatal("deal tab title missing from the view")
	}

	m.openTab(workspace.QuoteTab(ds.Quotes[0]))
	if got := m.View(); !strings.Contains(got, ds.Quotes[0].ID) {
		t.Fatal("quote tab title missing from the view")
	}
}

func TestView_ModalTakesScreen(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	sendKey(m, "?")

	got := m.View()
	if strings.Contains(got, "Executive Dashboard") {
		t.Fatal("dashboard rendered behind the help modal")
	}
}

func TestTabStrip_ShowsOpenTabs(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	item, _ := workspace.FindMenuItem("svc-dispatch")
	m.openTab(workspace.MenuTab(item))

	strip := m.renderTabStrip(160)
	if !strings.Contains(strip, "Dashboard") || !strings.Contains(strip, item.Label+" ×") {
		t.Fatalf("strip = %q", strip)
	}
}

func TestTabStrip_OverflowKeepsActiveVisible(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	items := workspace.MenuItems()
	for _, item := range items {
		m.openTab(workspace.MenuTab(item))
	}
	last := items[len(items)-1]

	strip := m.renderTabStrip(60)
	if !strings.Contains(strip, last.Label+" ×") {
		t.Fatalf("newest tab %q missing from strip %q", last.Label, strip)
	}
	if !strings.HasPrefix(strings.TrimSpace(strip), "…") {
		t.Fatalf("strip %q does not mark hidden tabs on the left", strip)
	}
	if strings.Contains(strip, "Dashboard") {
		t.Fatalf("strip %q should have scrolled past the dashboard", strip)
	}

	m.activateTab(workspace.HomeTabID)
	strip = m.renderTabStrip(60)
	if !strings.Contains(strip, "Dashboard") || !strings.HasSuffix(strings.TrimSpace(strip), "…") {
		t.Fatalf("strip after returning home = %q", strip)
	}
}

func TestDeckRows_WideDecksSitAlone(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.decks = []Deck{
		NewKPIDeck("KPIs", []dashboard.KPI{{Label: "Open ROs", Value: "4"}}),
		NewListDeck("a", "A", nil),
		NewListDeck("b", "B", nil),
		NewListDeck("c", "C", nil),
	}

	want := [][]int{{0}, {1, 2}, {3}}
	if got := m.deckRows(); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}

func TestDeckAt_MapsPointsToDecks(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m.decks = []Deck{
		NewKPIDeck("KPIs", []dashboard.KPI{{Label: "Open ROs", Value: "4"}}),
		NewListDeck("a", "A", nil),
		NewListDeck("b", "B", nil),
	}
	width, height := 100, 40
	heights := m.deckRowHeightsFor(height)

	cases := []struct {
		x, y int
		want int
	}{
		{10, 0, 0},
		{0, heights[0], 1},
		{width - 1, heights[0], 2},
	}
	for _, tc := range cases {
		got, ok := m.deckAt(width, height, tc.x, tc.y)
		if !ok || got != tc.want {
			t.Fatalf("deckAt(%d,%d) = %d,%v want %d", tc.x, tc.y, got, ok, tc.want)
		}
	}
	if _, ok := m.deckAt(width, height, -1, 0); ok {
		t.Fatal("negative x mapped to a deck")
	}
}

func TestDeckRowHeights_ShareSpaceWhenCramped(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	item, _ := workspace.FindMenuItem("crm-leads")
	m.openTab(workspace.MenuTab(item))

	heights := m.deckRowHeightsFor(6)
	total := 0
	for _, h := range heights {
		if h < 3 {
			t.Fatalf("row height %d below the minimum", h)
		}
		total += h
	}
	if len(heights) > 1 && total > 6+3*len(heights) {
		t.Fatalf("heights = %v overflow the area", heights)
	}
}

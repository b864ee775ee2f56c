package tui

import (
	"strings"
	"testing"

	"github.com/tinytelemetry/dealer365/internal/assistant"
	"github.com/tinytelemetry/dealer365/internal/dashboard"
	"github.com/tinytelemetry/dealer365/internal/duckdb"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

func TestGoToModal_FuzzyMatches(t *testing.T) {
	t.Parallel()

	g := NewGoToModal(ModalContext{})
	if got, want := len(g.Matches()), len(workspace.MenuItems()); got != want {
		t.Fatalf("empty filter matches = %d, want %d", got, want)
	}

	typeText(func(msg tea.Msg) { g.Update(msg) }, "dispatch")
	matches := g.Matches()
	if len(matches) == 0 {
		t.Fatal("no matches for dispatch")
	}
	if matches[0].ID != "svc-dispatch" {
		t.Fatalf("best match = %s, want svc-dispatch", matches[0].ID)
	}

	pop, cmd := g.Update(press("enter"))
	if !pop || cmd == nil {
		t.Fatal("enter did not close with an action")
	}
	a, ok := cmd().(ActionMsg)
	if !ok || a.Action != ActionOpenTab {
		t.Fatalf("action = %#v, want open tab", a)
	}
	if tab := a.Payload.(workspace.Tab); tab.ID != "tab-svc-dispatch" {
		t.Fatalf("tab = %s, want tab-svc-dispatch", tab.ID)
	}
}

func TestGoToModal_NoMatchKeepsOpen(t *testing.T) {
	t.Parallel()

	g := NewGoToModal(ModalContext{})
	typeText(func(msg tea.Msg) { g.Update(msg) }, "zzzz")

	if len(g.Matches()) != 0 {
		t.Fatalf("matches = %v, want none", g.Matches())
	}
	if pop, _ := g.Update(press("enter")); pop {
		t.Fatal("enter closed the palette with nothing selected")
	}
}

func TestConfiguratorModal_TotalTracksOptions(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	cm := ds.Models[0]
	c := NewConfiguratorModal(cm, ModalContext{})
	base := c.Total()

	// Five single-choice categories come before the packages.
	for i := 0; i < 5; i++ {
		c.Update(press("down"))
	}
	c.Update(press("space"))

	pkg := cm.Options.Packages[0]
	if got, want := c.Total(), base+pkg.Price; got != want {
		t.Fatalf("total = %v, want %v", got, want)
	}

	// Toggling again removes it.
	c.Update(press("space"))
	if got := c.Total(); got != base {
		t.Fatalf("total = %v, want %v", got, base)
	}
}

func TestConfiguratorModal_CyclesCategoryOption(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	cm := ds.Models[0]
	c := NewConfiguratorModal(cm, ModalContext{})

	c.Update(press("right"))
	if got, want := c.Selections().Engine.ID, cm.Options.Engines[1].ID; got != want {
		t.Fatalf("engine = %s, want %s", got, want)
	}
	c.Update(press("left"))
	c.Update(press("left"))
	last := cm.Options.Engines[len(cm.Options.Engines)-1].ID
	if got := c.Selections().Engine.ID; got != last {
		t.Fatalf("engine = %s, want wrap to %s", got, last)
	}
}

func TestConfiguratorModal_EnterStartsDeal(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	cm := ds.Models[0]
	c := NewConfiguratorModal(cm, ModalContext{})
	for i := 0; i < 5; i++ {
		c.Update(press("down"))
	}
	c.Update(press("space"))

	pop, cmd := c.Update(press("enter"))
	if !pop || cmd == nil {
		t.Fatal("enter did not start a deal")
	}
	tab := cmd().(ActionMsg).Payload.(workspace.Tab)
	data, ok := tab.DealEditor()
	if !ok {
		t.Fatalf("tab %s carries no deal editor payload", tab.ID)
	}
	if data.Source != "Configurator" || data.ModelID != cm.ID {
		t.Fatalf("payload = %+v", data)
	}
	if data.Selections == nil || len(data.Selections.Packages) != 1 {
		t.Fatalf("selections = %+v, want one package", data.Selections)
	}
	if data.TotalPrice != c.Total() {
		t.Fatalf("total = %v, want %v", data.TotalPrice, c.Total())
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"", 0, false},
		{"12000", 12000, false},
		{"$12,500", 12500, false},
		{" 1 000.50 ", 1000.5, false},
		{"-200", -200, false},
		{"twelve", 0, true},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("parseAmount(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("parseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTradeInModal_RejectsBadAmount(t *testing.T) {
	t.Parallel()

	m, ds := newTestModel(t)
	m.openTab(workspace.DealTab(dealByID(t, ds, "D-24-001")))
	d := m.activeDesk()

	tm := NewTradeInModal(d, ModalContext{})
	tm.inputs[0].SetValue("lots")
	if pop, _ := tm.Update(press("enter")); pop {
		t.Fatal("modal closed on a bad amount")
	}
	if !strings.Contains(tm.err, "Trade allowance") {
		t.Fatalf("err = %q", tm.err)
	}
	if d.TradeInValue != 0 {
		t.Fatalf("trade value = %v, want unchanged", d.TradeInValue)
	}
}

func TestInspectionModal_CompletesChecklist(t *testing.T) {
	t.Parallel()

	in := dashboard.NewInspection("RO-1")
	im := NewInspectionModal(in, model.RepairOrder{ID: "RO-1"}, ModalContext{})
	items := in.Items()

	var last tea.Cmd
	for i := range items {
		_, last = im.Update(press("enter"))
		if i < len(items)-1 {
			if last != nil {
				t.Fatalf("status before the checklist was complete (item %d)", i)
			}
			im.Update(press("down"))
		}
	}

	if !in.Complete() {
		t.Fatal("inspection incomplete after checking every item")
	}
	if last == nil {
		t.Fatal("no status on completion")
	}
	if pass, _, _ := in.Counts(); pass != len(items) {
		t.Fatalf("pass = %d, want %d", pass, len(items))
	}

	im.Update(press("up"))
	im.Update(press("space"))
	if got := in.State(items[len(items)-2]); got != dashboard.CheckWarn {
		t.Fatalf("state = %q, want warn after a second cycle", got)
	}
}

func TestInspectionState_SurvivesModalClose(t *testing.T) {
	t.Parallel()

	m, ds := newTestModel(t)
	ro := ds.RepairOrders[0]
	m.openTab(workspace.RepairOrderTab(ro.ID))

	sendKey(m, "i")
	sendKey(m, "enter")
	sendKey(m, "esc")

	in, ok := m.inspections[ro.ID]
	if !ok {
		t.Fatal("inspection not kept")
	}
	if pass, _, _ := in.Counts(); pass != 1 {
		t.Fatalf("pass = %d, want 1", pass)
	}
	idx := deckIndex(m, "inspection")
	if idx < 0 {
		t.Fatalf("decks = %v, want inspection summary", deckIDs(m))
	}
}

func TestROSearchModal_SearchAndOpen(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	s := NewROSearchModal(&memStore{ds: ds}, ModalContext{})

	cmd := s.search("wick")
	if cmd == nil {
		t.Fatal("search returned no command")
	}
	s.Update(cmd())
	if len(s.results) != 1 || s.results[0].ID != "RO-24-1043" {
		t.Fatalf("results = %v, want RO-24-1043", s.results)
	}

	pop, open := s.Update(press("enter"))
	if !pop || open == nil {
		t.Fatal("enter did not open the result")
	}
	tab := open().(ActionMsg).Payload.(workspace.Tab)
	if tab.Type != workspace.ViewRODetail || tab.Title != "RO-24-1043" {
		t.Fatalf("tab = %+v", tab)
	}
}

func TestROSearchModal_StaleResultsIgnored(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	s := NewROSearchModal(&memStore{ds: ds}, ModalContext{})

	first := s.search("wick")
	second := s.search("connor")
	s.Update(second())
	s.Update(first())

	if len(s.results) != 1 || s.results[0].CustomerName != "Sarah Connor" {
		t.Fatalf("results = %v, want only the latest search", s.results)
	}
}

func TestROSearchModal_BlankClears(t *testing.T) {
	t.Parallel()

	ds := loadTestDataset(t)
	s := NewROSearchModal(&memStore{ds: ds}, ModalContext{})
	s.Update(s.search("wick")())

	if cmd := s.search("   "); cmd != nil {
		t.Fatal("blank search queried the store")
	}
	if len(s.results) != 0 {
		t.Fatal("blank search kept old results")
	}
}

func TestSearchResults_RoutedToModal(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	sendKey(m, "/")
	s := m.TopModal().(*ROSearchModal)

	m.Update(s.search("1045")())

	if len(s.results) != 1 || s.results[0].ID != "RO-24-1045" {
		t.Fatalf("results = %v, want RO-24-1045", s.results)
	}
}

func TestCopilot_SendAndReply(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	sendKey(m, "c")
	typeText(func(msg tea.Msg) { m.Update(msg) }, "inventory")

	_, cmd := m.Update(press("enter"))
	if cmd == nil {
		t.Fatal("enter did not schedule a reply")
	}
	if !m.transcript.Typing() {
		t.Fatal("transcript not typing after send")
	}

	m.Update(cmd())

	if m.transcript.Typing() {
		t.Fatal("still typing after the reply landed")
	}
	msgs := m.transcript.Messages()
	if got := msgs[len(msgs)-1]; got.Role != assistant.RoleAssistant {
		t.Fatalf("last message role = %q, want assistant", got.Role)
	}
}

func TestCopilot_BlankInputIgnored(t *testing.T) {
	t.Parallel()

	c := NewCopilotModal(assistant.New(), 0, ModalContext{})
	if _, cmd := c.Update(press("enter")); cmd != nil {
		t.Fatal("blank input scheduled a reply")
	}
	c.Update(press("tab"))
	if got := c.input.Value(); got != assistant.Suggestions[0] {
		t.Fatalf("tab filled %q, want the first suggestion", got)
	}
}

func TestSQLConsole_RunsQuery(t *testing.T) {
	t.Parallel()

	console := &fakeConsole{}
	s := NewSQLConsoleModal(console, ModalContext{})
	s.input.SetValue("SELECT 1 AS n")

	_, cmd := s.Update(press("enter"))
	if cmd == nil || !s.running {
		t.Fatal("enter did not start the query")
	}
	s.Update(cmd())

	if s.running || s.result == nil {
		t.Fatal("result not installed")
	}
	if len(console.queries) != 1 || console.queries[0] != "SELECT 1 AS n" {
		t.Fatalf("queries = %v", console.queries)
	}
}

func TestFormatQueryResult(t *testing.T) {
	t.Parallel()

	out := formatQueryResult(duckdb.QueryResult{
		Columns:   []string{"id", "status"},
		Rows:      [][]any{{"RO-1", "Ready"}, {"RO-2", nil}},
		Truncated: true,
	}, 80)

	for _, want := range []string{"id", "RO-1", "Ready", "NULL", "2 row(s)", "truncated"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDetailModal_ClosesOnEsc(t *testing.T) {
	t.Parallel()

	d := NewDetailModal("customer-1", "Sarah Connor", "profile", ModalContext{})
	if pop, _ := d.Update(press("down")); pop {
		t.Fatal("scroll closed the modal")
	}
	if pop, _ := d.Update(press("esc")); !pop {
		t.Fatal("esc did not close the modal")
	}
}

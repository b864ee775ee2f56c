package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/dealer365/internal/catalog"
	"github.com/tinytelemetry/dealer365/internal/duckdb"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

var errNotFound = errors.New("not found")

// memStore serves the embedded dataset without a database.
type memStore struct {
	ds *catalog.Dataset
}

var _ model.DealerQuerier = (*memStore)(nil)

func (s *memStore) RepairOrders() ([]model.RepairOrder, error) { return s.ds.RepairOrders, nil }

func (s *memStore) RepairOrder(id string) (model.RepairOrder, error) {
	for _, ro := range s.ds.RepairOrders {
		if ro.ID == id {
			return ro, nil
		}
	}
	return model.RepairOrder{}, errNotFound
}

func (s *memStore) SearchRepairOrders(term string, limit int) ([]model.RepairOrder, error) {
	term = strings.ToLower(term)
	var out []model.RepairOrder
	for _, ro := range s.ds.RepairOrders {
		hay := strings.ToLower(ro.ID + " " + ro.CustomerName + " " + ro.Vehicle + " " + ro.VIN)
		if strings.Contains(hay, term) {
			out = append(out, ro)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *memStore) Technicians() ([]model.Technician, error) { return s.ds.Technicians, nil }

func (s *memStore) ServiceSummary() (model.ServiceSummary, error) {
	var sum model.ServiceSummary
	for _, ro := range s.ds.RepairOrders {
		if ro.Status == model.ROClosed {
			continue
		}
		sum.OpenROs++
		sum.PipelineValue += ro.TotalEstimate
		if ro.Status.NeedsAction() {
			sum.ActionRequired++
		}
	}
	sum.ActiveROs = sum.OpenROs
	return sum, nil
}

func (s *memStore) Leads() ([]model.Lead, error) { return s.ds.Leads, nil }

func (s *memStore) Lead(id string) (model.Lead, error) {
	for _, l := range s.ds.Leads {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Lead{}, errNotFound
}

func (s *memStore) Customers() ([]model.Customer, error) { return s.ds.Customers, nil }

func (s *memStore) CustomerByName(name string) (model.Customer, error) {
	for _, c := range s.ds.Customers {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return model.Customer{}, errNotFound
}

func (s *memStore) Inventory() ([]model.InventoryVehicle, error) { return s.ds.Inventory, nil }
func (s *memStore) Activities() ([]model.Activity, error)        { return s.ds.Activities, nil }
func (s *memStore) Quotes() ([]model.Quote, error)               { return s.ds.Quotes, nil }
func (s *memStore) Deals() ([]model.Deal, error)                 { return s.ds.Deals, nil }

func (s *memStore) Deal(id string) (model.Deal, error) {
	for _, d := range s.ds.Deals {
		if d.ID == id {
			return d, nil
		}
	}
	return model.Deal{}, errNotFound
}

func (s *memStore) SalesSummary() (model.SalesSummary, error) {
	var sum model.SalesSummary
	sum.ActiveLeads = len(s.ds.Leads)
	for _, l := range s.ds.Leads {
		if l.Hot() {
			sum.HotLeads++
		}
	}
	for _, v := range s.ds.Inventory {
		sum.UnitsInStock++
		sum.InventoryValue += v.Price
	}
	return sum, nil
}

// fakeConsole answers every query with a single row.
type fakeConsole struct {
	queries []string
}

func (c *fakeConsole) ExecuteQuery(q string) (duckdb.QueryResult, error) {
	c.queries = append(c.queries, q)
	return duckdb.QueryResult{Columns: []string{"n"}, Rows: [][]any{{int64(1)}}}, nil
}

func (c *fakeConsole) TableRowCounts() (map[string]int64, error) {
	return map[string]int64{"repair_orders": 12, "deals": 5}, nil
}

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func loadTestDataset(t *testing.T) *catalog.Dataset {
	t.Helper()
	ds, err := catalog.Load()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return ds
}

// newTestModel builds a workspace over the embedded dataset and completes the
// initial load synchronously.
func newTestModel(t *testing.T, opts ...Option) (*WorkspaceModel, *catalog.Dataset) {
	t.Helper()
	ds := loadTestDataset(t)
	base := []Option{
		WithCatalog(ds),
		WithConsole(&fakeConsole{}),
		WithClipboard(func(string) error { return nil }),
		WithClock(func() time.Time { return testNow }),
		WithTypingDelay(0),
	}
	m := NewWorkspaceModel(workspace.New(), &memStore{ds: ds}, append(base, opts...)...)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 48})

	msg := m.loadDataCmd()()
	m.Update(msg)
	if !m.loaded {
		t.Fatal("model not loaded after dataLoadedMsg")
	}
	return m, ds
}

// press builds a key message the way Bubble Tea reports it.
func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// typeText feeds s to update one rune at a time.
func typeText(update func(tea.Msg), s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// sendKey delivers a key and feeds any resulting action back into the model.
func sendKey(m *WorkspaceModel, k string) tea.Cmd {
	_, cmd := m.Update(press(k))
	return deliverAction(m, cmd)
}

// deliverAction runs cmd and feeds its message back when it is an ActionMsg.
// Other commands are returned untouched.
func deliverAction(m *WorkspaceModel, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if a, ok := msg.(ActionMsg); ok {
		_, next := m.Update(a)
		return next
	}
	return cmd
}

func deckIDs(m *WorkspaceModel) []string {
	ids := make([]string, len(m.decks))
	for i, d := range m.decks {
		ids[i] = d.ID()
	}
	return ids
}

func deckIndex(m *WorkspaceModel, id string) int {
	for i, d := range m.decks {
		if d.ID() == id {
			return i
		}
	}
	return -1
}

func dealByID(t *testing.T, ds *catalog.Dataset, id string) model.Deal {
	t.Helper()
	for _, d := range ds.Deals {
		if d.ID == id {
			return d
		}
	}
	t.Fatalf("deal %s not in dataset", id)
	return model.Deal{}
}

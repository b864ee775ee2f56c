package duckdb

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tinytelemetry/dealer365/internal/catalog"
	"github.com/tinytelemetry/dealer365/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ds, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	store, err := Open(context.Background(), ds, WithQueryTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\"): %v", err)
	}
	defer store.Close()

	ros, err := store.RepairOrders()
	if err != nil {
		t.Fatalf("RepairOrders: %v", err)
	}
	if len(ros) != 0 {
		t.Errorf("len(RepairOrders) = %d, want 0", len(ros))
	}
	if store.QueryTimeout != model.DefaultQueryTimeout {
		t.Errorf("QueryTimeout = %v, want %v", store.QueryTimeout, model.DefaultQueryTimeout)
	}
}

func TestSeedRowCounts(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	counts, err := store.TableRowCounts()
	if err != nil {
		t.Fatalf("TableRowCounts: %v", err)
	}
	want := map[string]int64{
		"repair_orders": 12, "technicians": 4, "leads": 5, "customers": 5,
		"inventory": 5, "activities": 8, "quotes": 4, "deals": 5,
	}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("count(%s) = %d, want %d", table, counts[table], n)
		}
	}
}

func TestSeedReplacesContents(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ds, _ := catalog.Load()
	ds.Leads = ds.Leads[:2]
	if err := store.Seed(context.Background(), ds); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	leads, err := store.Leads()
	if err != nil {
		t.Fatalf("Leads: %v", err)
	}
	if len(leads) != 2 {
		t.Errorf("len(Leads) = %d, want 2", len(leads))
	}
}

func TestRepairOrders(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ros, err := store.RepairOrders()
	if err != nil {
		t.Fatalf("RepairOrders: %v", err)
	}
	if len(ros) != 12 {
		t.Fatalf("len = %d, want 12", len(ros))
	}
	if ros[0].ID != "RO-24-1042" || ros[11].ID != "RO-23-9912" {
		t.Errorf("order = %s..%s, want intake order", ros[0].ID, ros[11].ID)
	}

	ro, err := store.RepairOrder("RO-24-1045")
	if err != nil {
		t.Fatalf("RepairOrder: %v", err)
	}
	if ro.Status != model.ROWorking || ro.TotalEstimate != 8500 {
		t.Errorf("RO-24-1045 = %+v", ro)
	}
	want := time.Date(2023, 10, 27, 17, 0, 0, 0, time.UTC)
	if !ro.PromiseTime.Equal(want) {
		t.Errorf("PromiseTime = %v, want %v", ro.PromiseTime, want)
	}

	_, err = store.RepairOrder("RO-00-0000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing RO err = %v, want ErrNotFound", err)
	}
}

func TestSearchRepairOrders(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	cases := []struct {
		term string
		want []string
	}{
		{"connor", []string{"RO-24-1042"}},
		{"DELOREAN", []string{"RO-24-1045"}},
		{"lr-def", []string{"RO-23-9912"}},
		{"ro-24-104", []string{"RO-24-1042", "RO-24-1043", "RO-24-1044", "RO-24-1045", "RO-24-1046"}},
		{"   ", nil},
		{"no such thing", nil},
	}
	for _, tc := range cases {
		got, err := store.SearchRepairOrders(tc.term, 5)
		if err != nil {
			t.Fatalf("SearchRepairOrders(%q): %v", tc.term, err)
		}
		var ids []string
		for _, ro := range got {
			ids = append(ids, ro.ID)
		}
		if strings.Join(ids, ",") != strings.Join(tc.want, ",") {
			t.Errorf("SearchRepairOrders(%q) = %v, want %v", tc.term, ids, tc.want)
		}
	}
}

func TestSearchRepairOrdersDefaultLimit(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	got, err := store.SearchRepairOrders("ro-", 0)
	if err != nil {
		t.Fatalf("SearchRepairOrders: %v", err)
	}
	if len(got) != model.DefaultSearchLimit {
		t.Errorf("len = %d, want %d", len(got), model.DefaultSearchLimit)
	}
}

func TestServiceSummary(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sum, err := store.ServiceSummary()
	if err != nil {
		t.Fatalf("ServiceSummary: %v", err)
	}
	// 12 ROs: 2 Closed, 1 Ready.
	if sum.ActiveROs != 9 {
		t.Errorf("ActiveROs = %d, want 9", sum.ActiveROs)
	}
	if sum.ActionRequired != 3 {
		t.Errorf("ActionRequired = %d, want 3", sum.ActionRequired)
	}
	if sum.OpenROs != 10 {
		t.Errorf("OpenROs = %d, want 10", sum.OpenROs)
	}
	wantPipeline := 1250.0 + 4500 + 185 + 8500 + 850 + 120 + 2200 + 3400 + 150
	if sum.PipelineValue != wantPipeline {
		t.Errorf("PipelineValue = %v, want %v", sum.PipelineValue, wantPipeline)
	}
}

func TestSalesSummary(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	sum, err := store.SalesSummary()
	if err != nil {
		t.Fatalf("SalesSummary: %v", err)
	}
	if sum.ActiveLeads != 5 || sum.HotLeads != 2 || sum.UnitsInStock != 5 {
		t.Errorf("SalesSummary = %+v", sum)
	}
	if sum.InventoryValue != 611000 {
		t.Errorf("InventoryValue = %v, want 611000", sum.InventoryValue)
	}
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	c, err := store.CustomerByName("tony stark")
	if err != nil {
		t.Fatalf("CustomerByName: %v", err)
	}
	if c.ID != "CUST-008" {
		t.Errorf("ID = %s, want CUST-008", c.ID)
	}
	if len(c.Vehicles) != 3 || c.Vehicles[2] != "Acura NSX" {
		t.Errorf("Vehicles = %v", c.Vehicles)
	}
	if len(c.Tags) != 3 {
		t.Errorf("Tags = %v", c.Tags)
	}

	if _, err := store.CustomerByName("Ethan Hunt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing customer err = %v, want ErrNotFound", err)
	}
}

func TestLeadsDealsQuotes(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	lead, err := store.Lead("LEAD-903")
	if err != nil {
		t.Fatalf("Lead: %v", err)
	}
	if lead.Name != "Natalie Rushman" || !lead.Hot() {
		t.Errorf("Lead = %+v", lead)
	}

	deal, err := store.Deal("D-24-002")
	if err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if deal.Status != "F&I Pending" || deal.Tier != "Gold" || deal.Probability != 72 {
		t.Errorf("Deal = %+v", deal)
	}
	if _, err := store.Deal("D-0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing deal err = %v", err)
	}

	quotes, err := store.Quotes()
	if err != nil {
		t.Fatalf("Quotes: %v", err)
	}
	if len(quotes) != 4 || quotes[0].ID != "Q-24-101" || quotes[0].Price != 68450 {
		t.Errorf("Quotes = %+v", quotes)
	}
}

func TestActivitiesOrdered(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	acts, err := store.Activities()
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(acts) != 8 {
		t.Fatalf("len = %d, want 8", len(acts))
	}
	if acts[0].ID != "ACT-005" {
		t.Errorf("first = %s, want the overdue ACT-005", acts[0].ID)
	}
	for i := 1; i < len(acts); i++ {
		prev, cur := acts[i-1], acts[i]
		if prev.DayOffset > cur.DayOffset || (prev.DayOffset == cur.DayOffset && prev.Time > cur.Time) {
			t.Errorf("activities out of order at %d: %s then %s", i, prev.ID, cur.ID)
		}
	}
}

func TestInventoryAndTechnicians(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	inv, err := store.Inventory()
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}
	if len(inv) != 5 || inv[1].Model != "911" || inv[1].Year != 2023 {
		t.Errorf("Inventory = %+v", inv)
	}

	techs, err := store.Technicians()
	if err != nil {
		t.Fatalf("Technicians: %v", err)
	}
	if len(techs) != 4 || techs[0].CurrentRO != "RO-24-1045" || techs[2].CurrentRO != "" {
		t.Errorf("Technicians = %+v", techs)
	}
}

func TestConcurrentReads(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.RepairOrders(); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.SalesSummary(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent read: %v", err)
	}
}

package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/catalog"
	"go.uber.org/zap"
)

// listSep joins list columns such as customer vehicles and tags.
const listSep = "|"

// seedTables is the deletion order used when reseeding.
var seedTables = []string{
	"repair_orders", "technicians", "leads", "customers",
	"inventory", "activities", "quotes", "deals",
}

// Open creates an in-memory store seeded with ds.
func Open(ctx context.Context, ds *catalog.Dataset, opts ...Option) (*Store, error) {
	s, err := NewStore("", opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Seed(ctx, ds); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Seed replaces the contents of every dealership table with ds in one transaction.
func (s *Store) Seed(ctx context.Context, ds *catalog.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for _, table := range seedTables {
		// Table names are constants.
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	steps := []struct {
		table string
		query string
		rows  [][]any
	}{
		{"repair_orders", `INSERT INTO repair_orders (id, customer_name, vehicle, vin, status, promise_time,
			advisor, technician, total_estimate, concern, stage, seq) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, repairOrderRows(ds)},
		{"technicians", `INSERT INTO technicians (id, name, initials, status, efficiency, current_ro, skill_level)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, technicianRows(ds)},
		{"leads", `INSERT INTO leads (id, name, interest_model, lead_score, last_contact, status, source)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, leadRows(ds)},
		{"customers", `INSERT INTO customers (id, name, email, phone, address, tier, status, ltv, vehicles, tags,
			last_visit, sentiment) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, customerRows(ds)},
		{"inventory", `INSERT INTO inventory (stock_id, model_year, make, model, trim_level, price, status, days_in_stock)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, inventoryRows(ds)},
		{"activities", `INSERT INTO activities (id, kind, title, day_offset, start_time, duration, status,
			customer_name, priority) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, activityRows(ds)},
		{"quotes", `INSERT INTO quotes (id, customer, vehicle, price, status, quoted_on, probability)
			VALUES (?, ?, ?, ?, ?, ?, ?)`, quoteRows(ds)},
		{"deals", `INSERT INTO deals (id, customer_name, vehicle, stock_no, price, monthly, status, gross, tier,
			probability, salesperson) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, dealRows(ds)},
	}

	for _, st := range steps {
		if err := insertRows(ctx, tx, st.query, st.rows); err != nil {
			return fmt.Errorf("seed %s: %w", st.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	committed = true

	s.log.Debug("seeded dataset",
		zap.Int("repair_orders", len(ds.RepairOrders)),
		zap.Int("leads", len(ds.Leads)),
		zap.Int("inventory", len(ds.Inventory)),
		zap.Int("deals", len(ds.Deals)),
	)
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, args := range rows {
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %v: %w", args[0], err)
		}
	}
	return nil
}

func repairOrderRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.RepairOrders))
	for i, r := range ds.RepairOrders {
		out = append(out, []any{r.ID, r.CustomerName, r.Vehicle, r.VIN, string(r.Status), r.PromiseTime.UTC(),
			r.Advisor, r.Technician, r.TotalEstimate, r.Concern, r.Stage, i})
	}
	return out
}

func technicianRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Technicians))
	for _, t := range ds.Technicians {
		out = append(out, []any{t.ID, t.Name, t.Initials, t.Status, t.Efficiency, t.CurrentRO, t.SkillLevel})
	}
	return out
}

func leadRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Leads))
	for _, l := range ds.Leads {
		out = append(out, []any{l.ID, l.Name, l.InterestModel, l.LeadScore, l.LastContact, l.Status, l.Source})
	}
	return out
}

func customerRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Customers))
	for _, c := range ds.Customers {
		out = append(out, []any{c.ID, c.Name, c.Email, c.Phone, c.Address, c.Tier, c.Status, c.LTV,
			strings.Join(c.Vehicles, listSep), strings.Join(c.Tags, listSep), c.LastVisit, c.Sentiment})
	}
	return out
}

func inventoryRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Inventory))
	for _, v := range ds.Inventory {
		out = append(out, []any{v.StockID, v.Year, v.Make, v.Model, v.Trim, v.Price, v.Status, v.DaysInStock})
	}
	return out
}

func activityRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Activities))
	for _, a := range ds.Activities {
		out = append(out, []any{a.ID, a.Type, a.Title, a.DayOffset, a.Time, a.Duration, a.Status, a.CustomerName, a.Priority})
	}
	return out
}

func quoteRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Quotes))
	for _, q := range ds.Quotes {
		out = append(out, []any{q.ID, q.Customer, q.Vehicle, q.Price, q.Status, q.Date, q.Probability})
	}
	return out
}

func dealRows(ds *catalog.Dataset) [][]any {
	out := make([][]any, 0, len(ds.Deals))
	for _, d := range ds.Deals {
		out = append(out, []any{d.ID, d.CustomerName, d.Vehicle, d.StockNo, d.Price, d.Monthly, d.Status, d.Gross,
			d.Tier, d.Probability, d.Salesperson})
	}
	return out
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

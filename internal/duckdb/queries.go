package duckdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/model"
	"go.uber.org/zap"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// queryList runs a read query and scans every row. Rows that fail to scan are
// logged and skipped.
func queryList[T any](s *Store, name, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			s.log.Warn("duckdb scan error", zap.String("query", name), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// queryOne runs a single-row lookup keyed by key.
func queryOne[T any](s *Store, name, key, query string, scan func(rowScanner) (T, error)) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	v, err := scan(s.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return v, fmt.Errorf("%s %q: %w", name, key, ErrNotFound)
	}
	if err != nil {
		return v, fmt.Errorf("%s %q: %w", name, key, err)
	}
	return v, nil
}

const repairOrderCols = `id, customer_name, vehicle, vin, status, promise_time, advisor, technician,
	total_estimate, concern, stage`

func scanRepairOrder(r rowScanner) (model.RepairOrder, error) {
	var ro model.RepairOrder
	var status string
	err := r.Scan(&ro.ID, &ro.CustomerName, &ro.Vehicle, &ro.VIN, &status, &ro.PromiseTime,
		&ro.Advisor, &ro.Technician, &ro.TotalEstimate, &ro.Concern, &ro.Stage)
	ro.Status = model.ROStatus(status)
	return ro, err
}

// RepairOrders returns every repair order in intake order.
func (s *Store) RepairOrders() ([]model.RepairOrder, error) {
	return queryList(s, "repair orders",
		"SELECT "+repairOrderCols+" FROM repair_orders ORDER BY seq, id", scanRepairOrder)
}

// RepairOrder looks up one repair order by id.
func (s *Store) RepairOrder(id string) (model.RepairOrder, error) {
	return queryOne(s, "repair order", id,
		"SELECT "+repairOrderCols+" FROM repair_orders WHERE id = ?", scanRepairOrder)
}

// SearchRepairOrders matches term case-insensitively against the RO number,
// customer, vehicle and VIN. A blank term matches nothing.
func (s *Store) SearchRepairOrders(term string, limit int) ([]model.RepairOrder, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = model.DefaultSearchLimit
	}
	return queryList(s, "search repair orders", `
		SELECT `+repairOrderCols+`
		FROM repair_orders
		WHERE contains(lower(id), ?)
		   OR contains(lower(customer_name), ?)
		   OR contains(lower(vehicle), ?)
		   OR contains(lower(vin), ?)
		ORDER BY seq, id
		LIMIT ?`, scanRepairOrder, term, term, term, term, limit)
}

func scanTechnician(r rowScanner) (model.Technician, error) {
	var t model.Technician
	err := r.Scan(&t.ID, &t.Name, &t.Initials, &t.Status, &t.Efficiency, &t.CurrentRO, &t.SkillLevel)
	return t, err
}

// Technicians returns the shop roster.
func (s *Store) Technicians() ([]model.Technician, error) {
	return queryList(s, "technicians", `
		SELECT id, name, initials, status, efficiency, current_ro, skill_level
		FROM technicians ORDER BY id`, scanTechnician)
}

// ServiceSummary aggregates the service pipeline. Active ROs exclude Closed
// and Ready; the pipeline value sums active estimates.
func (s *Store) ServiceSummary() (model.ServiceSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var sum model.ServiceSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			count(*) FILTER (WHERE status NOT IN (?, ?)),
			count(*) FILTER (WHERE status IN (?, ?)),
			coalesce(sum(total_estimate) FILTER (WHERE status NOT IN (?, ?)), 0),
			count(*) FILTER (WHERE status <> ?)
		FROM repair_orders`,
		string(model.ROClosed), string(model.ROReady),
		string(model.ROApprovalPending), string(model.ROPartsHold),
		string(model.ROClosed), string(model.ROReady),
		string(model.ROClosed),
	).Scan(&sum.ActiveROs, &sum.ActionRequired, &sum.PipelineValue, &sum.OpenROs)
	if err != nil {
		return model.ServiceSummary{}, fmt.Errorf("service summary: %w", err)
	}
	return sum, nil
}

func scanLead(r rowScanner) (model.Lead, error) {
	var l model.Lead
	err := r.Scan(&l.ID, &l.Name, &l.InterestModel, &l.LeadScore, &l.LastContact, &l.Status, &l.Source)
	return l, err
}

const leadCols = "id, name, interest_model, lead_score, last_contact, status, source"

// Leads returns every CRM lead.
func (s *Store) Leads() ([]model.Lead, error) {
	return queryList(s, "leads", "SELECT "+leadCols+" FROM leads ORDER BY id", scanLead)
}

// Lead looks up one lead by id.
func (s *Store) Lead(id string) (model.Lead, error) {
	return queryOne(s, "lead", id, "SELECT "+leadCols+" FROM leads WHERE id = ?", scanLead)
}

const customerCols = "id, name, email, phone, address, tier, status, ltv, vehicles, tags, last_visit, sentiment"

func scanCustomer(r rowScanner) (model.Customer, error) {
	var c model.Customer
	var vehicles, tags string
	err := r.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Tier, &c.Status, &c.LTV,
		&vehicles, &tags, &c.LastVisit, &c.Sentiment)
	c.Vehicles = splitList(vehicles)
	c.Tags = splitList(tags)
	return c, err
}

// Customers returns the Customer 360 list.
func (s *Store) Customers() ([]model.Customer, error) {
	return queryList(s, "customers", "SELECT "+customerCols+" FROM customers ORDER BY id", scanCustomer)
}

// CustomerByName finds a customer by exact name, ignoring case.
func (s *Store) CustomerByName(name string) (model.Customer, error) {
	return queryOne(s, "customer", name,
		"SELECT "+customerCols+" FROM customers WHERE lower(name) = lower(?) ORDER BY id LIMIT 1", scanCustomer)
}

func scanVehicle(r rowScanner) (model.InventoryVehicle, error) {
	var v model.InventoryVehicle
	err := r.Scan(&v.StockID, &v.Year, &v.Make, &v.Model, &v.Trim, &v.Price, &v.Status, &v.DaysInStock)
	return v, err
}

// Inventory returns every unit on the lot, in transit or sold.
func (s *Store) Inventory() ([]model.InventoryVehicle, error) {
	return queryList(s, "inventory", `
		SELECT stock_id, model_year, make, model, trim_level, price, status, days_in_stock
		FROM inventory ORDER BY stock_id`, scanVehicle)
}

func scanActivity(r rowScanner) (model.Activity, error) {
	var a model.Activity
	err := r.Scan(&a.ID, &a.Type, &a.Title, &a.DayOffset, &a.Time, &a.Duration, &a.Status, &a.CustomerName, &a.Priority)
	return a, err
}

// Activities returns calendar entries ordered by day and start time.
func (s *Store) Activities() ([]model.Activity, error) {
	return queryList(s, "activities", `
		SELECT id, kind, title, day_offset, start_time, duration, status, customer_name, priority
		FROM activities ORDER BY day_offset, start_time, id`, scanActivity)
}

func scanQuote(r rowScanner) (model.Quote, error) {
	var q model.Quote
	err := r.Scan(&q.ID, &q.Customer, &q.Vehicle, &q.Price, &q.Status, &q.Date, &q.Probability)
	return q, err
}

// Quotes returns saved quotes.
func (s *Store) Quotes() ([]model.Quote, error) {
	return queryList(s, "quotes", `
		SELECT id, customer, vehicle, price, status, quoted_on, probability
		FROM quotes ORDER BY id`, scanQuote)
}

const dealCols = "id, customer_name, vehicle, stock_no, price, monthly, status, gross, tier, probability, salesperson"

func scanDeal(r rowScanner) (model.Deal, error) {
	var d model.Deal
	err := r.Scan(&d.ID, &d.CustomerName, &d.Vehicle, &d.StockNo, &d.Price, &d.Monthly, &d.Status, &d.Gross,
		&d.Tier, &d.Probability, &d.Salesperson)
	return d, err
}

// Deals returns the desking pipeline.
func (s *Store) Deals() ([]model.Deal, error) {
	return queryList(s, "deals", "SELECT "+dealCols+" FROM deals ORDER BY id", scanDeal)
}

// Deal looks up one deal by id.
func (s *Store) Deal(id string) (model.Deal, error) {
	return queryOne(s, "deal", id, "SELECT "+dealCols+" FROM deals WHERE id = ?", scanDeal)
}

// SalesSummary aggregates CRM and lot figures.
func (s *Store) SalesSummary() (model.SalesSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	var sum model.SalesSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM leads),
			(SELECT count(*) FROM leads WHERE lead_score >= ?),
			(SELECT coalesce(sum(price), 0) FROM inventory),
			(SELECT count(*) FROM inventory)`,
		model.HotLeadScore,
	).Scan(&sum.ActiveLeads, &sum.HotLeads, &sum.InventoryValue, &sum.UnitsInStock)
	if err != nil {
		return model.SalesSummary{}, fmt.Errorf("sales summary: %w", err)
	}
	return sum, nil
}

// TableRowCounts returns the row count of each dealership table.
func (s *Store) TableRowCounts() (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	counts := make(map[string]int64, len(seedTables))
	for _, table := range seedTables {
		var n int64
		// Table names are constants, not user input.
		if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

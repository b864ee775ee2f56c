package model

import "time"

// ROStatus is the lifecycle stage of a repair order.
type ROStatus string

const (
	ROAppointment     ROStatus = "Appointment"
	ROCheckedIn       ROStatus = "Checked-In"
	RODiagnosis       ROStatus = "Diagnosis"
	ROApprovalPending ROStatus = "Approval Pending"
	ROPartsHold       ROStatus = "Parts Hold"
	ROWorking         ROStatus = "Working"
	ROReady           ROStatus = "Ready"
	ROClosed          ROStatus = "Closed"
)

// NeedsAction reports whether the RO is blocked on the customer or on parts.
func (s ROStatus) NeedsAction() bool {
	return s == ROApprovalPending || s == ROPartsHold
}

// RepairOrder is a service department repair order.
type RepairOrder struct {
	ID            string    `yaml:"id"`
	CustomerName  string    `yaml:"customerName"`
	Vehicle       string    `yaml:"vehicle"`
	VIN           string    `yaml:"vin"`
	Status        ROStatus  `yaml:"status"`
	PromiseTime   time.Time `yaml:"promiseTime"`
	Advisor       string    `yaml:"advisor"`
	Technician    string    `yaml:"technician"`
	TotalEstimate float64   `yaml:"totalEstimate"`
	Concern       string    `yaml:"concern"`
	Stage         string    `yaml:"stage"`
}

// Lead is a CRM sales opportunity.
type Lead struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	InterestModel string `yaml:"interestModel"`
	LeadScore     int    `yaml:"leadScore"`
	LastContact   string `yaml:"lastContact"`
	Status        string `yaml:"status"`
	Source        string `yaml:"source"`
}

// HotLeadScore is the score at which a lead counts as hot.
const HotLeadScore = 80

// Hot reports whether the lead scores at or above HotLeadScore.
func (l Lead) Hot() bool { return l.LeadScore >= HotLeadScore }

// Customer is a Customer 360 record.
type Customer struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Email     string   `yaml:"email"`
	Phone     string   `yaml:"phone"`
	Address   string   `yaml:"address"`
	Tier      string   `yaml:"tier"`
	Status    string   `yaml:"status"`
	LTV       float64  `yaml:"ltv"`
	Vehicles  []string `yaml:"vehicles"`
	Tags      []string `yaml:"tags"`
	LastVisit string   `yaml:"lastVisit"`
	Sentiment string   `yaml:"sentiment"`
}

// Technician is a shop technician.
type Technician struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Initials   string `yaml:"initials"`
	Status     string `yaml:"status"` // Working, Idle, Lunch, Leave
	Efficiency int    `yaml:"efficiency"`
	CurrentRO  string `yaml:"currentRO"`
	SkillLevel string `yaml:"skillLevel"`
}

// InventoryVehicle is a unit on the lot.
type InventoryVehicle struct {
	StockID     string  `yaml:"stockId"`
	Year        int     `yaml:"year"`
	Make        string  `yaml:"make"`
	Model       string  `yaml:"model"`
	Trim        string  `yaml:"trim"`
	Price       float64 `yaml:"price"`
	Status      string  `yaml:"status"` // In Stock, In Transit, Sold
	DaysInStock int     `yaml:"daysInStock"`
}

// Activity is a calendar task or appointment. DayOffset is relative to today.
type Activity struct {
	ID           string `yaml:"id"`
	Type         string `yaml:"type"`
	Title        string `yaml:"title"`
	DayOffset    int    `yaml:"dayOffset"`
	Time         string `yaml:"time"`
	Duration     int    `yaml:"duration"`
	Status       string `yaml:"status"`
	CustomerName string `yaml:"customerName"`
	Priority     string `yaml:"priority"`
}

// Date returns the calendar day of the activity relative to now.
func (a Activity) Date(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, a.DayOffset)
}

// Quote is a saved sales quote.
type Quote struct {
	ID          string  `yaml:"id"`
	Customer    string  `yaml:"customer"`
	Vehicle     string  `yaml:"vehicle"`
	Price       float64 `yaml:"price"`
	Status      string  `yaml:"status"`
	Date        string  `yaml:"date"`
	Probability string  `yaml:"probability"`
}

// Deal is a structured deal in the desking pipeline.
type Deal struct {
	ID           string  `yaml:"id"`
	CustomerName string  `yaml:"customerName"`
	Vehicle      string  `yaml:"vehicle"`
	StockNo      string  `yaml:"stockNo"`
	Price        float64 `yaml:"price"`
	Monthly      float64 `yaml:"monthly"` // 0 for cash deals
	Status       string  `yaml:"status"`  // Negotiation, F&I Pending, Approved, Sold
	Gross        float64 `yaml:"gross"`
	Tier         string  `yaml:"tier"`
	Probability  int     `yaml:"probability"`
	Salesperson  string  `yaml:"salesperson"`
}

// ConfigOption is one priced choice in a configurator category.
type ConfigOption struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Price  float64 `yaml:"price"`
	Detail string  `yaml:"detail"`
}

// ConfigOptions groups every configurator category of a model.
type ConfigOptions struct {
	Engines       []ConfigOption `yaml:"engines"`
	Transmissions []ConfigOption `yaml:"transmissions"`
	Colors        []ConfigOption `yaml:"colors"`
	Interiors     []ConfigOption `yaml:"interiors"`
	Wheels        []ConfigOption `yaml:"wheels"`
	Packages      []ConfigOption `yaml:"packages"`
}

// ConfigurableModel is a showroom model that can be built and priced.
type ConfigurableModel struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Year      int           `yaml:"year"`
	Tagline   string        `yaml:"tagline"`
	BasePrice float64       `yaml:"basePrice"`
	Options   ConfigOptions `yaml:"configOptions"`
}

// Selections is a configured build of a ConfigurableModel.
type Selections struct {
	Engine       ConfigOption
	Transmission ConfigOption
	Exterior     ConfigOption
	Interior     ConfigOption
	Wheel        ConfigOption
	Packages     []string // package ids
}

// DefaultSelections returns the build a deal starts from when nothing was configured:
// first engine, transmission, interior and wheel, second exterior colour, no packages.
func (m ConfigurableModel) DefaultSelections() Selections {
	pick := func(opts []ConfigOption, idx int) ConfigOption {
		if len(opts) == 0 {
			return ConfigOption{}
		}
		if idx >= len(opts) {
			idx = len(opts) - 1
		}
		return opts[idx]
	}
	o := m.Options
	return Selections{
		Engine:       pick(o.Engines, 0),
		Transmission: pick(o.Transmissions, 0),
		Exterior:     pick(o.Colors, 1),
		Interior:     pick(o.Interiors, 0),
		Wheel:        pick(o.Wheels, 0),
	}
}

// ServiceSummary aggregates the open service pipeline.
type ServiceSummary struct {
	ActiveROs      int
	ActionRequired int
	PipelineValue  float64
	OpenROs        int
}

// SalesSummary aggregates CRM and lot figures.
type SalesSummary struct {
	ActiveLeads    int
	HotLeads       int
	InventoryValue float64
	UnitsInStock   int
}

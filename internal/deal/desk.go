package deal

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"
)

// Desk limits and defaults.
const (
	DefaultTerm = 60
	MinTerm     = 24
	MaxTerm     = 84
	TermStep    = 12

	DefaultDown = 5000
	MinDown     = 0
	MaxDown     = 20000
	DownStep    = 500

	DefaultTier  = "700-749 (Prime)"
	GoldDealTier = "650-699 (Non-Prime)"

	DefaultScore      = 82
	DefaultFrontGross = 2450
	BackGross         = 1890
)

// DeskInput is what the deal editor opens with.
type DeskInput struct {
	Model      model.ConfigurableModel
	Selections *model.Selections // nil → model defaults
	Deal       *model.Deal       // set when editing a pipeline deal
	Quote      *model.Quote      // set when reopening a saved quote
	Source     string
}

// Desk is the editable state of one deal structure.
type Desk struct {
	calc  Calculator
	rates *RateTable

	Model      model.ConfigurableModel
	Selections model.Selections
	Deal       *model.Deal
	Quote      *model.Quote
	Source     string

	Mode          Mode
	Tier          string
	Term          int
	Down          float64
	TradeInValue  float64
	TradeInPayoff float64
	ManagerMode   bool

	products []string
}

// NewDesk opens a desk with the default structure for in.
func NewDesk(rates *RateTable, in DeskInput) *Desk {
	sel := in.Model.DefaultSelections()
	if in.Selections != nil {
		sel = *in.Selections
	}
	tier := DefaultTier
	if in.Deal != nil && in.Deal.Tier == "Gold" {
		tier = GoldDealTier
	}
	return &Desk{
		calc:       NewCalculator(rates),
		rates:      rates,
		Model:      in.Model,
		Selections: sel,
		Deal:       in.Deal,
		Quote:      in.Quote,
		Source:     in.Source,
		Mode:       ModeFinance,
		Tier:       tier,
		Term:       DefaultTerm,
		Down:       DefaultDown,
	}
}

// Title names the structure being edited.
func (d *Desk) Title() string {
	switch {
	case d.Deal != nil:
		return fmt.Sprintf("Editing %s - %s", d.Deal.ID, d.Deal.CustomerName)
	case d.Quote != nil:
		return fmt.Sprintf("Quote %s - %s", d.Quote.ID, d.Quote.Customer)
	default:
		return "New Deal Structure"
	}
}

// OptionsTotal sums the prices of the selected build options and packages.
func (d *Desk) OptionsTotal() float64 {
	s := d.Selections
	prices := []float64{s.Engine.Price, s.Transmission.Price, s.Exterior.Price, s.Interior.Price, s.Wheel.Price}
	for _, pkg := range d.Model.Options.Packages {
		if contains(s.Packages, pkg.ID) {
			prices = append(prices, pkg.Price)
		}
	}
	return money.Sum(prices...)
}

// MSRP is the base price plus options.
func (d *Desk) MSRP() float64 {
	return money.Sum(d.Model.BasePrice, d.OptionsTotal())
}

// VehiclePrice is the saved deal price when editing a deal, otherwise the MSRP.
func (d *Desk) VehiclePrice() float64 {
	if d.Deal != nil {
		return d.Deal.Price
	}
	return d.MSRP()
}

// APR is the rate of the selected credit tier.
func (d *Desk) APR() float64 { return d.rates.Rate(d.Tier) }

// Params snapshots the desk as calculator input.
func (d *Desk) Params() Params {
	return Params{
		VehiclePrice:  d.VehiclePrice(),
		TradeInValue:  d.TradeInValue,
		TradeInPayoff: d.TradeInPayoff,
		DownPayment:   d.Down,
		TermMonths:    d.Term,
		APR:           d.APR(),
		Mode:          d.Mode,
		ProductIDs:    d.Products(),
	}
}

// Result prices the current structure.
func (d *Desk) Result() Result { return d.calc.Calculate(d.Params()) }

// Scenarios prices the alternative structures with their down payments held
// to the desk range, so applying a card lands on the deal it shows.
func (d *Desk) Scenarios() []Scenario {
	p := d.Params()
	out := d.calc.Scenarios(p)
	for i := range out {
		down := clampFloat(out[i].DownPayment, MinDown, MaxDown)
		if down == out[i].DownPayment {
			continue
		}
		q := p
		q.DownPayment = down
		out[i].DownPayment = down
		out[i].Result = d.calc.Calculate(q)
	}
	return out
}

// Suggestion proposes the next longer term when it lowers the payment.
func (d *Desk) Suggestion() (TermSuggestion, bool) {
	return d.calc.SuggestTerm(d.Params(), TermStep, MaxTerm)
}

// ApplySuggestion moves to the suggested term. It reports whether anything changed.
func (d *Desk) ApplySuggestion() bool {
	s, ok := d.Suggestion()
	if !ok {
		return false
	}
	d.Term = s.TermMonths
	return true
}

// ApplyScenario adopts the scenario's down payment and term.
func (d *Desk) ApplyScenario(s Scenario) {
	d.Down = clampFloat(s.DownPayment, MinDown, MaxDown)
	d.Term = clampInt(s.TermMonths, MinTerm, MaxTerm)
}

// AdjustDown moves the down payment by steps increments of DownStep.
func (d *Desk) AdjustDown(steps int) {
	d.Down = clampFloat(d.Down+float64(steps*DownStep), MinDown, MaxDown)
}

// AdjustTerm moves the term by steps increments of TermStep.
func (d *Desk) AdjustTerm(steps int) {
	d.Term = clampInt(d.Term+steps*TermStep, MinTerm, MaxTerm)
}

// CycleMode advances to the next payment mode.
func (d *Desk) CycleMode() {
	for i, m := range Modes {
		if m == d.Mode {
			d.Mode = Modes[(i+1)%len(Modes)]
			return
		}
	}
	d.Mode = ModeFinance
}

// CycleTier moves dir positions through the credit tiers, wrapping.
func (d *Desk) CycleTier(dir int) {
	tiers := d.rates.tiers()
	if len(tiers) == 0 {
		return
	}
	i := d.rates.TierIndex(d.Tier)
	if i < 0 {
		d.Tier = tiers[0].Name
		return
	}
	n := len(tiers)
	d.Tier = tiers[((i+dir)%n+n)%n].Name
}

// SetTradeIn sets the trade allowance and payoff. Negative inputs become 0.
func (d *Desk) SetTradeIn(value, payoff float64) {
	d.TradeInValue = max(0, value)
	d.TradeInPayoff = max(0, payoff)
}

// ToggleProduct adds or removes an F&I product and reports whether it is now selected.
// Unknown ids are ignored.
func (d *Desk) ToggleProduct(id string) bool {
	if _, ok := d.rates.Product(id); !ok {
		return false
	}
	for i, p := range d.products {
		if p == id {
			d.products = append(d.products[:i], d.products[i+1:]...)
			return false
		}
	}
	d.products = append(d.products, id)
	return true
}

// ProductSelected reports whether id is on the deal.
func (d *Desk) ProductSelected(id string) bool { return contains(d.products, id) }

// Products returns the selected product ids in selection order.
func (d *Desk) Products() []string {
	return append([]string(nil), d.products...)
}

// Score is the close probability shown on the desk.
func (d *Desk) Score() int {
	if d.Deal != nil {
		return d.Deal.Probability
	}
	return DefaultScore
}

// Gross returns front, back and total gross profit for manager mode.
func (d *Desk) Gross() (front, back, total float64) {
	front = DefaultFrontGross
	if d.Deal != nil && d.Deal.Gross != 0 {
		front = d.Deal.Gross
	}
	return front, BackGross, front + BackGross
}

// Summary renders the structure as plain text for sharing.
func (d *Desk) Summary() string {
	r := d.Result()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", d.Title())
	fmt.Fprintf(&b, "Vehicle:        %d %s\n", d.Model.Year, d.Model.Name)
	fmt.Fprintf(&b, "Price:          %s\n", money.USD(d.VehiclePrice()))
	fmt.Fprintf(&b, "Mode:           %s\n", d.Mode.Label())
	if d.Mode != ModeCash {
		fmt.Fprintf(&b, "Term:           %d mo @ %.2f%% (%s)\n", d.Term, r.Rate, d.Tier)
	}
	fmt.Fprintf(&b, "Down:           %s\n", money.USD(d.Down))
	if d.TradeInValue != 0 || d.TradeInPayoff != 0 {
		fmt.Fprintf(&b, "Net trade:      %s\n", money.USD(r.NetTrade))
	}
	for _, id := range d.products {
		if p, ok := d.rates.Product(id); ok {
			fmt.Fprintf(&b, "  + %-28s %s\n", p.Name, money.USD(p.Price))
		}
	}
	fmt.Fprintf(&b, "Doc fee:        %s\n", money.USD(DocFee))
	fmt.Fprintf(&b, "Taxes:          %s\n", money.USDCents(r.Taxes))
	if d.Mode == ModeCash {
		fmt.Fprintf(&b, "Total due:      %s\n", money.USDCents(r.AmountFinanced))
	} else {
		fmt.Fprintf(&b, "Amount financed: %s\n", money.USDCents(r.AmountFinanced))
		fmt.Fprintf(&b, "Monthly payment: %s\n", money.USDCents(r.MonthlyPayment))
	}
	return b.String()
}

func (rt *RateTable) tiers() []CreditTier {
	if rt == nil {
		return nil
	}
	return rt.CreditTiers
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

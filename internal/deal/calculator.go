// Package deal prices vehicle deals: finance, lease and cash payments,
// alternative scenarios and the interactive desk state behind the deal editor.
package deal

import (
	"math"
	"strings"
)

// Fixed pricing constants.
const (
	DocFee          = 499.0
	TaxRate         = 0.07
	LeaseResidual   = 0.55
	LeaseRentFactor = 0.0025
)

// Mode is how the customer pays for the vehicle.
type Mode string

const (
	ModeFinance Mode = "FINANCE"
	ModeLease   Mode = "LEASE"
	ModeCash    Mode = "CASH"
)

// Modes lists the payment modes in UI cycle order.
var Modes = []Mode{ModeFinance, ModeLease, ModeCash}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, true
		}
	}
	return "", false
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeLease:
		return "Lease"
	case ModeCash:
		return "Cash"
	default:
		return "Finance"
	}
}

// Params are the inputs of one calculation.
type Params struct {
	VehiclePrice  float64 // MSRP plus options, or the saved deal price
	TradeInValue  float64
	TradeInPayoff float64
	DownPayment   float64
	TermMonths    int
	APR           float64 // percent
	Mode          Mode
	ProductIDs    []string
}

// Result is the priced outcome of a calculation.
type Result struct {
	AmountFinanced float64
	MonthlyPayment float64
	Rate           float64
	Taxes          float64
	TotalPrice     float64 // vehicle plus F&I products

	NetTrade      float64
	ProductsTotal float64
	Taxable       float64
}

// Compute prices p given the summed F&I product total. It is pure.
// Terms below one month are treated as one month.
func Compute(p Params, productsTotal float64) Result {
	n := p.TermMonths
	if n < 1 {
		n = 1
	}

	netTrade := p.TradeInValue - p.TradeInPayoff
	taxable := p.VehiclePrice + productsTotal + DocFee - math.Max(0, netTrade)
	taxes := taxable * TaxRate
	financed := p.VehiclePrice + productsTotal + DocFee + taxes - p.DownPayment - netTrade
	monthlyRate := p.APR / 100 / 12

	var payment float64
	switch p.Mode {
	case ModeCash:
	case ModeLease:
		residual := p.VehiclePrice * LeaseResidual
		depreciation := (financed - residual) / float64(n)
		rent := (financed + residual) * LeaseRentFactor
		payment = depreciation + rent
	default:
		payment = amortize(financed, monthlyRate, n)
	}

	return Result{
		AmountFinanced: financed,
		MonthlyPayment: payment,
		Rate:           p.APR,
		Taxes:          taxes,
		TotalPrice:     p.VehiclePrice + productsTotal,
		NetTrade:       netTrade,
		ProductsTotal:  productsTotal,
		Taxable:        taxable,
	}
}

func amortize(principal, monthlyRate float64, n int) float64 {
	if principal <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(n)
	}
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(n)))
}

// Calculator resolves product ids against a rate table before computing.
// The zero value prices every product at 0.
type Calculator struct {
	rates *RateTable
}

// NewCalculator returns a calculator backed by rates.
func NewCalculator(rates *RateTable) Calculator {
	return Calculator{rates: rates}
}

// Calculate prices p.
func (c Calculator) Calculate(p Params) Result {
	return Compute(p, c.rates.ProductsTotal(p.ProductIDs))
}

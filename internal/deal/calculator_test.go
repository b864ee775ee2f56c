package deal

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates(t *testing.T) *RateTable {
	t.Helper()
	rt, err := DefaultRates()
	require.NoError(t, err)
	return rt
}

func baseParams() Params {
	return Params{
		VehiclePrice: 50000,
		DownPayment:  5000,
		TermMonths:   60,
		APR:          5.9,
		Mode:         ModeFinance,
	}
}

func TestCompute_FinanceMatchesAmortization(t *testing.T) {
	t.Parallel()

	p := baseParams()
	got := Compute(p, 0)

	taxes := (50000 + DocFee) * TaxRate
	financed := 50000 + DocFee + taxes - 5000
	mr := 5.9 / 100 / 12
	want := financed * mr / (1 - math.Pow(1+mr, -60))

	assert.InDelta(t, taxes, got.Taxes, 1e-9)
	assert.InDelta(t, financed, got.AmountFinanced, 1e-9)
	assert.InDelta(t, want, got.MonthlyPayment, 1e-9)
	assert.Equal(t, 5.9, got.Rate)
	assert.Equal(t, 50000.0, got.TotalPrice)
}

func TestCalculate_FinanceNoOptions(t *testing.T) {
	t.Parallel()

	p := Params{
		VehiclePrice: 40000,
		DownPayment:  5000,
		TermMonths:   60,
		APR:          5.9,
		Mode:         ModeFinance,
	}
	got := NewCalculator(testRates(t)).Calculate(p)

	taxable := 40000.0 + DocFee
	taxes := taxable * TaxRate
	financed := taxable + taxes - 5000
	mr := 5.9 / 100 / 12
	want := financed * mr / (1 - math.Pow(1+mr, -60))

	assert.Zero(t, got.ProductsTotal)
	assert.Zero(t, got.NetTrade)
	assert.InDelta(t, financed, got.AmountFinanced, 1e-9)
	assert.InDelta(t, want, got.MonthlyPayment, 1e-9)
}

func TestCompute_CashHasNoPayment(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.Mode = ModeCash
	p.ProductIDs = []string{"gap"}
	got := Compute(p, 895)

	assert.Zero(t, got.MonthlyPayment)
	total := 50000 + 895 + DocFee + got.Taxes - 5000
	assert.InDelta(t, total, got.AmountFinanced, 1e-9)
	assert.Equal(t, 50895.0, got.TotalPrice)
}

func TestCompute_ZeroAPRIsStraightLine(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.APR = 0
	got := Compute(p, 0)

	assert.InDelta(t, got.AmountFinanced/60, got.MonthlyPayment, 1e-9)
}

func TestCompute_NonPositiveFinancedHasNoPayment(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.DownPayment = 60000
	got := Compute(p, 0)

	assert.Less(t, got.AmountFinanced, 0.0)
	assert.Zero(t, got.MonthlyPayment)
}

func TestCompute_TradeEquityAsymmetry(t *testing.T) {
	t.Parallel()

	base := Compute(baseParams(), 0)

	positive := baseParams()
	positive.TradeInValue = 10000
	pos := Compute(positive, 0)
	assert.InDelta(t, base.Taxable-10000, pos.Taxable, 1e-9)
	assert.InDelta(t, 10000, pos.NetTrade, 1e-9)

	negative := baseParams()
	negative.TradeInPayoff = 4000
	neg := Compute(negative, 0)
	assert.InDelta(t, base.Taxable, neg.Taxable, 1e-9)
	assert.InDelta(t, base.AmountFinanced+4000, neg.AmountFinanced, 1e-9)
}

func TestCompute_Lease(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.Mode = ModeLease
	p.TermMonths = 36
	got := Compute(p, 0)

	residual := 50000 * LeaseResidual
	want := (got.AmountFinanced-residual)/36 + (got.AmountFinanced+residual)*LeaseRentFactor
	assert.InDelta(t, want, got.MonthlyPayment, 1e-9)
}

func TestCompute_TermBelowOneIsClamped(t *testing.T) {
	t.Parallel()

	p := baseParams()
	p.APR = 0
	p.TermMonths = 0
	got := Compute(p, 0)

	assert.InDelta(t, got.AmountFinanced, got.MonthlyPayment, 1e-9)
}

func TestCalculator_ResolvesProducts(t *testing.T) {
	t.Parallel()

	c := NewCalculator(testRates(t))
	p := baseParams()
	p.ProductIDs = []string{"gap", "theft", "not-a-product"}
	got := c.Calculate(p)

	assert.Equal(t, 895.0+299.0, got.ProductsTotal)
	assert.Equal(t, 50000.0+895+299, got.TotalPrice)

	var zero Calculator
	assert.Zero(t, zero.Calculate(p).ProductsTotal)
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	c := NewCalculator(testRates(t))
	p := baseParams()
	p.ProductIDs = []string{"svc_contract"}
	got := c.Scenarios(p)
	require.Len(t, got, 3)

	assert.Equal(t, "Aggressive", got[0].Label)
	assert.Equal(t, 8000.0, got[0].DownPayment)
	assert.Equal(t, "Balanced", got[1].Label)
	assert.Equal(t, c.Calculate(p), got[1].Result)
	assert.Equal(t, "No Money Down", got[2].Label)
	assert.Zero(t, got[2].DownPayment)

	for _, s := range got {
		assert.Equal(t, 60, s.TermMonths)
	}
	assert.Less(t, got[0].Result.MonthlyPayment, got[1].Result.MonthlyPayment)
	assert.Less(t, got[1].Result.MonthlyPayment, got[2].Result.MonthlyPayment)

	// The input is not mutated.
	assert.Equal(t, 5000.0, p.DownPayment)
}

func TestSuggestTerm(t *testing.T) {
	t.Parallel()

	c := NewCalculator(testRates(t))
	p := baseParams()

	s, ok := c.SuggestTerm(p, TermStep, MaxTerm)
	require.True(t, ok)
	assert.Equal(t, 72, s.TermMonths)
	assert.Greater(t, s.Savings, 0.0)
	assert.InDelta(t, c.Calculate(p).MonthlyPayment-s.MonthlyPayment, s.Savings, 1e-9)
	assert.Greater(t, s.TotalInterest, 0.0)

	p.TermMonths = 84
	_, ok = c.SuggestTerm(p, TermStep, MaxTerm)
	assert.False(t, ok, "no term beyond the maximum")

	p.TermMonths = 60
	p.Mode = ModeCash
	_, ok = c.SuggestTerm(p, TermStep, MaxTerm)
	assert.False(t, ok, "cash deals have no term")
}

func TestCalculate_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := NewCalculator(testRates(t))
	p := baseParams()
	p.ProductIDs = []string{"gap"}
	want := c.Calculate(p)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, c.Calculate(p))
		}()
	}
	wg.Wait()
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, ok := ParseMode(" lease ")
	assert.True(t, ok)
	assert.Equal(t, ModeLease, m)
	assert.Equal(t, "Lease", m.Label())

	_, ok = ParseMode("barter")
	assert.False(t, ok)
}

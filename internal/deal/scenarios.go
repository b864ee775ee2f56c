package deal

// AggressiveDownIncrease is the extra cash down the aggressive scenario adds.
const AggressiveDownIncrease = 3000

// Scenario is one alternative deal structure shown beside the desk.
type Scenario struct {
	Label       string
	Description string
	DownPayment float64
	TermMonths  int
	Result      Result
}

// Scenarios prices the aggressive, balanced and no-money-down structures of p.
// Each one is an independent calculation over a copy of p.
func (c Calculator) Scenarios(p Params) []Scenario {
	variants := []struct {
		label, desc string
		down        float64
	}{
		{"Aggressive", "Higher Down, Lower Pmt", p.DownPayment + AggressiveDownIncrease},
		{"Balanced", "Standard Terms", p.DownPayment},
		{"No Money Down", "Sign & Drive", 0},
	}

	out := make([]Scenario, 0, len(variants))
	for _, v := range variants {
		q := p
		q.DownPayment = v.down
		out = append(out, Scenario{
			Label:       v.label,
			Description: v.desc,
			DownPayment: v.down,
			TermMonths:  p.TermMonths,
			Result:      c.Calculate(q),
		})
	}
	return out
}

// TermSuggestion is a longer term that lowers the monthly payment.
type TermSuggestion struct {
	TermMonths     int
	MonthlyPayment float64
	Savings        float64 // per month, relative to the current term
	TotalInterest  float64 // at the suggested term, finance only
}

// SuggestTerm prices p at TermMonths+step. It reports false when that term
// exceeds maxTerm, when the deal is cash, or when the payment would not drop.
func (c Calculator) SuggestTerm(p Params, step, maxTerm int) (TermSuggestion, bool) {
	if p.Mode == ModeCash || step <= 0 {
		return TermSuggestion{}, false
	}
	next := p.TermMonths + step
	if next > maxTerm {
		return TermSuggestion{}, false
	}

	current := c.Calculate(p)
	q := p
	q.TermMonths = next
	longer := c.Calculate(q)

	savings := current.MonthlyPayment - longer.MonthlyPayment
	if savings <= 0 {
		return TermSuggestion{}, false
	}

	s := TermSuggestion{
		TermMonths:     next,
		MonthlyPayment: longer.MonthlyPayment,
		Savings:        savings,
	}
	if p.Mode == ModeFinance && longer.AmountFinanced > 0 {
		s.TotalInterest = longer.MonthlyPayment*float64(next) - longer.AmountFinanced
	}
	return s, true
}

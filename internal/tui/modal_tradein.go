package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/deal"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TradeInModal edits the trade allowance and payoff of a desk.
type TradeInModal struct {
	ctx      ModalContext
	desk     *deal.Desk
	inputs   [2]textinput.Model // allowance, payoff
	focus    int
	err      string
	viewport viewport.Model
}

func NewTradeInModal(d *deal.Desk, ctx ModalContext) *TradeInModal {
	t := &TradeInModal{ctx: ctx, desk: d, viewport: viewport.New(80, 20)}
	for i, v := range []float64{d.TradeInValue, d.TradeInPayoff} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.CharLimit = 12
		if v != 0 {
			ti.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
		}
		t.inputs[i] = ti
	}
	t.inputs[0].Focus()
	return t
}

func (t *TradeInModal) ID() string { return "trade-in" }

func (t *TradeInModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch k.String() {
	case "esc", "escape":
		return true, nil
	case "tab", "shift+tab", "up", "down":
		t.inputs[t.focus].Blur()
		t.focus = 1 - t.focus
		return false, t.inputs[t.focus].Focus()
	case "enter":
		value, err := parseAmount(t.inputs[0].Value())
		if err != nil {
			t.err = "Trade allowance: " + err.Error()
			return false, nil
		}
		payoff, err := parseAmount(t.inputs[1].Value())
		if err != nil {
			t.err = "Loan payoff: " + err.Error()
			return false, nil
		}
		t.desk.SetTradeIn(value, payoff)
		return true, statusCmd(fmt.Sprintf("Trade-in set: allowance %.0f, payoff %.0f", t.desk.TradeInValue, t.desk.TradeInPayoff))
	}
	var cmd tea.Cmd
	t.inputs[t.focus], cmd = t.inputs[t.focus].Update(msg)
	t.err = ""
	return false, cmd
}

// parseAmount accepts plain or formatted dollar amounts. Blank means zero.
func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount", s)
	}
	return v, nil
}

func (t *TradeInModal) View(width, height int) string {
	labels := []string{"Trade Allowance", "Loan Payoff"}
	var b strings.Builder
	for i, in := range t.inputs {
		marker := "  "
		if i == t.focus {
			marker = "> "
		}
		b.WriteString(marker + keyStyle.Render(labels[i]) + "$" + in.View() + "\n")
	}
	if t.err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(ColorRed).Render(t.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("Negative amounts are treated as zero."))

	return renderModalFrame(&t.viewport, modalFrame{
		Title:   "Trade-In",
		Content: b.String(),
		Status:  []string{"Tab: Next field", "Enter: Apply", "ESC: Cancel"},
	}, width, height)
}

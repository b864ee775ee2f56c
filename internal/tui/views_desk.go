package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// deskFor returns the desk of a DEAL_EDITOR tab, opening it on first use.
func (m *WorkspaceModel) deskFor(tab workspace.Tab) *deal.Desk {
	if d, ok := m.desks[tab.ID]; ok {
		return d
	}
	payload, ok := tab.DealEditor()
	if !ok {
		return nil
	}

	in := deal.DeskInput{Selections: payload.Selections, Source: payload.Source}
	in.Model = m.resolveModel(payload.ModelID)
	if payload.DealID != "" {
		for i := range m.data.deals {
			if m.data.deals[i].ID == payload.DealID {
				d := m.data.deals[i]
				in.Deal = &d
				break
			}
		}
	}
	if payload.QuoteID != "" {
		for i := range m.data.quotes {
			if m.data.quotes[i].ID == payload.QuoteID {
				q := m.data.quotes[i]
				in.Quote = &q
				in.Source = "Quote"
				break
			}
		}
	}

	// Hold off until the referenced record has loaded.
	if (payload.DealID != "" && in.Deal == nil) || (payload.QuoteID != "" && in.Quote == nil) {
		if !m.loaded {
			return nil
		}
		m.log.Warn("deal editor record not found",
			zap.String("tab", tab.ID),
			zap.String("deal", payload.DealID),
			zap.String("quote", payload.QuoteID))
	}

	d := deal.NewDesk(m.rates, in)
	m.desks[tab.ID] = d
	return d
}

// resolveModel finds a showroom model by id, falling back to the first one.
func (m *WorkspaceModel) resolveModel(id string) model.ConfigurableModel {
	if m.catalog == nil {
		return model.ConfigurableModel{ID: id}
	}
	if cm, ok := m.catalog.Model(id); ok {
		return cm
	}
	if models := m.catalog.ShowroomModels(); len(models) > 0 {
		return models[0]
	}
	return model.ConfigurableModel{ID: id}
}

// activeDesk is the desk of the active tab, if it is a deal editor.
func (m *WorkspaceModel) activeDesk() *deal.Desk {
	tab := m.nav.ActiveTab()
	if tab.Type != workspace.ViewDealEditor {
		return nil
	}
	return m.deskFor(tab)
}

func (m *WorkspaceModel) deskDecks(tab workspace.Tab) []Deck {
	d := m.deskFor(tab)
	if d == nil {
		return nil
	}
	decks := []Deck{
		deskStructureDeck(d),
		deskAnalysisDeck(d),
		m.deskScenariosDeck(d),
		m.deskProductsDeck(d),
	}
	if m.nav.Role() == workspace.RoleManager {
		decks = append(decks, deskProfitDeck(d))
	}
	return decks
}

func deskStructureDeck(d *deal.Desk) Deck {
	r := d.Result()
	sel := d.Selections
	lines := []textLine{
		kv("Vehicle", fmt.Sprintf("%d %s", d.Model.Year, d.Model.Name)),
		kv("Build", joinNonEmpty(" · ", sel.Engine.Name, sel.Exterior.Name, sel.Interior.Name, sel.Wheel.Name)),
		kv("Vehicle Price", money.USD(d.VehiclePrice())),
		kv("Payment Type", d.Mode.Label()),
	}
	if d.Mode != deal.ModeCash {
		lines = append(lines,
			kv("Term", fmt.Sprintf("%d months", d.Term)),
			kv("Credit Tier", fmt.Sprintf("%s (%.2f%%)", d.Tier, d.APR())),
		)
	}
	lines = append(lines, kv("Down Payment", money.USD(d.Down)))
	if d.TradeInValue != 0 || d.TradeInPayoff != 0 {
		lines = append(lines,
			kv("Trade Allowance", money.USD(d.TradeInValue)),
			kv("Trade Payoff", money.USD(d.TradeInPayoff)),
		)
	}
	lines = append(lines,
		kv("F&I Products", money.USD(r.ProductsTotal)),
		kv("Taxes & Fees", money.USDCents(r.Taxes+deal.DocFee)),
	)
	if d.Mode == deal.ModeCash {
		lines = append(lines, textLine{key: "Total Due", value: money.USDCents(r.AmountFinanced), color: ColorGreen})
	} else {
		lines = append(lines,
			kv("Amount Financed", money.USDCents(r.AmountFinanced)),
			textLine{key: "Monthly Payment", value: money.USDCents(r.MonthlyPayment) + "/mo", color: ColorGreen},
		)
	}
	if d.Source != "" {
		lines = append(lines, kv("Source", d.Source))
	}
	return NewTextDeck("desk-structure", d.Title(), lines...)
}

func deskAnalysisDeck(d *deal.Desk) Deck {
	score := d.Score()
	lines := []textLine{
		{key: "Deal Score", value: fmt.Sprintf("%d", score), color: probabilityColor(score)},
		note("High Probability of Close"),
	}
	if s, ok := d.Suggestion(); ok {
		lines = append(lines, note(fmt.Sprintf(
			"Extending the term to %d months could lower the payment by %s/mo (press s).",
			s.TermMonths, money.USD(s.Savings))))
	} else {
		lines = append(lines, note("Current structure is already optimal."))
	}
	return NewTextDeck("desk-analysis", "Deal Analysis", lines...)
}

func (m *WorkspaceModel) deskScenariosDeck(d *deal.Desk) Deck {
	scenarios := d.Scenarios()
	rows := make([]listRow, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, listRow{
			cells: []string{
				s.Label,
				money.USD(s.Result.MonthlyPayment) + "/mo",
				money.USD(s.DownPayment) + " down",
				fmt.Sprintf("%d mo", s.TermMonths),
			},
			onSelect: func() tea.Cmd {
				d.ApplyScenario(s)
				return statusCmd("Applied " + s.Label + " structure")
			},
		})
	}
	return NewListDeck("desk-scenarios", "Scenarios", rows)
}

func (m *WorkspaceModel) deskProductsDeck(d *deal.Desk) Deck {
	if m.rates == nil {
		return NewListDeck("desk-products", "Protect Your Investment", nil)
	}
	rows := make([]listRow, 0, len(m.rates.Products))
	for _, p := range m.rates.Products {
		mark := "[ ]"
		status := ""
		if d.ProductSelected(p.ID) {
			mark = "[x]"
			status = "Added"
		}
		rows = append(rows, listRow{
			cells:  []string{mark, p.Name, p.Type, money.USD(p.Price)},
			status: status,
			onSelect: func() tea.Cmd {
				if d.ToggleProduct(p.ID) {
					return statusCmd("Added " + p.Name)
				}
				return statusCmd("Removed " + p.Name)
			},
		})
	}
	return NewListDeck("desk-products", "Protect Your Investment", rows)
}

func deskProfitDeck(d *deal.Desk) Deck {
	if !d.ManagerMode {
		return NewTextDeck("desk-profit", "Profitability",
			note("Profit data hidden. Unlock Manager Mode to view (press M)."))
	}
	front, back, total := d.Gross()
	return NewTextDeck("desk-profit", "Profitability",
		textLine{key: "Status", value: "Healthy", color: ColorGreen},
		kv("Front Gross", money.USD(front)),
		kv("Back Gross (F&I)", money.USD(back)),
		textLine{key: "Total Gross", value: money.USD(total), color: ColorGreen},
	)
}

// handleDeskKey applies a deal desk control. It reports whether the key was used.
func (m *WorkspaceModel) handleDeskKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	d := m.activeDesk()
	if d == nil {
		return false, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.DeskMode):
		d.CycleMode()
	case key.Matches(msg, m.keys.DeskDownUp):
		d.AdjustDown(1)
	case key.Matches(msg, m.keys.DeskDownDown):
		d.AdjustDown(-1)
	case key.Matches(msg, m.keys.DeskTermUp):
		d.AdjustTerm(1)
	case key.Matches(msg, m.keys.DeskTermDown):
		d.AdjustTerm(-1)
	case key.Matches(msg, m.keys.DeskTier):
		d.CycleTier(1)
	case key.Matches(msg, m.keys.DeskTierBack):
		d.CycleTier(-1)
	case key.Matches(msg, m.keys.DeskSuggestion):
		if d.ApplySuggestion() {
			m.setNotice(fmt.Sprintf("Term extended to %d months", d.Term))
		} else {
			m.setNotice("No better term available")
		}
	case key.Matches(msg, m.keys.DeskManager):
		if m.nav.Role() != workspace.RoleManager {
			m.setNotice("Manager mode requires the Manager role")
			return true, nil
		}
		d.ManagerMode = !d.ManagerMode
	case key.Matches(msg, m.keys.DeskTradeIn):
		m.PushModal(NewTradeInModal(d, m.modalContext()))
		return true, nil
	case key.Matches(msg, m.keys.DeskFinalize):
		cmd = m.finalizeDesk(d)
	default:
		return false, nil
	}
	m.refreshDecks()
	return true, cmd
}

// finalizeDesk copies the quote summary to the clipboard.
func (m *WorkspaceModel) finalizeDesk(d *deal.Desk) tea.Cmd {
	if err := m.clipboardWrite(d.Summary()); err != nil {
		m.setError(fmt.Errorf("copy quote: %w", err))
		return nil
	}
	m.log.Info("quote finalized", zap.String("title", d.Title()))
	m.setNotice("Quote copied to clipboard")
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

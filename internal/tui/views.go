package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/dashboard"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
)

// viewBuilder produces the decks of one tab.
type viewBuilder func(m *WorkspaceModel, tab workspace.Tab) []Deck

var viewBuilders = map[workspace.ViewType]viewBuilder{
	workspace.ViewDashboard:      (*WorkspaceModel).dashboardDecks,
	workspace.ViewCRM:            (*WorkspaceModel).crmDecks,
	workspace.ViewCustomer360:    (*WorkspaceModel).customer360Decks,
	workspace.ViewCustomerDetail: (*WorkspaceModel).customerDetailDecks,
	workspace.ViewCalendar:       (*WorkspaceModel).calendarDecks,
	workspace.ViewSales:          (*WorkspaceModel).salesDecks,
	workspace.ViewDealDesk:       (*WorkspaceModel).dealsHubDecks,
	workspace.ViewDealEditor:     (*WorkspaceModel).deskDecks,
	workspace.ViewService:        (*WorkspaceModel).serviceDecks,
	workspace.ViewRODetail:       (*WorkspaceModel).roDecks,
	workspace.ViewTech:           (*WorkspaceModel).techDecks,
	workspace.ViewAdmin:          (*WorkspaceModel).adminDecks,
}

// buildDecks returns the decks for tab. Views without a builder, such as
// reports, render the empty page placeholder.
func (m *WorkspaceModel) buildDecks(tab workspace.Tab) []Deck {
	if !m.loaded {
		return nil
	}
	b, ok := viewBuilders[tab.Type]
	if !ok {
		return nil
	}
	return b(m, tab)
}

// refreshDecks rebuilds the active tab after its underlying state changed.
func (m *WorkspaceModel) refreshDecks() {
	m.persistViewState()
	m.rebuildDecks()
}

func (m *WorkspaceModel) dashboardDecks(_ workspace.Tab) []Deck {
	vm := dashboard.Build(m.nav.Role(), m.data.snap)
	decks := []Deck{NewKPIDeck(vm.Header+" · "+vm.Subtitle, vm.KPIs)}
	if vm.Tech != nil {
		return append(decks, m.techHubDecks(vm.Tech)...)
	}
	return append(decks,
		NewListDeck("main", vm.MainTitle, itemRows(vm.Main)),
		NewListDeck("side", vm.SideTitle, itemRows(vm.Side)),
	)
}

func itemRows(items []dashboard.Item) []listRow {
	rows := make([]listRow, 0, len(items))
	for _, it := range items {
		status := it.Status
		if status == "" {
			status = it.Severity
		}
		rows = append(rows, listRow{
			cells:  []string{it.Title, it.Subtitle, it.Metric},
			status: status,
			open:   it.Open,
		})
	}
	return rows
}

func (m *WorkspaceModel) crmDecks(_ workspace.Tab) []Deck {
	leads := m.data.snap.Leads
	rows := make([]listRow, 0, len(leads))
	hot, total := 0, 0
	for _, l := range leads {
		if l.Hot() {
			hot++
		}
		total += l.LeadScore
		tab := workspace.LeadTab(l)
		rows = append(rows, listRow{
			cells:  []string{l.Name, l.InterestModel, fmt.Sprintf("%3d", l.LeadScore), l.Source, l.LastContact},
			status: l.Status,
			open:   &tab,
		})
	}
	avg := 0
	if len(leads) > 0 {
		avg = total / len(leads)
	}
	stats := NewTextDeck("crm-stats", "Pipeline",
		kv("Total Leads", fmt.Sprint(len(leads))),
		textLine{key: "Hot Leads", value: fmt.Sprint(hot), color: ColorRed},
		kv("Average Score", fmt.Sprint(avg)),
	)
	stats.wide = true
	return []Deck{stats, NewListDeck("leads", "Leads & Opportunities", rows)}
}

func (m *WorkspaceModel) customer360Decks(_ workspace.Tab) []Deck {
	rows := make([]listRow, 0, len(m.data.customers))
	for _, c := range m.data.customers {
		rows = append(rows, listRow{
			cells:  []string{c.Name, c.Tier, money.Compact(c.LTV), c.LastVisit},
			status: c.Status,
			onSelect: func() tea.Cmd {
				return pushModalCmd(NewDetailModal("customer-"+c.ID, c.Name, customerProfile(c), m.modalContext()))
			},
		})
	}
	return []Deck{NewListDeck("customers", "Customer 360", rows)}
}

// customerProfile renders a customer record as modal content.
func customerProfile(c model.Customer) string {
	var b strings.Builder
	line := func(k, v string) { fmt.Fprintf(&b, "%s%s\n", keyStyle.Render(k), v) }
	line("Customer ID", c.ID)
	line("Email", c.Email)
	line("Phone", c.Phone)
	line("Address", c.Address)
	line("Tier", c.Tier)
	line("Status", c.Status)
	line("Lifetime Value", money.USD(c.LTV))
	line("Last Visit", c.LastVisit)
	line("Sentiment", c.Sentiment)
	line("Vehicles", strings.Join(c.Vehicles, ", "))
	line("Tags", strings.Join(c.Tags, ", "))
	return b.String()
}

func (m *WorkspaceModel) customerDetailDecks(tab workspace.Tab) []Deck {
	payload, _ := tab.Customer()
	var lead model.Lead
	found := false
	for _, l := range m.data.snap.Leads {
		if l.ID == payload.LeadID {
			lead, found = l, true
			break
		}
	}
	if !found {
		return []Deck{NewTextDeck("lead", tab.Title, note("Lead "+payload.LeadID+" not found."))}
	}

	leadDeck := NewTextDeck("lead", "Opportunity",
		kv("Lead", lead.ID),
		kv("Interest", lead.InterestModel),
		textLine{key: "Lead Score", value: fmt.Sprint(lead.LeadScore), color: probabilityColor(lead.LeadScore)},
		kv("Status", lead.Status),
		kv("Source", lead.Source),
		kv("Last Contact", lead.LastContact),
	)

	var profile Deck
	if c, ok := m.customerByName(lead.Name); ok {
		profile = NewTextDeck("profile", c.Name,
			kv("Email", c.Email),
			kv("Phone", c.Phone),
			kv("Tier", c.Tier),
			kv("Lifetime Value", money.USD(c.LTV)),
			kv("Vehicles", strings.Join(c.Vehicles, ", ")),
			kv("Sentiment", c.Sentiment),
		)
	} else {
		profile = NewTextDeck("profile", lead.Name, note("No Customer 360 profile on file."))
	}

	var acts []listRow
	for _, a := range m.data.activities {
		if strings.EqualFold(a.CustomerName, lead.Name) {
			acts = append(acts, activityRow(a))
		}
	}
	return []Deck{leadDeck, profile, NewListDeck("activities", "Activity", acts)}
}

func (m *WorkspaceModel) customerByName(name string) (model.Customer, bool) {
	for _, c := range m.data.customers {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return model.Customer{}, false
}

func activityRow(a model.Activity) listRow {
	return listRow{
		cells:  []string{a.Time, a.Title, a.CustomerName, a.Type},
		status: a.Status,
	}
}

func (m *WorkspaceModel) calendarDecks(_ workspace.Tab) []Deck {
	acts := append([]model.Activity(nil), m.data.activities...)
	sort.SliceStable(acts, func(i, j int) bool {
		if acts[i].DayOffset != acts[j].DayOffset {
			return acts[i].DayOffset < acts[j].DayOffset
		}
		return acts[i].Time < acts[j].Time
	})

	now := m.now()
	var overdue, today, upcoming []listRow
	for _, a := range acts {
		switch {
		case a.DayOffset < 0:
			row := activityRow(a)
			row.cells[0] = a.Date(now).Format("Mon Jan 2") + " " + a.Time
			overdue = append(overdue, row)
		case a.DayOffset == 0:
			today = append(today, activityRow(a))
		default:
			row := activityRow(a)
			row.cells[0] = a.Date(now).Format("Mon Jan 2") + " " + a.Time
			upcoming = append(upcoming, row)
		}
	}

	decks := []Deck{NewListDeck("today", "Today · "+now.Format("Monday, January 2"), today)}
	if len(overdue) > 0 {
		decks = append(decks, NewListDeck("overdue", "Overdue", overdue))
	}
	return append(decks, NewListDeck("week", "This Week", upcoming))
}

func (m *WorkspaceModel) salesDecks(tab workspace.Tab) []Deck {
	switch strings.TrimPrefix(tab.ID, "tab-") {
	case "sales-showroom":
		return []Deck{m.showroomDeck(), m.inventoryDeck()}
	case "sales-desking":
		return m.dealsHubDecks(tab)
	case "sales-contract":
		return nil
	default:
		return []Deck{m.inventoryStatsDeck(), m.inventoryDeck()}
	}
}

func (m *WorkspaceModel) showroomDeck() Deck {
	var rows []listRow
	if m.catalog != nil {
		for _, cm := range m.catalog.ShowroomModels() {
			rows = append(rows, listRow{
				cells: []string{fmt.Sprintf("%d %s", cm.Year, cm.Name), "from " + money.USD(cm.BasePrice), cm.Tagline},
				onSelect: func() tea.Cmd {
					return pushModalCmd(NewConfiguratorModal(cm, m.modalContext()))
				},
			})
		}
	}
	d := NewListDeck("showroom", "Digital Showroom · enter to configure", rows)
	d.empty = "No showroom models"
	return d
}

func (m *WorkspaceModel) inventoryDeck() Deck {
	inv := m.data.snap.Inventory
	rows := make([]listRow, 0, len(inv))
	for _, v := range inv {
		rows = append(rows, listRow{
			cells:  []string{v.StockID, fmt.Sprintf("%d %s %s %s", v.Year, v.Make, v.Model, v.Trim), money.USD(v.Price), fmt.Sprintf("%dd", v.DaysInStock)},
			status: v.Status,
		})
	}
	return NewListDeck("inventory", "Inventory", rows)
}

func (m *WorkspaceModel) inventoryStatsDeck() Deck {
	s := m.data.snap.Sales
	d := NewTextDeck("inventory-stats", "Lot",
		kv("Units in Stock", fmt.Sprint(s.UnitsInStock)),
		kv("Inventory Value", money.USD(s.InventoryValue)),
	)
	d.wide = true
	return d
}

// dealsHubDecks renders the desking pipeline: deal KPIs, deals and saved quotes.
func (m *WorkspaceModel) dealsHubDecks(_ workspace.Tab) []Deck {
	pending := 0
	gross := make([]float64, 0, len(m.data.deals))
	rows := make([]listRow, 0, len(m.data.deals))
	for _, d := range m.data.deals {
		if d.Status == "F&I Pending" {
			pending++
		}
		gross = append(gross, d.Gross)
		payment := "Cash"
		if d.Monthly > 0 {
			payment = money.USD(d.Monthly) + "/mo"
		}
		tab := workspace.DealTab(d)
		rows = append(rows, listRow{
			cells:  []string{d.ID, d.CustomerName, d.Vehicle, money.USD(d.Price), payment, fmt.Sprintf("%d%%", d.Probability)},
			status: d.Status,
			open:   &tab,
		})
	}

	quotes := make([]listRow, 0, len(m.data.quotes))
	for _, q := range m.data.quotes {
		tab := workspace.QuoteTab(q)
		quotes = append(quotes, listRow{
			cells:  []string{q.ID, q.Customer, q.Vehicle, money.USD(q.Price), q.Date, q.Probability},
			status: q.Status,
			open:   &tab,
		})
	}

	kpis := NewKPIDeck("Deals & Quoting · n for a new deal", []dashboard.KPI{
		{Label: "F&I Pending", Value: fmt.Sprint(pending), Trend: "In Review"},
		{Label: "MTD Gross", Value: money.Compact(money.Sum(gross...)), Trend: "+6.4%", Sparkline: gross},
		{Label: "Deliveries Today", Value: "3", Trend: "Scheduled"},
	})
	return []Deck{
		kpis,
		NewListDeck("deals", "Active Deals", rows),
		NewListDeck("quotes", "Saved Quotes", quotes),
	}
}

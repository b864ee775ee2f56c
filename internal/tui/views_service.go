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

const promiseLayout = "Jan 2 15:04"

func roRows(ros []model.RepairOrder) []listRow {
	rows := make([]listRow, 0, len(ros))
	for _, ro := range ros {
		tab := workspace.RepairOrderTab(ro.ID)
		rows = append(rows, listRow{
			cells:  []string{ro.ID, ro.CustomerName, ro.Vehicle, ro.Technician, ro.PromiseTime.Format(promiseLayout)},
			status: string(ro.Status),
			open:   &tab,
		})
	}
	return rows
}

// filterROs keeps the repair orders matching keep, in promise order.
func filterROs(ros []model.RepairOrder, keep func(model.RepairOrder) bool) []model.RepairOrder {
	var out []model.RepairOrder
	for _, ro := range ros {
		if keep(ro) {
			out = append(out, ro)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PromiseTime.Before(out[j].PromiseTime) })
	return out
}

func inStatus(statuses ...model.ROStatus) func(model.RepairOrder) bool {
	return func(ro model.RepairOrder) bool {
		for _, s := range statuses {
			if ro.Status == s {
				return true
			}
		}
		return false
	}
}

func (m *WorkspaceModel) serviceDecks(tab workspace.Tab) []Deck {
	ros := m.data.snap.RepairOrders
	switch strings.TrimPrefix(tab.ID, "tab-") {
	case "svc-reception":
		return []Deck{
			NewListDeck("arrivals", "Appointments", roRows(filterROs(ros, inStatus(model.ROAppointment)))),
			NewListDeck("checked-in", "Checked-In", roRows(filterROs(ros, inStatus(model.ROCheckedIn)))),
		}
	case "svc-parts":
		return []Deck{
			NewListDeck("parts-hold", "Parts Hold", roRows(filterROs(ros, inStatus(model.ROPartsHold)))),
			m.inventoryDeck(),
		}
	case "svc-scheduler":
		var appts []listRow
		for _, a := range m.data.activities {
			if a.Type == "SERVICE_APPT" {
				row := activityRow(a)
				row.cells[0] = a.Date(m.now()).Format("Mon Jan 2") + " " + a.Time
				appts = append(appts, row)
			}
		}
		return []Deck{
			NewListDeck("appointments", "Service Appointments", appts),
			NewListDeck("arrivals", "Scheduled Arrivals", roRows(filterROs(ros, inStatus(model.ROAppointment)))),
		}
	default:
		open := filterROs(ros, func(ro model.RepairOrder) bool { return ro.Status != model.ROClosed })
		pipeline := NewListDeck("pipeline", "Dispatch Board", roRows(open))
		return []Deck{m.serviceKPIDeck(), pipeline, m.technicianDeck()}
	}
}

func (m *WorkspaceModel) serviceKPIDeck() Deck {
	s := m.data.snap.Service
	return NewKPIDeck("Service Pipeline", []dashboard.KPI{
		{Label: "Open ROs", Value: fmt.Sprint(s.OpenROs), Trend: "Today"},
		{Label: "Active ROs", Value: fmt.Sprint(s.ActiveROs), Trend: "On Floor"},
		{Label: "Action Required", Value: fmt.Sprint(s.ActionRequired), Trend: "Needs Attn", Alert: s.ActionRequired > 0},
		{Label: "Pipeline Value", Value: money.USD(s.PipelineValue), Trend: "Estimates"},
	})
}

func (m *WorkspaceModel) technicianDeck() Deck {
	techs := m.data.snap.Technicians
	rows := make([]listRow, 0, len(techs))
	for _, t := range techs {
		row := listRow{
			cells:  []string{t.Initials, t.Name, t.SkillLevel, fmt.Sprintf("%d%%", t.Efficiency), t.CurrentRO},
			status: t.Status,
		}
		if t.CurrentRO != "" {
			tab := workspace.RepairOrderTab(t.CurrentRO)
			row.open = &tab
		}
		rows = append(rows, row)
	}
	return NewListDeck("technicians", "Technicians", rows)
}

func (m *WorkspaceModel) findRO(id string) (model.RepairOrder, bool) {
	for _, ro := range m.data.snap.RepairOrders {
		if ro.ID == id {
			return ro, true
		}
	}
	return model.RepairOrder{}, false
}

func (m *WorkspaceModel) roDecks(tab workspace.Tab) []Deck {
	payload, ok := tab.RODetail()
	if !ok {
		return []Deck{NewListDeck("repair-orders", "RO Center", roRows(m.data.snap.RepairOrders))}
	}
	ro, found := m.findRO(payload.ROID)
	if !found {
		return []Deck{NewTextDeck("ro", payload.ROID, note("Repair order "+payload.ROID+" not found."))}
	}

	detail := NewTextDeck("ro", "Repair Order "+ro.ID,
		textLine{key: "Status", value: string(ro.Status), color: statusColor(string(ro.Status))},
		kv("Customer", ro.CustomerName),
		kv("Vehicle", ro.Vehicle),
		kv("VIN", ro.VIN),
		kv("Advisor", ro.Advisor),
		kv("Technician", ro.Technician),
		kv("Promise Time", ro.PromiseTime.Format(promiseLayout)),
		kv("Stage", ro.Stage),
		kv("Estimate", money.USD(ro.TotalEstimate)),
	)
	concern := NewTextDeck("concern", "Customer Concern", note(ro.Concern))
	return []Deck{detail, concern, m.inspectionSummaryDeck(ro)}
}

func (m *WorkspaceModel) inspectionSummaryDeck(ro model.RepairOrder) Deck {
	d := NewTextDeck("inspection", "Multi-Point Inspection")
	d.onEnter = func() tea.Cmd { return pushModalCmd(m.inspectionModal(ro)) }
	in, ok := m.inspections[ro.ID]
	if !ok {
		d.lines = []textLine{note("Not started. Press enter or i to begin.")}
		return d
	}
	pass, warn, fail := in.Counts()
	d.lines = []textLine{
		{key: "Pass", value: fmt.Sprint(pass), color: ColorGreen},
		{key: "Attention", value: fmt.Sprint(warn), color: ColorOrange},
		{key: "Fail", value: fmt.Sprint(fail), color: ColorRed},
	}
	if in.Complete() {
		d.lines = append(d.lines, note("Inspection complete."))
	}
	return d
}

// inspectionModal opens the checklist of ro, starting one on first use.
func (m *WorkspaceModel) inspectionModal(ro model.RepairOrder) Modal {
	in, ok := m.inspections[ro.ID]
	if !ok {
		in = dashboard.NewInspection(ro.ID)
		m.inspections[ro.ID] = in
	}
	return NewInspectionModal(in, ro, m.modalContext())
}

// inspectionTarget is the repair order the inspect key applies to on the active tab.
func (m *WorkspaceModel) inspectionTarget() (model.RepairOrder, bool) {
	tab := m.nav.ActiveTab()
	switch tab.Type {
	case workspace.ViewRODetail:
		if p, ok := tab.RODetail(); ok {
			return m.findRO(p.ROID)
		}
	case workspace.ViewTech, workspace.ViewDashboard:
		if tab.Type == workspace.ViewDashboard && m.nav.Role() != workspace.RoleTechnician {
			return model.RepairOrder{}, false
		}
		hub := dashboard.Build(workspace.RoleTechnician, m.data.snap).Tech
		if hub != nil && hub.Active != nil {
			return *hub.Active, true
		}
	}
	return model.RepairOrder{}, false
}

func (m *WorkspaceModel) techDecks(_ workspace.Tab) []Deck {
	vm := dashboard.Build(workspace.RoleTechnician, m.data.snap)
	return m.techHubDecks(vm.Tech)
}

func (m *WorkspaceModel) techHubDecks(hub *dashboard.TechHub) []Deck {
	if hub == nil || hub.Technician.ID == "" {
		return []Deck{NewTextDeck("tech", "Technician Hub", note("Technician "+dashboard.CurrentTechnicianID+" is not on the roster."))}
	}
	t := hub.Technician

	var active Deck
	if ro := hub.Active; ro != nil {
		d := NewTextDeck("active-job", "Active Job · "+ro.ID,
			kv("Vehicle", ro.Vehicle),
			kv("VIN", ro.VIN),
			kv("Customer", ro.CustomerName),
			kv("Concern", ro.Concern),
			kv("Promise Time", ro.PromiseTime.Format(promiseLayout)),
			note("Press enter or i for the multi-point inspection."),
		)
		d.onEnter = func() tea.Cmd { return pushModalCmd(m.inspectionModal(*ro)) }
		active = d
	} else {
		active = NewTextDeck("active-job", "Active Job", note("No active job. Pick one from the queue."))
	}

	profile := NewTextDeck("tech-profile", t.Name,
		kv("Technician", t.ID+" ("+t.Initials+")"),
		kv("Skill Level", t.SkillLevel),
		kv("Efficiency", fmt.Sprintf("%d%%", t.Efficiency)),
		textLine{key: "Status", value: t.Status, color: statusColor(t.Status)},
	)
	return []Deck{active, profile, NewListDeck("queue", "Up Next", roRows(hub.Queue))}
}

func (m *WorkspaceModel) adminDecks(tab workspace.Tab) []Deck {
	if strings.TrimPrefix(tab.ID, "tab-") != "admin-financials" {
		return nil
	}
	var gross []float64
	for _, d := range m.data.deals {
		gross = append(gross, d.Gross)
	}
	fin := NewTextDeck("financials", "Store Financials",
		kv("Service Pipeline", money.USD(m.data.snap.Service.PipelineValue)),
		kv("Inventory Value", money.USD(m.data.snap.Sales.InventoryValue)),
		kv("Deal Gross", money.USD(money.Sum(gross...))),
	)
	return []Deck{fin, m.dataStoreDeck()}
}

func (m *WorkspaceModel) dataStoreDeck() Deck {
	tables := make([]string, 0, len(m.data.tableCounts))
	for t := range m.data.tableCounts {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	d := NewTextDeck("data-store", "Data Store")
	for _, t := range tables {
		d.lines = append(d.lines, kv(t, fmt.Sprintf("%d rows", m.data.tableCounts[t])))
	}
	if m.console == nil {
		d.lines = append(d.lines, note("SQL console unavailable."))
		return d
	}
	d.lines = append(d.lines, note("Press enter or e for the SQL console."))
	d.onEnter = func() tea.Cmd { return pushModalCmd(NewSQLConsoleModal(m.console, m.modalContext())) }
	return d
}

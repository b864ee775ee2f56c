package dashboard

import (
	"fmt"
	"sort"

	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"
	"github.com/tinytelemetry/dealer365/internal/workspace"
)

// CurrentTechnicianID is the technician signed in to the technician hub.
const CurrentTechnicianID = "T-101"

// KPI is one headline figure with its recent trend.
type KPI struct {
	Label     string
	Value     string
	Trend     string
	Alert     bool
	Sparkline []float64
}

// Item is a row in a dashboard list. Open is the tab the row opens, if any.
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Status   string
	Metric   string
	Severity string // info, warn, crit
	Open     *workspace.Tab
}

// TechHub is the technician's own workload.
type TechHub struct {
	Technician model.Technician
	Active     *model.RepairOrder
	Queue      []model.RepairOrder
}

// ViewModel is everything a role dashboard renders.
type ViewModel struct {
	Role      workspace.Role
	Header    string
	Subtitle  string
	KPIs      []KPI
	MainTitle string
	Main      []Item
	SideTitle string
	Side      []Item
	Tech      *TechHub
}

// Builder produces a role's dashboard from a snapshot.
type Builder func(Snapshot) ViewModel

var builders = map[workspace.Role]Builder{
	workspace.RoleManager:    buildManager,
	workspace.RoleSales:      buildSales,
	workspace.RoleService:    buildService,
	workspace.RoleTechnician: buildTechnician,
}

// Build returns the dashboard for role. Unknown roles get the manager view.
func Build(role workspace.Role, snap Snapshot) ViewModel {
	b, ok := builders[role]
	if !ok {
		b = buildManager
		role = workspace.RoleManager
	}
	vm := b(snap)
	vm.Role = role
	return vm
}

func buildManager(snap Snapshot) ViewModel {
	return ViewModel{
		Header:   "Executive Dashboard",
		Subtitle: "Store performance across sales, service and parts",
		KPIs: []KPI{
			{Label: "Total Revenue", Value: "$1.2M", Trend: "+12.5%", Sparkline: []float64{0.8, 0.9, 1.0, 0.95, 1.1, 1.2}},
			{Label: "Gross Profit", Value: "$340k", Trend: "+8.1%", Sparkline: []float64{250, 280, 310, 300, 330, 340}},
			{Label: "CSI Score", Value: "96.4", Trend: "Top 1%", Sparkline: []float64{92, 94, 93, 95, 96, 96.4}},
			{Label: "Open ROs", Value: fmt.Sprint(snap.Service.OpenROs), Trend: "Busy", Sparkline: []float64{40, 45, 42, 48, 50, 48}},
		},
		MainTitle: "Department Performance",
		Main: []Item{
			{ID: "DEPT-01", Title: "Service Dept", Status: "On Target", Metric: "$450k", Subtitle: "108% to Goal"},
			{ID: "DEPT-02", Title: "Sales - New", Status: "At Risk", Metric: "$520k", Subtitle: "85% to Goal"},
			{ID: "DEPT-03", Title: "Sales - Pre-Owned", Status: "On Target", Metric: "$180k", Subtitle: "110% to Goal"},
			{ID: "DEPT-04", Title: "Parts", Status: "On Target", Metric: "$50k", Subtitle: "102% to Goal"},
		},
		SideTitle: "EXECUTIVE ALERTS",
		Side: []Item{
			{ID: "AL-1", Title: "Inventory Aging", Subtitle: "5 units > 60 days", Severity: "warn"},
			{ID: "AL-2", Title: "Staffing", Subtitle: "2 Techs out sick today", Severity: "info"},
			{ID: "AL-3", Title: "CSI Alert", Subtitle: "Low score received (RO-992)", Severity: "crit"},
		},
	}
}

func buildSales(snap Snapshot) ViewModel {
	s := snap.Sales
	var main, side []Item
	for _, l := range snap.Leads {
		it := leadItem(l)
		main = append(main, it)
		if l.Hot() {
			side = append(side, it)
		}
	}
	return ViewModel{
		Header:   "Sales Overview",
		Subtitle: "Leads, lot and test drives",
		KPIs: []KPI{
			{Label: "Active Leads", Value: fmt.Sprint(s.ActiveLeads), Trend: "+5 New",
				Sparkline: []float64{8, 10, 12, 11, 15, float64(s.ActiveLeads)}},
			{Label: "Inventory Value", Value: fmt.Sprintf("$%.1fM", s.InventoryValue/1_000_000), Trend: "-$200k",
				Sparkline: []float64{2.1, 2.2, 2.1, 2.3, 2.4, 2.2}},
			{Label: "Units in Stock", Value: fmt.Sprint(s.UnitsInStock), Trend: "Low Stock",
				Sparkline: []float64{15, 14, 12, 10, 8, float64(s.UnitsInStock)}},
			{Label: "Test Drives", Value: "4", Trend: "Today", Sparkline: []float64{1, 3, 2, 5, 2, 4}},
		},
		MainTitle: "Recent Leads",
		Main:      main,
		SideTitle: "HOT OPPORTUNITIES",
		Side:      side,
	}
}

func buildService(snap Snapshot) ViewModel {
	s := snap.Service

	var inShop, priority []model.RepairOrder
	for _, ro := range snap.RepairOrders {
		switch {
		case ro.Status.NeedsAction():
			priority = append(priority, ro)
		case ro.Status != model.ROClosed:
			inShop = append(inShop, ro)
		}
	}
	sort.SliceStable(inShop, func(i, j int) bool {
		return inShop[i].PromiseTime.Before(inShop[j].PromiseTime)
	})

	return ViewModel{
		Header:   "Service Operations",
		Subtitle: "Shop floor, approvals and parts holds",
		KPIs: []KPI{
			{Label: "Pipeline Value", Value: money.USD(s.PipelineValue), Trend: "+8.2%",
				Sparkline: []float64{12500, 18200, 15400, 22100, 19800, 24500, s.PipelineValue}},
			{Label: "Active ROs", Value: fmt.Sprint(s.ActiveROs), Trend: "+2",
				Sparkline: []float64{18, 22, 20, 25, 24, 28, float64(s.ActiveROs)}},
			{Label: "Action Required", Value: fmt.Sprint(s.ActionRequired), Trend: "Needs Attn", Alert: true,
				Sparkline: []float64{5, 2, 8, 4, 3, 6, float64(s.ActionRequired)}},
			{Label: "ELR", Value: "$185", Trend: "+$5", Sparkline: []float64{175, 178, 180, 182, 184, 185}},
		},
		MainTitle: "Vehicles in Shop",
		Main:      roItems(inShop),
		SideTitle: "AI PRIORITY QUEUE",
		Side:      roItems(priority),
	}
}

func buildTechnician(snap Snapshot) ViewModel {
	hub := &TechHub{}
	for _, t := range snap.Technicians {
		if t.ID == CurrentTechnicianID {
			hub.Technician = t
			break
		}
	}
	for _, ro := range snap.RepairOrders {
		if ro.Technician != hub.Technician.Name || hub.Technician.Name == "" {
			continue
		}
		switch {
		case ro.Status == model.ROWorking && hub.Active == nil:
			active := ro
			hub.Active = &active
		case ro.Status != model.ROWorking && ro.Status != model.ROClosed:
			hub.Queue = append(hub.Queue, ro)
		}
	}

	vm := ViewModel{
		Header:   "Technician Hub",
		Subtitle: hub.Technician.Name,
		KPIs: []KPI{
			{Label: "Efficiency", Value: fmt.Sprintf("%d%%", hub.Technician.Efficiency), Trend: hub.Technician.SkillLevel,
				Sparkline: []float64{96, 101, 108, 104, 112, float64(hub.Technician.Efficiency)}},
			{Label: "Up Next", Value: fmt.Sprint(len(hub.Queue)), Trend: "Queued",
				Sparkline: []float64{3, 2, 4, 2, 1, float64(len(hub.Queue))}},
		},
		MainTitle: "Up Next",
		Main:      roItems(hub.Queue),
		Tech:      hub,
	}
	if hub.Active != nil {
		vm.SideTitle = "ACTIVE JOB"
		vm.Side = roItems([]model.RepairOrder{*hub.Active})
	}
	return vm
}

func leadItem(l model.Lead) Item {
	tab := workspace.LeadTab(l)
	return Item{
		ID:       l.ID,
		Title:    l.Name,
		Subtitle: l.InterestModel,
		Status:   l.Status,
		Metric:   fmt.Sprintf("%d", l.LeadScore),
		Open:     &tab,
	}
}

func roItems(ros []model.RepairOrder) []Item {
	items := make([]Item, 0, len(ros))
	for _, ro := range ros {
		tab := workspace.RepairOrderTab(ro.ID)
		sev := "info"
		if ro.Status.NeedsAction() {
			sev = "warn"
		}
		items = append(items, Item{
			ID:       ro.ID,
			Title:    ro.ID + " " + ro.CustomerName,
			Subtitle: ro.Vehicle,
			Status:   string(ro.Status),
			Metric:   ro.PromiseTime.Format("Jan 2 15:04"),
			Severity: sev,
			Open:     &tab,
		})
	}
	return items
}

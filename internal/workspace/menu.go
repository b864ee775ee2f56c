package workspace

// MenuItem is a sidebar entry that opens a view.
type MenuItem struct {
	ID    string
	Label string
	View  ViewType
}

// MenuSection groups sidebar entries under a heading.
type MenuSection struct {
	ID    string
	Label string
	Items []MenuItem
}

// Menu is the sidebar catalog. The dashboard entry is not part of any section.
var Menu = []MenuSection{
	{
		ID:    "crm",
		Label: "CRM",
		Items: []MenuItem{
			{ID: "crm-leads", Label: "Leads & Opportunities", View: ViewCRM},
			{ID: "crm-customers", Label: "Customer 360", View: ViewCustomer360},
			{ID: "crm-activities", Label: "Tasks & Calendar", View: ViewCalendar},
		},
	},
	{
		ID:    "sales",
		Label: "Sales",
		Items: []MenuItem{
			{ID: "sales-inventory", Label: "Inventory Search", View: ViewSales},
			{ID: "sales-showroom", Label: "Digital Showroom (3D)", View: ViewSales},
			{ID: "sales-desking", Label: "Deals & Quoting", View: ViewSales},
			{ID: "sales-contract", Label: "Contracts", View: ViewSales},
		},
	},
	{
		ID:    "service",
		Label: "Service",
		Items: []MenuItem{
			{ID: "svc-scheduler", Label: "Scheduler", View: ViewService},
			{ID: "svc-reception", Label: "Reception Lane", View: ViewService},
			{ID: "svc-ro", Label: "RO Center", View: ViewRODetail},
			{ID: "svc-dispatch", Label: "Dispatch Board", View: ViewService},
			{ID: "svc-tech", Label: "Technician Hub", View: ViewTech},
			{ID: "svc-parts", Label: "Parts & Inventory", View: ViewService},
		},
	},
	{
		ID:    "admin",
		Label: "Admin",
		Items: []MenuItem{
			{ID: "admin-financials", Label: "Financial Reports", View: ViewAdmin},
			{ID: "admin-users", Label: "User Management", View: ViewAdmin},
		},
	},
}

// MenuItems flattens Menu in display order.
func MenuItems() []MenuItem {
	var items []MenuItem
	for _, s := range Menu {
		items = append(items, s.Items...)
	}
	return items
}

// FindMenuItem looks up a menu entry by id.
func FindMenuItem(id string) (MenuItem, bool) {
	for _, s := range Menu {
		for _, it := range s.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return MenuItem{}, false
}

package workspace

import "github.com/tinytelemetry/dealer365/internal/model"

// ViewType selects which view renders a tab.
type ViewType string

const (
	ViewDashboard      ViewType = "DASHBOARD"
	ViewCRM            ViewType = "CRM"
	ViewSales          ViewType = "SALES"
	ViewService        ViewType = "SERVICE"
	ViewReports        ViewType = "REPORTS"
	ViewAdmin          ViewType = "ADMIN"
	ViewRODetail       ViewType = "RO_DETAIL"
	ViewTech           ViewType = "TECH_VIEW"
	ViewCustomer360    ViewType = "CUSTOMER_360"
	ViewCustomerDetail ViewType = "CUSTOMER_DETAIL"
	ViewCalendar       ViewType = "CALENDAR"
	ViewDealDesk       ViewType = "DEAL_DESK"
	ViewDealEditor     ViewType = "DEAL_EDITOR"
)

// Role is the active user persona. It selects the dashboard variant.
type Role string

const (
	RoleManager    Role = "MANAGER"
	RoleSales      Role = "SALES"
	RoleService    Role = "SERVICE"
	RoleTechnician Role = "TECHNICIAN"
)

// Roles lists every role in switcher order.
var Roles = []Role{RoleManager, RoleSales, RoleService, RoleTechnician}

// Label returns the role switcher label.
func (r Role) Label() string {
	switch r {
	case RoleManager:
		return "Manager (Exec)"
	case RoleSales:
		return "Sales Advisor"
	case RoleService:
		return "Service Advisor"
	case RoleTechnician:
		return "Technician"
	default:
		return string(r)
	}
}

// ParseRole resolves a role name case-sensitively against Roles.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Payload is the typed data carried by a tab. Each variant belongs to one ViewType.
type Payload interface {
	ViewType() ViewType
}

// RODetailData points a RO_DETAIL tab at a repair order.
type RODetailData struct {
	ROID string
}

func (RODetailData) ViewType() ViewType { return ViewRODetail }

// CustomerData points a CUSTOMER_DETAIL tab at the lead it was opened from.
type CustomerData struct {
	LeadID string
}

func (CustomerData) ViewType() ViewType { return ViewCustomerDetail }

// DealEditorData seeds a DEAL_EDITOR tab. At most one of QuoteID, DealID is set;
// Selections is nil unless the tab came from the configurator.
type DealEditorData struct {
	ModelID    string
	Selections *model.Selections
	TotalPrice float64
	Source     string
	QuoteID    string
	DealID     string
}

func (DealEditorData) ViewType() ViewType { return ViewDealEditor }

// Tab is one open workspace view.
type Tab struct {
	ID       string
	Type     ViewType
	Title    string
	Data     Payload
	Closable bool
}

// RODetail returns the RO payload, if the tab carries one.
func (t Tab) RODetail() (RODetailData, bool) {
	d, ok := t.Data.(RODetailData)
	return d, ok
}

// Customer returns the customer payload, if the tab carries one.
func (t Tab) Customer() (CustomerData, bool) {
	d, ok := t.Data.(CustomerData)
	return d, ok
}

// DealEditor returns the deal editor payload, if the tab carries one.
func (t Tab) DealEditor() (DealEditorData, bool) {
	d, ok := t.Data.(DealEditorData)
	return d, ok
}

// HomeTabID is the id of the non-closable dashboard tab.
const HomeTabID = "dashboard-home"

// HomeTab returns the default dashboard tab.
func HomeTab() Tab {
	return Tab{
		ID:       HomeTabID,
		Type:     ViewDashboard,
		Title:    "Dashboard",
		Closable: false,
	}
}

package model

// ServiceQuerier provides read-only queries on the service department.
type ServiceQuerier interface {
	RepairOrders() ([]RepairOrder, error)
	RepairOrder(id string) (RepairOrder, error)
	SearchRepairOrders(term string, limit int) ([]RepairOrder, error)
	Technicians() ([]Technician, error)
	ServiceSummary() (ServiceSummary, error)
}

// SalesQuerier provides read-only queries on the CRM and sales floor.
type SalesQuerier interface {
	Leads() ([]Lead, error)
	Lead(id string) (Lead, error)
	Customers() ([]Customer, error)
	CustomerByName(name string) (Customer, error)
	Inventory() ([]InventoryVehicle, error)
	Activities() ([]Activity, error)
	Quotes() ([]Quote, error)
	Deals() ([]Deal, error)
	Deal(id string) (Deal, error)
	SalesSummary() (SalesSummary, error)
}

// DealerQuerier is the unified read contract used by the TUI and CLI.
type DealerQuerier interface {
	ServiceQuerier
	SalesQuerier
}

// ModelCatalog resolves showroom models.
type ModelCatalog interface {
	ShowroomModels() []ConfigurableModel
	Model(id string) (ConfigurableModel, bool)
}

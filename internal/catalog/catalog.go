// Package catalog loads the embedded dealership dataset: showroom models,
// repair orders, CRM leads, customers, technicians, inventory, activities,
// quotes and deals.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/tinytelemetry/dealer365/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

// ErrUnknownModel is returned when a configurable model id is not in the dataset.
var ErrUnknownModel = errors.New("unknown model")

// Dataset is the full mock dataset.
type Dataset struct {
	Models       []model.ConfigurableModel `yaml:"models"`
	RepairOrders []model.RepairOrder       `yaml:"repairOrders"`
	Leads        []model.Lead              `yaml:"leads"`
	Customers    []model.Customer          `yaml:"customers"`
	Technicians  []model.Technician        `yaml:"technicians"`
	Inventory    []model.InventoryVehicle  `yaml:"inventory"`
	Activities   []model.Activity          `yaml:"activities"`
	Quotes       []model.Quote             `yaml:"quotes"`
	Deals        []model.Deal              `yaml:"deals"`
}

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	return Parse(datasetYAML)
}

// Parse decodes a dataset and checks that record ids are unique.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if len(ds.Models) == 0 {
		return nil, fmt.Errorf("parse dataset: no models")
	}
	checks := []struct {
		kind string
		ids  []string
	}{
		{"model", idsOf(ds.Models, func(m model.ConfigurableModel) string { return m.ID })},
		{"repair order", idsOf(ds.RepairOrders, func(r model.RepairOrder) string { return r.ID })},
		{"lead", idsOf(ds.Leads, func(l model.Lead) string { return l.ID })},
		{"customer", idsOf(ds.Customers, func(c model.Customer) string { return c.ID })},
		{"technician", idsOf(ds.Technicians, func(t model.Technician) string { return t.ID })},
		{"vehicle", idsOf(ds.Inventory, func(v model.InventoryVehicle) string { return v.StockID })},
		{"activity", idsOf(ds.Activities, func(a model.Activity) string { return a.ID })},
		{"quote", idsOf(ds.Quotes, func(q model.Quote) string { return q.ID })},
		{"deal", idsOf(ds.Deals, func(d model.Deal) string { return d.ID })},
	}
	for _, c := range checks {
		if err := unique(c.kind, c.ids); err != nil {
			return nil, fmt.Errorf("parse dataset: %w", err)
		}
	}
	return &ds, nil
}

// ShowroomModels implements model.ModelCatalog.
func (ds *Dataset) ShowroomModels() []model.ConfigurableModel {
	return append([]model.ConfigurableModel(nil), ds.Models...)
}

// Model implements model.ModelCatalog.
func (ds *Dataset) Model(id string) (model.ConfigurableModel, bool) {
	for _, m := range ds.Models {
		if m.ID == id {
			return m, true
		}
	}
	return model.ConfigurableModel{}, false
}

// ResolveModel returns the model for id, falling back to the first model
// when id is unknown. The error reports the fallback.
func (ds *Dataset) ResolveModel(id string) (model.ConfigurableModel, error) {
	if m, ok := ds.Model(id); ok {
		return m, nil
	}
	return ds.Models[0], fmt.Errorf("%w: %q", ErrUnknownModel, id)
}

func idsOf[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func unique(kind string, ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return fmt.Errorf("%s with empty id", kind)
		}
		if seen[id] {
			return fmt.Errorf("duplicate %s %q", kind, id)
		}
		seen[id] = true
	}
	return nil
}

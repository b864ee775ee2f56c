package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinytelemetry/dealer365/internal/model"
)

var _ model.ModelCatalog = (*Dataset)(nil)

func TestLoad(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	assert.Len(t, ds.Models, 2)
	assert.Len(t, ds.RepairOrders, 12)
	assert.Len(t, ds.Leads, 5)
	assert.Len(t, ds.Customers, 5)
	assert.Len(t, ds.Technicians, 4)
	assert.Len(t, ds.Inventory, 5)
	assert.Len(t, ds.Activities, 8)
	assert.Len(t, ds.Quotes, 4)
	assert.Len(t, ds.Deals, 5)
}

func TestLoad_DecodesFields(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	ro := ds.RepairOrders[0]
	assert.Equal(t, "RO-24-1042", ro.ID)
	assert.Equal(t, model.ROApprovalPending, ro.Status)
	assert.Equal(t, time.Date(2023, 10, 27, 16, 0, 0, 0, time.UTC), ro.PromiseTime.UTC())
	assert.Equal(t, 1250.0, ro.TotalEstimate)

	assert.Equal(t, "911", ds.Inventory[1].Model)
	assert.Equal(t, []string{"Audi e-tron GT", "Audi R8", "Acura NSX"}, ds.Customers[1].Vehicles)
	assert.Empty(t, ds.Technicians[2].CurrentRO)
	assert.Equal(t, "10:00", ds.Activities[0].Time)
	assert.Equal(t, -1, ds.Activities[4].DayOffset)
	assert.Equal(t, "F&I Pending", ds.Deals[1].Status)
	assert.Equal(t, `19" Standard Alloy`, ds.Models[0].Options.Wheels[0].Name)
}

func TestModel(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	m, ok := ds.Model("MOD-911")
	require.True(t, ok)
	assert.Equal(t, "Porsche 911", m.Name)
	assert.Equal(t, 114400.0, m.BasePrice)

	sel := m.DefaultSelections()
	assert.Equal(t, "Racing Yellow", sel.Exterior.Name)
	assert.Equal(t, "8-Speed PDK", sel.Transmission.Name)

	_, ok = ds.Model("MOD-X")
	assert.False(t, ok)

	models := ds.ShowroomModels()
	models[0].Name = "changed"
	assert.Equal(t, "Genesis GV80", ds.Models[0].Name)
}

func TestResolveModel(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	require.NoError(t, err)

	m, err := ds.ResolveModel("MOD-GV80")
	require.NoError(t, err)
	assert.Equal(t, "MOD-GV80", m.ID)

	m, err = ds.ResolveModel("MOD-X")
	assert.True(t, errors.Is(err, ErrUnknownModel))
	assert.Equal(t, "MOD-GV80", m.ID)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("leads: []\n"))
	assert.ErrorContains(t, err, "no models")

	_, err = Parse([]byte("models:\n  - id: A\nleads:\n  - id: L1\n  - id: L1\n"))
	assert.ErrorContains(t, err, `duplicate lead "L1"`)

	_, err = Parse([]byte("models:\n  - id: A\nquotes:\n  - customer: x\n"))
	assert.ErrorContains(t, err, "quote with empty id")

	_, err = Parse([]byte("models: [\n"))
	assert.Error(t, err)
}

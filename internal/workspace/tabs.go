package workspace

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tinytelemetry/dealer365/internal/model"
)

// Model ids the quote and deal tabs fall back to.
const (
	ModelGV80 = "MOD-GV80"
	Model911  = "MOD-911"
)

// MenuTab builds the closable tab a sidebar entry opens.
func MenuTab(item MenuItem) Tab {
	return Tab{
		ID:       "tab-" + item.ID,
		Type:     item.View,
		Title:    item.Label,
		Closable: true,
	}
}

// RepairOrderTab opens a repair order, e.g. from the header search.
func RepairOrderTab(roID string) Tab {
	return Tab{
		ID:       "tab-" + roID,
		Type:     ViewRODetail,
		Title:    roID,
		Data:     RODetailData{ROID: roID},
		Closable: true,
	}
}

// LeadTab opens the customer profile behind a CRM lead.
func LeadTab(lead model.Lead) Tab {
	return Tab{
		ID:       "cust-" + lead.ID,
		Type:     ViewCustomerDetail,
		Title:    lead.Name,
		Data:     CustomerData{LeadID: lead.ID},
		Closable: true,
	}
}

// QuoteTab opens a saved quote in the deal editor.
func QuoteTab(q model.Quote) Tab {
	return Tab{
		ID:    "deal-" + q.ID,
		Type:  ViewDealEditor,
		Title: "Quote " + q.ID,
		Data: DealEditorData{
			ModelID: ModelForVehicle(q.Vehicle),
			QuoteID: q.ID,
		},
		Closable: true,
	}
}

// DealTab opens a pipeline deal in the deal editor.
func DealTab(d model.Deal) Tab {
	return Tab{
		ID:       "deal-" + d.ID,
		Type:     ViewDealEditor,
		Title:    d.ID + " " + d.CustomerName,
		Data:     DealEditorData{ModelID: ModelForVehicle(d.Vehicle), DealID: d.ID},
		Closable: true,
	}
}

// ConfiguredDealTab opens a fresh deal for a build finished in the configurator.
func ConfiguredDealTab(m model.ConfigurableModel, sel model.Selections, totalPrice float64) Tab {
	return Tab{
		ID:    NewQuoteID(),
		Type:  ViewDealEditor,
		Title: "Deal: " + m.Name,
		Data: DealEditorData{
			ModelID:    m.ID,
			Selections: &sel,
			TotalPrice: totalPrice,
			Source:     "Configurator",
		},
		Closable: true,
	}
}

// ShowroomTab opens the digital showroom.
func ShowroomTab() Tab {
	return Tab{
		ID:       "sales-showroom",
		Type:     ViewSales,
		Title:    "Digital Showroom",
		Closable: true,
	}
}

// NewQuoteID returns a short unique quote id such as QUOTE-3F9A1C.
func NewQuoteID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "QUOTE-" + strings.ToUpper(id[:6])
}

// ModelForVehicle maps a free-text vehicle to a configurable model id.
func ModelForVehicle(vehicle string) string {
	if strings.Contains(vehicle, "911") {
		return Model911
	}
	return ModelGV80
}

// Package dashboard turns dealership data into the role-specific home dashboards.
package dashboard

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/dealer365/internal/model"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the data every role dashboard is built from.
type Snapshot struct {
	RepairOrders []model.RepairOrder
	Leads        []model.Lead
	Inventory    []model.InventoryVehicle
	Technicians  []model.Technician
	Service      model.ServiceSummary
	Sales        model.SalesSummary
}

// Load runs the dashboard queries concurrently. The first failure cancels
// the remaining queries that have not started.
func Load(ctx context.Context, q model.DealerQuerier) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	run := func(name string, fn func() error) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(); err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}
			return nil
		})
	}

	run("repair orders", func() (err error) { snap.RepairOrders, err = q.RepairOrders(); return })
	run("leads", func() (err error) { snap.Leads, err = q.Leads(); return })
	run("inventory", func() (err error) { snap.Inventory, err = q.Inventory(); return })
	run("technicians", func() (err error) { snap.Technicians, err = q.Technicians(); return })
	run("service summary", func() (err error) { snap.Service, err = q.ServiceSummary(); return })
	run("sales summary", func() (err error) { snap.Sales, err = q.SalesSummary(); return })

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

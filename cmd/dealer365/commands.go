package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/tinytelemetry/dealer365/internal/catalog"
	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/duckdb"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	valueColor   = color.New(color.FgGreen, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// Quote command and flags
var (
	quoteModel    string
	quotePrice    float64
	quoteDown     float64
	quoteTerm     int
	quoteTier     string
	quoteMode     string
	quoteTrade    float64
	quotePayoff   float64
	quoteProducts []string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a deal structure",
	Long: `Prices a deal the way the deal desk does and prints the payment,
the alternative scenarios and a longer-term suggestion when one lowers
the payment.`,
	Example: `  # Default structure for the first showroom model
  dealer365 quote

  # Lease at 36 months with 10k down
  dealer365 quote --model MOD-911 --mode lease --term 36 --down 10000

  # Explicit price, trade-in and GAP coverage
  dealer365 quote --price 64000 --trade 18000 --payoff 6500 --product gap`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		rates, err := deal.LoadRates(cfg.RatesFile)
		if err != nil {
			return fmt.Errorf("loading rates: %w", err)
		}
		ds, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("loading dataset: %w", err)
		}
		desk, p, err := buildQuote(ds, rates)
		if err != nil {
			return err
		}
		printQuote(os.Stdout, desk, rates, p)
		return nil
	},
}

// Search command flags
var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search repair orders by id, customer, vehicle or VIN",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := commandStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		ros, err := store.SearchRepairOrders(strings.Join(args, " "), searchLimit)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		printRepairOrders(os.Stdout, ros)
		return nil
	},
}

var sqlCmd = &cobra.Command{
	Use:     "sql <query>",
	Short:   "Run a read-only SQL query against the dealership tables",
	Example: `  dealer365 sql "SELECT status, count(*) FROM repair_orders GROUP BY status"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := commandStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := store.ExecuteQuery(strings.Join(args, " "))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, strings.ToUpper(strings.Join(res.Columns, "\t")))
		for _, row := range res.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				if v == nil {
					cells[i] = "NULL"
					continue
				}
				cells[i] = fmt.Sprint(v)
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		w.Flush()
		footer := fmt.Sprintf("%d row(s)", len(res.Rows))
		if res.Truncated {
			footer += " (truncated)"
		}
		mutedColor.Println(footer)
		return nil
	},
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteModel, "model", "", "showroom model id (default: first model)")
	f.Float64Var(&quotePrice, "price", 0, "vehicle price; overrides the model MSRP")
	f.Float64Var(&quoteDown, "down", deal.DefaultDown, "cash down")
	f.IntVar(&quoteTerm, "term", deal.DefaultTerm, "term in months")
	f.StringVar(&quoteTier, "tier", deal.DefaultTier, "credit tier")
	f.StringVar(&quoteMode, "mode", "finance", "payment mode: finance, lease or cash")
	f.Float64Var(&quoteTrade, "trade", 0, "trade-in allowance")
	f.Float64Var(&quotePayoff, "payoff", 0, "trade-in loan payoff")
	f.StringSliceVar(&quoteProducts, "product", nil, "F&I product id (repeatable)")

	searchCmd.Flags().IntVar(&searchLimit, "limit", model.DefaultSearchLimit, "maximum results")
}

// commandStore opens the seeded store for a one-shot subcommand.
func commandStore(ctx context.Context) (*duckdb.Store, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	_, store, err := openStore(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

// buildQuote turns the quote flags into a desk and its calculator input.
func buildQuote(ds *catalog.Dataset, rates *deal.RateTable) (*deal.Desk, deal.Params, error) {
	var cm model.ConfigurableModel
	if quoteModel == "" {
		cm = ds.Models[0]
	} else {
		m, ok := ds.Model(quoteModel)
		if !ok {
			return nil, deal.Params{}, fmt.Errorf("%w: %q", catalog.ErrUnknownModel, quoteModel)
		}
		cm = m
	}

	mode, ok := deal.ParseMode(quoteMode)
	if !ok {
		return nil, deal.Params{}, fmt.Errorf("invalid mode %q: want finance, lease or cash", quoteMode)
	}
	if quoteTerm < 1 {
		return nil, deal.Params{}, fmt.Errorf("invalid term %d: want at least 1 month", quoteTerm)
	}
	if rates.TierIndex(quoteTier) < 0 {
		names := make([]string, len(rates.CreditTiers))
		for i, t := range rates.CreditTiers {
			names[i] = t.Name
		}
		return nil, deal.Params{}, fmt.Errorf("unknown credit tier %q: want one of %s", quoteTier, strings.Join(names, ", "))
	}

	d := deal.NewDesk(rates, deal.DeskInput{Model: cm, Source: "CLI"})
	d.Mode = mode
	d.Tier = quoteTier
	d.Term = quoteTerm
	d.Down = max(0, quoteDown)
	d.SetTradeIn(quoteTrade, quotePayoff)
	for _, id := range quoteProducts {
		if _, ok := rates.Product(id); !ok {
			return nil, deal.Params{}, fmt.Errorf("unknown product %q", id)
		}
		if !d.ProductSelected(id) {
			d.ToggleProduct(id)
		}
	}

	p := d.Params()
	if quotePrice > 0 {
		p.VehiclePrice = quotePrice
	}
	return d, p, nil
}

func printQuote(w io.Writer, d *deal.Desk, rates *deal.RateTable, p deal.Params) {
	calc := deal.NewCalculator(rates)
	r := calc.Calculate(p)

	headingColor.Fprintf(w, "%d %s\n", d.Model.Year, d.Model.Name)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Vehicle price\t%s\n", money.USD(p.VehiclePrice))
	if r.ProductsTotal > 0 {
		fmt.Fprintf(tw, "F&I products\t%s\n", money.USD(r.ProductsTotal))
	}
	if p.TradeInValue > 0 || p.TradeInPayoff > 0 {
		fmt.Fprintf(tw, "Net trade\t%s\n", money.USD(r.NetTrade))
	}
	fmt.Fprintf(tw, "Cash down\t%s\n", money.USD(p.DownPayment))
	fmt.Fprintf(tw, "Taxes\t%s\n", money.USDCents(r.Taxes))
	fmt.Fprintf(tw, "Amount financed\t%s\n", money.USDCents(r.AmountFinanced))
	fmt.Fprintf(tw, "Mode\t%s\n", p.Mode.Label())
	if p.Mode != deal.ModeCash {
		fmt.Fprintf(tw, "Term\t%d mo @ %.2f%% (%s)\n", p.TermMonths, r.Rate, d.Tier)
	}
	tw.Flush()

	if p.Mode == deal.ModeCash {
		fmt.Fprint(w, "Due at signing  ")
		valueColor.Fprintln(w, money.USDCents(r.AmountFinanced))
	} else {
		fmt.Fprint(w, "Monthly payment ")
		valueColor.Fprintln(w, money.USDCents(r.MonthlyPayment))
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Scenarios")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, s := range calc.Scenarios(p) {
		fmt.Fprintf(tw, "%s\t%s\t%s down\t%s/mo\n", s.Label, s.Description, money.USD(s.DownPayment), money.USDCents(s.Result.MonthlyPayment))
	}
	tw.Flush()

	if s, ok := calc.SuggestTerm(p, deal.TermStep, deal.MaxTerm); ok {
		fmt.Fprintln(w)
		mutedColor.Fprintf(w, "Extending to %d months lowers the payment to %s (saves %s/mo).\n",
			s.TermMonths, money.USDCents(s.MonthlyPayment), money.USDCents(s.Savings))
	}
}

func printRepairOrders(w io.Writer, ros []model.RepairOrder) {
	if len(ros) == 0 {
		mutedColor.Fprintln(w, "No repair orders match.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RO\tCUSTOMER\tVEHICLE\tSTATUS\tPROMISED\tESTIMATE")
	for _, ro := range ros {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ro.ID, ro.CustomerName, ro.Vehicle, ro.Status,
			ro.PromiseTime.Format("Jan 2 15:04"), money.USD(ro.TotalEstimate))
	}
	tw.Flush()
}

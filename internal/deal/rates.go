package deal

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed rates.yaml
var defaultRatesYAML []byte

// DefaultAPR applies to any credit tier missing from the table.
const DefaultAPR = 5.9

// CreditTier is a credit band and its APR in percent.
type CreditTier struct {
	Name string  `yaml:"name"`
	APR  float64 `yaml:"apr"`
}

// Product is a fixed-price F&I product that can be added to a deal.
type Product struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Type  string  `yaml:"type"`
	Price float64 `yaml:"price"`
}

// RateTable holds the credit tiers, F&I products and offered terms.
type RateTable struct {
	CreditTiers []CreditTier `yaml:"creditTiers"`
	Products    []Product    `yaml:"products"`
	Terms       []int        `yaml:"terms"`
}

// DefaultRates parses the embedded rate table.
func DefaultRates() (*RateTable, error) {
	return ParseRates(defaultRatesYAML)
}

// LoadRates reads a rate table from path. An empty path yields the embedded table.
func LoadRates(path string) (*RateTable, error) {
	if path == "" {
		return DefaultRates()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}
	rt, err := ParseRates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rt, nil
}

// ParseRates decodes a YAML rate table.
func ParseRates(data []byte) (*RateTable, error) {
	var rt RateTable
	if err := yaml.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("parse rates: %w", err)
	}
	if len(rt.CreditTiers) == 0 {
		return nil, fmt.Errorf("parse rates: no credit tiers")
	}
	seen := make(map[string]bool, len(rt.Products))
	for _, p := range rt.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("parse rates: product %q has no id", p.Name)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("parse rates: duplicate product %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &rt, nil
}

// Rate returns the APR for tier, or DefaultAPR when the tier is unknown.
func (rt *RateTable) Rate(tier string) float64 {
	if rt == nil {
		return DefaultAPR
	}
	for _, t := range rt.CreditTiers {
		if t.Name == tier {
			return t.APR
		}
	}
	return DefaultAPR
}

// TierIndex returns the position of tier in the table, or -1.
func (rt *RateTable) TierIndex(tier string) int {
	if rt == nil {
		return -1
	}
	for i, t := range rt.CreditTiers {
		if t.Name == tier {
			return i
		}
	}
	return -1
}

// Product looks up an F&I product by id.
func (rt *RateTable) Product(id string) (Product, bool) {
	if rt == nil {
		return Product{}, false
	}
	for _, p := range rt.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductsTotal sums the prices of the given product ids. Unknown ids add nothing.
func (rt *RateTable) ProductsTotal(ids []string) float64 {
	var total float64
	for _, id := range ids {
		if p, ok := rt.Product(id); ok {
			total += p.Price
		}
	}
	return total
}

package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/deal"
	"github.com/tinytelemetry/dealer365/internal/model"
	"github.com/tinytelemetry/dealer365/internal/money"
	"github.com/tinytelemetry/dealer365/internal/workspace"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// configRow is one line of the configurator: a single-choice category or a package toggle.
type configRow struct {
	label   string
	options []model.ConfigOption // single-choice categories
	pkg     *model.ConfigOption  // package rows
}

// ConfiguratorModal builds a showroom model and hands it to a new deal.
type ConfiguratorModal struct {
	ctx      ModalContext
	model    model.ConfigurableModel
	sel      model.Selections
	rows     []configRow
	cursor   int
	viewport viewport.Model
}

func NewConfiguratorModal(cm model.ConfigurableModel, ctx ModalContext) *ConfiguratorModal {
	o := cm.Options
	rows := []configRow{
		{label: "Engine", options: o.Engines},
		{label: "Transmission", options: o.Transmissions},
		{label: "Exterior", options: o.Colors},
		{label: "Interior", options: o.Interiors},
		{label: "Wheels", options: o.Wheels},
	}
	for i := range o.Packages {
		rows = append(rows, configRow{label: "Package", pkg: &o.Packages[i]})
	}
	return &ConfiguratorModal{
		ctx:      ctx,
		model:    cm,
		sel:      cm.DefaultSelections(),
		rows:     rows,
		viewport: viewport.New(80, 20),
	}
}

func (c *ConfiguratorModal) ID() string { return "configurator-" + c.model.ID }

// Selections returns the current build.
func (c *ConfiguratorModal) Selections() model.Selections { return c.sel }

// Total is the base price plus every selected option.
func (c *ConfiguratorModal) Total() float64 {
	sel := c.sel
	return deal.NewDesk(nil, deal.DeskInput{Model: c.model, Selections: &sel}).MSRP()
}

func (c *ConfiguratorModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		c.move(wheelDelta(c.ctx, msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "escape":
			return true, nil
		case "up", "k":
			c.move(-1)
		case "down", "j":
			c.move(1)
		case "left", "h":
			c.cycle(-1)
		case "right", "l", " ":
			c.cycle(1)
		case "enter":
			sel := c.sel
			sel.Packages = append([]string(nil), c.sel.Packages...)
			return true, openTabCmd(workspace.ConfiguredDealTab(c.model, sel, c.Total()))
		}
	}
	return false, nil
}

func (c *ConfiguratorModal) move(delta int) {
	c.cursor = min(max(c.cursor+delta, 0), len(c.rows)-1)
}

// cycle changes the option of the focused category, or toggles the focused package.
func (c *ConfiguratorModal) cycle(dir int) {
	if c.cursor >= len(c.rows) {
		return
	}
	row := c.rows[c.cursor]
	if row.pkg != nil {
		c.togglePackage(row.pkg.ID)
		return
	}
	if len(row.options) == 0 {
		return
	}
	cur := c.current(row.label)
	idx := 0
	for i, o := range row.options {
		if o.ID == cur.ID {
			idx = i
			break
		}
	}
	n := len(row.options)
	c.set(row.label, row.options[((idx+dir)%n+n)%n])
}

func (c *ConfiguratorModal) togglePackage(id string) {
	for i, p := range c.sel.Packages {
		if p == id {
			c.sel.Packages = append(c.sel.Packages[:i:i], c.sel.Packages[i+1:]...)
			return
		}
	}
	c.sel.Packages = append(c.sel.Packages, id)
}

func (c *ConfiguratorModal) current(label string) model.ConfigOption {
	switch label {
	case "Engine":
		return c.sel.Engine
	case "Transmission":
		return c.sel.Transmission
	case "Exterior":
		return c.sel.Exterior
	case "Interior":
		return c.sel.Interior
	default:
		return c.sel.Wheel
	}
}

func (c *ConfiguratorModal) set(label string, o model.ConfigOption) {
	switch label {
	case "Engine":
		c.sel.Engine = o
	case "Transmission":
		c.sel.Transmission = o
	case "Exterior":
		c.sel.Exterior = o
	case "Interior":
		c.sel.Interior = o
	default:
		c.sel.Wheel = o
	}
}

func (c *ConfiguratorModal) View(width, height int) string {
	items := make([]string, len(c.rows))
	for i, row := range c.rows {
		if row.pkg != nil {
			mark := "[ ]"
			for _, id := range c.sel.Packages {
				if id == row.pkg.ID {
					mark = "[x]"
				}
			}
			items[i] = fmt.Sprintf("%-13s %s %s  +%s", row.label, mark, row.pkg.Name, money.USD(row.pkg.Price))
			continue
		}
		o := c.current(row.label)
		price := ""
		if o.Price > 0 {
			price = "  +" + money.USD(o.Price)
		}
		items[i] = fmt.Sprintf("%-13s ‹ %s ›%s", row.label, o.Name, price)
	}

	var b strings.Builder
	b.WriteString(helpStyle.Render(c.model.Tagline) + "\n\n")
	b.WriteString(renderChoices(items, c.cursor) + "\n\n")
	b.WriteString(keyStyle.Render("Base Price") + money.USD(c.model.BasePrice) + "\n")
	b.WriteString(keyStyle.Render("Total MSRP") + lipgloss.NewStyle().Foreground(ColorGreen).Bold(true).Render(money.USD(c.Total())))

	return renderModalFrame(&c.viewport, modalFrame{
		Title:   fmt.Sprintf("Configure %d %s", c.model.Year, c.model.Name),
		Content: b.String(),
		Status:  []string{"up/down: Category", "left/right: Option", "Space: Toggle package", "Enter: Start deal", "ESC: Close"},
	}, width, height)
}

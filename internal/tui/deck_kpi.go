package tui

import (
	"strings"

	"github.com/tinytelemetry/dealer365/internal/dashboard"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const sparklineHeight = 3

// KPIDeck shows headline figures side by side, each with a trend sparkline.
type KPIDeck struct {
	title string
	kpis  []dashboard.KPI
}

// NewKPIDeck creates a KPI deck.
func NewKPIDeck(title string, kpis []dashboard.KPI) *KPIDeck {
	return &KPIDeck{title: title, kpis: kpis}
}

func (d *KPIDeck) ID() string    { return "kpis" }
func (d *KPIDeck) Title() string { return d.title }

// ContentLines covers label, value and sparkline rows.
func (d *KPIDeck) ContentLines(_ ViewContext) int { return 2 + sparklineHeight }

func (d *KPIDeck) ItemCount() int { return 0 }

func (d *KPIDeck) Wide() bool { return true }

func (d *KPIDeck) OnSelect(_ ViewContext, _ int) tea.Cmd { return nil }

func (d *KPIDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	style := sectionStyle.Width(width).Height(height)
	if active {
		style = activeSectionStyle.Width(width).Height(height)
	}
	title := deckTitleStyle.Render(deckTitle(d.title, ctx))

	if len(d.kpis) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, helpStyle.Render("No data available")))
	}

	inner := width - 2
	cardWidth := max(12, inner/len(d.kpis)-1)
	cards := make([]string, 0, len(d.kpis))
	for _, k := range d.kpis {
		cards = append(cards, renderKPICard(k, cardWidth))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, withGaps(cards)...)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

func renderKPICard(k dashboard.KPI, width int) string {
	trendColor := ColorGreen
	switch {
	case k.Alert:
		trendColor = ColorRed
	case strings.HasPrefix(k.Trend, "-"):
		trendColor = ColorOrange
	case !strings.HasPrefix(k.Trend, "+"):
		trendColor = ColorGray
	}

	label := lipgloss.NewStyle().Foreground(ColorGray).Render(runewidth.Truncate(k.Label, width, "…"))
	value := valueStyle.Render(k.Value)
	trend := lipgloss.NewStyle().Foreground(trendColor).Render(k.Trend)
	line := value + " " + trend
	if lipgloss.Width(line) > width {
		line = value
	}

	return lipgloss.NewStyle().Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, label, line, renderSparkline(k.Sparkline, width, trendColor)),
	)
}

// renderSparkline draws a series as a small bar chart. Values are lifted off
// the floor so that a narrow range still shows its shape.
func renderSparkline(series []float64, width int, color lipgloss.Color) string {
	if len(series) == 0 {
		return ""
	}
	chartWidth := min(width, len(series)*2)
	bc := barchart.New(chartWidth, sparklineHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(color)
	for _, v := range normalizeSeries(series) {
		bc.Push(barchart.BarData{
			Label:  "",
			Values: []barchart.BarValue{{Name: "kpi", Value: v, Style: barStyle}},
		})
	}
	bc.Draw()
	return bc.View()
}

func normalizeSeries(series []float64) []float64 {
	lo, hi := series[0], series[0]
	for _, v := range series {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	out := make([]float64, len(series))
	span := hi - lo
	for i, v := range series {
		if span == 0 {
			out[i] = 1
			continue
		}
		out[i] = 0.2 + 0.8*(v-lo)/span
	}
	return out
}

func withGaps(parts []string) []string {
	if len(parts) <= 1 {
		return parts
	}
	out := make([]string, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}

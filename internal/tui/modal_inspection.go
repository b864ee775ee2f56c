package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/dealer365/internal/dashboard"
	"github.com/tinytelemetry/dealer365/internal/model"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InspectionModal walks a technician through the multi-point inspection.
type InspectionModal struct {
	ctx        ModalContext
	inspection *dashboard.Inspection
	ro         model.RepairOrder
	items      []string
	cursor     int
	viewport   viewport.Model
}

func NewInspectionModal(in *dashboard.Inspection, ro model.RepairOrder, ctx ModalContext) *InspectionModal {
	return &InspectionModal{
		ctx:        ctx,
		inspection: in,
		ro:         ro,
		items:      in.Items(),
		viewport:   viewport.New(80, 20),
	}
}

func (im *InspectionModal) ID() string { return "inspection-" + im.ro.ID }

func (im *InspectionModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		im.move(wheelDelta(im.ctx, msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "escape", "q":
			return true, nil
		case "up", "k":
			im.move(-1)
		case "down", "j":
			im.move(1)
		case "enter", " ":
			im.inspection.Cycle(im.items[im.cursor])
			if im.inspection.Complete() {
				return false, statusCmd("Inspection complete for " + im.ro.ID)
			}
		}
	}
	return false, nil
}

func (im *InspectionModal) move(delta int) {
	im.cursor = min(max(im.cursor+delta, 0), len(im.items)-1)
}

func checkMark(s dashboard.CheckState) string {
	switch s {
	case dashboard.CheckPass:
		return lipgloss.NewStyle().Foreground(ColorGreen).Render("PASS")
	case dashboard.CheckWarn:
		return lipgloss.NewStyle().Foreground(ColorOrange).Render("WARN")
	case dashboard.CheckFail:
		return lipgloss.NewStyle().Foreground(ColorRed).Render("FAIL")
	default:
		return helpStyle.Render(" -- ")
	}
}

func (im *InspectionModal) View(width, height int) string {
	var b strings.Builder
	heading := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	idx := 0
	for _, section := range dashboard.MultiPointInspection {
		b.WriteString(heading.Render(section.Title) + "\n")
		for _, item := range section.Items {
			line := fmt.Sprintf("%-26s", item)
			if idx == im.cursor {
				line = selectedRowStyle.Render("> " + line)
			} else {
				line = rowStyle.Render("  " + line)
			}
			b.WriteString(line + " " + checkMark(im.inspection.State(item)) + "\n")
			idx++
		}
		b.WriteString("\n")
	}
	pass, warn, fail := im.inspection.Counts()
	fmt.Fprintf(&b, "Pass %d · Attention %d · Fail %d", pass, warn, fail)

	return renderModalFrame(&im.viewport, modalFrame{
		Title:   fmt.Sprintf("Multi-Point Inspection · %s · %s", im.ro.ID, im.ro.Vehicle),
		Content: b.String(),
		Status:  []string{"up/down: Item", "Enter/Space: Pass/Warn/Fail", "ESC: Close"},
	}, width, height)
}

package dashboard

// CheckState is the result recorded for one inspection point.
type CheckState string

const (
	CheckUnset CheckState = ""
	CheckPass  CheckState = "pass"
	CheckWarn  CheckState = "warn"
	CheckFail  CheckState = "fail"
)

// Next cycles unset -> pass -> warn -> fail -> pass.
func (s CheckState) Next() CheckState {
	switch s {
	case CheckPass:
		return CheckWarn
	case CheckWarn:
		return CheckFail
	default:
		return CheckPass
	}
}

// InspectionSection groups multi-point inspection items.
type InspectionSection struct {
	Title string
	Items []string
}

// MultiPointInspection is the checklist a technician works through on an active job.
var MultiPointInspection = []InspectionSection{
	{Title: "Tires & Brakes", Items: []string{
		"Front Left Tire Tread", "Front Right Tire Tread", "Rear Left Tire Tread", "Rear Right Tire Tread", "Brake Pad Thickness",
	}},
	{Title: "Under Hood", Items: []string{
		"Engine Oil Level", "Coolant Level", "Brake Fluid Condition", "Battery Health",
	}},
	{Title: "Exterior & Interior", Items: []string{
		"Wiper Blades", "Lights & Signals", "Horn Operation",
	}},
}

// Inspection records check results for one repair order.
type Inspection struct {
	ROID    string
	results map[string]CheckState
}

// NewInspection starts an empty checklist for a repair order.
func NewInspection(roID string) *Inspection {
	return &Inspection{ROID: roID, results: make(map[string]CheckState)}
}

// Items flattens the checklist in display order.
func (in *Inspection) Items() []string {
	var out []string
	for _, s := range MultiPointInspection {
		out = append(out, s.Items...)
	}
	return out
}

// State returns the recorded result for item.
func (in *Inspection) State(item string) CheckState {
	return in.results[item]
}

// Cycle advances item to its next state and returns it.
func (in *Inspection) Cycle(item string) CheckState {
	next := in.results[item].Next()
	in.results[item] = next
	return next
}

// Counts tallies pass, warn and fail results.
func (in *Inspection) Counts() (pass, warn, fail int) {
	for _, st := range in.results {
		switch st {
		case CheckPass:
			pass++
		case CheckWarn:
			warn++
		case CheckFail:
			fail++
		}
	}
	return pass, warn, fail
}

// Complete reports whether every item has a result.
func (in *Inspection) Complete() bool {
	for _, item := range in.Items() {
		if in.results[item] == CheckUnset {
			return false
		}
	}
	return true
}

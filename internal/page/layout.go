package page

import (
	"slices"

	"github.com/mjdusa/etcher/internal/state"
)

// Region is one visual area of the page.
type Region int

// Regions in back-to-front order.
const (
	RegionHeader Region = iota
	RegionSteps
	RegionReducedInfo
	RegionPromo
	RegionFlashStep
	RegionAlert
	RegionSuccess
	RegionSettings
)

var regionNames = map[Region]string{
	RegionHeader:      "header",
	RegionSteps:       "steps",
	RegionReducedInfo: "reduced-info",
	RegionPromo:       "promo",
	RegionFlashStep:   "flash-step",
	RegionAlert:       "alert",
	RegionSuccess:     "success",
	RegionSettings:    "settings",
}

func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "unknown"
}

// frame is the input every layout rule sees.
type frame struct {
	view ViewState
	snap Snapshot
}

func (f frame) main() bool      { return f.view.Phase == PhaseMain }
func (f frame) splitView() bool { return f.snap.IsFlashing && f.view.PromoPanelVisible }

type layoutRule struct {
	region Region
	show   func(frame) bool
}

// layoutRules is evaluated in order; the result lists regions back to front.
var layoutRules = []layoutRule{
	{RegionHeader, func(frame) bool { return true }},
	{RegionSteps, func(f frame) bool { return f.main() && !f.splitView() }},
	{RegionReducedInfo, func(f frame) bool { return f.main() && f.splitView() }},
	{RegionPromo, func(f frame) bool { return f.main() && f.snap.IsFlashing && f.view.PromoURL != "" }},
	{RegionFlashStep, func(f frame) bool { return f.main() }},
	{RegionAlert, func(f frame) bool { return f.main() && f.view.AnalyticsAlertVisible }},
	{RegionSuccess, func(f frame) bool { return f.view.Phase == PhaseSuccess }},
	{RegionSettings, func(f frame) bool { return f.view.SettingsVisible }},
}

// Layout is the result of one evaluation of the rule table.
type Layout struct {
	Regions     []Region
	Gates       Gates
	Flash       state.FlashState
	Snapshot    Snapshot
	View        ViewState
	SplitView   bool
	SupportLink bool
}

// Has reports whether r is visible.
func (l Layout) Has(r Region) bool {
	return slices.Contains(l.Regions, r)
}

// Top returns the front-most region.
func (l Layout) Top() Region {
	if len(l.Regions) == 0 {
		return RegionHeader
	}
	return l.Regions[len(l.Regions)-1]
}

// EvaluateLayout applies the rule table to a view state and snapshot.
func EvaluateLayout(view ViewState, snap Snapshot) []Region {
	f := frame{view: view, snap: snap}
	regions := make([]Region, 0, len(layoutRules))
	for _, rule := range layoutRules {
		if rule.show(f) {
			regions = append(regions, rule.region)
		}
	}
	return regions
}

// Layout evaluates the page for one frame. Flash progress is read from the
// store on every call.
func (p *Page) Layout() Layout {
	f := frame{view: p.view, snap: p.snapshot}
	return Layout{
		Regions:     EvaluateLayout(p.view, p.snapshot),
		Gates:       Gate(p.snapshot),
		Flash:       p.deps.Flash.FlashState(),
		Snapshot:    p.snapshot,
		View:        p.view,
		SplitView:   f.main() && f.splitView(),
		SupportLink: p.ExternalLinksEnabled(),
	}
}

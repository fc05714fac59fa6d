package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mjdusa/etcher/internal/state"
)

func TestEvaluateLayout(t *testing.T) {
	cases := []struct {
		name string
		view ViewState
		snap Snapshot
		want []Region
	}{
		{
			name: "idle",
			view: ViewState{Phase: PhaseMain},
			want: []Region{RegionHeader, RegionSteps, RegionFlashStep},
		},
		{
			name: "alert",
			view: ViewState{Phase: PhaseMain, AnalyticsAlertVisible: true},
			want: []Region{RegionHeader, RegionSteps, RegionFlashStep, RegionAlert},
		},
		{
			name: "flashing without promo url",
			view: ViewState{Phase: PhaseMain, PromoPanelVisible: true},
			snap: Snapshot{IsFlashing: true},
			want: []Region{RegionHeader, RegionReducedInfo, RegionFlashStep},
		},
		{
			name: "promo resolved but not yet visible",
			view: ViewState{Phase: PhaseMain, PromoURL: "https://efp"},
			snap: Snapshot{IsFlashing: true},
			want: []Region{RegionHeader, RegionSteps, RegionPromo, RegionFlashStep},
		},
		{
			name: "split view",
			view: ViewState{Phase: PhaseMain, PromoURL: "https://efp", PromoPanelVisible: true},
			snap: Snapshot{IsFlashing: true},
			want: []Region{RegionHeader, RegionReducedInfo, RegionPromo, RegionFlashStep},
		},
		{
			name: "promo visible flag without flashing",
			view: ViewState{Phase: PhaseMain, PromoURL: "https://efp", PromoPanelVisible: true},
			want: []Region{RegionHeader, RegionSteps, RegionFlashStep},
		},
		{
			name: "success hides workflow",
			view: ViewState{Phase: PhaseSuccess, AnalyticsAlertVisible: true, PromoURL: "https://efp"},
			snap: Snapshot{IsFlashing: true},
			want: []Region{RegionHeader, RegionSuccess},
		},
		{
			name: "settings on top",
			view: ViewState{Phase: PhaseSuccess, SettingsVisible: true},
			want: []Region{RegionHeader, RegionSuccess, RegionSettings},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateLayout(tc.view, tc.snap))
		})
	}
}

func TestLayout_PromoNeverBeforeURLResolves(t *testing.T) {
	f := newFixture()
	f.flash.flashing = true
	p := f.mounted()

	l := p.Layout()
	assert.True(t, l.Snapshot.IsFlashing)
	assert.False(t, l.Has(RegionPromo))

	p.SetPromoPanelVisible(true)
	assert.False(t, p.Layout().Has(RegionPromo))

	res := p.PromoLoader()(t.Context())
	assert.True(t, p.ApplyPromo(res))
	l = p.Layout()
	assert.True(t, l.Has(RegionPromo))
	assert.True(t, l.SplitView)
	assert.False(t, l.Has(RegionSteps))
}

func TestLayout_FlashReadLive(t *testing.T) {
	f := newFixture()
	p := f.mounted()

	f.flash.state = state.FlashState{Type: state.FlashFlashing, Percentage: ptr(42.0)}
	l := p.Layout()
	assert.Equal(t, state.FlashFlashing, l.Flash.Type)
	assert.Equal(t, 42.0, *l.Flash.Percentage)
	assert.Equal(t, RegionAlert, l.Top())
	assert.True(t, l.SupportLink)
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "reduced-info", RegionReducedInfo.String())
	assert.Equal(t, "unknown", Region(99).String())
}

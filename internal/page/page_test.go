package page

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/settings"
	"github.com/mjdusa/etcher/internal/state"
)

func TestMount_SubscribesOnceAndSyncs(t *testing.T) {
	f := newFixture()
	p := New(f.deps())
	assert.False(t, p.Mounted())

	p.Mount(p.Sync)
	p.Mount(p.Sync)
	assert.Equal(t, 1, f.hub.Len())

	f.sel.image = &state.Image{Name: "a.img"}
	f.hub.Notify()
	assert.True(t, p.Snapshot().HasImage)
	assert.Equal(t, "a.img", p.Snapshot().ImageName)

	p.Unmount()
	p.Unmount()
	assert.Equal(t, 0, f.hub.Len())
}

func TestSync_IgnoredWhenUnmounted(t *testing.T) {
	f := newFixture()
	p := New(f.deps())

	f.sel.image = &state.Image{Name: "late.img"}
	p.Sync()
	assert.False(t, p.Snapshot().HasImage)
}

func TestSync_ReplacesSnapshotWholesale(t *testing.T) {
	var hub state.Hub
	sel := state.NewSelection(&hub)
	fl := state.NewFlash(&hub)
	f := newFixture()
	d := f.deps()
	d.Selection, d.Flash, d.Hub = sel, fl, &hub

	p := New(d)
	p.Mount(p.Sync)

	sel.SetAvailableDrives([]flashd.Drive{{Device: "/dev/sdb", Description: "A"}, {Device: "/dev/sdc"}})
	sel.SelectImage(state.Image{Path: "/x/os.img"})
	require.NoError(t, sel.SelectDrive("/dev/sdb"))
	require.NoError(t, sel.SelectDrive("/dev/sdc"))

	snap := p.Snapshot()
	assert.Equal(t, "os.img", snap.ImageName)
	assert.Equal(t, "2 Targets", snap.DriveTitle)
	assert.False(t, p.Gates().FlashStepDisabled)

	sel.DeselectImage()
	snap = p.Snapshot()
	assert.False(t, snap.HasImage)
	assert.Empty(t, snap.ImageName)
	assert.True(t, p.Gates().DriveStepDisabled)
}

func TestPhase_OnlySuccessCallbackLeavesMain(t *testing.T) {
	f := newFixture()
	p := f.mounted()
	assert.Equal(t, PhaseMain, p.Phase())

	p.FlashAnother()
	assert.Equal(t, PhaseMain, p.Phase())
	assert.Equal(t, 0, f.flash.resets, "flash store untouched in main")

	p.OpenSettings()
	p.CloseSettings()
	p.DismissAlert()
	f.hub.Notify()
	assert.Equal(t, PhaseMain, p.Phase())

	p.GoToSuccess()
	assert.Equal(t, PhaseSuccess, p.Phase())
	p.GoToSuccess()
	assert.Equal(t, PhaseSuccess, p.Phase())
}

func TestPhase_FlashAnotherResetsBeforeReturning(t *testing.T) {
	f := newFixture()
	p := f.mounted()
	p.GoToSuccess()

	var phaseAtReset Phase = -1
	f.flash.onReset = func() { phaseAtReset = p.Phase() }

	p.FlashAnother()
	assert.Equal(t, PhaseMain, p.Phase())
	assert.Equal(t, 1, f.flash.resets)
	assert.Equal(t, PhaseSuccess, phaseAtReset, "reset happens before the phase change")
}

func TestAlert_FreshInstallIsVisible(t *testing.T) {
	f := newFixture()
	p := New(f.deps())
	assert.True(t, p.View().AnalyticsAlertVisible)
}

func TestAlert_ReadBool(t *testing.T) {
	cases := map[string]bool{
		"false": false,
		"true":  true,
		"":      true,
		"nope":  true,
	}
	for stored, want := range cases {
		f := newFixture()
		f.prefs.items[AnalyticsAlertKey] = stored
		assert.Equal(t, want, New(f.deps()).View().AnalyticsAlertVisible, "stored %q", stored)
	}
}

func TestAlert_DismissPersistsAcrossRestart(t *testing.T) {
	f := newFixture()
	p := f.mounted()

	p.DismissAlert()
	assert.False(t, p.View().AnalyticsAlertVisible)
	v, ok := f.prefs.GetItem(AnalyticsAlertKey)
	require.True(t, ok)
	assert.Equal(t, "false", v)

	p.DismissAlert()
	assert.Equal(t, 1, f.prefs.writes, "second dismissal does not write")

	restarted := New(f.deps())
	assert.False(t, restarted.View().AnalyticsAlertVisible)
}

func TestAlert_DismissWriteFailureStillHides(t *testing.T) {
	f := newFixture()
	f.prefs.writeErr = errors.New("disk full")
	logger, hook := test.NewNullLogger()
	d := f.deps()
	d.Log = logrus.NewEntry(logger)

	p := New(d)
	p.DismissAlert()
	assert.False(t, p.View().AnalyticsAlertVisible)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAlert_HiddenWhenSettingsVisibilityChanges(t *testing.T) {
	f := newFixture()
	p := f.mounted()

	p.CloseSettings()
	assert.True(t, p.View().AnalyticsAlertVisible, "no change, alert stays")

	p.OpenSettings()
	assert.True(t, p.View().SettingsVisible)
	assert.False(t, p.View().AnalyticsAlertVisible)
	assert.Equal(t, 0, f.prefs.writes, "settings do not persist the alert")

	restarted := New(f.deps())
	assert.True(t, restarted.View().AnalyticsAlertVisible)
}

func TestLinks(t *testing.T) {
	f := newFixture()
	p := f.mounted()

	p.OpenSupport()
	p.OpenHomepage()
	p.OpenPrivacyPolicy()
	f.sel.image = &state.Image{Name: "os.img", SupportURL: "https://example.com/help"}
	p.OpenSupport()

	assert.Equal(t, []string{DefaultSupportURL, HomepageURL, PrivacyPolicyURL, "https://example.com/help"}, f.opener.urls)

	f.settings.values[settings.DisableExternalLinks] = true
	assert.False(t, p.ExternalLinksEnabled())
	p.OpenSupport()
	assert.Len(t, f.opener.urls, 4)
}

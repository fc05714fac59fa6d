package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjdusa/etcher/internal/flashd"
	"github.com/mjdusa/etcher/internal/state"
)

func TestDrivesTitle(t *testing.T) {
	cases := []struct {
		name   string
		drives []flashd.Drive
		want   string
	}{
		{"none", nil, "No targets found"},
		{"one", []flashd.Drive{{Device: "/dev/sdb", Description: "X"}}, "X"},
		{"one without description", []flashd.Drive{{Device: "/dev/sdb"}}, "Untitled Device"},
		{"blank description kept", []flashd.Drive{{Device: "/dev/sdb", Description: "  "}}, "  "},
		{"three", []flashd.Drive{{Device: "a"}, {Device: "b"}, {Device: "c"}}, "3 Targets"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DrivesTitle(tc.drives))
		})
	}
}

func TestDriveListLabel(t *testing.T) {
	drives := []flashd.Drive{
		{Device: "/dev/sdb", Description: "SanDisk Ultra", DisplayName: "/dev/sdb"},
		{Device: "/dev/sdc", Description: "Generic Reader"},
	}
	assert.Equal(t, "SanDisk Ultra (/dev/sdb)\nGeneric Reader", DriveListLabel(drives))
	assert.Equal(t, "", DriveListLabel(nil))
}

func TestImageName(t *testing.T) {
	cases := []struct {
		name string
		img  state.Image
		ok   bool
		want string
	}{
		{"no image", state.Image{Name: "ignored"}, false, ""},
		{"drive source", state.Image{Name: "x.img", Drive: &flashd.Drive{Description: "SD Card"}}, true, "SD Card"},
		{"declared name", state.Image{Name: "custom", Path: "/tmp/x/raspbian.img"}, true, "custom"},
		{"path fallback", state.Image{Path: "/tmp/x/raspbian.img"}, true, "raspbian.img"},
		{"nothing", state.Image{}, true, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ImageName(tc.img, tc.ok))
		})
	}
}

func TestProject_NoImageHasNoNameOrSize(t *testing.T) {
	f := newFixture()
	snap := Project(f.sel, f.flash)

	assert.False(t, snap.HasImage)
	assert.False(t, snap.HasDrive)
	assert.Empty(t, snap.ImageName)
	assert.Nil(t, snap.ImageSize)
	assert.Equal(t, NoTargetsTitle, snap.DriveTitle)
}

func TestProject_FullSelection(t *testing.T) {
	f := newFixture()
	f.sel.image = &state.Image{Path: "/images/os.img", Size: ptr(uint64(4096)), Logo: "logo.svg"}
	f.sel.drives = []flashd.Drive{{Device: "/dev/sdb", Description: "USB", DisplayName: "/dev/sdb"}}
	f.flash.flashing = true

	snap := Project(f.sel, f.flash)
	require.NotNil(t, snap.ImageSize)
	assert.Equal(t, Snapshot{
		IsFlashing: true,
		HasImage:   true,
		HasDrive:   true,
		ImageName:  "os.img",
		ImageLogo:  "logo.svg",
		ImageSize:  snap.ImageSize,
		DriveTitle: "USB",
		DriveLabel: "USB (/dev/sdb)",
	}, snap)
	assert.Equal(t, uint64(4096), *snap.ImageSize)
}

func TestProject_Idempotent(t *testing.T) {
	f := newFixture()
	f.sel.image = &state.Image{Name: "a.img", Size: ptr(uint64(1))}
	f.sel.drives = []flashd.Drive{{Device: "a"}, {Device: "b"}}

	first := Project(f.sel, f.flash)
	second := Project(f.sel, f.flash)
	assert.Equal(t, first, second)
}

func TestProject_RealStores(t *testing.T) {
	var hub state.Hub
	sel := state.NewSelection(&hub)
	fl := state.NewFlash(&hub)
	sel.SetAvailableDrives([]flashd.Drive{{Device: "/dev/sdb", Description: "Card"}})
	require.NoError(t, sel.SelectDrive("/dev/sdb"))

	snap := Project(sel, fl)
	assert.True(t, snap.HasDrive)
	assert.False(t, snap.HasImage)
	assert.Equal(t, "Card", snap.DriveTitle)
}

// brokenSelection fails the way a projector bug would once armed.
type brokenSelection struct {
	fakeSelection
	broken bool
}

func (b *brokenSelection) Image() (state.Image, bool) {
	if b.broken {
		panic("selection store corrupted")
	}
	return b.fakeSelection.Image()
}

func TestSyncDoesNotRecoverProjectorPanics(t *testing.T) {
	f := newFixture()
	sel := &brokenSelection{fakeSelection: fakeSelection{image: &state.Image{Name: "a.img"}}}
	deps := f.deps()
	deps.Selection = sel
	p := New(deps)
	p.Mount(p.Sync)
	require.Equal(t, "a.img", p.Snapshot().ImageName)

	sel.broken = true
	assert.Panics(t, p.Sync)
	assert.Panics(t, f.hub.Notify, "the panic must reach whoever delivered the notification")
	assert.Equal(t, "a.img", p.Snapshot().ImageName, "a failed projection must not leave a partial snapshot")
}

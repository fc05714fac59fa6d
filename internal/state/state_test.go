package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjdusa/etcher/internal/flashd"
)

func TestHub_ObserveNotifyUnsubscribe(t *testing.T) {
	var hub Hub
	var calls []string

	unsubA := hub.Observe(func() { calls = append(calls, "a") })
	unsubB := hub.Observe(func() { calls = append(calls, "b") })
	require.Equal(t, 2, hub.Len())

	hub.Notify()
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA()
	require.Equal(t, 1, hub.Len())

	calls = nil
	hub.Notify()
	assert.Equal(t, []string{"b"}, calls)

	unsubB()
	assert.Equal(t, 0, hub.Len())
}

func TestHub_ObserverMayUnsubscribeDuringNotify(t *testing.T) {
	var hub Hub
	var unsub func()
	count := 0
	unsub = hub.Observe(func() {
		count++
		unsub()
	})

	hub.Notify()
	hub.Notify()
	assert.Equal(t, 1, count)
}

func drives(devs ...string) []flashd.Drive {
	out := make([]flashd.Drive, len(devs))
	for i, d := range devs {
		out[i] = flashd.Drive{Device: d, Description: "Drive " + d}
	}
	return out
}

func TestSelection_DrivesAndNotifications(t *testing.T) {
	var hub Hub
	notified := 0
	hub.Observe(func() { notified++ })

	sel := NewSelection(&hub)
	assert.False(t, sel.HasDrive())

	require.ErrorIs(t, sel.SelectDrive("/dev/sdb"), ErrUnknownDrive)
	assert.Equal(t, 0, notified)

	sel.SetAvailableDrives(drives("/dev/sdb", "/dev/sdc"))
	assert.Equal(t, 1, notified)
	sel.SetAvailableDrives(drives("/dev/sdb", "/dev/sdc"))
	assert.Equal(t, 1, notified, "unchanged catalogue must not notify")

	require.NoError(t, sel.SelectDrive("/dev/sdc"))
	require.NoError(t, sel.SelectDrive("/dev/sdb"))
	got := sel.SelectedDrives()
	require.Len(t, got, 2)
	assert.Equal(t, "/dev/sdc", got[0].Device, "selection order is preserved")

	require.NoError(t, sel.ToggleDrive("/dev/sdc"))
	assert.False(t, sel.IsSelected("/dev/sdc"))

	sel.SetAvailableDrives(drives("/dev/sdc"))
	assert.False(t, sel.HasDrive(), "vanished drive is deselected")
}

func TestSelection_ImageFromDriveDropsThatTarget(t *testing.T) {
	var hub Hub
	sel := NewSelection(&hub)
	sel.SetAvailableDrives(drives("/dev/sdb", "/dev/sdc"))
	require.NoError(t, sel.SelectDrive("/dev/sdb"))

	src := flashd.Drive{Device: "/dev/sdb", Description: "SD Card"}
	sel.SelectImage(Image{Path: "/dev/sdb", Drive: &src})

	assert.False(t, sel.IsSelected("/dev/sdb"))
	require.ErrorIs(t, sel.SelectDrive("/dev/sdb"), ErrSourceDrive)
	require.NoError(t, sel.SelectDrive("/dev/sdc"))
}

func TestSelection_ImageIsCopied(t *testing.T) {
	var hub Hub
	sel := NewSelection(&hub)
	size := uint64(1024)
	sel.SelectImage(Image{Name: "a.img", Path: "/tmp/a.img", Size: &size})

	img, ok := sel.Image()
	require.True(t, ok)
	*img.Size = 1

	again, _ := sel.Image()
	assert.Equal(t, uint64(1024), *again.Size)

	sel.DeselectImage()
	assert.False(t, sel.HasImage())
}

func TestFlash_ApplyAndReset(t *testing.T) {
	var hub Hub
	notified := 0
	hub.Observe(func() { notified++ })
	fl := NewFlash(&hub)

	pct := 120.0
	fl.Apply(flashd.Status{Session: "s1", Flashing: true, Progress: flashd.Progress{Type: "flashing", Percentage: &pct}})
	require.True(t, fl.IsFlashing())
	st := fl.FlashState()
	require.NotNil(t, st.Percentage)
	assert.Equal(t, 100.0, *st.Percentage, "percentage is clamped")
	assert.Equal(t, FlashFlashing, st.Type)

	fl.ResetState()
	assert.True(t, fl.IsFlashing(), "reset is ignored while flashing")

	fl.Apply(flashd.Status{Session: "s1", Progress: flashd.Progress{Type: "finished"}, Result: &flashd.Result{Successful: 1}})
	res, ok := fl.LastResult()
	require.True(t, ok)
	assert.True(t, res.Succeeded())

	fl.ResetState()
	_, ok = fl.LastResult()
	assert.False(t, ok)
	assert.Equal(t, FlashState{}, fl.FlashState())

	// A later poll of the same finished session must not resurrect it.
	fl.Apply(flashd.Status{Session: "s1", Progress: flashd.Progress{Type: "finished"}, Result: &flashd.Result{Successful: 1}})
	_, ok = fl.LastResult()
	assert.False(t, ok)

	// A new session is accepted.
	fl.Apply(flashd.Status{Session: "s2", Flashing: true, Progress: flashd.Progress{Type: "starting"}})
	assert.True(t, fl.IsFlashing())
	assert.Greater(t, notified, 3)
}

func TestFlash_Finished(t *testing.T) {
	var hub Hub
	fl := NewFlash(&hub)

	_, _, ok := fl.Finished()
	assert.False(t, ok)

	fl.Apply(flashd.Status{Session: "s1", Flashing: true})
	_, _, ok = fl.Finished()
	assert.False(t, ok, "a running session is not finished")

	fl.Apply(flashd.Status{Session: "s1", Result: &flashd.Result{Successful: 2}})
	session, res, ok := fl.Finished()
	require.True(t, ok)
	assert.Equal(t, "s1", session)
	assert.Equal(t, 2, res.Successful)

	fl.ResetState()
	_, _, ok = fl.Finished()
	assert.False(t, ok)
}

func TestFlash_StateIsCopied(t *testing.T) {
	var hub Hub
	fl := NewFlash(&hub)
	pct := 10.0
	fl.Apply(flashd.Status{Session: "s1", Flashing: true, Progress: flashd.Progress{Percentage: &pct}})

	st := fl.FlashState()
	*st.Percentage = 99
	assert.Equal(t, 10.0, *fl.FlashState().Percentage)
}

func TestFlash_DaemonHealth(t *testing.T) {
	var hub Hub
	fl := NewFlash(&hub)

	err, offline := fl.DaemonHealth()
	assert.NoError(t, err)
	assert.False(t, offline)

	fl.RecordError(errors.New("fail 1"))
	err, offline = fl.DaemonHealth()
	assert.EqualError(t, err, "fail 1")
	assert.False(t, offline)

	fl.RecordError(errors.New("fail 2"))
	_, offline = fl.DaemonHealth()
	assert.True(t, offline)

	fl.Apply(flashd.Status{})
	err, offline = fl.DaemonHealth()
	assert.NoError(t, err)
	assert.False(t, offline)
}

func TestResult_Succeeded(t *testing.T) {
	cases := []struct {
		name string
		r    Result
		want bool
	}{
		{"written", Result{Successful: 2}, true},
		{"partial", Result{Successful: 1, Failed: 1}, true},
		{"none", Result{Failed: 1}, false},
		{"cancelled", Result{Successful: 1, Cancelled: true}, false},
		{"error", Result{Successful: 1, Err: "boom"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Succeeded())
		})
	}
}

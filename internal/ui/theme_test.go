package ui

import (
	"testing"

	"github.com/mjdusa/etcher/internal/state"
)

func TestThemeLookups(t *testing.T) {
	th := GetTheme("Kanagawa")
	if th.Name != "Kanagawa" {
		t.Fatalf("GetTheme(Kanagawa).Name = %q", th.Name)
	}
	if got := GetTheme("missing").Name; got != DefaultThemeName {
		t.Fatalf("unknown theme fallback = %q, want %s", got, DefaultThemeName)
	}
	for _, name := range ThemeNames() {
		if len(GetTheme(name).FlashColors) != 5 {
			t.Fatalf("theme %s is missing flash phase colors", name)
		}
	}

	if got := th.PhaseColor(state.FlashVerifying); got != th.FlashColors[state.FlashVerifying] {
		t.Fatalf("PhaseColor(verifying) = %q", got)
	}
	if got := th.PhaseColor(state.FlashType("other")); got != th.Accent {
		t.Fatalf("PhaseColor fallback = %q, want accent %q", got, th.Accent)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] {
		t.Fatalf("cycle did not return to start, got %q", name)
	}
	if len(seen) != len(ThemeNames()) {
		t.Fatalf("visited %d themes, want %d", len(seen), len(ThemeNames()))
	}
	if got := NextTheme("bogus"); got != ThemeNames()[0] {
		t.Fatalf("NextTheme(bogus) = %q", got)
	}
}

func TestTruncateMiddle_KeepsExtension(t *testing.T) {
	got := truncateMiddle("2024-01-01-raspios-bookworm-arm64-lite.img.xz", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("len = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if got[len(got)-3:] != ".xz" {
		t.Fatalf("extension lost: %q", got)
	}
	if truncateMiddle("short.img", 20) != "short.img" {
		t.Fatalf("short names must be unchanged")
	}
}

func TestDescribeFailure(t *testing.T) {
	cases := []struct {
		res  state.Result
		want string
	}{
		{state.Result{Cancelled: true}, "Flashing was cancelled"},
		{state.Result{Err: "EIO"}, "EIO"},
		{state.Result{Failed: 2}, "2 target(s) failed"},
		{state.Result{}, "Nothing was written"},
	}
	for _, tc := range cases {
		if got := describeFailure(tc.res); got != tc.want {
			t.Fatalf("describeFailure(%+v) = %q, want %q", tc.res, got, tc.want)
		}
	}
}

package page

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjdusa/etcher/internal/settings"
)

func TestResolvePromoURL(t *testing.T) {
	cases := []struct {
		name    string
		value   any
		wantURL string
		wantErr bool
	}{
		{"unset", nil, "https://efp.balena.io/index.html?borderRight=false&darkBackground=true", false},
		{"empty", "", "https://efp.balena.io/index.html?borderRight=false&darkBackground=true", false},
		{"custom", "https://example.com/p?x=1", "https://example.com/p?borderRight=false&darkBackground=true&x=1", false},
		{"wrong type", 42, "", true},
		{"bad url", "://nope", "", true},
		{"not http", "file:///etc/passwd", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSettings{values: map[string]any{settings.FeaturedProjectEndpoint: tc.value}}
			got, err := ResolvePromoURL(context.Background(), s)
			if tc.wantErr {
				require.Error(t, err)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			want, _ := url.Parse(tc.wantURL)
			have, _ := url.Parse(got)
			assert.Equal(t, want.Query(), have.Query())
			assert.Equal(t, want.Host+want.Path, have.Host+have.Path)
		})
	}
}

func TestPromoLoader_SettingsErrorDegrades(t *testing.T) {
	f := newFixture()
	f.settings.err = errSettings
	p := f.mounted()

	res := p.PromoLoader()(context.Background())
	assert.ErrorIs(t, res.Err, errSettings)
	assert.False(t, p.ApplyPromo(res))
	assert.Empty(t, p.View().PromoURL)
}

func TestPromoLoader_UnmountBeforeResolution(t *testing.T) {
	f := newFixture()
	p := f.mounted()
	load := p.PromoLoader()

	p.Unmount()
	res := load(context.Background())
	require.NoError(t, res.Err)

	before := p.View()
	assert.False(t, p.ApplyPromo(res))
	assert.Equal(t, before, p.View())
}

func TestPromoLoader_StaleGeneration(t *testing.T) {
	f := newFixture()
	p := f.mounted()
	stale := p.PromoLoader()

	p.Unmount()
	p.Mount(p.Sync)

	assert.False(t, p.ApplyPromo(stale(context.Background())))
	assert.True(t, p.ApplyPromo(p.PromoLoader()(context.Background())))
	assert.Contains(t, p.View().PromoURL, "darkBackground=true")
}

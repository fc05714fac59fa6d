package page

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mjdusa/etcher/internal/settings"
)

// DefaultPromoEndpoint is used when no endpoint is configured.
const DefaultPromoEndpoint = "https://efp.balena.io/index.html"

// PromoResult carries a resolved promo URL back to the page.
type PromoResult struct {
	generation uint64
	URL        string
	Err        error
}

// PromoLoader returns a function that resolves the promo URL for the current
// mount. It may run on any goroutine; its result goes through ApplyPromo.
func (p *Page) PromoLoader() func(context.Context) PromoResult {
	gen := p.generation
	store := p.deps.Settings
	log := p.log
	return func(ctx context.Context) PromoResult {
		u, err := ResolvePromoURL(ctx, store)
		if err != nil {
			log.WithError(err).Debug("promo endpoint unavailable")
		}
		return PromoResult{generation: gen, URL: u, Err: err}
	}
}

// ApplyPromo stores a resolved URL. Results that arrive after Unmount or for
// an earlier mount are dropped. It reports whether the state changed.
func (p *Page) ApplyPromo(res PromoResult) bool {
	if !p.mounted || res.generation != p.generation {
		return false
	}
	if res.Err != nil || res.URL == "" || res.URL == p.view.PromoURL {
		return false
	}
	p.view.PromoURL = res.URL
	return true
}

// ResolvePromoURL reads the configured endpoint and adds the display hints.
func ResolvePromoURL(ctx context.Context, store Settings) (string, error) {
	raw, err := store.Get(ctx, settings.FeaturedProjectEndpoint)
	if err != nil {
		return "", fmt.Errorf("read promo endpoint: %w", err)
	}
	endpoint := DefaultPromoEndpoint
	switch v := raw.(type) {
	case nil:
	case string:
		if s := strings.TrimSpace(v); s != "" {
			endpoint = s
		}
	default:
		return "", fmt.Errorf("promo endpoint: unexpected %T", raw)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse promo endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("promo endpoint %q: unsupported scheme", endpoint)
	}
	q := u.Query()
	q.Set("borderRight", "false")
	q.Set("darkBackground", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

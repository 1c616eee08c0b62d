package trackers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"marquee/internal/config"
	"marquee/internal/naming"
	"marquee/internal/services"
)

// Factory builds a tracker adapter from its configuration.
type Factory func(cfg config.Tracker, composer *naming.Composer) Tracker

var factories = map[string]Factory{
	"RHD": func(cfg config.Tracker, c *naming.Composer) Tracker { return NewRHD(cfg, c) },
	"A4K": func(cfg config.Tracker, c *naming.Composer) Tracker { return NewA4K(cfg, c) },
	"FLD": func(cfg config.Tracker, c *naming.Composer) Tracker { return NewFLD(cfg, c) },
}

// Known lists the supported tracker names.
func Known() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry holds the configured trackers keyed by upper-case name.
type Registry struct {
	trackers map[string]Tracker
	enabled  map[string]bool
}

// NewRegistry builds an adapter for every configured tracker. composerFor
// returns the name composer for a tracker and may return nil.
func NewRegistry(cfgs map[string]config.Tracker, composerFor func(name string) *naming.Composer) (*Registry, error) {
	r := &Registry{
		trackers: make(map[string]Tracker, len(cfgs)),
		enabled:  make(map[string]bool, len(cfgs)),
	}
	for name, cfg := range cfgs {
		key := strings.ToUpper(strings.TrimSpace(name))
		factory, ok := factories[key]
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "trackers", "registry",
				fmt.Sprintf("unknown tracker %q%s (known: %s)", name, suggestion(key, Known()), strings.Join(Known(), ", ")), nil)
		}
		var composer *naming.Composer
		if composerFor != nil {
			composer = composerFor(key)
		}
		r.trackers[key] = factory(cfg, composer)
		r.enabled[key] = cfg.Enabled
	}
	return r, nil
}

// Get returns the tracker registered under name.
func (r *Registry) Get(name string) (Tracker, bool) {
	t, ok := r.trackers[strings.ToUpper(strings.TrimSpace(name))]
	return t, ok
}

// Names lists registered trackers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.trackers))
	for name := range r.trackers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves requested names, or every enabled tracker when none are
// requested.
func (r *Registry) Select(requested []string) ([]Tracker, error) {
	if len(requested) == 0 {
		var out []Tracker
		for _, name := range r.Names() {
			if r.enabled[name] {
				out = append(out, r.trackers[name])
			}
		}
		return out, nil
	}
	out := make([]Tracker, 0, len(requested))
	for _, name := range requested {
		t, ok := r.Get(name)
		if !ok {
			return nil, services.Wrap(services.ErrConfiguration, "trackers", "select",
				fmt.Sprintf("tracker %q is not configured%s", name, suggestion(name, r.Names())), nil)
		}
		out = append(out, t)
	}
	return out, nil
}

// suggestion returns a "did you mean" hint for a mistyped tracker name.
func suggestion(name string, candidates []string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	best, bestDistance := "", 3
	for _, candidate := range candidates {
		if d := fuzzy.LevenshteinDistance(name, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("; did you mean %s?", best)
}

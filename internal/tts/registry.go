package tts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Catalog is an immutable snapshot of every voice found in one discovery
// pass. Callers must not mutate the slices it hands out.
type Catalog struct {
	voices []Voice
}

// All returns every voice in the catalog, in backend probe order.
func (c *Catalog) All() []Voice {
	return c.voices
}

// ByBackend returns the voices belonging to one backend.
func (c *Catalog) ByBackend(b Backend) []Voice {
	var out []Voice
	for _, v := range c.voices {
		if v.Backend == b {
			out = append(out, v)
		}
	}
	return out
}

// ByLanguage returns voices whose language code starts with the given
// prefix, so "pt" matches both "pt" and "pt-BR".
func (c *Catalog) ByLanguage(code string) []Voice {
	var out []Voice
	for _, v := range c.voices {
		if strings.HasPrefix(strings.ToLower(v.Language), strings.ToLower(code)) {
			out = append(out, v)
		}
	}
	return out
}

// Find looks a voice up by its (backend, id) identity.
func (c *Catalog) Find(b Backend, id string) (Voice, error) {
	for _, v := range c.voices {
		if v.Backend == b && v.ID == id {
			return v, nil
		}
	}
	return Voice{}, fmt.Errorf("%w: %s/%s", ErrVoiceNotFound, b, id)
}

// Backends returns the backends that contributed at least one voice.
func (c *Catalog) Backends() []Backend {
	var out []Backend
	for _, b := range Backends() {
		if len(c.ByBackend(b)) > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Languages returns the sorted, deduplicated language codes present.
func (c *Catalog) Languages() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range c.voices {
		if _, ok := seen[v.Language]; ok {
			continue
		}
		seen[v.Language] = struct{}{}
		out = append(out, v.Language)
	}
	sort.Strings(out)
	return out
}

// DefaultVoice picks the best voice for a language, preferring neural over
// high over standard quality. Falls back to English, then to any voice.
func (c *Catalog) DefaultVoice(lang string) (Voice, bool) {
	candidates := c.ByLanguage(lang)
	if len(candidates) == 0 {
		candidates = c.ByLanguage("en")
	}
	if len(candidates) == 0 {
		candidates = c.voices
	}
	if len(candidates) == 0 {
		return Voice{}, false
	}
	best := candidates[0]
	for _, v := range candidates[1:] {
		if qualityRank(v.Quality) < qualityRank(best.Quality) {
			best = v
		}
	}
	return best, true
}

func qualityRank(q string) int {
	switch q {
	case "neural":
		return 0
	case "high":
		return 1
	case "standard":
		return 2
	}
	return 3
}

// Registry aggregates probe results from all backends and serves consistent
// snapshots: readers always observe either the old complete catalog or the
// new complete one, never a partially filled pass.
type Registry struct {
	mu      sync.RWMutex
	catalog *Catalog
	engines []engine
}

// NewRegistry creates a registry over the full backend set with an empty
// catalog; call Refresh to populate it.
func NewRegistry() *Registry {
	return &Registry{
		catalog: &Catalog{},
		engines: allEngines(),
	}
}

// Refresh probes every backend concurrently, builds a new catalog off to the
// side and swaps it in atomically. Probe failures degrade to fewer voices,
// never to an error.
func (r *Registry) Refresh(ctx context.Context) *Catalog {
	results := make([][]Voice, len(r.engines))

	g, ctx := errgroup.WithContext(ctx)
	for i, eng := range r.engines {
		i, eng := i, eng
		g.Go(func() error {
			results[i] = eng.Discover(ctx)
			return nil
		})
	}
	_ = g.Wait() // Discover never errors

	var voices []Voice
	for _, vs := range results {
		voices = append(voices, vs...)
	}
	catalog := &Catalog{voices: voices}

	r.mu.Lock()
	r.catalog = catalog
	r.mu.Unlock()

	log.Debug().
		Int("voices", len(voices)).
		Int("backends", len(catalog.Backends())).
		Msg("voice registry refreshed")
	return catalog
}

// Catalog returns the current snapshot. Safe to call while a Refresh is in
// progress.
func (r *Registry) Catalog() *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.catalog
}

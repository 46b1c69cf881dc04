package shareparse

// Strategy extracts a score from normalised share text. ok is false when the
// strategy does not recognise the text.
type Strategy func(text string) (score float64, ok bool)

// Corrector adjusts the raw-number fallback. first is the first number in the
// text and all holds every number in document order.
type Corrector func(first float64, all []float64) float64

// Registry maps game slugs to their structural strategies and fallback
// corrections. It is immutable after construction.
type Registry struct {
	strategies map[string][]Strategy
	correctors map[string]Corrector
	claims     map[string]func(string) bool
}

// RegistryEntry describes the parsing rules of one game.
type RegistryEntry struct {
	Slug       string
	Strategies []Strategy
	Corrector  Corrector
	// Claims marks text in the game's own result format. Claimed text the
	// strategies reject does not reach the declared pattern or fallback.
	Claims func(text string) bool
}

func NewRegistry(entries ...RegistryEntry) Registry {
	r := Registry{
		strategies: make(map[string][]Strategy, len(entries)),
		correctors: make(map[string]Corrector, len(entries)),
		claims:     make(map[string]func(string) bool, len(entries)),
	}
	for _, e := range entries {
		if len(e.Strategies) > 0 {
			r.strategies[e.Slug] = append([]Strategy(nil), e.Strategies...)
		}
		if e.Corrector != nil {
			r.correctors[e.Slug] = e.Corrector
		}
		if e.Claims != nil {
			r.claims[e.Slug] = e.Claims
		}
	}
	return r
}

// DefaultRegistry knows the built-in games.
func DefaultRegistry() Registry {
	return NewRegistry(
		RegistryEntry{Slug: "wordle", Strategies: []Strategy{CountMarkerLines(GuessGridMarkers), GuessHeader}},
		RegistryEntry{Slug: "connections", Strategies: []Strategy{CountMixedLines(GroupGridMarkers)}},
		RegistryEntry{Slug: "pyramid-scheme", Strategies: []Strategy{ElapsedSeconds}, Corrector: skipLeadingZero},
		RegistryEntry{Slug: "bracket-city", Strategies: []Strategy{LabelledScore}, Corrector: highestAboveOne},
		RegistryEntry{Slug: "keyword", Strategies: []Strategy{TimeWithErrors}, Corrector: compositeFallback, Claims: hasCompositeLabel},
		RegistryEntry{Slug: "spelling-bee", Strategies: []Strategy{CategoricalRank}},
	)
}

func (r Registry) Strategies(slug string) []Strategy {
	return r.strategies[slug]
}

func (r Registry) Corrector(slug string) (Corrector, bool) {
	c, ok := r.correctors[slug]
	return c, ok
}

// Claimed reports whether slug owns the format of text.
func (r Registry) Claimed(slug, text string) bool {
	claims, ok := r.claims[slug]
	return ok && claims(text)
}

func (r Registry) Knows(slug string) bool {
	_, s := r.strategies[slug]
	_, c := r.correctors[slug]
	return s || c
}

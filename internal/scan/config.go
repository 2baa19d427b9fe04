package scan

// DefaultSelectors is the primary candidate tier: everything an agent could
// plausibly act on, including the generic containers the pointer-affordance
// rule and the cell override need to see.
var DefaultSelectors = []string{
	"a", "button", "input", "select", "textarea", "details", "summary", "label",
	"[role]", "[onclick]", "[tabindex]", "[contenteditable]",
	"[ng-click]", "[data-ng-click]", "[jsaction]",
	"li", "td", "th", "div", "span", "img",
}

// DefaultFallbackSelectors is the reduced tier used when the primary set
// fails to compile.
var DefaultFallbackSelectors = []string{"a", "button", "input", "select", "textarea"}

// Config tunes the discovery pipeline. Zero values take defaults.
type Config struct {
	// NameTextLimit bounds the generic text fallback of the accessible name
	// chain, in runes
	NameTextLimit int
	// ContextDepth bounds the ancestor walk of the context resolver
	ContextDepth int
	// Selectors is the primary candidate selector tier
	Selectors []string
	// FallbackSelectors replaces Selectors when they fail to compile
	FallbackSelectors []string
}

func (c Config) withDefaults() Config {
	if c.NameTextLimit == 0 {
		c.NameTextLimit = 150
	}
	if c.ContextDepth == 0 {
		c.ContextDepth = 5
	}
	if c.Selectors == nil {
		c.Selectors = DefaultSelectors
	}
	if c.FallbackSelectors == nil {
		c.FallbackSelectors = DefaultFallbackSelectors
	}
	return c
}

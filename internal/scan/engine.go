package scan

import (
	"fmt"

	"github.com/domscout/domscout/internal/dom"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Engine runs the discovery pipeline over page snapshots:
// scan → visibility → interactivity → record building → dedup.
type Engine struct {
	cfg        Config
	scanner    *Scanner
	classifier *Classifier
	builder    *Builder
	log        *zap.Logger
}

// New returns an engine. A nil logger disables logging.
func New(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:        cfg,
		scanner:    &Scanner{Primary: cfg.Selectors, Fallback: cfg.FallbackSelectors, log: logger},
		classifier: NewClassifier(),
		builder: &Builder{
			Names:    &NameResolver{TextLimit: cfg.NameTextLimit},
			Contexts: &ContextResolver{MaxDepth: cfg.ContextDepth},
		},
		log: logger,
	}
}

// Discover returns the ordered record sequence for one snapshot. Each call is
// independent and reads only the snapshot; a failing element is skipped, never
// fatal.
func (e *Engine) Discover(snap *dom.Snapshot) []Record {
	candidates := e.scanner.Candidates(snap)

	var records []Record
	for _, n := range candidates {
		if !Visible(snap, n) {
			continue
		}
		interactive, rule := e.classifier.Classify(snap, n)
		if !interactive {
			continue
		}
		rec, err := e.buildRecord(snap, n)
		if err != nil {
			e.log.Debug("skipping element",
				zap.String("tag", dom.TagName(n)),
				zap.Error(err))
			continue
		}
		e.log.Debug("element discovered",
			zap.String("tag", rec.Type),
			zap.String("rule", rule))
		records = append(records, rec)
	}

	deduped := Dedupe(records)
	e.log.Debug("discovery complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("interactive", len(records)),
		zap.Int("records", len(deduped)))
	return deduped
}

// buildRecord isolates per-element failures so one malformed node can never
// abort the whole scan.
func (e *Engine) buildRecord(snap *dom.Snapshot, n *html.Node) (rec Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("build record: %v", r)
		}
	}()
	return e.builder.Build(snap, n), nil
}

package scan

import (
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Scanner builds the candidate node set using a tiered selector strategy.
// A compile failure in the primary tier falls back to the reduced tier; if
// that fails too, the candidate set is empty.
type Scanner struct {
	Primary  []string
	Fallback []string

	log *zap.Logger
}

// Candidates returns candidate elements in document order
func (sc *Scanner) Candidates(snap *dom.Snapshot) []*html.Node {
	nodes, err := snap.Query(strings.Join(sc.Primary, ", "))
	if err != nil {
		sc.log.Debug("primary selector tier failed", zap.Error(err))
		nodes, err = snap.Query(strings.Join(sc.Fallback, ", "))
		if err != nil {
			sc.log.Debug("fallback selector tier failed", zap.Error(err))
			return nil
		}
	}
	out := nodes[:0]
	for _, n := range nodes {
		if overlayOwned(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// overlayOwned keeps discovery blind to the renderer's own nodes, so
// render/discover interleavings stay side-effect-free.
func overlayOwned(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if dom.HasAttr(p, dom.OverlayAttr) {
			return true
		}
	}
	return false
}

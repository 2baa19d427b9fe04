package scan

import (
	"testing"

	"github.com/domscout/domscout/internal/dom"
)

// parseSnap builds a snapshot over a 1280x720 viewport
func parseSnap(t *testing.T, src string) *dom.Snapshot {
	t.Helper()
	snap, err := dom.Parse(src, dom.Viewport{Width: 1280, Height: 720})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return snap
}

// show assigns a rendered layout to every element matching the selector
func show(t *testing.T, snap *dom.Snapshot, selector string, r dom.Rect) {
	t.Helper()
	showStyled(t, snap, selector, r, dom.Style{})
}

// showStyled is show with an explicit computed style
func showStyled(t *testing.T, snap *dom.Snapshot, selector string, r dom.Rect, st dom.Style) {
	t.Helper()
	nodes, err := snap.Query(selector)
	if err != nil {
		t.Fatalf("query %q: %v", selector, err)
	}
	if len(nodes) == 0 {
		t.Fatalf("no nodes match %q", selector)
	}
	for _, n := range nodes {
		snap.SetLayout(n, dom.Layout{BBox: r, Style: st})
	}
}

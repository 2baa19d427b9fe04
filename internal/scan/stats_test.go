package scan

import (
	"testing"

	"github.com/domscout/domscout/internal/dom"
)

func TestSummarize(t *testing.T) {
	snap := parseSnap(t, `
		<main>
			<a href="/one">One</a>
			<a>no destination</a>
			<iframe src="/embed"></iframe>
			<div id="scroller">long content</div>
			<button>Go</button>
		</main>`)
	showStyled(t, snap, "#scroller",
		dom.Rect{X: 0, Y: 0, Width: 300, Height: 200}, dom.Style{Overflow: "hidden auto"})

	st := Summarize(snap, make([]Record, 2))

	// html, head, body, main, a, a, iframe, div, button
	if st.TotalElements != 9 {
		t.Fatalf("totalElements = %d, want 9", st.TotalElements)
	}
	if st.Links != 1 {
		t.Fatalf("links = %d, want only the anchor with an href", st.Links)
	}
	if st.Iframes != 1 {
		t.Fatalf("iframes = %d, want 1", st.Iframes)
	}
	if st.ScrollContainers != 1 {
		t.Fatalf("scrollContainers = %d, want 1", st.ScrollContainers)
	}
	if st.Interactive != 2 {
		t.Fatalf("interactive = %d, want the record count", st.Interactive)
	}
}

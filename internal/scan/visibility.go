package scan

import (
	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// Visible reports whether an element would actually be seen: rendered, not
// hidden by style, bigger than a point, and at least partly inside the
// viewport. Checks read the snapshot's layout table directly; nothing is
// cached between calls.
func Visible(snap *dom.Snapshot, n *html.Node) bool {
	lay, ok := snap.Layout(n)
	if !ok {
		return false
	}
	st := lay.Style
	if st.Display == "none" || st.Visibility == "hidden" {
		return false
	}
	if st.OpacityValue() < 0.1 {
		return false
	}
	r := lay.BBox
	if r.Width <= 1 || r.Height <= 1 {
		return false
	}
	vp := snap.Viewport()
	if r.X+r.Width <= 0 || r.Y+r.Height <= 0 {
		return false
	}
	if r.X >= vp.Width || r.Y >= vp.Height {
		return false
	}
	return true
}

package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/net/html"
)

// captureStyles is the computed style subset requested from the browser.
// Order matters: styleFrom decodes the reply positionally.
var captureStyles = []string{
	"display", "visibility", "opacity", "cursor", "pointer-events", "overflow",
}

// Capture takes a DOM snapshot of the current page and decodes it into the
// scanner's document model: one tree walk on the wire, no per-element round
// trips.
func (b *Browser) Capture() (*dom.Snapshot, error) {
	res, err := proto.DOMSnapshotCaptureSnapshot{
		ComputedStyles:  captureStyles,
		IncludeDOMRects: true,
	}.Call(b.page)
	if err != nil {
		return nil, fmt.Errorf("capture dom snapshot: %w", err)
	}

	metrics, err := proto.PageGetLayoutMetrics{}.Call(b.page)
	if err != nil {
		return nil, fmt.Errorf("read layout metrics: %w", err)
	}
	vp := dom.Viewport{Width: 1280, Height: 720}
	if metrics.CSSVisualViewport != nil {
		vp = dom.Viewport{
			Width:  metrics.CSSVisualViewport.ClientWidth,
			Height: metrics.CSSVisualViewport.ClientHeight,
		}
	}

	snap, byBackend, err := decodeSnapshot(res, vp)
	if err != nil {
		return nil, err
	}
	b.resolveFocus(snap, byBackend)
	return snap, nil
}

// decodeSnapshot rebuilds the main document's tree and side tables from the
// flattened snapshot arrays. Nodes arrive parent-first, so one forward pass
// can link children as they appear.
func decodeSnapshot(res *proto.DOMSnapshotCaptureSnapshotResult, vp dom.Viewport) (*dom.Snapshot, map[proto.DOMBackendNodeID]*html.Node, error) {
	if len(res.Documents) == 0 {
		return nil, nil, errors.New("snapshot has no documents")
	}
	doc := res.Documents[0]
	nodes := doc.Nodes

	str := func(i proto.DOMSnapshotStringIndex) string {
		if int(i) < 0 || int(i) >= len(res.Strings) {
			return ""
		}
		return res.Strings[i]
	}

	count := len(nodes.NodeType)
	built := make([]*html.Node, count)
	byBackend := make(map[proto.DOMBackendNodeID]*html.Node, count)
	var root *html.Node

	for i := 0; i < count; i++ {
		var n *html.Node
		switch nodes.NodeType[i] {
		case 9: // document
			n = &html.Node{Type: html.DocumentNode}
		case 1: // element
			var name string
			if i < len(nodes.NodeName) {
				name = str(nodes.NodeName[i])
			}
			n = &html.Node{Type: html.ElementNode, Data: strings.ToLower(name)}
			if i < len(nodes.Attributes) {
				n.Attr = decodeAttributes(nodes.Attributes[i], str)
			}
		case 3: // text
			var val string
			if i < len(nodes.NodeValue) {
				val = str(nodes.NodeValue[i])
			}
			n = &html.Node{Type: html.TextNode, Data: val}
		default: // comments, doctypes
			continue
		}
		built[i] = n
		if i < len(nodes.BackendNodeID) {
			byBackend[nodes.BackendNodeID[i]] = n
		}
		if i < len(nodes.ParentIndex) {
			if p := nodes.ParentIndex[i]; p >= 0 && p < i && built[p] != nil {
				built[p].AppendChild(n)
			} else if p < 0 && root == nil && n.Type == html.DocumentNode {
				root = n
			}
		}
	}
	if root == nil {
		return nil, nil, errors.New("snapshot has no document root")
	}

	snap := dom.NewSnapshot(root, vp)
	decodeLayout(snap, doc, built, str)
	decodeInputState(snap, nodes, built, str)
	return snap, byBackend, nil
}

// decodeLayout assigns the rendered box and style of each laid-out element.
// Bounds arrive in document coordinates; subtracting the scroll offset moves
// them into viewport space. The first fragment of a node wins.
func decodeLayout(snap *dom.Snapshot, doc *proto.DOMSnapshotDocumentSnapshot,
	built []*html.Node, str func(proto.DOMSnapshotStringIndex) string) {

	lay := doc.Layout
	if lay == nil {
		return
	}
	for j, nodeIdx := range lay.NodeIndex {
		if nodeIdx < 0 || nodeIdx >= len(built) {
			continue
		}
		n := built[nodeIdx]
		if n == nil || n.Type != html.ElementNode {
			continue
		}
		if _, seen := snap.Layout(n); seen {
			continue
		}
		if j >= len(lay.Bounds) || len(lay.Bounds[j]) < 4 {
			continue
		}
		b := lay.Bounds[j]
		l := dom.Layout{BBox: dom.Rect{
			X:      b[0] - doc.ScrollOffsetX,
			Y:      b[1] - doc.ScrollOffsetY,
			Width:  b[2],
			Height: b[3],
		}}
		if j < len(lay.Styles) {
			l.Style = styleFrom(lay.Styles[j], str)
		}
		snap.SetLayout(n, l)
	}
}

// decodeInputState copies the live form state into the snapshot. The checked
// list only names nodes that are on, so every checkbox and radio gets an
// explicit entry either way.
func decodeInputState(snap *dom.Snapshot, nodes *proto.DOMSnapshotNodeTreeSnapshot,
	built []*html.Node, str func(proto.DOMSnapshotStringIndex) string) {

	checkedSet := make(map[int]bool)
	if nodes.InputChecked != nil {
		for _, idx := range nodes.InputChecked.Index {
			checkedSet[idx] = true
		}
	}
	for i, n := range built {
		if n == nil || n.Type != html.ElementNode || n.Data != "input" {
			continue
		}
		t, _ := dom.Attr(n, "type")
		switch strings.ToLower(t) {
		case "checkbox", "radio":
			snap.SetChecked(n, checkedSet[i])
		}
	}

	applyValues := func(r *proto.DOMSnapshotRareStringData) {
		if r == nil {
			return
		}
		for k, idx := range r.Index {
			if idx >= 0 && idx < len(built) && built[idx] != nil && k < len(r.Value) {
				snap.SetValue(built[idx], str(r.Value[k]))
			}
		}
	}
	applyValues(nodes.InputValue)
	applyValues(nodes.TextValue)

	if nodes.IsClickable != nil {
		for _, idx := range nodes.IsClickable.Index {
			if idx >= 0 && idx < len(built) && built[idx] != nil {
				snap.SetClickable(built[idx], true)
			}
		}
	}
}

// styleFrom decodes the positional style reply; order matches captureStyles
func styleFrom(vals proto.DOMSnapshotArrayOfStrings, str func(proto.DOMSnapshotStringIndex) string) dom.Style {
	get := func(i int) string {
		if i >= len(vals) {
			return ""
		}
		return str(vals[i])
	}
	return dom.Style{
		Display:       get(0),
		Visibility:    get(1),
		Opacity:       get(2),
		Cursor:        get(3),
		PointerEvents: get(4),
		Overflow:      get(5),
	}
}

// decodeAttributes unpacks the flattened name/value index pairs
func decodeAttributes(pairs proto.DOMSnapshotArrayOfStrings, str func(proto.DOMSnapshotStringIndex) string) []html.Attribute {
	var attrs []html.Attribute
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, html.Attribute{
			Key: strings.ToLower(str(pairs[i])),
			Val: str(pairs[i+1]),
		})
	}
	return attrs
}

// resolveFocus maps the live focused element into the snapshot tree
func (b *Browser) resolveFocus(snap *dom.Snapshot, byBackend map[proto.DOMBackendNodeID]*html.Node) {
	has, el, err := b.page.Has(":focus")
	if err != nil || !has {
		return
	}
	desc, err := el.Describe(0, false)
	if err != nil {
		return
	}
	if n := byBackend[desc.BackendNodeID]; n != nil {
		snap.SetFocused(n)
	}
}

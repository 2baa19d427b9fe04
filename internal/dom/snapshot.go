package dom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Viewport is the visible page extent in CSS pixels
type Viewport struct {
	Width  float64
	Height float64
}

// Rect is an on-screen rectangle in viewport coordinates
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Style holds the computed style subset the pipeline reads.
// Values are kept as raw CSS strings; the zero value means "default rendering".
type Style struct {
	Display       string
	Visibility    string
	Opacity       string
	Cursor        string
	PointerEvents string
	Overflow      string
}

// OpacityValue parses the opacity string; missing or malformed means opaque
func (s Style) OpacityValue() float64 {
	if s.Opacity == "" {
		return 1
	}
	v, err := strconv.ParseFloat(s.Opacity, 64)
	if err != nil {
		return 1
	}
	return v
}

// Layout is the rendered geometry and style of one node.
// Nodes without a layout entry are not rendered.
type Layout struct {
	BBox  Rect
	Style Style
}

// Snapshot is one captured view of a page: the document tree plus side tables
// for layout, live input state, and focus. It is built once per capture and
// never mutated by discovery; the only structural writes are overlay markers.
type Snapshot struct {
	root     *html.Node
	viewport Viewport
	focused  *html.Node

	layout    map[*html.Node]Layout
	checked   map[*html.Node]bool
	values    map[*html.Node]string
	clickable map[*html.Node]bool
	byID      map[string]*html.Node
}

// NewSnapshot wraps an already-built document tree
func NewSnapshot(root *html.Node, vp Viewport) *Snapshot {
	s := &Snapshot{
		root:      root,
		viewport:  vp,
		layout:    make(map[*html.Node]Layout),
		checked:   make(map[*html.Node]bool),
		values:    make(map[*html.Node]string),
		clickable: make(map[*html.Node]bool),
		byID:      make(map[string]*html.Node),
	}
	Walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if id, ok := Attr(n, "id"); ok && id != "" {
			if _, exists := s.byID[id]; !exists {
				s.byID[id] = n
			}
		}
	})
	return s
}

// Parse builds a snapshot from HTML source. Layout entries are assigned
// separately via SetLayout.
func Parse(src string, vp Viewport) (*Snapshot, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return NewSnapshot(root, vp), nil
}

// Root returns the document node
func (s *Snapshot) Root() *html.Node { return s.root }

// Viewport returns the page extent the snapshot was captured at
func (s *Snapshot) Viewport() Viewport { return s.viewport }

// Body returns the document body element, or nil
func (s *Snapshot) Body() *html.Node {
	var body *html.Node
	Walk(s.root, func(n *html.Node) {
		if body == nil && n.Type == html.ElementNode && n.Data == "body" {
			body = n
		}
	})
	return body
}

// Query returns the elements matching a CSS selector in document order.
// Invalid selectors surface the compile error to the caller.
func (s *Snapshot) Query(selector string) ([]*html.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	return sel.MatchAll(s.root), nil
}

// First returns the first element matching the selector, or nil
func (s *Snapshot) First(selector string) *html.Node {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return sel.MatchFirst(s.root)
}

// ElementByID resolves an id attribute to its element, or nil
func (s *Snapshot) ElementByID(id string) *html.Node {
	return s.byID[id]
}

// SetLayout records rendered geometry and style for a node
func (s *Snapshot) SetLayout(n *html.Node, l Layout) {
	s.layout[n] = l
}

// Layout returns a node's rendered layout; ok is false for unrendered nodes
func (s *Snapshot) Layout(n *html.Node) (Layout, bool) {
	l, ok := s.layout[n]
	return l, ok
}

// Style returns the node's computed style subset, zero for unrendered nodes
func (s *Snapshot) Style(n *html.Node) Style {
	return s.layout[n].Style
}

// BBox returns the node's viewport rectangle, zero for unrendered nodes
func (s *Snapshot) BBox(n *html.Node) Rect {
	return s.layout[n].BBox
}

// SetChecked records the live checked state of a checkbox or radio
func (s *Snapshot) SetChecked(n *html.Node, v bool) {
	s.checked[n] = v
}

// Checked returns the live checked state; ok is false when never recorded
func (s *Snapshot) Checked(n *html.Node) (bool, bool) {
	v, ok := s.checked[n]
	return v, ok
}

// SetValue records the live value of an input or textarea
func (s *Snapshot) SetValue(n *html.Node, v string) {
	s.values[n] = v
}

// Value returns the live input value; ok is false when never recorded
func (s *Snapshot) Value(n *html.Node) (string, bool) {
	v, ok := s.values[n]
	return v, ok
}

// SetClickable marks a node that the browser reported as click-responsive
func (s *Snapshot) SetClickable(n *html.Node, v bool) {
	s.clickable[n] = v
}

// Clickable reports whether the browser saw a click listener on the node
func (s *Snapshot) Clickable(n *html.Node) bool {
	return s.clickable[n]
}

// SetFocused records the focused element at capture time
func (s *Snapshot) SetFocused(n *html.Node) {
	s.focused = n
}

// Focused returns the focused element, or nil
func (s *Snapshot) Focused() *html.Node {
	return s.focused
}

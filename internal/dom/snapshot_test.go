package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func mustParse(t *testing.T, src string) *Snapshot {
	t.Helper()
	snap, err := Parse(src, Viewport{Width: 1280, Height: 720})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return snap
}

func TestQueryDocumentOrder(t *testing.T) {
	snap := mustParse(t, `<div><button id="a">A</button><span><button id="b">B</button></span></div><button id="c">C</button>`)

	nodes, err := snap.Query("button")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 buttons, got %d", len(nodes))
	}
	var ids []string
	for _, n := range nodes {
		id, _ := Attr(n, "id")
		ids = append(ids, id)
	}
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestQueryInvalidSelector(t *testing.T) {
	snap := mustParse(t, `<p>hi</p>`)

	if _, err := snap.Query("[(click)]"); err == nil {
		t.Fatal("expected compile error for invalid selector")
	}
}

func TestElementByID(t *testing.T) {
	snap := mustParse(t, `<input id="email" type="text"><div id="email">dup</div>`)

	n := snap.ElementByID("email")
	if n == nil {
		t.Fatal("id not indexed")
	}
	if TagName(n) != "input" {
		t.Fatalf("expected first occurrence to win, got %s", TagName(n))
	}
	if snap.ElementByID("missing") != nil {
		t.Fatal("expected nil for unknown id")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	snap := mustParse(t, `<button>Go</button>`)
	btn := snap.First("button")

	if _, ok := snap.Layout(btn); ok {
		t.Fatal("fresh node should have no layout")
	}
	want := Layout{
		BBox:  Rect{X: 10, Y: 20, Width: 80, Height: 30},
		Style: Style{Cursor: "pointer", Opacity: "0.5"},
	}
	snap.SetLayout(btn, want)

	got, ok := snap.Layout(btn)
	if !ok {
		t.Fatal("layout not recorded")
	}
	if got.BBox != want.BBox {
		t.Fatalf("bbox mismatch: %+v", got.BBox)
	}
	if snap.Style(btn).Cursor != "pointer" {
		t.Fatalf("style not recorded: %+v", snap.Style(btn))
	}
}

func TestOpacityValue(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"", 1},
		{"0.05", 0.05},
		{"1", 1},
		{"bogus", 1},
	}
	for _, c := range cases {
		got := Style{Opacity: c.raw}.OpacityValue()
		if got != c.want {
			t.Errorf("opacity %q: got %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestTextContentCollapses(t *testing.T) {
	snap := mustParse(t, "<div>  Save \n\t draft  <script>var x = 1;</script><style>.a{}</style><b>now</b></div>")

	got := TextContent(snap.First("div"))
	if got != "Save draft now" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \n b\t\tc "); got != "a b c" {
		t.Fatalf("unexpected collapse: %q", got)
	}
	if got := CollapseSpace("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestAttrHelpers(t *testing.T) {
	snap := mustParse(t, `<a class="btn  primary" data-track="nav" data-id="7" href="">x</a>`)
	a := snap.First("a")

	if v, ok := Attr(a, "href"); !ok || v != "" {
		t.Fatalf("href presence lost: %q %v", v, ok)
	}
	if _, ok := Attr(a, "rel"); ok {
		t.Fatal("rel should be absent")
	}
	if !HasAttr(a, "data-track") {
		t.Fatal("data-track should be present")
	}
	classes := ClassList(a)
	if len(classes) != 2 || classes[0] != "btn" || classes[1] != "primary" {
		t.Fatalf("unexpected classes: %v", classes)
	}
	data := DataAttributes(a)
	if data["track"] != "nav" || data["id"] != "7" {
		t.Fatalf("unexpected data attributes: %v", data)
	}
}

func TestCreateAndRemove(t *testing.T) {
	snap := mustParse(t, `<p>hi</p>`)
	body := snap.Body()
	if body == nil {
		t.Fatal("no body")
	}

	marker := CreateElement("div", html.Attribute{Key: "data-x", Val: "1"})
	marker.AppendChild(CreateText("7"))
	body.AppendChild(marker)

	nodes, err := snap.Query("[data-x]")
	if err != nil || len(nodes) != 1 {
		t.Fatalf("created node not queryable: %v %d", err, len(nodes))
	}
	if TextContent(nodes[0]) != "7" {
		t.Fatalf("unexpected marker text: %q", TextContent(nodes[0]))
	}

	Remove(marker)
	Remove(marker) // second removal is a no-op

	nodes, _ = snap.Query("[data-x]")
	if len(nodes) != 0 {
		t.Fatalf("node still present after removal: %d", len(nodes))
	}
}

func TestLabelsByForAttribute(t *testing.T) {
	snap := mustParse(t, `<label for="email">Email address</label><input id="email" type="text">`)

	labels := snap.Labels(snap.First("input"))
	if len(labels) != 1 {
		t.Fatalf("expected 1 label, got %d", len(labels))
	}
	if TextContent(labels[0]) != "Email address" {
		t.Fatalf("unexpected label text: %q", TextContent(labels[0]))
	}
}

func TestLabelsImplicit(t *testing.T) {
	snap := mustParse(t, `<label>Subscribe <input type="checkbox"></label>`)

	labels := snap.Labels(snap.First("input"))
	if len(labels) != 1 {
		t.Fatalf("expected enclosing label, got %d", len(labels))
	}
}

func TestLabelsNoDuplicateForEnclosing(t *testing.T) {
	snap := mustParse(t, `<label for="x">Name <input id="x"></label>`)

	labels := snap.Labels(snap.First("input"))
	if len(labels) != 1 {
		t.Fatalf("label counted twice: %d", len(labels))
	}
}

func TestLabelControl(t *testing.T) {
	snap := mustParse(t, `<label id="l1" for="sel">Pick</label><select id="sel"></select><label id="l2">Age <input type="number"></label><label id="l3">orphan</label>`)

	if c := snap.LabelControl(snap.ElementByID("l1")); TagName(c) != "select" {
		t.Fatalf("for= control: got %q", TagName(c))
	}
	if c := snap.LabelControl(snap.ElementByID("l2")); TagName(c) != "input" {
		t.Fatalf("enclosed control: got %q", TagName(c))
	}
	if c := snap.LabelControl(snap.ElementByID("l3")); c != nil {
		t.Fatalf("orphan label should have no control, got %q", TagName(c))
	}
}

func TestHasDescendantMatching(t *testing.T) {
	snap := mustParse(t, `<div id="wrap"><span><button>x</button></span></div>`)
	wrap := snap.ElementByID("wrap")

	isButton := func(n *html.Node) bool { return TagName(n) == "button" }
	if !HasDescendantMatching(wrap, isButton) {
		t.Fatal("nested button not found")
	}

	isWrap := func(n *html.Node) bool { return n == wrap }
	if HasDescendantMatching(wrap, isWrap) {
		t.Fatal("node must not match itself")
	}
}

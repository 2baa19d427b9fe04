package scan

import (
	"reflect"
	"testing"

	"github.com/domscout/domscout/internal/dom"
)

func TestDiscoverSingleButton(t *testing.T) {
	snap := parseSnap(t, `<button aria-label="Save">Save draft</button>`)
	box := dom.Rect{X: 10, Y: 10, Width: 80, Height: 30}
	show(t, snap, "button", box)

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ID != 0 {
		t.Fatalf("id = %d, want 0", rec.ID)
	}
	if rec.Type != "button" {
		t.Fatalf("type = %q, want button", rec.Type)
	}
	if rec.Accessibility.Name != "Save" {
		t.Fatalf("name = %q, want Save", rec.Accessibility.Name)
	}
	if rec.Text != "Save draft" {
		t.Fatalf("text = %q, want Save draft", rec.Text)
	}
	if rec.BBox != box {
		t.Fatalf("bbox = %+v, want %+v", rec.BBox, box)
	}
	if !rec.State.IsVisible || !rec.State.IsEnabled {
		t.Fatalf("state = %+v, want visible and enabled", rec.State)
	}
	if rec.State.IsChecked != nil || rec.State.IsRequired != nil {
		t.Fatalf("tri-states = %v/%v, want both unknown for a button", rec.State.IsChecked, rec.State.IsRequired)
	}
	if rec.Context.Parent == nil || rec.Context.Parent.TagName != "body" {
		t.Fatalf("parent = %+v, want body summary", rec.Context.Parent)
	}
}

func TestDiscoverHiddenButton(t *testing.T) {
	snap := parseSnap(t, `<button aria-label="Save">Save draft</button>`)
	showStyled(t, snap, "button",
		dom.Rect{X: 10, Y: 10, Width: 80, Height: 30}, dom.Style{Display: "none"})

	if records := New(Config{}, nil).Discover(snap); len(records) != 0 {
		t.Fatalf("got %d records, want none for a hidden element", len(records))
	}
}

func TestDiscoverOrderAndIDs(t *testing.T) {
	snap := parseSnap(t, `
		<button>One</button>
		<a href="/two">Two</a>
		<div>decoration</div>
		<input type="text" title="Three">`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})
	show(t, snap, "a", dom.Rect{X: 10, Y: 40, Width: 60, Height: 20})
	show(t, snap, "input", dom.Rect{X: 10, Y: 70, Width: 120, Height: 24})

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	wantNames := []string{"One", "Two", "Three"}
	for i, rec := range records {
		if rec.ID != i {
			t.Fatalf("record %d has id %d", i, rec.ID)
		}
		if rec.Accessibility.Name != wantNames[i] {
			t.Fatalf("record %d name = %q, want %q", i, rec.Accessibility.Name, wantNames[i])
		}
		if rec.BBox.Width <= 1 || rec.BBox.Height <= 1 {
			t.Fatalf("record %d has degenerate bbox %+v", i, rec.BBox)
		}
	}
}

func TestDiscoverDeterministic(t *testing.T) {
	snap := parseSnap(t, `<button>One</button><a href="/two">Two</a>`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})
	show(t, snap, "a", dom.Rect{X: 10, Y: 40, Width: 60, Height: 20})

	eng := New(Config{}, nil)
	first := eng.Discover(snap)
	second := eng.Discover(snap)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("two scans of the same snapshot disagree")
	}
}

func TestDiscoverRepeatedTextDistinctPositions(t *testing.T) {
	snap := parseSnap(t, `<a href="#" class="btn">Info</a><a href="#" class="btn">Info</a>`)
	anchors, err := snap.Query("a")
	if err != nil || len(anchors) != 2 {
		t.Fatalf("query anchors: %v (%d)", err, len(anchors))
	}
	snap.SetLayout(anchors[0], dom.Layout{BBox: dom.Rect{X: 100, Y: 40, Width: 50, Height: 20}})
	snap.SetLayout(anchors[1], dom.Layout{BBox: dom.Rect{X: 100, Y: 300, Width: 50, Height: 20}})

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 2 {
		t.Fatalf("got %d records, want both placements", len(records))
	}
	if records[0].ID != 0 || records[1].ID != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", records[0].ID, records[1].ID)
	}
}

func TestDiscoverFallbackSelectors(t *testing.T) {
	snap := parseSnap(t, `<button>Go</button>`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})

	cfg := Config{
		Selectors:         []string{"[(click)]"},
		FallbackSelectors: []string{"button"},
	}
	records := New(cfg, nil).Discover(snap)
	if len(records) != 1 || records[0].Type != "button" {
		t.Fatalf("fallback tier not used, records = %+v", records)
	}
}

func TestDiscoverBothTiersInvalid(t *testing.T) {
	snap := parseSnap(t, `<button>Go</button>`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})

	cfg := Config{
		Selectors:         []string{"[(click)]"},
		FallbackSelectors: []string{"[[nope"},
	}
	if records := New(cfg, nil).Discover(snap); len(records) != 0 {
		t.Fatalf("got %d records, want none when no tier compiles", len(records))
	}
}

func TestDiscoverSkipsOverlayNodes(t *testing.T) {
	snap := parseSnap(t, `
		<div data-domscout-overlay="root"><button>1</button></div>
		<button id="real">Go</button>`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})
	show(t, snap, "#real", dom.Rect{X: 10, Y: 40, Width: 60, Height: 20})

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 1 {
		t.Fatalf("got %d records, want the page button only", len(records))
	}
	if records[0].Attributes.ID != "real" {
		t.Fatalf("record = %+v, want the non-overlay button", records[0])
	}
}

func TestBuildRecordIsolatesFailure(t *testing.T) {
	snap := parseSnap(t, `<button>Go</button>`)
	eng := New(Config{}, nil)
	if _, err := eng.buildRecord(snap, nil); err == nil {
		t.Fatal("building from a nil node must surface an error, not panic")
	}
}

func TestDiscoverDisabledStillRecorded(t *testing.T) {
	snap := parseSnap(t, `<button disabled>Go</button>`)
	show(t, snap, "button", dom.Rect{X: 10, Y: 10, Width: 60, Height: 20})

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].State.IsEnabled {
		t.Fatal("disabled button reported as enabled")
	}
}

func TestDiscoverFocusedElement(t *testing.T) {
	snap := parseSnap(t, `<input type="text" title="Query">`)
	show(t, snap, "input", dom.Rect{X: 10, Y: 10, Width: 120, Height: 24})
	snap.SetFocused(snap.First("input"))

	records := New(Config{}, nil).Discover(snap)
	if len(records) != 1 || !records[0].State.IsFocused {
		t.Fatalf("records = %+v, want one focused record", records)
	}
}

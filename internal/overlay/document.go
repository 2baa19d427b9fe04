package overlay

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

const containerStyle = "position:fixed;inset:0;pointer-events:none;z-index:2147483647"

// SnapshotSurface draws markers into a parsed snapshot tree. It backs offline
// rendering and keeps the live and static paths behaviorally identical.
type SnapshotSurface struct {
	snap *dom.Snapshot
}

// NewSnapshotSurface returns a surface over snap
func NewSnapshotSurface(snap *dom.Snapshot) *SnapshotSurface {
	return &SnapshotSurface{snap: snap}
}

// Clear removes the overlay container if present
func (s *SnapshotSurface) Clear() error {
	containers, err := s.snap.Query(`[` + dom.OverlayAttr + `="root"]`)
	if err != nil {
		return fmt.Errorf("find overlay container: %w", err)
	}
	for _, c := range containers {
		dom.Remove(c)
	}
	return nil
}

// Place appends one positioned box per marker under a fresh container
func (s *SnapshotSurface) Place(markers []Marker) error {
	if len(markers) == 0 {
		return nil
	}
	body := s.snap.Body()
	if body == nil {
		return errors.New("document has no body")
	}
	container := dom.CreateElement("div",
		html.Attribute{Key: dom.OverlayAttr, Val: "root"},
		html.Attribute{Key: "style", Val: containerStyle})
	for _, m := range markers {
		container.AppendChild(markerNode(m))
	}
	body.AppendChild(container)
	return nil
}

func markerNode(m Marker) *html.Node {
	box := dom.CreateElement("div",
		html.Attribute{Key: dom.OverlayAttr, Val: strconv.Itoa(m.ID)},
		html.Attribute{Key: "title", Val: m.Tooltip},
		html.Attribute{Key: "style", Val: boxStyle(m)})
	label := dom.CreateElement("span",
		html.Attribute{Key: dom.OverlayAttr, Val: "label"},
		html.Attribute{Key: "style", Val: labelStyle(m)})
	label.AppendChild(dom.CreateText(m.Label))
	box.AppendChild(label)
	return box
}

func boxStyle(m Marker) string {
	return fmt.Sprintf(
		"position:fixed;left:%.0fpx;top:%.0fpx;width:%.0fpx;height:%.0fpx;border:2px solid %s;pointer-events:none",
		m.BBox.X, m.BBox.Y, m.BBox.Width, m.BBox.Height, m.Color)
}

func labelStyle(m Marker) string {
	return fmt.Sprintf(
		"position:absolute;top:-18px;left:0;background:%s;color:#fff;font:11px/14px sans-serif;padding:1px 4px;pointer-events:none",
		m.Color)
}

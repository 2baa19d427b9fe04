package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"github.com/domscout/domscout/internal/scan"
	"go.uber.org/zap"
)

// Marker is one numbered highlight box. The json field names are the payload
// contract of the page injection script.
type Marker struct {
	ID      int      `json:"id"`
	Label   string   `json:"label"`
	Tooltip string   `json:"tooltip"`
	Color   string   `json:"color"`
	BBox    dom.Rect `json:"bbox"`
}

// Surface is a place markers can be drawn on. Implementations exist for a
// live page and for a parsed snapshot tree.
type Surface interface {
	// Clear removes every node previously placed by this package
	Clear() error
	// Place draws the markers
	Place(markers []Marker) error
}

// Overlay renders numbered highlight boxes for discovered elements and keeps
// the authoritative list of what is currently on the surface.
type Overlay struct {
	surface Surface
	markers []Marker
	log     *zap.Logger
}

// New returns an overlay bound to a surface. A nil logger disables logging.
func New(surface Surface, logger *zap.Logger) *Overlay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Overlay{surface: surface, log: logger}
}

// Render replaces whatever is on the surface with one marker per record.
// Calling it again with the same records leaves the same markers, never
// duplicates.
func (o *Overlay) Render(records []scan.Record) error {
	markers := BuildMarkers(records)
	if err := o.surface.Clear(); err != nil {
		return fmt.Errorf("clear overlay: %w", err)
	}
	o.markers = nil
	if err := o.surface.Place(markers); err != nil {
		return fmt.Errorf("place markers: %w", err)
	}
	o.markers = markers
	o.log.Debug("overlay rendered", zap.Int("markers", len(markers)))
	return nil
}

// Clear removes all markers. Safe to call when nothing is rendered.
func (o *Overlay) Clear() error {
	if err := o.surface.Clear(); err != nil {
		return fmt.Errorf("clear overlay: %w", err)
	}
	o.markers = nil
	return nil
}

// Markers returns a copy of the markers currently on the surface
func (o *Overlay) Markers() []Marker {
	out := make([]Marker, len(o.markers))
	copy(out, o.markers)
	return out
}

// BuildMarkers converts records to markers, skipping anything that cannot be
// drawn: unassigned ids and degenerate boxes.
func BuildMarkers(records []scan.Record) []Marker {
	markers := make([]Marker, 0, len(records))
	for _, rec := range records {
		if rec.ID < 0 || rec.BBox.Width <= 0 || rec.BBox.Height <= 0 {
			continue
		}
		markers = append(markers, Marker{
			ID:      rec.ID,
			Label:   strconv.Itoa(rec.ID),
			Tooltip: Tooltip(rec),
			Color:   markerColor(rec.ID),
			BBox:    rec.BBox,
		})
	}
	return markers
}

// Tooltip builds the hover text for a record: identity first, then content,
// then state flags.
func Tooltip(rec scan.Record) string {
	head := fmt.Sprintf("#%d %s", rec.ID, rec.Type)
	if rec.Accessibility.Role != "" {
		head += "/" + rec.Accessibility.Role
	}
	parts := []string{head}
	if rec.Accessibility.Name != "" {
		parts = append(parts, rec.Accessibility.Name)
	}
	if rec.Text != "" && rec.Text != rec.Accessibility.Name {
		parts = append(parts, rec.Text)
	}
	if rec.Attributes.Value != "" {
		parts = append(parts, "value: "+rec.Attributes.Value)
	}
	if rec.Attributes.Placeholder != "" {
		parts = append(parts, "placeholder: "+rec.Attributes.Placeholder)
	}
	if rec.Attributes.ID != "" {
		parts = append(parts, "id: "+rec.Attributes.ID)
	}
	if rec.Attributes.Name != "" {
		parts = append(parts, "name: "+rec.Attributes.Name)
	}
	if rec.Attributes.Title != "" {
		parts = append(parts, "title: "+rec.Attributes.Title)
	}
	if rec.Locators.LabelText != "" {
		parts = append(parts, "label: "+rec.Locators.LabelText)
	}
	if !rec.State.IsEnabled {
		parts = append(parts, "disabled")
	}
	if rec.State.IsChecked != nil && *rec.State.IsChecked {
		parts = append(parts, "checked")
	}
	if rec.State.IsFocused {
		parts = append(parts, "focused")
	}
	return strings.Join(parts, " | ")
}

package overlay

import (
	"fmt"

	"github.com/go-rod/rod"
)

// clearScript removes the injected container. Idempotent by construction.
const clearScript = `() => {
	const old = document.getElementById("domscout-overlay");
	if (old) old.remove();
	return 0;
}`

// placeScript receives the marker batch as its argument and returns how many
// boxes it appended. Every node it creates carries the ownership attribute so
// discovery skips it, and pointer-events stays off so the page keeps working
// under the boxes.
const placeScript = `(markers) => {
	const container = document.createElement("div");
	container.id = "domscout-overlay";
	container.setAttribute("data-domscout-overlay", "root");
	container.style.cssText =
		"position:fixed;inset:0;pointer-events:none;z-index:2147483647";
	for (const m of markers) {
		const box = document.createElement("div");
		box.setAttribute("data-domscout-overlay", String(m.id));
		box.title = m.tooltip;
		box.style.cssText = "position:fixed;pointer-events:none;" +
			"left:" + m.bbox.x + "px;top:" + m.bbox.y + "px;" +
			"width:" + m.bbox.width + "px;height:" + m.bbox.height + "px;" +
			"border:2px solid " + m.color;
		const label = document.createElement("span");
		label.setAttribute("data-domscout-overlay", "label");
		label.textContent = m.label;
		label.style.cssText = "position:absolute;top:-18px;left:0;color:#fff;" +
			"font:11px/14px sans-serif;padding:1px 4px;pointer-events:none;" +
			"background:" + m.color;
		box.appendChild(label);
		container.appendChild(box);
	}
	document.body.appendChild(container);
	return markers.length;
}`

// PageSurface draws markers into a live page by injecting positioned divs
type PageSurface struct {
	page *rod.Page
}

// NewPageSurface returns a surface over a connected page
func NewPageSurface(page *rod.Page) *PageSurface {
	return &PageSurface{page: page}
}

// Clear removes the injected container if present
func (s *PageSurface) Clear() error {
	if _, err := s.page.Eval(clearScript); err != nil {
		return fmt.Errorf("clear page overlay: %w", err)
	}
	return nil
}

// Place injects all markers in one round trip and verifies the count
func (s *PageSurface) Place(markers []Marker) error {
	if len(markers) == 0 {
		return nil
	}
	res, err := s.page.Eval(placeScript, markers)
	if err != nil {
		return fmt.Errorf("inject markers: %w", err)
	}
	if placed := res.Value.Int(); placed != len(markers) {
		return fmt.Errorf("placed %d of %d markers", placed, len(markers))
	}
	return nil
}

package scan

import (
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// formControlTags inherit disabling from an enclosing disabled fieldset.
// Other content (links, contenteditable regions) does not.
var formControlTags = map[string]bool{
	"input":    true,
	"button":   true,
	"select":   true,
	"textarea": true,
	"option":   true,
	"optgroup": true,
	"output":   true,
	"fieldset": true,
}

// Enabled computes the disabled state. Disabled elements are recorded, never
// filtered; callers decide whether to act on them.
func Enabled(snap *dom.Snapshot, n *html.Node) bool {
	if dom.HasAttr(n, "disabled") {
		return false
	}
	if v, _ := dom.Attr(n, "aria-disabled"); strings.EqualFold(strings.TrimSpace(v), "true") {
		return false
	}
	if !formControlTags[dom.TagName(n)] {
		return true
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if dom.TagName(p) == "fieldset" && dom.HasAttr(p, "disabled") {
			if !insideFirstLegend(p, n) {
				return false
			}
		}
	}
	return true
}

// insideFirstLegend reports whether n sits inside the fieldset's first legend,
// the one region a disabled fieldset does not disable.
func insideFirstLegend(fieldset, n *html.Node) bool {
	var legend *html.Node
	for c := fieldset.FirstChild; c != nil; c = c.NextSibling {
		if dom.TagName(c) == "legend" {
			legend = c
			break
		}
	}
	if legend == nil {
		return false
	}
	for p := n; p != nil && p != fieldset; p = p.Parent {
		if p == legend {
			return true
		}
	}
	return false
}

// Checked returns the tri-state checked value: true/false for checkable
// elements, nil for everything else (including aria-checked="mixed").
func Checked(snap *dom.Snapshot, n *html.Node) *bool {
	if v, ok := dom.Attr(n, "aria-checked"); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return boolPtr(true)
		case "false":
			return boolPtr(false)
		}
		return nil
	}
	if dom.TagName(n) == "input" {
		switch inputType(n) {
		case "checkbox", "radio":
			if v, ok := snap.Checked(n); ok {
				return boolPtr(v)
			}
			return boolPtr(dom.HasAttr(n, "checked"))
		}
	}
	return nil
}

// Required returns the tri-state required value: known for form fields and
// anything carrying aria-required, nil otherwise.
func Required(snap *dom.Snapshot, n *html.Node) *bool {
	if dom.HasAttr(n, "required") {
		return boolPtr(true)
	}
	if v, _ := dom.Attr(n, "aria-required"); strings.EqualFold(strings.TrimSpace(v), "true") {
		return boolPtr(true)
	}
	switch dom.TagName(n) {
	case "input", "select", "textarea":
		return boolPtr(false)
	}
	return nil
}

func inputType(n *html.Node) string {
	v, _ := dom.Attr(n, "type")
	return strings.ToLower(strings.TrimSpace(v))
}

func boolPtr(b bool) *bool {
	return &b
}

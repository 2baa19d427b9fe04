package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// genericNameRoles may fall back to their own text content as the name
var genericNameRoles = map[string]bool{
	"link":     true,
	"menuitem": true,
	"tab":      true,
	"checkbox": true,
	"radio":    true,
	"heading":  true,
	"option":   true,
	"treeitem": true,
}

// textBearingTags qualify for the generic text fallback
var textBearingTags = map[string]bool{
	"a": true, "button": true, "summary": true, "label": true, "legend": true,
	"span": true, "div": true, "p": true, "li": true, "td": true, "th": true,
	"caption": true, "figcaption": true, "dt": true, "dd": true, "option": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// NameResolver computes the accessible name of an element through a strict
// precedence chain: aria-labelledby, aria-label, associated labels, then
// tag-specific sources, then title, then bounded generic text. The first
// non-empty result wins and no later step re-runs.
type NameResolver struct {
	// TextLimit bounds the generic text fallback, in runes
	TextLimit int
}

// Resolve returns the accessible name, or "" when the element has none
func (r *NameResolver) Resolve(snap *dom.Snapshot, n *html.Node) string {
	if name := labelledByName(snap, n); name != "" {
		return name
	}
	if v, _ := dom.Attr(n, "aria-label"); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if name := labelName(snap, n); name != "" {
		return name
	}

	tag := dom.TagName(n)
	role, _ := dom.Attr(n, "role")
	if tag == "button" || strings.EqualFold(strings.TrimSpace(role), "button") {
		if t := dom.TextContent(n); t != "" {
			return t
		}
	}
	if tag == "img" || (tag == "input" && inputType(n) == "image") {
		if v, _ := dom.Attr(n, "alt"); strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if tag == "input" {
		switch inputType(n) {
		case "button", "submit", "reset":
			if v, _ := dom.Attr(n, "value"); strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	if tag == "summary" {
		if t := dom.TextContent(n); t != "" {
			return t
		}
	}
	if v, _ := dom.Attr(n, "title"); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return r.genericText(n, tag, role)
}

// genericText is the last resort: short own text, and only for elements whose
// role does not contradict being named by content.
func (r *NameResolver) genericText(n *html.Node, tag, role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" && !genericNameRoles[role] {
		return ""
	}
	if !textBearingTags[tag] {
		return ""
	}
	t := dom.TextContent(n)
	if t == "" {
		return ""
	}
	limit := r.TextLimit
	if limit <= 0 {
		limit = 150
	}
	if utf8.RuneCountInString(t) >= limit {
		return ""
	}
	return t
}

// labelledByName resolves aria-labelledby references and joins their text
func labelledByName(snap *dom.Snapshot, n *html.Node) string {
	refs, ok := dom.Attr(n, "aria-labelledby")
	if !ok {
		return ""
	}
	var parts []string
	for _, id := range strings.Fields(refs) {
		ref := snap.ElementByID(id)
		if ref == nil {
			continue
		}
		if t := dom.TextContent(ref); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// labelName joins the text of every associated label element
func labelName(snap *dom.Snapshot, n *html.Node) string {
	var parts []string
	for _, l := range snap.Labels(n) {
		if t := dom.TextContent(l); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

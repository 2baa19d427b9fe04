package scan

import (
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// landmarkRoles end the ancestor walk immediately when found
var landmarkRoles = map[string]bool{
	"listbox":    true,
	"menu":       true,
	"menubar":    true,
	"dialog":     true,
	"form":       true,
	"grid":       true,
	"table":      true,
	"radiogroup": true,
	"tablist":    true,
	"toolbar":    true,
	"tree":       true,
	"combobox":   true,
}

// semanticTags are the fallback when no landmark role appears within the bound
var semanticTags = map[string]bool{
	"form":    true,
	"table":   true,
	"ul":      true,
	"ol":      true,
	"nav":     true,
	"aside":   true,
	"main":    true,
	"section": true,
	"article": true,
}

// Summary describes a structural container near a discovered element
type Summary struct {
	TagName   string   `json:"tagName"`
	ID        string   `json:"id,omitempty"`
	Role      string   `json:"role,omitempty"`
	ClassList []string `json:"classList,omitempty"`
}

// ContextResolver finds the structurally meaningful containers around an
// element: the immediate parent, always, and the nearest landmark ancestor
// within a bounded walk. A landmark role match at any depth beats a semantic
// tag match.
type ContextResolver struct {
	// MaxDepth bounds the ancestor walk
	MaxDepth int
}

// Resolve returns the parent summary and the landmark ancestor summary.
// Either may be nil. The walk stops at the document body.
func (r *ContextResolver) Resolve(snap *dom.Snapshot, n *html.Node) (parent, ancestor *Summary) {
	if dom.IsElement(n.Parent) {
		parent = summarize(n.Parent)
	}

	depth := r.MaxDepth
	if depth <= 0 {
		depth = 5
	}
	var tagMatch *html.Node
	cur := n.Parent
	for level := 0; level < depth && cur != nil; level++ {
		if !dom.IsElement(cur) || dom.TagName(cur) == "body" {
			break
		}
		if role, _ := dom.Attr(cur, "role"); landmarkRoles[strings.ToLower(strings.TrimSpace(role))] {
			return parent, summarize(cur)
		}
		if tagMatch == nil && semanticTags[dom.TagName(cur)] {
			tagMatch = cur
		}
		cur = cur.Parent
	}
	if tagMatch != nil {
		ancestor = summarize(tagMatch)
	}
	return parent, ancestor
}

func summarize(n *html.Node) *Summary {
	s := &Summary{TagName: dom.TagName(n)}
	s.ID, _ = dom.Attr(n, "id")
	s.Role, _ = dom.Attr(n, "role")
	s.ClassList = presentableClasses(dom.ClassList(n), 3)
	return s
}

// presentableClasses drops generated utility noise and caps the list
func presentableClasses(classes []string, max int) []string {
	var out []string
	for _, c := range classes {
		if len(c) > 24 || strings.ContainsAny(c, ":[]()&>~") {
			continue
		}
		out = append(out, c)
		if len(out) == max {
			break
		}
	}
	return out
}

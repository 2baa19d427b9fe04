package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// OverlayAttr marks nodes created by the overlay renderer. Discovery ignores
// any element carrying it, directly or through an ancestor.
const OverlayAttr = "data-domscout-overlay"

// Walk visits n and every node below it in document order
func Walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// IsElement reports whether n is an element node
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// TagName returns the lower-cased tag of an element, or "" for other nodes
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToLower(n.Data)
}

// Attr returns the value of the named attribute and whether it is present
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, regardless of value
func HasAttr(n *html.Node, name string) bool {
	_, ok := Attr(n, name)
	return ok
}

// ClassList returns the element's class tokens in order
func ClassList(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// DataAttributes returns data-* attributes keyed by the name after the prefix
func DataAttributes(n *html.Node) map[string]string {
	if n == nil {
		return nil
	}
	var out map[string]string
	for _, a := range n.Attr {
		if !strings.HasPrefix(a.Key, "data-") {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[strings.TrimPrefix(a.Key, "data-")] = a.Val
	}
	return out
}

// CollapseSpace trims and collapses runs of whitespace to single spaces
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tags whose text is never part of visible content
var nonTextTags = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}

// TextContent returns the trimmed, whitespace-collapsed text of the subtree.
// Script-like containers are excluded.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if nonTextTags[n.Data] {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return CollapseSpace(b.String())
}

// HasDescendantMatching reports whether any strict descendant of n matches
func HasDescendantMatching(n *html.Node, match func(*html.Node) bool) bool {
	if n == nil {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) || HasDescendantMatching(c, match) {
			return true
		}
	}
	return false
}

// CreateElement returns a detached element node
func CreateElement(tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: strings.ToLower(tag),
		Attr: attrs,
	}
}

// CreateText returns a detached text node
func CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Remove detaches n from its parent; safe on already-detached nodes
func Remove(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

package scan

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// Rule is one interactivity heuristic. Rules run in slice order and the first
// match wins, so the policy stays auditable rule by rule.
type Rule struct {
	Name  string
	Match func(snap *dom.Snapshot, n *html.Node) bool
}

// Classifier decides whether a candidate element is likely interactive.
type Classifier struct {
	Rules []Rule
}

// NewClassifier returns a classifier with the default rule order
func NewClassifier() *Classifier {
	return &Classifier{Rules: DefaultRules()}
}

// Classify runs the rules in order, then applies the list/table cell override,
// which replaces the verdict for li/td/th entirely. It returns the verdict and
// the name of the deciding rule ("" when nothing matched).
func (c *Classifier) Classify(snap *dom.Snapshot, n *html.Node) (bool, string) {
	verdict := false
	matched := ""
	for _, r := range c.Rules {
		if r.Match(snap, n) {
			verdict, matched = true, r.Name
			break
		}
	}
	switch dom.TagName(n) {
	case "li", "td", "th":
		if !cellInteractive(snap, n) {
			return false, ""
		}
		if !verdict {
			matched = "cell-override"
		}
		return true, matched
	}
	return verdict, matched
}

// DefaultRules returns the standard heuristics in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		{Name: "interactive-tag", Match: matchInteractiveTag},
		{Name: "anchor", Match: matchAnchor},
		{Name: "label-for-control", Match: matchLabelForControl},
		{Name: "interactive-role", Match: matchInteractiveRole},
		{Name: "datepicker-switch", Match: matchDatePickerSwitch},
		{Name: "click-binding", Match: matchClickBinding},
		{Name: "focusable", Match: matchFocusable},
		{Name: "click-handler", Match: matchClickHandler},
		{Name: "content-editable", Match: matchContentEditable},
		{Name: "pointer-affordance", Match: matchPointerAffordance},
	}
}

var interactiveTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"details":  true,
}

var interactiveRoles = map[string]bool{
	"button":           true,
	"link":             true,
	"menuitem":         true,
	"menuitemcheckbox": true,
	"menuitemradio":    true,
	"tab":              true,
	"checkbox":         true,
	"radio":            true,
	"option":           true,
	"combobox":         true,
	"slider":           true,
	"spinbutton":       true,
	"switch":           true,
	"searchbox":        true,
	"treeitem":         true,
}

// clickBindingAttrs are the framework event bindings treated as click wiring
var clickBindingAttrs = []string{
	"ng-click", "data-ng-click", "@click", "v-on:click", "(click)", "jsaction",
}

// largeLayoutTags never become interactive through cursor styling alone
var largeLayoutTags = map[string]bool{
	"body":    true,
	"html":    true,
	"main":    true,
	"section": true,
	"article": true,
	"aside":   true,
	"nav":     true,
}

// cellRoles make a bare li/td/th actionable (grids, menus, option lists)
var cellRoles = map[string]bool{
	"gridcell":         true,
	"row":              true,
	"columnheader":     true,
	"rowheader":        true,
	"option":           true,
	"menuitem":         true,
	"menuitemcheckbox": true,
	"menuitemradio":    true,
	"treeitem":         true,
	"tab":              true,
}

var datePickerSwitchClasses = map[string]bool{
	"datepicker-switch": true,
	"picker-switch":     true,
}

var datePickerCellClasses = map[string]bool{
	"day":     true,
	"month":   true,
	"year":    true,
	"decade":  true,
	"century": true,
	"hour":    true,
	"minute":  true,
}

var interactiveDescendant = cascadia.MustCompile(
	"a, button, input, select, textarea, [onclick], [role^=button], [role^=link]")

func matchInteractiveTag(snap *dom.Snapshot, n *html.Node) bool {
	return interactiveTags[dom.TagName(n)]
}

func matchAnchor(snap *dom.Snapshot, n *html.Node) bool {
	if dom.TagName(n) != "a" {
		return false
	}
	if href, ok := dom.Attr(n, "href"); ok && realHref(href) {
		return true
	}
	if role, _ := dom.Attr(n, "role"); strings.EqualFold(role, "button") {
		return true
	}
	return hasClickHandler(snap, n) ||
		focusable(n) ||
		pointerCursor(snap, n) ||
		hasButtonClass(n) ||
		hasClickBinding(n)
}

// realHref rejects empty, same-page, and javascript: pseudo links
func realHref(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(href), "javascript:")
}

func matchLabelForControl(snap *dom.Snapshot, n *html.Node) bool {
	if dom.TagName(n) != "label" {
		return false
	}
	control := snap.LabelControl(n)
	if control == nil {
		return false
	}
	switch dom.TagName(control) {
	case "input", "select", "textarea", "button":
		return Enabled(snap, control)
	}
	return false
}

func matchInteractiveRole(snap *dom.Snapshot, n *html.Node) bool {
	role, _ := dom.Attr(n, "role")
	return interactiveRoles[strings.ToLower(strings.TrimSpace(role))]
}

func matchDatePickerSwitch(snap *dom.Snapshot, n *html.Node) bool {
	for _, c := range dom.ClassList(n) {
		if datePickerSwitchClasses[strings.ToLower(c)] {
			return true
		}
	}
	return false
}

func matchClickBinding(snap *dom.Snapshot, n *html.Node) bool {
	return hasClickBinding(n)
}

func matchFocusable(snap *dom.Snapshot, n *html.Node) bool {
	return focusable(n)
}

func matchClickHandler(snap *dom.Snapshot, n *html.Node) bool {
	return hasClickHandler(snap, n)
}

func matchContentEditable(snap *dom.Snapshot, n *html.Node) bool {
	v, ok := dom.Attr(n, "contenteditable")
	return ok && !strings.EqualFold(strings.TrimSpace(v), "false")
}

// matchPointerAffordance treats a styled container as interactive only when it
// is not just wrapping a real control.
func matchPointerAffordance(snap *dom.Snapshot, n *html.Node) bool {
	if !pointerCursor(snap, n) && !hasButtonClass(n) {
		return false
	}
	if largeLayoutTags[dom.TagName(n)] {
		return false
	}
	return !dom.HasDescendantMatching(n, interactiveDescendant)
}

// cellInteractive is the override gate for li/td/th
func cellInteractive(snap *dom.Snapshot, n *html.Node) bool {
	if isDatePickerCell(n) {
		return true
	}
	if role, _ := dom.Attr(n, "role"); cellRoles[strings.ToLower(strings.TrimSpace(role))] {
		return true
	}
	if hasClickBinding(n) {
		return true
	}
	return pointerCursor(snap, n)
}

func isDatePickerCell(n *html.Node) bool {
	for _, c := range dom.ClassList(n) {
		lc := strings.ToLower(c)
		if datePickerCellClasses[lc] || strings.Contains(lc, "datepicker") {
			return true
		}
	}
	return false
}

func hasClickBinding(n *html.Node) bool {
	for _, attr := range clickBindingAttrs {
		if dom.HasAttr(n, attr) {
			return true
		}
	}
	return false
}

func hasClickHandler(snap *dom.Snapshot, n *html.Node) bool {
	return dom.HasAttr(n, "onclick") || snap.Clickable(n)
}

func focusable(n *html.Node) bool {
	v, ok := dom.Attr(n, "tabindex")
	if !ok {
		return false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	return err == nil && i >= 0
}

func pointerCursor(snap *dom.Snapshot, n *html.Node) bool {
	return snap.Style(n).Cursor == "pointer"
}

func hasButtonClass(n *html.Node) bool {
	for _, c := range dom.ClassList(n) {
		lc := strings.ToLower(c)
		if lc == "btn" || strings.Contains(lc, "button") ||
			strings.HasPrefix(lc, "btn-") || strings.HasSuffix(lc, "-btn") {
			return true
		}
	}
	return false
}

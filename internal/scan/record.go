package scan

import (
	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// Record is one discovered element. Ids are unique and contiguous within one
// discovery call and carry no meaning across calls or page loads.
type Record struct {
	ID            int           `json:"id"`
	Type          string        `json:"type"`
	Text          string        `json:"text,omitempty"`
	BBox          dom.Rect      `json:"bbox"`
	Attributes    Attributes    `json:"attributes"`
	Accessibility Accessibility `json:"accessibility"`
	State         State         `json:"state"`
	Locators      Locators      `json:"locators"`
	Context       Context       `json:"context"`
}

// Attributes are the raw DOM attributes worth keeping. Absent attributes are
// omitted from the encoding rather than serialized as empty strings.
type Attributes struct {
	ID          string            `json:"id,omitempty"`
	ClassList   []string          `json:"classList,omitempty"`
	Name        string            `json:"name,omitempty"`
	Value       string            `json:"value,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Type        string            `json:"type,omitempty"`
	Title       string            `json:"title,omitempty"`
	Role        string            `json:"role,omitempty"`
	Href        string            `json:"href,omitempty"`
	Data        map[string]string `json:"dataAttributes,omitempty"`
}

// Accessibility carries the resolved name plus raw ARIA passthroughs
type Accessibility struct {
	Role        string `json:"role,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	HasPopup    string `json:"haspopup,omitempty"`
	Current     string `json:"current,omitempty"`
	Expanded    string `json:"expanded,omitempty"`
	Selected    string `json:"selected,omitempty"`
	Level       string `json:"level,omitempty"`
	AriaLabel   string `json:"ariaLabel,omitempty"`
}

// State is the element's interaction state at scan time. IsChecked and
// IsRequired are tri-state: nil marshals as null for not-applicable.
type State struct {
	IsVisible  bool   `json:"isVisible"`
	IsEnabled  bool   `json:"isEnabled"`
	IsFocused  bool   `json:"isFocused"`
	IsChecked  *bool  `json:"isChecked"`
	IsRequired *bool  `json:"isRequired"`
	Cursor     string `json:"cursor,omitempty"`
}

// Locators holds the human-oriented ways of pointing at the element
type Locators struct {
	LabelText string `json:"labelText,omitempty"`
}

// Context places the element among its structural containers
type Context struct {
	Parent   *Summary `json:"parent"`
	Ancestor *Summary `json:"ancestor"`
}

// Builder composes the resolvers into one record per element
type Builder struct {
	Names    *NameResolver
	Contexts *ContextResolver
}

// Build assembles the record for one element. The id is assigned later,
// after deduplication.
func (b *Builder) Build(snap *dom.Snapshot, n *html.Node) Record {
	lay, _ := snap.Layout(n)
	rec := Record{
		ID:   -1,
		Type: dom.TagName(n),
		Text: dom.TextContent(n),
		BBox: lay.BBox,
	}
	rec.Attributes = buildAttributes(snap, n)
	rec.Accessibility = buildAccessibility(b.Names, snap, n)
	rec.State = State{
		IsVisible:  true,
		IsEnabled:  Enabled(snap, n),
		IsFocused:  snap.Focused() == n,
		IsChecked:  Checked(snap, n),
		IsRequired: Required(snap, n),
		Cursor:     lay.Style.Cursor,
	}
	rec.Locators = Locators{LabelText: labelName(snap, n)}
	parent, ancestor := b.Contexts.Resolve(snap, n)
	rec.Context = Context{Parent: parent, Ancestor: ancestor}
	return rec
}

func buildAttributes(snap *dom.Snapshot, n *html.Node) Attributes {
	a := Attributes{ClassList: dom.ClassList(n), Data: dom.DataAttributes(n)}
	a.ID, _ = dom.Attr(n, "id")
	a.Name, _ = dom.Attr(n, "name")
	a.Placeholder, _ = dom.Attr(n, "placeholder")
	a.Type, _ = dom.Attr(n, "type")
	a.Title, _ = dom.Attr(n, "title")
	a.Role, _ = dom.Attr(n, "role")
	a.Href, _ = dom.Attr(n, "href")
	if v, ok := snap.Value(n); ok {
		a.Value = v
	} else {
		a.Value, _ = dom.Attr(n, "value")
	}
	return a
}

func buildAccessibility(names *NameResolver, snap *dom.Snapshot, n *html.Node) Accessibility {
	acc := Accessibility{Name: names.Resolve(snap, n)}
	acc.Role, _ = dom.Attr(n, "role")
	acc.Description, _ = dom.Attr(n, "aria-description")
	acc.HasPopup, _ = dom.Attr(n, "aria-haspopup")
	acc.Current, _ = dom.Attr(n, "aria-current")
	acc.Expanded, _ = dom.Attr(n, "aria-expanded")
	acc.Selected, _ = dom.Attr(n, "aria-selected")
	acc.Level, _ = dom.Attr(n, "aria-level")
	acc.AriaLabel, _ = dom.Attr(n, "aria-label")
	return acc
}

package dom

import "golang.org/x/net/html"

// Labels returns the label elements associated with a control, through a
// matching for= attribute or an enclosing label, in document order.
func (s *Snapshot) Labels(n *html.Node) []*html.Node {
	var out []*html.Node
	if id, ok := Attr(n, "id"); ok && id != "" {
		Walk(s.root, func(l *html.Node) {
			if TagName(l) != "label" {
				return
			}
			if forID, ok := Attr(l, "for"); ok && forID == id {
				out = append(out, l)
			}
		})
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if TagName(p) == "label" {
			if !containsNode(out, p) {
				out = append(out, p)
			}
			break
		}
	}
	return out
}

// LabelControl returns the form control a label is associated with, via its
// for= attribute or the first enclosed control. Nil when there is none.
func (s *Snapshot) LabelControl(label *html.Node) *html.Node {
	if forID, ok := Attr(label, "for"); ok && forID != "" {
		return s.ElementByID(forID)
	}
	var control *html.Node
	Walk(label, func(n *html.Node) {
		if control != nil || n == label {
			return
		}
		switch TagName(n) {
		case "input", "select", "textarea", "button":
			control = n
		}
	})
	return control
}

func containsNode(nodes []*html.Node, n *html.Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}

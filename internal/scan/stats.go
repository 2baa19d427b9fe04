package scan

import (
	"strings"

	"github.com/domscout/domscout/internal/dom"
	"golang.org/x/net/html"
)

// Stats summarizes the structure of a captured page
type Stats struct {
	TotalElements    int `json:"totalElements"`
	Links            int `json:"links"`
	Iframes          int `json:"iframes"`
	ScrollContainers int `json:"scrollContainers"`
	Interactive      int `json:"interactive"`
}

// Summarize counts page structure across the snapshot plus the discovery
// result
func Summarize(snap *dom.Snapshot, records []Record) Stats {
	var st Stats
	dom.Walk(snap.Root(), func(n *html.Node) {
		if !dom.IsElement(n) {
			return
		}
		st.TotalElements++
		switch dom.TagName(n) {
		case "a":
			if dom.HasAttr(n, "href") {
				st.Links++
			}
		case "iframe", "frame":
			st.Iframes++
		}
		ov := snap.Style(n).Overflow
		if strings.Contains(ov, "auto") || strings.Contains(ov, "scroll") {
			st.ScrollContainers++
		}
	})
	st.Interactive = len(records)
	return st
}

package scan

import (
	"fmt"
	"strings"
)

// Compact renders records one per line for agent prompts, cheapest-token
// first: id, tag, name, then only the state that differs from the default.
func Compact(records []Record) string {
	var b strings.Builder
	for _, rec := range records {
		b.WriteString(CompactLine(rec))
		b.WriteByte('\n')
	}
	return b.String()
}

// CompactLine renders a single record
func CompactLine(rec Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] <%s>", rec.ID, rec.Type)
	if rec.Attributes.Type != "" {
		fmt.Fprintf(&b, " type=%s", rec.Attributes.Type)
	}
	if rec.Accessibility.Role != "" {
		fmt.Fprintf(&b, " role=%s", rec.Accessibility.Role)
	}
	name := rec.Accessibility.Name
	if name != "" {
		fmt.Fprintf(&b, " %q", truncate(name, 60))
	}
	if rec.Text != "" && rec.Text != name {
		fmt.Fprintf(&b, " text=%q", truncate(rec.Text, 60))
	}
	if rec.Attributes.Value != "" {
		fmt.Fprintf(&b, " value=%q", truncate(rec.Attributes.Value, 30))
	}
	if rec.Attributes.Placeholder != "" {
		fmt.Fprintf(&b, " placeholder=%q", truncate(rec.Attributes.Placeholder, 30))
	}
	if !rec.State.IsEnabled {
		b.WriteString(" disabled")
	}
	if rec.State.IsFocused {
		b.WriteString(" focused")
	}
	if rec.State.IsChecked != nil {
		if *rec.State.IsChecked {
			b.WriteString(" checked")
		} else {
			b.WriteString(" unchecked")
		}
	}
	if rec.State.IsRequired != nil && *rec.State.IsRequired {
		b.WriteString(" required")
	}
	if rec.Context.Ancestor != nil {
		fmt.Fprintf(&b, " in:%s", rec.Context.Ancestor.TagName)
	}
	fmt.Fprintf(&b, " @%.0f,%.0f", rec.BBox.X, rec.BBox.Y)
	return b.String()
}

// truncate bounds a string to max runes, marking the cut
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

package scan

import (
	"fmt"
	"math"
)

// Dedupe collapses records that describe the same logical control and assigns
// dense ids in discovery order. First-seen wins; later records with the same
// key are dropped without merging.
func Dedupe(records []Record) []Record {
	seen := make(map[string]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key := dedupKey(rec)
		if seen[key] {
			continue
		}
		seen[key] = true
		rec.ID = len(out)
		out = append(out, rec)
	}
	return out
}

// dedupKey joins the primary identifier with the rounded screen position, so
// two controls that read the same but sit apart stay distinct.
func dedupKey(rec Record) string {
	return fmt.Sprintf("%s_%d_%d",
		primaryIdentifier(rec),
		int(math.Round(rec.BBox.X)),
		int(math.Round(rec.BBox.Y)))
}

// primaryIdentifier is the first non-empty of: resolved name, text, DOM id,
// tag type
func primaryIdentifier(rec Record) string {
	if rec.Accessibility.Name != "" {
		return rec.Accessibility.Name
	}
	if rec.Text != "" {
		return rec.Text
	}
	if rec.Attributes.ID != "" {
		return rec.Attributes.ID
	}
	return rec.Type
}

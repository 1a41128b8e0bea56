package analysis

import (
	"fmt"
	"sort"
	"strings"
)

// Markdown renders a compact text report of the dashboard.
func (d *Dashboard) Markdown() string {
	var b strings.Builder
	b.WriteString("[CATALOG SUMMARY]\n")
	if d.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", d.Source))
	}
	b.WriteString(fmt.Sprintf("Titles: %d (matching filter: %d)\n", d.Total, d.Matched))
	b.WriteString(fmt.Sprintf("Filter: %s\n", describeFilter(d)))

	b.WriteString("\n[OVERVIEW]\n")
	writeBuckets(&b, "Types", d.Overview.Types, "%.0f")
	writeBuckets(&b, "Ratings", d.Overview.Ratings, "%.0f")

	b.WriteString("\n[TIME]\n")
	b.WriteString("- Titles per release year and type:\n")
	for _, yc := range d.Time.YearByType {
		b.WriteString(fmt.Sprintf("  • %d %s: %d\n", yc.Year, yc.Key, yc.Count))
	}
	if n := len(d.Time.MonthlyAdded); n > 0 {
		first, last := d.Time.MonthlyAdded[0], d.Time.MonthlyAdded[n-1]
		peak := first
		for _, m := range d.Time.MonthlyAdded {
			if m.Count > peak.Count {
				peak = m
			}
		}
		b.WriteString(fmt.Sprintf("- Added per month: %d months from %s to %s, peak %s (%d)\n", n, first.Month, last.Month, peak.Month, peak.Count))
	}
	if len(d.Time.RatingTrend.Categories) > 0 {
		b.WriteString(fmt.Sprintf("- Rating legend: %s\n", strings.Join(d.Time.RatingTrend.Categories, ", ")))
	}

	b.WriteString("\n[TOP]\n")
	writeBuckets(&b, "Countries", d.Top.Countries, "%.4g")
	writeBuckets(&b, "Directors", d.Top.Directors, "%.4g")
	writeBuckets(&b, "Genres", d.Top.Genres, "%.4g")

	b.WriteString("\n[DURATION]\n")
	writeBuckets(&b, "Movie directors (mean minutes)", d.Duration.Movies, "%.1f")
	writeBuckets(&b, "TV show directors (mean seasons)", d.Duration.TVShows, "%.2f")

	if d.Projection != nil {
		b.WriteString("\n[GENRE PROJECTION]\n")
		b.WriteString(fmt.Sprintf("- Points: %d\n", len(d.Projection.Points)))
		b.WriteString(fmt.Sprintf("- Explained variance: PC1 %.1f%%, PC2 %.1f%%\n",
			d.Projection.ExplainedVariance[0]*100, d.Projection.ExplainedVariance[1]*100))
	}

	b.WriteString("\n[GENRE CO-OCCURRENCE]\n")
	b.WriteString(fmt.Sprintf("- Genres: %d, pairs: %d\n", len(d.Graph.Nodes), len(d.Graph.Edges)))
	for _, e := range strongestEdges(d.Graph.Edges, 10) {
		b.WriteString(fmt.Sprintf("  • %s ↔ %s: %d\n", e.A, e.B, e.Weight))
	}
	return b.String()
}

func describeFilter(d *Dashboard) string {
	var parts []string
	f := d.Filter
	if f.YearMin > 0 || f.YearMax > 0 {
		lo, hi := "…", "…"
		if f.YearMin > 0 {
			lo = fmt.Sprint(f.YearMin)
		}
		if f.YearMax > 0 {
			hi = fmt.Sprint(f.YearMax)
		}
		parts = append(parts, fmt.Sprintf("years %s-%s", lo, hi))
	}
	if len(f.Types) > 0 {
		parts = append(parts, "types "+strings.Join(f.Types, ", "))
	}
	if len(f.Countries) > 0 {
		parts = append(parts, "countries "+strings.Join(f.Countries, ", "))
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "; ")
}

func writeBuckets(b *strings.Builder, label string, buckets []Bucket, format string) {
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(": ")
	if len(buckets) == 0 {
		b.WriteString("(no data)\n")
		return
	}
	for i, kv := range buckets {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%s("+format+")", safeVal(kv.Key), kv.Value))
	}
	b.WriteString("\n")
}

// strongestEdges returns up to n edges by descending weight, pair order breaking ties.
func strongestEdges(edges []Edge, n int) []Edge {
	out := append([]Edge(nil), edges...)
	// edges arrive sorted by pair, so a stable sort keeps ties in pair order
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

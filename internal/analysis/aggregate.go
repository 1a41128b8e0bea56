package analysis

import (
	"sort"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
)

// AverageLabel names the synthetic bucket appended to top-k rankings.
const AverageLabel = "Average"

// Bucket is one group key with its metric, a count or a mean.
type Bucket struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// ValueCounts counts occurrences per distinct value, largest first. Equal counts
// keep the order in which the values first appeared.
func ValueCounts(values []string) []Bucket {
	idx := map[string]int{}
	var out []Bucket
	for _, v := range values {
		i, ok := idx[v]
		if !ok {
			i = len(out)
			idx[v] = i
			out = append(out, Bucket{Key: v})
		}
		out[i].Value++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// TopKWithAverage returns the k most frequent values followed by an "Average"
// bucket holding the mean count over every distinct value, not only the top k.
// An empty input yields an empty result.
func TopKWithAverage(values []string, k int) []Bucket {
	counts := ValueCounts(values)
	if len(counts) == 0 {
		return []Bucket{}
	}
	var sum float64
	for _, c := range counts {
		sum += c.Value
	}
	top := counts
	if k >= 0 && len(top) > k {
		top = top[:k]
	}
	out := make([]Bucket, 0, len(top)+1)
	out = append(out, top...)
	return append(out, Bucket{Key: AverageLabel, Value: sum / float64(len(counts))})
}

// TypeCounts is the movies-versus-shows distribution.
func TypeCounts(t *catalog.Table) []Bucket {
	var vals []string
	for _, ti := range t.Titles() {
		if ti.Type != "" {
			vals = append(vals, ti.Type)
		}
	}
	return nonNil(ValueCounts(vals))
}

// RatingCounts is the rating distribution; missing ratings were already mapped to "Unknown".
func RatingCounts(t *catalog.Table) []Bucket {
	var vals []string
	for _, ti := range t.Titles() {
		vals = append(vals, ti.Rating)
	}
	return nonNil(ValueCounts(vals))
}

// DurationByDirector ranks directors of one content type by their mean duration
// (minutes for movies, seasons for shows). Rows lacking a director, a duration or
// a type are dropped first. The trailing "Average" is the mean over every
// exploded director row of that type, so directors with more titles weigh more.
func DurationByDirector(t *catalog.Table, contentType string, k int) []Bucket {
	type acc struct {
		sum float64
		n   int
	}
	idx := map[string]int{}
	var keys []string
	var accs []acc
	var total float64
	var rows int
	for _, ti := range t.Titles() {
		if ti.Director == "" || ti.DurationNum == nil || ti.Type == "" || ti.Type != contentType {
			continue
		}
		d := *ti.DurationNum
		for _, dir := range SplitValues(ti.Director, DirectorDelimiter) {
			i, ok := idx[dir]
			if !ok {
				i = len(keys)
				idx[dir] = i
				keys = append(keys, dir)
				accs = append(accs, acc{})
			}
			accs[i].sum += d
			accs[i].n++
			total += d
			rows++
		}
	}
	if rows == 0 {
		return []Bucket{}
	}
	means := make([]Bucket, len(keys))
	for i, k := range keys {
		means[i] = Bucket{Key: k, Value: accs[i].sum / float64(accs[i].n)}
	}
	sort.SliceStable(means, func(i, j int) bool { return means[i].Value > means[j].Value })
	if k >= 0 && len(means) > k {
		means = means[:k]
	}
	return append(means, Bucket{Key: AverageLabel, Value: total / float64(rows)})
}

func nonNil(b []Bucket) []Bucket {
	if b == nil {
		return []Bucket{}
	}
	return b
}

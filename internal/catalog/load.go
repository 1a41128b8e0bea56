package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LoadReport summarizes what the loader did with the source rows.
type LoadReport struct {
	Name   string
	Rows   int
	Loaded int
	// MissingYear counts rows kept without a usable release_year.
	MissingYear int
	Warnings    []string
}

const maxWarnings = 20

func (r *LoadReport) warn(format string, args ...any) {
	if len(r.Warnings) < maxWarnings {
		r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	}
}

// Load reads a catalog file, choosing the reader by extension (.csv, .tsv, .xlsx).
func Load(path string) (*Table, *LoadReport, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return LoadXLSX(path, "")
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"):
		return LoadCSV(path)
	default:
		return nil, nil, fmt.Errorf("unsupported catalog format: %s", filepath.Base(path))
	}
}

// LoadCSV reads a comma or tab separated catalog with a header row.
func LoadCSV(path string) (*Table, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			rep := &LoadReport{Name: filepath.Base(path)}
			return NewTable(rep.Name, nil), rep, nil
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	b := newBuilder(filepath.Base(path), header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read row %d: %w", b.rep.Rows+1, err)
		}
		b.add(rec)
	}
	return b.table(), b.rep, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// builder turns raw string records into titles, applying the upstream
// normalization every analysis relies on.
type builder struct {
	cols   map[string]int
	rep    *LoadReport
	titles []Title
}

func newBuilder(name string, header []string) *builder {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	return &builder{cols: cols, rep: &LoadReport{Name: name}}
}

func (b *builder) get(rec []string, col string) string {
	i, ok := b.cols[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func (b *builder) add(rec []string) {
	b.rep.Rows++
	// a bad year only removes the title from year-based views
	yearText := b.get(rec, "release_year")
	year, err := strconv.Atoi(yearText)
	if err != nil || year <= 0 {
		year = 0
		b.rep.MissingYear++
		b.rep.warn("row %d: unparseable release_year %q", b.rep.Rows, yearText)
	}
	t := Title{
		ShowID:      b.get(rec, "show_id"),
		Type:        b.get(rec, "type"),
		Title:       b.get(rec, "title"),
		Director:    b.get(rec, "director"),
		Cast:        b.get(rec, "cast"),
		Country:     b.get(rec, "country"),
		ReleaseYear: year,
		Rating:      b.get(rec, "rating"),
		Duration:    b.get(rec, "duration"),
		ListedIn:    b.get(rec, "listed_in"),
		Description: b.get(rec, "description"),
	}
	if t.Rating == "" {
		t.Rating = UnknownRating
	}
	t.DurationNum = ParseDuration(t.Duration)
	if raw := b.get(rec, "date_added"); raw != "" {
		if d, ok := ParseDate(raw); ok {
			t.DateAdded = &d
		} else {
			b.rep.warn("row %d: unparseable date_added %q", b.rep.Rows, raw)
		}
	}
	b.titles = append(b.titles, t)
	b.rep.Loaded++
}

func (b *builder) table() *Table {
	// titles are freshly built and owned by the table
	return &Table{name: b.rep.Name, titles: b.titles}
}

var durationPattern = regexp.MustCompile(`(\d+)`)

// ParseDuration extracts the leading integer of a duration such as "90 min" or
// "3 Seasons". It returns nil when no digits are present.
func ParseDuration(s string) *float64 {
	m := durationPattern.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

var dateLayouts = []string{
	"January 2, 2006", "Jan 2, 2006", "2-Jan-06",
	time.RFC3339, "2006-01-02", "2006/01/02", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05",
}

// Spreadsheet day serials count from 1899-12-30. Values outside
// [excelSerialMin, excelSerialMax] (1927..2173) are not taken as dates.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const (
	excelSerialMin = 10000
	excelSerialMax = 100000
)

// ParseDate parses a date_added value. Besides the text layouts it accepts a
// spreadsheet day serial such as "44197"; unknown formats are treated as missing.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && n >= excelSerialMin && n < excelSerialMax {
		return excelEpoch.AddDate(0, 0, int(n)), true
	}
	return time.Time{}, false
}

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/catalogscope/internal/report"
)

func TestAnalyzeBatch_OutDirCollisionsAndManifest(t *testing.T) {
	home, _ := isolate(t)

	// Prepare two catalogs with the same basename in different directories
	d1 := filepath.Join(home, "d1")
	d2 := filepath.Join(home, "d2")
	for _, d := range []string{d1, d2} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
		if err := os.WriteFile(filepath.Join(d, "titles.csv"), []byte(catalogCSV), 0o644); err != nil {
			t.Fatalf("write catalog: %v", err)
		}
	}
	outDir := filepath.Join(home, "summaries")

	runCmd(t, "analyze-batch", filepath.Join(home, "d*", "titles.csv"), "--out-dir", outDir, "--quiet", "--type", "Movie")

	b1 := filepath.Join(outDir, "titles.summary.md")
	b2 := filepath.Join(outDir, "titles__2.summary.md")
	for _, p := range []string{b1, b2} {
		body, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("missing summary %s: %v", p, err)
		}
		if !strings.Contains(string(body), "matching filter: 3") {
			t.Fatalf("summary %s ignores the filter:\n%s", p, body)
		}
	}

	m, err := report.Open(outDir)
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	entries := m.Sorted()
	if len(entries) != 2 {
		t.Fatalf("expected 2 manifest entries, got %d", len(entries))
	}
	if entries[0].Source != filepath.Join(d1, "titles.csv") || entries[1].Source != filepath.Join(d2, "titles.csv") {
		t.Fatalf("unexpected sources: %s, %s", entries[0].Source, entries[1].Source)
	}
	if entries[0].DashboardID != entries[1].DashboardID {
		t.Fatalf("same source name and filter should share a dashboard id")
	}

	// a second run keeps earlier summaries and appends a third
	runCmd(t, "analyze-batch", filepath.Join(d1, "titles.csv"), "--out-dir", outDir, "--quiet", "--format", "json")
	if _, err := os.Stat(filepath.Join(outDir, "titles.summary.json")); err != nil {
		t.Fatalf("missing json summary: %v", err)
	}
	m, err = report.Open(outDir)
	if err != nil {
		t.Fatalf("reopen manifest: %v", err)
	}
	if len(m.Entries) != 3 {
		t.Fatalf("expected 3 manifest entries, got %d", len(m.Entries))
	}
}

func TestAnalyzeBatch_ManifestKeepsWrittenSummariesOnFailure(t *testing.T) {
	home, _ := isolate(t)
	in := filepath.Join(home, "in")
	if err := os.MkdirAll(in, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	single := "show_id,type,release_year,rating,listed_in\ns1,Movie,2020,R,\"Dramas, Comedies\"\n"
	for name, body := range map[string]string{"a_good.csv": catalogCSV, "b_single.csv": single} {
		if err := os.WriteFile(filepath.Join(in, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	outDir := filepath.Join(home, "summaries")

	_, err := execCmd(t, "analyze-batch", filepath.Join(in, "*.csv"), "--out-dir", outDir, "--quiet")
	if err == nil || !strings.Contains(err.Error(), "b_single.csv") {
		t.Fatalf("expected failure on the single-row catalog, got %v", err)
	}

	m, err := report.Open(outDir)
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	e, ok := m.Entries["a_good.summary.md"]
	if !ok || len(m.Entries) != 1 {
		t.Fatalf("manifest should list the summary written before the failure, got %+v", m.Entries)
	}
	if _, err := os.Stat(e.Output); err != nil {
		t.Fatalf("recorded summary missing on disk: %v", err)
	}
}

func TestAnalyzeBatch_NoMatches(t *testing.T) {
	home, _ := isolate(t)
	if _, err := execCmd(t, "analyze-batch", filepath.Join(home, "none", "*.csv")); err == nil {
		t.Fatalf("expected error when no files match")
	}
}

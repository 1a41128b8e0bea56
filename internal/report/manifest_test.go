package report

import (
	"path/filepath"
	"testing"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(m.Entries) != 0 {
		t.Fatalf("expected empty manifest")
	}
	m.Add(Entry{Source: "a/titles.csv", Output: filepath.Join(dir, "titles.summary.md"), Rows: 10})
	m.Add(Entry{Source: "b/titles.csv", Output: filepath.Join(dir, "titles__2.summary.md"), Rows: 7, MissingYear: 1})
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := reopened.Sorted()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Source != "a/titles.csv" || got[1].MissingYear != 1 {
		t.Fatalf("unexpected entries: %+v %+v", got[0], got[1])
	}
	if reopened.Dir() != dir {
		t.Fatalf("Dir = %q, want %q", reopened.Dir(), dir)
	}
	if got[0].WrittenAt.IsZero() {
		t.Fatalf("written_at should be stamped")
	}
}

func TestManifestAddReplacesSameOutput(t *testing.T) {
	m, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m.Add(Entry{Source: "x.csv", Output: "/tmp/x.summary.md", Rows: 1})
	m.Add(Entry{Source: "x.csv", Output: "/tmp/x.summary.md", Rows: 2})
	if len(m.Entries) != 1 || m.Entries["x.summary.md"].Rows != 2 {
		t.Fatalf("expected replacement, got %+v", m.Entries)
	}
}

package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	first := UniquePath(dir, "titles", ".summary.md")
	if filepath.Base(first) != "titles.summary.md" {
		t.Fatalf("unexpected first path: %s", first)
	}
	if err := SafeWriteFile(first, []byte("a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	second := UniquePath(dir, "titles", ".summary.md")
	if filepath.Base(second) != "titles__2.summary.md" {
		t.Fatalf("unexpected second path: %s", second)
	}
	if err := os.WriteFile(second, []byte("b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := filepath.Base(UniquePath(dir, "titles", ".summary.md")); got != "titles__3.summary.md" {
		t.Fatalf("unexpected third path: %s", got)
	}
}

func TestSafeWriteFileLeavesNoTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	b, err := PrettyJSON(map[string]int{"titles": 3})
	if err != nil {
		t.Fatalf("PrettyJSON: %v", err)
	}
	if !strings.Contains(string(b), "\n  \"titles\": 3") {
		t.Fatalf("expected indented json, got %s", b)
	}
	if err := SafeWriteFile(path, b); err != nil {
		t.Fatalf("SafeWriteFile: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/KaramelBytes/catalogscope/internal/utils"
)

const manifestFileName = "manifest.json"

// Manifest indexes the summaries written into one output directory.
type Manifest struct {
	Entries   map[string]*Entry `json:"entries"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Not serialized: directory holding manifest.json
	dir string
}

// Entry describes one rendered summary.
type Entry struct {
	// DashboardID identifies the (source, filter) pair the summary was built from.
	DashboardID string    `json:"dashboard_id"`
	Source      string    `json:"source"`
	Output      string    `json:"output"`
	Format      string    `json:"format"`
	Filter      string    `json:"filter"`
	Rows        int       `json:"rows"`
	MissingYear int       `json:"missing_year"`
	Matched     int       `json:"matched"`
	WrittenAt   time.Time `json:"written_at"`
}

// Open loads dir/manifest.json, or returns an empty manifest when the file
// does not exist yet.
func Open(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			now := time.Now()
			return &Manifest{Entries: map[string]*Entry{}, CreatedAt: now, UpdatedAt: now, dir: dir}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Entries == nil {
		m.Entries = map[string]*Entry{}
	}
	m.dir = dir
	return &m, nil
}

// Dir returns the directory the manifest lives in.
func (m *Manifest) Dir() string { return m.dir }

// Add records e under the base name of its output file, replacing any
// previous entry for the same file.
func (m *Manifest) Add(e Entry) {
	if e.WrittenAt.IsZero() {
		e.WrittenAt = time.Now()
	}
	m.Entries[filepath.Base(e.Output)] = &e
	m.UpdatedAt = time.Now()
}

// Sorted returns the entries ordered by output file name.
func (m *Manifest) Sorted() []*Entry {
	names := make([]string, 0, len(m.Entries))
	for n := range m.Entries {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]*Entry, len(names))
	for i, n := range names {
		out[i] = m.Entries[n]
	}
	return out
}

// Save writes manifest.json using atomic write.
func (m *Manifest) Save() error {
	if m.dir == "" {
		return errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(m.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	m.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(m.dir, manifestFileName), data)
}

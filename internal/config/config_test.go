package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 10, c.TopCountries)
	assert.Equal(t, 15, c.TopDurations)
	assert.Equal(t, 1.2, c.LayoutScale)
	assert.Equal(t, ":8080", c.ListenAddr)
	assert.Equal(t, "markdown", c.OutputFormat)

	swaps, err := c.Swaps()
	require.NoError(t, err)
	assert.Equal(t, [][2]string{
		{"Drama", "Anime Series"},
		{"Independent Movies", "LGBTQ Movies"},
		{"Anime Series", "International Movies"},
	}, swaps)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "top_countries: 5\nlog_level: debug\nlisten_addr: \":7000\"\nlayout_swaps:\n  - \"Dramas|Comedies\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("CATALOGSCOPE_LISTEN_ADDR", ":9999")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, c.TopCountries)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, ":9999", c.ListenAddr, "env overrides the file")

	swaps, err := c.Swaps()
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"Dramas", "Comedies"}}, swaps)
}

func TestLoadRejectsMalformedSwap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout_swaps:\n  - \"Dramas\"\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid layout swap")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c, err := Load(path)
	require.NoError(t, err)
	c.TopGenres = 3
	c.DataPath = "/data/titles.csv"
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TopGenres)
	assert.Equal(t, "/data/titles.csv", got.DataPath)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "youtube_data.db", cfg.OutputPath)
	assert.Equal(t, "videos", cfg.VideoDirectory)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictDecode)
	assert.Equal(t, 0, cfg.MonitorPort)
	assert.Equal(t, []string{
		"http://quotes.toscrape.com/page/1/",
		"http://quotes.toscrape.com/page/2/",
	}, cfg.QuoteURLs)
	assert.Equal(t, "quotes.jl", cfg.QuotesOutput)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OUTPUT_PATH", "/data/out.db")
	t.Setenv("STRICT_DECODE", "true")
	t.Setenv("MONITOR_PORT", "9090")
	t.Setenv("QUOTES_URLS", "http://a/1,http://a/2,http://a/3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/out.db", cfg.OutputPath)
	assert.True(t, cfg.StrictDecode)
	assert.Equal(t, 9090, cfg.MonitorPort)
	assert.Len(t, cfg.QuoteURLs, 3)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VIDEO_DIR=cache\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("VIDEO_DIR") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache", cfg.VideoDirectory)
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()

	require.Len(t, m.Train, 5)
	require.Len(t, m.Test, 1)
	assert.Equal(t, "video_0", m.Train[0].Filename)
	assert.Equal(t, 75.0, m.Train[0].SkipOpen)
	assert.Equal(t, 60.0, m.Train[0].SkipEnd)
	assert.Equal(t, "L", m.Test[0].Mode)
	assert.NoError(t, m.Validate())
}

func TestLoadManifest_EmptyPathUsesDefault(t *testing.T) {
	m, err := LoadManifest("")
	require.NoError(t, err)
	assert.Len(t, m.Train, 5)
}

func TestLoadManifest_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	content := `
train:
  - url: https://example.com/a
    filename: a
    skip_open: 2
    skip_end: 1.5
test:
  - url: https://example.com/b
    filename: b
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := LoadManifest(path)
	require.NoError(t, err)

	require.Len(t, m.Train, 1)
	assert.Equal(t, 2.0, m.Train[0].SkipOpen)
	assert.Equal(t, 1.5, m.Train[0].SkipEnd)
	assert.Equal(t, "RGB", m.Train[0].Mode)
	require.Len(t, m.Test, 1)
	assert.Equal(t, "L", m.Test[0].Mode)
}

func TestManifest_ValidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
	}{
		{"empty", Manifest{}},
		{"missing url", Manifest{Train: []Source{{Filename: "a"}}}},
		{"missing filename", Manifest{Train: []Source{{URL: "u"}}}},
		{"negative skip", Manifest{Train: []Source{{URL: "u", Filename: "a", SkipEnd: -1}}}},
		{"gray in train", Manifest{Train: []Source{{URL: "u", Filename: "a", Mode: "L"}}}},
		{"unknown mode", Manifest{Test: []Source{{URL: "u", Filename: "a", Mode: "HSV"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.manifest.Validate())
		})
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	Defaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultSuffix, cfg.Output.Suffix)
	assert.False(t, cfg.Output.Stdout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, filepath.Join(".yartl", "cache"), cfg.CacheDir)
}

func TestSetupReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "yartl.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
template_dir: ./bundles
output:
  suffix: .out
watch:
  debounce: 1s
log:
  level: debug
`), 0o644))
	t.Setenv("YARTL_LOG_FORMAT", "json")

	v := newViper(t)
	require.NoError(t, Setup(v, file))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "./bundles", cfg.TemplateDir)
	assert.Equal(t, ".out", cfg.Output.Suffix)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "DEBUG", cfg.LogLevel().String())
}

func TestSetupMissingExplicitFile(t *testing.T) {
	err := Setup(newViper(t), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		set  map[string]any
	}{
		{"empty suffix", map[string]any{"output.suffix": " "}},
		{"suffix with separator", map[string]any{"output.suffix": "a/b"}},
		{"bad level", map[string]any{"log.level": "loud"}},
		{"bad format", map[string]any{"log.format": "xml"}},
		{"zero debounce", map[string]any{"watch.debounce": 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newViper(t)
			for k, val := range tc.set {
				v.Set(k, val)
			}
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestOutputPath(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Suffix: DefaultSuffix}}
	cases := map[string]string{
		"page.html":       "page_yartle_out.html",
		"dir/report.txt":  filepath.Join("dir", "report_yartle_out.txt"),
		"noext":           "noext_yartle_out",
		"archive.tar.tpl": "archive.tar_yartle_out.tpl",
		".env":            ".env_yartle_out",
	}
	for in, want := range cases {
		assert.Equal(t, want, cfg.OutputPath(in), in)
	}
}

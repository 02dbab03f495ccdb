package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invbench/inversion"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "invbench.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Bench.Size)
	assert.Equal(t, []string{"brute", "insertion", "merge"}, cfg.Bench.Algorithms)
	assert.Equal(t, "none", cfg.Store.Kind)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[bench]
algorithms = ["merge", "parallel_merge"]
size = 5000
runs = 5

[store]
kind = "pebble"
path = "results"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"merge", "parallel_merge"}, cfg.Bench.Algorithms)
	assert.Equal(t, 5000, cfg.Bench.Size)
	assert.Equal(t, 5, cfg.Bench.Runs)
	assert.Equal(t, int64(42), cfg.Bench.Seed)
	assert.Equal(t, "pebble", cfg.Store.Kind)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[bench\nsize = "))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown algorithm": func(c *Config) { c.Bench.Algorithms = []string{"bogosort"} },
		"no algorithms":     func(c *Config) { c.Bench.Algorithms = nil },
		"zero runs":         func(c *Config) { c.Bench.Runs = 0 },
		"store kind":        func(c *Config) { c.Store.Kind = "sqlite" },
		"store path":        func(c *Config) { c.Store.Kind = "bbolt" },
		"log level":         func(c *Config) { c.Log.Level = "trace" },
		"empty size":        func(c *Config) { c.Bench.Size = 0 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Bench.Size = 0
	cfg.Bench.Input = "data.txt"
	assert.NoError(t, cfg.Validate())
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse(newFlagSet(), []string{"-algo", "all", "-size", "200", "-store", "bbolt", "-store-path", "r.db"})
	require.NoError(t, err)

	assert.Equal(t, inversion.Names(), cfg.Bench.Algorithms)
	assert.Equal(t, 200, cfg.Bench.Size)
	assert.Equal(t, "bbolt", cfg.Store.Kind)
	assert.Equal(t, "r.db", cfg.Store.Path)
	assert.Equal(t, 3, cfg.Bench.Runs)
}

func TestParseFlagsOverFile(t *testing.T) {
	path := writeConfig(t, `
[bench]
algorithms = ["insertion"]
size = 300
runs = 2
`)

	cfg, err := Parse(newFlagSet(), []string{"-config", path, "-runs", "7", "-algo", "merge, brute"})
	require.NoError(t, err)

	assert.Equal(t, []string{"merge", "brute"}, cfg.Bench.Algorithms)
	assert.Equal(t, 300, cfg.Bench.Size)
	assert.Equal(t, 7, cfg.Bench.Runs)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Encoding.CRF != 20 || cfg.Encoding.CQ != 23 {
		t.Fatalf("unexpected quality defaults: crf=%d cq=%d", cfg.Encoding.CRF, cfg.Encoding.CQ)
	}
	if cfg.Encoding.Workers != 1 {
		t.Fatalf("default workers must be 1, got %d", cfg.Encoding.Workers)
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[encoding]
crf = 18
preset = "slow"
workers = 2
input_extensions = ["MKV", ".mp4"]

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, origin, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if origin != path {
		t.Fatalf("expected origin %q, got %q", path, origin)
	}
	if cfg.Encoding.CRF != 18 {
		t.Fatalf("expected crf 18, got %d", cfg.Encoding.CRF)
	}
	if cfg.Encoding.Preset != "slow" {
		t.Fatalf("expected preset slow, got %q", cfg.Encoding.Preset)
	}
	// Unset values keep defaults.
	if cfg.Encoding.CQ != 23 {
		t.Fatalf("expected default cq 23, got %d", cfg.Encoding.CQ)
	}
	// Extensions are lowercased and dotted.
	want := []string{".mkv", ".mp4"}
	if len(cfg.Encoding.InputExtensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Encoding.InputExtensions)
	}
	for i, ext := range want {
		if cfg.Encoding.InputExtensions[i] != ext {
			t.Fatalf("extension %d = %q, want %q", i, cfg.Encoding.InputExtensions[i], ext)
		}
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, _, err := Load(missing); err == nil {
		t.Fatal("expected error for explicit missing config")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"crf range", func(c *Config) { c.Encoding.CRF = 99 }, "encoding.crf"},
		{"cq range", func(c *Config) { c.Encoding.CQ = -1 }, "encoding.cq"},
		{"workers", func(c *Config) { c.Encoding.Workers = 0 }, "encoding.workers"},
		{"ffmpeg", func(c *Config) { c.Encoding.FFmpegBinary = " " }, "encoding.ffmpeg_binary"},
		{"extensions", func(c *Config) { c.Encoding.InputExtensions = nil }, "encoding.input_extensions"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := WriteSample(path); err == nil {
		t.Fatal("expected error on second write")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[encoding]") {
		t.Fatalf("sample missing encoding section: %q", string(data))
	}
}

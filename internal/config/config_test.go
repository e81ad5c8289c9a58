package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/five82/reelfx/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.RapidAPIKeyEnv, "env-key")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "reelfx", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Encoder.Codec != "libx264" || cfg.Encoder.Preset != "medium" || cfg.Encoder.CRF != 23 {
		t.Errorf("unexpected encoder defaults: %+v", cfg.Encoder)
	}
	if cfg.Processing.Speed != 1.2 || cfg.Processing.Zoom != 1.2 {
		t.Errorf("unexpected speed/zoom defaults: %+v", cfg.Processing)
	}
	if cfg.Processing.Filter != "custom1" {
		t.Errorf("Filter = %q, want custom1", cfg.Processing.Filter)
	}
	if cfg.Download.RapidAPIKey != "env-key" {
		t.Errorf("RapidAPIKey = %q, want env-key", cfg.Download.RapidAPIKey)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "reelfx", "logs") {
		t.Errorf("LogDir = %q", cfg.Paths.LogDir)
	}
	if cfg.PreviewTimeout().Seconds() != 10 || cfg.FrameTimeout().Seconds() != 15 {
		t.Errorf("unexpected timeouts %v %v", cfg.PreviewTimeout(), cfg.FrameTimeout())
	}
}

func TestLoadParsesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.RapidAPIKeyEnv, "env-key")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[encoder]
crf = 18

[processing]
speed = 1.5
zoom = 1.0
filter = "Warm"

[[filters]]
name = "warm"
label = "Warm tone"
expression = "colortemperature=4000"

[[filters]]
name = "blur"
expression = "boxblur=4:1"

[download]
rapidapi_key = "file-key"

[paths]
log_dir = "~/logs"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("Load() path = %q exists = %v", resolved, exists)
	}
	if cfg.Encoder.CRF != 18 || cfg.Encoder.Codec != "libx264" {
		t.Errorf("encoder = %+v", cfg.Encoder)
	}
	if cfg.Processing.Filter != "warm" {
		t.Errorf("Filter = %q, want warm", cfg.Processing.Filter)
	}
	if cfg.Download.RapidAPIKey != "file-key" {
		t.Errorf("file key should win over env, got %q", cfg.Download.RapidAPIKey)
	}
	if strings.HasPrefix(cfg.Paths.LogDir, "~") {
		t.Errorf("LogDir not expanded: %q", cfg.Paths.LogDir)
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		t.Fatalf("Catalog() error = %v", err)
	}
	if p, ok := catalog.Lookup("blur"); !ok || p.Expression != "boxblur=4:1" {
		t.Errorf("blur override = %+v, %v", p, ok)
	}
	names := catalog.Names()
	if names[len(names)-1] != "warm" {
		t.Errorf("warm should be appended, names = %v", names)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"crf", "[encoder]\ncrf = 60\n", config.ErrInvalidCRF},
		{"speed zero", "[processing]\nspeed = 0.0\n", config.ErrInvalidSpeed},
		{"speed huge", "[processing]\nspeed = 101.0\n", config.ErrInvalidSpeed},
		{"zoom", "[processing]\nzoom = 11.0\n", config.ErrInvalidZoom},
		{"timeout", "[processing]\npreview_timeout_seconds = 0\n", config.ErrInvalidTimeout},
		{"filter", "[processing]\nfilter = \"sepia\"\n", config.ErrUnknownFilter},
		{"reserved", "[[filters]]\nname = \"custom\"\nexpression = \"x\"\n", config.ErrInvalidFilterEntry},
		{"unnamed", "[[filters]]\nexpression = \"x\"\n", config.ErrInvalidFilterEntry},
		{"log format", "[logging]\nformat = \"xml\"\n", config.ErrInvalidLogFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomFilterIsValid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[processing]\nfilter = \"custom\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.RapidAPIKeyEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	for _, section := range []string{"encoder", "processing", "download", "paths", "logging"} {
		if _, ok := raw[section]; !ok {
			t.Errorf("sample missing [%s]", section)
		}
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("Load(sample) = %v, exists %v", err, exists)
	}
	if cfg.Encoder.CRF != config.DefaultCRF {
		t.Errorf("CRF = %d, want %d", cfg.Encoder.CRF, config.DefaultCRF)
	}
}

func TestValidateSpeedAndZoom(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0.5, false},
		{100, false},
		{0, true},
		{-1, true},
		{100.5, true},
	}
	for _, tt := range tests {
		if err := config.ValidateSpeed(tt.v); (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpeed(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
	}
	if err := config.ValidateZoom(10); err != nil {
		t.Errorf("ValidateZoom(10) = %v", err)
	}
	if err := config.ValidateZoom(10.01); !errors.Is(err, config.ErrInvalidZoom) {
		t.Errorf("ValidateZoom(10.01) = %v", err)
	}
}

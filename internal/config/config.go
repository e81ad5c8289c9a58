// Package config loads reelfx settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/five82/reelfx/internal/ffmpeg"
	"github.com/five82/reelfx/internal/filter"
)

// Encoder holds the video encoder settings shared by every job in a batch.
type Encoder struct {
	Codec  string `toml:"codec"`
	Preset string `toml:"preset"`
	CRF    int    `toml:"crf"`
}

// Processing holds batch defaults and tool settings.
type Processing struct {
	Speed                 float64 `toml:"speed"`
	Zoom                  float64 `toml:"zoom"`
	Filter                string  `toml:"filter"`
	TempDir               string  `toml:"temp_dir"`
	FFmpegBinary          string  `toml:"ffmpeg_binary"`
	PreviewTimeoutSeconds int     `toml:"preview_timeout_seconds"`
	FrameTimeoutSeconds   int     `toml:"frame_timeout_seconds"`
	OutputSubdir          string  `toml:"output_subdir"`
}

// FilterEntry adds or overrides a named filter preset.
type FilterEntry struct {
	Name       string `toml:"name"`
	Label      string `toml:"label"`
	Expression string `toml:"expression"`
}

// Download holds settings for the short-video fetcher.
type Download struct {
	TikwmURL               string `toml:"tikwm_url"`
	RapidAPIURL            string `toml:"rapidapi_url"`
	RapidAPIHost           string `toml:"rapidapi_host"`
	RapidAPIKey            string `toml:"rapidapi_key"`
	PrimaryTimeoutSeconds  int    `toml:"primary_timeout_seconds"`
	FallbackTimeoutSeconds int    `toml:"fallback_timeout_seconds"`
	StreamTimeoutSeconds   int    `toml:"stream_timeout_seconds"`
	ChunkSize              int    `toml:"chunk_size"`
	VideoDir               string `toml:"video_dir"`
	ThumbnailDir           string `toml:"thumbnail_dir"`
}

// Paths holds on-disk locations for state and logs.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	PresetsFile string `toml:"presets_file"`
	HistoryDB   string `toml:"history_db"`
	PreviewDir  string `toml:"preview_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for reelfx.
//
// Configuration sections by subsystem:
//   - Encoder: codec, preset and CRF for rendered videos
//   - Processing: batch defaults, ffmpeg binary and timeouts
//   - Filters: extra or overriding named filter presets
//   - Download: short-video API endpoints and output dirs
//   - Paths: logs, custom presets, history database and previews
//   - Logging: level and format
type Config struct {
	Encoder    Encoder       `toml:"encoder"`
	Processing Processing    `toml:"processing"`
	Filters    []FilterEntry `toml:"filters"`
	Download   Download      `toml:"download"`
	Paths      Paths         `toml:"paths"`
	Logging    Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. It returns the
// config, the resolved path and whether the file existed. A missing file is
// not an error; defaults are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Resolved returns the built-in defaults with paths expanded, as Load would
// produce without a file.
func Resolved() (*Config, error) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// Catalog returns the built-in filter catalog layered with [[filters]].
func (c *Config) Catalog() (*filter.Catalog, error) {
	extra := make([]filter.Preset, 0, len(c.Filters))
	for _, f := range c.Filters {
		extra = append(extra, filter.Preset{Name: f.Name, Label: f.Label, Expression: f.Expression})
	}
	return filter.DefaultCatalog().Extend(extra...)
}

// EncodeSettings returns the encoder settings for ffmpeg.
func (c *Config) EncodeSettings() ffmpeg.EncodeSettings {
	return ffmpeg.EncodeSettings{
		Codec:  c.Encoder.Codec,
		Preset: c.Encoder.Preset,
		CRF:    c.Encoder.CRF,
	}
}

// PreviewTimeout returns the image preview deadline.
func (c *Config) PreviewTimeout() time.Duration {
	return time.Duration(c.Processing.PreviewTimeoutSeconds) * time.Second
}

// FrameTimeout returns the frame extraction deadline.
func (c *Config) FrameTimeout() time.Duration {
	return time.Duration(c.Processing.FrameTimeoutSeconds) * time.Second
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.LogDir,
		c.Paths.PreviewDir,
		filepath.Dir(c.Paths.PresetsFile),
		filepath.Dir(c.Paths.HistoryDB),
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateSample writes the default configuration to path. The API key is
// never written; it is expected from the environment.
func CreateSample(path string) error {
	cfg := Default()
	cfg.Download.RapidAPIKey = ""
	data, err := cfg.Encode()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

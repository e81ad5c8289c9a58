package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEncoder()
	c.normalizeProcessing()
	c.normalizeDownload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.PreviewDir) == "" {
		c.Paths.PreviewDir = defaultPreviewDir()
	}
	if strings.TrimSpace(c.Processing.TempDir) == "" {
		c.Processing.TempDir = os.TempDir()
	}
	fields := []struct {
		key string
		val *string
	}{
		{"paths.log_dir", &c.Paths.LogDir},
		{"paths.presets_file", &c.Paths.PresetsFile},
		{"paths.history_db", &c.Paths.HistoryDB},
		{"paths.preview_dir", &c.Paths.PreviewDir},
		{"processing.temp_dir", &c.Processing.TempDir},
		{"download.video_dir", &c.Download.VideoDir},
		{"download.thumbnail_dir", &c.Download.ThumbnailDir},
	}
	for _, f := range fields {
		if *f.val, err = expandPath(strings.TrimSpace(*f.val)); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeEncoder() {
	c.Encoder.Codec = strings.TrimSpace(c.Encoder.Codec)
	if c.Encoder.Codec == "" {
		c.Encoder.Codec = DefaultCodec
	}
	c.Encoder.Preset = strings.TrimSpace(c.Encoder.Preset)
	if c.Encoder.Preset == "" {
		c.Encoder.Preset = DefaultPreset
	}
}

func (c *Config) normalizeProcessing() {
	c.Processing.Filter = strings.ToLower(strings.TrimSpace(c.Processing.Filter))
	if c.Processing.Filter == "" {
		c.Processing.Filter = DefaultFilter
	}
	c.Processing.FFmpegBinary = strings.TrimSpace(c.Processing.FFmpegBinary)
	if c.Processing.FFmpegBinary == "" {
		c.Processing.FFmpegBinary = "ffmpeg"
	}
	c.Processing.OutputSubdir = strings.TrimSpace(c.Processing.OutputSubdir)
	if c.Processing.OutputSubdir == "" {
		c.Processing.OutputSubdir = DefaultOutputSubdir
	}
}

func (c *Config) normalizeDownload() {
	c.Download.RapidAPIKey = strings.TrimSpace(c.Download.RapidAPIKey)
	if c.Download.RapidAPIKey == "" {
		if value, ok := os.LookupEnv(RapidAPIKeyEnv); ok {
			c.Download.RapidAPIKey = strings.TrimSpace(value)
		}
	}
	c.Download.TikwmURL = strings.TrimSpace(c.Download.TikwmURL)
	c.Download.RapidAPIURL = strings.TrimSpace(c.Download.RapidAPIURL)
	c.Download.RapidAPIHost = strings.TrimSpace(c.Download.RapidAPIHost)
	if c.Download.ChunkSize <= 0 {
		c.Download.ChunkSize = DefaultChunkSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

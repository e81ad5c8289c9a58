package config

import (
	"os"
	"path/filepath"
)

// Default constants
const (
	DefaultCodec  = "libx264"
	DefaultPreset = "medium"
	DefaultCRF    = 23
	MaxCRF        = 51

	DefaultSpeed  = 1.2
	DefaultZoom   = 1.2
	DefaultFilter = "custom1"

	// MaxSpeed and MaxZoom are hard bounds; interactive ranges are narrower.
	MaxSpeed = 100.0
	MaxZoom  = 10.0

	// UISpeedMin and UISpeedMax bound the speed offered to users.
	UISpeedMin = 0.5
	UISpeedMax = 5.0

	DefaultPreviewTimeoutSeconds = 10
	DefaultFrameTimeoutSeconds   = 15
	DefaultOutputSubdir          = "edited"

	DefaultTikwmURL       = "https://tikwm.com/api/"
	DefaultRapidAPIURL    = "https://tiktok-video-downloader-api.p.rapidapi.com/media"
	DefaultRapidAPIHost   = "tiktok-video-downloader-api.p.rapidapi.com"
	DefaultPrimaryTimeout = 15
	DefaultStreamTimeout  = 30
	DefaultChunkSize      = 1 << 20

	// RapidAPIKeyEnv overrides download.rapidapi_key when the file leaves it empty.
	RapidAPIKeyEnv = "REELFX_RAPIDAPI_KEY"

	defaultConfigPath  = "~/.config/reelfx/config.toml"
	defaultLogDir      = "~/.local/share/reelfx/logs"
	defaultPresetsFile = "~/.config/reelfx/custom_presets.json"
	defaultHistoryDB   = "~/.local/share/reelfx/history.db"
	defaultVideoDir    = "~/Videos/reelfx"
)

// Default returns a Config populated with built-in values. Paths are left
// unexpanded; Load expands them.
func Default() Config {
	return Config{
		Encoder: Encoder{
			Codec:  DefaultCodec,
			Preset: DefaultPreset,
			CRF:    DefaultCRF,
		},
		Processing: Processing{
			Speed:                 DefaultSpeed,
			Zoom:                  DefaultZoom,
			Filter:                DefaultFilter,
			FFmpegBinary:          "ffmpeg",
			PreviewTimeoutSeconds: DefaultPreviewTimeoutSeconds,
			FrameTimeoutSeconds:   DefaultFrameTimeoutSeconds,
			OutputSubdir:          DefaultOutputSubdir,
		},
		Download: Download{
			TikwmURL:               DefaultTikwmURL,
			RapidAPIURL:            DefaultRapidAPIURL,
			RapidAPIHost:           DefaultRapidAPIHost,
			PrimaryTimeoutSeconds:  DefaultPrimaryTimeout,
			FallbackTimeoutSeconds: DefaultStreamTimeout,
			StreamTimeoutSeconds:   DefaultStreamTimeout,
			ChunkSize:              DefaultChunkSize,
			VideoDir:               defaultVideoDir,
			ThumbnailDir:           defaultVideoDir + "/thumbnails",
		},
		Paths: Paths{
			LogDir:      defaultLogDir,
			PresetsFile: defaultPresetsFile,
			HistoryDB:   defaultHistoryDB,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultPreviewDir() string {
	return filepath.Join(os.TempDir(), "reelfx_previews")
}

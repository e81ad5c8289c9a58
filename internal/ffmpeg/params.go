// Package ffmpeg provides FFmpeg command building and execution.
package ffmpeg

import (
	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

// EncodeSettings holds the fixed encoder arguments applied to every video job.
type EncodeSettings struct {
	Codec  string
	Preset string
	CRF    int
}

// DefaultEncodeSettings returns libx264, preset medium, CRF 23.
func DefaultEncodeSettings() EncodeSettings {
	return EncodeSettings{Codec: "libx264", Preset: "medium", CRF: 23}
}

// OutputArgsBuilder builds output keyword arguments with method chaining.
type OutputArgsBuilder struct {
	kwargs ffmpeggo.KwArgs
}

// NewOutputArgsBuilder creates a new empty builder.
func NewOutputArgsBuilder() *OutputArgsBuilder {
	return &OutputArgsBuilder{kwargs: ffmpeggo.KwArgs{}}
}

// WithVideoFilter sets -vf. Empty filters are ignored.
func (b *OutputArgsBuilder) WithVideoFilter(vf string) *OutputArgsBuilder {
	if vf != "" {
		b.kwargs["vf"] = vf
	}
	return b
}

// WithAudioFilter sets -af. Empty filters are ignored.
func (b *OutputArgsBuilder) WithAudioFilter(af string) *OutputArgsBuilder {
	if af != "" {
		b.kwargs["af"] = af
	}
	return b
}

// WithEncoder sets codec, preset and CRF.
func (b *OutputArgsBuilder) WithEncoder(enc EncodeSettings) *OutputArgsBuilder {
	if enc.Codec != "" {
		b.kwargs["c:v"] = enc.Codec
	}
	if enc.Preset != "" {
		b.kwargs["preset"] = enc.Preset
	}
	b.kwargs["crf"] = enc.CRF
	return b
}

// WithSingleFrame limits output to one high-quality image2 frame.
func (b *OutputArgsBuilder) WithSingleFrame() *OutputArgsBuilder {
	b.kwargs["vframes"] = 1
	b.kwargs["q:v"] = 2
	b.kwargs["f"] = "image2"
	return b
}

// AddParam adds a custom keyword argument.
func (b *OutputArgsBuilder) AddParam(key string, value any) *OutputArgsBuilder {
	b.kwargs[key] = value
	return b
}

// Build returns the keyword arguments.
func (b *OutputArgsBuilder) Build() ffmpeggo.KwArgs {
	out := make(ffmpeggo.KwArgs, len(b.kwargs))
	for k, v := range b.kwargs {
		out[k] = v
	}
	return out
}

package ffmpeg

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const bannerStderr = `ffmpeg version 6.1.1 Copyright (c) 2000-2023 the FFmpeg developers
  built with gcc 13.2.0 (GCC)
  configuration: --prefix=/usr --enable-gpl --enable-libx264 --enable-libvpx --enable-libopus
  libavutil      58. 29.100 / 58. 29.100
  libavcodec     60. 31.102 / 60. 31.102
  libavformat    60. 16.100 / 60. 16.100
/videos/a.mp4: Invalid data found when processing input
`

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "banner dropped", input: bannerStderr, max: 200, want: "/videos/a.mp4: Invalid data found when processing input"},
		{name: "empty", input: "", max: 200, want: ""},
		{name: "banner only", input: "ffmpeg version n7.0\n  built with clang\n", max: 200, want: ""},
		{
			name:  "progress dropped",
			input: "frame=  10 fps=0.0 q=28.0 size=0kB\rframe=  20 fps=20 q=28.0\nError while filtering: Cannot allocate memory\n",
			max:   200,
			want:  "Error while filtering: Cannot allocate memory",
		},
		{
			name:  "last lines kept",
			input: "Input #0, mov,mp4, from 'a.mp4':\n  Duration: 00:00:10.00\n[Parsed_eq_0 @ 0x1] Bad value\nError reinitializing filters!\n",
			max:   70,
			want:  "[Parsed_eq_0 @ 0x1] Bad value; Error reinitializing filters!",
		},
		{name: "long line truncated", input: strings.Repeat("x", 30), max: 10, want: strings.Repeat("x", 10)},
		{name: "zero max", input: "boom", max: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnostic(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("Diagnostic() = %q, want %q", got, tt.want)
			}
			if n := utf8.RuneCountInString(got); n > tt.max {
				t.Errorf("Diagnostic() has %d runes, max %d", n, tt.max)
			}
		})
	}
}

// Package ffprobe extracts media information through ffmpeg-go's ffprobe
// wrapper.
package ffprobe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	rferrors "github.com/five82/reelfx/internal/errors"
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 10 * time.Second

// MediaInfo contains basic media information.
type MediaInfo struct {
	Duration    float64
	Width       int64
	Height      int64
	TotalFrames uint64
	VideoCodec  string
	HasAudio    bool
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int64  `json:"width"`
	Height    int64  `json:"height"`
	NbFrames  string `json:"nb_frames"`
	Duration  string `json:"duration"`
}

// probeFunc runs ffprobe and returns its JSON output. Replaced in tests.
var probeFunc = ffmpeggo.ProbeWithTimeout

// Probe returns media information for a file. A zero timeout uses
// DefaultTimeout.
func Probe(inputPath string, timeout time.Duration) (*MediaInfo, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	out, err := probeFunc(inputPath, timeout, ffmpeggo.KwArgs{"v": "quiet"})
	if err != nil {
		return nil, rferrors.NewToolError(fmt.Sprintf("ffprobe failed for %s", inputPath), err)
	}
	probe, err := parseFFprobeOutput([]byte(out))
	if err != nil {
		return nil, err
	}
	return extractMediaInfo(probe), nil
}

func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &result, nil
}

func extractMediaInfo(probe *ffprobeOutput) *MediaInfo {
	info := &MediaInfo{}

	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	videoFound := false
	for _, stream := range probe.Streams {
		switch stream.CodecType {
		case "video":
			if videoFound {
				continue
			}
			videoFound = true
			info.Width = stream.Width
			info.Height = stream.Height
			info.VideoCodec = stream.CodecName
			if stream.NbFrames != "" {
				if frames, err := strconv.ParseUint(stream.NbFrames, 10, 64); err == nil {
					info.TotalFrames = frames
				}
			}
			// Some containers only report duration per stream
			if info.Duration == 0 && stream.Duration != "" {
				if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil {
					info.Duration = d
				}
			}
		case "audio":
			info.HasAudio = true
		}
	}

	return info
}

// Resolution formats width and height, or "" when unknown.
func (m *MediaInfo) Resolution() string {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

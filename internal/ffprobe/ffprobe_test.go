package ffprobe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	rferrors "github.com/five82/reelfx/internal/errors"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func TestExtractMediaInfo(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "clip_720p.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	info := extractMediaInfo(probe)

	if info.Duration != 15.001 {
		t.Errorf("Duration = %v, want 15.001", info.Duration)
	}
	if info.Resolution() != "1280x720" {
		t.Errorf("Resolution() = %q, want 1280x720", info.Resolution())
	}
	if info.TotalFrames != 450 {
		t.Errorf("TotalFrames = %d, want 450", info.TotalFrames)
	}
	if info.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %q, want h264", info.VideoCodec)
	}
	if !info.HasAudio {
		t.Error("HasAudio = false, want true")
	}
}

func TestExtractMediaInfo_StreamDurationFallback(t *testing.T) {
	probe, err := parseFFprobeOutput(loadTestData(t, "webm_stream_duration.json"))
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}
	info := extractMediaInfo(probe)

	if info.Duration != 8.5 {
		t.Errorf("Duration = %v, want 8.5", info.Duration)
	}
	if info.HasAudio {
		t.Error("HasAudio = true, want false")
	}
	if info.TotalFrames != 0 {
		t.Errorf("TotalFrames = %d, want 0", info.TotalFrames)
	}
}

func TestParseFFprobeOutput_MalformedJSON(t *testing.T) {
	if _, err := parseFFprobeOutput([]byte("{not json")); err == nil {
		t.Error("parseFFprobeOutput() expected error for malformed JSON")
	}
}

func TestResolutionUnknown(t *testing.T) {
	var m *MediaInfo
	if m.Resolution() != "" {
		t.Error("nil Resolution() should be empty")
	}
	if (&MediaInfo{Width: 10}).Resolution() != "" {
		t.Error("Resolution() with zero height should be empty")
	}
}

func TestProbeUsesWrapper(t *testing.T) {
	fixture := loadTestData(t, "clip_720p.json")
	orig := probeFunc
	t.Cleanup(func() { probeFunc = orig })

	var gotTimeout time.Duration
	probeFunc = func(fileName string, timeout time.Duration, kwargs ffmpeggo.KwArgs) (string, error) {
		gotTimeout = timeout
		if fileName != "/videos/clip.mp4" {
			t.Errorf("fileName = %q", fileName)
		}
		return string(fixture), nil
	}

	info, err := Probe("/videos/clip.mp4", 0)
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if gotTimeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", gotTimeout, DefaultTimeout)
	}
	if info.Width != 1280 {
		t.Errorf("Width = %d, want 1280", info.Width)
	}
}

func TestProbeWrapsToolError(t *testing.T) {
	orig := probeFunc
	t.Cleanup(func() { probeFunc = orig })
	probeFunc = func(string, time.Duration, ffmpeggo.KwArgs) (string, error) {
		return "", errors.New("exit status 1")
	}

	_, err := Probe("/videos/missing.mp4", time.Second)
	if !rferrors.IsKind(err, rferrors.KindTool) {
		t.Errorf("Probe() error = %v, want tool error", err)
	}
}

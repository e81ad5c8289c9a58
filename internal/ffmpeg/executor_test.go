package ffmpeg

import (
	"strings"
	"testing"
)

func TestParseProgressLine(t *testing.T) {
	line := "frame=  240 fps= 48 q=28.0 size=    1024kB time=00:00:10.00 bitrate= 838.9kbits/s speed=2.00x"
	p := parseProgressLine(line, 40)

	if p.CurrentFrame != 240 {
		t.Errorf("CurrentFrame = %d, want 240", p.CurrentFrame)
	}
	if p.FPS != 48 {
		t.Errorf("FPS = %v, want 48", p.FPS)
	}
	if p.ElapsedSecs != 10 {
		t.Errorf("ElapsedSecs = %v, want 10", p.ElapsedSecs)
	}
	if p.Percent != 25 {
		t.Errorf("Percent = %v, want 25", p.Percent)
	}
	if p.Speed != 2 {
		t.Errorf("Speed = %v, want 2", p.Speed)
	}
	if p.Bitrate != "838.9kbits/s" {
		t.Errorf("Bitrate = %q", p.Bitrate)
	}
	if got := p.ETA.Seconds(); got != 15 {
		t.Errorf("ETA = %vs, want 15s", got)
	}
}

func TestParseProgressLineUnknownDuration(t *testing.T) {
	p := parseProgressLine("frame=1 fps=0.0 time=00:00:01.50 speed=N/A", 0)
	if p.Percent != 0 {
		t.Errorf("Percent = %v, want 0", p.Percent)
	}
	if p.ElapsedSecs != 1.5 {
		t.Errorf("ElapsedSecs = %v, want 1.5", p.ElapsedSecs)
	}
	if p.Speed != 0 {
		t.Errorf("Speed = %v, want 0", p.Speed)
	}
}

func TestParseProgressCapturesStderr(t *testing.T) {
	input := "Input #0, mov\rframe=1 time=00:00:01.00 speed=1x\rframe=2 time=00:00:02.00 speed=1x\nerror tail\n"
	var sb strings.Builder
	var updates []Progress
	parseProgress(strings.NewReader(input), &sb, 4, func(p Progress) {
		updates = append(updates, p)
	})

	if sb.String() != input {
		t.Errorf("stderr = %q, want %q", sb.String(), input)
	}
	if len(updates) != 2 {
		t.Fatalf("len(updates) = %d, want 2", len(updates))
	}
	if updates[1].Percent != 50 {
		t.Errorf("updates[1].Percent = %v, want 50", updates[1].Percent)
	}
}

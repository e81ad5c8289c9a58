package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/reelfx"
)

func TestPromptChooser(t *testing.T) {
	home := setupCLITestEnv(t)
	req := &reelfx.DestinationRequest{Filename: "a.mp4", SuggestedPath: "/videos/edited/a_processed.mp4"}

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "enter accepts", input: "\n", want: "", wantOK: true},
		{name: "no declines", input: "n\n", wantOK: false},
		{name: "quit declines", input: "QUIT\n", wantOK: false},
		{name: "eof declines", input: "", wantOK: false},
		{name: "absolute path", input: "/tmp/out.mp4\n", want: "/tmp/out.mp4", wantOK: true},
		{name: "home path", input: "~/clips/out.mp4\n", want: filepath.Join(home, "clips", "out.mp4"), wantOK: true},
		{name: "answer without newline", input: "/tmp/x.mp4", want: "/tmp/x.mp4", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			choose := promptChooser(strings.NewReader(tt.input), &out)
			got, ok := choose(req)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
			if !strings.Contains(out.String(), req.SuggestedPath) {
				t.Errorf("prompt %q does not show the suggestion", out.String())
			}
		})
	}
}

func TestDestinationChooserOutputFlag(t *testing.T) {
	dir := t.TempDir()
	sep := string(os.PathSeparator)

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{name: "file", output: filepath.Join(dir, "out.mp4"), want: filepath.Join(dir, "out.mp4")},
		{name: "directory", output: filepath.Join(dir, "edited"), want: filepath.Join(dir, "edited") + sep},
		{name: "directory with separator", output: dir + sep, want: dir + sep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			choose := destinationChooser(tt.output, false, strings.NewReader(""), &bytes.Buffer{})
			got, ok := choose(&reelfx.DestinationRequest{})
			if !ok {
				t.Fatal("output flag declined")
			}
			if got != tt.want {
				t.Errorf("path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDestinationChooserYes(t *testing.T) {
	choose := destinationChooser("", true, strings.NewReader(""), &bytes.Buffer{})
	got, ok := choose(&reelfx.DestinationRequest{SuggestedPath: "/x/y.mp4"})
	if !ok || got != "" {
		t.Errorf("choose = (%q, %v), want (\"\", true)", got, ok)
	}
}

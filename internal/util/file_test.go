package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsVideoFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp4", "b.MOV", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		want bool
	}{
		{"a.mp4", true},
		{"b.MOV", true},
		{"c.txt", false},
		{"missing.mkv", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(filepath.Join(dir, tt.name)); got != tt.want {
			t.Errorf("IsVideoFile(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if IsVideoFile(dir) {
		t.Error("IsVideoFile(dir) = true")
	}
}

func TestProcessedName(t *testing.T) {
	got := ProcessedName("/videos/holiday.clip.mp4", "tok")
	if got != "holiday.clip_processed_tok.mp4" {
		t.Errorf("ProcessedName() = %q", got)
	}
}

func TestSuggestedOutputPath(t *testing.T) {
	got := SuggestedOutputPath("/videos/a.mov", "edited", "123")
	want := filepath.Join("/videos", "edited", "a_processed_123.mov")
	if got != want {
		t.Errorf("SuggestedOutputPath() = %q, want %q", got, want)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	if err := os.WriteFile(src, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Errorf("dst = %q, %v", data, err)
	}
	if !FileExists(src) {
		t.Error("CopyFile() removed source")
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tmp.mp4")
	dst := filepath.Join(dir, "out", "final.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectory(filepath.Dir(dst)); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}
	if FileExists(src) {
		t.Error("source still exists after move")
	}
	if !FileExists(dst) {
		t.Error("destination missing after move")
	}
}

func TestMoveFileMissingDestinationDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tmp.mp4")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := MoveFile(src, filepath.Join(dir, "nope", "x.mp4")); err == nil {
		t.Error("MoveFile() into missing dir should fail")
	}
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	if err := RemoveIfExists(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("RemoveIfExists(missing) = %v", err)
	}
	if err := RemoveIfExists(""); err != nil {
		t.Errorf("RemoveIfExists(\"\") = %v", err)
	}
}

func TestUniqueToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := UniqueToken()
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
		if strings.ContainsAny(tok, "/\\ :") {
			t.Errorf("token %q is not filename safe", tok)
		}
	}
}

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureDirectoryWritable(t *testing.T) {
	tmpDir := t.TempDir()
	if err := EnsureDirectoryWritable(tmpDir); err != nil {
		t.Errorf("Expected no error for writable dir, got %v", err)
	}

	if err := EnsureDirectoryWritable("/nonexistent/directory/path"); err == nil {
		t.Error("Expected error for non-existent directory")
	}

	tmpFile := filepath.Join(tmpDir, "testfile")
	if err := os.WriteFile(tmpFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectoryWritable(tmpFile); err == nil {
		t.Error("Expected error for file instead of directory")
	}

	entries, _ := os.ReadDir(tmpDir)
	if len(entries) != 1 {
		t.Errorf("write probe left files behind: %d entries", len(entries))
	}
}

func TestTempFilePath(t *testing.T) {
	baseDir := t.TempDir()

	path := TempFilePath(baseDir, "reelfx_tmp", "mp4")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("File should not exist yet")
	}
	if !strings.HasPrefix(filepath.Base(path), "reelfx_tmp_") {
		t.Errorf("unexpected name %s", filepath.Base(path))
	}
	if filepath.Ext(path) != ".mp4" {
		t.Errorf("Path should have .mp4 extension, got %s", filepath.Ext(path))
	}
	if filepath.Dir(path) != baseDir {
		t.Errorf("Path should be in %s, got %s", baseDir, filepath.Dir(path))
	}

	if other := TempFilePath(baseDir, "reelfx_tmp", ".mp4"); other == path {
		t.Error("TempFilePath returned the same path twice")
	}
}

func TestCleanupStaleTempFiles(t *testing.T) {
	baseDir := t.TempDir()

	for i := 0; i < 3; i++ {
		path := filepath.Join(baseDir, "reelfx_preview_"+string(rune('0'+i))+".jpg")
		if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	otherPath := filepath.Join(baseDir, "keep.jpg")
	if err := os.WriteFile(otherPath, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}

	count, err := CleanupStaleTempFiles(baseDir, "reelfx_preview_", 0)
	if err != nil {
		t.Fatalf("CleanupStaleTempFiles failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 files cleaned, got %d", count)
	}
	if _, err := os.Stat(otherPath); os.IsNotExist(err) {
		t.Error("File without prefix should not be removed")
	}
}

func TestCleanupStaleTempFiles_NonExistentDir(t *testing.T) {
	count, err := CleanupStaleTempFiles("/nonexistent/path", "test", 0)
	if err != nil {
		t.Errorf("Should not error on non-existent dir: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 files cleaned, got %d", count)
	}
}

func TestGetAvailableSpace(t *testing.T) {
	if space := GetAvailableSpace("/nonexistent/path"); space != 0 {
		t.Errorf("Expected 0 for invalid path, got %d", space)
	}
}

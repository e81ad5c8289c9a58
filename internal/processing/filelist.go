package processing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/util"
)

// ErrFileExists is returned by Rename when the target name is taken.
var ErrFileExists = errors.New("file already exists")

// FileList is the ordered set of inputs for the next batch. Mutations are
// rejected while a batch is running.
type FileList struct {
	mu    sync.Mutex
	files []string
	guard func() error
}

func newFileList(guard func() error) *FileList {
	return &FileList{guard: guard}
}

func (l *FileList) check() error {
	if l.guard == nil {
		return nil
	}
	return l.guard()
}

// Add appends video files not already present and returns how many were
// added. Missing files are rejected with an input error.
func (l *FileList) Add(paths ...string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(); err != nil {
		return 0, err
	}
	added := 0
	for _, p := range paths {
		if !util.FileExists(p) {
			return added, rferrors.NewInputError(p)
		}
		if slices.Contains(l.files, p) {
			continue
		}
		l.files = append(l.files, p)
		added++
	}
	return added, nil
}

// Remove drops path from the list. Removing an absent path is a no-op.
func (l *FileList) Remove(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(); err != nil {
		return err
	}
	if i := slices.Index(l.files, path); i >= 0 {
		l.files = slices.Delete(l.files, i, i+1)
	}
	return nil
}

// Rename renames the file on disk to newStem, keeping its directory and
// extension, and updates the list entry in place.
func (l *FileList) Rename(path, newStem string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(); err != nil {
		return "", err
	}
	i := slices.Index(l.files, path)
	if i < 0 {
		return "", rferrors.NewInputError(path)
	}
	newStem = strings.TrimSpace(newStem)
	if newStem == "" || newStem == util.GetFileStem(path) {
		return path, nil
	}
	if strings.ContainsAny(newStem, `/\`) {
		return "", fmt.Errorf("invalid name %q", newStem)
	}

	newPath := filepath.Join(filepath.Dir(path), newStem+filepath.Ext(path))
	if util.FileExists(newPath) {
		return "", fmt.Errorf("%w: %s", ErrFileExists, filepath.Base(newPath))
	}
	if err := os.Rename(path, newPath); err != nil {
		return "", rferrors.NewIOError("rename failed", err)
	}
	l.files[i] = newPath
	return newPath, nil
}

// Clear empties the list.
func (l *FileList) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.check(); err != nil {
		return err
	}
	l.files = nil
	return nil
}

// Files returns a snapshot of the list.
func (l *FileList) Files() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.files)
}

// Len returns the number of files.
func (l *FileList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

// TotalSize sums the sizes of files that can still be read.
func (l *FileList) TotalSize() uint64 {
	var total uint64
	for _, f := range l.Files() {
		if size, err := util.GetFileSize(f); err == nil {
			total += size
		}
	}
	return total
}

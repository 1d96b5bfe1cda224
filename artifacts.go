package btvo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ArtifactDir is the local directory holding generated voice-over files.
type ArtifactDir struct {
	dir string
}

// NewArtifactDir ensures the output directory exists.
func NewArtifactDir(dir string) (*ArtifactDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &ArtifactDir{dir: dir}, nil
}

// Dir returns the directory path.
func (a *ArtifactDir) Dir() string { return a.dir }

// Write stores one voice-over file.
func (a *ArtifactDir) Write(name string, data []byte) error {
	if !validFileName(name) {
		return &InvalidParameterError{Message: fmt.Sprintf("invalid file name: %s", name)}
	}
	return os.WriteFile(filepath.Join(a.dir, name), data, 0o644)
}

// Path resolves a file name inside the directory, rejecting traversal.
func (a *ArtifactDir) Path(name string) (string, error) {
	if !validFileName(name) {
		return "", &InvalidParameterError{Message: fmt.Sprintf("invalid file name: %s", name)}
	}
	p := filepath.Join(a.dir, name)
	if _, err := os.Stat(p); err != nil {
		return "", &NotFoundError{Resource: "file", ID: name}
	}
	return p, nil
}

// List returns all files in the directory, sorted by name.
func (a *ArtifactDir) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, err
	}
	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Clear removes all files and returns how many were deleted.
func (a *ArtifactDir) Clear() (int, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(a.dir, entry.Name())); err == nil {
			deleted++
		}
	}
	return deleted, nil
}

// validFileName rejects empty names, path separators, and traversal.
func validFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return true
}

// cueFileName builds the output name for a script line, numbered by its
// cue index: 001_Krishna.mp3.
func cueFileName(cue int, character string) string {
	return fmt.Sprintf("%03d_%s.mp3", cue, character)
}

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SourceMap loads and deduplicates Sources for one compile. It is safe for
// concurrent use (spec §5: "SourceMap is constructed per invocation but is
// thread-safe"). Loading the same canonical path twice returns the
// identical Source (spec invariant 5).
//
// Grounded on original_source/rust/boot/source.rs's SourceMap.
type SourceMap struct {
	mu      sync.RWMutex
	baseDir string
	files   map[string]Source
}

// NewSourceMap creates a SourceMap rooted at baseDir, which is canonicalized
// immediately.
func NewSourceMap(baseDir string) (*SourceMap, error) {
	m := &SourceMap{files: map[string]Source{}}
	if _, err := m.SetBaseDir(baseDir); err != nil {
		return nil, err
	}
	return m, nil
}

// SetBaseDir changes the directory against which relative paths are
// resolved, returning the previous base directory.
func (m *SourceMap) SetBaseDir(baseDir string) (string, error) {
	dir, err := normPath(baseDir)
	if err != nil {
		return "", fmt.Errorf("base path is not valid: %s -- %w", baseDir, err)
	}
	m.mu.Lock()
	prev := m.baseDir
	m.baseDir = dir
	m.mu.Unlock()
	return prev, nil
}

// FromString builds a string-backed Source that is not registered for
// deduplication (each call produces a distinct Source, matching the
// original's SourceMap::from_string).
func (m *SourceMap) FromString(name, text string) Source {
	return Source{d: newData(name, text, "", false, 0)}
}

// LoadFile reads path (resolved against the base directory) as UTF-8 text
// and returns its Source, reusing a prior load of the same canonical path.
func (m *SourceMap) LoadFile(path string) (Source, error) {
	m.mu.RLock()
	baseDir := m.baseDir
	m.mu.RUnlock()

	full, err := getFullPath(baseDir, path)
	if err != nil {
		return Source{}, err
	}

	m.mu.RLock()
	if src, ok := m.files[full]; ok {
		m.mu.RUnlock()
		return src, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if src, ok := m.files[full]; ok {
		return src, nil
	}

	raw, err := os.ReadFile(full)
	if err != nil {
		return Source{}, fmt.Errorf("loading %q: %w", full, err)
	}
	name := full
	if rel, err := filepath.Rel(baseDir, full); err == nil && !isOutsideRel(rel) {
		name = rel
	}
	src := Source{d: newData(name, string(raw), full, true, 0)}
	m.files[full] = src
	return src, nil
}

func isOutsideRel(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.'
}

func getFullPath(base, path string) (string, error) {
	base, err := normPath(base)
	if err != nil {
		return "", fmt.Errorf("base path is not valid: %s -- %w", base, err)
	}
	joined := path
	if !filepath.IsAbs(path) {
		joined = filepath.Join(base, path)
	}
	full, err := normPath(joined)
	if err != nil {
		return "", fmt.Errorf("path is not valid: %s -- %w", joined, err)
	}
	return full, nil
}

func normPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// The path may not exist yet (e.g. a base directory being set up);
		// fall back to the absolute, non-symlink-resolved form.
		if os.IsNotExist(err) {
			return filepath.Clean(abs), nil
		}
		return "", err
	}
	return resolved, nil
}

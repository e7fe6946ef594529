package handbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ContentLoader resolves content references to markdown text.
type ContentLoader interface {
	Load(ctx context.Context, ref ContentRef) (string, error)
}

// DirLoader reads content files from a directory. References are slash
// separated paths relative to Dir and may not leave it.
type DirLoader struct {
	Dir string
}

// NewDirLoader creates a DirLoader rooted at dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// Load reads the file named by ref.
func (l *DirLoader) Load(ctx context.Context, ref ContentRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rel := filepath.FromSlash(string(ref))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q escapes %s", ErrInvalidContentRef, ref, l.Dir)
	}

	data, err := os.ReadFile(filepath.Join(l.Dir, rel)) // #nosec G304 -- ref confined to Dir above
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q in %s", ErrContentNotFound, ref, l.Dir)
		}
		return "", fmt.Errorf("%w: %q: %v", ErrContentRead, ref, err)
	}
	return string(data), nil
}

// MapLoader serves content from memory. Safe for concurrent use.
type MapLoader struct {
	mu    sync.RWMutex
	files map[ContentRef]string
}

// NewMapLoader creates a MapLoader holding a copy of files.
func NewMapLoader(files map[ContentRef]string) *MapLoader {
	m := &MapLoader{files: make(map[ContentRef]string, len(files))}
	for k, v := range files {
		m.files[k] = v
	}
	return m
}

// Set stores or replaces the content of ref.
func (m *MapLoader) Set(ref ContentRef, markdown string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[ref] = markdown
}

// Load returns the content stored for ref.
func (m *MapLoader) Load(ctx context.Context, ref ContentRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[ref]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrContentNotFound, ref)
	}
	return content, nil
}

// Compile-time interface checks.
var (
	_ ContentLoader = (*DirLoader)(nil)
	_ ContentLoader = (*MapLoader)(nil)
)

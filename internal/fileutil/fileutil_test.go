package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-handbook/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ext     string
		wantErr error
	}{
		{"html", "html", nil},
		{"pdf", "pdf", nil},
		{"empty", "", fileutil.ErrExtensionEmpty},
		{"slash", "a/b", fileutil.ErrExtensionPathTraversal},
		{"backslash", `a\b`, fileutil.ErrExtensionPathTraversal},
		{"null byte", "a\x00", fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.ext)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("<h1>x</h1>", "html")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "handbook-"))
	assert.Equal(t, ".html", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>x</h1>", string(data))

	cleanup()
	assert.False(t, fileutil.FileExists(path))
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("x", "../html")
	assert.ErrorIs(t, err, fileutil.ErrExtensionPathTraversal)
	assert.Nil(t, cleanup)
}

// ---------------------------------------------------------------------------
// TestWriteFile
// ---------------------------------------------------------------------------

func TestWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "guides", "rendering", "index.html")

	require.NoError(t, fileutil.WriteFile(target, []byte("page")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "page", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFile_Overwrites(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, fileutil.WriteFile(target, []byte("old")))
	require.NoError(t, fileutil.WriteFile(target, []byte("new")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFile_ParentIsFile(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	assert.Error(t, fileutil.WriteFile(filepath.Join(blocker, "index.html"), []byte("x")))
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists
// ---------------------------------------------------------------------------

func TestFileAndDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(file, []byte("# A"), 0o600))

	assert.True(t, fileutil.FileExists(file))
	assert.False(t, fileutil.FileExists(dir))
	assert.False(t, fileutil.FileExists(filepath.Join(dir, "missing")))

	assert.True(t, fileutil.DirExists(dir))
	assert.False(t, fileutil.DirExists(file))
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsURL
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"handbook", false},
		{"my-handbook", false},
		{"./handbook.yaml", true},
		{"/etc/handbook.yaml", true},
		{`C:\docs\handbook.yaml`, true},
		{"docs/handbook", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fileutil.IsFilePath(tt.in))
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/a", true},
		{"//cdn.example.com/x.js", true},
		{"/guides/rendering", false},
		{"render.md", false},
		{"ftp://example.com", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fileutil.IsURL(tt.in))
		})
	}
}

package cliutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "Hello, %s!", "World")
	if got := buf.String(); got != "Hello, World!" {
		t.Errorf("Writef() = %q, want %q", got, "Hello, World!")
	}
}

func TestWritef_MultipleArgs(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d endpoints, %v selected", "Status", 42, true)
	want := "Status: 42 endpoints, true selected"
	if got := buf.String(); got != want {
		t.Errorf("Writef() = %q, want %q", got, want)
	}
}

// errorWriter is a writer that always returns an error
type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestWritef_WriteError(t *testing.T) {
	// Should not panic
	Writef(errorWriter{}, "This will fail")
}

func TestWriteFile(t *testing.T) {
	t.Run("creates file with owner-only permissions", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "filtered-api.json")

		got, err := WriteFile(target, []byte(`{"openapi":"3.0.0"}`))
		require.NoError(t, err)
		assert.Equal(t, target, got)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, `{"openapi":"3.0.0"}`, string(data))

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
	})

	t.Run("replaces existing file", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "out.yaml")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o600))

		_, err := WriteFile(target, []byte("new"))
		require.NoError(t, err)

		data, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		_, err := WriteFile(filepath.Join(dir, "out.json"), []byte("{}"))
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.json", entries[0].Name())
	})

	t.Run("refuses symlink", func(t *testing.T) {
		dir := t.TempDir()
		realFile := filepath.Join(dir, "real.json")
		link := filepath.Join(dir, "link.json")
		require.NoError(t, os.WriteFile(realFile, []byte("{}"), 0o600))
		require.NoError(t, os.Symlink(realFile, link))

		_, err := WriteFile(link, []byte("x"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}

package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Scanner implements labeldoc.Scanner at compile time.
var _ labeldoc.Scanner = (*fs.Scanner)(nil)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("<AxTable/>"), 0644))
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	t.Run("returns only files with the extension", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		want := []string{
			filepath.Join(root, "AxTable", "rsmGCXParameters.xml"),
			filepath.Join(root, "AxTable", "rsmGCXTrans.xml"),
			filepath.Join(root, "AxClass", "nested", "deep", "rsmGCXHelper.xml"),
		}
		for _, p := range want {
			touch(t, p)
		}
		touch(t, filepath.Join(root, "Descriptor", "rsmGCX.txt"))
		touch(t, filepath.Join(root, "AxTable", "rsmGCXParameters.xml.bak"))

		got, err := fs.NewScanner().Scan(context.Background(), root)

		require.NoError(t, err)
		assert.ElementsMatch(t, want, got)
	})

	t.Run("matches extension case-sensitively", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		touch(t, filepath.Join(root, "Upper.XML"))

		got, err := fs.NewScanner().Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("includes hidden directories", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		hidden := filepath.Join(root, ".hidden", "Object.xml")
		touch(t, hidden)

		got, err := fs.NewScanner().Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, []string{hidden}, got)
	})

	t.Run("skips directories named like documents", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.xml"), 0755))

		got, err := fs.NewScanner().Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("follows symlinks to regular files", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		target := filepath.Join(t.TempDir(), "Target.xml")
		touch(t, target)
		link := filepath.Join(root, "Link.xml")
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}

		got, err := fs.NewScanner().Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, []string{link}, got)
	})

	t.Run("returns empty result for missing root", func(t *testing.T) {
		t.Parallel()

		got, err := fs.NewScanner().Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("uses configured extension", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		touch(t, filepath.Join(root, "a.xml"))
		touch(t, filepath.Join(root, "b.rnrproj"))

		got, err := fs.NewScanner(fs.WithExtension(".rnrproj")).Scan(context.Background(), root)

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(root, "b.rnrproj")}, got)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		touch(t, filepath.Join(root, "a.xml"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fs.NewScanner().Scan(ctx, root)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("report.csv", []byte("Member,Present\n"))
	require.NoError(t, err)
	require.Equal(t, "report.csv", rel)

	file, err := store.Open(rel)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.Equal(t, "Member,Present\n", string(data))
}

func TestSaveCreatesNestedDirectories(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save(filepath.Join("2026", "february.csv"), []byte("x"))
	require.NoError(t, err)
	require.FileExists(t, store.Path(rel))
}

func TestDeleteMissingFileIsNoError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Delete("never-saved.csv"))
}

func TestLastExportPointer(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	last, err := store.LastExport()
	require.NoError(t, err)
	require.Empty(t, last, "no pointer before the first export")

	require.NoError(t, store.WriteLastExport("report.xlsx"))
	last, err = store.LastExport()
	require.NoError(t, err)
	require.Equal(t, "report.xlsx", last)

	require.NoError(t, store.WriteLastExport("newer.xlsx"))
	last, err = store.LastExport()
	require.NoError(t, err)
	require.Equal(t, "newer.xlsx", last)
}

func TestCleanupOlderThanSparesPointerFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("old.csv", []byte("x"))
	require.NoError(t, err)
	_, err = store.Save("fresh.csv", []byte("y"))
	require.NoError(t, err)
	require.NoError(t, store.WriteLastExport("fresh.csv"))

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(store.Path("old.csv"), stale, stale))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, []string{"old.csv"}, deleted)

	require.NoFileExists(t, store.Path("old.csv"))
	require.FileExists(t, store.Path("fresh.csv"))

	last, err := store.LastExport()
	require.NoError(t, err)
	require.Equal(t, "fresh.csv", last)
}

func TestPathKeepsAbsoluteFilenames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	require.Equal(t, filepath.Join(dir, "a.csv"), store.Path("a.csv"))
	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	require.Equal(t, abs, store.Path(abs))
}

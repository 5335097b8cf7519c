package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStorageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)

	key := Key("breaches", nil)
	require.NoError(t, s.Write(key, []byte(`{"data":[]}`)))

	got, err := s.Read(key)
	require.NoError(t, err)
	require.Equal(t, `{"data":[]}`, string(got))
}

func TestFileStorageShardsByKeyPrefix(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)

	key := Key("breaches", nil)
	require.NoError(t, s.Write(key, []byte(`{}`)))

	_, err := os.Stat(filepath.Join(dir, key[:2], key+".json"))
	require.NoError(t, err, "entry should live under a two-character shard directory")
}

func TestFileStorageReadMissing(t *testing.T) {
	s := NewFileStorage(t.TempDir())

	_, err := s.Read(Key("never-written", nil))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorageLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)

	key := Key("breaches", nil)
	require.NoError(t, s.Write(key, []byte(`{}`)))
	require.NoError(t, s.Write(key, []byte(`{"v":2}`)))

	entries, err := os.ReadDir(filepath.Join(dir, key[:2]))
	require.NoError(t, err)
	for _, e := range entries {
		require.False(t, strings.Contains(e.Name(), ".tmp."), "temp file left behind: %s", e.Name())
	}

	got, err := s.Read(key)
	require.NoError(t, err)
	require.Equal(t, `{"v":2}`, string(got), "last write wins")
}

func TestFileStorageClear(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)

	require.NoError(t, s.Write(Key("a", nil), []byte(`{}`)))
	require.NoError(t, s.Write(Key("b", nil), []byte(`{}`)))
	require.NoError(t, s.Clear())

	_, err := s.Read(Key("a", nil))
	require.ErrorIs(t, err, ErrNotFound)

	// Clearing a directory that never existed is fine.
	empty := NewFileStorage(filepath.Join(dir, "nope"))
	require.NoError(t, empty.Clear())
}

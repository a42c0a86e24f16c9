package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	tmp := t.TempDir()

	got, err := EnsureDir(filepath.Join(tmp, "a", "b"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "a", "b"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	again, err := EnsureDir(got)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureDir_FailsWhenPathIsFile(t *testing.T) {
	tmp := t.TempDir()
	f := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(f, "sub"))
	require.Error(t, err)
}

func TestAtomicFile_Commit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out", "data.bin")

	f, err := CreateAtomic(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("payload"))
	require.NoError(t, err)

	_, err = os.Stat(target)
	require.ErrorIs(t, err, os.ErrNotExist, "target appears only on commit")

	require.NoError(t, f.Commit())
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))

	require.Error(t, f.Commit())
	f.Abort()
	_, err = os.Stat(target)
	require.NoError(t, err, "abort after commit keeps the file")
}

func TestAtomicFile_AbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o600))

	f, err := CreateAtomic(target)
	require.NoError(t, err)
	_, err = f.Write([]byte("partial"))
	require.NoError(t, err)
	f.Abort()

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "old", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file removed")
}

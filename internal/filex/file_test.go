package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeResolvesAgainstCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("data")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(tmp)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(want, "data"), gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_IdempotentAndNested(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "a", "b")

	p1, err := EnsureDir(dir)
	require.NoError(t, err)
	p2, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}

func TestEnsureDir_FailsWhenPathIsFile(t *testing.T) {
	base := t.TempDir()
	f := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))

	_, err := EnsureDir(f)
	require.Error(t, err)
}

func TestWriteFileAtomic_CreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"v":1}`), 0o600))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(b))

	require.NoError(t, WriteFileAtomic(path, []byte(`{"v":2}`), 0o600))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "x.json")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0o600))
}

func stubDirSync(t *testing.T, err error) {
	t.Helper()
	old := dirSync
	dirSync = func(*os.File) error { return err }
	t.Cleanup(func() { dirSync = old })
}

func TestWriteFileAtomic_DirSyncFailure(t *testing.T) {
	stubDirSync(t, &os.PathError{Op: "sync", Path: "dir", Err: syscall.EIO})

	path := filepath.Join(t.TempDir(), "graph.json")
	err := WriteFileAtomic(path, []byte("x"), 0o600)
	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.EIO)
	assert.ErrorContains(t, err, "sync dir")
}

func TestWriteFileAtomic_DirSyncUnsupportedIgnored(t *testing.T) {
	for _, errno := range []error{
		syscall.EINVAL,
		syscall.ENOTSUP,
		fmt.Errorf("wrapped: %w", errors.ErrUnsupported),
	} {
		t.Run(errno.Error(), func(t *testing.T) {
			stubDirSync(t, &os.PathError{Op: "sync", Path: "dir", Err: errno})

			path := filepath.Join(t.TempDir(), "graph.json")
			require.NoError(t, WriteFileAtomic(path, []byte("x"), 0o600))
			b, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "x", string(b))
		})
	}
}

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))
	info, err = fs.Stat(subDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = fs.ReadFile(subDir)
	assert.Error(t, err)

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
	_, err = fs.Stat(subDir)
	assert.True(t, os.IsNotExist(err))
}

func TestNewOS_Symlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "kit")
	require.NoError(t, fs.MkdirAll(target, 0755))

	link := filepath.Join(tmpDir, "repo-link")
	require.NoError(t, fs.Symlink("kit", link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "Lstat should not follow the link")

	info, err = fs.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "Stat should follow the link")

	dest, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "kit", dest)

	require.NoError(t, fs.Remove(link))
	_, err = fs.Lstat(link)
	assert.True(t, os.IsNotExist(err))
	_, err = fs.Stat(target)
	assert.NoError(t, err, "removing the link must not remove its target")
}

func TestAferoFS_MemMapFallbacks(t *testing.T) {
	fs := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fs.MkdirAll("/repo", 0755))
	require.NoError(t, fs.Symlink("../kit", "/repo/.agent-kit"))

	dest, err := fs.Readlink("/repo/.agent-kit")
	require.NoError(t, err)
	assert.Equal(t, "../kit", dest)

	_, err = fs.Lstat("/repo/.agent-kit")
	assert.NoError(t, err)
}

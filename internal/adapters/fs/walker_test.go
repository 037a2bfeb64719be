package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dbridge/internal/adapters/fs"
)

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dir1"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "dir2"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "file1.txt"), []byte("content1"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dir1", "file2.txt"), []byte("content2"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dir2", "file3.txt"), []byte("content3"), 0o600))

	walker := fs.NewWalker(fs.NewOSFS())
	files := make([]string, 0)

	for filePath := range walker.WalkFiles(tmpDir, nil, -1) {
		files = append(files, filePath)
	}

	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(tmpDir, "file1.txt"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir1", "file2.txt"))
	assert.Contains(t, files, filepath.Join(tmpDir, "dir2", "file3.txt"))
}

func TestWalker_WalkFiles_SkipsGitAndIgnores(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git", "objects"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "ref"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "net8.0"), 0o750))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("gitconfig"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ref", "App.dll"), []byte("ref"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "net8.0", "App.dll"), []byte("app"), 0o600))

	walker := fs.NewWalker(fs.NewOSFS())
	files := make([]string, 0)

	for filePath := range walker.WalkFiles(tmpDir, []string{"ref", "obj"}, -1) {
		files = append(files, filePath)
	}

	assert.Equal(t, []string{filepath.Join(tmpDir, "net8.0", "App.dll")}, files)
}

func TestWalker_WalkFiles_MaxDepth(t *testing.T) {
	mapFS := fstest.MapFS{
		"bin/Debug/top.dll":                          {Data: []byte("0")},
		"bin/Debug/net8.0/App.dll":                   {Data: []byte("1")},
		"bin/Debug/net8.0/linux-x64/App.dll":         {Data: []byte("2")},
		"bin/Debug/net8.0/linux-x64/publish/App.dll": {Data: []byte("3")},
	}
	root := "/repo"
	walker := fs.NewWalker(fs.NewMapFSAdapter(root, mapFS))

	var files []string
	for filePath := range walker.WalkFiles(filepath.Join(root, "bin", "Debug"), nil, 2) {
		files = append(files, filePath)
	}

	assert.ElementsMatch(t, []string{
		filepath.Join(root, "bin", "Debug", "top.dll"),
		filepath.Join(root, "bin", "Debug", "net8.0", "App.dll"),
		filepath.Join(root, "bin", "Debug", "net8.0", "linux-x64", "App.dll"),
	}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	walker := fs.NewWalker(fs.NewMapFSAdapter("/repo", fstest.MapFS{}))

	count := 0
	for range walker.WalkFiles("/repo/bin/Debug", nil, -1) {
		count++
	}
	assert.Zero(t, count)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	mapFS := fstest.MapFS{
		"a.dll": {Data: []byte("a")},
		"b.dll": {Data: []byte("b")},
		"c.dll": {Data: []byte("c")},
	}
	walker := fs.NewWalker(fs.NewMapFSAdapter("/repo", mapFS))

	var files []string
	for filePath := range walker.WalkFiles("/repo", nil, -1) {
		files = append(files, filePath)
		break
	}
	assert.Len(t, files, 1)
}

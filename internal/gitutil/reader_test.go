package gitutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a repository with one committed file and returns the
// checkout path and the commit SHA.
func initTestRepo(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.py"), []byte("print('hello')\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("src/app.py")
	require.NoError(t, err)

	hash, err := wt.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, hash.String()
}

func TestReaderFileContent(t *testing.T) {
	dir, sha := initTestRepo(t)

	reader, err := Open(dir, nil)
	require.NoError(t, err)

	content, err := reader.FileContent(sha, "src/app.py")
	require.NoError(t, err)
	assert.Equal(t, "print('hello')\n", content)
}

func TestReaderFileContentAtHead(t *testing.T) {
	dir, _ := initTestRepo(t)

	reader, err := Open(dir, nil)
	require.NoError(t, err)

	content, err := reader.FileContent("", "src/app.py")
	require.NoError(t, err)
	assert.Equal(t, "print('hello')\n", content)
}

func TestReaderMissingFile(t *testing.T) {
	dir, sha := initTestRepo(t)

	reader, err := Open(dir, nil)
	require.NoError(t, err)

	_, err = reader.FileContent(sha, "does/not/exist.py")
	assert.Error(t, err)
}

func TestOpenNonRepository(t *testing.T) {
	_, err := Open(t.TempDir(), nil)
	assert.Error(t, err)
}

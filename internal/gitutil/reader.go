// Package gitutil reads file contents out of a local Git checkout. In action
// mode the workflow has already cloned the repository, so file contents can
// come from the local object store instead of per-file API downloads.
package gitutil

import (
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Reader resolves file contents from a local repository checkout.
type Reader struct {
	repo   *git.Repository
	logger *slog.Logger
}

// Open opens the repository at path. A missing or non-Git path is an error;
// callers treat it as "no local checkout available" and fall back to remote
// downloads.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &Reader{repo: repo, logger: logger}, nil
}

// FileContent returns the contents of a file at the given commit SHA. An
// empty sha reads from HEAD.
func (r *Reader) FileContent(sha, path string) (string, error) {
	hash, err := r.resolve(sha)
	if err != nil {
		return "", err
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return "", fmt.Errorf("failed to get commit %s: %w", hash, err)
	}
	file, err := commit.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, hash, err)
	}
	return file.Contents()
}

func (r *Reader) resolve(sha string) (plumbing.Hash, error) {
	if sha == "" {
		ref, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		return ref.Hash(), nil
	}
	return plumbing.NewHash(sha), nil
}

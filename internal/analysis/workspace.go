package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// materializeWorkspace writes every non-removed changed file into a fresh
// scratch directory and returns its path with a cleanup function. The cleanup
// must run on every exit path; the directory is exclusive to one review run.
//
// A file whose content cannot be obtained is skipped with a warning, never a
// failure: partial analysis beats no analysis.
func materializeWorkspace(ctx context.Context, files []core.FileChange, logger *slog.Logger) (string, func(), error) {
	root, err := os.MkdirTemp("", "reviewbuddy-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create analysis workspace: %w", err)
	}
	cleanup := func() {
		if removeErr := os.RemoveAll(root); removeErr != nil {
			logger.Error("failed to remove analysis workspace", "path", root, "error", removeErr)
		}
	}

	for _, f := range files {
		if f.Status == core.StatusRemoved {
			continue
		}

		dest, err := workspacePath(root, f.Path)
		if err != nil {
			logger.Warn("skipping file with unsafe path", "file", f.Path, "error", err)
			continue
		}

		content, err := fileContent(ctx, f)
		if err != nil {
			logger.Warn("skipping file, content unavailable", "file", f.Path, "error", err)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(dest, []byte(content), 0o600); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
	}

	return root, cleanup, nil
}

// fileContent resolves a file's contents, preferring inline content over the
// fetch handle.
func fileContent(ctx context.Context, f core.FileChange) (string, error) {
	if f.Content != "" {
		return f.Content, nil
	}
	if f.Fetch != nil {
		return f.Fetch(ctx)
	}
	return "", fmt.Errorf("no content or fetch handle available")
}

// workspacePath joins a repository-relative path onto the workspace root,
// rejecting paths that would escape it.
func workspacePath(root, relPath string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(relPath))
	if !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes workspace root")
	}
	return dest, nil
}

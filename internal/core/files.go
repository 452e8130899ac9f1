package core

import "context"

// ChangeStatus describes what happened to a file in a pull request.
type ChangeStatus string

const (
	StatusAdded    ChangeStatus = "added"
	StatusModified ChangeStatus = "modified"
	StatusRemoved  ChangeStatus = "removed"
	StatusRenamed  ChangeStatus = "renamed"
)

// ContentFetcher lazily retrieves a file's raw content, typically by
// downloading it from the source-control host.
type ContentFetcher func(ctx context.Context) (string, error)

// FileChange describes one changed file in a pull request. It is constructed
// once per review run and never mutated afterwards, except that inline
// Content may be pre-populated from a local checkout before analysis starts.
type FileChange struct {
	// Path is the repository-relative file path.
	Path string

	Status ChangeStatus

	Additions int
	Deletions int

	// Patch holds the unified-diff hunk for this file, when the host
	// supplied one (binary and very large files come without a patch).
	Patch string

	// Content holds the file's full contents when already known.
	Content string

	// Fetch retrieves the contents when Content is empty. May be nil.
	Fetch ContentFetcher
}

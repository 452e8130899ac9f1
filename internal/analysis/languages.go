// Package analysis dispatches external linters over the changed files of a
// pull request and normalizes their output into one report.
package analysis

import (
	"path/filepath"
	"strings"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// languageByExt is the closed set of recognized file extensions. Files with
// any other extension are silently excluded from analysis.
var languageByExt = map[string]string{
	".py":  "python",
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
}

// languageOrder fixes the dispatch order across languages so that report
// ordering is deterministic between runs.
var languageOrder = []string{"python", "javascript", "typescript"}

// groupFilesByLanguage buckets changed-file paths by recognized language,
// preserving the order files appeared in the pull request.
func groupFilesByLanguage(files []core.FileChange) map[string][]string {
	grouped := make(map[string][]string)
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Path))
		lang, ok := languageByExt[ext]
		if !ok {
			continue
		}
		grouped[lang] = append(grouped[lang], f.Path)
	}
	return grouped
}

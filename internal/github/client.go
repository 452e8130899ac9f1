// Package github wraps the GitHub API operations ReviewBuddy needs: reading
// pull-request contents and posting the finished review comment.
package github

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/l1v0n1/ReviewBuddy/internal/core"
)

// rawDownloadTimeout bounds one raw-content download for a changed file.
const rawDownloadTimeout = 30 * time.Second

// Client defines the GitHub operations used by the review pipeline.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error)
	GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error)
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

type gitHubClient struct {
	client    *github.Client
	rawClient *http.Client
	logger    *slog.Logger
}

// NewClient wraps the official go-github client behind the focused interface
// the review pipeline depends on.
func NewClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{
		client:    client,
		rawClient: &http.Client{Timeout: rawDownloadTimeout},
		logger:    logger,
	}
}

// GetPullRequest retrieves a single pull request by number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// GetPullRequestDiff retrieves the unified diff of a pull request.
func (g *gitHubClient) GetPullRequestDiff(ctx context.Context, owner, repo string, number int) (string, error) {
	diff, _, err := g.client.PullRequests.GetRaw(ctx, owner, repo, number, github.RawOptions{
		Type: github.Diff,
	})
	if err != nil {
		g.logger.Error("failed to get pull request diff", "owner", owner, "repo", repo, "pr", number, "error", err)
		return "", err
	}
	return diff, nil
}

// GetChangedFiles lists every file modified in a pull request, following
// pagination (GitHub caps each page at 100 files). Each returned FileChange
// carries a fetch handle that downloads the file's raw content on demand.
func (g *gitHubClient) GetChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error) {
	var changes []core.FileChange
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, file := range files {
			fc := core.FileChange{
				Path:      file.GetFilename(),
				Status:    core.ChangeStatus(file.GetStatus()),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
				Patch:     file.GetPatch(),
			}
			if rawURL := file.GetRawURL(); rawURL != "" {
				fc.Fetch = g.rawFetcher(rawURL)
			}
			changes = append(changes, fc)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return changes, nil
}

// rawFetcher builds the lazy content downloader for one changed file.
func (g *gitHubClient) rawFetcher(rawURL string) core.ContentFetcher {
	return func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", err
		}
		resp, err := g.rawClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to download %s: %w", rawURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("failed to download %s: status %d", rawURL, resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

// GetFileContent reads one file from the repository at the given ref. The ref
// may be empty for the default branch.
func (g *gitHubClient) GetFileContent(ctx context.Context, owner, repo, path, ref string) (string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := g.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	return content.GetContent()
}

// CreateComment posts a plain issue comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
	}
	return err
}

// Package jobs implements the review pipeline: fetch the pull request, run
// static analysis and the AI review, and post the merged comment.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/l1v0n1/ReviewBuddy/internal/analysis"
	"github.com/l1v0n1/ReviewBuddy/internal/config"
	"github.com/l1v0n1/ReviewBuddy/internal/core"
	"github.com/l1v0n1/ReviewBuddy/internal/github"
	"github.com/l1v0n1/ReviewBuddy/internal/gitutil"
	"github.com/l1v0n1/ReviewBuddy/internal/llm"
	"github.com/l1v0n1/ReviewBuddy/internal/storage"
)

// ClientProvider yields an authenticated GitHub client for an event. Action
// mode returns a token client; server mode mints an installation client per
// event.
type ClientProvider func(ctx context.Context, event *core.ReviewEvent) (github.Client, error)

// ReviewJob runs one end-to-end review for a pull request.
type ReviewJob struct {
	cfg      *config.Config
	clients  ClientProvider
	analyzer *analysis.Runner
	store    storage.Store
	local    *gitutil.Reader
	repoCfg  *core.RepoConfig
	logger   *slog.Logger

	// dryRun renders the comment without posting or persisting it.
	dryRun bool

	// selectProvider is swapped out in tests.
	selectProvider func(ctx context.Context, cfg *core.RepoConfig, logger *slog.Logger) (llm.Provider, error)
}

// Option configures optional ReviewJob collaborators.
type Option func(*ReviewJob)

// WithStore persists every posted review (server mode).
func WithStore(store storage.Store) Option {
	return func(j *ReviewJob) { j.store = store }
}

// WithLocalReader sources file contents from a local checkout instead of
// per-file downloads (action mode, where the workflow already cloned).
func WithLocalReader(reader *gitutil.Reader) Option {
	return func(j *ReviewJob) { j.local = reader }
}

// WithDryRun renders the review without posting it.
func WithDryRun(dryRun bool) Option {
	return func(j *ReviewJob) { j.dryRun = dryRun }
}

// WithRepoConfig pins the review settings, skipping the remote lookup of
// .reviewbuddy.yml. Action mode uses this when the workflow checkout already
// contains the file.
func WithRepoConfig(repoCfg *core.RepoConfig) Option {
	return func(j *ReviewJob) { j.repoCfg = repoCfg }
}

// NewReviewJob creates a review job.
func NewReviewJob(cfg *config.Config, clients ClientProvider, analyzer *analysis.Runner, logger *slog.Logger, opts ...Option) *ReviewJob {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if clients == nil {
		panic("client provider cannot be nil")
	}
	if analyzer == nil {
		panic("analyzer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	j := &ReviewJob{
		cfg:            cfg,
		clients:        clients,
		analyzer:       analyzer,
		logger:         logger,
		selectProvider: llm.NewProvider,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run implements core.Job.
func (j *ReviewJob) Run(ctx context.Context, event *core.ReviewEvent) error {
	_, err := j.ReviewPullRequest(ctx, event)
	return err
}

// ReviewPullRequest executes the pipeline and returns the comment body that
// was (or, in dry-run, would have been) posted.
func (j *ReviewJob) ReviewPullRequest(ctx context.Context, event *core.ReviewEvent) (string, error) {
	if err := validateEvent(event); err != nil {
		return "", fmt.Errorf("input validation failed: %w", err)
	}

	j.logger.Info("starting review", "repo", event.RepoFullName, "pr", event.PRNumber)

	client, err := j.clients(ctx, event)
	if err != nil {
		return "", fmt.Errorf("failed to create GitHub client: %w", err)
	}

	pr, err := client.GetPullRequest(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		return "", fmt.Errorf("failed to get PR details: %w", err)
	}
	if event.HeadSHA == "" {
		event.HeadSHA = pr.GetHead().GetSHA()
	}

	files, err := client.GetChangedFiles(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err != nil {
		return "", fmt.Errorf("failed to list changed files: %w", err)
	}
	j.preloadLocalContent(event.HeadSHA, files)

	repoCfg := j.loadRepoConfig(ctx, client, event)

	// The AI provider is resolved before any work happens: an unknown
	// provider kind is a configuration bug that must fail the run outright.
	provider, err := j.selectProvider(ctx, repoCfg, j.logger)
	if err != nil {
		return "", fmt.Errorf("failed to select model provider: %w", err)
	}

	j.logPreviousReview(ctx, event)

	report := j.analyzer.Run(ctx, files, repoCfg)

	diff := j.resolveDiff(ctx, client, event, files)
	review := provider.GenerateReview(ctx, diff, files)
	if review.Status == core.ReviewDegraded {
		j.logger.Warn("AI review degraded", "summary", review.Summary)
	}

	body := github.FormatReviewComment(report, review, repoCfg.MaxSuggestions)

	if j.dryRun {
		j.logger.Info("dry run, skipping comment post", "repo", event.RepoFullName, "pr", event.PRNumber)
		return body, nil
	}

	if err := client.CreateComment(ctx, event.RepoOwner, event.RepoName, event.PRNumber, body); err != nil {
		return "", fmt.Errorf("failed to post review comment: %w", err)
	}

	if j.store != nil {
		record := &core.Review{
			RepoFullName:  event.RepoFullName,
			PRNumber:      event.PRNumber,
			HeadSHA:       event.HeadSHA,
			ReviewContent: body,
		}
		if err := j.store.SaveReview(ctx, record); err != nil {
			// Persistence is an audit trail; losing one record must not fail
			// a review that was already posted.
			j.logger.Error("failed to persist review", "repo", event.RepoFullName, "pr", event.PRNumber, "error", err)
		}
	}

	j.logger.Info("review completed", "repo", event.RepoFullName, "pr", event.PRNumber)
	return body, nil
}

// logPreviousReview notes whether this PR was reviewed before, and whether
// the head commit changed since. Repeated "/review" on the same commit is
// legitimate (a different model or config may be active) but worth surfacing.
func (j *ReviewJob) logPreviousReview(ctx context.Context, event *core.ReviewEvent) {
	if j.store == nil {
		return
	}
	previous, err := j.store.GetLatestReviewForPR(ctx, event.RepoFullName, event.PRNumber)
	if err != nil || previous == nil {
		return
	}
	if previous.HeadSHA == event.HeadSHA {
		j.logger.Info("re-reviewing a previously reviewed commit",
			"repo", event.RepoFullName, "pr", event.PRNumber, "sha", event.HeadSHA,
			"previous_review_at", previous.CreatedAt)
		return
	}
	j.logger.Info("reviewing new commits on a previously reviewed PR",
		"repo", event.RepoFullName, "pr", event.PRNumber,
		"previous_sha", previous.HeadSHA, "sha", event.HeadSHA)
}

// preloadLocalContent fills inline file contents from the local checkout so
// the analysis workspace avoids one network download per file.
func (j *ReviewJob) preloadLocalContent(headSHA string, files []core.FileChange) {
	if j.local == nil {
		return
	}
	for i := range files {
		if files[i].Content != "" || files[i].Status == core.StatusRemoved {
			continue
		}
		content, err := j.local.FileContent(headSHA, files[i].Path)
		if err != nil {
			j.logger.Debug("local content unavailable, will fetch remotely", "file", files[i].Path, "error", err)
			continue
		}
		files[i].Content = content
	}
}

// loadRepoConfig fetches .reviewbuddy.yml from the reviewed repository,
// falling back to defaults when the file is missing or unparseable.
func (j *ReviewJob) loadRepoConfig(ctx context.Context, client github.Client, event *core.ReviewEvent) *core.RepoConfig {
	if j.repoCfg != nil {
		return j.repoCfg
	}

	content, err := client.GetFileContent(ctx, event.RepoOwner, event.RepoName, j.cfg.RepoConfigPath, event.HeadSHA)
	if err != nil {
		j.logger.Info("no repo config found, using defaults", "path", j.cfg.RepoConfigPath)
		return core.DefaultRepoConfig()
	}

	repoCfg, err := config.ParseRepoConfig([]byte(content))
	if err != nil {
		j.logger.Warn("failed to parse repo config, using defaults", "path", j.cfg.RepoConfigPath, "error", err)
		return core.DefaultRepoConfig()
	}
	return repoCfg
}

// resolveDiff prefers the host's raw unified diff and falls back to a diff
// assembled from per-file patches.
func (j *ReviewJob) resolveDiff(ctx context.Context, client github.Client, event *core.ReviewEvent, files []core.FileChange) string {
	diff, err := client.GetPullRequestDiff(ctx, event.RepoOwner, event.RepoName, event.PRNumber)
	if err == nil && diff != "" {
		return diff
	}
	if err != nil {
		j.logger.Warn("failed to fetch raw diff, assembling from patches", "error", err)
	}
	return github.BuildDiffText(files)
}

// validateEvent ensures the event carries everything the pipeline needs.
func validateEvent(event *core.ReviewEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.RepoOwner == "" {
		return fmt.Errorf("repository owner cannot be empty")
	}
	if event.RepoName == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if event.RepoFullName == "" {
		return fmt.Errorf("repository full name cannot be empty")
	}
	if event.PRNumber <= 0 {
		return fmt.Errorf("pull request number must be positive, got: %d", event.PRNumber)
	}
	return nil
}

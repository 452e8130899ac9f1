package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/l1v0n1/ReviewBuddy/internal/analysis"
	"github.com/l1v0n1/ReviewBuddy/internal/config"
	"github.com/l1v0n1/ReviewBuddy/internal/core"
	"github.com/l1v0n1/ReviewBuddy/internal/github"
	"github.com/l1v0n1/ReviewBuddy/internal/gitutil"
	"github.com/l1v0n1/ReviewBuddy/internal/jobs"
	"github.com/l1v0n1/ReviewBuddy/internal/logger"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	dimColor   = color.New(color.FgHiBlack)
)

// eventPayload is the slice of the Actions event JSON we care about. The
// payload shape differs between pull_request and issue_comment triggers, so
// both number locations are read.
type eventPayload struct {
	Number      int `json:"number"`
	PullRequest struct {
		Number int `json:"number"`
		Head   struct {
			SHA string `json:"sha"`
		} `json:"head"`
		Title string `json:"title"`
	} `json:"pull_request"`
	Issue struct {
		Number int `json:"number"`
	} `json:"issue"`
}

func runReview(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateAction(); err != nil {
		return err
	}

	// Logs go to stderr so stdout stays clean for dry-run output.
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	event, err := eventFromEnvironment()
	if err != nil {
		return err
	}

	clients := func(ctx context.Context, _ *core.ReviewEvent) (github.Client, error) {
		return github.NewPATClient(ctx, cfg.GitHubToken, log), nil
	}

	opts := []jobs.Option{jobs.WithDryRun(dryRun)}
	if workspace := os.Getenv("GITHUB_WORKSPACE"); workspace != "" {
		reader, err := gitutil.Open(workspace, log)
		if err != nil {
			log.Debug("workspace is not a usable git checkout, files will be downloaded", "path", workspace, "error", err)
		} else {
			opts = append(opts, jobs.WithLocalReader(reader))
		}

		repoCfg, err := config.LoadRepoConfig(workspace, cfg.RepoConfigPath)
		switch {
		case err == nil:
			opts = append(opts, jobs.WithRepoConfig(repoCfg))
		case errors.Is(err, config.ErrRepoConfigNotFound):
			log.Debug("no review settings in workspace, will look up the repository", "path", cfg.RepoConfigPath)
		default:
			log.Warn("failed to load review settings from workspace", "path", cfg.RepoConfigPath, "error", err)
		}
	}

	job := jobs.NewReviewJob(cfg, clients, analysis.NewRunner(log), log, opts...)

	body, err := job.ReviewPullRequest(ctx, event)
	if err != nil {
		return err
	}

	if dryRun {
		renderDryRun(event, body)
	}
	return nil
}

// eventFromEnvironment resolves the pull request to review from the standard
// GitHub Actions environment: GITHUB_REPOSITORY plus either an explicit
// GITHUB_PR_NUMBER or the event payload at GITHUB_EVENT_PATH.
func eventFromEnvironment() (*core.ReviewEvent, error) {
	repoFull := os.Getenv("GITHUB_REPOSITORY")
	owner, name, ok := strings.Cut(repoFull, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY must be set to owner/repo, got %q", repoFull)
	}

	event := &core.ReviewEvent{
		RepoOwner:    owner,
		RepoName:     name,
		RepoFullName: repoFull,
	}

	if raw := os.Getenv("GITHUB_PR_NUMBER"); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("GITHUB_PR_NUMBER is not a number: %q", raw)
		}
		event.PRNumber = number
		return event, nil
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil, fmt.Errorf("either GITHUB_PR_NUMBER or GITHUB_EVENT_PATH must be set")
	}
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var payload eventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	switch {
	case payload.PullRequest.Number > 0:
		event.PRNumber = payload.PullRequest.Number
	case payload.Number > 0:
		event.PRNumber = payload.Number
	case payload.Issue.Number > 0:
		event.PRNumber = payload.Issue.Number
	default:
		return nil, fmt.Errorf("event payload does not reference a pull request")
	}
	event.HeadSHA = payload.PullRequest.Head.SHA
	event.PRTitle = payload.PullRequest.Title
	return event, nil
}

// renderDryRun pretty-prints the comment that would have been posted.
func renderDryRun(event *core.ReviewEvent, body string) {
	titleColor.Printf("Review for %s#%d (dry run)\n", event.RepoFullName, event.PRNumber)
	dimColor.Println("nothing was posted to GitHub")
	fmt.Println()

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Println(body)
		return
	}
	rendered, err := renderer.Render(body)
	if err != nil {
		fmt.Println(body)
		return
	}
	fmt.Print(rendered)
}

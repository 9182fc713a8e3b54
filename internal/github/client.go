package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gh "github.com/cli/go-gh/v2"
	"golang.org/x/sync/errgroup"

	"github.com/five82/prlogs/internal/buildlog"
)

// Fetcher loads everything needed to show one pull request's builds.
// It is implemented by *Client; tests and the replay source provide others.
type Fetcher interface {
	FetchBuildLogs(ctx context.Context, number int) (Result, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Runner executes a gh command. The default is gh.ExecContext.
type Runner func(ctx context.Context, args ...string) (stdout, stderr bytes.Buffer, err error)

// ErrNoRuns is returned when the PR head commit has no workflow runs.
var ErrNoRuns = errors.New("no workflow runs for pull request head")

const (
	defaultConcurrency = 4
	runsPerPage        = 100
	requestTimeout     = 60 * time.Second
)

// Client talks to GitHub through the gh CLI.
type Client struct {
	repo        string
	run         Runner
	concurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the gh executor.
func WithRunner(r Runner) Option {
	return func(c *Client) { c.run = r }
}

// WithConcurrency bounds the number of job logs fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient builds a Client for repo (OWNER/REPO).
func NewClient(repo string, opts ...Option) (*Client, error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return nil, fmt.Errorf("repository required")
	}
	c := &Client{repo: repo, run: gh.ExecContext, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Repo returns the repository the client reads from.
func (c *Client) Repo() string { return c.repo }

// FetchBuildLogs resolves the PR head, lists the latest run of each
// workflow, and downloads every job log with bounded concurrency.
func (c *Client) FetchBuildLogs(ctx context.Context, number int) (Result, error) {
	if c == nil {
		return Result{}, fmt.Errorf("client is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	pr, err := c.fetchPullRequest(ctx, number)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		PR:       buildlog.PRContext{Number: pr.Number, Title: pr.Title, Author: pr.Author.Login},
		Metadata: make(map[buildlog.JobKey]buildlog.JobMetadata),
	}

	runs, err := c.fetchRuns(ctx, pr.HeadRefOid)
	if err != nil {
		return Result{}, err
	}
	if len(runs) == 0 {
		log.Info("no workflow runs", "pr", number, "sha", pr.HeadRefOid)
		return res, nil
	}

	jobsByRun := make([][]workflowJob, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, run := range runs {
		g.Go(func() error {
			jobs, err := c.fetchJobs(gctx, run.ID)
			if err != nil {
				return fmt.Errorf("jobs for run %q: %w", run.Name, err)
			}
			jobsByRun[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	type pending struct {
		workflow string
		job      workflowJob
	}
	var todo []pending
	seen := make(map[buildlog.JobKey]struct{})
	for i, run := range runs {
		for _, job := range jobsByRun[i] {
			key := buildlog.JobKey{Workflow: run.Name, Job: job.Name}
			if _, dup := seen[key]; dup {
				log.Warn("skipping duplicate job", "workflow", run.Name, "job", job.Name)
				continue
			}
			seen[key] = struct{}{}
			todo = append(todo, pending{workflow: run.Name, job: job})
		}
	}

	res.Jobs = make([]buildlog.JobLog, len(todo))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, p := range todo {
		res.Metadata[buildlog.JobKey{Workflow: p.workflow, Job: p.job.Name}] = p.job.metadata()
		g.Go(func() error {
			res.Jobs[i] = c.fetchJobLog(gctx, p.workflow, p.job)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Debug("fetched build logs", "pr", number, "runs", len(runs), "jobs", len(res.Jobs))
	return res, nil
}

func (c *Client) fetchPullRequest(ctx context.Context, number int) (pullRequest, error) {
	var pr pullRequest
	if number <= 0 {
		return pr, fmt.Errorf("invalid pull request number %d", number)
	}
	if err := c.getJSON(ctx, &pr, "pr", "view", strconv.Itoa(number), "-R", c.repo,
		"--json", "number,title,author,headRefOid"); err != nil {
		return pr, fmt.Errorf("fetch pull request #%d: %w", number, err)
	}
	return pr, nil
}

// fetchRuns lists runs for sha and keeps the newest run of each workflow.
func (c *Client) fetchRuns(ctx context.Context, sha string) ([]workflowRun, error) {
	if sha == "" {
		return nil, ErrNoRuns
	}
	var payload workflowRunsResponse
	path := fmt.Sprintf("repos/%s/actions/runs?head_sha=%s&per_page=%d", apiRepo(c.repo), sha, runsPerPage)
	if err := c.getJSON(ctx, &payload, "api", path); err != nil {
		return nil, fmt.Errorf("list workflow runs: %w", err)
	}

	latest := make(map[string]int)
	var runs []workflowRun
	for _, run := range payload.WorkflowRuns {
		i, ok := latest[run.Name]
		if !ok {
			latest[run.Name] = len(runs)
			runs = append(runs, run)
			continue
		}
		if run.CreatedAt.After(runs[i].CreatedAt) {
			runs[i] = run
		}
	}
	return runs, nil
}

func (c *Client) fetchJobs(ctx context.Context, runID int64) ([]workflowJob, error) {
	var payload workflowJobsResponse
	path := fmt.Sprintf("repos/%s/actions/runs/%d/jobs?per_page=%d", apiRepo(c.repo), runID, runsPerPage)
	if err := c.getJSON(ctx, &payload, "api", path); err != nil {
		return nil, err
	}
	return payload.Jobs, nil
}

// fetchJobLog never fails: when the log is unavailable (running or expired
// jobs) the step list from the jobs API is used without lines.
func (c *Client) fetchJobLog(ctx context.Context, workflow string, job workflowJob) buildlog.JobLog {
	rec := buildlog.JobLog{Workflow: workflow, Name: job.Name}
	failed := make(map[string]bool, len(job.Steps))
	for _, s := range job.Steps {
		failed[s.Name] = buildlog.ParseJobStatus(s.Status, s.Conclusion) == buildlog.StatusFailure
	}

	stdout, stderr, err := c.run(ctx, "run", "view", "-R", c.repo, "--log", "--job", strconv.FormatInt(job.ID, 10))
	if err != nil {
		log.Warn("job log unavailable", "workflow", workflow, "job", job.Name,
			"err", err, "stderr", strings.TrimSpace(stderr.String()))
		for _, s := range job.Steps {
			rec.Steps = append(rec.Steps, buildlog.StepLog{Name: s.Name, IsError: failed[s.Name]})
		}
		return rec
	}

	for _, chunk := range parseJobLog(stdout.String()) {
		rec.Steps = append(rec.Steps, buildlog.StepLog{
			Name:    chunk.name,
			Lines:   chunk.lines,
			IsError: failed[chunk.name],
		})
	}
	log.Debug("fetched job log", "workflow", workflow, "job", job.Name, "bytes", stdout.Len())
	return rec
}

func (c *Client) getJSON(ctx context.Context, dest any, args ...string) error {
	stdout, stderr, err := c.run(ctx, args...)
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("gh %s: %s: %w", args[0], msg, err)
		}
		return fmt.Errorf("gh %s: %w", args[0], err)
	}
	if err := json.Unmarshal(stdout.Bytes(), dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiRepo strips a host prefix; gh api picks the host from GH_HOST.
func apiRepo(repo string) string {
	parts := strings.Split(repo, "/")
	if len(parts) == 3 {
		return parts[1] + "/" + parts[2]
	}
	return repo
}

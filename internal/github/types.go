package github

import (
	"time"

	"github.com/five82/prlogs/internal/buildlog"
)

// Result is everything one fetch produced for a pull request.
type Result struct {
	PR       buildlog.PRContext
	Jobs     []buildlog.JobLog
	Metadata map[buildlog.JobKey]buildlog.JobMetadata
}

// Clone returns a deep copy; Store snapshots hand these out to the UI.
func (r Result) Clone() Result {
	out := Result{PR: r.PR}
	if r.Jobs != nil {
		out.Jobs = make([]buildlog.JobLog, len(r.Jobs))
		for i, j := range r.Jobs {
			steps := make([]buildlog.StepLog, len(j.Steps))
			for si, s := range j.Steps {
				s.Lines = append([]string(nil), s.Lines...)
				steps[si] = s
			}
			j.Steps = steps
			out.Jobs[i] = j
		}
	}
	if r.Metadata != nil {
		out.Metadata = make(map[buildlog.JobKey]buildlog.JobMetadata, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// pullRequest is the subset of `gh pr view --json` we read.
type pullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	HeadRefOid string `json:"headRefOid"`
}

type workflowRun struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	HTMLURL    string    `json:"html_url"`
	RunAttempt int       `json:"run_attempt"`
	CreatedAt  time.Time `json:"created_at"`
}

type workflowRunsResponse struct {
	TotalCount   int           `json:"total_count"`
	WorkflowRuns []workflowRun `json:"workflow_runs"`
}

type jobStep struct {
	Name       string `json:"name"`
	Number     int    `json:"number"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

type workflowJob struct {
	ID          int64      `json:"id"`
	RunID       int64      `json:"run_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Conclusion  string     `json:"conclusion"`
	HTMLURL     string     `json:"html_url"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Steps       []jobStep  `json:"steps"`
}

func (j workflowJob) metadata() buildlog.JobMetadata {
	md := buildlog.JobMetadata{
		Status: buildlog.ParseJobStatus(j.Status, j.Conclusion),
		URL:    j.HTMLURL,
	}
	if j.StartedAt != nil && j.CompletedAt != nil && !j.StartedAt.IsZero() && !j.CompletedAt.IsZero() {
		md.Duration = j.CompletedAt.Sub(*j.StartedAt)
		md.HasDuration = true
	}
	return md
}

type workflowJobsResponse struct {
	TotalCount int           `json:"total_count"`
	Jobs       []workflowJob `json:"jobs"`
}

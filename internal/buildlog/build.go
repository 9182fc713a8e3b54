package buildlog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/five82/prlogs/internal/logtail"
)

// ErrStructural marks input that cannot form a tree.
var ErrStructural = errors.New("structural violation")

// StructuralError describes which job record broke construction.
type StructuralError struct {
	Index  int // position in the input slice
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("job %d: %s", e.Index, e.Reason)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// StepLog is the raw record of one step as delivered by a fetcher.
type StepLog struct {
	Name    string
	Lines   []string
	IsError bool
}

// JobLog is the raw record of one job.
type JobLog struct {
	Workflow string
	Name     string
	Steps    []StepLog
}

// Key returns the metadata key of the record.
func (j JobLog) Key() JobKey {
	return JobKey{Workflow: j.Workflow, Job: j.Name}
}

// BuildOptions tune tree construction.
type BuildOptions struct {
	// SortFailedFirst orders failing workflows first, then by name, and jobs by name.
	// Without it input order is kept.
	SortFailedFirst bool
	// DropEmptySystemJobs skips "/system" jobs that carry no log lines.
	DropEmptySystemJobs bool
	// MaxLinesPerStep keeps only the trailing lines of each step; 0 keeps all.
	MaxLinesPerStep int
}

// Build constructs an immutable Tree. Aggregates are computed bottom-up.
// A structural violation returns an error wrapping ErrStructural and no tree.
func Build(jobs []JobLog, pr PRContext, opts BuildOptions) (*Tree, error) {
	seen := make(map[JobKey]struct{}, len(jobs))
	byName := make(map[string]int)
	tree := &Tree{PR: pr}

	for i, rec := range jobs {
		if strings.TrimSpace(rec.Workflow) == "" {
			return nil, &StructuralError{Index: i, Reason: "missing workflow name"}
		}
		if strings.TrimSpace(rec.Name) == "" {
			return nil, &StructuralError{Index: i, Reason: "missing job name"}
		}
		key := rec.Key()
		if _, dup := seen[key]; dup {
			return nil, &StructuralError{Index: i, Reason: fmt.Sprintf("duplicate job %q in workflow %q", rec.Name, rec.Workflow)}
		}
		seen[key] = struct{}{}

		if opts.DropEmptySystemJobs && strings.Contains(rec.Name, "/system") && !hasLines(rec) {
			continue
		}

		wi, ok := byName[rec.Workflow]
		if !ok {
			wi = len(tree.Workflows)
			byName[rec.Workflow] = wi
			tree.Workflows = append(tree.Workflows, Workflow{Name: rec.Workflow})
		}
		tree.Workflows[wi].Jobs = append(tree.Workflows[wi].Jobs, buildJob(rec, opts.MaxLinesPerStep))
	}

	for i := range tree.Workflows {
		w := &tree.Workflows[i]
		for _, j := range w.Jobs {
			w.TotalErrors += j.ErrorCount
			if j.ErrorCount > 0 {
				w.HasFailures = true
			}
		}
	}

	if opts.SortFailedFirst {
		sortTree(tree)
	}
	return tree, nil
}

func buildJob(rec JobLog, maxLines int) Job {
	job := Job{Name: rec.Name, Workflow: rec.Workflow, Steps: make([]Step, 0, len(rec.Steps))}
	for _, sl := range rec.Steps {
		step := buildStep(sl, maxLines)
		job.ErrorCount += step.ErrorCount
		job.Steps = append(job.Steps, step)
	}
	return job
}

// buildStep counts errors over every line before trimming to maxLines.
func buildStep(sl StepLog, maxLines int) Step {
	ring := logtail.NewRing[Line](maxLines)
	errs := 0
	for _, raw := range sl.Lines {
		line := ParseLine(raw)
		if line.Severity == SeverityError {
			errs++
		}
		ring.Push(line)
	}
	if errs == 0 && sl.IsError {
		errs = 1
	}
	return Step{
		Name:       sl.Name,
		Lines:      ring.Values(),
		IsError:    sl.IsError || errs > 0,
		ErrorCount: errs,
	}
}

func hasLines(rec JobLog) bool {
	for _, s := range rec.Steps {
		if len(s.Lines) > 0 {
			return true
		}
	}
	return false
}

func sortTree(t *Tree) {
	for i := range t.Workflows {
		jobs := t.Workflows[i].Jobs
		sort.SliceStable(jobs, func(a, b int) bool {
			return jobs[a].Name < jobs[b].Name
		})
	}
	sort.SliceStable(t.Workflows, func(a, b int) bool {
		wa, wb := t.Workflows[a], t.Workflows[b]
		if wa.HasFailures != wb.HasFailures {
			return wa.HasFailures
		}
		return wa.Name < wb.Name
	})
}

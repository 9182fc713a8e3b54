package buildlog

import "fmt"

// PRContext identifies the pull request whose builds are shown.
type PRContext struct {
	Number int
	Title  string
	Author string
}

// Severity classifies a raw log line.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "none"
	}
}

// Line is a single raw log line of a step.
type Line struct {
	Text      string
	Timestamp string
	Severity  Severity
}

// Step groups the log lines a job step produced.
type Step struct {
	Name       string
	Lines      []Line
	IsError    bool
	ErrorCount int
}

// Job is one CI job of a workflow.
type Job struct {
	Name       string
	Workflow   string
	Steps      []Step
	ErrorCount int
}

// Key returns the metadata key of the job.
func (j Job) Key() JobKey {
	return JobKey{Workflow: j.Workflow, Job: j.Name}
}

// Workflow groups jobs that ran under the same workflow name.
type Workflow struct {
	Name        string
	Jobs        []Job
	HasFailures bool
	TotalErrors int
}

// Tree is the immutable workflow → job → step → line hierarchy of a pull
// request's builds. It is never mutated after Build; reloads replace it.
type Tree struct {
	PR        PRContext
	Workflows []Workflow
}

// NodeKind tags which level of the tree a Node describes.
type NodeKind int

const (
	KindWorkflow NodeKind = iota + 1
	KindJob
	KindStep
	KindLine
)

func (k NodeKind) String() string {
	switch k {
	case KindWorkflow:
		return "workflow"
	case KindJob:
		return "job"
	case KindStep:
		return "step"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Node is a read-only view of one tree node.
type Node struct {
	Kind       NodeKind
	Path       Path
	Name       string
	Children   int
	ErrorCount int
	HasError   bool
	Severity   Severity
	Timestamp  string
	Key        JobKey // set for jobs, steps and lines
}

// Empty reports whether the tree has no workflows.
func (t *Tree) Empty() bool {
	return t == nil || len(t.Workflows) == 0
}

// ChildCount returns how many children the node at p has. The root (nil path)
// has one child per workflow. Unknown paths have none.
func (t *Tree) ChildCount(p Path) int {
	if t == nil {
		return 0
	}
	switch len(p) {
	case 0:
		return len(t.Workflows)
	case DepthWorkflow:
		if w := t.workflow(p[0]); w != nil {
			return len(w.Jobs)
		}
	case DepthJob:
		if j := t.job(p[0], p[1]); j != nil {
			return len(j.Steps)
		}
	case DepthStep:
		if s := t.step(p[0], p[1], p[2]); s != nil {
			return len(s.Lines)
		}
	}
	return 0
}

// Valid reports whether p addresses an existing node.
func (t *Tree) Valid(p Path) bool {
	_, ok := t.Lookup(p)
	return ok
}

// Lookup resolves p to a Node view.
func (t *Tree) Lookup(p Path) (Node, bool) {
	if t == nil || len(p) == 0 || len(p) > DepthLine {
		return Node{}, false
	}
	w := t.workflow(p[0])
	if w == nil {
		return Node{}, false
	}
	if len(p) == DepthWorkflow {
		return Node{
			Kind:       KindWorkflow,
			Path:       p,
			Name:       w.Name,
			Children:   len(w.Jobs),
			ErrorCount: w.TotalErrors,
			HasError:   w.HasFailures,
		}, true
	}
	j := t.job(p[0], p[1])
	if j == nil {
		return Node{}, false
	}
	if len(p) == DepthJob {
		return Node{
			Kind:       KindJob,
			Path:       p,
			Name:       j.Name,
			Children:   len(j.Steps),
			ErrorCount: j.ErrorCount,
			HasError:   j.ErrorCount > 0,
			Key:        j.Key(),
		}, true
	}
	s := t.step(p[0], p[1], p[2])
	if s == nil {
		return Node{}, false
	}
	if len(p) == DepthStep {
		return Node{
			Kind:       KindStep,
			Path:       p,
			Name:       s.Name,
			Children:   len(s.Lines),
			ErrorCount: s.ErrorCount,
			HasError:   s.IsError,
			Key:        j.Key(),
		}, true
	}
	if p[3] < 0 || p[3] >= len(s.Lines) {
		return Node{}, false
	}
	line := s.Lines[p[3]]
	return Node{
		Kind:      KindLine,
		Path:      p,
		Name:      line.Text,
		HasError:  line.Severity == SeverityError,
		Severity:  line.Severity,
		Timestamp: line.Timestamp,
		Key:       j.Key(),
	}, true
}

// MustLookup is Lookup for callers that hold the invariant that p came from
// the current tree. A miss is a programming error.
func (t *Tree) MustLookup(p Path) Node {
	n, ok := t.Lookup(p)
	if !ok {
		panic(fmt.Sprintf("buildlog: path %s does not resolve in tree", p))
	}
	return n
}

// Counts summarises the size of the tree.
type Counts struct {
	Workflows int
	Jobs      int
	Steps     int
	Lines     int
	Errors    int
}

// Counts walks the structural levels of the tree. Lines are counted by slice
// length, not iterated.
func (t *Tree) Counts() Counts {
	var c Counts
	if t == nil {
		return c
	}
	c.Workflows = len(t.Workflows)
	for _, w := range t.Workflows {
		c.Jobs += len(w.Jobs)
		c.Errors += w.TotalErrors
		for _, j := range w.Jobs {
			c.Steps += len(j.Steps)
			for _, s := range j.Steps {
				c.Lines += len(s.Lines)
			}
		}
	}
	return c
}

func (t *Tree) workflow(w int) *Workflow {
	if w < 0 || w >= len(t.Workflows) {
		return nil
	}
	return &t.Workflows[w]
}

func (t *Tree) job(w, j int) *Job {
	wf := t.workflow(w)
	if wf == nil || j < 0 || j >= len(wf.Jobs) {
		return nil
	}
	return &wf.Jobs[j]
}

func (t *Tree) step(w, j, s int) *Step {
	job := t.job(w, j)
	if job == nil || s < 0 || s >= len(job.Steps) {
		return nil
	}
	return &job.Steps[s]
}

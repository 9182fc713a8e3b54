// Package replay reads and writes build-log snapshot files, so a pull
// request's logs can be inspected offline or shared as a single YAML file.
package replay

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/five82/prlogs/internal/buildlog"
	"github.com/five82/prlogs/internal/github"
	"github.com/five82/prlogs/internal/logtail"
)

// formatVersion is written into every snapshot.
const formatVersion = 1

// File is the on-disk snapshot format.
type File struct {
	Version int    `yaml:"version"`
	PR      PR     `yaml:"pr"`
	Jobs    []Job  `yaml:"jobs"`
	Saved   string `yaml:"saved,omitempty"`
}

// PR identifies the pull request of a snapshot.
type PR struct {
	Number int    `yaml:"number"`
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
}

// Job is one job with its metadata.
type Job struct {
	Workflow string `yaml:"workflow"`
	Name     string `yaml:"name"`
	Status   string `yaml:"status,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	URL      string `yaml:"url,omitempty"`
	Steps    []Step `yaml:"steps,omitempty"`
}

// Step holds its lines inline, or points at a plain text file relative to
// the snapshot (log_file). Both may be set; file lines follow inline ones.
type Step struct {
	Name    string   `yaml:"name"`
	IsError bool     `yaml:"is_error,omitempty"`
	Lines   []string `yaml:"lines,omitempty"`
	LogFile string   `yaml:"log_file,omitempty"`
}

// Load reads a snapshot and converts it into a fetch result.
func Load(path string) (github.Result, error) {
	var f File
	if err := loadYAML(path, &f); err != nil {
		return github.Result{}, err
	}
	if f.Version > formatVersion {
		return github.Result{}, fmt.Errorf("snapshot %s: unsupported version %d", path, f.Version)
	}

	res := github.Result{
		PR:       buildlog.PRContext{Number: f.PR.Number, Title: f.PR.Title, Author: f.PR.Author},
		Jobs:     make([]buildlog.JobLog, 0, len(f.Jobs)),
		Metadata: make(map[buildlog.JobKey]buildlog.JobMetadata, len(f.Jobs)),
	}
	dir := filepath.Dir(path)
	for _, j := range f.Jobs {
		rec := buildlog.JobLog{Workflow: j.Workflow, Name: j.Name}
		for _, s := range j.Steps {
			lines := append([]string(nil), s.Lines...)
			if s.LogFile != "" {
				ref := s.LogFile
				if !filepath.IsAbs(ref) {
					ref = filepath.Join(dir, ref)
				}
				if _, err := os.Stat(ref); err != nil {
					return github.Result{}, fmt.Errorf("step %q of %s/%s: %w", s.Name, j.Workflow, j.Name, err)
				}
				more, err := logtail.Read(ref, 0)
				if err != nil {
					return github.Result{}, fmt.Errorf("step %q of %s/%s: %w", s.Name, j.Workflow, j.Name, err)
				}
				lines = append(lines, more...)
			}
			rec.Steps = append(rec.Steps, buildlog.StepLog{Name: s.Name, Lines: lines, IsError: s.IsError})
		}
		res.Jobs = append(res.Jobs, rec)

		md, err := j.metadata()
		if err != nil {
			return github.Result{}, fmt.Errorf("job %s/%s: %w", j.Workflow, j.Name, err)
		}
		res.Metadata[rec.Key()] = md
	}
	return res, nil
}

func (j Job) metadata() (buildlog.JobMetadata, error) {
	status := strings.ToLower(strings.TrimSpace(j.Status))
	md := buildlog.JobMetadata{
		Status: buildlog.ParseJobStatus(status, status),
		URL:    j.URL,
	}
	if d := strings.TrimSpace(j.Duration); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return md, fmt.Errorf("parse duration %q: %w", d, err)
		}
		md.Duration = parsed
		md.HasDuration = true
	}
	return md, nil
}

// Save writes res as a snapshot with all lines inline.
func Save(path string, res github.Result) error {
	f := File{
		Version: formatVersion,
		PR:      PR{Number: res.PR.Number, Title: res.PR.Title, Author: res.PR.Author},
		Saved:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, rec := range res.Jobs {
		j := Job{Workflow: rec.Workflow, Name: rec.Name}
		if md, ok := res.Metadata[rec.Key()]; ok {
			if md.Status != buildlog.StatusUnknown {
				j.Status = md.Status.String()
			}
			if md.HasDuration {
				j.Duration = md.Duration.String()
			}
			j.URL = md.URL
		}
		for _, s := range rec.Steps {
			j.Steps = append(j.Steps, Step{Name: s.Name, IsError: s.IsError, Lines: s.Lines})
		}
		f.Jobs = append(f.Jobs, j)
	}
	return saveYAML(path, f)
}

// Source serves a snapshot file as if it were fetched from GitHub.
type Source struct {
	path string
}

var _ github.Fetcher = (*Source)(nil)

// NewSource returns a Source reading path on every fetch.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the snapshot file.
func (s *Source) Path() string { return s.path }

// FetchBuildLogs re-reads the snapshot. The PR number is taken from the file.
func (s *Source) FetchBuildLogs(ctx context.Context, _ int) (github.Result, error) {
	if err := ctx.Err(); err != nil {
		return github.Result{}, err
	}
	return Load(s.path)
}

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return nil
}

func saveYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	// Write then rename so a watcher never sees a half-written file.
	tmp, err := os.CreateTemp(dir, ".prlogs-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

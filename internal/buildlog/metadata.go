package buildlog

import (
	"fmt"
	"time"
)

// JobKey identifies a job across reloads. Paths shift when a tree is
// rebuilt; workflow and job names do not.
type JobKey struct {
	Workflow string
	Job      string
}

// JobStatus is the execution outcome GitHub reports for a job.
type JobStatus int

const (
	StatusUnknown JobStatus = iota
	StatusSuccess
	StatusFailure
	StatusCancelled
	StatusSkipped
	StatusInProgress
)

// Icon returns the single-glyph marker for the status.
func (s JobStatus) Icon() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusFailure:
		return "✗"
	case StatusCancelled:
		return "⊘"
	case StatusSkipped:
		return "⊝"
	case StatusInProgress:
		return "⋯"
	default:
		return "?"
	}
}

func (s JobStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusCancelled:
		return "cancelled"
	case StatusSkipped:
		return "skipped"
	case StatusInProgress:
		return "in_progress"
	default:
		return "unknown"
	}
}

// ParseJobStatus maps GitHub status/conclusion strings onto a JobStatus.
// The conclusion wins once it is set.
func ParseJobStatus(status, conclusion string) JobStatus {
	switch conclusion {
	case "success":
		return StatusSuccess
	case "failure", "timed_out", "startup_failure", "action_required":
		return StatusFailure
	case "cancelled":
		return StatusCancelled
	case "skipped", "neutral":
		return StatusSkipped
	}
	switch status {
	case "in_progress", "queued", "waiting", "pending", "requested":
		return StatusInProgress
	case "success", "failure", "cancelled", "skipped", "unknown":
		return parseStatusName(status)
	}
	return StatusUnknown
}

func parseStatusName(name string) JobStatus {
	for s := StatusUnknown; s <= StatusInProgress; s++ {
		if s.String() == name {
			return s
		}
	}
	return StatusUnknown
}

// JobMetadata is side information about a job that arrives independently of
// its log content.
type JobMetadata struct {
	Status      JobStatus
	Duration    time.Duration
	HasDuration bool
	URL         string
}

// Metadata is the side table of job metadata. The zero value is ready to use.
type Metadata struct {
	byKey map[JobKey]JobMetadata
}

// NewMetadata copies entries into a fresh table.
func NewMetadata(entries map[JobKey]JobMetadata) Metadata {
	m := Metadata{byKey: make(map[JobKey]JobMetadata, len(entries))}
	for k, v := range entries {
		m.byKey[k] = v
	}
	return m
}

// Set stores or replaces the metadata of key.
func (m *Metadata) Set(key JobKey, md JobMetadata) {
	if m.byKey == nil {
		m.byKey = make(map[JobKey]JobMetadata)
	}
	m.byKey[key] = md
}

// Lookup returns the metadata of key.
func (m Metadata) Lookup(key JobKey) (JobMetadata, bool) {
	md, ok := m.byKey[key]
	return md, ok
}

// Len returns the number of entries.
func (m Metadata) Len() int { return len(m.byKey) }

// FormatDuration renders whole seconds as "Ns" below a minute and "Mm Ss" otherwise.
func FormatDuration(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}

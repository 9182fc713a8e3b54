package buildlog

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"ok", SeverityNone},
		{"error: something broke", SeverityError},
		{"main.go:3:1: Error: undefined: x", SeverityError},
		{"##[error]Process completed with exit code 1.", SeverityError},
		{"::error file=a.go::bad", SeverityError},
		{"\x1b[31merror:\x1b[0m red", SeverityError},
		{"##[warning]Node 16 is deprecated", SeverityWarning},
		{"  warning: unused variable", SeverityWarning},
		{"errors are fine without a colon", SeverityNone},
	}

	for _, tt := range tests {
		if got := Classify(tt.in); got != tt.want {
			t.Fatalf("Classify(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitTimestamp(t *testing.T) {
	ts, text := SplitTimestamp("2024-01-02T03:04:05Z hello")
	if ts != "2024-01-02T03:04:05Z" || text != "hello" {
		t.Fatalf("SplitTimestamp = %q, %q", ts, text)
	}

	ts, text = SplitTimestamp("no timestamp 2024-01-02T03:04:05Z")
	if ts != "" || text != "no timestamp 2024-01-02T03:04:05Z" {
		t.Fatalf("SplitTimestamp without prefix = %q, %q", ts, text)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{12 * time.Second, "12s"},
		{59*time.Second + 900*time.Millisecond, "59s"},
		{60 * time.Second, "1m 0s"},
		{95 * time.Second, "1m 35s"},
		{61 * time.Minute, "61m 0s"},
		{-5 * time.Second, "0s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseJobStatus(t *testing.T) {
	tests := []struct {
		status, conclusion string
		want               JobStatus
		icon               string
	}{
		{"completed", "success", StatusSuccess, "✓"},
		{"completed", "failure", StatusFailure, "✗"},
		{"completed", "timed_out", StatusFailure, "✗"},
		{"completed", "cancelled", StatusCancelled, "⊘"},
		{"completed", "skipped", StatusSkipped, "⊝"},
		{"in_progress", "", StatusInProgress, "⋯"},
		{"queued", "", StatusInProgress, "⋯"},
		{"failure", "", StatusFailure, "✗"},
		{"", "", StatusUnknown, "?"},
	}

	for _, tt := range tests {
		got := ParseJobStatus(tt.status, tt.conclusion)
		if got != tt.want {
			t.Fatalf("ParseJobStatus(%q, %q) = %v, want %v", tt.status, tt.conclusion, got, tt.want)
		}
		if got.Icon() != tt.icon {
			t.Fatalf("%v icon = %q, want %q", got, got.Icon(), tt.icon)
		}
	}
}

func TestMetadata_ZeroValueAndSetBeforeTree(t *testing.T) {
	var m Metadata
	if _, ok := m.Lookup(JobKey{Workflow: "ci", Job: "x"}); ok {
		t.Fatalf("zero metadata should be empty")
	}

	// Metadata for a job that does not exist yet is kept and applied later.
	key := JobKey{Workflow: "ci", Job: "build"}
	m.Set(key, JobMetadata{Status: StatusSkipped})
	if md, ok := m.Lookup(key); !ok || md.Status != StatusSkipped || m.Len() != 1 {
		t.Fatalf("Lookup = %+v, %v", md, ok)
	}
}

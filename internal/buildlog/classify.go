package buildlog

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// GitHub runner lines start with an RFC 3339 timestamp carrying 7 fractional digits.
var timestampPrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z)\s?`)

// SplitTimestamp separates a leading runner timestamp from the line text.
func SplitTimestamp(raw string) (timestamp, text string) {
	loc := timestampPrefix.FindStringSubmatchIndex(raw)
	if loc == nil {
		return "", raw
	}
	return raw[loc[2]:loc[3]], raw[loc[1]:]
}

// Classify returns the severity of a log line. Escape sequences are ignored.
func Classify(text string) Severity {
	plain := strings.TrimSpace(ansi.Strip(text))
	switch {
	case strings.HasPrefix(plain, "##[error]"), strings.HasPrefix(plain, "::error"):
		return SeverityError
	case strings.HasPrefix(plain, "##[warning]"), strings.HasPrefix(plain, "::warning"):
		return SeverityWarning
	}
	lower := strings.ToLower(plain)
	switch {
	case strings.Contains(lower, "error:"):
		return SeverityError
	case strings.Contains(lower, "warning:"):
		return SeverityWarning
	}
	return SeverityNone
}

// ParseLine splits and classifies a raw runner line.
func ParseLine(raw string) Line {
	ts, text := SplitTimestamp(raw)
	return Line{Text: text, Timestamp: ts, Severity: Classify(text)}
}

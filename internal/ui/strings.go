package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens a string to limit cells, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return ansi.Truncate(value, limit, "…")
}

// truncateMiddle keeps both ends of value, which suits file paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return ansi.Truncate(value, limit, "")
	}
	width := ansi.StringWidth(value)
	head := (limit - 1) / 2
	tail := limit - 1 - head
	return ansi.Cut(value, 0, head) + "…" + ansi.Cut(value, width-tail, width)
}

// shiftLeft drops the first n cells of value.
func shiftLeft(value string, n int) string {
	if n <= 0 {
		return value
	}
	width := ansi.StringWidth(value)
	if n >= width {
		return ""
	}
	return ansi.Cut(value, n, width)
}

// pluralize returns "1 job" or "N jobs".
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

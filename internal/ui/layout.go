package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// author and the status bar drops the key help.
	LayoutCompactWidth = 80
)

// Fixed rows around the log tree: header, hint bar and status bar.
const chromeRows = 3

// HorizontalScrollStep is how many columns h/l shift log lines.
const HorizontalScrollStep = 8

// Timing constants.
const (
	// DefaultUIInterval is how often the UI checks the store for new results.
	DefaultUIInterval = time.Second
)

// bodyHeight returns the rows available to the log tree.
func (m Model) bodyHeight() int {
	return max(0, m.height-chromeRows)
}

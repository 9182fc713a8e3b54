package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/prlogs/internal/buildlog"
)

const emptyStateText = "No build logs found"

// prContext returns the pull request being shown, if any is known yet.
func (m Model) prContext() (buildlog.PRContext, bool) {
	if m.panel != nil {
		return m.panel.PR(), true
	}
	if m.snapshot.HasResult {
		return m.snapshot.Result.PR, true
	}
	return buildlog.PRContext{}, false
}

// renderBody renders the log tree, or a placeholder while there is none.
func (m Model) renderBody() string {
	height := m.bodyHeight()
	if height == 0 {
		return ""
	}
	styles := m.theme.Styles()

	var lines []string
	switch {
	case m.panel == nil && m.buildErr != nil:
		lines = []string{styles.DangerText.Render("Could not build log tree: " + m.buildErr.Error())}
	case m.panel == nil && m.snapshot.LastError != nil:
		lines = []string{
			styles.DangerText.Render("Failed to load build logs"),
			styles.MutedText.Render(truncate(m.snapshot.LastError.Error(), m.width)),
			styles.FaintText.Render("Press r to retry"),
		}
	case m.panel == nil:
		lines = []string{m.spinner.View() + " " + styles.MutedText.Render("Loading build logs...")}
	case m.panel.Tree().Empty():
		lines = []string{styles.MutedText.Render(emptyStateText)}
	default:
		rows, _ := m.panel.RenderRows(height)
		lines = make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, m.renderRow(r, styles))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(lines, "\n"))
}

// renderRow styles a formatted row to the full width.
func (m Model) renderRow(r buildlog.Row, styles Styles) string {
	text := formatRow(r, m.showTimestamps, m.hscroll)
	text = ansi.Truncate(text, m.width, "…")
	style := styles.Row(r.Style)
	if r.Style == buildlog.StyleSelected {
		return style.Width(m.width).Render(text)
	}
	return style.Render(text)
}

// formatRow lays a row out as plain text:
//
//	<indent><expander> <status> <text> <errors> <duration>
//
// Log lines are shifted left by hscroll cells and prefixed with their
// timestamp when showTimestamps is set.
func formatRow(r buildlog.Row, showTimestamps bool, hscroll int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.Indent))

	expander := r.Expander
	if expander == "" {
		expander = " "
	}
	b.WriteString(expander)
	b.WriteString(" ")

	if r.Status != "" {
		b.WriteString(r.Status)
		b.WriteString(" ")
	}

	text := ansi.Strip(r.Text)
	if r.Kind == buildlog.KindLine {
		if showTimestamps && r.Timestamp != "" {
			text = r.Timestamp + " " + text
		}
		text = shiftLeft(text, hscroll)
	}
	b.WriteString(text)

	if r.Errors != "" {
		b.WriteString(" ")
		b.WriteString(r.Errors)
	}
	if r.Duration != "" {
		b.WriteString(" ")
		b.WriteString(r.Duration)
	}
	return b.String()
}

package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderStatusBar renders tree counts, cursor position, fetch state and
// the short key help.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if m.panel != nil {
		s := m.panel.Summary()
		parts = append(parts, bg.Render(
			pluralize(s.Workflows, "workflow")+" · "+pluralize(s.Jobs, "job"), styles.MutedText))
		if s.Errors > 0 {
			parts = append(parts, bg.Render(
				fmt.Sprintf("%s in %s", pluralize(s.Errors, "error"), pluralize(s.FailedJobs, "job")), styles.DangerText))
		}
		if s.Visible > 0 {
			parts = append(parts, bg.Render(fmt.Sprintf("%d/%d", s.CursorIndex+1, s.Visible), styles.Text))
		}
	}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bg.Render(m.spinner.View()+" loading", styles.AccentText))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("offline", styles.DangerText))
	case m.snapshot.LastError != nil && m.panel != nil:
		parts = append(parts, bg.Render("refresh failed", styles.WarningText))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, bg.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	if m.panel != nil && m.buildErr != nil {
		parts = append(parts, bg.Render("bad update ignored", styles.WarningText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.WarningText))
	}
	if m.showTimestamps {
		parts = append(parts, bg.Render("timestamps", styles.FaintText))
	}
	if m.hscroll > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("→%d", m.hscroll), styles.FaintText))
	}

	left := bg.Join(parts, 2)
	right := ""
	if m.width >= LayoutCompactWidth {
		right = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	inner := max(0, m.width-2)
	if lipgloss.Width(left) > inner {
		left = ansi.Truncate(left, inner, "")
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right, gap = "", max(0, inner-lipgloss.Width(left))
	}
	return styles.Footer.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

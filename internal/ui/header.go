package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderHint())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderHeader renders the PR card: logo, number and title, author and
// where the logs come from.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("prlogs", styles.Logo)}

	pr, ok := m.prContext()
	if ok {
		title := fmt.Sprintf("#%d", pr.Number)
		if pr.Title != "" {
			title += " " + pr.Title
		}
		parts = append(parts, bg.Render(truncate(title, max(10, m.width/2)), styles.Text.Bold(true)))
		if pr.Author != "" && m.width >= LayoutCompactWidth {
			parts = append(parts, bg.Render("by "+pr.Author, styles.MutedText))
		}
	} else {
		parts = append(parts, bg.Render("Connecting to GitHub...", styles.WarningText.Bold(true)))
	}

	left := bg.Join(parts, 2)
	right := ""
	if m.source != "" && m.width >= LayoutCompactWidth {
		right = bg.Render(truncateMiddle(m.source, 40), styles.FaintText)
	}

	// Header padding is one cell on each side.
	inner := max(0, m.width-2)
	if lipgloss.Width(left) > inner {
		left = ansi.Truncate(left, inner, "")
	}
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right, gap = "", max(0, inner-lipgloss.Width(left))
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// hintText is the key hint shown under the header.
func hintText(number int) string {
	if number <= 0 {
		return " Build Logs | j/k: navigate, Enter: toggle, n: next error, x: close "
	}
	return fmt.Sprintf(" Build Logs - PR #%d | j/k: navigate, Enter: toggle, n: next error, x: close ", number)
}

func (m Model) renderHint() string {
	pr, _ := m.prContext()
	styles := m.theme.Styles()
	return styles.Hint.Width(m.width).Render(ansi.Truncate(hintText(pr.Number), m.width, "…"))
}

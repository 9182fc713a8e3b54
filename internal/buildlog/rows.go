package buildlog

import "fmt"

// Style is the presentation category of a row. The UI maps each category
// onto theme colours.
type Style int

const (
	StyleNormal Style = iota
	StyleError
	StyleWarning
	StyleMuted
	StyleSelected
)

func (s Style) String() string {
	switch s {
	case StyleError:
		return "error"
	case StyleWarning:
		return "warning"
	case StyleMuted:
		return "muted"
	case StyleSelected:
		return "selected"
	default:
		return "normal"
	}
}

// Expander glyphs.
const (
	GlyphExpanded  = "▼"
	GlyphCollapsed = "▶"
)

// Row is one fully described display row.
type Row struct {
	Path      Path
	Kind      NodeKind
	Indent    int
	Expander  string
	Status    string
	Text      string
	Timestamp string
	Errors    string
	Duration  string
	Severity  Severity
	HasError  bool
	Style     Style
}

// Present describes the rows of visible that fall inside w.
func Present(t *Tree, e Expansion, md Metadata, cursor Path, visible []Path, w Window) []Row {
	start, end := w.Bounds(len(visible))
	rows := make([]Row, 0, end-start)
	for _, p := range visible[start:end] {
		rows = append(rows, PresentRow(t, e, md, cursor, p))
	}
	return rows
}

// PresentRow describes a single path. It panics when p does not resolve in t.
func PresentRow(t *Tree, e Expansion, md Metadata, cursor Path, p Path) Row {
	n := t.MustLookup(p)
	row := Row{
		Path:      p,
		Kind:      n.Kind,
		Indent:    len(p) - 1,
		Text:      n.Name,
		Timestamp: n.Timestamp,
		Severity:  n.Severity,
		HasError:  n.HasError,
	}
	if n.Children > 0 {
		row.Expander = GlyphCollapsed
		if e.IsExpanded(p) {
			row.Expander = GlyphExpanded
		}
	}

	meta, hasMeta := JobMetadata{}, false
	if n.Kind == KindJob {
		meta, hasMeta = md.Lookup(n.Key)
	}

	switch {
	case n.Kind == KindLine:
	case n.HasError:
		row.Status = StatusFailure.Icon()
	case hasMeta:
		row.Status = meta.Status.Icon()
	default:
		row.Status = StatusSuccess.Icon()
	}

	if n.Kind != KindLine && n.ErrorCount > 0 {
		row.Errors = errorSuffix(n.ErrorCount)
	}
	if hasMeta && meta.HasDuration {
		row.Duration = FormatDuration(meta.Duration)
	}

	switch {
	case cursor.Equal(p):
		row.Style = StyleSelected
	case n.HasError:
		row.Style = StyleError
	case n.Kind == KindLine && n.Severity == SeverityWarning:
		row.Style = StyleWarning
	case hasMeta && (meta.Status == StatusSkipped || meta.Status == StatusCancelled):
		row.Style = StyleMuted
	}
	return row
}

func errorSuffix(n int) string {
	if n == 1 {
		return "(1 error)"
	}
	return fmt.Sprintf("(%d errors)", n)
}

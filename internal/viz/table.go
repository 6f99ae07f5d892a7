package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/fxmath/internal/batch"
)

func formatDiff(e batch.Entry) string {
	switch {
	case e.Err != nil:
		return "-"
	case math.IsInf(e.Diff, 0):
		return "inf"
	}
	return fmt.Sprintf("%.3e", e.Diff)
}

func formatReference(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.8f", v)
}

func status(e batch.Entry) string {
	switch {
	case e.Err != nil && e.Pass:
		return "domain"
	case e.Pass && e.Overflow:
		return "ok (ovf)"
	case e.Pass:
		return "ok"
	case e.Err != nil:
		return "error"
	}
	return "FAIL"
}

// ReportRows returns the plain cells of a batch report.
func ReportRows(r *batch.Report) [][]string {
	rows := make([][]string, len(r.Entries))
	for i, e := range r.Entries {
		value := fmt.Sprintf("%.8f", e.Value)
		if e.Err != nil {
			value = e.Err.Error()
		}
		rows[i] = []string{e.Name, value, formatReference(e.Reference), formatDiff(e), status(e)}
	}
	return rows
}

// Report renders a batch report as a table followed by a summary line.
func Report(r *batch.Report) string {
	st := Current()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.Border).
		Headers("function", "result", "reference", "|diff|", "status").
		Rows(ReportRows(r)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			cell := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				return cell.Foreground(CurrentTheme.Primary)
			}
			if row >= 0 && row < len(r.Entries) && !r.Entries[row].Pass {
				return cell.Inherit(st.Fail)
			}
			return cell
		})

	var b strings.Builder
	b.WriteString(st.Title.Render(fmt.Sprintf("%s  x = %g  N = %d  base = %g",
		r.Format.Name, r.Input, r.Options.Iterations, r.Options.Base)))
	b.WriteByte('\n')
	b.WriteString(t.Render())
	b.WriteByte('\n')
	b.WriteString(Summary(r))
	return b.String()
}

func Summary(r *batch.Report) string {
	st := Current()
	total := len(r.Entries)
	passed := total - r.Failing
	line := fmt.Sprintf("%d/%d within %g ", passed, total, r.Options.Threshold)
	if r.Passed() {
		return st.Pass.Render(line) + PassBar(passed, total, 20)
	}
	return st.Fail.Render(line) + PassBar(passed, total, 20)
}

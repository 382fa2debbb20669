package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline-dev/ledgerline/internal/aggregate"
	"github.com/ledgerline-dev/ledgerline/internal/template"
	"github.com/ledgerline-dev/ledgerline/internal/validate"
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// renderChecks formats the validation report, one line per check.
func renderChecks(results []validate.CheckResult) string {
	var buf strings.Builder
	buf.WriteString(titleStyle.Render("Checks"))
	buf.WriteByte('\n')

	for _, r := range results {
		var status string
		switch {
		case r.Skipped:
			status = noteStyle.Render("skip")
		case r.Passed:
			status = passStyle.Render("pass")
		case r.Advisory:
			status = noteStyle.Render("note")
		default:
			status = failStyle.Render("FAIL")
		}
		fmt.Fprintf(&buf, "  %s  %-20s", status, r.ID)
		if !r.Delta.IsZero() {
			fmt.Fprintf(&buf, "  delta %s", r.Delta)
		}
		buf.WriteByte('\n')
		if r.Detail != "" && !r.Passed {
			fmt.Fprintf(&buf, "        %s\n", noteStyle.Render(r.Detail))
		}
		for _, row := range r.Rows {
			fmt.Fprintf(&buf, "        %s\n", noteStyle.Render(row))
		}
	}
	return buf.String()
}

// renderLines formats the computed statement, one line per template row,
// grouped by statement in template order.
func renderLines(tpl *template.Template, res *aggregate.Result) string {
	var buf strings.Builder

	var current string
	for _, ln := range tpl.Lines() {
		if string(ln.Statement) != current {
			current = string(ln.Statement)
			buf.WriteString(titleStyle.Render(strings.ReplaceAll(current, "_", " ")))
			buf.WriteByte('\n')
		}
		lv, _ := res.Value(ln.ID)
		label := ln.Label
		if label == "" {
			label = ln.ID
		}
		fmt.Fprintf(&buf, "  %-4s %-40s %18s\n", ln.Code, label, lv.Value.StringFixed(2))
	}
	return buf.String()
}

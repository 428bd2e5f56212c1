package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"context-variants/internal/cli/config"
	"context-variants/internal/diagnostic"
	"context-variants/internal/session"
)

// baseContext labels the base record rows in the table view.
const baseContext = "(base)"

// render writes the tables in the given output format.
func render(w io.Writer, format string, tables []*session.Table) error {
	switch format {
	case config.OutputYAML:
		data, err := session.ExportYAML(tables...)
		if err != nil {
			return fmt.Errorf("exporting yaml: %w", err)
		}

		_, err = w.Write(data)

		return err
	case config.OutputJSON:
		data, err := session.ExportJSON(tables...)
		if err != nil {
			return fmt.Errorf("exporting json: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		for i, t := range tables {
			if i > 0 {
				_, _ = fmt.Fprintln(w)
			}

			renderTable(w, t)
		}

		return nil
	}
}

// renderTable writes one resolved table as a box-drawn grid, one row per
// field and one block per context.
func renderTable(w io.Writer, t *session.Table) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s", t.Entity+t.TypeParams)
	tw.AppendHeader(table.Row{"Context", "Output", "Field", "Classification", "Type", "Attrs"})

	for i, ct := range t.Contexts {
		if i > 0 {
			tw.AppendSeparator()
		}

		if len(ct.Fields) == 0 {
			tw.AppendRow(table.Row{ct.Context, ct.Name, "", "", "", ""})
			continue
		}

		for _, f := range ct.Fields {
			tw.AppendRow(table.Row{ct.Context, ct.Name, f.Field, f.Classification.String(), f.Type, strings.Join(f.Attrs.Strings(), " ")})
		}
	}

	if t.BuildBase {
		tw.AppendSeparator()

		for _, b := range t.Base {
			tw.AppendRow(table.Row{baseContext, t.Entity, b.Field, "", b.Type, strings.Join(b.Attrs.Strings(), " ")})
		}
	}

	tw.Render()
}

// renderDiagnostic writes one diagnostic prefixed by its styled severity.
func renderDiagnostic(w io.Writer, s *Styles, d diagnostic.Diagnostic) {
	_, _ = fmt.Fprintf(w, "%s %s\n", severityStyle(s, d.Severity).Render(d.Severity.String()), d.String())
}

// renderOutcome writes the diagnostics of one resolution: every error and
// warning of a failed validation, the error of any other failure, and the
// warnings of a success.
func renderOutcome(w io.Writer, s *Styles, o Outcome) {
	if o.Err == nil {
		for _, d := range o.Table.Warnings {
			renderDiagnostic(w, s, d)
		}

		return
	}

	var verr *session.ValidationError
	if errors.As(o.Err, &verr) {
		for _, d := range verr.Diagnostics.Errors {
			renderDiagnostic(w, s, d)
		}

		for _, d := range verr.Diagnostics.Warnings {
			renderDiagnostic(w, s, d)
		}

		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", s.Error.Render(diagnostic.DiagnosticError.String()), o.Err)
}

// renderSummary writes the closing line of a run.
func renderSummary(w io.Writer, s *Styles, outcomes Outcomes) {
	failed := outcomes.Failed()
	if failed == 0 {
		_, _ = fmt.Fprintf(w, "%s %d %s resolved\n", s.Success.Render("ok"), len(outcomes), plural(len(outcomes), "entity", "entities"))
		return
	}

	_, _ = fmt.Fprintf(w, "%s %d of %d %s failed\n", s.Error.Render("fail"), failed, len(outcomes), plural(len(outcomes), "entity", "entities"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

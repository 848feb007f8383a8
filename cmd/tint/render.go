package main

import (
	"encoding/json"
	"fmt"
	"io"

	"tint/internal/diag"
	"tint/internal/diagfmt"
	"tint/internal/driver"
)

type declJSON struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Value  string `json:"value,omitempty"`
	Line   uint32 `json:"line,omitempty"`
	Column uint32 `json:"column,omitempty"`
}

type fileJSON struct {
	Path        string                   `json:"path"`
	Cached      bool                     `json:"cached,omitempty"`
	Decls       []declJSON               `json:"decls,omitempty"`
	Asserts     int                      `json:"asserts,omitempty"`
	Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics"`
}

type outputJSON struct {
	Files    []fileJSON `json:"files"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

// counts returns the number of errors and warnings across results.
func counts(results []*driver.Result) (errs, warnings int) {
	for _, res := range results {
		for _, d := range res.Bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warnings++
			}
		}
	}
	return errs, warnings
}

func writeJSON(w io.Writer, results []*driver.Result, withDecls bool) error {
	out := outputJSON{Files: make([]fileJSON, 0, len(results))}
	out.Errors, out.Warnings = counts(results)
	for _, res := range results {
		fj := fileJSON{
			Path:   res.Path,
			Cached: res.Cached,
			Diagnostics: diagfmt.BuildDiagnostics(res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         diagfmt.PathModeRelative,
				IncludeNotes:     true,
			}),
		}
		if withDecls {
			fj.Asserts = res.Asserts
			for _, d := range res.Decls {
				dj := declJSON{Name: d.Name, Type: d.Type, Value: d.Value}
				if res.File != nil && res.File.ID == d.Span.File {
					start, _ := res.FileSet.Resolve(d.Span)
					dj.Line, dj.Column = start.Line, start.Col
				}
				fj.Decls = append(fj.Decls, dj)
			}
		}
		out.Files = append(out.Files, fj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeDiagnostics prints the diagnostics of every result in format.
func writeDiagnostics(w io.Writer, results []*driver.Result, format string, useColor bool) error {
	for _, res := range results {
		if res.Bag.Len() == 0 {
			continue
		}
		switch format {
		case "short":
			if err := diagfmt.Short(w, res.Bag, res.FileSet, false); err != nil {
				return err
			}
		default:
			diagfmt.Pretty(w, res.Bag, res.FileSet, diagfmt.PrettyOpts{
				Color:     useColor,
				Context:   1,
				PathMode:  diagfmt.PathModeRelative,
				ShowNotes: true,
			})
		}
	}
	return nil
}

// writeDecls prints "name: type = value" for every declaration. Results of
// several files are prefixed with their path.
func writeDecls(w io.Writer, results []*driver.Result, format string) error {
	multi := len(results) > 1
	for i, res := range results {
		if len(res.Decls) == 0 {
			continue
		}
		if multi && format == "pretty" {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", displayPath(res))
		}
		for _, d := range res.Decls {
			prefix := ""
			switch {
			case multi && format == "short":
				prefix = displayPath(res) + ": "
			case multi:
				prefix = "  "
			}
			var err error
			if d.Value == "" {
				_, err = fmt.Fprintf(w, "%s%s: <error>\n", prefix, d.Name)
			} else {
				_, err = fmt.Fprintf(w, "%s%s: %s = %s\n", prefix, d.Name, d.Type, d.Value)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func displayPath(res *driver.Result) string {
	if res.File == nil {
		return res.Path
	}
	return res.File.FormatPath("relative", res.FileSet.BaseDir())
}

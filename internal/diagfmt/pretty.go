package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tint/internal/diag"
	"tint/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes bag in a human readable form. Callers sort the bag first.
// Every diagnostic starts with
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with the span underlined, then its notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	file := fileOf(fs, d.Primary)
	if file != nil {
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: ", formatPath(fs, file, opts.PathMode), start.Line, start.Col)
	}
	fmt.Fprintf(w, "%s %s: %s\n",
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	// timing payloads and load errors carry no source excerpt
	if file != nil && len(file.Content) > 0 && d.Code != diag.ObsTimings {
		writeExcerpt(w, fs, file, d.Primary, opts.Context, p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fileOf(fs, n.Span)
		if nf == nil || d.Code == diag.ObsTimings {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		start, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
			formatPath(fs, nf, opts.PathMode), start.Line, start.Col, n.Msg)
	}
}

func writeExcerpt(w io.Writer, fs *source.FileSet, file *source.File, span source.Span, context int8, p palette) {
	start, end := fs.Resolve(span)
	ctx := uint32(max(context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	lineCount := uint32(len(file.LineIdx)) + 1
	last = min(last, lineCount)
	gutterWidth := len(fmt.Sprint(last))

	for line := first; line <= last; line++ {
		text := strings.ReplaceAll(file.GetLine(line), "\t", " ")
		if line != start.Line && text == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, line), text)
		if line != start.Line {
			continue
		}
		from := int(start.Col) - 1
		to := len(text)
		if end.Line == start.Line {
			to = min(int(end.Col)-1, len(text))
		}
		from = min(from, len(text))
		pad := runewidth.StringWidth(text[:from])
		width := max(runewidth.StringWidth(text[from:max(to, from)]), 1)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
	}
}

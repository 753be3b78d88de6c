package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"aegis/internal/diag"
	"aegis/internal/source"
)

type palette struct {
	err, warn, info, path, caret, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan, color.Bold),
		path:  color.New(color.Bold),
		caret: color.New(color.FgGreen, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.caret, p.dim} {
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

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		// info-диагностики без места (тайминги) печатаются одной строкой
		if d.Primary.Empty() && d.Severity == diag.SevInfo {
			fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
			continue
		}
		writeHeader(w, p, fs, opts.PathMode, d.Primary, p.severity(d.Severity).Sprint(d.Severity.String())+" "+d.Code.ID(), d.Message)
		writeSnippet(w, p, fs, d.Primary, int(opts.Context))
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeHeader(w, p, fs, opts.PathMode, n.Span, p.dim.Sprint("note"), n.Msg)
				writeSnippet(w, p, fs, n.Span, 0)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.dim.Sprint("fix:"), fix.Title)
				for _, e := range fix.Edits {
					writeEdit(w, fs, e)
				}
			}
		}
	}
}

// writeEdit prints "insert ':' at 1:9" for an empty span and "replace 1:5-1:7 with ..." otherwise.
func writeEdit(w io.Writer, fs *source.FileSet, e diag.FixEdit) {
	start, end := fs.Resolve(e.Span)
	if e.Span.Empty() {
		fmt.Fprintf(w, "    insert %q at %d:%d\n", e.NewText, start.Line, start.Col)
		return
	}
	fmt.Fprintf(w, "    replace %d:%d-%d:%d with %q\n", start.Line, start.Col, end.Line, end.Col, e.NewText)
}

func writeHeader(w io.Writer, p palette, fs *source.FileSet, mode PathMode, sp source.Span, label, msg string) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := f.FormatPath(mode.name(), fs.BaseDir())
	fmt.Fprintf(w, "%s: %s: %s\n", p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), label, msg)
}

// writeSnippet prints lines [line-ctx, line+ctx] and underlines the span on the main line.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span, ctx int) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := max(int(start.Line)-ctx, 1)
	last := int(start.Line) + ctx
	gutter := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- ln >= 1
		if ln != int(start.Line) && text == "" {
			continue
		}
		text = strings.ReplaceAll(text, "\t", "    ")
		fmt.Fprintf(w, " %s %s\n", p.dim.Sprintf("%*d |", gutter, ln), text)
		if ln != int(start.Line) {
			continue
		}
		line := f.GetLine(start.Line)
		col := int(start.Col) - 1
		if col > len(line) {
			col = len(line)
		}
		prefix := strings.ReplaceAll(line[:col], "\t", "    ")
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(line))
			width = max(runewidth.StringWidth(line[col:stop]), 1)
		}
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s%s\n", p.dim.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", runewidth.StringWidth(prefix)), p.caret.Sprint(underline))
	}
}

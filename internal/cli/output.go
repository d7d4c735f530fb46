package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Field is one labelled value in text output.
type Field struct {
	Label string
	Value string
}

// Printer writes command results to stdout in the selected format.
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a Printer. Unknown formats fall back to text.
func NewPrinter(w io.Writer, format string) *Printer {
	if format != FormatJSON {
		format = FormatText
	}
	return &Printer{w: w, format: format}
}

// NewPrinterFor validates format and creates a Printer.
func NewPrinterFor(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON:
		return NewPrinter(w, format), nil
	default:
		return nil, fmt.Errorf("invalid output format %q (use text or json)", format)
	}
}

// JSON reports whether results are printed as JSON.
func (p *Printer) JSON() bool {
	return p.format == FormatJSON
}

// Result prints v as indented JSON, or fields as aligned label/value lines.
func (p *Printer) Result(v any, fields ...Field) error {
	if p.JSON() {
		return outputJSON(p.w, v)
	}

	tw := newTabWriter(p.w)
	for _, f := range fields {
		if f.Value == "" {
			continue
		}
		tw.writef("%s:\t%s\n", f.Label, f.Value)
	}
	return tw.finish()
}

// Raw prints a JSON document indented, in either format. Invalid JSON is
// printed as is.
func (p *Printer) Raw(raw []byte) error {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		_, err = fmt.Fprintln(p.w, string(raw))
		return err
	}
	pretty.WriteByte('\n')
	_, err := p.w.Write(pretty.Bytes())
	return err
}

// Line prints a plain message line in text mode only.
func (p *Printer) Line(format string, args ...any) error {
	if p.JSON() {
		return nil
	}
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Truncate shortens s to at most maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

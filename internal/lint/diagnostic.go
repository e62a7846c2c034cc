package lint

import (
	"bufio"
	"fmt"
	"io"
)

// ColumnLabel addresses a cell-level diagnostic: by name in named mode,
// by 1-based index otherwise.
type ColumnLabel struct {
	Name  string
	Index int
}

// Diagnostic is one reported problem. Col is nil for row-level problems
// (blank line, width mismatch, unparseable row).
type Diagnostic struct {
	Row     int
	Col     *ColumnLabel
	Message string
}

func (d Diagnostic) String() string {
	switch {
	case d.Col == nil:
		return fmt.Sprintf("(Row %d): %s", d.Row, d.Message)
	case d.Col.Name != "":
		return fmt.Sprintf("(Row %d, Col '%s'): %s", d.Row, d.Col.Name, d.Message)
	default:
		return fmt.Sprintf("(Row %d, Col %d): %s", d.Row, d.Col.Index, d.Message)
	}
}

// Reporter writes diagnostics as they are found, one text line each.
// Buffered so a million-problem file does not mean a million writes, but
// never batched: memory stays flat no matter how big the input is.
type Reporter struct {
	w     *bufio.Writer
	count int
	err   error
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: bufio.NewWriter(w)}
}

func (r *Reporter) Report(d Diagnostic) {
	r.count++
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.w, d.String()); err != nil {
		r.err = err
	}
}

// Count returns the number of diagnostics reported so far.
func (r *Reporter) Count() int { return r.count }

// Flush drains the buffer and returns the first write error, if any.
func (r *Reporter) Flush() error {
	if err := r.w.Flush(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}

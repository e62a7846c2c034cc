// Package source provides record streams for the checker: one record per
// physical row, pulled one at a time.
package source

import "io"

// Record is one parsed row. When the underlying reader could not tokenize
// the row, Err is set, Fields is empty, and the stream keeps going.
type Record struct {
	Fields []string
	Err    error
}

// Blank reports whether the record is a blank line: exactly one field and
// it is the empty string.
func (r Record) Blank() bool {
	return len(r.Fields) == 1 && r.Fields[0] == ""
}

// Source is a pull-based record stream. Next returns io.EOF after the last
// record; per-row tokenizer problems travel inside the Record instead.
type Source interface {
	// Header returns the column names consumed before the data rows,
	// or nil when the source has no header.
	Header() []string
	Next() (Record, error)
	Close() error
}

type limited struct {
	src  Source
	left int
}

// Limit caps a source at n records. n <= 0 means no cap.
func Limit(src Source, n int) Source {
	if n <= 0 {
		return src
	}
	return &limited{src: src, left: n}
}

func (l *limited) Header() []string { return l.src.Header() }
func (l *limited) Close() error     { return l.src.Close() }

func (l *limited) Next() (Record, error) {
	if l.left <= 0 {
		return Record{}, io.EOF
	}
	rec, err := l.src.Next()
	if err == nil {
		l.left--
	}
	return rec, err
}

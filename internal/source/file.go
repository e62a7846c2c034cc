package source

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FileSource reads one physical line at a time and tokenizes each line with
// encoding/csv. Reading line-by-line instead of handing the whole stream to
// csv.Reader keeps physical row numbers honest: csv.Reader silently drops
// blank lines, and reporting blank lines is part of this tool's job.
// The trade-off: quoted fields cannot span physical lines.
type FileSource struct {
	r      *bufio.Reader
	comma  rune
	header []string
}

// NewFileSource wraps r. With named set, the first physical line is consumed
// as the header; a missing or malformed header is an error because nothing
// after it could be matched to a rule.
func NewFileSource(r io.Reader, comma rune, named bool) (*FileSource, error) {
	s := &FileSource{r: bufio.NewReader(r), comma: comma}
	if named {
		rec, err := s.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("input is empty, expected a header row")
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header row: %w", err)
		}
		if rec.Err != nil {
			return nil, fmt.Errorf("failed to parse header row: %w", rec.Err)
		}
		s.header = rec.Fields
	}
	return s, nil
}

func (s *FileSource) Header() []string { return s.header }

// Close is a no-op; the caller owns the underlying reader.
func (s *FileSource) Close() error { return nil }

func (s *FileSource) Next() (Record, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return Record{}, err
	}
	if line == "" && err == io.EOF {
		return Record{}, io.EOF
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return Record{Fields: []string{""}}, nil
	}

	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = s.comma
	cr.FieldsPerRecord = -1
	fields, perr := cr.Read()
	if perr != nil {
		return Record{Err: perr}, nil
	}
	return Record{Fields: fields}, nil
}

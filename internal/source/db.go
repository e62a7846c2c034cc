package source

import (
	"database/sql"
	"fmt"
	"io"
)

// DBSource streams the rows of a query result. Every column is scanned as a
// nullable string; SQL NULL becomes the empty cell, which the rule engine
// already knows how to judge.
type DBSource struct {
	rows   *sql.Rows
	header []string
	vals   []sql.NullString
	ptrs   []any
}

func NewDBSource(rows *sql.Rows) (*DBSource, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	s := &DBSource{
		rows:   rows,
		header: cols,
		vals:   make([]sql.NullString, len(cols)),
	}
	s.ptrs = make([]any, len(cols))
	for i := range s.vals {
		s.ptrs[i] = &s.vals[i]
	}
	return s, nil
}

func (s *DBSource) Header() []string { return s.header }

func (s *DBSource) Close() error { return s.rows.Close() }

func (s *DBSource) Next() (Record, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, io.EOF
	}
	if err := s.rows.Scan(s.ptrs...); err != nil {
		// A row that cannot be scanned is a bad row, not a dead stream.
		return Record{Err: err}, nil
	}
	fields := make([]string, len(s.vals))
	for i, v := range s.vals {
		if v.Valid {
			fields[i] = v.String
		}
	}
	return Record{Fields: fields}, nil
}

package lint_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"csv-lint/internal/lint"
	"csv-lint/internal/schema"
	"csv-lint/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	header  []string
	records []source.Record
	i       int
}

func (s *sliceSource) Header() []string { return s.header }
func (s *sliceSource) Close() error     { return nil }

func (s *sliceSource) Next() (source.Record, error) {
	if s.i >= len(s.records) {
		return source.Record{}, io.EOF
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

func rows(fields ...[]string) []source.Record {
	var recs []source.Record
	for _, f := range fields {
		recs = append(recs, source.Record{Fields: f})
	}
	return recs
}

func runChecker(t *testing.T, def *schema.Definition, src source.Source) (int, []string) {
	t.Helper()
	var buf bytes.Buffer
	checker := lint.NewChecker(def, lint.NewReporter(&buf))
	n, err := checker.Run(src, nil)
	require.NoError(t, err)
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return n, nil
	}
	return n, strings.Split(out, "\n")
}

func TestEmptyAndIntegerViolations(t *testing.T) {
	def := &schema.Definition{
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Rule: &schema.ColumnRule{RequireInteger: true}},
		},
	}
	n, lines := runChecker(t, def, &sliceSource{records: rows([]string{"", "abc"})})

	assert.Equal(t, 2, n)
	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 1, Col 1): is empty when it shouldn't be", lines[0])
	assert.Equal(t, "(Row 1, Col 2): is not a finite integer", lines[1])
}

func TestShortRowStillGetsCellChecks(t *testing.T) {
	def := &schema.Definition{
		Columns: 3,
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
		},
	}
	_, lines := runChecker(t, def, &sliceSource{records: rows([]string{"a", "b"})})

	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 1): inconsistent column count, expected 3, found 2", lines[0])
	// The missing third cell is checked as the empty string.
	assert.Equal(t, "(Row 1, Col 3): is empty when it shouldn't be", lines[1])
}

func TestBlankLineSuppressesOtherChecks(t *testing.T) {
	def := &schema.Definition{
		Columns: 2,
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Rule: &schema.ColumnRule{RequireNonEmpty: true}},
		},
	}
	n, lines := runChecker(t, def, &sliceSource{records: rows([]string{""})})

	// Exactly one diagnostic: no width mismatch, no cell checks.
	assert.Equal(t, 1, n)
	require.Len(t, lines, 1)
	assert.Equal(t, "(Row 1): is a blank line", lines[0])
}

func TestStringBoundEndToEnd(t *testing.T) {
	def := &schema.Definition{
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{MinValue: &schema.Bound{Str: "b"}}},
		},
	}

	_, lines := runChecker(t, def, &sliceSource{records: rows([]string{"a"})})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "sorts before minimum string value")

	n, _ := runChecker(t, def, &sliceSource{records: rows([]string{"c"})})
	assert.Equal(t, 0, n)
}

func TestWidthLatchesFromFirstCountedRow(t *testing.T) {
	def := &schema.Definition{}
	_, lines := runChecker(t, def, &sliceSource{records: rows(
		[]string{"a", "b"},
		[]string{"a", "b", "c"},
		[]string{"a", "b"},
	)})

	require.Len(t, lines, 1)
	assert.Equal(t, "(Row 2): inconsistent column count, expected 2, found 3", lines[0])
}

func TestSkipRowsAreIgnoredEntirely(t *testing.T) {
	def := &schema.Definition{
		SkipRows: 2,
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{RequireInteger: true}},
		},
	}
	// Skipped rows produce no diagnostics and do not latch the width,
	// but they still consume row numbers.
	_, lines := runChecker(t, def, &sliceSource{records: rows(
		[]string{"garbage", "extra", "columns"},
		[]string{""},
		[]string{"abc"},
	)})

	require.Len(t, lines, 1)
	assert.Equal(t, "(Row 3, Col 1): is not a finite integer", lines[0])
}

func TestRowNumbersCountEveryRecord(t *testing.T) {
	def := &schema.Definition{Columns: 1, SkipRows: 1}
	var buf bytes.Buffer
	checker := lint.NewChecker(def, lint.NewReporter(&buf))
	_, err := checker.Run(&sliceSource{records: []source.Record{
		{Fields: []string{"skipped"}},
		{Fields: []string{""}},
		{Err: errors.New("bad row")},
		{Fields: []string{"ok"}},
	}}, nil)
	require.NoError(t, err)

	// Skip, blank, and error rows each consume exactly one row number.
	assert.Equal(t, 4, checker.Rows())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 2): is a blank line", lines[0])
	assert.Equal(t, "(Row 3): could not be parsed: bad row", lines[1])
}

func TestSourceParseErrorDoesNotStopTheRun(t *testing.T) {
	def := &schema.Definition{
		Rules: []schema.NamedRule{{Rule: &schema.ColumnRule{RequireInteger: true}}},
	}
	_, lines := runChecker(t, def, &sliceSource{records: []source.Record{
		{Err: errors.New("unclosed quote")},
		{Fields: []string{"abc"}},
	}})

	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 1): could not be parsed: unclosed quote", lines[0])
	assert.Equal(t, "(Row 2, Col 1): is not a finite integer", lines[1])
}

func TestNamedModeLabelsAndNumbering(t *testing.T) {
	def := &schema.Definition{
		Mode: schema.Named,
		Rules: []schema.NamedRule{
			{Name: "name", Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Name: "age", Rule: &schema.ColumnRule{RequireInteger: true}},
		},
	}
	src := &sliceSource{
		header:  []string{"name", "age"},
		records: rows([]string{"alice", "30"}, []string{"", "abc"}),
	}
	_, lines := runChecker(t, def, src)

	// The header holds row 1; data rows start at 2.
	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 3, Col 'name'): is empty when it shouldn't be", lines[0])
	assert.Equal(t, "(Row 3, Col 'age'): is not a finite integer", lines[1])
}

func TestNamedModeMissingColumnChecksEmpty(t *testing.T) {
	def := &schema.Definition{
		Mode:    schema.Named,
		Columns: 1,
		Rules: []schema.NamedRule{
			{Name: "missing", Rule: &schema.ColumnRule{RequireNonEmpty: true}},
		},
	}
	src := &sliceSource{header: []string{"present"}, records: rows([]string{"x"})}
	_, lines := runChecker(t, def, src)

	require.Len(t, lines, 1)
	assert.Equal(t, "(Row 2, Col 'missing'): is empty when it shouldn't be", lines[0])
}

func TestNamedModeDiagnosticOrderFollowsSchema(t *testing.T) {
	def := &schema.Definition{
		Mode: schema.Named,
		Rules: []schema.NamedRule{
			{Name: "b", Rule: &schema.ColumnRule{RequireNonEmpty: true}},
			{Name: "a", Rule: &schema.ColumnRule{RequireNonEmpty: true}},
		},
	}
	src := &sliceSource{header: []string{"a", "b"}, records: rows([]string{"", ""})}
	_, lines := runChecker(t, def, src)

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Col 'b'")
	assert.Contains(t, lines[1], "Col 'a'")
}

func TestBlankRowLatchesWidth(t *testing.T) {
	// The latch runs before the blank-line branch: a leading blank row
	// fixes the expected width at 1.
	def := &schema.Definition{}
	_, lines := runChecker(t, def, &sliceSource{records: rows(
		[]string{""},
		[]string{"a", "b"},
	)})

	require.Len(t, lines, 2)
	assert.Equal(t, "(Row 1): is a blank line", lines[0])
	assert.Equal(t, "(Row 2): inconsistent column count, expected 1, found 2", lines[1])
}

func TestRunReturnsDiagnosticCount(t *testing.T) {
	def := &schema.Definition{
		Rules: []schema.NamedRule{
			{Rule: &schema.ColumnRule{RequireNonEmpty: true, RequireInteger: true}},
		},
	}
	n, _ := runChecker(t, def, &sliceSource{records: rows([]string{""}, []string{""})})
	// Two failing checks per row, two rows.
	assert.Equal(t, 4, n)
}

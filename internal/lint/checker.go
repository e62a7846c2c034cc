// Package lint drives validation: it pulls records from a source, applies
// structural checks, and dispatches cells to the rule engine.
package lint

import (
	"fmt"
	"io"

	"csv-lint/internal/rule"
	"csv-lint/internal/schema"
	"csv-lint/internal/source"
)

// Checker validates one record stream against one schema. One checker
// handles one run; the row counter and the latched width live here and
// nowhere else.
type Checker struct {
	def *schema.Definition
	rep *Reporter

	row      int
	expected int
	latched  bool
}

func NewChecker(def *schema.Definition, rep *Reporter) *Checker {
	c := &Checker{def: def, rep: rep}
	if def.Mode == schema.Named {
		// Row 1 is the header the source already consumed; data starts at 2.
		c.row = 1
	}
	if def.Columns > 0 {
		c.expected = def.Columns
		c.latched = true
	}
	return c
}

// Rows returns the number of physical rows seen, counting skipped rows and,
// in named mode, the header.
func (c *Checker) Rows() int { return c.row }

// Run consumes the source to exhaustion and returns the diagnostic count.
// Data problems never stop the run; only source infrastructure failures and
// sink write failures come back as errors.
func (c *Checker) Run(src source.Source, onRecord func()) (int, error) {
	var index map[string]int
	if c.def.Mode == schema.Named {
		index = headerIndex(src.Header())
	}

	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.rep.Count(), fmt.Errorf("record source failed: %w", err)
		}

		c.row++
		if onRecord != nil {
			onRecord()
		}
		if c.row <= c.def.SkipRows {
			continue
		}
		if rec.Err != nil {
			c.rep.Report(Diagnostic{Row: c.row, Message: fmt.Sprintf("could not be parsed: %v", rec.Err)})
			continue
		}

		cols := len(rec.Fields)
		if !c.latched {
			// First counted row fixes the expected width for the whole run.
			c.expected = cols
			c.latched = true
		}

		if rec.Blank() {
			// A blank line is its own diagnostic; a width mismatch on top
			// of it would just be noise.
			c.rep.Report(Diagnostic{Row: c.row, Message: "is a blank line"})
			continue
		}
		if cols != c.expected {
			c.rep.Report(Diagnostic{
				Row:     c.row,
				Message: fmt.Sprintf("inconsistent column count, expected %d, found %d", c.expected, cols),
			})
			// Cells that are present still get checked.
		}

		c.checkCells(rec.Fields, index)
	}

	return c.rep.Count(), c.rep.Flush()
}

func (c *Checker) checkCells(fields []string, index map[string]int) {
	for i, nr := range c.def.Rules {
		var cell string
		var label *ColumnLabel
		if c.def.Mode == schema.Named {
			if j, ok := index[nr.Name]; ok && j < len(fields) {
				cell = fields[j]
			}
			label = &ColumnLabel{Name: nr.Name}
		} else {
			if i < len(fields) {
				cell = fields[i]
			}
			label = &ColumnLabel{Index: i + 1}
		}
		for _, msg := range rule.Evaluate(cell, nr.Rule) {
			c.rep.Report(Diagnostic{Row: c.row, Col: label, Message: msg})
		}
	}
}

// headerIndex maps column names to field positions. The first occurrence
// wins when a header repeats a name.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	return index
}

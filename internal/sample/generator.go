// Package sample synthesizes CSV data from a schema: rows that satisfy every
// rule, or rows with deliberate violations for exercising the linter.
package sample

import (
	"math"
	"strconv"

	"csv-lint/internal/schema"

	"github.com/brianvoe/gofakeit/v6"
)

type Generator struct {
	f *gofakeit.Faker
}

func New(seed int64) *Generator {
	return &Generator{f: gofakeit.New(seed)}
}

// Cell produces a value that passes every check configured on r.
func (g *Generator) Cell(r *schema.ColumnRule) string {
	if r.RequireEmpty {
		return ""
	}
	if r.Pattern != "" {
		return g.f.Regex(r.Pattern)
	}

	numericBound := (r.MinValue != nil && r.MinValue.IsNum) || (r.MaxValue != nil && r.MaxValue.IsNum)
	if r.RequireInteger || r.RequireFloat || numericBound {
		lo, hi := 0.0, 9999.0
		if r.MinValue != nil && r.MinValue.IsNum {
			lo = r.MinValue.Num
		}
		if r.MaxValue != nil && r.MaxValue.IsNum {
			hi = r.MaxValue.Num
		}
		if hi < lo {
			hi = lo
		}
		if r.RequireInteger {
			ilo, ihi := int(math.Ceil(lo)), int(math.Floor(hi))
			if ihi < ilo {
				ihi = ilo
			}
			return strconv.Itoa(g.f.Number(ilo, ihi))
		}
		return strconv.FormatFloat(g.f.Float64Range(lo, hi), 'f', 2, 64)
	}

	w := g.f.Word()
	if r.MinValue != nil && !r.MinValue.IsNum && w < r.MinValue.Str {
		w = r.MinValue.Str
	}
	if r.MaxValue != nil && !r.MaxValue.IsNum && w > r.MaxValue.Str {
		w = r.MaxValue.Str
	}
	return w
}

// Violation produces a value that breaks one of r's checks. When the rule
// has nothing to violate (or only a pattern, where a guaranteed non-match
// cannot be constructed in general), it falls back to a conforming value.
func (g *Generator) Violation(r *schema.ColumnRule) string {
	switch {
	case r.RequireEmpty:
		return g.f.Word()
	case r.RequireNonEmpty:
		return ""
	case r.RequireAscii:
		return "café"
	case r.RequireTrimmed:
		return " " + g.f.Word() + " "
	case r.RequireInteger, r.RequireFloat:
		return g.f.Word()
	case r.MinValue != nil && r.MinValue.IsNum:
		return strconv.FormatFloat(r.MinValue.Num-1, 'f', -1, 64)
	case r.MaxValue != nil && r.MaxValue.IsNum:
		return strconv.FormatFloat(r.MaxValue.Num+1, 'f', -1, 64)
	case r.MinValue != nil && r.MinValue.Str != "":
		return ""
	case r.MaxValue != nil:
		return r.MaxValue.Str + "zz"
	default:
		return g.Cell(r)
	}
}

// Row produces one conforming record in schema order, padded with empty
// cells when the declared width exceeds the rule count.
func (g *Generator) Row(def *schema.Definition) []string {
	fields := make([]string, 0, len(def.Rules))
	for _, nr := range def.Rules {
		fields = append(fields, g.Cell(nr.Rule))
	}
	for def.Mode == schema.Positional && len(fields) < def.Columns {
		fields = append(fields, "")
	}
	return fields
}

// ViolationChance returns a row where each cell independently breaks its
// rule with probability p.
func (g *Generator) ViolationChance(def *schema.Definition, p float64) []string {
	fields := make([]string, 0, len(def.Rules))
	for _, nr := range def.Rules {
		if g.f.Float64Range(0, 1) < p {
			fields = append(fields, g.Violation(nr.Rule))
		} else {
			fields = append(fields, g.Cell(nr.Rule))
		}
	}
	for def.Mode == schema.Positional && len(fields) < def.Columns {
		fields = append(fields, "")
	}
	return fields
}

// HeaderRow returns the column names for named-mode output.
func (g *Generator) HeaderRow(def *schema.Definition) []string {
	names := make([]string, 0, len(def.Rules))
	for _, nr := range def.Rules {
		names = append(names, nr.Name)
	}
	return names
}

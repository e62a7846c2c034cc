package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
)

// Mode selects how column rules are matched to cells.
type Mode int

const (
	// Positional matches rules to cells by position (columnDefs is an array).
	Positional Mode = iota
	// Named matches rules to cells through a header row (columnDefs is an object).
	Named
)

func (m Mode) String() string {
	if m == Named {
		return "named"
	}
	return "positional"
}

// Bound is a min/max limit for one column. The JSON type of the value decides
// the comparison: a number means numeric comparison against the parsed cell,
// a string means raw lexicographic comparison against the cell text.
type Bound struct {
	Num   float64
	Str   string
	IsNum bool
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty bound value")
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &b.Str)
	}
	if err := json.Unmarshal(data, &b.Num); err != nil {
		return fmt.Errorf("bound must be a number or a string: %w", err)
	}
	b.IsNum = true
	return nil
}

func (b *Bound) MarshalJSON() ([]byte, error) {
	if b.IsNum {
		return json.Marshal(b.Num)
	}
	return json.Marshal(b.Str)
}

// ColumnRule is the set of validation predicates configured for one column.
// Every field is optional; a zero rule accepts everything.
type ColumnRule struct {
	RequireEmpty    bool   `json:"requireEmpty,omitempty"`
	RequireNonEmpty bool   `json:"requireNonEmpty,omitempty"`
	RequireAscii    bool   `json:"requireAscii,omitempty"`
	RequireTrimmed  bool   `json:"requireTrimmed,omitempty"`
	Pattern         string `json:"pattern,omitempty"`
	RequireInteger  bool   `json:"requireInteger,omitempty"`
	RequireFloat    bool   `json:"requireFloat,omitempty"`
	MinValue        *Bound `json:"minValue,omitempty"`
	MaxValue        *Bound `json:"maxValue,omitempty"`

	// Regexp is the compiled form of Pattern, set by the loader.
	Regexp *regexp.Regexp `json:"-"`
}

// NamedRule pairs a rule with its column name. Name is empty in positional
// mode, where the rule's index in Definition.Rules is the column index.
type NamedRule struct {
	Name string
	Rule *ColumnRule
}

// Definition is one fully loaded schema.
type Definition struct {
	// Columns is the expected column count. 0 means "not declared": the
	// checker latches it from the first counted row.
	Columns  int
	SkipRows int
	Mode     Mode
	// Rules in declaration order. Diagnostic order within a row follows this.
	Rules []NamedRule
}

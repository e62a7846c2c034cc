package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

type rawDefinition struct {
	Columns    int             `json:"columns"`
	SkipRows   int             `json:"skipRows"`
	ColumnDefs json.RawMessage `json:"columnDefs"`
}

// Load reads and validates a schema file. Any problem here is fatal to the
// run: bad schemas die before the first record is read.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a schema document. columnDefs decides the mode: a JSON array
// is positional, a JSON object is named (object key order is preserved so
// diagnostic order is stable run to run).
func Parse(data []byte) (*Definition, error) {
	var raw rawDefinition
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	if raw.Columns < 0 {
		return nil, fmt.Errorf("columns must not be negative, got %d", raw.Columns)
	}
	if raw.SkipRows < 0 {
		return nil, fmt.Errorf("skipRows must not be negative, got %d", raw.SkipRows)
	}

	def := &Definition{
		Columns:  raw.Columns,
		SkipRows: raw.SkipRows,
	}

	defs := bytes.TrimSpace(raw.ColumnDefs)
	switch {
	case len(defs) == 0 || bytes.Equal(defs, []byte("null")):
		// No rules: structural checks only.
	case defs[0] == '[':
		var rules []*ColumnRule
		if err := json.Unmarshal(defs, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse columnDefs array: %w", err)
		}
		for _, r := range rules {
			if r == nil {
				r = &ColumnRule{}
			}
			def.Rules = append(def.Rules, NamedRule{Rule: r})
		}
	case defs[0] == '{':
		rules, err := parseNamedDefs(defs)
		if err != nil {
			return nil, err
		}
		def.Mode = Named
		def.Rules = rules
	default:
		return nil, fmt.Errorf("columnDefs must be an array or an object")
	}

	for i := range def.Rules {
		if err := compileRule(&def.Rules[i], i); err != nil {
			return nil, err
		}
	}
	return def, nil
}

// parseNamedDefs walks the object token by token. encoding/json maps would
// randomize key order, and the order defines per-row diagnostic order.
func parseNamedDefs(data []byte) ([]NamedRule, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // consume '{'
		return nil, fmt.Errorf("failed to parse columnDefs object: %w", err)
	}

	var rules []NamedRule
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse columnDefs object: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v in columnDefs", tok)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in columnDefs", name)
		}
		seen[name] = true

		rule := &ColumnRule{}
		if err := dec.Decode(rule); err != nil {
			return nil, fmt.Errorf("failed to parse rule for column %q: %w", name, err)
		}
		rules = append(rules, NamedRule{Name: name, Rule: rule})
	}
	return rules, nil
}

func compileRule(nr *NamedRule, index int) error {
	r := nr.Rule
	if r.Pattern == "" {
		return nil
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern for %s: %w", describeColumn(nr, index), err)
	}
	r.Regexp = re
	return nil
}

func describeColumn(nr *NamedRule, index int) string {
	if nr.Name != "" {
		return fmt.Sprintf("column %q", nr.Name)
	}
	return fmt.Sprintf("column %d", index+1)
}

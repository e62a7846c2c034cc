// Package rule evaluates one cell against one column's rule set.
// It is pure: no I/O, no state, and it never fails at runtime — a malformed
// rule is the loader's problem, not this package's.
package rule

import (
	"fmt"
	"strconv"
	"strings"

	"csv-lint/internal/schema"
)

// Evaluate runs every configured check against cell and returns one message
// per failing check. Checks run in a fixed order and never short-circuit each
// other, so one cell can collect several messages and output order is stable.
func Evaluate(cell string, r *schema.ColumnRule) []string {
	var msgs []string

	if r.RequireEmpty && cell != "" {
		msgs = append(msgs, "isn't empty when it should be")
	} else if r.RequireNonEmpty && cell == "" {
		msgs = append(msgs, "is empty when it shouldn't be")
	}

	if r.RequireAscii && !printableASCII(cell) {
		msgs = append(msgs, "contains characters outside printable ASCII")
	}

	if r.RequireTrimmed && cell != strings.TrimSpace(cell) {
		msgs = append(msgs, "has leading or trailing whitespace")
	}

	if r.Regexp != nil && !r.Regexp.MatchString(cell) {
		msgs = append(msgs, fmt.Sprintf("does not match pattern %q", r.Pattern))
	}

	if r.RequireInteger {
		if _, ok := LeadingInt(cell); !ok {
			msgs = append(msgs, "is not a finite integer")
		}
	}

	if r.RequireFloat {
		if _, ok := LeadingFloat(cell); !ok {
			msgs = append(msgs, "is not a finite number")
		}
	}

	if b := r.MinValue; b != nil {
		if b.IsNum {
			if v, ok := LeadingFloat(cell); !ok || v < b.Num {
				msgs = append(msgs, fmt.Sprintf("is less than the minimum value %s", formatNum(b.Num)))
			}
		} else if cell < b.Str {
			msgs = append(msgs, fmt.Sprintf("sorts before minimum string value %q", b.Str))
		}
	}

	if b := r.MaxValue; b != nil {
		if b.IsNum {
			if v, ok := LeadingFloat(cell); !ok || v > b.Num {
				msgs = append(msgs, fmt.Sprintf("is greater than the maximum value %s", formatNum(b.Num)))
			}
		} else if cell > b.Str {
			msgs = append(msgs, fmt.Sprintf("sorts after maximum string value %q", b.Str))
		}
	}

	return msgs
}

// printableASCII reports whether every byte of s is in [0x20, 0x7E].
// The test is byte-wise over the UTF-8 encoding; any multi-byte rune fails.
func printableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

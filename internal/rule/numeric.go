package rule

import (
	"errors"
	"strconv"
)

// Numeric parsing here is deliberately lenient: it consumes the longest valid
// numeric prefix and ignores whatever follows, so "12abc" is the integer 12.
// Schemas that want strict numerals say so with an anchored pattern.

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// LeadingInt parses an optionally signed digit run at the start of s.
// A run too long for int64 is still a valid integer; the value saturates.
func LeadingInt(s string) (int64, bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// LeadingFloat parses a decimal float prefix: sign, digits, optional
// fraction, optional exponent. The exponent is consumed only when complete,
// so "12e" parses as 12. Values outside float64 range are not finite and
// do not pass.
func LeadingFloat(s string) (float64, bool) {
	n := floatPrefixLen(s)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		if intDigits > 0 || (i+1 < len(s) && isDigit(s[i+1])) {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
				fracDigits++
			}
		}
	}
	if intDigits+fracDigits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return i
}

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CodeWidth is the zero-padded width of generated worker codes: 7 -> "007".
const CodeWidth = 3

// ParseCodeRange parses a bulk-creation range like "001-010" into its
// integer bounds. Both bounds must be plain non-negative integers; anything
// else (missing dash, signs, non-numeric text) is a format error. A
// descending range is not an error here: the caller's loop simply produces
// zero codes.
func ParseCodeRange(spec string) (start, end int, err error) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, errors.New(`invalid range format, expected "start-end" (e.g. 001-010)`)
	}
	start, err = parseBound(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = parseBound(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !isDigits(s) {
		return 0, fmt.Errorf("invalid range bound %q, expected a number", s)
	}
	return strconv.Atoi(s)
}

// FormatCode renders an integer as a zero-padded code string.
func FormatCode(n int) string {
	return fmt.Sprintf("%0*d", CodeWidth, n)
}

// NumericTokens splits a comma-separated list and keeps only the tokens
// that are non-negative integer literals. Everything else is silently
// dropped, including empty tokens.
func NumericTokens(list string) []string {
	var out []string
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || !isDigits(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

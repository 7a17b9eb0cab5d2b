package result

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned for error-code tokens that are not an integer
// or an inclusive start..end range.
var ErrInvalidInput = errors.New("invalid input parameters")

// rangeSep separates the bounds of an inclusive code range.
const rangeSep = ".."

type span struct{ lo, hi int }

// CodeSet is a set of HTTP status codes stored as sorted, disjoint,
// non-adjacent spans, so wide ranges cost no more than single codes.
type CodeSet struct {
	spans []span
}

// ParseCodes builds a CodeSet from tokens such as "503", "400..404".
// A range whose start exceeds its end adds nothing.
func ParseCodes(tokens []string) (CodeSet, error) {
	var set CodeSet
	for _, token := range tokens {
		lo, hi, err := parseToken(token)
		if err != nil {
			return CodeSet{}, err
		}
		set.AddRange(lo, hi)
	}
	return set, nil
}

func parseToken(token string) (int, int, error) {
	start, end, isRange := strings.Cut(token, rangeSep)
	lo, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not an error code", ErrInvalidInput, token)
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := strconv.Atoi(strings.TrimSpace(end))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q is not an error code range", ErrInvalidInput, token)
	}
	return lo, hi, nil
}

// AddRange inserts every code in [lo, hi].
func (s *CodeSet) AddRange(lo, hi int) {
	if lo > hi {
		return
	}
	// first span that could touch [lo, hi]
	i, _ := slices.BinarySearchFunc(s.spans, lo, func(sp span, v int) int {
		if sp.hi < v-1 {
			return -1
		}
		return 1
	})
	j := i
	for j < len(s.spans) && s.spans[j].lo <= hi+1 {
		lo = min(lo, s.spans[j].lo)
		hi = max(hi, s.spans[j].hi)
		j++
	}
	s.spans = slices.Replace(s.spans, i, j, span{lo, hi})
}

// Contains reports whether code is in the set.
func (s CodeSet) Contains(code int) bool {
	_, found := slices.BinarySearchFunc(s.spans, code, func(sp span, v int) int {
		switch {
		case sp.hi < v:
			return -1
		case sp.lo > v:
			return 1
		default:
			return 0
		}
	})
	return found
}

// Len returns the number of codes in the set.
func (s CodeSet) Len() int {
	n := 0
	for _, sp := range s.spans {
		n += sp.hi - sp.lo + 1
	}
	return n
}

// String renders the set compactly, e.g. "404..407 451".
func (s CodeSet) String() string {
	parts := make([]string, 0, len(s.spans))
	for _, sp := range s.spans {
		if sp.lo == sp.hi {
			parts = append(parts, strconv.Itoa(sp.lo))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s%d", sp.lo, rangeSep, sp.hi))
	}
	return strings.Join(parts, " ")
}

package rewrite

import (
	"fmt"
	"strings"
)

// leftQuote is U+2018, used by some romanization schemes to mark ayin.
const leftQuote = '‘'

// InvalidInputError reports input the engine cannot rewrite: an empty
// string, or a character outside the supported alphabet. Input is expected
// to be normalized by the caller first, so this is a contract check rather
// than the primary validation path.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

// Valid reports whether r belongs to the supported alphabet: Latin letters,
// space, hyphen, apostrophe and the left single quote.
func Valid(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == ' ' || r == '-' || r == '\'' || r == leftQuote:
		return true
	}
	return false
}

// CheckInput verifies the engine's input contract.
func CheckInput(s string) error {
	if s == "" {
		return &InvalidInputError{Input: s, Reason: "empty string"}
	}
	for _, r := range s {
		if !Valid(r) {
			return &InvalidInputError{Input: s, Reason: fmt.Sprintf("unsupported character %q", r)}
		}
	}
	return nil
}

// Rewrite applies the table to input. wordStarts marks the rune offsets
// where a word begins and may be nil when no rule needs them; offset 0 is
// always a word start. A canonical table returns exactly one string; a
// branching table returns every distinct expansion in generation order.
func (t *Table) Rewrite(input string, wordStarts map[int]bool) ([]string, error) {
	if err := CheckInput(input); err != nil {
		return nil, err
	}
	if t.mode == Canonical {
		return []string{t.canonicalize(input)}, nil
	}
	return t.expand(input, wordStarts), nil
}

// candidate is one in-progress expansion: the output built so far and the
// scan cursor into the input. Candidates live only for the duration of a
// single expand call.
type candidate struct {
	out string
	pos int
}

// expand scans the input once, left to right. Each candidate runs forward
// until it completes or reaches a branch point; a branch enqueues one child
// per alternative, in declared order, onto a FIFO worklist. That makes the
// output order the cartesian-product order of the branch choices, stable
// across calls.
func (t *Table) expand(input string, wordStarts map[int]bool) []string {
	text := []rune(input)
	queue := []candidate{{pos: 0}}
	seen := make(map[string]bool)
	var results []string

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		forked := false
		for c.pos < len(text) {
			rule, n := t.matchAt(text, c.pos, wordStarts)
			if rule == nil {
				// No rule matched: the character passes through.
				c.out += string(text[c.pos])
				c.pos++
				continue
			}
			if len(rule.Alternatives) == 1 {
				c.out += rule.Alternatives[0]
				c.pos += n
				continue
			}
			for _, alt := range rule.Alternatives {
				queue = append(queue, candidate{out: c.out + alt, pos: c.pos + n})
			}
			forked = true
			break
		}
		if forked {
			continue
		}
		if !seen[c.out] {
			seen[c.out] = true
			results = append(results, c.out)
		}
	}
	return results
}

// matchAt returns the first applicable rule at pos and its pattern length
// in runes. Longer patterns are tried before shorter ones; within a length,
// declaration order decides. The position constraint filters after length
// ordering.
func (t *Table) matchAt(text []rune, pos int, wordStarts map[int]bool) (*Rule, int) {
	for n := t.maxLen; n >= 1; n-- {
		if pos+n > len(text) {
			continue
		}
		for i := range t.rules {
			if t.rules[i].fold || len(t.patterns[i]) != n {
				continue
			}
			if !runesEqual(text[pos:pos+n], t.patterns[i]) {
				continue
			}
			if !positionOK(t.rules[i].Where, pos, n, len(text), wordStarts) {
				continue
			}
			return &t.rules[i], n
		}
	}
	return nil, 0
}

func positionOK(where Position, pos, n, total int, wordStarts map[int]bool) bool {
	switch where {
	case Anywhere:
		return true
	case Prefix:
		return pos == 0
	case Suffix:
		return pos+n == total
	case WordStart:
		return pos == 0 || wordStarts[pos]
	}
	return false
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// canonicalize applies each rule as its own left-to-right pass over the
// whole string. A Prefix rule rewrites at most one occurrence anchored at
// the start, a Suffix rule one occurrence anchored at the end, and an
// Anywhere rule every non-overlapping occurrence. The output of a pass is
// not rescanned by the same rule.
func (t *Table) canonicalize(input string) string {
	s := input
	for i := range t.rules {
		r := &t.rules[i]
		if r.fold {
			s = CollapseRuns(s)
			continue
		}
		switch r.Where {
		case Prefix:
			if strings.HasPrefix(s, r.Pattern) {
				s = r.Alternatives[0] + s[len(r.Pattern):]
			}
		case Suffix:
			if strings.HasSuffix(s, r.Pattern) {
				s = s[:len(s)-len(r.Pattern)] + r.Alternatives[0]
			}
		default:
			s = strings.Replace(s, r.Pattern, r.Alternatives[0], -1)
		}
	}
	return s
}

// CollapseRuns reduces every run of a repeated character to a single
// occurrence.
func CollapseRuns(s string) string {
	var b strings.Builder
	var last rune
	for _, r := range s {
		if b.Len() > 0 && r == last {
			continue
		}
		b.WriteRune(r)
		last = r
	}
	return b.String()
}

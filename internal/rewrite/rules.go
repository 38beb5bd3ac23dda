// Package rewrite applies ordered phonetic substitution rules to a string.
//
// A Table is an immutable, ordered collection of rules. It is built and
// validated once at start-up and is safe for unsynchronised concurrent use
// afterwards. The application mode is fixed when the table is built:
//
//   - Branching: one left-to-right scan over the input. At each cursor
//     position the longest matching pattern wins, with declaration order
//     breaking ties; a rule that offers several replacement alternatives
//     forks the candidate set. Characters no rule matches pass through
//     unchanged.
//   - Canonical: every rule has exactly one replacement and makes its own
//     rewrite pass over the whole string, in declaration order, so later
//     rules see the output of earlier ones.
package rewrite

import "fmt"

// Position constrains where a rule's pattern may match.
type Position int

const (
	// Anywhere places no constraint on the match position.
	Anywhere Position = iota

	// WordStart requires the match to begin at the start of a word.
	// Word starts are supplied by the caller; branching mode only.
	WordStart

	// Prefix requires the match to begin at the start of the string.
	Prefix

	// Suffix requires the match to end at the end of the string.
	Suffix
)

// Rule maps a source pattern to one or more replacement alternatives.
// An empty alternative deletes the matched pattern.
type Rule struct {
	Pattern      string
	Where        Position
	Alternatives []string

	// fold marks the run-collapsing rule created by Fold.
	fold bool
}

// Sub creates a rule with a single replacement.
func Sub(pattern string, where Position, replacement string) Rule {
	return Rule{Pattern: pattern, Where: where, Alternatives: []string{replacement}}
}

// Branch creates a rule with several replacement alternatives, tried in the
// order given. In canonical mode only the first alternative would ever
// apply, so Branch rules are rejected there.
func Branch(pattern string, where Position, alternatives ...string) Rule {
	return Rule{Pattern: pattern, Where: where, Alternatives: alternatives}
}

// Fold creates a canonical-mode rule that reduces every run of a repeated
// character to a single occurrence.
func Fold() Rule {
	return Rule{fold: true}
}

// Mode selects how a Table applies its rules.
type Mode int

const (
	// Branching scans the input once, forking at multi-alternative rules.
	Branching Mode = iota

	// Canonical applies each rule as a deterministic whole-string pass.
	Canonical
)

// ConfigurationError reports a malformed rule table at construction time.
type ConfigurationError struct {
	Index  int // position of the offending rule in the table
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rule table: rule %d: %s", e.Index, e.Reason)
}

// Table is an ordered, immutable rule collection with a fixed mode.
type Table struct {
	mode     Mode
	rules    []Rule
	patterns [][]rune // rules[i].Pattern as runes, pre-computed
	maxLen   int      // longest pattern length in runes
}

// NewTable validates the rules and builds a table. Validation is eager so a
// malformed table is caught at process start, not on first use.
func NewTable(mode Mode, rules []Rule) (*Table, error) {
	t := &Table{
		mode:     mode,
		rules:    make([]Rule, len(rules)),
		patterns: make([][]rune, len(rules)),
	}
	copy(t.rules, rules)

	seen := make(map[string]bool)
	for i, r := range t.rules {
		if r.fold {
			if mode != Canonical {
				return nil, &ConfigurationError{i, "fold rules are only valid in canonical mode"}
			}
			continue
		}
		if r.Pattern == "" {
			return nil, &ConfigurationError{i, "empty source pattern"}
		}
		if len(r.Alternatives) == 0 {
			return nil, &ConfigurationError{i, "no replacement alternatives"}
		}
		if mode == Canonical {
			if len(r.Alternatives) > 1 {
				return nil, &ConfigurationError{i, fmt.Sprintf("pattern %q has %d alternatives in canonical mode", r.Pattern, len(r.Alternatives))}
			}
			if r.Where == WordStart {
				return nil, &ConfigurationError{i, "word-start rules are only valid in branching mode"}
			}
		}
		if mode == Branching {
			key := fmt.Sprintf("%s|%d", r.Pattern, r.Where)
			if seen[key] {
				return nil, &ConfigurationError{i, fmt.Sprintf("duplicate pattern %q for the same position", r.Pattern)}
			}
			seen[key] = true
		}

		t.patterns[i] = []rune(r.Pattern)
		if n := len(t.patterns[i]); n > t.maxLen {
			t.maxLen = n
		}
	}
	return t, nil
}

// MustTable builds a table and panics on a ConfigurationError. Intended for
// tables that are fixed in code, where a malformed table is a programming
// error.
func MustTable(mode Mode, rules []Rule) *Table {
	t, err := NewTable(mode, rules)
	if err != nil {
		panic(err)
	}
	return t
}

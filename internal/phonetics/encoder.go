// Package phonetics encodes Latin-script transliterations of Arabic
// personal names into canonical phonetic keys for approximate matching.
//
// Two encoders are provided. ARCoder enumerates every phonetically
// plausible normalization of a name, as described in Moore, Hamid and
// Bromberger, "An Evaluation of Transliterated Arabic Name Matching
// Methods". Holmes collapses a name into a single canonical form, following
// Holmes, Kashfi and Aqeel, "Transliterated Arabic Name Search" (2004).
//
// Callers pick the variant for their consumer: candidate-set matching
// indexes the union of ARCoder keys, single-key indexing uses the Holmes
// key. The two are never substituted for each other silently.
package phonetics

import (
	"strings"

	"github.com/arname-match/internal/rewrite"
)

// Encoder encodes a name into one or more phonetic keys.
type Encoder interface {
	// Encode returns an ordered, duplicate-free, non-empty list of keys.
	// The order is stable across calls for the same input.
	Encode(name string) ([]string, error)
}

// Config holds the optional normalization settings shared by both
// encoders. The rule tables themselves are fixed and versioned with the
// code; there is nothing else to configure.
type Config struct {
	// LowercaseInput lower-cases the name before encoding. Default: true.
	LowercaseInput bool

	// StripNonAlpha drops characters outside the supported alphabet
	// instead of rejecting the name. Default: true.
	StripNonAlpha bool
}

// DefaultConfig returns the default encoder configuration.
func DefaultConfig() *Config {
	return &Config{
		LowercaseInput: true,
		StripNonAlpha:  true,
	}
}

// normalize trims and case-folds a raw name and enforces the supported
// alphabet. It reports a rewrite.InvalidInputError for a name that is empty
// after trimming, keeps no letters after stripping, or, with StripNonAlpha
// disabled, contains a foreign character.
func normalize(name string, cfg *Config) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return "", &rewrite.InvalidInputError{Input: name, Reason: "empty name"}
	}
	if cfg.LowercaseInput {
		s = strings.ToLower(s)
	}
	if cfg.StripNonAlpha {
		s = stripForeign(s)
	}
	if err := rewrite.CheckInput(s); err != nil {
		return "", err
	}
	if !hasLetter(s) {
		return "", &rewrite.InvalidInputError{Input: name, Reason: "no letters to encode"}
	}
	return s, nil
}

func stripForeign(s string) string {
	var b strings.Builder
	for _, r := range s {
		if rewrite.Valid(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasLetter(s string) bool {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// Package symspell implements SymSpell spelling correction for
// transliterated name tokens.
//
// SymSpell uses a pre-computed "delete dictionary" for O(1) lookup, which
// keeps per-query cost flat even with a large name corpus. Correction runs
// before phonetic encoding, so a typo like "Mohammmad" still lands on the
// keys of the intended spelling.
package symspell

import (
	"os"
	"strconv"
)

// Config holds SymSpell configuration parameters.
type Config struct {
	// MaxEditDistance is the maximum Damerau-Levenshtein distance for
	// corrections. Default: 2 (catches most typos while avoiding false
	// corrections).
	MaxEditDistance int

	// Enabled controls whether spelling correction is active.
	// Default: false (must be explicitly enabled).
	Enabled bool

	// MinTermLength is the minimum token length to attempt correction.
	// Default: 4 (leaves particles like "al", "abu" and "bin" alone).
	MinTermLength int

	// MinFrequency is the minimum frequency for a term to be included in
	// the dictionary. Default: 1 (include all terms).
	MinFrequency int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxEditDistance: 2,
		Enabled:         false,
		MinTermLength:   4,
		MinFrequency:    1,
	}
}

// LoadConfigFromEnv loads configuration from environment variables.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("SYMSPELL_ENABLED"); v != "" {
		cfg.Enabled = v == "true" || v == "1"
	}

	if v := os.Getenv("SYMSPELL_MAX_EDIT_DISTANCE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 3 {
			cfg.MaxEditDistance = n
		}
	}

	if v := os.Getenv("SYMSPELL_MIN_TERM_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinTermLength = n
		}
	}

	return cfg
}

// Suggestion represents a spelling correction suggestion.
type Suggestion struct {
	// Term is the suggested correct spelling.
	Term string

	// Distance is the edit distance from the input to this suggestion.
	Distance int

	// Frequency is the occurrence count in the dictionary.
	// Higher frequency terms are preferred when distances are equal.
	Frequency int64
}

// CorrectionResult tracks what was corrected for audit and explainability.
type CorrectionResult struct {
	// Original is the input token before correction.
	Original string

	// Corrected is the token after correction (same as Original if no
	// correction was applied).
	Corrected string

	// Distance is the edit distance (0 if no correction needed).
	Distance int

	// WasCorrected indicates whether a correction was applied.
	WasCorrected bool
}

// DictionaryEntry represents a term with its frequency for dictionary
// building.
type DictionaryEntry struct {
	Term      string
	Frequency int64
}

// DictionaryStats holds statistics about the built dictionary.
type DictionaryStats struct {
	// TermCount is the number of unique terms in the dictionary.
	TermCount int

	// DeleteCount is the number of entries in the delete dictionary.
	DeleteCount int

	// TotalFrequency is the sum of all term frequencies.
	TotalFrequency int64
}

package symspell

import (
	"database/sql"
	"strings"
)

// Corrector provides token-level spelling correction for a whole name.
type Corrector struct {
	symspell *SymSpell
	config   *Config
}

// NewCorrector builds a corrector from the name store. The configuration
// comes from the environment when config is nil.
func NewCorrector(db *sql.DB, config *Config) (*Corrector, error) {
	if config == nil {
		config = LoadConfigFromEnv()
	}
	builder := NewDictionaryBuilder(db, config)
	symspell, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Corrector{symspell: symspell, config: config}, nil
}

// NewCorrectorFromEntries builds a corrector from pre-built entries
// (used in tests and for offline operation).
func NewCorrectorFromEntries(entries []DictionaryEntry, config *Config) *Corrector {
	if config == nil {
		config = DefaultConfig()
	}
	return &Corrector{
		symspell: BuildFromEntries(entries, config),
		config:   config,
	}
}

// CorrectName corrects spelling token by token. Returns the corrected name
// and the corrections that were applied.
func (c *Corrector) CorrectName(name string) (string, []CorrectionResult) {
	if c == nil || c.symspell == nil {
		return name, nil
	}

	tokens := strings.Fields(name)
	var corrections []CorrectionResult
	modified := false

	for i, token := range tokens {
		result := c.correctToken(token)
		if result.WasCorrected {
			tokens[i] = result.Corrected
			corrections = append(corrections, result)
			modified = true
		}
	}

	if !modified {
		return name, nil
	}
	return strings.Join(tokens, " "), corrections
}

// correctToken attempts to correct a single token.
func (c *Corrector) correctToken(token string) CorrectionResult {
	token = strings.ToLower(strings.TrimSpace(token))
	unchanged := CorrectionResult{Original: token, Corrected: token}

	// Particles like "al", "abu" or "bin" are below the length floor and
	// are left alone; so is anything already in the dictionary.
	if len(token) < c.config.MinTermLength {
		return unchanged
	}
	if c.symspell.Contains(token) {
		return unchanged
	}

	best := c.symspell.LookupBest(token, c.config.MaxEditDistance)
	if best == nil || best.Distance == 0 {
		return unchanged
	}

	return CorrectionResult{
		Original:     token,
		Corrected:    best.Term,
		Distance:     best.Distance,
		WasCorrected: true,
	}
}

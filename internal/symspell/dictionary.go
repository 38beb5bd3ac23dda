package symspell

import (
	"database/sql"
	"fmt"
	"strings"
)

// DictionaryBuilder builds a SymSpell dictionary from the name store.
type DictionaryBuilder struct {
	db     *sql.DB
	config *Config
}

// NewDictionaryBuilder creates a new dictionary builder.
func NewDictionaryBuilder(db *sql.DB, config *Config) *DictionaryBuilder {
	if config == nil {
		config = DefaultConfig()
	}
	return &DictionaryBuilder{
		db:     db,
		config: config,
	}
}

// Build creates a dictionary from the tokens of every stored raw name,
// seeded with common transliterated name tokens so correction works on an
// empty or small corpus.
func (b *DictionaryBuilder) Build() (*SymSpell, error) {
	symspell := New(b.config)

	entries, err := b.extractNameTokens()
	if err != nil {
		return nil, fmt.Errorf("extracting name tokens: %w", err)
	}
	symspell.AddTerms(entries)

	symspell.AddTerms(commonNameTokens())

	return symspell, nil
}

// extractNameTokens pulls the distinct tokens of raw_name with their
// corpus frequencies.
func (b *DictionaryBuilder) extractNameTokens() ([]DictionaryEntry, error) {
	query := `
		SELECT LOWER(token) AS term, COUNT(*) AS freq
		FROM name_record,
			UNNEST(STRING_TO_ARRAY(REPLACE(raw_name, '-', ' '), ' ')) AS token
		WHERE token != ''
		GROUP BY LOWER(token)
	`

	rows, err := b.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying name tokens: %w", err)
	}
	defer rows.Close()

	var entries []DictionaryEntry
	for rows.Next() {
		var e DictionaryEntry
		if err := rows.Scan(&e.Term, &e.Frequency); err != nil {
			return nil, fmt.Errorf("scanning token row: %w", err)
		}
		e.Term = strings.TrimSpace(e.Term)
		if e.Term == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// commonNameTokens returns a seed list of frequent transliterated Arabic
// name tokens. Frequencies are rough relative weights, not corpus counts.
func commonNameTokens() []DictionaryEntry {
	return []DictionaryEntry{
		{Term: "mohammed", Frequency: 5000},
		{Term: "muhammad", Frequency: 5000},
		{Term: "mohamed", Frequency: 4000},
		{Term: "ahmed", Frequency: 4000},
		{Term: "ahmad", Frequency: 3500},
		{Term: "hussein", Frequency: 3000},
		{Term: "hassan", Frequency: 3000},
		{Term: "mahmoud", Frequency: 2500},
		{Term: "mustafa", Frequency: 2500},
		{Term: "ibrahim", Frequency: 2500},
		{Term: "khalid", Frequency: 2000},
		{Term: "abdullah", Frequency: 2000},
		{Term: "abdul", Frequency: 2000},
		{Term: "rahman", Frequency: 1800},
		{Term: "yusuf", Frequency: 1800},
		{Term: "omar", Frequency: 1500},
		{Term: "othman", Frequency: 1200},
		{Term: "salim", Frequency: 1200},
		{Term: "sohaib", Frequency: 1000},
		{Term: "fatima", Frequency: 2000},
		{Term: "aisha", Frequency: 1800},
		{Term: "khadija", Frequency: 1500},
		{Term: "zainab", Frequency: 1500},
		{Term: "mariam", Frequency: 1500},
		{Term: "layla", Frequency: 1200},
		{Term: "amina", Frequency: 1200},
	}
}

package symspell

import (
	"testing"
)

// Test dictionary with common transliterated name tokens
func buildTestDictionary() *SymSpell {
	entries := []DictionaryEntry{
		{Term: "mohammed", Frequency: 5000},
		{Term: "muhammad", Frequency: 4500},
		{Term: "ahmed", Frequency: 4000},
		{Term: "hussein", Frequency: 3000},
		{Term: "hassan", Frequency: 3000},
		{Term: "ibrahim", Frequency: 2500},
		{Term: "khalid", Frequency: 2000},
		{Term: "abdullah", Frequency: 2000},
		{Term: "rahman", Frequency: 1800},
		{Term: "yusuf", Frequency: 1800},
		{Term: "sohaib", Frequency: 1000},
		{Term: "fatima", Frequency: 2000},
		{Term: "zainab", Frequency: 1500},
	}

	config := &Config{
		MaxEditDistance: 2,
		MinTermLength:   4,
		MinFrequency:    1,
		Enabled:         true,
	}

	return BuildFromEntries(entries, config)
}

func TestSymSpellLookup(t *testing.T) {
	symspell := buildTestDictionary()

	tests := []struct {
		name         string
		input        string
		wantTerm     string
		wantDistance int
	}{
		{
			name:         "exact match",
			input:        "mohammed",
			wantTerm:     "mohammed",
			wantDistance: 0,
		},
		{
			name:         "exact match ignores case",
			input:        "KHALID",
			wantTerm:     "khalid",
			wantDistance: 0,
		},
		{
			name:         "missing letter",
			input:        "ibrahm",
			wantTerm:     "ibrahim",
			wantDistance: 1,
		},
		{
			name:         "extra letter",
			input:        "mohammmed",
			wantTerm:     "mohammed",
			wantDistance: 1,
		},
		{
			name:         "substituted letter",
			input:        "husseyn",
			wantTerm:     "hussein",
			wantDistance: 1,
		},
		{
			name:         "transposed letters",
			input:        "sohiab",
			wantTerm:     "sohaib",
			wantDistance: 1,
		},
		{
			name:         "missing doubled letter",
			input:        "abdulah",
			wantTerm:     "abdullah",
			wantDistance: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := symspell.LookupBest(tt.input, 2)
			if got == nil {
				t.Fatalf("LookupBest(%q) = nil, want %q", tt.input, tt.wantTerm)
			}
			if got.Term != tt.wantTerm {
				t.Errorf("LookupBest(%q).Term = %q, want %q", tt.input, got.Term, tt.wantTerm)
			}
			if got.Distance != tt.wantDistance {
				t.Errorf("LookupBest(%q).Distance = %d, want %d", tt.input, got.Distance, tt.wantDistance)
			}
		})
	}
}

func TestSymSpellLookupNoMatch(t *testing.T) {
	symspell := buildTestDictionary()

	for _, input := range []string{"xxxxxxxx", "qqqq", ""} {
		if got := symspell.LookupBest(input, 2); got != nil {
			t.Errorf("LookupBest(%q) = %+v, want nil", input, got)
		}
	}
}

func TestSymSpellFrequencyBreaksTies(t *testing.T) {
	entries := []DictionaryEntry{
		{Term: "samir", Frequency: 100},
		{Term: "tamir", Frequency: 900},
	}
	symspell := BuildFromEntries(entries, &Config{
		MaxEditDistance: 2,
		MinTermLength:   4,
		MinFrequency:    1,
	})

	// "aamir" is distance 1 from both; the more frequent term wins.
	got := symspell.LookupBest("aamir", 2)
	if got == nil || got.Term != "tamir" {
		t.Fatalf("LookupBest(\"aamir\") = %+v, want tamir", got)
	}
}

func TestCorrectName(t *testing.T) {
	corrector := NewCorrectorFromEntries([]DictionaryEntry{
		{Term: "mohammed", Frequency: 5000},
		{Term: "rahman", Frequency: 1800},
		{Term: "abdullah", Frequency: 2000},
	}, &Config{MaxEditDistance: 2, MinTermLength: 4, MinFrequency: 1, Enabled: true})

	tests := []struct {
		name            string
		input           string
		want            string
		wantCorrections int
	}{
		{
			name:            "clean name passes through",
			input:           "mohammed rahman",
			want:            "mohammed rahman",
			wantCorrections: 0,
		},
		{
			name:            "typo in one token",
			input:           "mohammmed rahman",
			want:            "mohammed rahman",
			wantCorrections: 1,
		},
		{
			name:            "short particle is left alone",
			input:           "al mohammed",
			want:            "al mohammed",
			wantCorrections: 0,
		},
		{
			name:            "unknown token without a close match is kept",
			input:           "xyzzy mohammed",
			want:            "xyzzy mohammed",
			wantCorrections: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, corrections := corrector.CorrectName(tt.input)
			if got != tt.want {
				t.Errorf("CorrectName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if len(corrections) != tt.wantCorrections {
				t.Errorf("CorrectName(%q) made %d corrections, want %d", tt.input, len(corrections), tt.wantCorrections)
			}
		})
	}
}

package phonetics

import "github.com/arname-match/internal/rewrite"

// holmesTable transcribes the ordered rule list from Holmes, Kashfi and
// Aqeel (2004). Each rule makes one pass over the whole name, so later
// rules see the output of earlier ones; the published stage numbering maps
// onto declaration order. Ambiguous clusters are resolved here by fixed
// priority, never branched.
var holmesTable = rewrite.MustTable(rewrite.Canonical, []rewrite.Rule{
	// Stage 1: article and honorific prefixes are dropped.
	rewrite.Sub("al-", rewrite.Prefix, ""),
	rewrite.Sub("al ", rewrite.Prefix, ""),
	rewrite.Sub("el-", rewrite.Prefix, ""),
	rewrite.Sub("el ", rewrite.Prefix, ""),
	rewrite.Sub("abul", rewrite.Prefix, ""),
	rewrite.Sub("abu ", rewrite.Prefix, ""),

	// Stage 2: separators are removed.
	rewrite.Sub("-", rewrite.Anywhere, ""),
	rewrite.Sub("'", rewrite.Anywhere, ""),
	rewrite.Sub(" ", rewrite.Anywhere, ""),

	// Stage 3: phonetic canonicalization.
	rewrite.Sub("abdal", rewrite.Anywhere, "abdul"),
	rewrite.Sub("abdel", rewrite.Anywhere, "abdul"),
	rewrite.Sub("abdol", rewrite.Anywhere, "abdul"),
	rewrite.Sub("der", rewrite.Anywhere, "dur"),
	rewrite.Sub("q", rewrite.Anywhere, "k"),
	rewrite.Sub("allah", rewrite.Anywhere, "ullah"),
	rewrite.Sub("ean", rewrite.Suffix, "id"),
	rewrite.Sub("ead", rewrite.Suffix, "id"),
	rewrite.Sub("ai", rewrite.Anywhere, "ay"),
	rewrite.Sub("e", rewrite.Anywhere, "i"),
	rewrite.Sub("ou", rewrite.Anywhere, "u"),
	rewrite.Sub("aee", rewrite.Anywhere, "ay"),
	rewrite.Sub("o", rewrite.Prefix, "u"),
	rewrite.Sub("ah", rewrite.Anywhere, "a"),
	rewrite.Sub("ae", rewrite.Anywhere, "ay"),
	rewrite.Sub("ei", rewrite.Prefix, "ay"),
	rewrite.Sub("gh", rewrite.Prefix, "k"),
	rewrite.Sub("kh", rewrite.Anywhere, "k"),
	rewrite.Sub("kah", rewrite.Anywhere, "ka"),
	rewrite.Sub("ie", rewrite.Anywhere, "i"),
	rewrite.Sub("awo", rewrite.Anywhere, "ao"),
	rewrite.Sub("awu", rewrite.Anywhere, "au"),
	rewrite.Sub("awz", rewrite.Anywhere, "az"),
	rewrite.Sub("dh", rewrite.Anywhere, "d"),
	// "ou" to "k" is in the published table even though the earlier
	// "ou" to "u" rule leaves it nothing to match; kept for fidelity.
	rewrite.Sub("ou", rewrite.Anywhere, "k"),
	rewrite.Sub("kua", rewrite.Anywhere, "ka"),
	rewrite.Sub("aw", rewrite.Anywhere, "au"),
	rewrite.Sub("v", rewrite.Anywhere, "w"),
	rewrite.Sub("say", rewrite.Prefix, "sy"),
	rewrite.Sub("g", rewrite.Prefix, "j"),
	rewrite.Sub("sw", rewrite.Prefix, "s"),

	// Stage 4: doubled letters. The ee and oo vowel pairs canonicalize
	// first; every remaining double reduces to a single letter.
	rewrite.Sub("ee", rewrite.Anywhere, "i"),
	rewrite.Sub("oo", rewrite.Anywhere, "u"),
	rewrite.Fold(),

	// Stage 5: suffix canonicalization.
	rewrite.Sub("ed", rewrite.Suffix, "ad"),
	rewrite.Sub("el", rewrite.Suffix, "al"),
	rewrite.Sub("eh", rewrite.Suffix, "a"),
	rewrite.Sub("y", rewrite.Suffix, "i"),
	rewrite.Sub("ii", rewrite.Suffix, "i"),
	rewrite.Sub("iya", rewrite.Anywhere, "ia"),
	rewrite.Sub("ah", rewrite.Anywhere, "a"),
	rewrite.Sub("ry", rewrite.Anywhere, "ri"),
	rewrite.Sub("mo", rewrite.Prefix, "mu"),
	rewrite.Sub("eya", rewrite.Suffix, "ia"),
})

// Holmes is the single-canonical encoder: one name, one key.
type Holmes struct {
	config *Config
}

// NewHolmes creates a Holmes encoder. A nil config uses the defaults.
func NewHolmes(config *Config) *Holmes {
	if config == nil {
		config = DefaultConfig()
	}
	return &Holmes{config: config}
}

// Encode returns the name's canonical key as a one-element list.
func (h *Holmes) Encode(name string) ([]string, error) {
	s, err := normalize(name, h.config)
	if err != nil {
		return nil, err
	}
	return holmesTable.Rewrite(s, nil)
}

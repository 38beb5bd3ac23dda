package phonetics

import (
	"strings"
	"unicode/utf8"

	"github.com/arname-match/internal/rewrite"
)

// arcoderTable transcribes the cluster table from Moore, Hamid and
// Bromberger. Letter clusters that render more than one Arabic phoneme are
// branch rules; the scan prefers two-letter clusters over single letters,
// so declaration order only decides between rules of equal length.
//
// The scan runs over the name's words joined end to end, so a two-letter
// cluster may straddle the seam between two words. Only the word-initial
// reading of "ch" is position-restricted.
var arcoderTable = rewrite.MustTable(rewrite.Branching, []rewrite.Rule{
	// Two-letter clusters.
	rewrite.Branch("ch", rewrite.WordStart, "h", "0"),
	rewrite.Sub("ch", rewrite.Anywhere, "0"),
	rewrite.Branch("ai", rewrite.Anywhere, "i", "ae"),
	rewrite.Sub("ay", rewrite.Anywhere, "i"),
	rewrite.Sub("eh", rewrite.Anywhere, "e"),
	rewrite.Sub("gh", rewrite.Anywhere, "k"),
	rewrite.Sub("iy", rewrite.Anywhere, "e"),
	rewrite.Sub("kh", rewrite.Anywhere, "k"),
	rewrite.Sub("ph", rewrite.Anywhere, "f"),
	rewrite.Sub("ou", rewrite.Anywhere, "u"),
	rewrite.Sub("oo", rewrite.Anywhere, "u"),
	rewrite.Sub("sh", rewrite.Anywhere, "0"),
	rewrite.Sub("th", rewrite.Anywhere, "z"),
	rewrite.Branch("ua", rewrite.Anywhere, "a", "ua", "uwa"),
	rewrite.Sub("wu", rewrite.Anywhere, "u"),

	// Name-final letters, tried before the general single letters.
	rewrite.Branch("e", rewrite.Suffix, "", "e"),
	rewrite.Sub("h", rewrite.Suffix, ""),
	rewrite.Branch("t", rewrite.Suffix, "t", "d"),

	// Single letters.
	rewrite.Sub("c", rewrite.Anywhere, "s"),
	rewrite.Branch("g", rewrite.Anywhere, "k", "j"),
	rewrite.Branch("i", rewrite.Anywhere, "i", "e"),
	rewrite.Sub("o", rewrite.Anywhere, "u"),
	rewrite.Sub("p", rewrite.Anywhere, "b"),
	rewrite.Sub("q", rewrite.Anywhere, "k"),
	rewrite.Sub("u", rewrite.Anywhere, "u"),
	rewrite.Sub("v", rewrite.Anywhere, "f"),
	rewrite.Sub("w", rewrite.Anywhere, "u"),
	rewrite.Sub("y", rewrite.Anywhere, "e"),
	rewrite.Sub("z", rewrite.Anywhere, "s"),
	rewrite.Sub("‘", rewrite.Anywhere, "a"),
	rewrite.Branch("'", rewrite.Anywhere, "", "w"),
})

// ARCoder is the multi-candidate encoder. Every phonetically plausible
// reading of an ambiguous cluster becomes its own key, so a name encodes to
// a small candidate set rather than a single string.
type ARCoder struct {
	config *Config
}

// NewARCoder creates an ARCoder encoder. A nil config uses the defaults.
func NewARCoder(config *Config) *ARCoder {
	if config == nil {
		config = DefaultConfig()
	}
	return &ARCoder{config: config}
}

// Encode returns every distinct phonetic key for the name, in generation
// order.
func (a *ARCoder) Encode(name string) ([]string, error) {
	s, err := normalize(name, a.config)
	if err != nil {
		return nil, err
	}

	// Hyphens separate name parts the same way spaces do.
	s = strings.Replace(s, "-", " ", -1)

	// A doubled letter carries no phonetic information of its own;
	// collapse runs before scanning.
	s = rewrite.CollapseRuns(s)

	words := strings.Fields(s)
	if len(words) == 0 {
		return nil, &rewrite.InvalidInputError{Input: name, Reason: "no letters to encode"}
	}
	joined, starts := joinWords(words)

	expanded, err := arcoderTable.Rewrite(joined, starts)
	if err != nil {
		return nil, err
	}

	// Different branch paths can converge once runs are folded; keep the
	// first-seen occurrence so the order stays stable.
	seen := make(map[string]bool)
	keys := make([]string, 0, len(expanded))
	for _, enc := range expanded {
		key := rewrite.CollapseRuns(enc)
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys, nil
}

// joinWords concatenates the name's words and records the rune offset at
// which each word begins.
func joinWords(words []string) (string, map[int]bool) {
	starts := make(map[int]bool, len(words))
	var b strings.Builder
	offset := 0
	for _, w := range words {
		starts[offset] = true
		b.WriteString(w)
		offset += utf8.RuneCountInString(w)
	}
	return b.String(), starts
}

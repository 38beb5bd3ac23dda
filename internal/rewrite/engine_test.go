package rewrite

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		mode    Mode
		rules   []Rule
		wantErr bool
	}{
		{
			name:    "valid branching table",
			mode:    Branching,
			rules:   []Rule{Branch("ab", Anywhere, "x", "y"), Sub("a", Anywhere, "1")},
			wantErr: false,
		},
		{
			name:    "valid canonical table with fold",
			mode:    Canonical,
			rules:   []Rule{Sub("ab", Anywhere, "x"), Fold()},
			wantErr: false,
		},
		{
			name:    "empty source pattern",
			mode:    Branching,
			rules:   []Rule{Sub("", Anywhere, "x")},
			wantErr: true,
		},
		{
			name:    "no alternatives",
			mode:    Branching,
			rules:   []Rule{Branch("a", Anywhere)},
			wantErr: true,
		},
		{
			name:    "branch rule in canonical mode",
			mode:    Canonical,
			rules:   []Rule{Branch("a", Anywhere, "x", "y")},
			wantErr: true,
		},
		{
			name:    "duplicate pattern and position in branching mode",
			mode:    Branching,
			rules:   []Rule{Sub("a", Anywhere, "x"), Sub("a", Anywhere, "y")},
			wantErr: true,
		},
		{
			name:    "same pattern at different positions is allowed",
			mode:    Branching,
			rules:   []Rule{Sub("a", WordStart, "x"), Sub("a", Anywhere, "y")},
			wantErr: false,
		},
		{
			name:    "fold rule in branching mode",
			mode:    Branching,
			rules:   []Rule{Fold()},
			wantErr: true,
		},
		{
			name:    "word-start rule in canonical mode",
			mode:    Canonical,
			rules:   []Rule{Sub("a", WordStart, "x")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.mode, tt.rules)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTable() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("NewTable() error type = %T, want *ConfigurationError", err)
				}
			}
		})
	}
}

func TestCheckInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain letters", "sohaib", false},
		{"separators and quotes", "abd al-rahman ‘ali'", false},
		{"empty string", "", true},
		{"digit", "ali3", true},
		{"accented letter", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				var invErr *InvalidInputError
				if !errors.As(err, &invErr) {
					t.Errorf("CheckInput(%q) error type = %T, want *InvalidInputError", tt.input, err)
				}
			}
		})
	}
}

func TestBranchingRewrite(t *testing.T) {
	table := MustTable(Branching, []Rule{
		Branch("ab", Anywhere, "x", "y"),
		Sub("a", Anywhere, "1"),
		Branch("c", Anywhere, "c", "k"),
		Branch("e", Anywhere, "", "e"),
	})

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "longest match wins over single letter",
			input: "ab",
			want:  []string{"x", "y"},
		},
		{
			name:  "single letter rule applies when no cluster matches",
			input: "a",
			want:  []string{"1"},
		},
		{
			name:  "unmatched characters pass through",
			input: "zaz",
			want:  []string{"z1z"},
		},
		{
			name:  "two branch points expand in product order",
			input: "abc",
			want:  []string{"xc", "xk", "yc", "yk"},
		},
		{
			name:  "converging branches are deduplicated",
			input: "ee",
			want:  []string{"", "e", "ee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Rewrite(tt.input, nil)
			if err != nil {
				t.Fatalf("Rewrite(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rewrite(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestBranchingPositions(t *testing.T) {
	table := MustTable(Branching, []Rule{
		Sub("ch", WordStart, "H"),
		Sub("ch", Anywhere, "0"),
		Sub("e", Suffix, "E"),
	})

	tests := []struct {
		name       string
		input      string
		wordStarts map[int]bool
		want       []string
	}{
		{
			name:  "offset zero is always a word start",
			input: "che",
			want:  []string{"HE"},
		},
		{
			name:       "word start rule applies at a marked offset",
			input:      "bachad",
			wordStarts: map[int]bool{0: true, 2: true},
			want:       []string{"baHad"},
		},
		{
			name:  "interior match falls back to the anywhere rule",
			input: "acha",
			want:  []string{"a0a"},
		},
		{
			name:  "suffix rule only fires at the end of the string",
			input: "ene",
			want:  []string{"enE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Rewrite(tt.input, tt.wordStarts)
			if err != nil {
				t.Fatalf("Rewrite(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rewrite(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestCanonicalRewrite(t *testing.T) {
	tests := []struct {
		name  string
		rules []Rule
		input string
		want  string
	}{
		{
			name:  "passes cascade in declaration order",
			rules: []Rule{Sub("b", Anywhere, "c"), Sub("c", Anywhere, "d")},
			input: "abc",
			want:  "add",
		},
		{
			name:  "a pass does not rescan its own output",
			rules: []Rule{Sub("ou", Anywhere, "u")},
			input: "oou",
			want:  "ou",
		},
		{
			name:  "prefix rewrites only the anchored occurrence",
			rules: []Rule{Sub("a", Prefix, "x")},
			input: "aba",
			want:  "xba",
		},
		{
			name:  "prefix does not fire mid-string",
			rules: []Rule{Sub("a", Prefix, "x")},
			input: "ba",
			want:  "ba",
		},
		{
			name:  "suffix rewrites only the anchored occurrence",
			rules: []Rule{Sub("a", Suffix, "x")},
			input: "aba",
			want:  "abx",
		},
		{
			name:  "anywhere rewrites all occurrences in one pass",
			rules: []Rule{Sub("a", Anywhere, "x")},
			input: "aba",
			want:  "xbx",
		},
		{
			name:  "fold collapses doubled letters between passes",
			rules: []Rule{Sub("q", Anywhere, "k"), Fold(), Sub("kk", Anywhere, "!")},
			input: "qkaa",
			want:  "ka",
		},
		{
			name:  "no matching rule leaves the input unchanged",
			rules: []Rule{Sub("zz", Anywhere, "x")},
			input: "salim",
			want:  "salim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := MustTable(Canonical, tt.rules)
			got, err := table.Rewrite(tt.input, nil)
			if err != nil {
				t.Fatalf("Rewrite(%q) error = %v", tt.input, err)
			}
			if len(got) != 1 {
				t.Fatalf("Rewrite(%q) returned %d results, want exactly 1", tt.input, len(got))
			}
			if got[0] != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestCollapseRuns(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "a"},
		{"aab", "ab"},
		{"abba", "aba"},
		{"aaa bbb", "a b"},
		{"abab", "abab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CollapseRuns(tt.input); got != tt.want {
				t.Errorf("CollapseRuns(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRewriteRejectsInvalidInput(t *testing.T) {
	table := MustTable(Branching, []Rule{Sub("a", Anywhere, "x")})

	for _, input := range []string{"", "ali3", "a_b"} {
		if _, err := table.Rewrite(input, nil); err == nil {
			t.Errorf("Rewrite(%q) expected an error", input)
		}
	}
}

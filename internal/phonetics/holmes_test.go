package phonetics

import "testing"

func TestHolmesEncode(t *testing.T) {
	coder := NewHolmes(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ai vowel pair canonicalizes",
			input: "Sohaib",
			want:  "sohayb",
		},
		{
			name:  "doubled consonant and mo prefix",
			input: "Mohammed",
			want:  "muhamid",
		},
		{
			name:  "article prefix is dropped",
			input: "Al-Farabi",
			want:  "farabi",
		},
		{
			name:  "abdel compound canonicalizes to abdul",
			input: "Abdel Rahman",
			want:  "abdulraman",
		},
		{
			name:  "q canonicalizes to k",
			input: "Qasim",
			want:  "kasim",
		},
		{
			name:  "kh cluster canonicalizes to k",
			input: "Khalid",
			want:  "kalid",
		},
		{
			name:  "no matching rule passes the name through lower-cased",
			input: "Hamd",
			want:  "hamd",
		},
		{
			name:  "spaces and apostrophes are removed",
			input: "Sa'd Allah",
			want:  "sadula",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coder.Encode(tt.input)
			if err != nil {
				t.Fatalf("Encode(%q) error = %v", tt.input, err)
			}
			if len(got) != 1 {
				t.Fatalf("Encode(%q) returned %d keys, want exactly 1", tt.input, len(got))
			}
			if got[0] != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.input, got[0], tt.want)
			}
		})
	}
}

func TestHolmesInvalidInput(t *testing.T) {
	coder := NewHolmes(nil)

	for _, input := range []string{"", "  ", "99"} {
		if _, err := coder.Encode(input); err == nil {
			t.Errorf("Encode(%q) expected an error", input)
		}
	}
}

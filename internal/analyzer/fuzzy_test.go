package analyzer

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "abc", 0},
		{"abc", "", 3},
		{"", "xyz", 3},
		{"kitten", "sitting", 3},
		{"emai", "email", 1},
		{"age", "sage", 1},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	columns := []string{"email", "age", "user_name"}

	tests := []struct {
		name string
		want string
	}{
		{"emai", "email"},
		{"emial", "email"},
		{"age", "age"},
		{"username", "user_name"},
		{"completely_different", ""},
		{"emzzz", ""}, // distance 3 is past the cutoff
	}

	for _, tt := range tests {
		if got := findBestMatch(tt.name, columns); got != tt.want {
			t.Errorf("findBestMatch(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFindBestMatchPrefersFirstMinimum(t *testing.T) {
	// Two candidates at equal distance: the earlier one wins.
	if got := findBestMatch("ab", []string{"ax", "ay"}); got != "ax" {
		t.Errorf("Expected first minimum 'ax', got %q", got)
	}
}

func TestFindBestMatchEmptyCandidates(t *testing.T) {
	if got := findBestMatch("email", nil); got != "" {
		t.Errorf("Expected empty match, got %q", got)
	}
}

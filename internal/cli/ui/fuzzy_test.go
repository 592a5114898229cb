package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Account", "Account", 0},
		{"Acount", "Account", 1},
		{"ñandú", "nandu", 2},
	}

	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"Account", "Amount", "Invoice", "account"}

	got := FindSimilar("Acount", candidates, nil)
	want := []string{"Account", "Amount", "account"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindSimilar = %v, want %v", got, want)
	}

	got = FindSimilar("Acount", candidates, &FuzzyMatchOptions{CaseSensitive: true, MaxDistance: 1})
	if !reflect.DeepEqual(got, []string{"Account", "Amount"}) {
		t.Errorf("case-sensitive FindSimilar = %v", got)
	}

	got = FindSimilar("zzzzzzzz", candidates, nil)
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %v", got)
	}

	got = FindSimilar("Acount", candidates, &FuzzyMatchOptions{MaxSuggestions: 1})
	if !reflect.DeepEqual(got, []string{"Account"}) {
		t.Errorf("limited FindSimilar = %v", got)
	}
}

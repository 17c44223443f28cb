package languages

import (
	"sort"
	"strings"
	"testing"
)

func TestAllIsSortedAndComplete(t *testing.T) {
	all := All()

	if len(all) != len(supported) {
		t.Fatalf("Expected %d languages, got %d", len(supported), len(all))
	}

	sorted := sort.SliceIsSorted(all, func(i, j int) bool {
		return strings.ToLower(all[i]) < strings.ToLower(all[j])
	})
	if !sorted {
		t.Errorf("All() is not sorted: %v", all)
	}

	// Mutating the result must not leak into the package state
	all[0] = "Brainfuck"
	if IsSupported("Brainfuck") {
		t.Error("All() returned the internal slice")
	}
}

func TestDefaultsAreSupported(t *testing.T) {
	for _, name := range []string{DefaultInput, DefaultOutput, NaturalLanguage} {
		if !IsSupported(name) {
			t.Errorf("Expected %q to be supported", name)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"python", "Python", true},
		{"  JAVASCRIPT ", "JavaScript", true},
		{"c++", "C++", true},
		{"natural language", NaturalLanguage, true},
		{"Klingon", "Klingon", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

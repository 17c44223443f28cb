package languages

import (
	"sort"
	"strings"
)

// NaturalLanguage is the pseudo-language for plain-English descriptions of code
const NaturalLanguage = "Natural Language"

// Default picker selections for a fresh session
const (
	DefaultInput  = "JavaScript"
	DefaultOutput = "Python"
)

var supported = []string{
	"Assembly Language",
	"Bash",
	"C",
	"C#",
	"C++",
	"Clojure",
	"COBOL",
	"CoffeeScript",
	"CSS",
	"Dart",
	"Elixir",
	"F#",
	"Fortran",
	"Go",
	"Groovy",
	"Haskell",
	"HTML",
	"Java",
	"JavaScript",
	"JSX",
	"Julia",
	"Kotlin",
	"Lisp",
	"Lua",
	"MATLAB",
	NaturalLanguage,
	"Objective-C",
	"Pascal",
	"Perl",
	"PHP",
	"PowerShell",
	"Python",
	"R",
	"Racket",
	"Ruby",
	"Rust",
	"SAS",
	"Scala",
	"SQL",
	"Swift",
	"SwiftUI",
	"TSX",
	"TypeScript",
	"Visual Basic .NET",
	"Vue",
}

var index = func() map[string]string {
	m := make(map[string]string, len(supported))
	for _, name := range supported {
		m[strings.ToLower(name)] = name
	}
	return m
}()

// All returns the supported language names sorted case-insensitively
func All() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// IsSupported reports whether name is one of the offered languages
func IsSupported(name string) bool {
	_, ok := index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Normalize returns the canonical spelling of name, or name unchanged and
// false when the language is unknown
func Normalize(name string) (string, bool) {
	canonical, ok := index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return name, false
	}
	return canonical, true
}

package translation

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"codeberg.org/snonux/codetranslator/internal/languages"
)

// MaxCodeLength is the maximum number of characters accepted for the input code
const MaxCodeLength = 6000

// Request is a single translation job as sent from the client to the relay
type Request struct {
	InputLanguage  string `json:"inputLanguage"`
	OutputLanguage string `json:"outputLanguage"`
	InputCode      string `json:"inputCode"`
}

// Validation errors. The messages are shown to the user as-is.
var (
	ErrSameLanguage = errors.New("Please select different languages.")
	ErrEmptyCode    = errors.New("Please enter some code.")
)

// CodeTooLongError reports input code exceeding the character limit
type CodeTooLongError struct {
	Length int
	Limit  int
}

func (e *CodeTooLongError) Error() string {
	return fmt.Sprintf("Please enter code less than %d characters. You are currently at %d characters.", e.Limit, e.Length)
}

// UnsupportedLanguageError reports a language outside the offered set
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Language)
}

// CodeLength counts characters, not bytes
func CodeLength(code string) int {
	return utf8.RuneCountInString(code)
}

// Validate checks the request in the order the user is told about
// problems: same language, empty code, then length.
func (r Request) Validate() error {
	if r.InputLanguage == r.OutputLanguage {
		return ErrSameLanguage
	}

	if r.InputCode == "" {
		return ErrEmptyCode
	}

	if n := CodeLength(r.InputCode); n > MaxCodeLength {
		return &CodeTooLongError{Length: n, Limit: MaxCodeLength}
	}

	return nil
}

// CheckLanguages verifies both languages belong to the supported set
func (r Request) CheckLanguages() error {
	for _, name := range []string{r.InputLanguage, r.OutputLanguage} {
		if !languages.IsSupported(name) {
			return &UnsupportedLanguageError{Language: name}
		}
	}
	return nil
}

// IsValidationError reports whether err was produced by Validate or CheckLanguages
func IsValidationError(err error) bool {
	var tooLong *CodeTooLongError
	var unsupported *UnsupportedLanguageError
	return errors.Is(err, ErrSameLanguage) ||
		errors.Is(err, ErrEmptyCode) ||
		errors.As(err, &tooLong) ||
		errors.As(err, &unsupported)
}

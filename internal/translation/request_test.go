package translation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr error
	}{
		{
			name: "valid request",
			request: Request{
				InputLanguage:  "JavaScript",
				OutputLanguage: "Python",
				InputCode:      "console.log('hi')",
			},
		},
		{
			name: "same language",
			request: Request{
				InputLanguage:  "Python",
				OutputLanguage: "Python",
				InputCode:      "print('hi')",
			},
			wantErr: ErrSameLanguage,
		},
		{
			name: "same language wins over empty code",
			request: Request{
				InputLanguage:  "Go",
				OutputLanguage: "Go",
			},
			wantErr: ErrSameLanguage,
		},
		{
			name: "empty code",
			request: Request{
				InputLanguage:  "JavaScript",
				OutputLanguage: "Python",
			},
			wantErr: ErrEmptyCode,
		},
		{
			name: "exactly at the limit",
			request: Request{
				InputLanguage:  "JavaScript",
				OutputLanguage: "Python",
				InputCode:      strings.Repeat("x", MaxCodeLength),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_TooLong(t *testing.T) {
	req := Request{
		InputLanguage:  "JavaScript",
		OutputLanguage: "Python",
		InputCode:      strings.Repeat("a", 6001),
	}

	err := req.Validate()

	var tooLong *CodeTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("Expected CodeTooLongError, got %v", err)
	}
	if tooLong.Length != 6001 || tooLong.Limit != 6000 {
		t.Errorf("Expected 6001/6000, got %d/%d", tooLong.Length, tooLong.Limit)
	}
	if !strings.Contains(err.Error(), "6001") || !strings.Contains(err.Error(), "6000") {
		t.Errorf("Message should report both counts, got %q", err.Error())
	}
}

func TestValidate_CountsCharactersNotBytes(t *testing.T) {
	// 6000 two-byte runes: 12000 bytes but within the limit
	req := Request{
		InputLanguage:  "JavaScript",
		OutputLanguage: "Python",
		InputCode:      strings.Repeat("я", MaxCodeLength),
	}

	if err := req.Validate(); err != nil {
		t.Errorf("Expected multi-byte input at the limit to pass, got %v", err)
	}
}

func TestCheckLanguages(t *testing.T) {
	ok := Request{InputLanguage: "JavaScript", OutputLanguage: "Python"}
	if err := ok.CheckLanguages(); err != nil {
		t.Errorf("CheckLanguages() unexpected error: %v", err)
	}

	bad := Request{InputLanguage: "JavaScript", OutputLanguage: "Klingon"}
	err := bad.CheckLanguages()

	var unsupported *UnsupportedLanguageError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Expected UnsupportedLanguageError, got %v", err)
	}
	if unsupported.Language != "Klingon" {
		t.Errorf("Expected Klingon, got %q", unsupported.Language)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrEmptyCode) {
		t.Error("ErrEmptyCode should be a validation error")
	}
	if !IsValidationError(&CodeTooLongError{Length: 7000, Limit: 6000}) {
		t.Error("CodeTooLongError should be a validation error")
	}
	if IsValidationError(errors.New("connection refused")) {
		t.Error("transport errors are not validation errors")
	}
}

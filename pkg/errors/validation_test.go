package errors

import (
	"testing"
)

func TestValidateStackName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "lines", false},
		{"valid with dash", "heavy-blur", false},
		{"valid with underscore", "sin_v2", false},
		{"empty", "", false},

		{"too long", strings128() + "x", true},
		{"path traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"tab", "a\tb", true},
		{"carriage return", "blur\r", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStackName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStackName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidStackName) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidStackName)
			}
		})
	}
}

func strings128() string {
	b := make([]byte, 128)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}

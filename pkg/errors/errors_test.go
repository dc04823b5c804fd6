package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingCredential, "missing credential: %s", "GH_AUTH_TOKEN")

	if err.Code != ErrCodeMissingCredential {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingCredential)
	}

	if err.Message != "missing credential: GH_AUTH_TOKEN" {
		t.Errorf("Message = %v, want %v", err.Message, "missing credential: GH_AUTH_TOKEN")
	}

	expected := "MISSING_CREDENTIAL: missing credential: GH_AUTH_TOKEN"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidToken, "test"),
			code:     ErrCodeInvalidToken,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidToken, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidToken, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidToken,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidToken,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodePaginationNotImplemented, "overflow")); code != ErrCodePaginationNotImplemented {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodePaginationNotImplemented)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidToken, "the code-hosting token is invalid")
	if msg := UserMessage(err); msg != "the code-hosting token is invalid" {
		t.Errorf("UserMessage() = %v", msg)
	}
	plain := errors.New("plain error")
	if msg := UserMessage(plain); msg != "plain error" {
		t.Errorf("UserMessage() = %v", msg)
	}
}

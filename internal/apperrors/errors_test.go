// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics, constructor helpers, and compatibility
// with errors.Is() including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrInvalidFile
// ---------------------------------------------------------------------------

func TestErrInvalidFile_Error(t *testing.T) {
	t.Parallel()
	err := NewInvalidFileError("/videos/movie.mkv", 1024)
	expected := "video file /videos/movie.mkv is too small to fingerprint (1024 bytes)"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestErrInvalidFile_Is(t *testing.T) {
	t.Parallel()
	err := NewInvalidFileError("/videos/movie.mkv", 1024)

	t.Run("matches another ErrInvalidFile", func(t *testing.T) {
		if !errors.Is(err, &ErrInvalidFile{}) {
			t.Error("expected errors.Is to match *ErrInvalidFile")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("search failed: %w", err)
		if !errors.Is(wrapped, &ErrInvalidFile{}) {
			t.Error("expected errors.Is to match through wrapping")
		}
	})

	t.Run("does not match other taxonomy entries", func(t *testing.T) {
		if errors.Is(err, &ErrSearchQuery{}) {
			t.Error("expected errors.Is not to match *ErrSearchQuery")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrLanguageNotSupported / ErrFormatNotSupported
// ---------------------------------------------------------------------------

func TestCapabilityErrors_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "language",
			err:      NewLanguageNotSupportedError("shooter", "Fra"),
			expected: `provider shooter does not support language "Fra"`,
		},
		{
			name:     "format",
			err:      NewFormatNotSupportedError("shooter", "sup"),
			expected: `provider shooter does not support format "sup"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCapabilityErrors_AreDistinct(t *testing.T) {
	t.Parallel()
	langErr := NewLanguageNotSupportedError("shooter", "Fra")
	formatErr := NewFormatNotSupportedError("shooter", "sup")

	if errors.Is(langErr, &ErrFormatNotSupported{}) {
		t.Error("language error should not match *ErrFormatNotSupported")
	}
	if errors.Is(formatErr, &ErrLanguageNotSupported{}) {
		t.Error("format error should not match *ErrLanguageNotSupported")
	}
	if !errors.Is(langErr, &ErrLanguageNotSupported{}) {
		t.Error("language error should match its own type regardless of fields")
	}
}

// ---------------------------------------------------------------------------
// ErrSearchQuery
// ---------------------------------------------------------------------------

func TestErrSearchQuery_WrapsCause(t *testing.T) {
	t.Parallel()
	cause := errors.New("connection refused")
	err := NewSearchQueryError("shooter", "Eng", cause)

	if got := err.Error(); got != `provider shooter: query for language "Eng" failed: connection refused` {
		t.Errorf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause via Unwrap")
	}
	if !errors.Is(err, &ErrSearchQuery{}) {
		t.Error("expected errors.Is to match *ErrSearchQuery")
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

// ---------------------------------------------------------------------------
// ErrProviderContract
// ---------------------------------------------------------------------------

func TestErrProviderContract_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrProviderContract
		expected string
	}{
		{
			name:     "with name",
			err:      NewProviderContractError("bogus", "factory is nil"),
			expected: `provider "bogus" violates the provider contract: factory is nil`,
		},
		{
			name:     "without name",
			err:      NewProviderContractError("", "provider name is empty"),
			expected: "provider violates the provider contract: provider name is empty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

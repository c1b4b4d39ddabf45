package apperrors

import "fmt"

// ErrInvalidFile is returned when a video file is too small to fingerprint.
type ErrInvalidFile struct {
	Path string
	Size int64
}

// Error implements the error interface.
func (e *ErrInvalidFile) Error() string {
	return fmt.Sprintf("video file %s is too small to fingerprint (%d bytes)", e.Path, e.Size)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidFile) Is(target error) bool {
	_, ok := target.(*ErrInvalidFile)
	return ok
}

// NewInvalidFileError creates a new ErrInvalidFile.
func NewInvalidFileError(path string, size int64) *ErrInvalidFile {
	return &ErrInvalidFile{
		Path: path,
		Size: size,
	}
}

// ErrLanguageNotSupported is returned when a requested language is absent
// from a provider's declared capability set.
type ErrLanguageNotSupported struct {
	Provider string
	Language string
}

// Error implements the error interface.
func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("provider %s does not support language %q", e.Provider, e.Language)
}

// Is allows for error checking with errors.Is().
func (e *ErrLanguageNotSupported) Is(target error) bool {
	_, ok := target.(*ErrLanguageNotSupported)
	return ok
}

// NewLanguageNotSupportedError creates a new ErrLanguageNotSupported.
func NewLanguageNotSupportedError(provider, language string) *ErrLanguageNotSupported {
	return &ErrLanguageNotSupported{
		Provider: provider,
		Language: language,
	}
}

// ErrFormatNotSupported is returned when a requested subtitle format is absent
// from a provider's declared capability set.
type ErrFormatNotSupported struct {
	Provider string
	Format   string
}

// Error implements the error interface.
func (e *ErrFormatNotSupported) Error() string {
	return fmt.Sprintf("provider %s does not support format %q", e.Provider, e.Format)
}

// Is allows for error checking with errors.Is().
func (e *ErrFormatNotSupported) Is(target error) bool {
	_, ok := target.(*ErrFormatNotSupported)
	return ok
}

// NewFormatNotSupportedError creates a new ErrFormatNotSupported.
func NewFormatNotSupportedError(provider, format string) *ErrFormatNotSupported {
	return &ErrFormatNotSupported{
		Provider: provider,
		Format:   format,
	}
}

// ErrSearchQuery is returned when contacting or decoding the remote subtitle
// service fails for any requested language. It aborts the whole search; no
// partial per-language results are surfaced.
type ErrSearchQuery struct {
	Provider string
	Language string
	Cause    error
}

// Error implements the error interface.
func (e *ErrSearchQuery) Error() string {
	return fmt.Sprintf("provider %s: query for language %q failed: %v", e.Provider, e.Language, e.Cause)
}

// Is allows for error checking with errors.Is().
func (e *ErrSearchQuery) Is(target error) bool {
	_, ok := target.(*ErrSearchQuery)
	return ok
}

// Unwrap exposes the underlying transport or decode failure.
func (e *ErrSearchQuery) Unwrap() error {
	return e.Cause
}

// NewSearchQueryError creates a new ErrSearchQuery wrapping cause.
func NewSearchQueryError(provider, language string, cause error) *ErrSearchQuery {
	return &ErrSearchQuery{
		Provider: provider,
		Language: language,
		Cause:    cause,
	}
}

// ErrProviderContract is returned when a provider registration does not
// satisfy the provider contract (nil factory, empty name, or a provider that
// declares no capabilities).
type ErrProviderContract struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e *ErrProviderContract) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("provider %q violates the provider contract: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("provider violates the provider contract: %s", e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrProviderContract) Is(target error) bool {
	_, ok := target.(*ErrProviderContract)
	return ok
}

// NewProviderContractError creates a new ErrProviderContract.
func NewProviderContractError(name, reason string) *ErrProviderContract {
	return &ErrProviderContract{
		Name:   name,
		Reason: reason,
	}
}

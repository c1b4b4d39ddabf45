// Package provider defines the contract every subtitle source implements and
// the process-wide registry used to select one by name. Providers resolve
// download descriptors for a local video file; fetching the subtitle bodies
// is downstream of this package.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
	"github.com/KennethWKZ/subfinder/internal/cache"
	"github.com/KennethWKZ/subfinder/internal/config"
	"github.com/KennethWKZ/subfinder/internal/models"
)

// Capabilities declares the languages and subtitle formats a provider
// supports. Declared once at provider definition time and never mutated;
// all request validation is a membership check against these sets.
type Capabilities struct {
	// Languages the provider can search for (e.g. "Chn", "Eng").
	// The first entry is the default when a caller requests none.
	Languages []string
	// Formats are lowercased subtitle extensions (e.g. "srt", "ass").
	// All of them are requested when a caller specifies none.
	Formats []string
}

// SupportsLanguage reports whether lang is in the declared language set.
func (c Capabilities) SupportsLanguage(lang string) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// SupportsFormat reports whether format is in the declared format set.
func (c Capabilities) SupportsFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Options carries the collaborators injected into a provider factory.
type Options struct {
	// Config is the application configuration. Required.
	Config *config.Config

	// HTTPClient is the shared HTTP client used for all remote queries.
	// When nil, providers fall back to a plain default client.
	HTTPClient *http.Client

	// Cache receives raw query responses keyed per (fingerprint, language).
	// Optional; when nil, every search hits the network.
	Cache cache.Cache
}

// Provider is the uniform shape every subtitle source satisfies, keeping
// callers provider-agnostic.
type Provider interface {
	// Name returns the canonical registry name of the provider.
	Name() string

	// Capabilities returns the provider's declared language and format sets.
	Capabilities() Capabilities

	// SearchSubtitles resolves download descriptors for the video at
	// videoPath. languages and formats are always slices; callers wrap a
	// lone token before calling. A nil or empty languages slice means the
	// provider's first declared language, a nil or empty formats slice
	// means all declared formats. Every returned descriptor's language and
	// format belong to the provider's capability sets.
	//
	// Validation is fail-fast: any unsupported token fails the whole call
	// with ErrLanguageNotSupported or ErrFormatNotSupported before any
	// network activity. Any transport or decode failure aborts the call
	// with ErrSearchQuery; partial per-language results are never returned.
	SearchSubtitles(ctx context.Context, videoPath string, languages, formats []string) ([]models.SubtitleDescriptor, error)
}

// Factory constructs a Provider from injected collaborators.
type Factory func(opts Options) (Provider, error)

// ValidateRequest applies the default-substitution rules and checks every
// requested token against the capability sets. It returns the effective
// language and format slices. Called by providers before any I/O.
func ValidateRequest(name string, caps Capabilities, languages, formats []string) ([]string, []string, error) {
	if len(languages) == 0 {
		if len(caps.Languages) == 0 {
			return nil, nil, apperrors.NewProviderContractError(name, "no supported languages declared")
		}
		languages = caps.Languages[:1]
	}
	for _, lang := range languages {
		if !caps.SupportsLanguage(lang) {
			return nil, nil, apperrors.NewLanguageNotSupportedError(name, lang)
		}
	}

	if len(formats) == 0 {
		formats = caps.Formats
	}
	for _, format := range formats {
		if !caps.SupportsFormat(format) {
			return nil, nil, apperrors.NewFormatNotSupportedError(name, format)
		}
	}

	return languages, formats, nil
}

// SuggestedName derives the on-disk filename for a subtitle of the given
// video: "{stem}.{language}.{format}" placed in the video's directory.
// Two distinct videos sharing a stem produce colliding names; resolving
// that is a known limitation left to callers.
func SuggestedName(videoPath, language, format string) string {
	dir := filepath.Dir(videoPath)
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, fmt.Sprintf("%s.%s.%s", stem, language, format))
}

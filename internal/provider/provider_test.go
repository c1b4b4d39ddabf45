package provider

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/KennethWKZ/subfinder/internal/apperrors"
)

var testCaps = Capabilities{
	Languages: []string{"Chn", "Eng"},
	Formats:   []string{"ass", "srt"},
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		languages     []string
		formats       []string
		wantLanguages []string
		wantFormats   []string
		wantErr       error
	}{
		{
			name:          "nil inputs substitute defaults",
			wantLanguages: []string{"Chn"},
			wantFormats:   []string{"ass", "srt"},
		},
		{
			name:          "empty slices substitute defaults",
			languages:     []string{},
			formats:       []string{},
			wantLanguages: []string{"Chn"},
			wantFormats:   []string{"ass", "srt"},
		},
		{
			name:          "explicit supported tokens pass through",
			languages:     []string{"Eng"},
			formats:       []string{"srt"},
			wantLanguages: []string{"Eng"},
			wantFormats:   []string{"srt"},
		},
		{
			name:      "unsupported language fails fast",
			languages: []string{"Eng", "Fra"},
			wantErr:   &apperrors.ErrLanguageNotSupported{},
		},
		{
			name:      "unsupported format fails fast",
			languages: []string{"Eng"},
			formats:   []string{"srt", "sup"},
			wantErr:   &apperrors.ErrFormatNotSupported{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			langs, formats, err := ValidateRequest("test", testCaps, tt.languages, tt.formats)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %T, want %T", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRequest: %v", err)
			}
			if !reflect.DeepEqual(langs, tt.wantLanguages) {
				t.Errorf("languages = %v, want %v", langs, tt.wantLanguages)
			}
			if !reflect.DeepEqual(formats, tt.wantFormats) {
				t.Errorf("formats = %v, want %v", formats, tt.wantFormats)
			}
		})
	}
}

func TestCapabilities_Membership(t *testing.T) {
	t.Parallel()
	if !testCaps.SupportsLanguage("Chn") || !testCaps.SupportsLanguage("Eng") {
		t.Error("declared languages must be supported")
	}
	if testCaps.SupportsLanguage("chn") {
		t.Error("membership is case-sensitive")
	}
	if !testCaps.SupportsFormat("srt") {
		t.Error("declared formats must be supported")
	}
	if testCaps.SupportsFormat("sup") {
		t.Error("undeclared format must not be supported")
	}
}

func TestSuggestedName(t *testing.T) {
	t.Parallel()
	video := filepath.Join("/videos", "Show.S01E02.mkv")
	got := SuggestedName(video, "Eng", "srt")
	want := filepath.Join("/videos", "Show.S01E02.Eng.srt")
	if got != want {
		t.Errorf("SuggestedName = %q, want %q", got, want)
	}
}

func TestSuggestedName_CollisionAcrossDirectories(t *testing.T) {
	t.Parallel()
	// Two videos sharing a stem in the same directory produce the same
	// suggested name. Documented limitation, asserted here so a behavior
	// change is deliberate.
	a := SuggestedName(filepath.Join("/videos", "movie.mkv"), "Chn", "ass")
	b := SuggestedName(filepath.Join("/videos", "movie.mp4"), "Chn", "ass")
	if a != b {
		t.Errorf("expected colliding suggested names, got %q and %q", a, b)
	}
}

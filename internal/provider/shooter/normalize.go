package shooter

import (
	"strings"

	"github.com/KennethWKZ/subfinder/internal/models"
	"github.com/KennethWKZ/subfinder/internal/provider"
)

// normalize folds the per-language raw responses into descriptors.
//
// Output order is deterministic: languages in iteration order of the request,
// then first-seen format order within each language. At most one descriptor
// is emitted per (language, format) pair; when several file entries share an
// extension the first occurrence in response order wins. That is the intended
// dedup policy, not an error.
func normalize(videoPath string, languages, formats []string, responses map[string][]subInfo) []models.SubtitleDescriptor {
	wanted := make(map[string]struct{}, len(formats))
	for _, f := range formats {
		wanted[f] = struct{}{}
	}

	descriptors := make([]models.SubtitleDescriptor, 0, len(languages))
	for _, lang := range languages {
		emitted := make(map[string]struct{}, len(formats))
		for _, item := range responses[lang] {
			for _, file := range item.Files {
				ext := strings.ToLower(file.Ext)
				if _, ok := wanted[ext]; !ok {
					continue
				}
				if _, ok := emitted[ext]; ok {
					continue
				}
				descriptors = append(descriptors, models.SubtitleDescriptor{
					Link:          file.Link,
					Language:      lang,
					Format:        ext,
					SuggestedName: provider.SuggestedName(videoPath, lang, ext),
				})
				emitted[ext] = struct{}{}
			}
		}
	}
	return descriptors
}

package models

// SubtitleDescriptor describes one discoverable subtitle resolved by a
// provider. It is a pure value: immutable once produced, no identity beyond
// its fields. The descriptor only says where a subtitle can be fetched;
// downloading and writing the body is a downstream concern.
type SubtitleDescriptor struct {
	// Link is the download URL of the subtitle.
	Link string `json:"link"`
	// Language is the subtitle language, always a member of the producing
	// provider's supported-language set (e.g. "Chn", "Eng").
	Language string `json:"language"`
	// Format is the lowercased subtitle extension, always a member of the
	// producing provider's supported-format set (e.g. "srt", "ass").
	Format string `json:"format"`
	// SuggestedName is the derived on-disk filename for the subtitle,
	// placed alongside the original video file.
	SuggestedName string `json:"suggestedName"`
}

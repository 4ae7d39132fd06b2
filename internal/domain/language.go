package domain

import (
	"context"
	"strings"
)

// Language identifies one of the two supported query languages.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageArabic  Language = "arabic"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageArabic
}

// ParseLanguage maps free-form input ("arabic", "ar", "English", ...) to a
// supported language. Unknown values fall back to English, mirroring the
// detector's own fallback.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arabic", "ar":
		return LanguageArabic
	default:
		return LanguageEnglish
	}
}

// LanguageDetector resolves the language of a query text.
// Implementations fall back to English when detection fails.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (Language, error)
}

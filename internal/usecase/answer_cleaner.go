package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"bilingual-rag/internal/domain"
)

var htmlTagPattern = regexp.MustCompile(`<.*?>`)

// AnswerCleaner normalizes model output for display. Arabic answers get
// right-to-left formatting: uniform square bullets, Arabic-Indic list
// numerals, and an RTL wrapper element.
type AnswerCleaner struct{}

// NewAnswerCleaner creates a new AnswerCleaner.
func NewAnswerCleaner() *AnswerCleaner {
	return &AnswerCleaner{}
}

// Clean strips HTML tags from the raw model output and, for Arabic, applies
// RTL formatting. The replacements run in sequence so earlier rewrites feed
// later ones, matching the production behaviour exactly.
func (c *AnswerCleaner) Clean(text string, lang domain.Language) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	if lang != domain.LanguageArabic {
		return text
	}

	text = strings.ReplaceAll(text, "•", "◼")
	text = strings.ReplaceAll(text, "-", "◼")
	text = strings.ReplaceAll(text, "  *", "◼")
	text = strings.ReplaceAll(text, "*", "◼")

	text = strings.ReplaceAll(text, "1.", "١.")
	text = strings.ReplaceAll(text, "2.", "٢.")
	text = strings.ReplaceAll(text, "3.", "٣.")
	text = strings.ReplaceAll(text, "4.", "٤.")
	text = strings.ReplaceAll(text, "5.", "٥.")

	text = strings.ReplaceAll(text, "\n", "<br>")
	return fmt.Sprintf(`<div dir="rtl" style="text-align: right; direction: rtl; unicode-bidi: embed; font-size: 20px; line-height: 2.2; font-family: Arial, sans-serif;">%s</div>`, text)
}

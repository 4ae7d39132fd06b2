package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/usecase"
)

func TestAnswerCleaner_EnglishStripsTagsOnly(t *testing.T) {
	c := usecase.NewAnswerCleaner()

	got := c.Clean("Reading <b>improves</b> focus.\n- point one", domain.LanguageEnglish)
	assert.Equal(t, "Reading improves focus.\n- point one", got)
}

func TestAnswerCleaner_ArabicBulletsAndNumerals(t *testing.T) {
	c := usecase.NewAnswerCleaner()

	got := c.Clean("• أولاً\n1. نقطة\n2. أخرى", domain.LanguageArabic)
	assert.Contains(t, got, "◼ أولاً")
	assert.Contains(t, got, "١. نقطة")
	assert.Contains(t, got, "٢. أخرى")
	assert.NotContains(t, got, "1.")
	assert.NotContains(t, got, "•")
}

func TestAnswerCleaner_ArabicRTLWrapper(t *testing.T) {
	c := usecase.NewAnswerCleaner()

	got := c.Clean("سطر أول\nسطر ثان", domain.LanguageArabic)
	assert.True(t, strings.HasPrefix(got, `<div dir="rtl"`))
	assert.True(t, strings.HasSuffix(got, "</div>"))
	assert.Contains(t, got, "سطر أول<br>سطر ثان")
}

func TestAnswerCleaner_ArabicHyphenBecomesBullet(t *testing.T) {
	c := usecase.NewAnswerCleaner()

	// Hyphens are rewritten everywhere, even mid-word. The production
	// formatter behaves the same way.
	got := c.Clean("- بند", domain.LanguageArabic)
	assert.Contains(t, got, "◼ بند")
}

func TestAnswerCleaner_EmptyText(t *testing.T) {
	c := usecase.NewAnswerCleaner()

	assert.Equal(t, "", c.Clean("", domain.LanguageEnglish))
	got := c.Clean("", domain.LanguageArabic)
	assert.Contains(t, got, `dir="rtl"`)
}

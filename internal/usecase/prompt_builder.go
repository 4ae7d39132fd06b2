package usecase

import (
	"fmt"

	"bilingual-rag/internal/domain"
)

// PromptBuilder renders the generation prompt for a query in its language.
type PromptBuilder interface {
	Build(query string, lang domain.Language) string
}

type bilingualPromptBuilder struct{}

// NewBilingualPromptBuilder creates the default prompt builder. The Arabic
// template instructs the model to answer in Arabic only with a structured,
// fully finished answer; the English template asks for clear structured prose.
func NewBilingualPromptBuilder() PromptBuilder {
	return &bilingualPromptBuilder{}
}

const arabicPromptTemplate = `جاوب على السؤال التالي باللغة العربية فقط:

**السؤال:** %s

**الإجابة يجب أن تكون:**
◼ منظمة ومفصلة
◼ بدون تكرار غير ضروري
◼ لا تتوقف في منتصف الجملة، تأكد من إنهاء الفكرة بالكامل
`

func (b *bilingualPromptBuilder) Build(query string, lang domain.Language) string {
	if lang == domain.LanguageArabic {
		return fmt.Sprintf(arabicPromptTemplate, query)
	}
	return fmt.Sprintf("Answer the following question in clear, well-structured English:\n\n%s", query)
}

package retrieval

import (
	"log/slog"
	"strings"
	"unicode"

	"bilingual-rag/internal/domain"
)

// ScoreLexical computes a BM25 score for each candidate against the query
// (Stage 3). The corpus is the current candidate set only, which keeps scores
// query-local and reproducible. Any failure leaves every lexical score at 0
// and the pipeline continues.
func ScoreLexical(sc *StageContext, logger *slog.Logger) {
	if len(sc.Candidates) == 0 {
		return
	}

	queryTokens := Tokenize(sc.Query, sc.Language)
	if len(queryTokens) == 0 {
		logger.Warn("lexical_scoring_skipped",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("reason", "query tokenized to nothing"))
		return
	}

	corpus := make([][]string, len(sc.Candidates))
	totalTokens := 0
	for i, c := range sc.Candidates {
		corpus[i] = Tokenize(c.Text, sc.Language)
		totalTokens += len(corpus[i])
	}
	if totalTokens == 0 {
		logger.Warn("lexical_scoring_skipped",
			slog.String("retrieval_id", sc.RetrievalID),
			slog.String("reason", "candidate corpus tokenized to nothing"))
		return
	}

	scores := newBM25(corpus).Scores(queryTokens)
	for i := range sc.Candidates {
		sc.Candidates[i].LexicalScore = scores[i]
	}

	logger.Info("lexical_scoring_completed",
		slog.String("retrieval_id", sc.RetrievalID),
		slog.Int("candidate_count", len(sc.Candidates)),
		slog.Int("query_token_count", len(queryTokens)))
}

// Tokenize splits text for lexical scoring. Arabic keeps every token verbatim,
// with no case folding and no punctuation filtering. English lower-cases
// tokens and drops punctuation-only ones.
func Tokenize(text string, lang domain.Language) []string {
	raw := splitWords(text)
	if lang == domain.LanguageArabic {
		return raw
	}
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if isPunctToken(tok) {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok))
	}
	return tokens
}

// splitWords breaks text into word and punctuation tokens: runs of letters,
// digits, and combining marks stay together, every other printable rune
// becomes a single-character token.
func splitWords(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r):
			b.WriteRune(r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

func isPunctToken(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return tok != ""
}

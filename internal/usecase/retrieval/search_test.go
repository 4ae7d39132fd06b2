package retrieval_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/usecase/retrieval"
)

func TestSearchVectors_DeduplicatesByFirstOccurrence(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("CollectionExists", mock.Anything, "rag_docs_en").Return(true, nil)
	// The duplicate in rank 3 scores higher than the first occurrence but is
	// still discarded.
	store.On("Search", mock.Anything, "rag_docs_en", mock.Anything, 20).Return([]domain.DocumentHit{
		{Text: "alpha", Score: 0.9},
		{Text: "beta", Score: 0.8},
		{Text: "alpha", Score: 0.95},
	}, nil)

	sc := &retrieval.StageContext{
		RetrievalID: "test-dedup",
		Query:       "query",
		Language:    domain.LanguageEnglish,
		QueryVector: []float32{0.1},
		Collection:  "rag_docs_en",
		SearchLimit: 20,
	}

	retrieval.SearchVectors(context.Background(), sc, store, testLogger())

	assert.Len(t, sc.Candidates, 2)
	assert.Equal(t, "alpha", sc.Candidates[0].Text)
	assert.Equal(t, 0.9, sc.Candidates[0].DenseScore)
	assert.Equal(t, "beta", sc.Candidates[1].Text)
}

func TestSearchVectors_MissingCollectionYieldsEmpty(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("CollectionExists", mock.Anything, "rag_docs_ar").Return(false, nil)

	sc := &retrieval.StageContext{
		RetrievalID: "test-missing",
		Query:       "query",
		Language:    domain.LanguageArabic,
		QueryVector: []float32{0.1},
		Collection:  "rag_docs_ar",
		SearchLimit: 20,
	}

	retrieval.SearchVectors(context.Background(), sc, store, testLogger())

	assert.NotNil(t, sc.Candidates)
	assert.Empty(t, sc.Candidates)
	store.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchVectors_StoreErrorYieldsEmpty(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("CollectionExists", mock.Anything, "rag_docs_en").Return(true, nil)
	store.On("Search", mock.Anything, "rag_docs_en", mock.Anything, 20).
		Return(nil, errors.New("connection reset"))

	sc := &retrieval.StageContext{
		RetrievalID: "test-store-error",
		Query:       "query",
		Language:    domain.LanguageEnglish,
		QueryVector: []float32{0.1},
		Collection:  "rag_docs_en",
		SearchLimit: 20,
	}

	retrieval.SearchVectors(context.Background(), sc, store, testLogger())

	assert.NotNil(t, sc.Candidates)
	assert.Empty(t, sc.Candidates)
}

func TestSearchVectors_DefaultsMissingMetadata(t *testing.T) {
	store := new(MockDocumentStore)
	store.On("CollectionExists", mock.Anything, "rag_docs_ar").Return(true, nil)
	store.On("Search", mock.Anything, "rag_docs_ar", mock.Anything, 20).Return([]domain.DocumentHit{
		{Text: "bare hit", Score: 0.7},
		{Text: "full hit", Score: 0.6, Source: "doc.txt", ChunkID: 2, TotalChunks: 5, Language: "english", KeyPhrases: []string{"ai"}},
	}, nil)

	sc := &retrieval.StageContext{
		RetrievalID: "test-defaults",
		Query:       "query",
		Language:    domain.LanguageArabic,
		QueryVector: []float32{0.1},
		Collection:  "rag_docs_ar",
		SearchLimit: 20,
	}

	retrieval.SearchVectors(context.Background(), sc, store, testLogger())

	bare := sc.Candidates[0]
	assert.Equal(t, "Unknown", bare.Source)
	assert.Equal(t, 0, bare.ChunkID)
	assert.Equal(t, 1, bare.TotalChunks)
	assert.Equal(t, domain.LanguageArabic, bare.Language, "language tag defaults to the query language")
	assert.Equal(t, []string{}, bare.KeyPhrases)

	full := sc.Candidates[1]
	assert.Equal(t, "doc.txt", full.Source)
	assert.Equal(t, 2, full.ChunkID)
	assert.Equal(t, 5, full.TotalChunks)
	assert.Equal(t, domain.LanguageEnglish, full.Language)
	assert.Equal(t, []string{"ai"}, full.KeyPhrases)
}

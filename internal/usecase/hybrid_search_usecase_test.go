package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bilingual-rag/internal/domain"
	"bilingual-rag/internal/usecase"
)

// MockEmbedder is a test double for domain.Embedder.
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string, lang domain.Language) ([]float32, error) {
	args := m.Called(ctx, text, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockEmbedder) ModelFor(lang domain.Language) string {
	return "mock-model"
}

// MockDocumentStore is a test double for domain.DocumentStore.
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	args := m.Called(ctx, collection)
	return args.Bool(0), args.Error(1)
}

func (m *MockDocumentStore) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.DocumentHit, error) {
	args := m.Called(ctx, collection, vector, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentHit), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testRetrievalConfig() usecase.RetrievalConfig {
	cfg := usecase.DefaultRetrievalConfig()
	cfg.EmbeddingDims[domain.LanguageEnglish] = 3
	cfg.EmbeddingDims[domain.LanguageArabic] = 3
	return cfg
}

func TestHybridSearch_Execute_Success(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockDocumentStore)
	uc := usecase.NewHybridSearchUsecase(embedder, store, testRetrievalConfig(), testLogger())

	ctx := context.Background()
	queryVec := []float32{0.1, 0.2, 0.3}
	embedder.On("Embed", ctx, "benefits of AI in healthcare", domain.LanguageEnglish).
		Return(queryVec, nil)
	store.On("CollectionExists", ctx, "rag_docs_en").Return(true, nil)
	store.On("Search", ctx, "rag_docs_en", queryVec, 20).Return([]domain.DocumentHit{
		{Text: "AI benefits healthcare greatly.", Score: 0.9, Source: "a.txt"},
		{Text: "Weather tomorrow will be sunny.", Score: 0.5, Source: "b.txt"},
		{Text: "Trains were delayed this morning.", Score: 0.1, Source: "c.txt"},
	}, nil)

	output, err := uc.Execute(ctx, usecase.HybridSearchInput{
		Query:    "benefits of AI in healthcare",
		Language: domain.LanguageEnglish,
	})
	require.NoError(t, err)
	require.Len(t, output.Results, 3)

	// Only the first hit shares query terms; the dense gaps dominate the rest.
	assert.Equal(t, "AI benefits healthcare greatly.", output.Results[0].Text)
	assert.Equal(t, "Weather tomorrow will be sunny.", output.Results[1].Text)
	assert.Equal(t, "Trains were delayed this morning.", output.Results[2].Text)

	top := output.Results[0]
	assert.Equal(t, 0.9, top.DenseScore)
	assert.Greater(t, top.LexicalScore, float64(0))
	assert.InDelta(t, top.LexicalScore*0.5+top.DenseScore, top.FusedScore, 1e-9)
	assert.Equal(t, "a.txt", top.Source)
}

func TestHybridSearch_Execute_EmptyQuery(t *testing.T) {
	uc := usecase.NewHybridSearchUsecase(new(MockEmbedder), new(MockDocumentStore), testRetrievalConfig(), testLogger())

	_, err := uc.Execute(context.Background(), usecase.HybridSearchInput{Query: ""})
	assert.Error(t, err)
}

func TestHybridSearch_Execute_EmbeddingFailureAborts(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockDocumentStore)
	uc := usecase.NewHybridSearchUsecase(embedder, store, testRetrievalConfig(), testLogger())

	embedder.On("Embed", mock.Anything, "query", domain.LanguageEnglish).
		Return(nil, errors.New("endpoint down"))

	output, err := uc.Execute(context.Background(), usecase.HybridSearchInput{
		Query:    "query",
		Language: domain.LanguageEnglish,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, output, "no partial results on embedding failure")
	store.AssertNotCalled(t, "CollectionExists", mock.Anything, mock.Anything)
}

func TestHybridSearch_Execute_ShortCircuitsOnEmptySearch(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockDocumentStore)
	uc := usecase.NewHybridSearchUsecase(embedder, store, testRetrievalConfig(), testLogger())

	embedder.On("Embed", mock.Anything, "query", domain.LanguageArabic).
		Return([]float32{0.1, 0.2, 0.3}, nil)
	store.On("CollectionExists", mock.Anything, "rag_docs_ar").Return(true, nil)
	store.On("Search", mock.Anything, "rag_docs_ar", mock.Anything, 20).
		Return([]domain.DocumentHit{}, nil)

	output, err := uc.Execute(context.Background(), usecase.HybridSearchInput{
		Query:    "query",
		Language: domain.LanguageArabic,
	})
	require.NoError(t, err)
	assert.NotNil(t, output.Results, "empty result must be an empty slice, not nil")
	assert.Empty(t, output.Results)
}

func TestHybridSearch_Execute_MissingCollectionReturnsEmpty(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockDocumentStore)
	uc := usecase.NewHybridSearchUsecase(embedder, store, testRetrievalConfig(), testLogger())

	embedder.On("Embed", mock.Anything, "query", domain.LanguageArabic).
		Return([]float32{0.1, 0.2, 0.3}, nil)
	store.On("CollectionExists", mock.Anything, "rag_docs_ar").Return(false, nil)

	output, err := uc.Execute(context.Background(), usecase.HybridSearchInput{
		Query:    "query",
		Language: domain.LanguageArabic,
	})
	require.NoError(t, err, "missing collection degrades to empty, never errors")
	assert.Empty(t, output.Results)
}

func TestHybridSearch_Execute_UnsetLanguageDefaultsToEnglish(t *testing.T) {
	embedder := new(MockEmbedder)
	store := new(MockDocumentStore)
	uc := usecase.NewHybridSearchUsecase(embedder, store, testRetrievalConfig(), testLogger())

	embedder.On("Embed", mock.Anything, "query", domain.LanguageEnglish).
		Return([]float32{0.1, 0.2, 0.3}, nil)
	store.On("CollectionExists", mock.Anything, "rag_docs_en").Return(true, nil)
	store.On("Search", mock.Anything, "rag_docs_en", mock.Anything, 20).
		Return([]domain.DocumentHit{}, nil)

	_, err := uc.Execute(context.Background(), usecase.HybridSearchInput{Query: "query"})
	require.NoError(t, err)
	embedder.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestRetrievalConfig_Validate(t *testing.T) {
	valid := usecase.DefaultRetrievalConfig()
	assert.NoError(t, valid.Validate())

	noLimit := usecase.DefaultRetrievalConfig()
	noLimit.SearchLimit = 0
	assert.Error(t, noLimit.Validate())

	noDim := usecase.DefaultRetrievalConfig()
	delete(noDim.EmbeddingDims, domain.LanguageArabic)
	assert.Error(t, noDim.Validate())

	noCollection := usecase.DefaultRetrievalConfig()
	noCollection.Collections[domain.LanguageEnglish] = ""
	assert.Error(t, noCollection.Validate())
}

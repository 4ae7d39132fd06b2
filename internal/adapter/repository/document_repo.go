package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"bilingual-rag/internal/domain"
)

// Collection names come from configuration and are interpolated as table
// names, so they are validated against a strict identifier pattern.
var collectionNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type documentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a DocumentStore backed by pgvector, with one
// table per collection. The pool is safe for concurrent queries.
func NewDocumentRepository(pool *pgxpool.Pool) domain.DocumentStore {
	return &documentRepository{pool: pool}
}

func (r *documentRepository) CollectionExists(ctx context.Context, collection string) (bool, error) {
	if !collectionNamePattern.MatchString(collection) {
		return false, fmt.Errorf("invalid collection name: %q", collection)
	}
	var regclass *string
	err := r.pool.QueryRow(ctx, "SELECT to_regclass($1)::text", collection).Scan(&regclass)
	if err != nil {
		return false, fmt.Errorf("failed to check collection %s: %w", collection, err)
	}
	return regclass != nil, nil
}

func (r *documentRepository) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.DocumentHit, error) {
	if !collectionNamePattern.MatchString(collection) {
		return nil, fmt.Errorf("invalid collection name: %q", collection)
	}

	query := fmt.Sprintf(`
		SELECT text, source, chunk_id, total_chunks, language, key_phrases,
		       1 - (embedding <=> $1) AS score
		FROM %s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, collection)

	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search collection %s: %w", collection, err)
	}
	defer rows.Close()

	var hits []domain.DocumentHit
	for rows.Next() {
		var (
			text        string
			source      *string
			chunkID     *int
			totalChunks *int
			language    *string
			keyPhrases  []string
			score       float64
		)
		if err := rows.Scan(&text, &source, &chunkID, &totalChunks, &language, &keyPhrases, &score); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		hit := domain.DocumentHit{
			Text:       text,
			Score:      score,
			KeyPhrases: keyPhrases,
		}
		if source != nil {
			hit.Source = *source
		}
		if chunkID != nil {
			hit.ChunkID = *chunkID
		}
		if totalChunks != nil {
			hit.TotalChunks = *totalChunks
		}
		if language != nil {
			hit.Language = *language
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return hits, nil
}

package retrieval

import (
	"context"

	"github.com/kailas-cloud/semrank/internal/domain"
)

// embedder vectorizes the incoming query text.
type embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// searcher fetches candidate documents by vector similarity.
type searcher interface {
	Candidates(ctx context.Context, vector []float32, k, numCandidates int) ([]domain.Candidate, error)
}

// reranker re-scores the candidate set against the query.
type reranker interface {
	Rerank(ctx context.Context, query string, passages []domain.Passage) ([]domain.RankedResult, error)
}

package retrieval

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semrank/internal/domain"
)

// Params sizes the two retrieval stages.
type Params struct {
	// CandidateK is how many documents the first stage returns.
	CandidateK int
	// NumCandidates is the ANN exploration pool, >= CandidateK.
	NumCandidates int
	// FinalK caps the reranked result.
	FinalK int
}

// Service runs the two-stage retrieval pipeline: dense vector search over the
// whole corpus, then pairwise reranking of the candidate set.
type Service struct {
	embedder embedder
	searcher searcher
	reranker reranker
	params   Params
	logger   *zap.Logger
}

// NewService creates a retrieval service.
func NewService(e embedder, s searcher, r reranker, p Params, logger *zap.Logger) *Service {
	return &Service{embedder: e, searcher: s, reranker: r, params: p, logger: logger}
}

// Search answers a free-text query with up to FinalK results ordered by
// descending relevance. Scores are rescaled to [0, 100] and rounded to three
// decimals. A blank query fails with domain.ErrEmptyQuery before any model or
// store call.
func (s *Service) Search(ctx context.Context, query string) ([]domain.RankedResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search: %w", domain.ErrEmptyQuery)
	}

	emb, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := s.searcher.Candidates(
		ctx, emb.Embedding, s.params.CandidateK, s.params.NumCandidates,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	if len(candidates) == 0 {
		s.logger.Debug("no candidates for query")
		return []domain.RankedResult{}, nil
	}

	ranked, err := s.reranker.Rerank(ctx, query, toPassages(candidates))
	if err != nil {
		return nil, fmt.Errorf("rerank candidates: %w", err)
	}

	if len(ranked) > s.params.FinalK {
		ranked = ranked[:s.params.FinalK]
	}

	for i := range ranked {
		ranked[i].Score = roundScore(ranked[i].Score * 100)
	}

	s.logger.Debug("search completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(ranked)),
		zap.Int("prompt_tokens", emb.PromptTokens),
	)

	return ranked, nil
}

// toPassages shapes candidates for the reranker: the abstract is the scored
// text, the title rides along as metadata.
func toPassages(candidates []domain.Candidate) []domain.Passage {
	passages := make([]domain.Passage, len(candidates))
	for i, c := range candidates {
		passages[i] = domain.Passage{
			ID:   c.ID,
			Text: c.Abstract,
			Meta: domain.PassageMeta{Title: c.Title},
		}
	}
	return passages
}

// roundScore rounds to three decimal places.
func roundScore(s float64) float64 {
	return math.Round(s*1000) / 1000
}

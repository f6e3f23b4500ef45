package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/semrank/internal/db"
	"github.com/kailas-cloud/semrank/internal/domain"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo fetches candidate documents by vector similarity.
type Repo struct {
	store store
	index string
}

// New creates a search repository for the given index name.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Candidates runs a KNN search and returns up to k candidates ordered by
// similarity, projecting only the fields the pipeline needs downstream.
// numCandidates widens the ANN exploration pool beyond k.
func (r *Repo) Candidates(
	ctx context.Context, vector []float32, k, numCandidates int,
) ([]domain.Candidate, error) {
	q := &db.KNNQuery{
		IndexName:     r.index + ":idx",
		Vector:        vector,
		K:             k,
		NumCandidates: numCandidates,
		ReturnFields:  []string{"id", "title", "abstract", "__embedding_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w: %w", r.index, domain.ErrStoreUnavailable, err)
	}

	return parseCandidates(sr, r.index), nil
}

// parseCandidates converts search entries into ordered candidates. The stored
// "id" field wins; the hash key suffix is the fallback.
func parseCandidates(sr *db.SearchResult, index string) []domain.Candidate {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	prefix := index + ":"
	candidates := make([]domain.Candidate, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := entry.Fields["id"]
		if id == "" {
			id = strings.TrimPrefix(entry.Key, prefix)
		}
		candidates = append(candidates, domain.Candidate{
			ID:       id,
			Title:    entry.Fields["title"],
			Abstract: entry.Fields["abstract"],
		})
	}

	return candidates
}

package domain

import "context"

// PassageMeta carries display-only fields. Not used for relevance scoring.
type PassageMeta struct {
	Title string `json:"title"`
}

// Passage is the reranker's input shape: Text is the field scored for
// relevance (document abstract, not title).
type Passage struct {
	ID   string      `json:"id"`
	Text string      `json:"text"`
	Meta PassageMeta `json:"meta"`
}

// RankedResult is a passage with a calibrated relevance score attached.
// The raw reranker score lies in [0, 1]; the retrieval pipeline rescales it
// to [0, 100] with 3-decimal rounding for presentation.
type RankedResult struct {
	ID    string      `json:"id"`
	Text  string      `json:"text"`
	Meta  PassageMeta `json:"meta"`
	Score float64     `json:"score"`
}

// Reranker scores query/passage pairs with a cross-encoder relevance model and
// returns passages sorted by descending score. Ties retain relative input
// order, so output is deterministic given deterministic input. An empty
// passages slice yields an empty result and no error.
type Reranker interface {
	Rerank(ctx context.Context, query string, passages []Passage) ([]RankedResult, error)
}

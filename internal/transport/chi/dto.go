package chi

import "github.com/kailas-cloud/semrank/internal/domain"

type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeEmptyQuery             errorCode = "empty_query"
	codeEvaluationInput        errorCode = "evaluation_input"
	codeEmbeddingProviderError errorCode = "embedding_provider_error"
	codeRerankProviderError    errorCode = "rerank_provider_error"
	codeStoreUnavailable       errorCode = "store_unavailable"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type searchResponse struct {
	Results []domain.RankedResult `json:"results"`
	Total   int                   `json:"total"`
}

// evalQuery pairs one query's ground truth with its retrieved ranking.
type evalQuery struct {
	RelevantIDs  []string `json:"relevant_ids"`
	RetrievedIDs []string `json:"retrieved_ids"`
}

type evaluateRequest struct {
	Queries []evalQuery `json:"queries"`
	K       int         `json:"k"`
}

type evaluateResponse struct {
	K            int       `json:"k"`
	PrecisionAtK []float64 `json:"precision_at_k"`
	MAP          float64   `json:"map"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

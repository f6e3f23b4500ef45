package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query. User-correctable; raised
	// before any downstream call is made.
	ErrEmptyQuery = errors.New("query must not be empty")
	// ErrModelLoad signals that an encoder or reranker could not be
	// constructed. Fatal to the pipeline instance.
	ErrModelLoad = errors.New("model load failed")
	// ErrStoreUnavailable signals a vector store connectivity or search failure.
	ErrStoreUnavailable = errors.New("vector store unavailable")
	// ErrEvaluationInput signals mismatched ground-truth/retrieved inputs.
	ErrEvaluationInput = errors.New("invalid evaluation input")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRerankProviderError signals a rerank provider failure.
	ErrRerankProviderError = errors.New("rerank provider error")
)

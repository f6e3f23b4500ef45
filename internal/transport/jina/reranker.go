package jina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semrank/internal/domain"
	"github.com/kailas-cloud/semrank/internal/metrics"
)

// Reranker scores query/passage pairs via a Jina-compatible rerank API.
type Reranker struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// Config holds the rerank client settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n,omitempty"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

type rerankErrorResponse struct {
	Detail string `json:"detail"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewReranker creates a rerank client and verifies the model eagerly with a
// one-document request, so a missing model or dead endpoint fails at startup
// as domain.ErrModelLoad instead of on the first user query.
func NewReranker(ctx context.Context, cfg *Config) (*Reranker, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := &Reranker{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  cfg.Logger,
	}

	if _, err := r.call(ctx, "ping", []string{"ping"}); err != nil {
		return nil, fmt.Errorf("reranker %q: %w: %w", cfg.Model, domain.ErrModelLoad, err)
	}

	return r, nil
}

// Rerank implements domain.Reranker. Output is ordered by descending score;
// equal scores keep the input passage order.
func (r *Reranker) Rerank(
	ctx context.Context, query string, passages []domain.Passage,
) ([]domain.RankedResult, error) {
	if len(passages) == 0 {
		return []domain.RankedResult{}, nil
	}

	documents := make([]string, len(passages))
	for i, p := range passages {
		documents[i] = p.Text
	}

	start := time.Now()

	resp, err := r.call(ctx, query, documents)
	if err != nil {
		metrics.RerankRequestsTotal.WithLabelValues(r.model, "error").Inc()
		return nil, err
	}

	metrics.RerankRequestsTotal.WithLabelValues(r.model, "success").Inc()
	metrics.RerankRequestDuration.WithLabelValues(r.model).Observe(time.Since(start).Seconds())
	metrics.RerankPassagesTotal.WithLabelValues(r.model).Add(float64(len(passages)))

	if len(resp.Results) != len(passages) {
		return nil, fmt.Errorf(
			"rerank returned %d results for %d passages: %w",
			len(resp.Results), len(passages), domain.ErrRerankProviderError,
		)
	}

	// The provider emits results in its own order with unspecified tie
	// handling. Sort by score with the input position as tie-break so equal
	// scores keep the passage order.
	type scored struct {
		index int
		score float64
	}
	entries := make([]scored, 0, len(resp.Results))
	for _, res := range resp.Results {
		if res.Index < 0 || res.Index >= len(passages) {
			return nil, fmt.Errorf(
				"rerank index %d out of range for %d passages: %w",
				res.Index, len(passages), domain.ErrRerankProviderError,
			)
		}
		entries = append(entries, scored{index: res.Index, score: res.RelevanceScore})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].index < entries[j].index
	})

	ranked := make([]domain.RankedResult, len(entries))
	for i, e := range entries {
		p := passages[e.index]
		ranked[i] = domain.RankedResult{
			ID:    p.ID,
			Text:  p.Text,
			Meta:  p.Meta,
			Score: e.score,
		}
	}

	return ranked, nil
}

// HealthCheck issues a minimal rerank request against the endpoint.
func (r *Reranker) HealthCheck(ctx context.Context) error {
	if _, err := r.call(ctx, "ping", []string{"ping"}); err != nil {
		return fmt.Errorf("rerank health check: %w", err)
	}
	return nil
}

func (r *Reranker) call(ctx context.Context, query string, documents []string) (*rerankResponse, error) {
	body, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: documents,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, r.baseURL+"/rerank", bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	httpResp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w: %w", domain.ErrRerankProviderError, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read rerank response: %w: %w", domain.ErrRerankProviderError, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rerank API error %d: %s: %w",
			httpResp.StatusCode, errorDetail(raw), domain.ErrRerankProviderError)
	}

	var resp rerankResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode rerank response: %w: %w", domain.ErrRerankProviderError, err)
	}

	return &resp, nil
}

// errorDetail extracts a message from a provider error body, falling back to
// the raw body.
func errorDetail(raw []byte) string {
	var parsed rerankErrorResponse
	if json.Unmarshal(raw, &parsed) == nil {
		if parsed.Detail != "" {
			return parsed.Detail
		}
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
	}
	return string(raw)
}

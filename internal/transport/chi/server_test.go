package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semrank/internal/domain"
	healthuc "github.com/kailas-cloud/semrank/internal/usecase/health"
	retrievaluc "github.com/kailas-cloud/semrank/internal/usecase/retrieval"
)

type stubEmbedder struct{ err error }

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1}}, nil
}

type stubSearcher struct {
	candidates []domain.Candidate
	err        error
}

func (s *stubSearcher) Candidates(
	_ context.Context, _ []float32, _, _ int,
) ([]domain.Candidate, error) {
	return s.candidates, s.err
}

type stubReranker struct{}

func (s *stubReranker) Rerank(
	_ context.Context, _ string, passages []domain.Passage,
) ([]domain.RankedResult, error) {
	out := make([]domain.RankedResult, len(passages))
	for i, p := range passages {
		out[i] = domain.RankedResult{ID: p.ID, Text: p.Text, Meta: p.Meta, Score: 0.5}
	}
	return out, nil
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

func newTestServer(searcher *stubSearcher, embedErr, pingErr error) http.Handler {
	retrieval := retrievaluc.NewService(
		&stubEmbedder{err: embedErr},
		searcher,
		&stubReranker{},
		retrievaluc.Params{CandidateK: 20, NumCandidates: 100, FinalK: 9},
		zap.NewNop(),
	)
	health := healthuc.New(&stubPinger{err: pingErr}, nil, nil)
	srv := NewServer(retrieval, health, zap.NewNop())

	r := chirouter.NewRouter()
	srv.Routes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	searcher := &stubSearcher{candidates: []domain.Candidate{
		{ID: "1", Title: "t1", Abstract: "a1"},
		{ID: "2", Title: "t2", Abstract: "a2"},
	}}
	h := newTestServer(searcher, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/search", map[string]string{"query": "hello"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %+v", resp)
	}
	if resp.Results[0].ID != "1" || resp.Results[0].Meta.Title != "t1" {
		t.Errorf("unexpected first result %+v", resp.Results[0])
	}
	if resp.Results[0].Score != 50 {
		t.Errorf("expected rescaled score 50, got %f", resp.Results[0].Score)
	}
}

func TestSearchEndpoint_EmptyQuery(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/search", map[string]string{"query": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != codeEmptyQuery {
		t.Errorf("expected %q, got %q", codeEmptyQuery, resp.Code)
	}
}

func TestSearchEndpoint_BadBody(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchEndpoint_StoreDown(t *testing.T) {
	searcher := &stubSearcher{err: domain.ErrStoreUnavailable}
	h := newTestServer(searcher, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/search", map[string]string{"query": "hello"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestSearchEndpoint_EmbedderDown(t *testing.T) {
	h := newTestServer(&stubSearcher{}, domain.ErrEmbeddingProviderError, nil)

	rec := doJSON(t, h, http.MethodPost, "/search", map[string]string{"query": "hello"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/evaluate", evaluateRequest{
		K: 4,
		Queries: []evalQuery{
			{RelevantIDs: []string{"1", "3"}, RetrievedIDs: []string{"3", "2", "1", "5"}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.PrecisionAtK) != 1 {
		t.Fatalf("expected 1 precision, got %d", len(resp.PrecisionAtK))
	}
	if math.Abs(resp.PrecisionAtK[0]-0.5) > 1e-9 {
		t.Errorf("expected precision 0.5, got %f", resp.PrecisionAtK[0])
	}
	wantMAP := (1.0/1.0 + 2.0/3.0) / 2.0
	if math.Abs(resp.MAP-wantMAP) > 1e-9 {
		t.Errorf("expected MAP %f, got %f", wantMAP, resp.MAP)
	}
}

func TestEvaluateEndpoint_NegativeK(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/evaluate", evaluateRequest{K: -1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEvaluateEndpoint_ZeroQueries(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	rec := doJSON(t, h, http.MethodPost, "/evaluate", evaluateRequest{K: 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp evaluateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MAP != 0.0 {
		t.Errorf("expected MAP 0.0 for zero queries, got %f", resp.MAP)
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Status)
	}
}

func TestHealthz_StoreDown(t *testing.T) {
	h := newTestServer(&stubSearcher{}, nil, domain.ErrStoreUnavailable)

	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

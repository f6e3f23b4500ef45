// Package indexing loads a parsed corpus into the vector store: each record's
// abstract is embedded and the document is upserted batch by batch.
package indexing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semrank/internal/corpus"
	"github.com/kailas-cloud/semrank/internal/domain"
)

type documentWriter interface {
	BulkUpsert(ctx context.Context, docs []domain.Document) error
}

// Service embeds and indexes corpus records.
type Service struct {
	embedder  domain.Embedder
	documents documentWriter
	batchSize int
	logger    *zap.Logger
}

// NewService creates an indexing service. batchSize bounds how many abstracts
// go into a single embedding request. Embedders implementing
// domain.BatchEmbedder get one request per batch; others fall back to
// per-text calls.
func NewService(e domain.Embedder, w documentWriter, batchSize int, logger *zap.Logger) *Service {
	if batchSize <= 0 {
		batchSize = 32
	}
	return &Service{embedder: e, documents: w, batchSize: batchSize, logger: logger}
}

// Run indexes all records. Each batch is embedded and upserted before the next
// one starts, so a failed run leaves completed batches searchable.
func (s *Service) Run(ctx context.Context, records []corpus.Record) error {
	if len(records) == 0 {
		s.logger.Info("nothing to index")
		return nil
	}

	total := (len(records) + s.batchSize - 1) / s.batchSize

	for i := 0; i < len(records); i += s.batchSize {
		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		if err := s.indexBatch(ctx, batch); err != nil {
			return fmt.Errorf("index batch %d/%d: %w", i/s.batchSize+1, total, err)
		}

		s.logger.Info("batch indexed",
			zap.Int("batch", i/s.batchSize+1),
			zap.Int("total_batches", total),
			zap.Int("documents", len(batch)),
		)
	}

	s.logger.Info("indexing finished", zap.Int("documents", len(records)))
	return nil
}

func (s *Service) indexBatch(ctx context.Context, batch []corpus.Record) error {
	texts := make([]string, len(batch))
	for i, rec := range batch {
		texts[i] = rec.Abstract
	}

	res, err := s.embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	if len(res.Embeddings) != len(batch) {
		return fmt.Errorf("embed: %d vectors for %d records: %w",
			len(res.Embeddings), len(batch), domain.ErrEmbeddingProviderError)
	}

	docs := make([]domain.Document, len(batch))
	for i, rec := range batch {
		docs[i] = domain.Document{
			ID:        rec.ID,
			Title:     rec.Title,
			Author:    rec.Author,
			Abstract:  rec.Abstract,
			Embedding: res.Embeddings[i],
		}
	}

	if err := s.documents.BulkUpsert(ctx, docs); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

func (s *Service) embed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if be, ok := s.embedder.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, s.embedder, texts)
}

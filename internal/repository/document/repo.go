package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/semrank/internal/db"
	"github.com/kailas-cloud/semrank/internal/domain"
)

// store is the consumer interface for document storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// IndexParams holds the vector index build settings.
type IndexParams struct {
	Dimensions  int
	HNSWM       int
	EFConstruct int
}

// Repo persists corpus documents as hashes under "<index>:<id>" and manages
// the FT index over them.
type Repo struct {
	store store
	index string
}

// New creates a document repository for the given index name.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// EnsureIndex creates the FT index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context, p IndexParams) error {
	exists, err := r.store.IndexExists(ctx, indexName(r.index))
	if err != nil {
		return fmt.Errorf("check index %s: %w", indexName(r.index), err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     indexName(r.index),
		Prefixes: []string{keyPrefix(r.index)},
		Fields: []db.IndexField{
			{Name: "id", Type: db.IndexFieldTag},
			{Name: "title", Type: db.IndexFieldText},
			{Name: "author", Type: db.IndexFieldText},
			{Name: "abstract", Type: db.IndexFieldText},
			{
				Name:              "embedding",
				Type:              db.IndexFieldVector,
				VectorDim:         p.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           p.HNSWM,
				VectorEFConstruct: p.EFConstruct,
			},
		},
	}

	// A concurrent creator may win between the existence check and FT.CREATE.
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// ResetIndex drops the FT index so the next EnsureIndex rebuilds it with
// fresh parameters. A missing index is not an error.
func (r *Repo) ResetIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, indexName(r.index)); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", indexName(r.index), err)
	}
	return nil
}

// BulkUpsert stores a batch of documents in a single pipelined round-trip.
func (r *Repo) BulkUpsert(ctx context.Context, docs []domain.Document) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		items[i] = db.HashSetItem{
			Key:    docKey(r.index, doc.ID),
			Fields: buildHashFields(doc),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("bulk upsert %d docs: %w", len(docs), err)
	}
	return nil
}

func keyPrefix(index string) string {
	return index + ":"
}

func docKey(index, id string) string {
	return keyPrefix(index) + id
}

func indexName(index string) string {
	return index + ":idx"
}

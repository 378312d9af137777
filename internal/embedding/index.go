// Package embedding provides a minimal in-memory vector index over document
// chunks. It is not part of the generation flow; it exists for similarity
// lookups over already-chunked source text.
package embedding

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
)

// Index wraps a single chromem collection of text chunks.
type Index struct {
	collection *chromem.Collection
	nextID     int
}

// NewIndex creates an empty index using the provided embedding function.
func NewIndex(embed chromem.EmbeddingFunc) (*Index, error) {
	db := chromem.NewDB()
	collection, err := db.CreateCollection("chunks", nil, embed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Index{collection: collection}, nil
}

// AddTexts embeds and stores the given chunks.
func (i *Index) AddTexts(ctx context.Context, texts []string) error {
	if len(texts) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(texts))
	for _, text := range texts {
		i.nextID++
		docs = append(docs, chromem.Document{
			ID:      fmt.Sprintf("chunk-%d", i.nextID),
			Content: text,
		})
	}
	if err := i.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}
	return nil
}

// Search returns up to k stored chunks most similar to the query.
func (i *Index) Search(ctx context.Context, query string, k int) ([]string, error) {
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}
	results, err := i.collection.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}
	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Content)
	}
	return texts, nil
}

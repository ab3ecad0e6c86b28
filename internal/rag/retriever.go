package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/promptlab/internal/providers"
)

// DefaultTopK is the number of sections put into an answer prompt.
const DefaultTopK = 3

// Retriever finds the sections closest to a question.
type Retriever struct {
	embedder providers.Embedder
	model    string
	sections []Section
	logger   *slog.Logger
}

// NewRetriever creates a retriever over sections loaded from a vector file.
// model may be empty to use the embedder's default.
func NewRetriever(embedder providers.Embedder, model string, sections []Section, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		embedder: embedder,
		model:    model,
		sections: sections,
		logger:   logger,
	}
}

// Len returns the number of searchable sections.
func (r *Retriever) Len() int {
	return len(r.sections)
}

// Retrieve embeds question and returns the k most similar sections.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]Section, error) {
	if len(r.sections) == 0 {
		return nil, fmt.Errorf("no sections to search; run rag vectorize first")
	}
	if k <= 0 {
		k = DefaultTopK
	}

	res, err := r.embedder.Embed(ctx, &providers.EmbeddingRequest{Input: question, Model: r.model})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	best := TopK(res.Vector, r.sections, k)
	for i, s := range best {
		r.logger.Debug("section match", "rank", i+1, "page", s.Page, "section", s.Section, "similarity", s.Similarity)
	}
	return best, nil
}

package retriever

import (
	"context"
	"fmt"
	"sort"

	"github.com/w-h-a/tutor/corpus"
	"github.com/w-h-a/tutor/embedder"
)

// Result pairs a chunk with its cosine similarity to the query.
type Result struct {
	Chunk corpus.Chunk
	Score float64
}

// Retriever ranks the active corpus against a query by exhaustive cosine
// scan. This is deliberately linear: corpora are in-memory and session-sized,
// so no sub-linear index is kept.
type Retriever struct {
	options  Options
	store    *corpus.Store
	embedder embedder.Embedder
}

// Retrieve returns at most k chunks ordered by (score desc, index asc),
// dropping any whose similarity falls below the score floor. An empty corpus
// yields nil without ever calling the embedder. k <= 0 uses the default.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = r.options.TopK
	}

	snap := r.store.Snapshot()
	if len(snap.Chunks) == 0 {
		return nil, nil
	}

	scores, err := r.scores(ctx, query, snap)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(snap.Chunks))
	for i, chunk := range snap.Chunks {
		results[i] = Result{Chunk: chunk, Score: scores[i]}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.Index < results[j].Chunk.Index
	})

	if len(results) > k {
		results = results[:k]
	}

	kept := make([]Result, 0, len(results))
	for _, res := range results {
		if res.Score > r.options.ScoreFloor {
			kept = append(kept, res)
		}
	}

	return kept, nil
}

// IsInDomain reports whether the query's best similarity across the whole
// corpus clears the domain threshold. It never affects which chunks
// Retrieve returns. An empty corpus is never in-domain.
func (r *Retriever) IsInDomain(ctx context.Context, query string) (bool, error) {
	max, err := r.MaxSimilarity(ctx, query)
	if err != nil {
		return false, err
	}
	return max > r.options.DomainThreshold, nil
}

// MaxSimilarity returns the highest cosine similarity between the query and
// any stored chunk, or 0 for an empty corpus.
func (r *Retriever) MaxSimilarity(ctx context.Context, query string) (float64, error) {
	snap := r.store.Snapshot()
	if len(snap.Chunks) == 0 {
		return 0, nil
	}

	scores, err := r.scores(ctx, query, snap)
	if err != nil {
		return 0, err
	}

	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	return max, nil
}

func (r *Retriever) scores(ctx context.Context, query string, snap corpus.Snapshot) ([]float64, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scores := make([]float64, len(snap.Vectors))
	for i, v := range snap.Vectors {
		scores[i] = CosineSimilarity(vec, v)
	}

	return scores, nil
}

func New(store *corpus.Store, e embedder.Embedder, opts ...Option) *Retriever {
	if store == nil {
		panic("corpus store is required")
	}

	if e == nil {
		panic("embedder is required")
	}

	return &Retriever{
		options:  NewOptions(opts...),
		store:    store,
		embedder: e,
	}
}

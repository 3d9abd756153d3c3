package corpus

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/w-h-a/tutor/embedder"
)

// Chunk is a bounded-length, word-aligned fragment of ingested text.
// Index is stable within one corpus generation.
type Chunk struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	SourceDoc string `json:"source_doc,omitempty"`
}

// Document is what the ingestion collaborator hands over. FileType is kept
// for reporting only; chunking consumes RawText alone.
type Document struct {
	RawText  string
	FileType string
}

// Snapshot is a consistent read of the active corpus. Chunks and Vectors are
// index-aligned and must not be mutated by callers.
type Snapshot struct {
	Chunks  []Chunk
	Vectors [][]float32
}

// Store holds the active corpus: one flat chunk sequence and one vector per
// chunk. Ingest and Clear replace both wholesale under the write lock, so
// readers never observe a half-built pair.
type Store struct {
	options  Options
	embedder embedder.Embedder
	chunks   []Chunk
	vectors  [][]float32
	mtx      sync.RWMutex
}

// Ingest replaces the entire active corpus with the chunked, embedded form
// of the given documents. The new (chunks, vectors) pair is built fully
// before it is published. Returns the number of chunks in the new corpus.
func (s *Store) Ingest(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, fmt.Errorf("no documents to ingest")
	}

	var chunks []Chunk
	var texts []string
	info := make([]FileInfo, 0, len(docs))

	for _, doc := range docs {
		pieces := SplitIntoChunks(doc.RawText, s.options.ChunkSize)
		for _, piece := range pieces {
			chunks = append(chunks, Chunk{
				Index:     len(chunks),
				Text:      piece,
				SourceDoc: doc.FileType,
			})
			texts = append(texts, piece)
		}
		info = append(info, FileInfo{FileType: doc.FileType, Chunks: len(pieces)})
	}

	if len(chunks) == 0 {
		return 0, fmt.Errorf("documents contained no text")
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed corpus: %w", err)
	}

	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding count %d does not match chunk count %d", len(vectors), len(chunks))
	}

	s.mtx.Lock()
	s.chunks = chunks
	s.vectors = vectors
	s.mtx.Unlock()

	if s.options.Persist {
		if dir, err := s.writeSnapshot(chunks, vectors, info); err != nil {
			log.Error().Err(err).Msg("failed to persist corpus snapshot")
		} else {
			log.Info().Str("dir", dir).Int("chunks", len(chunks)).Msg("persisted corpus snapshot")
		}
	}

	return len(chunks), nil
}

// Clear atomically releases chunks and vectors and removes any persisted
// session directories.
func (s *Store) Clear() error {
	s.mtx.Lock()
	s.chunks = nil
	s.vectors = nil
	s.mtx.Unlock()

	if s.options.Persist {
		return s.removeSnapshots()
	}

	return nil
}

// Snapshot returns the currently published corpus. The returned slices share
// backing arrays with the store; they are safe to read because every publish
// swaps in fresh slices instead of mutating in place.
func (s *Store) Snapshot() Snapshot {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return Snapshot{
		Chunks:  s.chunks,
		Vectors: s.vectors,
	}
}

func (s *Store) Len() int {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.chunks)
}

func NewStore(e embedder.Embedder, opts ...Option) *Store {
	if e == nil {
		panic("embedder is required")
	}

	options := NewOptions(opts...)

	return &Store{
		options:  options,
		embedder: e,
		mtx:      sync.RWMutex{},
	}
}

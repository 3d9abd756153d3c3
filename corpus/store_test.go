package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type fakeEmbedder struct {
	fail  bool
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vecs[i] = []float32{float32(len(text)), 1}
	}
	return vecs, nil
}

func TestIngestPublishesAlignedCorpus(t *testing.T) {
	emb := &fakeEmbedder{}
	store := NewStore(emb, WithPersistence(false))

	n, err := store.Ingest(context.Background(), []Document{
		{RawText: "alpha beta gamma delta", FileType: "txt"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if n == 0 {
		t.Fatal("expected chunks")
	}

	snap := store.Snapshot()
	if len(snap.Chunks) != len(snap.Vectors) {
		t.Fatalf("chunks %d and vectors %d misaligned", len(snap.Chunks), len(snap.Vectors))
	}

	for i, chunk := range snap.Chunks {
		if chunk.Index != i {
			t.Fatalf("chunk %d has index %d", i, chunk.Index)
		}
	}

	if emb.calls != 1 {
		t.Fatalf("expected one batch embedding call, got %d", emb.calls)
	}
}

func TestIngestReplacesWholesale(t *testing.T) {
	store := NewStore(&fakeEmbedder{}, WithPersistence(false), WithChunkSize(10))

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "first corpus with several words"}}); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "second"}}); err != nil {
		t.Fatal(err)
	}

	snap := store.Snapshot()
	if len(snap.Chunks) != 1 || snap.Chunks[0].Text != "second" {
		t.Fatalf("old corpus leaked: %+v", snap.Chunks)
	}
}

func TestIngestEmbedFailureLeavesCorpusIntact(t *testing.T) {
	emb := &fakeEmbedder{}
	store := NewStore(emb, WithPersistence(false))

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "stable corpus"}}); err != nil {
		t.Fatal(err)
	}

	emb.fail = true
	if _, err := store.Ingest(context.Background(), []Document{{RawText: "replacement"}}); err == nil {
		t.Fatal("expected an error")
	}

	if store.Len() == 0 {
		t.Fatal("failed ingest must not clear the previous corpus")
	}

	snap := store.Snapshot()
	if snap.Chunks[0].Text != "stable corpus" {
		t.Fatalf("previous corpus was replaced: %+v", snap.Chunks)
	}
}

func TestIngestRejectsEmptyInput(t *testing.T) {
	store := NewStore(&fakeEmbedder{}, WithPersistence(false))

	if _, err := store.Ingest(context.Background(), nil); err == nil {
		t.Fatal("expected an error for no documents")
	}

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "   "}}); err == nil {
		t.Fatal("expected an error for blank documents")
	}
}

func TestClearEmptiesCorpus(t *testing.T) {
	store := NewStore(&fakeEmbedder{}, WithPersistence(false))

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "some text"}}); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	if store.Len() != 0 {
		t.Fatal("expected an empty corpus after clear")
	}
}

func TestIngestWritesSnapshotDirectory(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(&fakeEmbedder{}, WithDataDir(dir), WithPersistence(true))

	if _, err := store.Ingest(context.Background(), []Document{{RawText: "persisted text", FileType: "pdf"}}); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || !entries[0].IsDir() {
		t.Fatalf("expected one session directory, got %v", entries)
	}

	sessionDir := filepath.Join(dir, entries[0].Name())

	raw, err := os.ReadFile(filepath.Join(sessionDir, "course_data.json"))
	if err != nil {
		t.Fatal(err)
	}

	var payload struct {
		CourseData []string `json:"course_data"`
		FileInfo   []struct {
			FileType string `json:"file_type"`
			Chunks   int    `json:"chunks"`
		} `json:"file_info"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatal(err)
	}

	if len(payload.CourseData) == 0 {
		t.Fatal("course_data.json has no chunks")
	}

	if len(payload.FileInfo) != 1 || payload.FileInfo[0].FileType != "pdf" {
		t.Fatalf("unexpected file info %+v", payload.FileInfo)
	}

	var vectors [][]float32
	raw, err = os.ReadFile(filepath.Join(sessionDir, "embeddings.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &vectors); err != nil {
		t.Fatal(err)
	}

	if len(vectors) != len(payload.CourseData) {
		t.Fatalf("vectors %d misaligned with chunks %d", len(vectors), len(payload.CourseData))
	}

	if err := store.Clear(); err != nil {
		t.Fatal(err)
	}

	entries, err = os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected an empty data dir after clear, got %v", entries)
	}
}

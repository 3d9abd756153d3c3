package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileInfo is the per-document reporting record written alongside the chunk
// texts in course_data.json.
type FileInfo struct {
	FileType string `json:"file_type"`
	Chunks   int    `json:"chunks"`
}

type courseData struct {
	CourseData []string   `json:"course_data"`
	FileInfo   []FileInfo `json:"file_info"`
}

// writeSnapshot persists one corpus generation as a fresh session directory:
// course_data.json holds the chunk texts and file info, embeddings.json the
// aligned vectors. The JSON shapes are a contract other tools may read.
func (s *Store) writeSnapshot(chunks []Chunk, vectors [][]float32, info []FileInfo) (string, error) {
	dir := filepath.Join(s.options.DataDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	data, err := json.MarshalIndent(courseData{CourseData: texts, FileInfo: info}, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "course_data.json"), data, 0o644); err != nil {
		return "", fmt.Errorf("write course_data.json: %w", err)
	}

	embs, err := json.Marshal(vectors)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "embeddings.json"), embs, 0o644); err != nil {
		return "", fmt.Errorf("write embeddings.json: %w", err)
	}

	return dir, nil
}

// removeSnapshots wipes every persisted session directory and recreates the
// empty data dir.
func (s *Store) removeSnapshots() error {
	if err := os.RemoveAll(s.options.DataDir); err != nil {
		return fmt.Errorf("remove data dir: %w", err)
	}
	return os.MkdirAll(s.options.DataDir, 0o755)
}

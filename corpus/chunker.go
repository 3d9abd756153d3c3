package corpus

import "strings"

// SplitIntoChunks packs whitespace-separated words into chunks of at most
// chunkSize characters, counting one separator per added word. Words are
// never split, so a single word longer than chunkSize becomes its own chunk.
func SplitIntoChunks(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	words := strings.Fields(text)

	var chunks []string
	var current []string
	length := 0

	for _, word := range words {
		if length+len(word)+1 <= chunkSize {
			current = append(current, word)
			length += len(word) + 1
			continue
		}

		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
		}

		current = []string{word}
		length = len(word)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

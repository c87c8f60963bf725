package usecase

import (
	"strings"

	"firesec_estimator/internal/domain/entities"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// Chunker splits extracted text into fixed-size overlapping chunks.
// Boundaries snap backwards to the nearest newline or space so words are
// never cut mid-token. Deterministic: the same text always yields the
// same chunks.
type Chunker struct {
	Size    int
	Overlap int
}

func NewChunker() *Chunker {
	return &Chunker{Size: defaultChunkSize, Overlap: defaultChunkOverlap}
}

// Split chunks content for the given document, assigning sequential
// indexes starting at zero. Empty or whitespace-only content yields no
// chunks.
func (c *Chunker) Split(documentID, content string) []entities.DocumentChunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	size := c.Size
	if size <= 0 {
		size = defaultChunkSize
	}
	overlap := c.Overlap
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
	}

	var chunks []entities.DocumentChunk
	runes := []rune(content)
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = snapToBoundary(runes, start, end)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, entities.DocumentChunk{
				DocumentID: documentID,
				Index:      len(chunks),
				Content:    piece,
			})
		}

		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// snapToBoundary walks end backwards to the last newline or space after
// start. If the window contains no break at all the hard cut stands.
func snapToBoundary(runes []rune, start, end int) int {
	for i := end; i > start; i-- {
		if runes[i-1] == '\n' || runes[i-1] == ' ' {
			return i
		}
	}
	return end
}

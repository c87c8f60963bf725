package usecase

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_Split(t *testing.T) {
	t.Run("empty content yields no chunks", func(t *testing.T) {
		c := NewChunker()
		if chunks := c.Split("doc-1", "   \n\t  "); chunks != nil {
			t.Fatalf("expected no chunks, got %d", len(chunks))
		}
	})

	t.Run("short content yields one chunk", func(t *testing.T) {
		c := NewChunker()
		chunks := c.Split("doc-1", "A short scope statement.")
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0].Index != 0 || chunks[0].DocumentID != "doc-1" {
			t.Fatalf("unexpected chunk: %+v", chunks[0])
		}
		if chunks[0].Content != "A short scope statement." {
			t.Fatalf("content altered: %q", chunks[0].Content)
		}
	})

	t.Run("long content is chunked with overlap", func(t *testing.T) {
		c := &Chunker{Size: 100, Overlap: 20}
		content := strings.Repeat("fire alarm panel wiring riser diagram ", 30)
		chunks := c.Split("doc-1", content)

		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, chunk := range chunks {
			if chunk.Index != i {
				t.Fatalf("chunk %d has index %d", i, chunk.Index)
			}
			if utf8.RuneCountInString(chunk.Content) > 100 {
				t.Fatalf("chunk %d exceeds size: %d runes", i, utf8.RuneCountInString(chunk.Content))
			}
		}
		// Consecutive chunks share the overlap region.
		first := chunks[0].Content
		second := chunks[1].Content
		tail := first[len(first)-10:]
		if !strings.Contains(second, strings.TrimSpace(tail)) {
			t.Fatalf("no overlap between chunks: %q / %q", first, second)
		}
	})

	t.Run("end boundary snaps to whitespace", func(t *testing.T) {
		c := &Chunker{Size: 50, Overlap: 10}
		content := strings.Repeat("extinguisher ", 40)
		chunks := c.Split("doc-1", content)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		// Every cut lands after a full word, never inside one.
		for i, chunk := range chunks {
			if !strings.HasSuffix(chunk.Content, "extinguisher") {
				t.Fatalf("chunk %d cut mid-word: %q", i, chunk.Content)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		c := NewChunker()
		content := strings.Repeat("sprinkler head spacing per NFPA 13.\n", 100)
		a := c.Split("doc-1", content)
		b := c.Split("doc-1", content)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("same input produced different chunks")
		}
	})

	t.Run("unbroken run is hard cut with progress", func(t *testing.T) {
		c := &Chunker{Size: 10, Overlap: 3}
		chunks := c.Split("doc-1", strings.Repeat("x", 35))
		if len(chunks) == 0 {
			t.Fatalf("expected chunks")
		}
		for i, chunk := range chunks {
			if len(chunk.Content) > 10 {
				t.Fatalf("chunk %d exceeds size: %q", i, chunk.Content)
			}
		}
	})
}

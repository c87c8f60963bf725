package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"
	mock_interfaces "firesec_estimator/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

// passthroughExtractor returns the file bytes as text.
type passthroughExtractor struct{}

func (passthroughExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	return string(data), nil
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, string, []byte) (string, error) {
	return "", errors.New("corrupt file")
}

// mapCache is a process-local IContentCache for exercising memoization.
type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMapCache() *mapCache { return &mapCache{entries: make(map[string]string)} }

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func newIngestionUseCase(t *testing.T, genai interfaces.IGenerativeClient) *IngestionUseCase {
	t.Helper()
	classifier := NewDocumentClassifier(map[string]interfaces.ITextExtractor{
		"text/plain":      passthroughExtractor{},
		"application/pdf": failingExtractor{},
	})
	return NewIngestionUseCase(classifier, NewChunker(), genai, newMapCache(), nil, zerolog.Nop())
}

const sampleMetadataJSON = `{"project_type":"commercial","location":"San Francisco","square_footage":12000,"security_requirements":["access control"],"fire_safety_requirements":["fire alarm"]}`

func TestDocumentClassifier_Classify(t *testing.T) {
	classifier := NewDocumentClassifier(map[string]interfaces.ITextExtractor{
		"text/plain": passthroughExtractor{},
	})

	t.Run("strips content type parameters", func(t *testing.T) {
		if _, err := classifier.Classify("text/plain; charset=utf-8"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := classifier.Classify("application/zip")
		var unsupported *entities.UnsupportedTypeError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected UnsupportedTypeError, got %v", err)
		}
		if unsupported.ContentType != "application/zip" {
			t.Fatalf("unexpected content type: %q", unsupported.ContentType)
		}
	})
}

func TestIngestionUseCase_IngestFile(t *testing.T) {
	t.Run("unsupported type fails the call", func(t *testing.T) {
		uc := newIngestionUseCase(t, nil)
		_, _, err := uc.IngestFile(context.Background(), FileInput{Filename: "a.zip", ContentType: "application/zip"})
		var unsupported *entities.UnsupportedTypeError
		if !errors.As(err, &unsupported) {
			t.Fatalf("expected UnsupportedTypeError, got %v", err)
		}
	})

	t.Run("extractor error wraps extraction failure", func(t *testing.T) {
		uc := newIngestionUseCase(t, nil)
		_, _, err := uc.IngestFile(context.Background(), FileInput{Filename: "a.pdf", ContentType: "application/pdf", Data: []byte("x")})
		var failure *entities.ExtractionFailure
		if !errors.As(err, &failure) {
			t.Fatalf("expected ExtractionFailure, got %v", err)
		}
	})

	t.Run("chunks carry shared metadata in order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return(sampleMetadataJSON, nil)

		uc := newIngestionUseCase(t, genai)
		content := "The building requires a full fire alarm system with smoke detector coverage on every floor."
		doc, chunks, err := uc.IngestFile(context.Background(), FileInput{
			Filename:    "spec.txt",
			ContentType: "text/plain",
			Data:        []byte(content),
			ProjectID:   "proj-1",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) == 0 {
			t.Fatalf("expected chunks")
		}
		if doc.DocumentType != entities.DocumentTypeSpecification {
			t.Fatalf("expected specification document, got %s", doc.DocumentType)
		}
		if doc.Size != int64(len(content)) || doc.TextContent != content {
			t.Fatalf("document does not reflect source file: %+v", doc)
		}
		if doc.ProjectID != "proj-1" {
			t.Fatalf("project id not carried: %q", doc.ProjectID)
		}
		if got, ok := doc.ExtractedEntities["project_type"].(string); !ok || got != "commercial" {
			t.Fatalf("extracted entities missing project type: %+v", doc.ExtractedEntities)
		}
		for i, chunk := range chunks {
			if chunk.Index != i {
				t.Fatalf("chunk %d has index %d", i, chunk.Index)
			}
			if chunk.DocumentID != doc.DocumentID {
				t.Fatalf("chunk %d does not reference its document", i)
			}
			if chunk.Metadata.ProjectType == nil || *chunk.Metadata.ProjectType != "commercial" {
				t.Fatalf("metadata not attached to chunk %d: %+v", i, chunk.Metadata)
			}
		}
	})

	t.Run("metadata failure degrades to empty record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return("", errors.New("model down"))

		uc := newIngestionUseCase(t, genai)
		_, chunks, err := uc.IngestFile(context.Background(), FileInput{
			Filename:    "spec.txt",
			ContentType: "text/plain",
			Data:        []byte("short scope statement"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chunks[0].Metadata.ProjectType != nil {
			t.Fatalf("expected empty metadata, got %+v", chunks[0].Metadata)
		}
	})

	t.Run("identical content hits the metadata cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
		// Exactly one model call for two ingests of the same content.
		genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return(sampleMetadataJSON, nil).Times(1)

		uc := newIngestionUseCase(t, genai)
		content := []byte("Identical scope of work for both uploads.")
		if _, _, err := uc.IngestFile(context.Background(), FileInput{Filename: "a.txt", ContentType: "text/plain", Data: content}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, chunks, err := uc.IngestFile(context.Background(), FileInput{Filename: "copy-of-a.txt", ContentType: "text/plain", Data: content})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if chunks[0].Metadata.ProjectType == nil || *chunks[0].Metadata.ProjectType != "commercial" {
			t.Fatalf("cached metadata not applied: %+v", chunks[0].Metadata)
		}
	})
}

func TestIngestionUseCase_IngestBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
	genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return(sampleMetadataJSON, nil).AnyTimes()

	uc := newIngestionUseCase(t, genai)
	files := []FileInput{
		{Filename: "scope.txt", ContentType: "text/plain", Data: []byte("fire alarm scope")},
		{Filename: "photo.zip", ContentType: "application/zip", Data: []byte("binary")},
		{Filename: "broken.pdf", ContentType: "application/pdf", Data: []byte("binary")},
		{Filename: "security.txt", ContentType: "text/plain", Data: []byte("cctv coverage plan")},
	}

	docs, chunks, err := uc.IngestBatch(context.Background(), files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unsupported and failing files are skipped, never fatal.
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Filename != "scope.txt" || docs[1].Filename != "security.txt" {
		t.Fatalf("document order not preserved: %+v", docs)
	}
	if docs[0].DocumentType != entities.DocumentTypeScopeOfWork {
		t.Fatalf("expected scope_of_work classification, got %s", docs[0].DocumentType)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Content != "fire alarm scope" || chunks[1].Content != "cctv coverage plan" {
		t.Fatalf("batch order not preserved: %+v", chunks)
	}
}

func TestIngestionUseCase_IngestDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	genai := mock_interfaces.NewMockIGenerativeClient(ctrl)
	genai.EXPECT().CompleteJSON(gomock.Any(), gomock.Any()).Return(sampleMetadataJSON, nil).AnyTimes()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scope.txt"), []byte("sprinkler layout notes"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "model.step"), []byte("unsupported"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	uc := newIngestionUseCase(t, genai)
	docs, chunks, err := uc.IngestDirectory(context.Background(), dir, "proj-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ProjectID != "proj-1" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
	if len(chunks) != 1 || chunks[0].Content != "sprinkler layout notes" {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}
}

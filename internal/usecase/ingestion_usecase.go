package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	metadataCacheTTL  = time.Hour
	metadataDigestLen = 4000
	ingestConcurrency = 4
)

// DocumentClassifier maps a declared content type to the extractor that
// can process it. Pure mapping: no I/O.
type DocumentClassifier struct {
	extractors map[string]interfaces.ITextExtractor
}

func NewDocumentClassifier(extractors map[string]interfaces.ITextExtractor) *DocumentClassifier {
	return &DocumentClassifier{extractors: extractors}
}

// Classify returns the extractor for contentType or UnsupportedTypeError
// when no strategy exists.
func (c *DocumentClassifier) Classify(contentType string) (interfaces.ITextExtractor, error) {
	// Strip parameters such as charset.
	if base, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = base
	}
	ex, ok := c.extractors[strings.ToLower(contentType)]
	if !ok {
		return nil, &entities.UnsupportedTypeError{ContentType: contentType}
	}
	return ex, nil
}

// FileInput is one file submitted for ingestion.
type FileInput struct {
	Filename    string
	ContentType string
	Data        []byte
	ProjectID   string
}

// IIngestionUseCase turns raw files into ParsedDocument records plus the
// ordered, metadata-annotated chunks the workflow's parsing stage reads.
type IIngestionUseCase interface {
	IngestFile(ctx context.Context, file FileInput) (entities.ParsedDocument, []entities.DocumentChunk, error)
	IngestBatch(ctx context.Context, files []FileInput) ([]entities.ParsedDocument, []entities.DocumentChunk, error)
	IngestDirectory(ctx context.Context, dir, projectID string) ([]entities.ParsedDocument, []entities.DocumentChunk, error)
}

// IngestionUseCase orchestrates classification, text extraction, chunking
// and cached metadata extraction for document batches.
type IngestionUseCase struct {
	classifier *DocumentClassifier
	chunker    *Chunker
	genai      interfaces.IGenerativeClient
	cache      interfaces.IContentCache
	store      interfaces.IObjectStore
	log        zerolog.Logger
}

var _ IIngestionUseCase = (*IngestionUseCase)(nil)

func NewIngestionUseCase(classifier *DocumentClassifier, chunker *Chunker, genai interfaces.IGenerativeClient, cache interfaces.IContentCache, store interfaces.IObjectStore, log zerolog.Logger) *IngestionUseCase {
	return &IngestionUseCase{
		classifier: classifier,
		chunker:    chunker,
		genai:      genai,
		cache:      cache,
		store:      store,
		log:        log,
	}
}

// IngestFile processes one file end to end. Unsupported content types and
// extraction errors fail the call; metadata extraction failures do not,
// they degrade to a null-filled record.
func (u *IngestionUseCase) IngestFile(ctx context.Context, file FileInput) (entities.ParsedDocument, []entities.DocumentChunk, error) {
	extractor, err := u.classifier.Classify(file.ContentType)
	if err != nil {
		return entities.ParsedDocument{}, nil, err
	}

	text, err := extractor.Extract(ctx, file.Filename, file.Data)
	if err != nil {
		return entities.ParsedDocument{}, nil, &entities.ExtractionFailure{Stage: "text extraction", Err: err}
	}

	documentID := uuid.NewString()
	storageKey := u.archiveOriginal(ctx, documentID, file)

	doc := entities.ParsedDocument{
		DocumentID:   documentID,
		DocumentType: classifyDocumentType(file.Filename, file.ContentType),
		Filename:     file.Filename,
		ContentType:  file.ContentType,
		Size:         int64(len(file.Data)),
		StorageKey:   storageKey,
		TextContent:  text,
		CreatedAt:    time.Now().UTC(),
		ProjectID:    file.ProjectID,
	}

	chunks := u.chunker.Split(documentID, text)
	if len(chunks) == 0 {
		u.log.Warn().Str("filename", file.Filename).Msg("document produced no text")
		return doc, nil, nil
	}

	metadata := u.extractMetadata(ctx, file.Filename, text)
	doc.ExtractedEntities = entitiesFromMetadata(metadata)
	for i := range chunks {
		chunks[i].Metadata = metadata
	}

	u.log.Info().
		Str("filename", file.Filename).
		Str("document_id", documentID).
		Str("document_type", string(doc.DocumentType)).
		Int("chunks", len(chunks)).
		Msg("document ingested")
	return doc, chunks, nil
}

// IngestBatch processes independent files in parallel. Per-file failures
// and unsupported types are logged and skipped; one bad file never blocks
// the batch. Chunks of the same file stay in original order.
func (u *IngestionUseCase) IngestBatch(ctx context.Context, files []FileInput) ([]entities.ParsedDocument, []entities.DocumentChunk, error) {
	perFileDocs := make([]*entities.ParsedDocument, len(files))
	perFileChunks := make([][]entities.DocumentChunk, len(files))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestConcurrency)
	for i, file := range files {
		g.Go(func() error {
			doc, chunks, err := u.IngestFile(ctx, file)
			if err != nil {
				var unsupported *entities.UnsupportedTypeError
				if errors.As(err, &unsupported) {
					u.log.Warn().Str("filename", file.Filename).Str("content_type", unsupported.ContentType).Msg("skipping unsupported file type")
				} else {
					u.log.Warn().Err(err).Str("filename", file.Filename).Msg("skipping file after processing error")
				}
				return nil
			}
			mu.Lock()
			perFileDocs[i] = &doc
			perFileChunks[i] = chunks
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var docs []entities.ParsedDocument
	var all []entities.DocumentChunk
	for i := range files {
		if perFileDocs[i] != nil {
			docs = append(docs, *perFileDocs[i])
		}
		all = append(all, perFileChunks[i]...)
	}
	return docs, all, nil
}

// IngestDirectory ingests every regular file under dir, inferring content
// types from file extensions.
func (u *IngestionUseCase) IngestDirectory(ctx context.Context, dir, projectID string) ([]entities.ParsedDocument, []entities.DocumentChunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []FileInput
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			u.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable file")
			continue
		}
		files = append(files, FileInput{
			Filename:    entry.Name(),
			ContentType: contentTypeForFile(entry.Name()),
			Data:        data,
			ProjectID:   projectID,
		})
	}
	return u.IngestBatch(ctx, files)
}

// extractMetadata runs the structured metadata prompt over the document
// text, memoized by a digest of the leading content so identical
// documents never trigger a second model call. Any failure degrades to
// the null-filled record.
func (u *IngestionUseCase) extractMetadata(ctx context.Context, filename, text string) entities.DocumentMetadata {
	key := metadataCacheKey(text)

	if cached, ok := u.cache.Get(ctx, key); ok {
		var metadata entities.DocumentMetadata
		if err := json.Unmarshal([]byte(cached), &metadata); err == nil {
			u.log.Debug().Str("filename", filename).Msg("metadata cache hit")
			return metadata
		}
		u.log.Warn().Str("filename", filename).Msg("discarding corrupt cached metadata")
	}

	raw, err := u.genai.CompleteJSON(ctx, metadataPrompt(text))
	if err != nil {
		u.log.Warn().Err(err).Str("filename", filename).Msg("metadata extraction failed, using empty record")
		return entities.DocumentMetadata{}
	}

	var metadata entities.DocumentMetadata
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		u.log.Warn().Err(err).Str("filename", filename).Msg("metadata response unparsable, using empty record")
		return entities.DocumentMetadata{}
	}

	if encoded, err := json.Marshal(metadata); err == nil {
		u.cache.Set(ctx, key, string(encoded), metadataCacheTTL)
	}
	return metadata
}

// archiveOriginal uploads the raw file bytes for later retrieval and
// returns the storage key. Storage is ancillary to ingestion, so failures
// are logged, not propagated.
func (u *IngestionUseCase) archiveOriginal(ctx context.Context, documentID string, file FileInput) string {
	if u.store == nil {
		return ""
	}
	key := fmt.Sprintf("documents/%s/%s", documentID, file.Filename)
	if _, err := u.store.Put(ctx, key, file.Data, file.ContentType); err != nil {
		u.log.Warn().Err(err).Str("key", key).Msg("uploading original document failed")
		return ""
	}
	return key
}

// classifyDocumentType infers the document class from the filename and
// declared content type.
func classifyDocumentType(filename, contentType string) entities.DocumentType {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "rfp"):
		return entities.DocumentTypeRFP
	case strings.Contains(name, "scope") || strings.Contains(name, "sow"):
		return entities.DocumentTypeScopeOfWork
	case strings.Contains(name, "spec"):
		return entities.DocumentTypeSpecification
	case contentType == "application/dxf" || strings.HasPrefix(contentType, "image/"):
		return entities.DocumentTypeDrawing
	default:
		return entities.DocumentTypeOther
	}
}

// entitiesFromMetadata flattens the structured metadata record into the
// free-form extracted_entities map.
func entitiesFromMetadata(metadata entities.DocumentMetadata) map[string]any {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// metadataCacheKey digests the first 4000 characters of extracted text so
// identical content hits the cache regardless of filename.
func metadataCacheKey(text string) string {
	runes := []rune(text)
	if len(runes) > metadataDigestLen {
		runes = runes[:metadataDigestLen]
	}
	sum := sha256.Sum256([]byte(string(runes)))
	return "docmeta:" + hex.EncodeToString(sum[:])
}

func metadataPrompt(text string) string {
	return fmt.Sprintf(`Extract project metadata from the following construction document. Respond with a JSON object using exactly these keys, with null for anything the document does not state:
{"project_type": string|null, "location": string|null, "square_footage": number|null, "number_of_floors": number|null, "security_requirements": [string], "fire_safety_requirements": [string], "building_codes": [string], "special_requirements": [string], "timeline": string|null, "budget_constraints": string|null, "existing_systems": [string], "environmental_considerations": [string]}

Document:
%s`, text)
}

var extensionContentTypes = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".dxf":  "application/dxf",
}

func contentTypeForFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

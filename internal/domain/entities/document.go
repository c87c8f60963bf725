package entities

import (
	"fmt"
	"time"
)

// DocumentType classifies an ingested source file.

type DocumentType string

const (
	DocumentTypeDrawing       DocumentType = "drawing"
	DocumentTypeSpecification DocumentType = "specification"
	DocumentTypeScopeOfWork   DocumentType = "scope_of_work"
	DocumentTypeRFP           DocumentType = "rfp"
	DocumentTypeOther         DocumentType = "other"
)

// DocumentMetadata is the fixed schema the metadata extractor fills from
// document text. Every field is nullable: a failed or malformed extraction
// yields the zero value (all nil), never an error that stops ingestion.
type DocumentMetadata struct {
	ProjectType                 *string  `json:"project_type"`
	Location                    *string  `json:"location"`
	SquareFootage               *float64 `json:"square_footage"`
	NumberOfFloors              *int     `json:"number_of_floors"`
	SecurityRequirements        []string `json:"security_requirements"`
	FireSafetyRequirements      []string `json:"fire_safety_requirements"`
	BuildingCodes               []string `json:"building_codes"`
	SpecialRequirements         []string `json:"special_requirements"`
	Timeline                    *string  `json:"timeline"`
	BudgetConstraints           *string  `json:"budget_constraints"`
	ExistingSystems             []string `json:"existing_systems"`
	EnvironmentalConsiderations []string `json:"environmental_considerations"`
}

// DocumentChunk is one overlapping slice of an ingested document. Chunks of
// the same document share the document's metadata record and preserve
// original order via Index.
type DocumentChunk struct {
	DocumentID string           `json:"document_id"`
	Index      int              `json:"index"`
	Content    string           `json:"content"`
	Metadata   DocumentMetadata `json:"metadata"`
}

// ParsedDocument is the structured result of ingesting one source file.
type ParsedDocument struct {
	DocumentID        string         `json:"document_id"`
	DocumentType      DocumentType   `json:"document_type"`
	Filename          string         `json:"filename"`
	ContentType       string         `json:"content_type"`
	Size              int64          `json:"size"`
	StorageKey        string         `json:"storage_key,omitempty"`
	TextContent       string         `json:"text_content"`
	ExtractedEntities map[string]any `json:"extracted_entities"`
	CreatedAt         time.Time      `json:"created_at"`
	ProjectID         string         `json:"project_id,omitempty"`
}

// UnsupportedTypeError reports a declared content type no processing
// strategy exists for. Batch ingestion skips the file; single-file
// ingestion fails with it.
type UnsupportedTypeError struct {
	ContentType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// ExtractionFailure reports that a parser or model produced unusable
// output for a document. Callers fall back to a null-filled metadata
// record and continue.
type ExtractionFailure struct {
	Stage string
	Err   error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction failed at %s: %v", e.Stage, e.Err)
}

func (e *ExtractionFailure) Unwrap() error { return e.Err }

package interfaces

import "context"

// ITextExtractor extracts plain text from one class of document content.
// Implementations exist per content type (plain text, PDF, DOCX, images,
// CAD drawings); the classifier picks which one handles a file.
type ITextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

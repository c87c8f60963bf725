package interfaces

import "context"

//go:generate mockgen -source=generative_client_interface.go -destination=mocks/generative_client_mock.go -package=mock_interfaces

// IGenerativeClient abstracts the generative text/vision service
// (e.g. Vertex AI Gemini).
//
// The service is unreliable by contract: non-deterministic, occasionally
// malformed output, and every call must run under a bounded timeout.
// Callers treat errors as ExternalServiceError and malformed payloads as
// ExtractionFailure; neither is retried here.
type IGenerativeClient interface {
	// Complete returns free-form text for a prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// CompleteJSON runs a model constrained to emit JSON.
	CompleteJSON(ctx context.Context, prompt string) (string, error)
	// AnalyzeImage runs the vision model over raw image bytes.
	AnalyzeImage(ctx context.Context, mimeType string, data []byte, prompt string) (string, error)
	// TranscribePDF extracts the text content of a PDF document.
	TranscribePDF(ctx context.Context, data []byte) (string, error)
}

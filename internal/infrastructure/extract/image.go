package extract

import (
	"context"

	"firesec_estimator/internal/usecase/interfaces"
)

const drawingPrompt = "This is a construction or engineering drawing. Describe the fire protection and security systems shown: device types, counts, coverage areas, panel locations and any legends or notes. Output plain text."

// ImageExtractor describes scanned drawings through the vision model.
type ImageExtractor struct {
	genai    interfaces.IGenerativeClient
	mimeType string
}

var _ interfaces.ITextExtractor = (*ImageExtractor)(nil)

func NewImageExtractor(genai interfaces.IGenerativeClient, mimeType string) *ImageExtractor {
	return &ImageExtractor{genai: genai, mimeType: mimeType}
}

func (e *ImageExtractor) Extract(ctx context.Context, _ string, data []byte) (string, error) {
	return e.genai.AnalyzeImage(ctx, e.mimeType, data, drawingPrompt)
}

package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"firesec_estimator/internal/usecase/interfaces"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"
)

// PDFExtractor validates the PDF structurally, then hands the bytes to
// the generative service for transcription. Gemini reads PDFs natively,
// which sidesteps layout-dependent text extraction entirely.
type PDFExtractor struct {
	genai interfaces.IGenerativeClient
	log   zerolog.Logger
}

var _ interfaces.ITextExtractor = (*PDFExtractor)(nil)

func NewPDFExtractor(genai interfaces.IGenerativeClient, log zerolog.Logger) *PDFExtractor {
	return &PDFExtractor{genai: genai, log: log}
}

func (e *PDFExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	pages, err := e.validate(filename, data)
	if err != nil {
		return "", fmt.Errorf("invalid pdf %s: %w", filename, err)
	}
	e.log.Debug().Str("filename", filename).Int("pages", pages).Msg("pdf validated")

	return e.genai.TranscribePDF(ctx, data)
}

// validate round-trips through a temp file; pdfcpu's stable API surface
// is file-based.
func (e *PDFExtractor) validate(filename string, data []byte) (int, error) {
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("ingest-%d-%s", os.Getpid(), filepath.Base(filename)))
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return 0, err
	}
	defer os.Remove(tmp)

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(tmp, cfg); err != nil {
		return 0, err
	}
	return api.PageCountFile(tmp)
}

// Package extract holds the per-content-type text extractors the
// document classifier dispatches to.
package extract

import (
	"context"
	"strings"
	"unicode/utf8"

	"firesec_estimator/internal/usecase/interfaces"
)

// PlainTextExtractor handles text/* content as-is.
type PlainTextExtractor struct{}

var _ interfaces.ITextExtractor = (*PlainTextExtractor)(nil)

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return text, nil
}

package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"firesec_estimator/internal/usecase/interfaces"
)

// DocxExtractor pulls paragraph text out of the OOXML word/document.xml
// part. Styling is discarded; paragraph breaks become newlines.
type DocxExtractor struct{}

var _ interfaces.ITextExtractor = (*DocxExtractor)(nil)

func NewDocxExtractor() *DocxExtractor {
	return &DocxExtractor{}
}

func (e *DocxExtractor) Extract(_ context.Context, filename string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx %s: %w", filename, err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening document part of %s: %w", filename, err)
		}
		text, err := parseDocumentXML(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parsing document part of %s: %w", filename, err)
		}
		return text, nil
	}
	return "", fmt.Errorf("docx %s has no word/document.xml", filename)
}

// parseDocumentXML streams the XML, collecting w:t character data and
// emitting a newline at each w:p close.
func parseDocumentXML(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	var inText bool

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

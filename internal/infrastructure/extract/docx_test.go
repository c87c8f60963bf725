package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func docxFixture(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestDocxExtractor_Extract(t *testing.T) {
	e := NewDocxExtractor()

	t.Run("paragraphs become lines", func(t *testing.T) {
		doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Scope of work for fire alarm.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Sprinkler </w:t></w:r><w:r><w:t>coverage notes.</w:t></w:r></w:p>
  </w:body>
</w:document>`
		out, err := e.Extract(context.Background(), "spec.docx", docxFixture(t, doc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 paragraphs, got %d: %q", len(lines), out)
		}
		if lines[0] != "Scope of work for fire alarm." || lines[1] != "Sprinkler coverage notes." {
			t.Fatalf("unexpected paragraphs: %q", lines)
		}
	})

	t.Run("not a zip", func(t *testing.T) {
		if _, err := e.Extract(context.Background(), "bad.docx", []byte("plain text")); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("missing document part", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		if _, err := zw.Create("word/styles.xml"); err != nil {
			t.Fatalf("creating zip entry: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("closing zip: %v", err)
		}
		if _, err := e.Extract(context.Background(), "empty.docx", buf.Bytes()); err == nil {
			t.Fatalf("expected error")
		}
	})
}

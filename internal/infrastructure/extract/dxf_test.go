package extract

import (
	"context"
	"strings"
	"testing"
)

func dxfFixture(pairs ...string) []byte {
	return []byte(strings.Join(pairs, "\n") + "\n")
}

func TestDXFExtractor_Extract(t *testing.T) {
	e := NewDXFExtractor()

	t.Run("captures TEXT and MTEXT annotations", func(t *testing.T) {
		data := dxfFixture(
			"0", "LINE",
			"1", "not annotation text",
			"0", "TEXT",
			"1", "FIRE ALARM RISER",
			"0", "MTEXT",
			"1", "SMOKE DETECTOR TYPICAL",
		)
		out, err := e.Extract(context.Background(), "plan.dxf", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "FIRE ALARM RISER") || !strings.Contains(out, "SMOKE DETECTOR TYPICAL") {
			t.Fatalf("annotations missing: %q", out)
		}
		if strings.Contains(out, "not annotation text") {
			t.Fatalf("non-text entity leaked: %q", out)
		}
	})

	t.Run("strips MTEXT format codes", func(t *testing.T) {
		data := dxfFixture(
			"0", "MTEXT",
			"1", `{\fArial;CEILING MOUNT\PWALL MOUNT}`,
		)
		out, err := e.Extract(context.Background(), "plan.dxf", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "CEILING MOUNT\nWALL MOUNT") {
			t.Fatalf("format codes not stripped: %q", out)
		}
		if strings.ContainsAny(out, "{}\\") {
			t.Fatalf("control characters leaked: %q", out)
		}
	})

	t.Run("annotation-free drawing yields structural summary", func(t *testing.T) {
		data := dxfFixture(
			"0", "SECTION",
			"2", "TABLES",
			"0", "TABLE",
			"2", "LAYER",
			"0", "LAYER",
			"2", "FIRE_ALARM_DEVICES",
			"0", "ENDTAB",
			"0", "BLOCK",
			"2", "SMOKE_DETECTOR",
			"0", "ENDBLK",
			"0", "LINE",
			"8", "FIRE_ALARM_DEVICES",
			"0", "LINE",
			"8", "FIRE_ALARM_DEVICES",
			"0", "INSERT",
			"2", "SMOKE_DETECTOR",
			"8", "FIRE_ALARM_DEVICES",
			"0", "EOF",
		)
		out, err := e.Extract(context.Background(), "geometry.dxf", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out == "" {
			t.Fatalf("expected structural summary for drawing without annotations")
		}
		if !strings.Contains(out, "CAD File Analysis") {
			t.Fatalf("summary header missing: %q", out)
		}
		if !strings.Contains(out, "Layers: FIRE_ALARM_DEVICES") {
			t.Fatalf("layer name missing: %q", out)
		}
		if !strings.Contains(out, "Blocks: SMOKE_DETECTOR") {
			t.Fatalf("block name missing: %q", out)
		}
		if !strings.Contains(out, "Entities: 3 (INSERT: 1, LINE: 2)") {
			t.Fatalf("entity counts missing: %q", out)
		}
	})

	t.Run("summary precedes annotations", func(t *testing.T) {
		data := dxfFixture(
			"0", "TEXT",
			"8", "NOTES",
			"1", "PULL STATION BY EXIT",
		)
		out, err := e.Extract(context.Background(), "plan.dxf", data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Layers: NOTES") || !strings.Contains(out, "PULL STATION BY EXIT") {
			t.Fatalf("expected both summary and annotation: %q", out)
		}
		if strings.Index(out, "CAD File Analysis") > strings.Index(out, "PULL STATION BY EXIT") {
			t.Fatalf("summary not first: %q", out)
		}
	})

	t.Run("empty file yields no text", func(t *testing.T) {
		out, err := e.Extract(context.Background(), "empty.dxf", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "" {
			t.Fatalf("expected empty output, got %q", out)
		}
	})
}

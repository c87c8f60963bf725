package extract

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"firesec_estimator/internal/usecase/interfaces"
)

// DXFExtractor reads ASCII DXF CAD files. The format is alternating
// group-code/value line pairs. Two kinds of content are extracted:
// annotation text from TEXT and MTEXT entities (group code 1), and a
// structural summary of layer names, block names and entity-type counts,
// so drawings without any annotations still produce usable text.
type DXFExtractor struct{}

var _ interfaces.ITextExtractor = (*DXFExtractor)(nil)

func NewDXFExtractor() *DXFExtractor {
	return &DXFExtractor{}
}

// dxfStructureMarkers are group-0 values that delimit file structure
// rather than describe drawing entities. They are excluded from entity
// counts.
var dxfStructureMarkers = map[string]bool{
	"SECTION": true, "ENDSEC": true, "EOF": true,
	"TABLE": true, "ENDTAB": true, "ENDBLK": true,
	"LAYER": true, "LTYPE": true, "STYLE": true, "APPID": true,
	"DIMSTYLE": true, "VPORT": true, "VIEW": true, "UCS": true,
	"CLASS": true, "BLOCK": true,
}

func (e *DXFExtractor) Extract(_ context.Context, filename string, data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var annotations strings.Builder
	var layers, blocks []string
	layerSeen := map[string]bool{}
	blockSeen := map[string]bool{}
	entityCounts := map[string]int{}

	current := ""
	for scanner.Scan() {
		code := strings.TrimSpace(scanner.Text())
		if !scanner.Scan() {
			break
		}
		value := strings.TrimSpace(scanner.Text())

		switch code {
		case "0":
			current = value
			if value != "" && !dxfStructureMarkers[value] {
				entityCounts[value]++
			}
		case "1":
			if (current == "TEXT" || current == "MTEXT") && value != "" {
				annotations.WriteString(cleanMText(value))
				annotations.WriteString("\n")
			}
		case "2":
			// Block definitions and block references both carry the
			// block name under group code 2.
			if (current == "BLOCK" || current == "INSERT") && value != "" && !blockSeen[value] {
				blockSeen[value] = true
				blocks = append(blocks, value)
			}
			if current == "LAYER" && value != "" && !layerSeen[value] {
				layerSeen[value] = true
				layers = append(layers, value)
			}
		case "8":
			// Layer reference on any entity.
			if value != "" && !layerSeen[value] {
				layerSeen[value] = true
				layers = append(layers, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanning dxf %s: %w", filename, err)
	}

	summary := structuralSummary(layers, blocks, entityCounts)
	text := annotations.String()
	switch {
	case summary == "":
		return text, nil
	case text == "":
		return summary, nil
	default:
		return summary + "\n" + text, nil
	}
}

// structuralSummary renders the drawing's layers, blocks and entity
// counts as plain text. Empty when the file held no structure at all.
func structuralSummary(layers, blocks []string, entityCounts map[string]int) string {
	if len(layers) == 0 && len(blocks) == 0 && len(entityCounts) == 0 {
		return ""
	}

	total := 0
	types := make([]string, 0, len(entityCounts))
	for typ, n := range entityCounts {
		total += n
		types = append(types, typ)
	}
	sort.Strings(types)
	counts := make([]string, 0, len(types))
	for _, typ := range types {
		counts = append(counts, fmt.Sprintf("%s: %d", typ, entityCounts[typ]))
	}

	var b strings.Builder
	b.WriteString("CAD File Analysis:\n")
	if len(layers) > 0 {
		b.WriteString("- Layers: " + strings.Join(layers, ", ") + "\n")
	}
	if len(blocks) > 0 {
		b.WriteString("- Blocks: " + strings.Join(blocks, ", ") + "\n")
	}
	if len(counts) > 0 {
		b.WriteString(fmt.Sprintf("- Entities: %d (%s)\n", total, strings.Join(counts, ", ")))
	}
	return b.String()
}

// cleanMText strips the most common MTEXT inline format codes so only
// the annotation text survives.
func cleanMText(s string) string {
	s = strings.ReplaceAll(s, "\\P", "\n")
	for {
		start := strings.Index(s, "\\")
		if start < 0 || start+1 >= len(s) {
			break
		}
		end := strings.Index(s[start:], ";")
		if end < 0 {
			s = s[:start] + s[start+2:]
			continue
		}
		s = s[:start] + s[start+end+1:]
	}
	return strings.Map(func(r rune) rune {
		if r == '{' || r == '}' {
			return -1
		}
		return r
	}, s)
}

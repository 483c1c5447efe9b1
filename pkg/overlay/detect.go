package overlay

import (
	"fmt"
	"regexp"
	"strings"
)

// Patterns for optional content group names in raw PDF data
var ocgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:\\.|[^\\)])+)\)`),
	regexp.MustCompile(`/Name\s*\(((?:\\.|[^\\)])+)\)[\s\S]{1,50}/Type\s*/OCG`),
}

// detectPDFLayers attempts to find layer names in the raw PDF data.
func detectPDFLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	for _, regex := range ocgPatterns {
		for _, match := range regex.FindAllStringSubmatch(content, -1) {
			layers = append(layers, unescapePDFString(match[1]))
		}
	}

	// Layer names written as UTF-16 start with a BOM
	for i, layer := range layers {
		if len(layer) >= 2 && layer[0] == '\xfe' && layer[1] == '\xff' {
			if decoded, err := decodeUTF16BE([]byte(layer)); err == nil {
				layers[i] = decoded
			}
		}
	}

	// Deduplicate
	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique, nil
}

// LayerCheckResult contains the results of checking for overlay layers
type LayerCheckResult struct {
	Layers       []string // All detected layers
	HasLayer     bool     // True if a layer with the configured name exists
	MatchedLayer string   // Name of the detected layer (if any)
	Warnings     []string // Any warnings about similar layers
}

// CheckExistingLayers checks a PDF for layers written by a previous overlay
func CheckExistingLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := detectPDFLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayerPattern := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+.*`, regexp.QuoteMeta(layerName)))

	for _, layer := range layers {
		if layer == layerName || pageLayerPattern.MatchString(layer) {
			result.HasLayer = true
			result.MatchedLayer = layer
			break
		}

		if strings.Contains(strings.ToLower(layer), "hocr") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Existing layer detected that might hold hOCR words: %s", layer))
		}
	}

	return result, nil
}

package hocr

import (
	"encoding/json"
	"fmt"
)

// ToJSON converts a Document to a pretty-printed JSON string
func ToJSON(doc Document) (string, error) {
	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// FromJSON loads a Document previously written by ToJSON
func FromJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode document JSON: %w", err)
	}
	fillEmpty(&doc)
	return doc, nil
}

// fillEmpty replaces slices left nil by missing keys, so a loaded document
// serializes with [] like a transformed one
func fillEmpty(doc *Document) {
	if doc.Pages == nil {
		doc.Pages = []Page{}
	}
	for pi := range doc.Pages {
		page := &doc.Pages[pi]
		if page.Areas == nil {
			page.Areas = []Area{}
		}
		for ai := range page.Areas {
			area := &page.Areas[ai]
			if area.Paragraphs == nil {
				area.Paragraphs = []Paragraph{}
			}
			for ri := range area.Paragraphs {
				para := &area.Paragraphs[ri]
				if para.Lines == nil {
					para.Lines = []Line{}
				}
				for li := range para.Lines {
					line := &para.Lines[li]
					if line.Properties.Baseline == nil {
						line.Properties.Baseline = []float64{}
					}
					if line.Words == nil {
						line.Words = []Word{}
					}
				}
			}
		}
	}
}

package overlay

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/hocrsearch/pkg/hocr"
)

// createPDF builds a new PDF with one blank page per document page.
// This function assumes inputs have been validated by the caller.
func createPDF(doc hocr.Document, regions []hocr.BBox, config Config) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "", "")

	hits := pageHits(doc, regions)
	outlined := 0
	for i, page := range doc.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: config.PageWidth, Ht: config.PageHeight})

		if err := drawWordLayer(pdf, page, i+1, config); err != nil {
			return nil, fmt.Errorf("failed to draw word layer for page %d: %w", i+1, err)
		}
		drawRegionLayer(pdf, regions, hits[i], i+1, config)
		outlined += len(hits[i])
	}

	if config.Debug {
		fmt.Fprintf(getLogger(config), "Outlined %d words in %d regions\n", outlined, len(regions))
	}

	// Generate final PDF
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

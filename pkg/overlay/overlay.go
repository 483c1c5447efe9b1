// Package overlay renders a transformed hOCR document and the words found in
// search regions as PDF layers.
//
// Each page gets two layers that can be toggled in compatible PDF readers:
// - the words of the page, invisible unless debug is set, so the text stays searchable
// - the search regions and the words inside them, outlined in color
//
// Main Functions:
//
// - Render: Creates a new PDF from a document
// - Apply: Draws the layers over the pages of an existing PDF
package overlay

import (
	"fmt"

	"github.com/gardar/hocrsearch/pkg/hocr"
	"github.com/gardar/hocrsearch/pkg/search"
)

// Render creates a PDF with one page per document page and outlines every
// word that overlaps one of the regions.
func Render(doc hocr.Document, regions []hocr.BBox, config Config) ([]byte, error) {
	if err := validate(doc, regions, config); err != nil {
		return nil, err
	}

	finalPDF, err := createPDF(doc, regions, config)
	if err != nil {
		return nil, fmt.Errorf("error creating PDF: %w", err)
	}
	return finalPDF, nil
}

// Apply draws the layers over an existing PDF, page i of the document over
// page i+1 of the PDF. It refuses a PDF that already has the layers unless
// config.Force is set.
func Apply(inputPDFData []byte, doc hocr.Document, regions []hocr.BBox, config Config) ([]byte, error) {
	if len(inputPDFData) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if err := validate(doc, regions, config); err != nil {
		return nil, err
	}

	layerResult, err := CheckExistingLayers(inputPDFData, config.LayerName)
	if err != nil {
		return nil, fmt.Errorf("layer detection failed: %w", err)
	}
	for _, warning := range layerResult.Warnings {
		warnf(config, "%s", warning)
	}

	if layerResult.HasLayer && !config.Force {
		return nil, fmt.Errorf("file already has an overlay (layer '%s'), use force to reapply",
			layerResult.MatchedLayer)
	} else if layerResult.HasLayer {
		warnf(config, "file already has an overlay; reapplying will duplicate the layers")
	}

	finalPDF, err := modifyExistingPDF(inputPDFData, doc, regions, config)
	if err != nil {
		return nil, fmt.Errorf("error modifying existing PDF: %w", err)
	}
	return finalPDF, nil
}

// validate checks the inputs shared by Render and Apply
func validate(doc hocr.Document, regions []hocr.BBox, config Config) error {
	if len(doc.Pages) == 0 {
		return fmt.Errorf("document contains no pages")
	}
	if config.PageWidth <= 0 || config.PageHeight <= 0 {
		return fmt.Errorf("page size must be positive, got %vx%v", config.PageWidth, config.PageHeight)
	}
	for i, region := range regions {
		if !search.InBounds(region) {
			return fmt.Errorf("region %d %v: %w", i, region, search.ErrRegionOutOfBounds)
		}
	}
	return nil
}

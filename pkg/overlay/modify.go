package overlay

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/hocrsearch/pkg/hocr"
)

// modifyExistingPDF imports pages from an existing PDF and draws the layers over them.
// Page i of the document goes over page i+1 of the PDF.
func modifyExistingPDF(inputPDFData []byte, doc hocr.Document, regions []hocr.BBox, config Config) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDFData))
	hits := pageHits(doc, regions)

	for i, page := range doc.Pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: config.PageWidth, Ht: config.PageHeight})

		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, config.PageWidth, 0)

		if err := drawWordLayer(pdf, page, i+1, config); err != nil {
			warnf(config, "page %d: %v", i+1, err)
		}
		drawRegionLayer(pdf, regions, hits[i], i+1, config)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

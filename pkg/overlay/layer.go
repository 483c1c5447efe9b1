package overlay

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/hocrsearch/pkg/hocr"
	"github.com/gardar/hocrsearch/pkg/search"
)

// layerTitle formats a layer name with its page number
func layerTitle(name string, pageNum int) string {
	if pageNum > 0 {
		return fmt.Sprintf("%s (Page %d)", name, pageNum)
	}
	return name
}

// drawWordLayer draws the text of every word of a page onto its own layer.
// The text is invisible unless debug is set.
func drawWordLayer(pdf *fpdf.Fpdf, page hocr.Page, pageNum int, config Config) error {
	layer := pdf.AddLayer(layerTitle(config.LayerName, pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	encodingErrors := 0
	wordCount := 0
	for _, area := range page.Areas {
		for _, para := range area.Paragraphs {
			for _, line := range para.Lines {
				for _, word := range line.Words {
					drawWord(pdf, word, config, &encodingErrors)
					wordCount++
				}
			}
		}
	}

	pdf.SetAlpha(1.0, "Normal")
	pdf.EndLayer()

	// Report encoding errors if more than a threshold
	if wordCount > 0 && encodingErrors > 0 && encodingErrors > wordCount/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, wordCount)
	}
	return nil
}

// drawWord renders a single word scaled to the width of its bbox
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, config Config, encodingErrors *int) {
	x, y, wordWidth, _ := pageRect(word.Properties.BBox, config.PageWidth, config.PageHeight)

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		*encodingErrors++
		latin1 = word.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 && wordWidth > 0 {
		pdf.SetFontSize(config.Font.Size * wordWidth / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	pdf.Text(x, y+fontSize*config.Font.AscentRatio, latin1)
	pdf.SetFontSize(config.Font.Size)
}

// pageHits collects the bboxes of words overlapping any region, keyed by page index
func pageHits(doc hocr.Document, regions []hocr.BBox) map[int][]hocr.BBox {
	hits := make(map[int][]hocr.BBox)
	if len(regions) == 0 {
		return hits
	}
	hocr.Walk(doc, func(pos hocr.Position, word hocr.Word) bool {
		if inAnyRegion(word.Properties.BBox, regions) {
			hits[pos.Page] = append(hits[pos.Page], word.Properties.BBox)
		}
		return true
	})
	return hits
}

// drawRegionLayer outlines each region and the given word hits of one page
func drawRegionLayer(pdf *fpdf.Fpdf, regions, hits []hocr.BBox, pageNum int, config Config) {
	layer := pdf.AddLayer(layerTitle(config.LayerName+" matches", pageNum), true)
	pdf.BeginLayer(layer)
	pdf.SetLineWidth(0.5)

	pdf.SetDrawColor(config.Region.R, config.Region.G, config.Region.B)
	for _, region := range regions {
		x, y, w, h := pageRect(region, config.PageWidth, config.PageHeight)
		pdf.Rect(x, y, w, h, "D")
	}

	pdf.SetDrawColor(config.Hit.R, config.Hit.G, config.Hit.B)
	for _, hit := range hits {
		x, y, w, h := pageRect(hit, config.PageWidth, config.PageHeight)
		pdf.Rect(x, y, w, h, "D")
	}

	pdf.EndLayer()
}

func inAnyRegion(b hocr.BBox, regions []hocr.BBox) bool {
	for _, region := range regions {
		if search.Overlaps(b, region) {
			return true
		}
	}
	return false
}

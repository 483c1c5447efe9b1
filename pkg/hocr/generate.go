package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

// generateData is what the template renders: the document plus the raw page
// size every normalized bbox is scaled back to.
type generateData struct {
	Document
	Width  float64
	Height float64
}

// GenerateHOCRDocument writes a Document back out as hOCR markup.
// Normalized bboxes are multiplied by width and height, the raw pixel size
// given to every page. Transforming the output yields the same document up
// to floating point rounding.
func GenerateHOCRDocument(doc Document, width, height float64) (string, error) {
	if !(width > 0 && height > 0) {
		return "", fmt.Errorf("%w: %vx%v", ErrDegeneratePage, width, height)
	}

	tmpl, err := template.New("hocr.tmpl").Funcs(template.FuncMap{
		"inc":       func(i int) int { return i + 1 },
		"num":       formatNumber,
		"bbox":      func(b BBox) string { return bboxTitle(b, width, height) },
		"lineTitle": func(p LineProperties) string { return lineTitle(p, width, height) },
		"wordTitle": func(p WordProperties) string { return wordTitle(p, width, height) },
	}).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, generateData{Document: doc, Width: width, Height: height}); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}

	return buf.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func bboxTitle(b BBox, width, height float64) string {
	return fmt.Sprintf("bbox %s %s %s %s",
		formatNumber(b[LeftX]*width),
		formatNumber(b[LeftY]*height),
		formatNumber(b[RightX]*width),
		formatNumber(b[RightY]*height))
}

// lineTitle keeps the baseline and metrics raw, as they were read
func lineTitle(p LineProperties, width, height float64) string {
	parts := []string{bboxTitle(p.BBox, width, height)}
	if len(p.Baseline) == baselineArity {
		parts = append(parts, fmt.Sprintf("baseline %s %s", formatNumber(p.Baseline[0]), formatNumber(p.Baseline[1])))
	}
	parts = append(parts,
		"x_size "+formatNumber(p.XSize),
		"x_descenders "+formatNumber(p.XDescenders),
		"x_ascenders "+formatNumber(p.XAscenders))
	return strings.Join(parts, "; ")
}

func wordTitle(p WordProperties, width, height float64) string {
	return strings.Join([]string{
		bboxTitle(p.BBox, width, height),
		"x_wconf " + formatNumber(p.XWconf),
		"x_fsize " + formatNumber(p.XFsize),
	}, "; ")
}

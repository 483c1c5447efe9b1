package hocr

// Document is the root of a transformed hOCR file
type Document struct {
	Pages []Page `json:"pages"` // Pages in reading order
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	Properties PageProperties `json:"properties"`
	Areas      []Area         `json:"areas"`
}

// PageProperties of a page. BBox is always PageBBox.
type PageProperties struct {
	BBox BBox `json:"bbox"`
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return ClassPage }

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	Properties AreaProperties `json:"properties"`
	Paragraphs []Paragraph    `json:"paragraphs"`
}

// AreaProperties of an area
type AreaProperties struct {
	BBox BBox `json:"bbox"`
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return ClassArea }

// Paragraph represents a paragraph within an area
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	Properties ParagraphProperties `json:"properties"`
	Lines      []Line              `json:"lines"`
}

// ParagraphProperties of a paragraph
type ParagraphProperties struct {
	BBox BBox `json:"bbox"`
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return ClassParagraph }

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	Properties LineProperties `json:"properties"`
	Words      []Word         `json:"words"`
}

// LineProperties holds the geometry and typographic metrics of a line
type LineProperties struct {
	BBox        BBox      `json:"bbox"`
	Baseline    []float64 `json:"baseline"`     // Slope and intercept, empty when absent
	XSize       float64   `json:"x_size"`       // Height of the line
	XDescenders float64   `json:"x_descenders"` // Descender length
	XAscenders  float64   `json:"x_ascenders"`  // Ascender length
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return ClassLine }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	Properties WordProperties `json:"properties"`
	Text       string         `json:"text"` // The actual text content
}

// WordProperties holds the geometry and recognition metrics of a word
type WordProperties struct {
	BBox   BBox    `json:"bbox"`
	XWconf float64 `json:"x_wconf"` // Recognition confidence (0-100)
	XFsize float64 `json:"x_fsize"` // Font size
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return ClassWord }

// hOCR class names used as role discriminators
const (
	ClassPage      = "ocr_page"
	ClassArea      = "ocr_carea"
	ClassParagraph = "ocr_par"
	ClassLine      = "ocr_line"
	ClassWord      = "ocrx_word"
)

// Index of each coordinate inside a BBox
//
//	(leftX, leftY)
//	       ----------
//	       |        |
//	       ----------
//	           (rightX, rightY)
const (
	LeftX  = 0
	LeftY  = 1
	RightX = 2
	RightY = 3
)

// BBox represents a rectangle in the document as [leftX, leftY, rightX, rightY]
// Used to store hOCR 'bbox' property values
type BBox [4]float64

// PageBBox is the bbox of every page: the full normalization frame
var PageBBox = BBox{0, 0, 1, 1}

// NewBBox creates a bounding box from coordinates
// x1, y1 represent the top-left corner, while x2, y2 represent the bottom-right corner.
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{x1, y1, x2, y2}
}

// Normalize divides raw coordinates by the raw page width and height.
// No check is made that the result lies in [0,1].
func (b BBox) Normalize(width, height float64) BBox {
	return BBox{
		b[LeftX] / width,
		b[LeftY] / height,
		b[RightX] / width,
		b[RightY] / height,
	}
}

// Width returns rightX - leftX
func (b BBox) Width() float64 { return b[RightX] - b[LeftX] }

// Height returns rightY - leftY
func (b BBox) Height() float64 { return b[RightY] - b[LeftY] }

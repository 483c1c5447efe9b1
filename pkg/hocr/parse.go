package hocr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// ErrNoPages is returned when the markup has no ocr_page element
	ErrNoPages = errors.New("no ocr_page elements found in hOCR data")
	// ErrMissingBBox is returned when an element's title carries no bbox
	ErrMissingBBox = errors.New("missing bbox in title")
	// ErrDegeneratePage is returned when a page has zero width or height
	ErrDegeneratePage = errors.New("page has zero width or height")
)

// Transform converts hOCR markup into a normalized Document.
func Transform(markup string) (Document, error) {
	return Parse([]byte(markup))
}

// Parse converts raw hOCR data into a normalized Document.
// Any malformed page, area, paragraph, line or word fails the whole document.
func Parse(data []byte) (Document, error) {
	result := Document{Pages: []Page{}}

	decoded, err := decode(data)
	if err != nil {
		return result, err
	}

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR markup: %w", err)
	}

	pages := dom.Find(selector(Page{}))
	if pages.Length() == 0 {
		return result, ErrNoPages
	}

	err = eachElement(pages, func(s *goquery.Selection) error {
		page, err := processPage(s)
		if err != nil {
			return err
		}
		result.Pages = append(result.Pages, page)
		return nil
	})
	if err != nil {
		return Document{Pages: []Page{}}, err
	}
	return result, nil
}

// processPage reads the page extent and builds its areas relative to it
func processPage(s *goquery.Selection) (Page, error) {
	tokens := titleTokens(s)
	raw, err := requireBBox(s, ClassPage, tokens)
	if err != nil {
		return Page{}, err
	}

	width, height := raw[RightX], raw[RightY]
	if width == 0 || height == 0 {
		return Page{}, elementError(s, ClassPage, ErrDegeneratePage)
	}

	page := Page{
		Properties: PageProperties{BBox: PageBBox},
		Areas:      []Area{},
	}
	err = eachElement(s.Find(selector(Area{})), func(as *goquery.Selection) error {
		area, err := processArea(as, width, height)
		if err != nil {
			return err
		}
		page.Areas = append(page.Areas, area)
		return nil
	})
	return page, err
}

// processArea extracts area geometry and its paragraphs
func processArea(s *goquery.Selection, width, height float64) (Area, error) {
	raw, err := requireBBox(s, ClassArea, titleTokens(s))
	if err != nil {
		return Area{}, err
	}

	area := Area{
		Properties: AreaProperties{BBox: raw.Normalize(width, height)},
		Paragraphs: []Paragraph{},
	}
	err = eachElement(s.Find(selector(Paragraph{})), func(ps *goquery.Selection) error {
		paragraph, err := processParagraph(ps, width, height)
		if err != nil {
			return err
		}
		area.Paragraphs = append(area.Paragraphs, paragraph)
		return nil
	})
	return area, err
}

// processParagraph extracts paragraph geometry and its lines
func processParagraph(s *goquery.Selection, width, height float64) (Paragraph, error) {
	raw, err := requireBBox(s, ClassParagraph, titleTokens(s))
	if err != nil {
		return Paragraph{}, err
	}

	paragraph := Paragraph{
		Properties: ParagraphProperties{BBox: raw.Normalize(width, height)},
		Lines:      []Line{},
	}
	err = eachElement(s.Find(selector(Line{})), func(ls *goquery.Selection) error {
		line, err := processLine(ls, width, height)
		if err != nil {
			return err
		}
		paragraph.Lines = append(paragraph.Lines, line)
		return nil
	})
	return paragraph, err
}

// processLine extracts line geometry, baseline and metrics, then its words
func processLine(s *goquery.Selection, width, height float64) (Line, error) {
	tokens := titleTokens(s)
	raw, err := requireBBox(s, ClassLine, tokens)
	if err != nil {
		return Line{}, err
	}

	props := LineProperties{BBox: raw.Normalize(width, height)}
	if props.Baseline, err = BaselineField(tokens); err != nil {
		return Line{}, elementError(s, ClassLine, err)
	}
	if props.XSize, err = ScalarField(tokens, "x_size"); err != nil {
		return Line{}, elementError(s, ClassLine, err)
	}
	if props.XDescenders, err = ScalarField(tokens, "x_descenders"); err != nil {
		return Line{}, elementError(s, ClassLine, err)
	}
	if props.XAscenders, err = ScalarField(tokens, "x_ascenders"); err != nil {
		return Line{}, elementError(s, ClassLine, err)
	}

	line := Line{Properties: props, Words: []Word{}}
	err = eachElement(s.Find(selector(Word{})), func(ws *goquery.Selection) error {
		word, err := processWord(ws, width, height)
		if err != nil {
			return err
		}
		line.Words = append(line.Words, word)
		return nil
	})
	return line, err
}

// processWord extracts a word's geometry, confidence, font size and text
func processWord(s *goquery.Selection, width, height float64) (Word, error) {
	tokens := titleTokens(s)
	raw, err := requireBBox(s, ClassWord, tokens)
	if err != nil {
		return Word{}, err
	}

	props := WordProperties{BBox: raw.Normalize(width, height)}
	if props.XWconf, err = ScalarField(tokens, "x_wconf"); err != nil {
		return Word{}, elementError(s, ClassWord, err)
	}
	if props.XFsize, err = ScalarField(tokens, "x_fsize"); err != nil {
		return Word{}, elementError(s, ClassWord, err)
	}

	return Word{Properties: props, Text: wordText(s.Get(0))}, nil
}

// wordText returns the text of the word's last non-blank child.
// Tesseract wraps the word in <strong>/<em> when it detects a style, so the
// last child carries the text either way.
func wordText(n *html.Node) string {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if text := strings.TrimSpace(extractTextContent(c)); text != "" {
			return text
		}
	}
	return ""
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(extractTextContent(c))
	}
	return b.String()
}

// eachElement calls fn on every element of sel in document order,
// stopping at the first error
func eachElement(sel *goquery.Selection, fn func(*goquery.Selection) error) error {
	var err error
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		err = fn(s)
		return err == nil
	})
	return err
}

// requireBBox reads the raw bbox of an element, failing when it is absent
func requireBBox(s *goquery.Selection, class string, tokens []string) (BBox, error) {
	raw, ok, err := BBoxField(tokens)
	if err != nil {
		return BBox{}, elementError(s, class, err)
	}
	if !ok {
		return BBox{}, elementError(s, class, ErrMissingBBox)
	}
	return raw, nil
}

func titleTokens(s *goquery.Selection) []string {
	return Tokenize(s.AttrOr("title", ""))
}

// element is a model type tied to an hOCR class
type element interface {
	Class() string
}

// selector matches the hOCR elements that become e
func selector(e element) string {
	return "." + e.Class()
}

// elementError prefixes err with the element's class and id
func elementError(s *goquery.Selection, class string, err error) error {
	if id := s.AttrOr("id", ""); id != "" {
		return fmt.Errorf("%s %q: %w", class, id, err)
	}
	return fmt.Errorf("%s: %w", class, err)
}

package hocr

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateHOCRDocumentRoundTrip(t *testing.T) {
	doc, err := Transform(sampleHOCR)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}

	markup, err := GenerateHOCRDocument(doc, 5000, 7040)
	if err != nil {
		t.Fatalf("GenerateHOCRDocument() error: %v", err)
	}
	again, err := Transform(markup)
	if err != nil {
		t.Fatalf("Transform() of generated markup error: %v\n%s", err, markup)
	}

	if got, want := WordCount(again), WordCount(doc); got != want {
		t.Fatalf("round trip has %d words, want %d", got, want)
	}
	line := doc.Pages[0].Areas[0].Paragraphs[0].Lines[0]
	gotLine := again.Pages[0].Areas[0].Paragraphs[0].Lines[0]
	if !bboxNear(gotLine.Properties.BBox, line.Properties.BBox) {
		t.Errorf("line bbox = %v, want %v", gotLine.Properties.BBox, line.Properties.BBox)
	}
	if len(gotLine.Properties.Baseline) != 2 || gotLine.Properties.Baseline[0] != 0.004 || gotLine.Properties.Baseline[1] != -31 {
		t.Errorf("baseline = %v, want [0.004 -31]", gotLine.Properties.Baseline)
	}
	if gotLine.Properties.XSize != 98 || gotLine.Properties.XAscenders != 34 {
		t.Errorf("line metrics = %+v", gotLine.Properties)
	}

	for i, word := range line.Words {
		got := gotLine.Words[i]
		if got.Text != word.Text {
			t.Errorf("word %d text = %q, want %q", i, got.Text, word.Text)
		}
		if !bboxNear(got.Properties.BBox, word.Properties.BBox) {
			t.Errorf("word %d bbox = %v, want %v", i, got.Properties.BBox, word.Properties.BBox)
		}
		if got.Properties.XWconf != word.Properties.XWconf {
			t.Errorf("word %d x_wconf = %v, want %v", i, got.Properties.XWconf, word.Properties.XWconf)
		}
	}
}

func TestGenerateHOCRDocumentEscapesText(t *testing.T) {
	doc := Document{Pages: []Page{{
		Properties: PageProperties{BBox: PageBBox},
		Areas: []Area{{Paragraphs: []Paragraph{{Lines: []Line{{
			Properties: LineProperties{Baseline: []float64{}},
			Words:      []Word{{Properties: WordProperties{BBox: BBox{0, 0, 0.5, 0.5}}, Text: "a<b&c"}},
		}}}}}},
	}}}

	markup, err := GenerateHOCRDocument(doc, 100, 100)
	if err != nil {
		t.Fatalf("GenerateHOCRDocument() error: %v", err)
	}
	if strings.Contains(markup, "a<b") {
		t.Errorf("word text not escaped:\n%s", markup)
	}
	if strings.Contains(markup, "baseline") {
		t.Errorf("empty baseline written:\n%s", markup)
	}

	again, err := Transform(markup)
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if got := again.Pages[0].Areas[0].Paragraphs[0].Lines[0].Words[0].Text; got != "a<b&c" {
		t.Errorf("word text = %q, want %q", got, "a<b&c")
	}
}

func TestGenerateHOCRDocumentPageSize(t *testing.T) {
	for _, size := range [][2]float64{{0, 100}, {100, 0}, {-1, 100}} {
		if _, err := GenerateHOCRDocument(Document{}, size[0], size[1]); !errors.Is(err, ErrDegeneratePage) {
			t.Errorf("GenerateHOCRDocument(%v) error = %v, want ErrDegeneratePage", size, err)
		}
	}
}

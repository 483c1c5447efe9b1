package hocr

import (
	"strings"
)

// Position locates a word inside the document tree
type Position struct {
	Page      int
	Area      int
	Paragraph int
	Line      int
	Word      int
}

// Walk calls fn for every word in document order.
// Returning false from fn stops the walk.
func Walk(doc Document, fn func(pos Position, word Word) bool) {
	for pi, page := range doc.Pages {
		for ai, area := range page.Areas {
			for ri, para := range area.Paragraphs {
				for li, line := range para.Lines {
					for wi, word := range line.Words {
						if !fn(Position{pi, ai, ri, li, wi}, word) {
							return
						}
					}
				}
			}
		}
	}
}

// ExtractText extracts all text from a Document.
// Words are separated by spaces, lines by newlines and pages by a blank line.
func ExtractText(doc Document) string {
	var builder strings.Builder

	for i, page := range doc.Pages {
		if i > 0 {
			builder.WriteString("\n")
		}
		for _, area := range page.Areas {
			for _, para := range area.Paragraphs {
				for _, line := range para.Lines {
					extractLineText(&builder, line)
				}
			}
		}
	}

	return builder.String()
}

// extractLineText writes a line's words followed by a newline
func extractLineText(builder *strings.Builder, line Line) {
	for i, word := range line.Words {
		if i > 0 {
			builder.WriteString(" ")
		}
		builder.WriteString(word.Text)
	}
	builder.WriteString("\n")
}

// WordCount returns the number of words in the document
func WordCount(doc Document) int {
	n := 0
	Walk(doc, func(Position, Word) bool {
		n++
		return true
	})
	return n
}

// Package search finds the words of a transformed hOCR document that lie in
// a rectangular region of the page.
//
// Regions use the same page-relative [leftX, leftY, rightX, rightY] frame as
// the document model. Overlap is strict: a word that only touches the region
// with an edge is not a match. Point and line regions are valid and match the
// words that straddle them.
//
// Every query is a linear scan over an immutable document, so any number of
// queries may run concurrently on the same Document.
package search

import (
	"errors"
	"math"

	"github.com/gardar/hocrsearch/pkg/hocr"
)

// ErrRegionOutOfBounds is returned when a region component lies outside [0,1]
var ErrRegionOutOfBounds = errors.New("search region outside [0,1]")

// Match is a word found in the region, reduced to its geometry and text
type Match struct {
	BBox hocr.BBox `json:"bbox"`
	Text string    `json:"text"`
}

// Query returns the words whose bbox strictly overlaps rect, in document order.
// rect is used as given; pass it through NormalizeRect first when its corners
// may come in any order.
func Query(doc hocr.Document, rect hocr.BBox) ([]Match, error) {
	if !InBounds(rect) {
		return nil, ErrRegionOutOfBounds
	}

	result := []Match{}
	hocr.Walk(doc, func(_ hocr.Position, word hocr.Word) bool {
		if Overlaps(word.Properties.BBox, rect) {
			result = append(result, neededWordInfo(word))
		}
		return true
	})
	return result, nil
}

// Overlaps reports whether a and b intersect with positive extent on both
// axes, or straddle b when b is a point or a line.
func Overlaps(a, b hocr.BBox) bool {
	return !(a[hocr.LeftY] >= b[hocr.RightY] ||
		a[hocr.RightY] <= b[hocr.LeftY] ||
		a[hocr.LeftX] >= b[hocr.RightX] ||
		a[hocr.RightX] <= b[hocr.LeftX])
}

// InBounds reports whether every component of rect lies in [0,1]. NaN does not.
func InBounds(rect hocr.BBox) bool {
	for _, v := range rect {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// NormalizeRect orders the corners of rect so that leftX <= rightX and leftY <= rightY
func NormalizeRect(rect hocr.BBox) hocr.BBox {
	return hocr.BBox{
		math.Min(rect[hocr.LeftX], rect[hocr.RightX]),
		math.Min(rect[hocr.LeftY], rect[hocr.RightY]),
		math.Max(rect[hocr.LeftX], rect[hocr.RightX]),
		math.Max(rect[hocr.LeftY], rect[hocr.RightY]),
	}
}

// neededWordInfo keeps only what a match exposes
func neededWordInfo(word hocr.Word) Match {
	return Match{
		BBox: word.Properties.BBox,
		Text: word.Text,
	}
}

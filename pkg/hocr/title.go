package hocr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Number of values each title property carries
const (
	bboxArity     = 4
	baselineArity = 2
	scalarArity   = 1
)

var (
	// ErrShortField is returned when a keyword is followed by fewer values than it needs
	ErrShortField = errors.New("too few values after keyword")
	// ErrMalformedField is returned when a value after a keyword is not a number
	ErrMalformedField = errors.New("non-numeric value after keyword")
)

// FieldError describes a title property that could not be read
type FieldError struct {
	Keyword string // Property keyword, e.g. "bbox"
	Token   string // Offending token, empty when values ran out
	Err     error  // ErrShortField or ErrMalformedField
}

func (e *FieldError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s %q: %v", e.Keyword, e.Token, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Keyword, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Tokenize breaks an hOCR title attribute into its tokens.
// Whitespace and ';' both separate tokens, so property boundaries are not kept.
// Example input: "bbox 100 200 300 400; x_wconf 95"
func Tokenize(title string) []string {
	return strings.FieldsFunc(title, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})
}

// Field finds the first token equal to keyword and parses the arity tokens
// that follow it. Tokens beyond the quota are never looked at.
// A missing keyword yields an empty slice and no error.
func Field(tokens []string, keyword string, arity int) ([]float64, error) {
	values := []float64{}
	for i, tok := range tokens {
		if tok != keyword {
			continue
		}
		rest := tokens[i+1:]
		if len(rest) < arity {
			return nil, &FieldError{Keyword: keyword, Err: ErrShortField}
		}
		for _, raw := range rest[:arity] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &FieldError{Keyword: keyword, Token: raw, Err: ErrMalformedField}
			}
			values = append(values, v)
		}
		return values, nil
	}
	return values, nil
}

// BBoxField extracts the 'bbox' property.
// The boolean is false when the title has no bbox.
func BBoxField(tokens []string) (BBox, bool, error) {
	values, err := Field(tokens, "bbox", bboxArity)
	if err != nil || len(values) == 0 {
		return BBox{}, false, err
	}
	return NewBBox(values[0], values[1], values[2], values[3]), true, nil
}

// BaselineField extracts the 'baseline' property, empty when absent
func BaselineField(tokens []string) ([]float64, error) {
	return Field(tokens, "baseline", baselineArity)
}

// ScalarField extracts a single numeric property such as x_size, 0 when absent
func ScalarField(tokens []string, keyword string) (float64, error) {
	values, err := Field(tokens, keyword, scalarArity)
	if err != nil || len(values) == 0 {
		return 0, err
	}
	return values[0], nil
}

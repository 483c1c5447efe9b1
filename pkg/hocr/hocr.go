// Package hocr turns hOCR markup, the HTML-based format OCR engines use to
// describe recognized text and its layout, into a normalized document model.
//
// This package provides:
//
// - An object model for the hOCR hierarchy with page-relative geometry
// - A scanner for the keyword/value micro-grammar stored in title attributes
// - A transformer from hOCR markup to the object model
// - JSON encoding and decoding of the model, plus plain text extraction
// - A writer that turns the model back into hOCR markup
//
// The model follows the hierarchy defined by hOCR:
// Document → Pages → Areas → Paragraphs → Lines → Words.
//
// Every bbox below the page is divided by the raw page width and height, so
// coordinates are fractions in [0,1] and the page itself is always [0,0,1,1].
//
// Key Types:
//
// - Document: Top-level structure, an ordered list of pages
// - Page: Element with class 'ocr_page'
// - Area: Element with class 'ocr_carea'
// - Paragraph: Element with class 'ocr_par'
// - Line: Element with class 'ocr_line'
// - Word: Element with class 'ocrx_word'
// - BBox: Rectangle stored as [leftX, leftY, rightX, rightY]
//
// Main Functions:
//
// - Transform: Parses hOCR markup into a Document
// - Field: Extracts a keyword's numeric values from a title attribute
// - ToJSON / FromJSON: Serialize and load a Document
// - GenerateHOCRDocument: Writes a Document as hOCR for a given page size
package hocr

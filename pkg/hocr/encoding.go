package hocr

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// decode converts data to UTF-8 according to the charset its <meta> tags declare.
// Markup without a declaration is assumed to be UTF-8 already.
func decode(data []byte) ([]byte, error) {
	label := declaredCharset(string(data))
	if label == "" {
		return data, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	if name == "utf-8" {
		return data, nil
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", label, err)
	}
	return decoded, nil
}

// declaredCharset returns the lower-cased charset label of the first <meta>
// tag declaring one. Only the document head is read: scanning stops at the
// first tag that cannot appear there, so text and titles of the OCR elements
// are never inspected.
func declaredCharset(content string) string {
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch atom.Lookup(name) {
			case atom.Html, atom.Head, atom.Title, atom.Link, atom.Base, atom.Script, atom.Style:
				continue
			case atom.Meta:
				if label := metaCharset(z, hasAttr); label != "" {
					return label
				}
			default:
				return ""
			}
		}
	}
}

// metaCharset reads the charset of a <meta charset> or a
// <meta http-equiv="Content-Type" content="...; charset=..."> tag
func metaCharset(z *html.Tokenizer, hasAttr bool) string {
	var httpEquiv bool
	var label, contentType string
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(bytes.ToLower(key)) {
		case "charset":
			label = string(val)
		case "http-equiv":
			httpEquiv = strings.EqualFold(string(val), "content-type")
		case "content":
			contentType = string(val)
		}
	}

	if label == "" && httpEquiv {
		label = charsetFromContentType(contentType)
	}
	return strings.ToLower(strings.TrimSpace(label))
}

// charsetFromContentType returns the label following "charset=" in a Content-Type value
func charsetFromContentType(value string) string {
	lower := strings.ToLower(value)
	idx := strings.Index(lower, "charset=")
	if idx < 0 {
		return ""
	}

	fields := strings.FieldsFunc(lower[idx+len("charset="):], func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

package overlay

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gardar/hocrsearch/pkg/hocr"
)

// pageRect scales a page-relative bbox to PDF points.
// It returns the top-left corner, width and height.
func pageRect(b hocr.BBox, pdfW, pdfH float64) (x, y, w, h float64) {
	return b[hocr.LeftX] * pdfW, b[hocr.LeftY] * pdfH, b.Width() * pdfW, b.Height() * pdfH
}

func unescapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\(", "(")
	s = strings.ReplaceAll(s, "\\)", ")")
	s = strings.ReplaceAll(s, "\\\\", "\\")
	return s
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 {
		return "", fmt.Errorf("input too short for UTF-16BE")
	}
	if b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	b = b[2:]
	var runes []rune
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes), nil
}

// getLogger returns the appropriate io.Writer to use for logging
// based on the configuration settings, defaulting to os.Stdout if nil.
func getLogger(config Config) io.Writer {
	if config.Logger == nil {
		return os.Stdout
	}
	return config.Logger
}

// warnf writes a warning when the config allows it
func warnf(config Config, format string, args ...interface{}) {
	if !config.LogWarnings {
		return
	}
	fmt.Fprintf(getLogger(config), "Warning: "+format+"\n", args...)
}

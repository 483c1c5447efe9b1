package overlay

import (
	"io"
)

// Config holds user options for rendering a document overlay
type Config struct {
	Debug       bool      // Show word text in red instead of hiding it
	Force       bool      // Write the overlay even if the PDF already has one
	LayerName   string    // Base name of the layers (page number will be appended)
	PageWidth   float64   // Page width in points
	PageHeight  float64   // Page height in points
	LogWarnings bool      // Whether to print warnings
	Logger      io.Writer // Custom logger for warnings (nil = stdout)
	Font        FontConfig
	Hit         Color // Outline color of words inside a region
	Region      Color // Outline color of the regions themselves
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Debug:       false,
		Force:       false,
		LayerName:   "hOCR Words", // Will be formatted as "hOCR Words (Page X)" in the final PDF
		PageWidth:   A4Width,
		PageHeight:  A4Height,
		LogWarnings: true,
		Logger:      nil, // stdout
		Font:        DefaultFont,
		Hit:         Color{R: 255},
		Region:      Color{B: 255},
	}
}

// A4 page size in points
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Color is an RGB stroke color
type Color struct {
	R, G, B int
}

// FontConfig contains font settings for word rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which is tried and tested for text layers
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

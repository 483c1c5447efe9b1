package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gardar/hocrsearch/pkg/hocr"
	"github.com/gardar/hocrsearch/pkg/overlay"
	"github.com/gardar/hocrsearch/pkg/search"
)

// transformAction converts an hOCR file to the JSON document model
func transformAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	inPath := firstNonEmpty(c.String("in"), cfg.Input)
	if inPath == "" {
		return cli.Exit("Error: -in flag or config input is required", 1)
	}
	doc, err := readHOCR(inPath)
	if err != nil {
		return err
	}

	out, err := hocr.ToJSON(doc)
	if err != nil {
		return fmt.Errorf("failed to convert document to JSON: %w", err)
	}

	outPath := firstNonEmpty(c.String("out"), cfg.Output)
	if outPath == "" {
		fmt.Fprintln(c.App.Writer, out)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	log.Printf("Transformed %d pages, %d words", len(doc.Pages), hocr.WordCount(doc))
	fmt.Fprintln(c.App.Writer, "Document JSON saved to:", outPath)
	return nil
}

// queryAction prints the words found in each --rect region as JSON.
// The output always holds one list of matches per region, in flag order.
func queryAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	doc, err := loadDocument(c, cfg)
	if err != nil {
		return err
	}
	rects, err := parseRects(c.StringSlice("rect"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	workers := c.Int("workers")
	if !c.IsSet("workers") && cfg.Workers > 0 {
		workers = cfg.Workers
	}

	result, err := search.QueryAll(c.Context, doc, rects, workers)
	if errors.Is(err, search.ErrRegionOutOfBounds) {
		return cli.Exit(fmt.Sprintf("Invalid query region: %v", err), 2)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matches: %w", err)
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

// textAction prints the plain text of a document
func textAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	doc, err := loadDocument(c, cfg)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, hocr.ExtractText(doc))
	return nil
}

// renderAction writes a PDF outlining the words found in each --rect region
func renderAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	outPath := firstNonEmpty(c.String("out"), cfg.Output)
	if outPath == "" {
		return cli.Exit("Error: -out flag or config output is required", 1)
	}
	if _, err := os.Stat(outPath); err == nil && !c.Bool("overwrite") {
		return cli.Exit(fmt.Sprintf("Output file %s already exists. Use -overwrite to overwrite.", outPath), 1)
	}

	doc, err := loadDocument(c, cfg)
	if err != nil {
		return err
	}
	rects, err := parseRects(c.StringSlice("rect"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	ocfg := overlayFromConfig(cfg)
	if c.IsSet("debug") {
		ocfg.Debug = c.Bool("debug")
	}
	ocfg.Force = c.Bool("force")

	var pdfBytes []byte
	if pdfPath := c.String("pdf"); pdfPath != "" {
		input, err := os.ReadFile(pdfPath)
		if err != nil {
			return fmt.Errorf("failed to read input PDF: %w", err)
		}
		pdfBytes, err = overlay.Apply(input, doc, rects, ocfg)
		if err != nil {
			return fmt.Errorf("error applying overlay to existing PDF: %w", err)
		}
	} else {
		pdfBytes, err = overlay.Render(doc, rects, ocfg)
		if err != nil {
			return fmt.Errorf("error rendering PDF: %w", err)
		}
	}

	if err := os.WriteFile(outPath, pdfBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "Overlay PDF created:", outPath)
	return nil
}

// generateAction writes a document as hOCR markup
func generateAction(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	doc, err := loadDocument(c, cfg)
	if err != nil {
		return err
	}
	markup, err := hocr.GenerateHOCRDocument(doc, c.Float64("width"), c.Float64("height"))
	if err != nil {
		return fmt.Errorf("failed to generate hOCR: %w", err)
	}

	outPath := c.String("out")
	if outPath == "" {
		fmt.Fprint(c.App.Writer, markup)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write hOCR output: %w", err)
	}
	fmt.Fprintln(c.App.Writer, "hOCR saved to:", outPath)
	return nil
}

// loadDocument reads the model from --json, or transforms --in
func loadDocument(c *cli.Context, cfg *yamlConfig) (hocr.Document, error) {
	if jsonPath := c.String("json"); jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return hocr.Document{}, fmt.Errorf("failed to read JSON file: %w", err)
		}
		return hocr.FromJSON(data)
	}

	inPath := firstNonEmpty(c.String("in"), cfg.Input)
	if inPath == "" {
		return hocr.Document{}, cli.Exit("Error: Either -json or -in flag must be provided", 1)
	}
	return readHOCR(inPath)
}

func readHOCR(path string) (hocr.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return hocr.Document{}, fmt.Errorf("failed to read HOCR file: %w", err)
	}
	doc, err := hocr.Parse(data)
	if err != nil {
		return hocr.Document{}, fmt.Errorf("failed to parse HOCR file %s: %w", path, err)
	}
	return doc, nil
}

// parseRects reads regions given as "x0,y0,x1,y1". The values of all flags
// are read as one list of numbers, four per region, so it does not matter
// whether the flag parser already split them on commas. Corners may come in
// any order.
func parseRects(values []string) ([]hocr.BBox, error) {
	fields := strings.FieldsFunc(strings.Join(values, ","), func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one -rect is required")
	}
	if len(fields)%4 != 0 {
		return nil, fmt.Errorf("a region needs 4 numbers, got %d values", len(fields))
	}

	rects := make([]hocr.BBox, 0, len(fields)/4)
	for i := 0; i < len(fields); i += 4 {
		var rect hocr.BBox
		for j := range rect {
			v, err := strconv.ParseFloat(fields[i+j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid region value %q", fields[i+j])
			}
			rect[j] = v
		}
		rects = append(rects, search.NormalizeRect(rect))
	}
	return rects, nil
}

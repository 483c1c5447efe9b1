// hocrsearch is a command-line tool for turning hOCR documents into a page-normalized
// JSON model and finding the words inside rectangular regions of a page.
//
// Coordinates in the model are fractions of the page size, so a region is given as
// four numbers between 0 and 1: "x0,y0,x1,y1". Corners may be given in any order.
//
// Configuration:
//
// An optional YAML configuration file supplies defaults for the flags:
//
//	input: "scan.hocr"
//	output: "scan.json"
//	workers: 4
//	overlay:
//	  page_width: 595.28
//	  page_height: 841.89
//	  layer_name: "hOCR Words"
//	  debug: false
//
// Usage:
//
//	hocrsearch [-config config.yml] <command> [options]
//
// Commands:
//
//	transform  Convert an hOCR file to the JSON document model
//	query      Print the words overlapping one or more regions
//	text       Print the plain text of a document
//	render     Write a PDF outlining the words found in the regions
//	generate   Write a document back out as hOCR at a given pixel size
//
// query prints a JSON array holding one array of matches per -rect, in the
// order the regions were given, even when there is a single region:
//
//	[[{"bbox": [0.1, 0.1, 0.4, 0.2], "text": "hello"}]]
//
// Example:
//
//	hocrsearch transform -in scan.hocr -out scan.json
//	hocrsearch query -json scan.json -rect 0.1,0.1,0.5,0.3
//	hocrsearch query -in scan.hocr -rect 0,0,0.5,0.5 -rect 0.5,0.5,1,1 -workers 2
//	hocrsearch render -in scan.hocr -pdf scan.pdf -rect 0.1,0.1,0.5,0.3 -out marked.pdf
//	hocrsearch generate -json scan.json -width 2480 -height 3508 -out scan.hocr
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	documentFlags := []cli.Flag{
		&cli.StringFlag{Name: "in", Usage: "Path to the input hOCR file"},
		&cli.StringFlag{Name: "json", Usage: "Path to a document JSON file produced by transform"},
	}
	rectFlag := &cli.StringSliceFlag{
		Name:  "rect",
		Usage: "Query region as x0,y0,x1,y1 in page fractions (repeatable)",
	}

	return &cli.App{
		Name:  "hocrsearch",
		Usage: "Transform hOCR documents and search words by region",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to the YAML configuration file"},
		},
		Commands: []*cli.Command{
			{
				Name:  "transform",
				Usage: "Convert an hOCR file to the JSON document model",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "Path to the input hOCR file"},
					&cli.StringFlag{Name: "out", Usage: "Path to save the JSON output (stdout if empty)"},
				},
				Action: transformAction,
			},
			{
				Name:  "query",
				Usage: "Print the words overlapping one or more regions",
				Flags: append(append([]cli.Flag{}, documentFlags...),
					rectFlag,
					&cli.IntFlag{Name: "workers", Usage: "Concurrent queries when several regions are given (0 uses all CPUs)"},
				),
				Action: queryAction,
			},
			{
				Name:   "text",
				Usage:  "Print the plain text of a document",
				Flags:  documentFlags,
				Action: textAction,
			},
			{
				Name:  "render",
				Usage: "Write a PDF outlining the words found in the regions",
				Flags: append(append([]cli.Flag{}, documentFlags...),
					rectFlag,
					&cli.StringFlag{Name: "out", Usage: "Path to save the output PDF"},
					&cli.StringFlag{Name: "pdf", Usage: "Existing PDF to draw the layers over"},
					&cli.BoolFlag{Name: "force", Usage: "Add layers even if the PDF already has an overlay"},
					&cli.BoolFlag{Name: "debug", Usage: "Make the word layer visible"},
					&cli.BoolFlag{Name: "overwrite", Usage: "Overwrite the output file if it exists"},
				),
				Action: renderAction,
			},
			{
				Name:  "generate",
				Usage: "Write a document back out as hOCR at a given pixel size",
				Flags: append(append([]cli.Flag{}, documentFlags...),
					&cli.Float64Flag{Name: "width", Usage: "Page width in pixels", Required: true},
					&cli.Float64Flag{Name: "height", Usage: "Page height in pixels", Required: true},
					&cli.StringFlag{Name: "out", Usage: "Path to save the hOCR output (stdout if empty)"},
				),
				Action: generateAction,
			},
		},
	}
}

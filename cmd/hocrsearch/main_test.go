package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/gardar/hocrsearch/pkg/hocr"
	"github.com/gardar/hocrsearch/pkg/search"
)

const testHOCR = `<html><body>
<div class='ocr_page' id='page_1' title='bbox 0 0 1000 2000'>
 <div class='ocr_carea' title='bbox 100 200 900 400'>
  <p class='ocr_par' title='bbox 100 200 900 400'>
   <span class='ocr_line' title='bbox 100 200 900 400; baseline 0 -5'>
    <span class='ocrx_word' title='bbox 100 200 400 400; x_wconf 90'>hello</span>
    <span class='ocrx_word' title='bbox 600 200 900 400; x_wconf 80'>world</span>
   </span>
  </p>
 </div>
</div>
</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// runApp runs the CLI without letting exit errors terminate the test binary
func runApp(args ...string) error {
	_, err := runAppOutput(args...)
	return err
}

// runAppOutput runs the CLI and returns what the command printed
func runAppOutput(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"hocrsearch"}, args...))
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
input: scan.hocr
workers: 3
overlay:
  page_width: 612
  layer_name: Words
  debug: true
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Input != "scan.hocr" || cfg.Workers != 3 {
		t.Errorf("loadConfig() = %+v", cfg)
	}

	ocfg := overlayFromConfig(cfg)
	if ocfg.PageWidth != 612 || ocfg.LayerName != "Words" || !ocfg.Debug {
		t.Errorf("overlayFromConfig() = %+v", ocfg)
	}
	if ocfg.PageHeight == 0 {
		t.Error("overlayFromConfig() dropped the default page height")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if cfg, err := loadConfig(""); err != nil || cfg == nil {
		t.Errorf("loadConfig(\"\") = %v, %v, want empty config", cfg, err)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("loadConfig() on a missing file returned no error")
	}
	bad := writeFile(t, t.TempDir(), "bad.yml", "workers: [1, 2")
	if _, err := loadConfig(bad); err == nil {
		t.Error("loadConfig() on invalid YAML returned no error")
	}
}

func TestParseRects(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []hocr.BBox
		wantErr bool
	}{
		{"single", []string{"0.1,0.2,0.3,0.4"}, []hocr.BBox{{0.1, 0.2, 0.3, 0.4}}, false},
		{"split by flag parser", []string{"0", "0", "0.5", "0.5"}, []hocr.BBox{{0, 0, 0.5, 0.5}}, false},
		{"two regions", []string{"0,0,0.5,0.5", "0.5,0.5,1,1"}, []hocr.BBox{{0, 0, 0.5, 0.5}, {0.5, 0.5, 1, 1}}, false},
		{"swapped corners", []string{"0.9,0.8,0.1,0.2"}, []hocr.BBox{{0.1, 0.2, 0.9, 0.8}}, false},
		{"spaces", []string{"0.1, 0.2, 0.3, 0.4"}, []hocr.BBox{{0.1, 0.2, 0.3, 0.4}}, false},
		{"missing", nil, nil, true},
		{"short", []string{"0.1,0.2,0.3"}, nil, true},
		{"not a number", []string{"a,0,1,1"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRects(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseRects() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseRects() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rect %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTransformCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "scan.hocr", testHOCR)
	out := filepath.Join(dir, "scan.json")

	if err := runApp("transform", "-in", in, "-out", out); err != nil {
		t.Fatalf("transform error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	doc, err := hocr.FromJSON(data)
	if err != nil {
		t.Fatalf("output is not a document: %v", err)
	}
	if got := hocr.WordCount(doc); got != 2 {
		t.Errorf("WordCount() = %d, want 2", got)
	}
	word := doc.Pages[0].Areas[0].Paragraphs[0].Lines[0].Words[0]
	if want := (hocr.BBox{0.1, 0.1, 0.4, 0.2}); word.Properties.BBox != want {
		t.Errorf("word bbox = %v, want %v", word.Properties.BBox, want)
	}
}

func TestTransformCommandUsesConfig(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "scan.hocr", testHOCR)
	out := filepath.Join(dir, "scan.json")
	config := writeFile(t, dir, "config.yml", "input: "+in+"\noutput: "+out+"\n")

	if err := runApp("-config", config, "transform"); err != nil {
		t.Fatalf("transform error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("config output not written: %v", err)
	}
}

func TestTransformCommandErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.hocr", `<div class='ocr_page' title='bbox 0 0 0 100'></div>`)

	if err := runApp("transform"); err == nil {
		t.Error("transform without input returned no error")
	}
	if err := runApp("transform", "-in", bad); err == nil || !strings.Contains(err.Error(), "bad.hocr") {
		t.Errorf("transform error = %v, want error naming the file", err)
	}
}

func TestQueryCommandRejectsRegion(t *testing.T) {
	in := writeFile(t, t.TempDir(), "scan.hocr", testHOCR)

	err := runApp("query", "-in", in, "-rect", "0,0,1.5,1")
	exitErr, ok := err.(cli.ExitCoder)
	if !ok {
		t.Fatalf("query error = %v, want exit error", err)
	}
	if exitErr.ExitCode() != 2 {
		t.Errorf("exit code = %d, want 2", exitErr.ExitCode())
	}
}

func TestQueryCommand(t *testing.T) {
	in := writeFile(t, t.TempDir(), "scan.hocr", testHOCR)

	tests := []struct {
		name string
		args []string
		want [][]string
	}{
		{"single region", []string{"-rect", "0,0,0.5,0.5"}, [][]string{{"hello"}}},
		{"two regions", []string{"-rect", "0,0,0.5,0.5", "-rect", "0.5,0,1,1", "-workers", "2"}, [][]string{{"hello"}, {"world"}}},
		{"whole line", []string{"-rect", "0,0,1,1"}, [][]string{{"hello", "world"}}},
		{"empty region", []string{"-rect", "0,0.5,1,1"}, [][]string{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runAppOutput(append([]string{"query", "-in", in}, tt.args...)...)
			if err != nil {
				t.Fatalf("query error: %v", err)
			}

			var got [][]search.Match
			if err := json.Unmarshal([]byte(out), &got); err != nil {
				t.Fatalf("query output is not a list per region: %v\n%s", err, out)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d result lists, want %d:\n%s", len(got), len(tt.want), out)
			}
			for i, matches := range got {
				if len(matches) != len(tt.want[i]) {
					t.Errorf("region %d matches = %v, want %v", i, matches, tt.want[i])
					continue
				}
				for j, m := range matches {
					if m.Text != tt.want[i][j] {
						t.Errorf("region %d match %d = %q, want %q", i, j, m.Text, tt.want[i][j])
					}
				}
			}
		})
	}

	if err := runApp("query", "-in", in); err == nil {
		t.Error("query without -rect returned no error")
	}
}

func TestQueryCommandPrintsText(t *testing.T) {
	in := writeFile(t, t.TempDir(), "scan.hocr", testHOCR)

	out, err := runAppOutput("query", "-in", in, "-rect", "0,0,0.5,0.5")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if !strings.Contains(out, `"hello"`) || strings.Contains(out, `"world"`) {
		t.Errorf("query output = %s, want only hello", out)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "scan.hocr", testHOCR)
	out := filepath.Join(dir, "marked.pdf")

	if err := runApp("render", "-in", in, "-rect", "0,0,0.5,0.5", "-out", out); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("render output is not a PDF")
	}

	if err := runApp("render", "-in", in, "-rect", "0,0,0.5,0.5", "-out", out); err == nil {
		t.Error("render over an existing file without -overwrite returned no error")
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "scan.hocr", testHOCR)
	out := filepath.Join(dir, "again.hocr")

	if err := runApp("generate", "-in", in, "-width", "1000", "-height", "2000", "-out", out); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	doc, err := hocr.Parse(data)
	if err != nil {
		t.Fatalf("generated hOCR does not parse: %v", err)
	}
	if got := hocr.ExtractText(doc); got != "hello world\n" {
		t.Errorf("ExtractText() = %q, want %q", got, "hello world\n")
	}

	if err := runApp("generate", "-in", in, "-width", "0", "-height", "2000"); err == nil {
		t.Error("generate with zero width returned no error")
	}
}

func TestTextCommand(t *testing.T) {
	in := writeFile(t, t.TempDir(), "scan.hocr", testHOCR)

	out, err := runAppOutput("text", "-in", in)
	if err != nil {
		t.Errorf("text error: %v", err)
	}
	if out != "hello world\n" {
		t.Errorf("text output = %q, want %q", out, "hello world\n")
	}
	if err := runApp("text", "-json", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("text with a missing JSON file returned no error")
	}
}

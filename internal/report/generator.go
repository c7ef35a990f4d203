package report

import (
	"fmt"
	"io"
	"log"
	"os"

	"ping-tool/internal/models"
)

// Options selects which report outputs to produce. Empty paths are
// skipped.
type Options struct {
	TextPath     string
	MarkdownPath string
	PDFPath      string
	ChartsDir    string
}

// Generator renders analysis summaries into the configured formats.
type Generator struct {
	opts Options
}

// NewGenerator creates a report generator.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate produces every requested output. A failing format is logged
// and skipped; the worst outcome of a run is a missing output, never a
// crash.
func (g *Generator) Generate(summary *models.Summary) {
	if g.opts.TextPath != "" {
		if err := g.writeFile(g.opts.TextPath, summary, WriteText); err != nil {
			log.Printf("Failed to generate text report: %v", err)
		} else {
			log.Printf("Text report saved to %s", g.opts.TextPath)
		}
	}

	if g.opts.MarkdownPath != "" {
		if err := g.writeFile(g.opts.MarkdownPath, summary, WriteMarkdown); err != nil {
			log.Printf("Failed to generate markdown report: %v", err)
		} else {
			log.Printf("Markdown report saved to %s", g.opts.MarkdownPath)
		}
	}

	if g.opts.PDFPath != "" {
		if err := WritePDF(g.opts.PDFPath, summary); err != nil {
			log.Printf("Failed to generate PDF report: %v", err)
		} else {
			log.Printf("PDF report saved to %s", g.opts.PDFPath)
		}
	}

	if g.opts.ChartsDir != "" {
		if err := WriteCharts(g.opts.ChartsDir, summary); err != nil {
			log.Printf("Failed to generate charts: %v", err)
		} else {
			log.Printf("Charts saved to %s", g.opts.ChartsDir)
		}
	}
}

func (g *Generator) writeFile(path string, summary *models.Summary, write func(io.Writer, *models.Summary) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return write(file, summary)
}

// Package pdf turns exported note markdown into PDF files.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Options control the page layout. The zero value is a light A4 portrait page.
type Options struct {
	Landscape bool
	PaperSize string
	Dark      bool
}

func (o Options) renderer(pdfPath string) *mdtopdf.PdfRenderer {
	orientation := "P"
	if o.Landscape {
		orientation = "L"
	}
	paperSize := o.PaperSize
	if paperSize == "" {
		paperSize = "A4"
	}
	theme := mdtopdf.LIGHT
	if o.Dark {
		theme = mdtopdf.DARK
	}
	return mdtopdf.NewPdfRenderer(orientation, paperSize, pdfPath, "", nil, theme)
}

// ConvertMarkdownToPDF writes the PDF next to the markdown file and returns
// its absolute path.
func ConvertMarkdownToPDF(markdownPath string, opts Options) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	if err := opts.renderer(pdfPath).Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

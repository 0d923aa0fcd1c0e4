package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/livedreligion/wheresreligion/internal/assets"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/pdf"
)

// ErrPDFNeedsMarkdown is returned when a PDF is requested for a non-markdown export.
var ErrPDFNeedsMarkdown = errors.New("pdf output needs the markdown format")

type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportYAML     ExportFormat = "yaml"
)

// ExportOptions say where and how notes are written. Name is the file name
// without extension.
type ExportOptions struct {
	Directory    string
	Name         string
	Format       ExportFormat
	TemplatePath string
	PDF          bool
	PDFOptions   pdf.Options
}

// ExportNotes writes notes to a file under opts.Directory and returns the paths
// it wrote. Creator names are resolved through namer for markdown; namer may be nil.
func ExportNotes(ctx context.Context, notes []note.Note, namer CreatorNamer, opts ExportOptions) ([]string, error) {
	if opts.PDF && opts.Format == ExportYAML {
		return nil, ErrPDFNeedsMarkdown
	}
	if err := os.MkdirAll(opts.Directory, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%s) > %w", opts.Directory, err)
	}

	switch opts.Format {
	case ExportYAML:
		path := filepath.Join(opts.Directory, opts.Name+".yml")
		if err := writeYAML(path, notes); err != nil {
			return nil, fmt.Errorf("writeYAML(%s) > %w", path, err)
		}
		return []string{path}, nil
	case ExportMarkdown, "":
	default:
		return nil, fmt.Errorf("unknown export format %q", opts.Format)
	}

	names := make(map[string]string)
	if namer != nil {
		for _, n := range notes {
			lookupCreatorName(ctx, namer, names, n.Creator)
		}
	}

	path := filepath.Join(opts.Directory, opts.Name+".md")
	if err := writeMarkdown(path, opts.TemplatePath, assets.NewNotesTemplate(notes, names)); err != nil {
		return nil, fmt.Errorf("writeMarkdown(%s) > %w", path, err)
	}
	paths := []string{path}

	if opts.PDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(path, opts.PDFOptions)
		if err != nil {
			return paths, fmt.Errorf("pdf.ConvertMarkdownToPDF(%s) > %w", path, err)
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}

func writeMarkdown(path, templatePath string, data assets.NotesTemplate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := assets.WriteNotes(f, templatePath, data); err != nil {
		return err
	}
	return f.Close()
}

func writeYAML(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// Package assets renders notes to markdown with a template that can be
// replaced from the filesystem.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/livedreligion/wheresreligion/internal/editor"
	"github.com/livedreligion/wheresreligion/internal/note"
)

const fallbackTemplateName = "notes.md.go.tmpl"

//go:embed templates/notes.md.go.tmpl
var fallbackNotesTemplate string

// NotesTemplate is the data the notes template is executed with.
type NotesTemplate struct {
	Notes []NoteEntry
}

// NoteEntry is a note prepared for the template: the body is split into
// plain text paragraphs and media is grouped by kind.
type NoteEntry struct {
	Title      string
	Date       string
	Location   string
	Tags       []string
	Creator    string
	Paragraphs []string
	Images     []string
	Videos     []string
	Audio      []note.Audio
}

// NewNotesTemplate prepares notes for rendering. creatorNames maps creator
// ids to display names; unknown creators are left out.
func NewNotesTemplate(notes []note.Note, creatorNames map[string]string) NotesTemplate {
	entries := make([]NoteEntry, 0, len(notes))
	for _, n := range notes {
		entry := NoteEntry{
			Title:      n.Title,
			Date:       note.FormatCardTime(n.Time),
			Tags:       n.Tags,
			Creator:    creatorNames[n.Creator],
			Paragraphs: editor.Paragraphs(n.Text),
			Audio:      n.Audio,
		}
		if entry.Title == "" {
			entry.Title = "Untitled"
		}
		if p, ok := n.Location(); ok {
			entry.Location = fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
		}
		for _, m := range n.Media {
			if m.Type == note.MediaKindImage {
				entry.Images = append(entry.Images, m.URI)
			} else {
				entry.Videos = append(entry.Videos, m.URI)
			}
		}
		entries = append(entries, entry)
	}
	return NotesTemplate{Notes: entries}
}

func ParseNotesTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackNotesTemplate)
}

// WriteNotes renders data with the template at templatePath, or with the
// embedded one when templatePath is empty or unusable.
func WriteNotes(output io.Writer, templatePath string, data NotesTemplate) error {
	tmpl, err := ParseNotesTemplate(templatePath)
	if err != nil {
		return fmt.Errorf("ParseNotesTemplate() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(funcMap).
		Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}

// Package testutil provides shared test helpers for config files and note fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/livedreligion/wheresreligion/internal/note"
)

// SetupTestConfig creates a config file whose output directory lives under
// tmpDir. sections are extra top-level YAML blocks appended as is; they must
// not repeat the outputs key. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, sections ...string) string {
	t.Helper()

	outputDir := filepath.Join(tmpDir, "outputs", "notes")
	require.NoError(t, os.MkdirAll(outputDir, 0755))

	configContent := fmt.Sprintf("outputs:\n  note_directory: %s\n", outputDir)
	for _, section := range sections {
		configContent += strings.TrimRight(section, "\n") + "\n"
	}

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NoteOption configures optional fields when creating a note fixture.
type NoteOption func(*note.Note)

func WithTitle(title string) NoteOption {
	return func(n *note.Note) {
		n.Title = title
	}
}

// WithLocation sets the coordinates the way the editor stores them.
func WithLocation(lat, lng string) NoteOption {
	return func(n *note.Note) {
		n.Latitude = lat
		n.Longitude = lng
	}
}

func WithTags(tags ...string) NoteOption {
	return func(n *note.Note) {
		n.Tags = tags
	}
}

func WithCreator(creator string) NoteOption {
	return func(n *note.Note) {
		n.Creator = creator
	}
}

func WithPublished(published bool) NoteOption {
	return func(n *note.Note) {
		n.Published = published
	}
}

// NewNote creates a saved note with id. By default it sits in St. Louis,
// has empty collections and was written on 2024-03-30 at 20:00 UTC.
func NewNote(id string, opts ...NoteOption) note.Note {
	n := note.Note{
		ID:        id,
		Title:     "Note " + id,
		Time:      time.Date(2024, 3, 30, 20, 0, 0, 0, time.UTC),
		Latitude:  "38.637334",
		Longitude: "-90.286021",
		Tags:      []string{},
		Media:     []note.Media{},
		Audio:     []note.Audio{},
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

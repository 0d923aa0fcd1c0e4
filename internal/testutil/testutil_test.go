package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livedreligion/wheresreligion/internal/note"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfgPath := SetupTestConfig(t, tmpDir, "server:\n  port: 9090\n", "admin:\n  passkey: secret")

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	outputDir := filepath.Join(tmpDir, "outputs", "notes")
	assert.Equal(t, "outputs:\n  note_directory: "+outputDir+"\nserver:\n  port: 9090\nadmin:\n  passkey: secret\n", string(content))
	assert.DirExists(t, outputDir)
}

func TestNewNote(t *testing.T) {
	tests := []struct {
		name string
		opts []NoteOption
		want note.Note
	}{
		{
			name: "defaults",
			want: note.Note{
				ID:        "n1",
				Title:     "Note n1",
				Time:      time.Date(2024, 3, 30, 20, 0, 0, 0, time.UTC),
				Latitude:  "38.637334",
				Longitude: "-90.286021",
				Tags:      []string{},
				Media:     []note.Media{},
				Audio:     []note.Audio{},
			},
		},
		{
			name: "options",
			opts: []NoteOption{
				WithTitle("Vigil"),
				WithLocation("1", "2"),
				WithTags("easter"),
				WithCreator("agent-1"),
				WithPublished(true),
			},
			want: note.Note{
				ID:        "n1",
				Title:     "Vigil",
				Time:      time.Date(2024, 3, 30, 20, 0, 0, 0, time.UTC),
				Latitude:  "1",
				Longitude: "2",
				Tags:      []string{"easter"},
				Media:     []note.Media{},
				Audio:     []note.Audio{},
				Published: true,
				Creator:   "agent-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewNote("n1", tt.opts...))
		})
	}
}

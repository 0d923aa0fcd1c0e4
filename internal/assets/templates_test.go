package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livedreligion/wheresreligion/internal/note"
)

func vigil() note.Note {
	return note.Note{
		ID:        "https://store.example/v1/id/note-1",
		Title:     "Easter vigil",
		Text:      "<p>Candles at the door</p>",
		Time:      time.Date(2024, 3, 30, 20, 0, 0, 0, time.UTC),
		Latitude:  "38.6",
		Longitude: "-90.2",
		Tags:      []string{"easter", "catholic"},
		Media:     []note.Media{{UUID: "m1", URI: "https://s3.example/media-1.jpg", Type: note.MediaKindImage}},
		Audio:     []note.Audio{{UUID: "a1", URI: "https://s3.example/media-2.mp3", Name: "choir"}},
		Creator:   "https://store.example/v1/id/agent-1",
	}
}

func TestNewNotesTemplate(t *testing.T) {
	video := note.Note{
		Latitude: "x",
		Text:     "<p>a</p><p>b</p>",
		Media:    []note.Media{{URI: "https://s3.example/media-3.mp4", Type: note.MediaKindVideo}},
		Creator:  "https://store.example/v1/id/agent-2",
	}

	got := NewNotesTemplate([]note.Note{vigil(), video}, map[string]string{
		"https://store.example/v1/id/agent-1": "Ada",
	})

	require.Len(t, got.Notes, 2)
	assert.Equal(t, NoteEntry{
		Title:      "Easter vigil",
		Date:       "Sat Mar 30 2024 8:00 PM",
		Location:   "38.600000, -90.200000",
		Tags:       []string{"easter", "catholic"},
		Creator:    "Ada",
		Paragraphs: []string{"Candles at the door"},
		Images:     []string{"https://s3.example/media-1.jpg"},
		Audio:      []note.Audio{{UUID: "a1", URI: "https://s3.example/media-2.mp3", Name: "choir"}},
	}, got.Notes[0])
	assert.Equal(t, NoteEntry{
		Title:      "Untitled",
		Date:       "Pick a date",
		Paragraphs: []string{"a", "b"},
		Videos:     []string{"https://s3.example/media-3.mp4"},
	}, got.Notes[1])
}

func TestWriteNotes(t *testing.T) {
	tests := []struct {
		name         string
		templatePath func(t *testing.T) string
		notes        []note.Note
		want         string
	}{
		{
			name:         "embedded template",
			templatePath: func(t *testing.T) string { return "" },
			notes:        []note.Note{vigil()},
			want: `# Easter vigil

- Date: Sat Mar 30 2024 8:00 PM
- Location: 38.600000, -90.200000
- Tags: easter, catholic
- Author: Ada

Candles at the door

![](https://s3.example/media-1.jpg)

- Audio: [choir](https://s3.example/media-2.mp3)
`,
		},
		{
			name:         "embedded template separates notes",
			templatePath: func(t *testing.T) string { return "/non/existent/notes.md.go.tmpl" },
			notes:        []note.Note{{Title: "One"}, {Title: "Two"}},
			want: `# One

- Date: Pick a date

---

# Two

- Date: Pick a date
`,
		},
		{
			name: "filesystem template",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
				content := `{{ range .Notes }}{{ .Title }}: {{ join .Tags "/" }}{{ end }}`
				require.NoError(t, os.WriteFile(templatePath, []byte(content), 0644))
				return templatePath
			},
			notes: []note.Note{vigil()},
			want:  "Easter vigil: easter/catholic",
		},
		{
			name: "broken filesystem template falls back",
			templatePath: func(t *testing.T) string {
				templatePath := filepath.Join(t.TempDir(), "broken.md.go.tmpl")
				require.NoError(t, os.WriteFile(templatePath, []byte(`{{ range .Notes }`), 0644))
				return templatePath
			},
			notes: []note.Note{{Title: "One"}},
			want:  "# One\n\n- Date: Pick a date\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			data := NewNotesTemplate(tt.notes, map[string]string{"https://store.example/v1/id/agent-1": "Ada"})

			err := WriteNotes(&out, tt.templatePath(t), data)

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

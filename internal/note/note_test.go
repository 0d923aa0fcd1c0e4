package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNote_Location(t *testing.T) {
	tests := []struct {
		name      string
		latitude  string
		longitude string
		want      Point
		wantOK    bool
	}{
		{
			name:      "decimal degrees",
			latitude:  "38.6",
			longitude: "-90.2",
			want:      Point{Lat: 38.6, Lng: -90.2},
			wantOK:    true,
		},
		{
			name:      "surrounding spaces are ignored",
			latitude:  " 51.5 ",
			longitude: "-0.1",
			want:      Point{Lat: 51.5, Lng: -0.1},
			wantOK:    true,
		},
		{
			name:      "empty latitude",
			latitude:  "",
			longitude: "-90.2",
		},
		{
			name:      "garbage longitude",
			latitude:  "38.6",
			longitude: "west",
		},
		{
			name:      "NaN is not a location",
			latitude:  "NaN",
			longitude: "1",
		},
		{
			name:      "infinity is not a location",
			latitude:  "1",
			longitude: "+Inf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Note{Latitude: tt.latitude, Longitude: tt.longitude}.Location()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNote_MatchesQuery(t *testing.T) {
	n := Note{Title: "Sunday Mass at the Cathedral", Tags: []string{"Catholic", "St. Louis"}}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "title match ignoring case", query: "mass", want: true},
		{name: "tag match ignoring case", query: "LOUIS", want: true},
		{name: "partial tag match", query: "cath", want: true},
		{name: "no match", query: "mosque", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.MatchesQuery(tt.query))
		})
	}
}

func TestNote_MarkerLabel(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want string
	}{
		{
			name: "first tag wins",
			note: Note{Title: "Evening prayer", Tags: []string{"prayer", "evening"}},
			want: "prayer",
		},
		{
			name: "first title word without tags",
			note: Note{Title: "Evening prayer"},
			want: "Evening",
		},
		{
			name: "long labels are truncated",
			note: Note{Tags: []string{"pilgrimages"}},
			want: "pilgrimage...",
		},
		{
			name: "multibyte labels are truncated by rune",
			note: Note{Title: "ÉglisesÉglises du quartier"},
			want: "ÉglisesÉgl...",
		},
		{
			name: "empty title",
			note: Note{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.note.MarkerLabel())
		})
	}
}

func TestNote_FirstImage(t *testing.T) {
	n := Note{Media: []Media{
		{UUID: "1", URI: "https://example.com/a.mp4", Type: MediaKindVideo},
		{UUID: "2", URI: "https://example.com/b.jpg", Type: MediaKindImage},
	}}
	got, ok := n.FirstImage()
	assert.True(t, ok)
	assert.Equal(t, "2", got.UUID)

	_, ok = Note{}.FirstImage()
	assert.False(t, ok)
}

func TestFormatCardTime(t *testing.T) {
	assert.Equal(t, "Pick a date", FormatCardTime(time.Time{}))
	assert.Equal(t, "Tue Jan 02 2024 3:04 PM", FormatCardTime(time.Date(2024, 1, 2, 15, 4, 0, 0, time.UTC)))
	assert.Equal(t, "Tue Jan 02 2024 12:05 AM", FormatCardTime(time.Date(2024, 1, 2, 0, 5, 0, 0, time.UTC)))
}

func TestKindFromURI(t *testing.T) {
	assert.Equal(t, MediaKindImage, KindFromURI("https://bucket.s3.amazonaws.com/media-1.JPG"))
	assert.Equal(t, MediaKindImage, KindFromURI("https://example.com/a.png?size=large"))
	assert.Equal(t, MediaKindVideo, KindFromURI("https://example.com/media-1.mp4"))
	assert.Equal(t, MediaKindVideo, KindFromURI(""))
}

func TestPrepare(t *testing.T) {
	notes := []Note{
		{ID: "1", Media: []Media{{URI: "https://example.com/a.jpg"}}},
		{ID: "2", Media: []Media{{URI: "https://example.com/b.mov", Type: MediaKindImage}}},
		{ID: "3"},
	}

	got := Prepare(notes)

	assert.Equal(t, []string{"3", "2", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, MediaKindImage, got[2].Media[0].Type)
	assert.Equal(t, MediaKindImage, got[1].Media[0].Type)
	assert.Empty(t, notes[0].Media[0].Type, "input must not be modified")
	assert.Empty(t, Prepare(nil))
}

// Package note provides the note data model shared by the map view, the editor
// and the remote note store client.
package note

import (
	"errors"
	"math"
	"path"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrUnsaved is returned when an operation needs an id assigned by the remote store.
var ErrUnsaved = errors.New("note must be saved first")

// MediaKind tags a media item.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// Media is an image or video attached to a note.
type Media struct {
	UUID string    `json:"uuid" yaml:"uuid"`
	URI  string    `json:"uri" yaml:"uri"`
	Type MediaKind `json:"type" yaml:"type"`
}

// Audio is a recording attached to a note.
type Audio struct {
	UUID     string `json:"uuid" yaml:"uuid"`
	URI      string `json:"uri" yaml:"uri"`
	Name     string `json:"name" yaml:"name"`
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Note is a user-authored record combining rich text, location, time, tags and media.
//
// ID and Creator are empty until the note has been created in the remote store.
// Latitude and Longitude are kept as decimal-degree strings; use Location to
// get them as numbers.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Text      string    `json:"text" yaml:"text"`
	Time      time.Time `json:"time" yaml:"time"`
	Latitude  string    `json:"latitude" yaml:"latitude"`
	Longitude string    `json:"longitude" yaml:"longitude"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Media     []Media   `json:"media" yaml:"media"`
	Audio     []Audio   `json:"audio" yaml:"audio"`
	Published bool      `json:"published" yaml:"published"`
	Creator   string    `json:"creator" yaml:"creator"`
}

// Point is a position in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsSaved reports whether the remote store has assigned an id to the note.
func (n Note) IsSaved() bool {
	return n.ID != ""
}

// Location parses the note coordinates. It returns false when either of them
// is not a finite number, in which case the note cannot be placed on a map.
func (n Note) Location() (Point, bool) {
	lat, ok := parseCoordinate(n.Latitude)
	if !ok {
		return Point{}, false
	}
	lng, ok := parseCoordinate(n.Longitude)
	if !ok {
		return Point{}, false
	}
	return Point{Lat: lat, Lng: lng}, true
}

func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MatchesQuery reports whether the title or any tag contains query, ignoring case.
func (n Note) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	if n.Title != "" && strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

const maxLabelLength = 10

// MarkerLabel returns the first tag, or the first word of the title, shortened
// to fit on a map marker.
func (n Note) MarkerLabel() string {
	label := strings.Split(n.Title, " ")[0]
	if len(n.Tags) > 0 {
		label = n.Tags[0]
	}
	if utf8.RuneCountInString(label) > maxLabelLength {
		return string([]rune(label)[:maxLabelLength]) + "..."
	}
	return label
}

// FirstImage returns the first media item of kind image.
func (n Note) FirstImage() (Media, bool) {
	for _, m := range n.Media {
		if m.Type == MediaKindImage {
			return m, true
		}
	}
	return Media{}, false
}

// FormatCardTime formats t the way note cards display it.
func FormatCardTime(t time.Time) string {
	if t.IsZero() {
		return "Pick a date"
	}
	return t.Format("Mon Jan 02 2006 3:04 PM")
}

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".heic": true, ".bmp": true, ".svg": true,
}

// KindFromURI guesses the media kind from the file extension of uri.
func KindFromURI(uri string) MediaKind {
	if i := strings.IndexAny(uri, "?#"); i >= 0 {
		uri = uri[:i]
	}
	if imageExtensions[strings.ToLower(path.Ext(uri))] {
		return MediaKindImage
	}
	return MediaKindVideo
}

// Prepare normalises a freshly fetched collection: media without a kind get
// one derived from their URI, and the order is reversed so that the most
// recently created notes come first.
func Prepare(notes []Note) []Note {
	prepared := make([]Note, len(notes))
	for i, n := range notes {
		if len(n.Media) > 0 {
			media := make([]Media, len(n.Media))
			for j, m := range n.Media {
				if m.Type == "" {
					m.Type = KindFromURI(m.URI)
				}
				media[j] = m
			}
			n.Media = media
		}
		prepared[len(notes)-1-i] = n
	}
	return prepared
}

// Package editor is the single editor for notes. It loads a note into an
// editable State, serializes the State back into a complete note, and saves or
// deletes it through the remote note store.
package editor

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/livedreligion/wheresreligion/internal/note"
)

var newID = uuid.NewString

// State is the editable form of a note. Body holds rich text markup.
type State struct {
	ID        string
	Title     string
	Body      string
	Time      time.Time
	Latitude  string
	Longitude string
	Tags      []string
	Media     []note.Media
	Audio     []note.Audio
	Published bool
	Creator   string
}

// Load copies every field of n into a new State.
func Load(n note.Note) *State {
	return &State{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Text,
		Time:      n.Time,
		Latitude:  n.Latitude,
		Longitude: n.Longitude,
		Tags:      slices.Clone(n.Tags),
		Media:     slices.Clone(n.Media),
		Audio:     slices.Clone(n.Audio),
		Published: n.Published,
		Creator:   n.Creator,
	}
}

// New returns the State of a note that has not been saved yet.
func New(now time.Time) *State {
	return &State{
		Time:  now,
		Tags:  []string{},
		Media: []note.Media{},
		Audio: []note.Audio{},
	}
}

// Note returns the complete note the state describes. Collections are never nil.
func (s *State) Note() note.Note {
	n := note.Note{
		ID:        s.ID,
		Title:     s.Title,
		Text:      s.Body,
		Time:      s.Time,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Tags:      slices.Clone(s.Tags),
		Media:     slices.Clone(s.Media),
		Audio:     slices.Clone(s.Audio),
		Published: s.Published,
		Creator:   s.Creator,
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Media == nil {
		n.Media = []note.Media{}
	}
	if n.Audio == nil {
		n.Audio = []note.Audio{}
	}
	return n
}

// SetLocation stores p the way the note store keeps coordinates.
func (s *State) SetLocation(p note.Point) {
	s.Latitude = strconv.FormatFloat(p.Lat, 'f', -1, 64)
	s.Longitude = strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// AddTag adds a trimmed tag. Empty and duplicate tags are ignored.
func (s *State) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(s.Tags, tag) {
		return false
	}
	s.Tags = append(s.Tags, tag)
	return true
}

func (s *State) RemoveTag(tag string) bool {
	i := slices.Index(s.Tags, tag)
	if i < 0 {
		return false
	}
	s.Tags = slices.Delete(s.Tags, i, i+1)
	return true
}

// AddMedia attaches an uploaded image or video.
func (s *State) AddMedia(uri string, kind note.MediaKind) note.Media {
	if kind == "" {
		kind = note.KindFromURI(uri)
	}
	m := note.Media{UUID: newID(), URI: uri, Type: kind}
	s.Media = append(s.Media, m)
	return m
}

// AddAudio attaches an uploaded recording. duration is formatted as m:ss.
func (s *State) AddAudio(uri, name string, duration time.Duration) note.Audio {
	a := note.Audio{UUID: newID(), URI: uri, Name: name}
	if duration > 0 {
		a.Duration = formatDuration(duration)
	}
	s.Audio = append(s.Audio, a)
	return a
}

func (s *State) RemoveMedia(id string) bool {
	before := len(s.Media)
	s.Media = slices.DeleteFunc(s.Media, func(m note.Media) bool { return m.UUID == id })
	return len(s.Media) != before
}

func (s *State) RemoveAudio(id string) bool {
	before := len(s.Audio)
	s.Audio = slices.DeleteFunc(s.Audio, func(a note.Audio) bool { return a.UUID == id })
	return len(s.Audio) != before
}

func formatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

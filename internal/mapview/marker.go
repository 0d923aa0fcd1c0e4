package mapview

import "github.com/livedreligion/wheresreligion/internal/note"

// MaxZIndex mirrors the highest z-index the map provider assigns to markers.
const MaxZIndex = 1000000

// Icon is the image drawn for a marker.
type Icon struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var (
	DefaultIcon = Icon{
		URL:    "http://maps.google.com/mapfiles/ms/icons/red-dot.png",
		Width:  40,
		Height: 40,
	}
	HighlightedIcon = Icon{
		URL:    "http://maps.google.com/mapfiles/ms/icons/green-dot.png",
		Width:  48,
		Height: 48,
	}
)

// Marker is the rendered handle of one visible note.
type Marker struct {
	NoteID      string     `json:"note_id"`
	Position    note.Point `json:"position"`
	Label       string     `json:"label"`
	Icon        Icon       `json:"icon"`
	ZIndex      int        `json:"z_index"`
	Highlighted bool       `json:"highlighted"`
}

func newMarker(n note.Note, p note.Point) *Marker {
	m := &Marker{
		NoteID:   n.ID,
		Position: p,
		Label:    n.MarkerLabel(),
	}
	m.setHighlighted(false)
	return m
}

func (m *Marker) setHighlighted(highlighted bool) {
	m.Highlighted = highlighted
	if highlighted {
		m.Icon = HighlightedIcon
		m.ZIndex = MaxZIndex + 1
		return
	}
	m.Icon = DefaultIcon
	m.ZIndex = 0
}

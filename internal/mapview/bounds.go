// Package mapview keeps the markers and the note list of the map page in
// agreement with the viewport, the selected note set and the hover/active
// selection.
package mapview

import "github.com/livedreligion/wheresreligion/internal/note"

// Bounds is the rectangle visible on the map, given by its north-east and
// south-west corners.
type Bounds struct {
	North float64 `json:"north" validate:"gte=-90,lte=90,gtefield=South"`
	South float64 `json:"south" validate:"gte=-90,lte=90"`
	East  float64 `json:"east" validate:"gte=-180,lte=180"`
	West  float64 `json:"west" validate:"gte=-180,lte=180"`
}

// NewBounds builds Bounds from the two corners reported by the map provider.
func NewBounds(northEast, southWest note.Point) Bounds {
	return Bounds{
		North: northEast.Lat,
		East:  northEast.Lng,
		South: southWest.Lat,
		West:  southWest.Lng,
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p note.Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North &&
		p.Lng >= b.West && p.Lng <= b.East
}

// Filter returns the notes located inside bounds, in their original order.
// Notes whose coordinates do not parse are left out. A nil bounds means the
// map is not ready yet, and every note is returned.
func Filter(notes []note.Note, bounds *Bounds) []note.Note {
	if bounds == nil {
		return notes
	}
	visible := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		p, ok := n.Location()
		if !ok {
			continue
		}
		if bounds.Contains(p) {
			visible = append(visible, n)
		}
	}
	return visible
}

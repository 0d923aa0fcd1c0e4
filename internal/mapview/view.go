package mapview

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/livedreligion/wheresreligion/internal/note"
)

// ErrUnknownNote is returned when a note id does not match any visible marker.
var ErrUnknownNote = errors.New("no visible marker for note")

// NoteSet selects which collection the map shows.
type NoteSet string

const (
	// NoteSetGlobal is every published note of every user.
	NoteSetGlobal NoteSet = "global"
	// NoteSetPersonal is the current user's notes, published or not.
	NoteSetPersonal NoteSet = "personal"
)

// Toggled returns the other note set.
func (s NoteSet) Toggled() NoteSet {
	if s == NoteSetPersonal {
		return NoteSetGlobal
	}
	return NoteSetPersonal
}

// ParseNoteSet accepts "global" and "personal".
func ParseNoteSet(s string) (NoteSet, error) {
	switch NoteSet(s) {
	case NoteSetGlobal, NoteSetPersonal:
		return NoteSet(s), nil
	default:
		return "", fmt.Errorf("invalid note set %q, valid values are %q or %q", s, NoteSetGlobal, NoteSetPersonal)
	}
}

// DefaultCenter is where the map opens.
var DefaultCenter = note.Point{Lat: 38.637334, Lng: -90.286021}

// DefaultZoom is the zoom level the map opens at.
const DefaultZoom = 10

// State is a snapshot of the view.
type State struct {
	Set     NoteSet     `json:"set"`
	Notes   []note.Note `json:"notes"`
	Markers []Marker    `json:"markers"`
	Overlay *Popup      `json:"overlay,omitempty"`
	Hovered string      `json:"hovered,omitempty"`
	Active  string      `json:"active,omitempty"`
}

// View derives the visible notes and their markers from the fetched
// collections. Every change recomputes the visible set from scratch.
//
// A View is not safe for concurrent use; it is driven by one event loop.
type View struct {
	renderer Renderer

	global   []note.Note
	personal []note.Note
	set      NoteSet
	bounds   *Bounds

	visible []note.Note
	markers map[string]*Marker
	order   []string

	hoveredID string
	activeID  string
	overlay   *Overlay
}

// NewView returns an empty view showing the global set. A nil renderer
// draws nothing.
func NewView(renderer Renderer) *View {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	return &View{
		renderer: renderer,
		set:      NoteSetGlobal,
		visible:  []note.Note{},
		markers:  map[string]*Marker{},
	}
}

// SetCollections replaces both fetched collections.
func (v *View) SetCollections(global, personal []note.Note) {
	v.global = global
	v.personal = personal
	v.recompute()
}

// SetBounds records a new viewport after a pan or zoom. nil means the map is
// not ready yet.
func (v *View) SetBounds(bounds *Bounds) {
	if bounds != nil {
		b := *bounds
		bounds = &b
	}
	v.bounds = bounds
	v.recompute()
	if v.overlay != nil {
		v.overlay.Draw()
	}
}

func (v *View) Bounds() *Bounds {
	if v.bounds == nil {
		return nil
	}
	b := *v.bounds
	return &b
}

// Toggle switches between the global and the personal note set using the
// collections already fetched.
func (v *View) Toggle() NoteSet {
	v.SetNoteSet(v.set.Toggled())
	return v.set
}

func (v *View) SetNoteSet(set NoteSet) {
	v.set = set
	v.recompute()
}

func (v *View) NoteSet() NoteSet {
	return v.set
}

// Notes returns the collection of the selected note set, before viewport filtering.
func (v *View) Notes() []note.Note {
	if v.set == NoteSetPersonal {
		return v.personal
	}
	return v.global
}

// Visible returns the notes the list shows.
func (v *View) Visible() []note.Note {
	return v.visible
}

// Search shows the notes of the selected set whose title or tags match
// query, regardless of the viewport. A blank query shows the whole set. The
// next viewport or set change replaces the search result.
func (v *View) Search(query string) {
	if strings.TrimSpace(query) == "" {
		v.show(v.Notes())
		return
	}
	matched := make([]note.Note, 0)
	for _, n := range v.Notes() {
		if n.MatchesQuery(query) {
			matched = append(matched, n)
		}
	}
	v.show(matched)
}

func (v *View) recompute() {
	v.show(Filter(v.Notes(), v.bounds))
}

func (v *View) show(notes []note.Note) {
	if notes == nil {
		notes = []note.Note{}
	}
	v.visible = notes
	v.markers = make(map[string]*Marker, len(notes))
	v.order = v.order[:0]
	for _, n := range notes {
		p, ok := n.Location()
		if !ok {
			continue
		}
		if _, exists := v.markers[n.ID]; exists {
			continue
		}
		m := newMarker(n, p)
		m.setHighlighted(v.hoveredID != "" && n.ID == v.hoveredID)
		v.markers[n.ID] = m
		v.order = append(v.order, n.ID)
	}
	if v.activeID != "" {
		if _, ok := v.markers[v.activeID]; !ok {
			v.closeOverlay()
		}
	}
}

// Markers returns copies of the current markers in list order.
func (v *View) Markers() []Marker {
	markers := make([]Marker, 0, len(v.order))
	for _, id := range v.order {
		markers = append(markers, *v.markers[id])
	}
	return markers
}

// Marker returns the marker of the note id.
func (v *View) Marker(id string) (Marker, bool) {
	m, ok := v.markers[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// Hover highlights the marker of id, from either a list entry or the marker
// itself. An empty id removes the highlight.
func (v *View) Hover(id string) {
	if previous, ok := v.markers[v.hoveredID]; ok {
		previous.setHighlighted(false)
	}
	v.hoveredID = id
	if current, ok := v.markers[id]; ok && id != "" {
		current.setHighlighted(true)
	}
}

func (v *View) Hovered() string {
	return v.hoveredID
}

// Activate opens the detail overlay of id at its marker. Any overlay already
// open is closed first.
func (v *View) Activate(id string) error {
	m, ok := v.markers[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNote, id)
	}
	n, ok := v.visibleNote(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNote, id)
	}
	v.closeOverlay()
	v.overlay = NewOverlay(v.renderer, n, m.Position)
	v.overlay.Attach()
	v.activeID = id
	return nil
}

// ClearActive closes the overlay, as a click on the map background or the
// start of a drag does.
func (v *View) ClearActive() {
	v.closeOverlay()
}

func (v *View) closeOverlay() {
	if v.overlay != nil {
		v.overlay.Detach()
	}
	v.overlay = nil
	v.activeID = ""
}

// Active returns the note whose overlay is open.
func (v *View) Active() (note.Note, bool) {
	if v.activeID == "" {
		return note.Note{}, false
	}
	return v.visibleNote(v.activeID)
}

// Overlay returns the open overlay, if any.
func (v *View) Overlay() (Popup, bool) {
	if v.overlay == nil || !v.overlay.Attached() {
		return Popup{}, false
	}
	return v.overlay.Popup(), true
}

func (v *View) visibleNote(id string) (note.Note, bool) {
	for _, n := range v.visible {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

// RandomNoteInBounds picks one locatable note of the selected set inside the
// current viewport. It is used by the introductory tour.
func (v *View) RandomNoteInBounds(r *rand.Rand) (note.Note, bool) {
	if v.bounds == nil {
		return note.Note{}, false
	}
	candidates := Filter(v.Notes(), v.bounds)
	if len(candidates) == 0 {
		return note.Note{}, false
	}
	return candidates[r.IntN(len(candidates))], true
}

// State returns a snapshot of the view.
func (v *View) State() State {
	state := State{
		Set:     v.set,
		Notes:   v.visible,
		Markers: v.Markers(),
		Hovered: v.hoveredID,
		Active:  v.activeID,
	}
	if popup, ok := v.Overlay(); ok {
		state.Overlay = &popup
	}
	return state
}

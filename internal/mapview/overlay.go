package mapview

import "github.com/livedreligion/wheresreligion/internal/note"

// Popup is what a Renderer draws for an open overlay.
type Popup struct {
	NoteID   string     `json:"note_id"`
	Title    string     `json:"title"`
	Position note.Point `json:"position"`
	// Image is the first image of the note, shown as the popup thumbnail.
	Image string `json:"image,omitempty"`
}

// Renderer puts overlays on an actual map. A browser bridge, a server-side
// snapshot or a test fake can all implement it.
type Renderer interface {
	Attach(p Popup)
	Draw(p Popup)
	Detach(p Popup)
}

// Overlay is the detail popup anchored at a note's position.
type Overlay struct {
	renderer Renderer
	popup    Popup
	attached bool
}

func NewOverlay(renderer Renderer, n note.Note, position note.Point) *Overlay {
	popup := Popup{
		NoteID:   n.ID,
		Title:    n.Title,
		Position: position,
	}
	if image, ok := n.FirstImage(); ok {
		popup.Image = image.URI
	}
	return &Overlay{renderer: renderer, popup: popup}
}

// Attach adds the overlay to the map and draws it once.
func (o *Overlay) Attach() {
	if o.attached {
		return
	}
	o.attached = true
	o.renderer.Attach(o.popup)
	o.renderer.Draw(o.popup)
}

// Draw redraws an attached overlay, e.g. after the map moved.
func (o *Overlay) Draw() {
	if !o.attached {
		return
	}
	o.renderer.Draw(o.popup)
}

// Detach removes the overlay. Calling it twice is harmless.
func (o *Overlay) Detach() {
	if !o.attached {
		return
	}
	o.attached = false
	o.renderer.Detach(o.popup)
}

func (o *Overlay) Attached() bool {
	return o.attached
}

func (o *Overlay) Popup() Popup {
	return o.popup
}

// NopRenderer draws nothing.
type NopRenderer struct{}

func (NopRenderer) Attach(Popup) {}
func (NopRenderer) Draw(Popup)   {}
func (NopRenderer) Detach(Popup) {}

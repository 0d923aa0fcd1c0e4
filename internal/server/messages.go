package server

import (
	"github.com/livedreligion/wheresreligion/internal/mapview"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
)

// MapState is the reply of every MapService procedure.
type MapState struct {
	Set           mapview.NoteSet       `json:"set"`
	Notes         []note.Note           `json:"notes"`
	Markers       []mapview.Marker      `json:"markers"`
	Overlay       *mapview.Popup        `json:"overlay,omitempty"`
	Hovered       string                `json:"hovered,omitempty"`
	Active        string                `json:"active,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

func newMapState(state mapview.State, notifications []notify.Notification) *MapState {
	if notifications == nil {
		notifications = []notify.Notification{}
	}
	return &MapState{
		Set:           state.Set,
		Notes:         state.Notes,
		Markers:       state.Markers,
		Overlay:       state.Overlay,
		Hovered:       state.Hovered,
		Active:        state.Active,
		Notifications: notifications,
	}
}

type LoadRequest struct{}

// SetBoundsRequest carries the viewport after a pan or zoom. A null bounds
// means the map is not ready.
type SetBoundsRequest struct {
	Bounds *mapview.Bounds `json:"bounds"`
}

type ToggleRequest struct{}

// HoverRequest highlights a marker. An empty id clears the highlight.
type HoverRequest struct {
	ID string `json:"id"`
}

type ActivateRequest struct {
	ID string `json:"id" validate:"required"`
}

type ClearActiveRequest struct{}

type MapSearchRequest struct {
	Query string `json:"query"`
}

type SaveNoteRequest struct {
	Note  note.Note `json:"note"`
	IsNew bool      `json:"is_new"`
}

type SaveNoteResponse struct {
	Note          note.Note             `json:"note"`
	Notifications []notify.Notification `json:"notifications"`
}

type DeleteNoteRequest struct {
	Note note.Note `json:"note"`
}

type DeleteNoteResponse struct {
	Notifications []notify.Notification `json:"notifications"`
}

type SearchNotesRequest struct {
	Query string `json:"query"`
}

type SearchNotesResponse struct {
	Notes []note.Note `json:"notes"`
}

type CreatorNameRequest struct {
	Creator string `json:"creator" validate:"required,url"`
}

type CreatorNameResponse struct {
	Name string `json:"name"`
}

type TourStatusRequest struct{}

// TourStatusResponse tells whether the user has finished the tour and, when
// not, which note the tour should point at.
type TourStatusResponse struct {
	Completed bool       `json:"completed"`
	Note      *note.Note `json:"note,omitempty"`
}

type CompleteTourRequest struct{}

type CompleteTourResponse struct{}

type GetConfigRequest struct{}

// GetConfigResponse holds the settings the browser needs. Secrets are never
// part of it.
type GetConfigResponse struct {
	MapKey        string     `json:"map_key"`
	PlacesKey     string     `json:"places_key"`
	AuthBaseURL   string     `json:"auth_base_url"`
	IssuerBaseURL string     `json:"issuer_base_url"`
	ClientID      string     `json:"client_id"`
	DefaultCenter note.Point `json:"default_center"`
	DefaultZoom   int        `json:"default_zoom"`
}

package mapview

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livedreligion/wheresreligion/internal/note"
)

var (
	stLouisBounds = Bounds{South: 38, North: 39, West: -91, East: -89}

	globalNotes = []note.Note{
		{ID: "1", Title: "Cathedral Basilica", Latitude: "38.6", Longitude: "-90.2", Tags: []string{"catholic"}},
		{ID: "2", Title: "St Paul's", Latitude: "51.5", Longitude: "-0.1"},
		{ID: "3", Title: "Soulard market prayer", Latitude: "38.61", Longitude: "-90.21"},
		{ID: "4", Title: "Somewhere", Latitude: "not a number", Longitude: "-90.2"},
	}
	personalNotes = []note.Note{
		{ID: "p1", Title: "My draft", Latitude: "38.62", Longitude: "-90.22"},
	}
)

func newLoadedView(t *testing.T) (*View, *fakeRenderer) {
	t.Helper()
	renderer := newFakeRenderer()
	v := NewView(renderer)
	v.SetCollections(globalNotes, personalNotes)
	return v, renderer
}

func markerIDs(markers []Marker) []string {
	result := make([]string, 0, len(markers))
	for _, m := range markers {
		result = append(result, m.NoteID)
	}
	return result
}

func TestView_RecomputesOnEveryTrigger(t *testing.T) {
	v, _ := newLoadedView(t)

	assert.Equal(t, NoteSetGlobal, v.NoteSet())
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(v.Visible()), "no bounds yet")
	assert.Equal(t, []string{"1", "2", "3"}, markerIDs(v.Markers()), "unlocatable notes get no marker")

	v.SetBounds(&stLouisBounds)
	assert.Equal(t, []string{"1", "3"}, ids(v.Visible()))

	v.Toggle()
	assert.Equal(t, NoteSetPersonal, v.NoteSet())
	assert.Equal(t, []string{"p1"}, ids(v.Visible()))

	v.SetCollections(globalNotes, append([]note.Note{{ID: "p2", Latitude: "38.5", Longitude: "-90"}}, personalNotes...))
	assert.Equal(t, []string{"p2", "p1"}, ids(v.Visible()))

	v.SetBounds(nil)
	assert.Equal(t, []string{"p2", "p1"}, ids(v.Visible()))
}

func TestView_ToggleTwiceRestoresTheDisplayedSet(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetBounds(&stLouisBounds)
	before := v.State()

	v.Toggle()
	assert.NotEqual(t, before.Notes, v.Visible())
	v.Toggle()

	assert.Equal(t, before, v.State())
}

func TestView_BoundsAreCopied(t *testing.T) {
	v, _ := newLoadedView(t)
	b := stLouisBounds
	v.SetBounds(&b)
	b.North = 90
	b.West = -180
	b.East = 180

	assert.Equal(t, []string{"1", "3"}, ids(v.Visible()))
	assert.Equal(t, &stLouisBounds, v.Bounds())
}

func TestView_Hover(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetBounds(&stLouisBounds)

	v.Hover("3")

	for _, m := range v.Markers() {
		if m.NoteID == "3" {
			assert.True(t, m.Highlighted)
			assert.Equal(t, HighlightedIcon, m.Icon)
			assert.Equal(t, MaxZIndex+1, m.ZIndex)
			continue
		}
		assert.False(t, m.Highlighted)
		assert.Equal(t, DefaultIcon, m.Icon)
		assert.Zero(t, m.ZIndex)
	}

	v.Hover("1")
	m3, _ := v.Marker("3")
	m1, _ := v.Marker("1")
	assert.False(t, m3.Highlighted)
	assert.True(t, m1.Highlighted)

	v.Hover("")
	for _, m := range v.Markers() {
		assert.False(t, m.Highlighted)
	}
}

func TestView_HoverSurvivesRecompute(t *testing.T) {
	v, _ := newLoadedView(t)
	v.Hover("3")

	v.SetBounds(&stLouisBounds)

	m, ok := v.Marker("3")
	require.True(t, ok)
	assert.True(t, m.Highlighted)
	assert.Equal(t, "3", v.Hovered())
}

func TestView_Activate(t *testing.T) {
	v, renderer := newLoadedView(t)
	v.SetBounds(&stLouisBounds)

	require.NoError(t, v.Activate("1"))
	require.NoError(t, v.Activate("3"))

	popup, ok := v.Overlay()
	require.True(t, ok)
	assert.Equal(t, "3", popup.NoteID)
	assert.Equal(t, note.Point{Lat: 38.61, Lng: -90.21}, popup.Position)
	assert.Len(t, renderer.open, 1, "exactly one overlay is open")
	assert.Contains(t, renderer.open, "3")
	assert.Equal(t, []string{"attach:1", "draw:1", "detach:1", "attach:3", "draw:3"}, renderer.ops())

	active, ok := v.Active()
	require.True(t, ok)
	assert.Equal(t, "Soulard market prayer", active.Title)
}

func TestView_ActivateUnknownNote(t *testing.T) {
	v, renderer := newLoadedView(t)
	v.SetBounds(&stLouisBounds)
	require.NoError(t, v.Activate("1"))

	err := v.Activate("2")
	assert.ErrorIs(t, err, ErrUnknownNote)
	err = v.Activate("4")
	assert.ErrorIs(t, err, ErrUnknownNote)

	popup, ok := v.Overlay()
	require.True(t, ok)
	assert.Equal(t, "1", popup.NoteID, "a failed activation keeps the current overlay")
	assert.Len(t, renderer.open, 1)
}

func TestView_ClearActive(t *testing.T) {
	v, renderer := newLoadedView(t)
	require.NoError(t, v.Activate("1"))

	v.ClearActive()

	_, ok := v.Overlay()
	assert.False(t, ok)
	_, ok = v.Active()
	assert.False(t, ok)
	assert.Empty(t, renderer.open)
	assert.Empty(t, v.State().Active)
}

func TestView_OverlayRedrawnOnViewportChange(t *testing.T) {
	v, renderer := newLoadedView(t)
	require.NoError(t, v.Activate("1"))

	v.SetBounds(&stLouisBounds)

	assert.Equal(t, []string{"attach:1", "draw:1", "draw:1"}, renderer.ops())
}

func TestView_OverlayClosedWhenNoteLeavesTheMap(t *testing.T) {
	v, renderer := newLoadedView(t)
	require.NoError(t, v.Activate("2"))

	v.SetBounds(&stLouisBounds)

	_, ok := v.Overlay()
	assert.False(t, ok)
	assert.Empty(t, renderer.open)
}

func TestView_Search(t *testing.T) {
	v, _ := newLoadedView(t)
	v.SetBounds(&Bounds{South: 50, North: 52, West: -1, East: 1})
	assert.Equal(t, []string{"2"}, ids(v.Visible()))

	v.Search("CATHOLIC")
	assert.Equal(t, []string{"1"}, ids(v.Visible()), "search ignores the viewport")

	v.Search("  ")
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(v.Visible()))

	v.SetBounds(&stLouisBounds)
	assert.Equal(t, []string{"1", "3"}, ids(v.Visible()))
}

func TestView_RandomNoteInBounds(t *testing.T) {
	v, _ := newLoadedView(t)
	r := rand.New(rand.NewPCG(1, 2))

	_, ok := v.RandomNoteInBounds(r)
	assert.False(t, ok, "no bounds yet")

	v.SetBounds(&stLouisBounds)
	for i := 0; i < 20; i++ {
		n, ok := v.RandomNoteInBounds(r)
		require.True(t, ok)
		assert.Contains(t, []string{"1", "3"}, n.ID)
	}

	v.SetBounds(&Bounds{South: 0, North: 1, West: 0, East: 1})
	_, ok = v.RandomNoteInBounds(r)
	assert.False(t, ok)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil)
	v.SetCollections([]note.Note{}, []note.Note{})

	state := v.State()
	assert.Empty(t, state.Notes)
	assert.Empty(t, state.Markers)
	assert.Nil(t, state.Overlay)
	assert.ErrorIs(t, v.Activate("1"), ErrUnknownNote)
}

func TestParseNoteSet(t *testing.T) {
	set, err := ParseNoteSet("personal")
	require.NoError(t, err)
	assert.Equal(t, NoteSetPersonal, set)

	_, err = ParseNoteSet("everyone")
	assert.Error(t, err)
}

package server

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/livedreligion/wheresreligion/internal/mapview"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
)

var (
	stLouis = note.Note{ID: "1", Title: "Cathedral Basilica", Latitude: "38.6", Longitude: "-90.2"}
	london  = note.Note{ID: "2", Title: "St Paul's", Latitude: "51.5", Longitude: "-0.1"}
	soulard = note.Note{ID: "3", Title: "Soulard", Latitude: "38.61", Longitude: "-90.21"}

	stLouisBounds = mapview.Bounds{South: 38, North: 39, West: -91, East: -89}
)

func noteIDs(notes []note.Note) []string {
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

// loadGlobal loads the map of an anonymous visitor. The store returns the
// notes oldest first, so the map shows them in reverse.
func loadGlobal(t *testing.T, s *testServer, notes ...note.Note) *MapState {
	t.Helper()
	s.store.EXPECT().FetchGlobalNotes(gomock.Any()).Return(notes, nil)
	res, err := s.Load(context.Background(), newRequest(&LoadRequest{}, ""))
	require.NoError(t, err)
	return res.Msg
}

func TestServer_Load(t *testing.T) {
	s := newTestServer(t)

	state := loadGlobal(t, s, london, stLouis)

	assert.Equal(t, mapview.NoteSetGlobal, state.Set)
	assert.Equal(t, []string{"1", "2"}, noteIDs(state.Notes))
	assert.Len(t, state.Markers, 2)
	assert.Empty(t, state.Notifications)
	assert.Nil(t, state.Overlay)
}

func TestServer_LoadLoggedIn(t *testing.T) {
	tests := []struct {
		name    string
		passkey string
		setup   func(s *testServer)
	}{
		{
			name: "user sees published notes",
			setup: func(s *testServer) {
				s.store.EXPECT().FetchUserNotes(gomock.Any(), testUser).Return([]note.Note{soulard}, nil)
				s.store.EXPECT().FetchGlobalNotes(gomock.Any()).Return([]note.Note{stLouis}, nil)
			},
		},
		{
			name:    "admin sees every note",
			passkey: testPasskey,
			setup: func(s *testServer) {
				s.store.EXPECT().FetchUserNotes(gomock.Any(), testUser).Return([]note.Note{soulard}, nil)
				s.store.EXPECT().FetchAllNotes(gomock.Any()).Return([]note.Note{stLouis}, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setup(s)

			req := newRequest(&LoadRequest{}, testUser)
			req.Header().Set(headerAdminPasskey, tt.passkey)
			res, err := s.Load(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, []string{"1"}, noteIDs(res.Msg.Notes))

			toggle := newRequest(&ToggleRequest{}, testUser)
			toggle.Header().Set(headerAdminPasskey, tt.passkey)
			toggled, err := s.Toggle(context.Background(), toggle)
			require.NoError(t, err)
			assert.Equal(t, mapview.NoteSetPersonal, toggled.Msg.Set)
			assert.Equal(t, []string{"3"}, noteIDs(toggled.Msg.Notes))
		})
	}
}

func TestServer_LoadFailure(t *testing.T) {
	s := newTestServer(t)
	loadGlobal(t, s, stLouis)
	s.store.EXPECT().FetchGlobalNotes(gomock.Any()).Return(nil, errors.New("connection refused"))

	res, err := s.Load(context.Background(), newRequest(&LoadRequest{}, ""))

	require.NoError(t, err)
	assert.NotNil(t, res.Msg.Notes)
	assert.Empty(t, res.Msg.Notes)
	assert.Empty(t, res.Msg.Markers)
	assert.Equal(t, []notify.Notification{notify.LoadFailed}, res.Msg.Notifications)
}

func TestServer_SetBounds(t *testing.T) {
	s := newTestServer(t)
	loadGlobal(t, s, london, stLouis)

	res, err := s.SetBounds(context.Background(), newRequest(&SetBoundsRequest{Bounds: &stLouisBounds}, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, noteIDs(res.Msg.Notes))

	res, err = s.SetBounds(context.Background(), newRequest(&SetBoundsRequest{}, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, noteIDs(res.Msg.Notes), "null bounds show every note")
}

func TestServer_SetBoundsInvalid(t *testing.T) {
	s := newTestServer(t)

	_, err := s.SetBounds(context.Background(), newRequest(&SetBoundsRequest{
		Bounds: &mapview.Bounds{South: 39, North: 38, West: -91, East: -89},
	}, ""))

	connectErr := requireConnectCode(t, err, connect.CodeInvalidArgument)
	require.Len(t, connectErr.Details(), 1)
	value, err := connectErr.Details()[0].Value()
	require.NoError(t, err)
	badRequest, ok := value.(*errdetails.BadRequest)
	require.True(t, ok)
	require.Len(t, badRequest.GetFieldViolations(), 1)
	assert.Equal(t, "north", badRequest.GetFieldViolations()[0].GetField())
}

func TestServer_HoverAndActivate(t *testing.T) {
	s := newTestServer(t)
	loadGlobal(t, s, soulard, stLouis)
	ctx := context.Background()

	hovered, err := s.Hover(ctx, newRequest(&HoverRequest{ID: "3"}, ""))
	require.NoError(t, err)
	assert.Equal(t, "3", hovered.Msg.Hovered)
	for _, m := range hovered.Msg.Markers {
		assert.Equal(t, m.NoteID == "3", m.Highlighted)
	}

	_, err = s.Activate(ctx, newRequest(&ActivateRequest{ID: "1"}, ""))
	require.NoError(t, err)
	res, err := s.Activate(ctx, newRequest(&ActivateRequest{ID: "3"}, ""))
	require.NoError(t, err)
	require.NotNil(t, res.Msg.Overlay)
	assert.Equal(t, "3", res.Msg.Overlay.NoteID)
	assert.Equal(t, note.Point{Lat: 38.61, Lng: -90.21}, res.Msg.Overlay.Position)
	assert.Equal(t, "3", res.Msg.Active)

	cleared, err := s.ClearActive(ctx, newRequest(&ClearActiveRequest{}, ""))
	require.NoError(t, err)
	assert.Nil(t, cleared.Msg.Overlay)
	assert.Empty(t, cleared.Msg.Active)
}

func TestServer_ActivateErrors(t *testing.T) {
	s := newTestServer(t)
	loadGlobal(t, s, stLouis)

	_, err := s.Activate(context.Background(), newRequest(&ActivateRequest{}, ""))
	requireConnectCode(t, err, connect.CodeInvalidArgument)

	_, err = s.Activate(context.Background(), newRequest(&ActivateRequest{ID: "404"}, ""))
	requireConnectCode(t, err, connect.CodeNotFound)
}

func TestServer_SearchMap(t *testing.T) {
	s := newTestServer(t)
	loadGlobal(t, s, london, stLouis)
	_, err := s.SetBounds(context.Background(), newRequest(&SetBoundsRequest{Bounds: &stLouisBounds}, ""))
	require.NoError(t, err)

	res, err := s.SearchMap(context.Background(), newRequest(&MapSearchRequest{Query: "paul"}, ""))

	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, noteIDs(res.Msg.Notes))
}

func TestServer_ViewsArePerPage(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	s.store.EXPECT().FetchGlobalNotes(gomock.Any()).Return([]note.Note{london, stLouis}, nil).Times(2)

	first := newRequest(&LoadRequest{}, "")
	first.Header().Set(headerViewID, "tab-1")
	second := newRequest(&LoadRequest{}, "")
	second.Header().Set(headerViewID, "tab-2")
	_, err := s.Load(ctx, first)
	require.NoError(t, err)
	_, err = s.Load(ctx, second)
	require.NoError(t, err)

	narrow := newRequest(&SetBoundsRequest{Bounds: &stLouisBounds}, "")
	narrow.Header().Set(headerViewID, "tab-1")
	res, err := s.SetBounds(ctx, narrow)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, noteIDs(res.Msg.Notes))

	other := newRequest(&ToggleRequest{}, "")
	other.Header().Set(headerViewID, "tab-2")
	res, err = s.Toggle(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, mapview.NoteSetPersonal, res.Msg.Set)
	assert.Empty(t, res.Msg.Notes)
}

func TestServer_ViewsAreScopedToTheSession(t *testing.T) {
	draft := note.Note{ID: "9", Title: "Unpublished", Latitude: "38.6", Longitude: "-90.2"}
	ctx := context.Background()

	t.Run("admin view is not served without the passkey", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().FetchUserNotes(gomock.Any(), testUser).Return(nil, nil)
		s.store.EXPECT().FetchAllNotes(gomock.Any()).Return([]note.Note{draft}, nil)
		admin := newRequest(&LoadRequest{}, testUser)
		admin.Header().Set(headerAdminPasskey, testPasskey)
		res, err := s.Load(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, []string{"9"}, noteIDs(res.Msg.Notes))

		for name, req := range map[string]*connect.Request[ClearActiveRequest]{
			"same user without passkey": newRequest(&ClearActiveRequest{}, testUser),
			"anonymous":                 newRequest(&ClearActiveRequest{}, ""),
		} {
			got, err := s.ClearActive(ctx, req)
			require.NoError(t, err)
			assert.Empty(t, got.Msg.Notes, name)
		}

		wrongKey := newRequest(&ClearActiveRequest{}, "")
		wrongKey.Header().Set(headerViewID, testUser)
		got, err := s.ClearActive(ctx, wrongKey)
		require.NoError(t, err)
		assert.Empty(t, got.Msg.Notes, "the view id alone does not select a view")
	})

	t.Run("anonymous pages without a view id share nothing", func(t *testing.T) {
		s := newTestServer(t)
		s.store.EXPECT().FetchGlobalNotes(gomock.Any()).Return([]note.Note{stLouis}, nil)
		load := newRequest(&LoadRequest{}, "")
		load.Header().Del(headerViewID)
		_, err := s.Load(ctx, load)
		require.NoError(t, err)

		hover := newRequest(&HoverRequest{ID: "1"}, "")
		hover.Header().Del(headerViewID)
		_, err = s.Hover(ctx, hover)
		require.NoError(t, err)

		other := newRequest(&ClearActiveRequest{}, "")
		other.Header().Del(headerViewID)
		res, err := s.ClearActive(ctx, other)
		require.NoError(t, err)
		assert.Empty(t, res.Msg.Hovered)
		assert.Empty(t, res.Msg.Notes)
		assert.Zero(t, viewCount(s.Server))
	})
}

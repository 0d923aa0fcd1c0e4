package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/livedreligion/wheresreligion/internal/editor"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/ws"
)

const noteService = "NoteService"

func (s *Server) noteServiceHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return procedures(noteService, map[string]http.Handler{
		"Save":        connect.NewUnaryHandler(procedure(noteService, "Save"), s.SaveNote, opts...),
		"Delete":      connect.NewUnaryHandler(procedure(noteService, "Delete"), s.DeleteNote, opts...),
		"Search":      connect.NewUnaryHandler(procedure(noteService, "Search"), s.SearchNotes, opts...),
		"CreatorName": connect.NewUnaryHandler(procedure(noteService, "CreatorName"), s.CreatorName, opts...),
	})
}

// SaveNote creates or overwrites the whole note. The notification the user
// should see comes back with the response, or as an ErrorInfo detail when the
// save failed.
func (s *Server) SaveNote(
	ctx context.Context,
	req *connect.Request[SaveNoteRequest],
) (*connect.Response[SaveNoteResponse], error) {
	sess := sessionFromHeader(req.Header(), s.cfg.Admin.Passkey)
	if !sess.LoggedIn() {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("log in to save notes"))
	}

	recorder := &notify.Recorder{}
	saved, err := editor.NewService(s.store, recorder).Save(ctx, sess, editor.Load(req.Msg.Note), req.Msg.IsNew)
	if err != nil {
		if errors.Is(err, note.ErrUnsaved) {
			return nil, notificationError(connect.CodeFailedPrecondition, "NOTE_NOT_CREATED", err, notify.SaveFailed)
		}
		return nil, notificationError(connect.CodeUnavailable, "SAVE_FAILED", err, notify.SaveFailed)
	}

	eventType := ws.NoteUpdated
	if req.Msg.IsNew {
		eventType = ws.NoteCreated
	}
	s.publish(ws.Event{Type: eventType, ID: saved.ID})

	return connect.NewResponse(&SaveNoteResponse{
		Note:          saved,
		Notifications: recorder.Drain(),
	}), nil
}

// DeleteNote removes a saved note. A note without an id is rejected before
// anything is sent to the store.
func (s *Server) DeleteNote(
	ctx context.Context,
	req *connect.Request[DeleteNoteRequest],
) (*connect.Response[DeleteNoteResponse], error) {
	sess := sessionFromHeader(req.Header(), s.cfg.Admin.Passkey)
	if req.Msg.Note.IsSaved() && !sess.LoggedIn() {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("log in to delete notes"))
	}

	recorder := &notify.Recorder{}
	if err := editor.NewService(s.store, recorder).Delete(ctx, sess, req.Msg.Note); err != nil {
		if errors.Is(err, note.ErrUnsaved) {
			return nil, notificationError(connect.CodeFailedPrecondition, "MUST_SAVE_FIRST", err, notify.MustSaveFirst)
		}
		return nil, notificationError(connect.CodeUnavailable, "DELETE_FAILED", err, notify.DeleteFailed)
	}

	s.publish(ws.Event{Type: ws.NoteDeleted, ID: req.Msg.Note.ID})
	return connect.NewResponse(&DeleteNoteResponse{
		Notifications: recorder.Drain(),
	}), nil
}

// SearchNotes asks the store for notes whose title or tags contain the query.
func (s *Server) SearchNotes(
	ctx context.Context,
	req *connect.Request[SearchNotesRequest],
) (*connect.Response[SearchNotesResponse], error) {
	notes, err := s.store.SearchNotes(ctx, req.Msg.Query)
	if err != nil {
		slog.Default().Error("failed to search notes", "query", req.Msg.Query, "error", err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewResponse(&SearchNotesResponse{
		Notes: note.Prepare(notes),
	}), nil
}

func (s *Server) CreatorName(
	ctx context.Context,
	req *connect.Request[CreatorNameRequest],
) (*connect.Response[CreatorNameResponse], error) {
	if err := s.validate(req.Msg); err != nil {
		return nil, err
	}
	name, err := s.store.FetchCreatorName(ctx, req.Msg.Creator)
	if err != nil {
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewResponse(&CreatorNameResponse{Name: name}), nil
}

func (s *Server) publish(e ws.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
)

const tourService = "TourService"

func (s *Server) tourServiceHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return procedures(tourService, map[string]http.Handler{
		"Status":   connect.NewUnaryHandler(procedure(tourService, "Status"), s.TourStatus, opts...),
		"Complete": connect.NewUnaryHandler(procedure(tourService, "Complete"), s.CompleteTour, opts...),
	})
}

// TourStatus reports whether the user finished the introductory tour. While
// not finished, it picks a random note in the page's viewport for the tour to
// point at.
func (s *Server) TourStatus(
	ctx context.Context,
	req *connect.Request[TourStatusRequest],
) (*connect.Response[TourStatusResponse], error) {
	sess := sessionFromHeader(req.Header(), s.cfg.Admin.Passkey)
	if !sess.LoggedIn() {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("log in to take the tour"))
	}

	completed, err := s.tours.HasCompletedTour(ctx, sess.UserID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("tours.HasCompletedTour() > %w", err))
	}
	res := &TourStatusResponse{Completed: completed}
	if completed {
		return connect.NewResponse(res), nil
	}

	entry := s.viewEntry(req.Header(), sess)
	entry.mu.Lock()
	s.mu.Lock()
	n, ok := entry.view.RandomNoteInBounds(s.rand)
	s.mu.Unlock()
	entry.mu.Unlock()
	if ok {
		res.Note = &n
	}
	return connect.NewResponse(res), nil
}

func (s *Server) CompleteTour(
	ctx context.Context,
	req *connect.Request[CompleteTourRequest],
) (*connect.Response[CompleteTourResponse], error) {
	sess := sessionFromHeader(req.Header(), s.cfg.Admin.Passkey)
	if !sess.LoggedIn() {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("log in to take the tour"))
	}
	if err := s.tours.SetTourCompleted(ctx, sess.UserID); err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("tours.SetTourCompleted() > %w", err))
	}
	return connect.NewResponse(&CompleteTourResponse{}), nil
}

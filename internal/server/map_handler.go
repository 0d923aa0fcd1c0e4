package server

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/livedreligion/wheresreligion/internal/mapview"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/session"
)

const mapService = "MapService"

func (s *Server) mapServiceHandler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return procedures(mapService, map[string]http.Handler{
		"Load":        connect.NewUnaryHandler(procedure(mapService, "Load"), s.Load, opts...),
		"SetBounds":   connect.NewUnaryHandler(procedure(mapService, "SetBounds"), s.SetBounds, opts...),
		"Toggle":      connect.NewUnaryHandler(procedure(mapService, "Toggle"), s.Toggle, opts...),
		"Hover":       connect.NewUnaryHandler(procedure(mapService, "Hover"), s.Hover, opts...),
		"Activate":    connect.NewUnaryHandler(procedure(mapService, "Activate"), s.Activate, opts...),
		"ClearActive": connect.NewUnaryHandler(procedure(mapService, "ClearActive"), s.ClearActive, opts...),
		"Search":      connect.NewUnaryHandler(procedure(mapService, "Search"), s.SearchMap, opts...),
	})
}

// withView runs fn on the view of the calling page while holding its lock.
// Events of one page are applied one at a time, in arrival order.
func (s *Server) withView(header http.Header, fn func(sess session.Session, v *mapview.View) ([]notify.Notification, error)) (*connect.Response[MapState], error) {
	sess := sessionFromHeader(header, s.cfg.Admin.Passkey)
	entry := s.viewEntry(header, sess)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	notifications, err := fn(sess, entry.view)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(newMapState(entry.view.State(), notifications)), nil
}

// Load fetches the note collections of the session. A failed fetch leaves an
// empty map and is reported as a notification, not as an error.
func (s *Server) Load(
	ctx context.Context,
	req *connect.Request[LoadRequest],
) (*connect.Response[MapState], error) {
	return s.withView(req.Header(), func(sess session.Session, v *mapview.View) ([]notify.Notification, error) {
		recorder := &notify.Recorder{}
		_ = mapview.NewLoader(s.store, recorder).Refresh(ctx, sess, v)
		return recorder.Drain(), nil
	})
}

func (s *Server) SetBounds(
	ctx context.Context,
	req *connect.Request[SetBoundsRequest],
) (*connect.Response[MapState], error) {
	if err := s.validate(req.Msg); err != nil {
		return nil, err
	}
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		v.SetBounds(req.Msg.Bounds)
		return nil, nil
	})
}

func (s *Server) Toggle(
	ctx context.Context,
	req *connect.Request[ToggleRequest],
) (*connect.Response[MapState], error) {
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		v.Toggle()
		return nil, nil
	})
}

func (s *Server) Hover(
	ctx context.Context,
	req *connect.Request[HoverRequest],
) (*connect.Response[MapState], error) {
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		v.Hover(req.Msg.ID)
		return nil, nil
	})
}

func (s *Server) Activate(
	ctx context.Context,
	req *connect.Request[ActivateRequest],
) (*connect.Response[MapState], error) {
	if err := s.validate(req.Msg); err != nil {
		return nil, err
	}
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		if err := v.Activate(req.Msg.ID); err != nil {
			if errors.Is(err, mapview.ErrUnknownNote) {
				return nil, connect.NewError(connect.CodeNotFound, err)
			}
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		return nil, nil
	})
}

func (s *Server) ClearActive(
	ctx context.Context,
	req *connect.Request[ClearActiveRequest],
) (*connect.Response[MapState], error) {
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		v.ClearActive()
		return nil, nil
	})
}

// SearchMap narrows the list and markers to notes of the shown set matching
// the query. The next viewport change shows the viewport again.
func (s *Server) SearchMap(
	ctx context.Context,
	req *connect.Request[MapSearchRequest],
) (*connect.Response[MapState], error) {
	return s.withView(req.Header(), func(_ session.Session, v *mapview.View) ([]notify.Notification, error) {
		v.Search(req.Msg.Query)
		return nil, nil
	})
}

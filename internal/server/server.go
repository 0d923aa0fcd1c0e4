// Package server exposes the map view, the note editor and the tour as
// Connect RPC services, next to the upload pass-through and the websocket
// endpoint.
package server

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/livedreligion/wheresreligion/internal/config"
	"github.com/livedreligion/wheresreligion/internal/media"
	"github.com/livedreligion/wheresreligion/internal/notestore"
	"github.com/livedreligion/wheresreligion/internal/session"
	"github.com/livedreligion/wheresreligion/internal/ws"
)

const serviceNamePrefix = "wheresreligion.v1."

// Uploader stores one media file and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, kind media.Kind, r io.Reader) (string, error)
}

// Publisher announces note changes to open map pages.
type Publisher interface {
	Publish(e ws.Event)
}

type Server struct {
	cfg       *config.Config
	store     notestore.Store
	uploader  Uploader
	tours     session.TourRepository
	publisher Publisher
	validator *config.Validator

	mu    sync.Mutex
	views map[viewKey]*viewEntry
	rand  *rand.Rand
	now   func() time.Time
}

func New(
	cfg *config.Config,
	store notestore.Store,
	uploader Uploader,
	tours session.TourRepository,
	publisher Publisher,
) (*Server, error) {
	validate, err := config.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:       cfg,
		store:     store,
		uploader:  uploader,
		tours:     tours,
		publisher: publisher,
		validator: validate,
		views:     make(map[viewKey]*viewEntry),
		rand:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
	}, nil
}

// Handler routes every service. wsHandler serves /ws and may be nil.
func (s *Server) Handler(wsHandler http.Handler, opts ...connect.HandlerOption) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.mapServiceHandler(opts...))
	mux.Handle(s.noteServiceHandler(opts...))
	mux.Handle(s.tourServiceHandler(opts...))
	mux.Handle(s.configServiceHandler(opts...))
	mux.HandleFunc("POST /upload", s.Upload)
	if wsHandler != nil {
		mux.Handle("GET /ws", wsHandler)
	}
	return CORS(s.cfg.Server.CORS.AllowedOrigins, mux)
}

// procedures serves the unary handlers of one service under its path prefix.
func procedures(service string, handlers map[string]http.Handler) (string, http.Handler) {
	prefix := "/" + serviceNamePrefix + service + "/"
	return prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[strings.TrimPrefix(r.URL.Path, prefix)]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func procedure(service, method string) string {
	return "/" + serviceNamePrefix + service + "/" + method
}

// CORS lets the browser app call the server from allowedOrigins.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (slices.Contains(allowedOrigins, origin) || slices.Contains(allowedOrigins, "*")) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{
				"Content-Type",
				"Connect-Protocol-Version",
				headerUserID,
				headerUserName,
				headerAdminPasskey,
				headerViewID,
			}, ", "))
			w.Header().Set("Access-Control-Expose-Headers", "Location")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

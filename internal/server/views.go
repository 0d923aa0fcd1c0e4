package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/livedreligion/wheresreligion/internal/mapview"
	"github.com/livedreligion/wheresreligion/internal/session"
)

const (
	// DefaultViewIdleTimeout is how long a page's view is kept after its last call.
	DefaultViewIdleTimeout = 30 * time.Minute
	// DefaultViewSweepInterval is how often idle views are looked for.
	DefaultViewSweepInterval = time.Minute
)

// viewKey ties a page's view to the rights of the session that uses it, so a
// view holding notes fetched with admin rights or for one user is never
// served to another session.
type viewKey struct {
	userID string
	admin  bool
	viewID string
}

type viewEntry struct {
	mu       sync.Mutex
	view     *mapview.View
	lastUsed time.Time
}

// viewEntry returns the view of the page a request comes from. Pages send
// their own X-View-Id; without one, a logged-in user's pages share a view and
// an anonymous visitor gets a view nobody else can reach.
func (s *Server) viewEntry(header http.Header, sess session.Session) *viewEntry {
	viewID := header.Get(headerViewID)
	if viewID == "" && !sess.LoggedIn() {
		return &viewEntry{view: mapview.NewView(nil), lastUsed: s.now()}
	}
	key := viewKey{userID: sess.UserID, admin: sess.Admin, viewID: viewID}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.views[key]
	if !ok {
		entry = &viewEntry{view: mapview.NewView(nil)}
		s.views[key] = entry
	}
	entry.lastUsed = s.now()
	return entry
}

// EvictIdleViews forgets the views not used for longer than maxIdle and
// returns how many it removed.
func (s *Server) EvictIdleViews(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline := s.now().Add(-maxIdle)
	evicted := 0
	for key, entry := range s.views {
		if entry.lastUsed.Before(deadline) {
			delete(s.views, key)
			evicted++
		}
	}
	return evicted
}

// SweepIdleViews calls EvictIdleViews every interval until ctx is done.
func (s *Server) SweepIdleViews(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdleViews(maxIdle); n > 0 {
				slog.Default().Debug("evicted idle map views", "count", n)
			}
		}
	}
}

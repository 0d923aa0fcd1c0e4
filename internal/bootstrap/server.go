package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/livedreligion/wheresreligion/internal/config"
	"github.com/livedreligion/wheresreligion/internal/database"
	"github.com/livedreligion/wheresreligion/internal/media"
	"github.com/livedreligion/wheresreligion/internal/notestore"
	"github.com/livedreligion/wheresreligion/internal/server"
	"github.com/livedreligion/wheresreligion/internal/session"
	"github.com/livedreligion/wheresreligion/internal/ws"
	"github.com/livedreligion/wheresreligion/schemas"
)

const databaseRetryDelay = time.Second

// RunServer wires the note store, the database and the websocket hub into the
// HTTP server and serves until ctx is done or a signal arrives.
func RunServer(ctx context.Context, cfg *config.Config) error {
	store := notestore.NewClient(notestore.Config{
		BaseURL:      cfg.NoteStore.BaseURL,
		PublishedURL: cfg.NoteStore.PublishedURL,
		Type:         cfg.NoteStore.Type,
	})
	defer func() {
		_ = store.Close()
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := database.WaitReady(ctx, db, cfg.Database.ReadyAttempts, databaseRetryDelay); err != nil {
		return fmt.Errorf("database.WaitReady() > %w", err)
	}
	if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
		return fmt.Errorf("database.Migrate() > %w", err)
	}

	hub := ws.NewHub(cfg.Server.CORS.AllowedOrigins)
	srv, err := server.New(cfg, store, media.NewUploader(cfg.Upload.BaseURL), session.NewDBTourRepository(db), hub)
	if err != nil {
		return fmt.Errorf("server.New() > %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(srv.Handler(hub), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := New()
	app.AddShutdownHook("http", httpServer.Shutdown)
	return app.Run(ctx, func(ctx context.Context) error {
		go hub.Run(ctx)
		go srv.SweepIdleViews(ctx, server.DefaultViewSweepInterval, server.DefaultViewIdleTimeout)

		slog.Default().Info("starting server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe() > %w", err)
		}
		return nil
	})
}

package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/livedreligion/wheresreligion/internal/config"
)

// cancelledRun returns a context and a main function that cancels it and then
// blocks until the test ends, so Run always takes the shutdown path.
func cancelledRun(t *testing.T) (context.Context, func(ctx context.Context) error) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return ctx, func(ctx context.Context) error {
		cancel()
		<-release
		return nil
	}
}

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New()
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run error skips the hooks", func(t *testing.T) {
		app := New()
		hookCalled := false
		app.AddShutdownHook("never", func(ctx context.Context) error {
			hookCalled = true
			return nil
		})
		want := errors.New("listen failed")

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})

		assert.ErrorIs(t, err, want)
		assert.False(t, hookCalled)
	})

	t.Run("hooks run in reverse order on cancel", func(t *testing.T) {
		app := New()
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"db", "hub", "http"} {
			app.AddShutdownHook(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		err := app.Run(cancelledRun(t))

		require.NoError(t, err)
		assert.Equal(t, []string{"http", "hub", "db"}, order)
	})

	t.Run("hook errors are joined", func(t *testing.T) {
		app := New()
		errHTTP := errors.New("http")
		errDB := errors.New("db")
		app.AddShutdownHook("db", func(ctx context.Context) error { return errDB })
		app.AddShutdownHook("http", func(ctx context.Context) error { return errHTTP })

		err := app.Run(cancelledRun(t))

		assert.ErrorIs(t, err, errHTTP)
		assert.ErrorIs(t, err, errDB)
	})

	t.Run("hooks get a deadline", func(t *testing.T) {
		app := New()
		app.shutdownTimeout = time.Minute
		var deadline time.Time
		app.AddShutdownHook("http", func(ctx context.Context) error {
			deadline, _ = ctx.Deadline()
			return nil
		})

		require.NoError(t, app.Run(cancelledRun(t)))

		assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	})
}

func TestRunServer_DatabaseUnavailable(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 0},
		Database: config.DatabaseConfig{
			Host:          "127.0.0.1",
			Port:          1,
			Database:      "wheresreligion",
			Username:      "user",
			ReadyAttempts: 1,
		},
	}

	err := RunServer(context.Background(), cfg)

	assert.ErrorContains(t, err, "database.WaitReady()")
}

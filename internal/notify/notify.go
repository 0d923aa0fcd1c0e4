// Package notify delivers short, non-blocking messages to the user, such as
// "Note Saved" or a failed fetch.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a transient message. Duration is how long a client should
// keep it on screen.
type Notification struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Level       Level         `json:"level"`
	Duration    time.Duration `json:"duration"`
}

// Notifier must not block the caller.
type Notifier interface {
	Notify(n Notification)
}

var (
	NoteCreated = Notification{
		Title:       "Note Created",
		Description: "Your new note has been successfully created.",
		Level:       LevelInfo,
		Duration:    2 * time.Second,
	}
	NoteSaved = Notification{
		Title:       "Note Saved",
		Description: "Your note has been successfully saved.",
		Level:       LevelInfo,
		Duration:    2 * time.Second,
	}
	SaveFailed = Notification{
		Title:       "Error",
		Description: "Failed to save note. Try again later.",
		Level:       LevelError,
		Duration:    4 * time.Second,
	}
	NoteDeleted = Notification{
		Title:       "Note Deleted",
		Description: "Your note has been successfully deleted.",
		Level:       LevelInfo,
		Duration:    2 * time.Second,
	}
	DeleteFailed = Notification{
		Title:       "Error",
		Description: "Failed to delete note. Try again later.",
		Level:       LevelError,
		Duration:    4 * time.Second,
	}
	MustSaveFirst = Notification{
		Title:       "Error",
		Description: "You must save the note before you can delete it.",
		Level:       LevelError,
		Duration:    4 * time.Second,
	}
	LoadFailed = Notification{
		Title:       "Error",
		Description: "Failed to load notes. Try again later.",
		Level:       LevelError,
		Duration:    4 * time.Second,
	}
)

// Recorder keeps notifications until they are drained, so that a request
// handler can hand them back to the client with its response.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Drain returns the recorded notifications and forgets them.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items
	r.items = nil
	if items == nil {
		return []Notification{}
	}
	return items
}

// LogNotifier writes notifications to a logger. It is used where there is no
// user interface to show them, e.g. the CLI.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if n.Level == LevelError {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, n.Title, slog.String("description", n.Description))
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notification) {}

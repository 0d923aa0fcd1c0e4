package mapview

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/session"
)

// Fetcher is the part of the note store the map page reads from.
type Fetcher interface {
	FetchGlobalNotes(ctx context.Context) ([]note.Note, error)
	FetchAllNotes(ctx context.Context) ([]note.Note, error)
	FetchUserNotes(ctx context.Context, userID string) ([]note.Note, error)
}

// Loader fetches the collections shown on the map page.
type Loader struct {
	fetcher  Fetcher
	notifier notify.Notifier
}

func NewLoader(fetcher Fetcher, notifier notify.Notifier) *Loader {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Loader{fetcher: fetcher, notifier: notifier}
}

// Load fetches the personal notes of a logged-in user and the global notes,
// newest first. Admin sessions see every note as the global set.
//
// When any fetch fails, both collections come back empty, the failure is
// reported to the notifier and returned. Nothing is retried.
func (l *Loader) Load(ctx context.Context, sess session.Session) (global, personal []note.Note, err error) {
	global, personal, err = l.fetch(ctx, sess)
	if err != nil {
		slog.Default().Error("failed to fetch notes",
			"user", sess.UserID,
			"error", err,
		)
		l.notifier.Notify(notify.LoadFailed)
		return []note.Note{}, []note.Note{}, err
	}
	return global, personal, nil
}

func (l *Loader) fetch(ctx context.Context, sess session.Session) ([]note.Note, []note.Note, error) {
	personal := []note.Note{}
	if sess.LoggedIn() {
		notes, err := l.fetcher.FetchUserNotes(ctx, sess.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("fetcher.FetchUserNotes(%s) > %w", sess.UserID, err)
		}
		personal = note.Prepare(notes)
	}

	fetchGlobal := l.fetcher.FetchGlobalNotes
	if sess.Admin {
		fetchGlobal = l.fetcher.FetchAllNotes
	}
	notes, err := fetchGlobal(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetcher.FetchGlobalNotes() > %w", err)
	}
	return note.Prepare(notes), personal, nil
}

// Refresh loads the collections into v. On failure v shows an empty map.
func (l *Loader) Refresh(ctx context.Context, sess session.Session, v *View) error {
	global, personal, err := l.Load(ctx, sess)
	v.SetCollections(global, personal)
	return err
}

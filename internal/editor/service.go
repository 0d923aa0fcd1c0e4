package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/session"
)

// Store is the part of the note store the editor writes to.
type Store interface {
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	OverwriteNote(ctx context.Context, n note.Note) (note.Note, error)
	DeleteNote(ctx context.Context, id, ownerID string) error
}

// Service saves and deletes notes. Every outcome is also reported to the
// notifier. Failed calls are not retried.
type Service struct {
	store    Store
	notifier notify.Notifier
}

func NewService(store Store, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &Service{store: store, notifier: notifier}
}

// Save sends the whole note described by st to the store. A new note is
// created and st takes the id the store assigned; an existing note is
// overwritten. The body is sanitized before it leaves the editor, and a note
// without a creator is attributed to the session user.
func (s *Service) Save(ctx context.Context, sess session.Session, st *State, isNew bool) (note.Note, error) {
	n := st.Note()
	n.Text = Sanitize(n.Text)
	if n.Creator == "" {
		n.Creator = sess.UserID
	}

	if isNew {
		n.ID = ""
		saved, err := s.store.CreateNote(ctx, n)
		if err != nil {
			return note.Note{}, s.saveFailed(fmt.Errorf("store.CreateNote() > %w", err))
		}
		st.ID = saved.ID
		st.Creator = n.Creator
		if saved.Creator != "" {
			st.Creator = saved.Creator
		}
		st.Body = n.Text
		s.notifier.Notify(notify.NoteCreated)
		return saved, nil
	}

	if !n.IsSaved() {
		return note.Note{}, s.saveFailed(note.ErrUnsaved)
	}
	saved, err := s.store.OverwriteNote(ctx, n)
	if err != nil {
		return note.Note{}, s.saveFailed(fmt.Errorf("store.OverwriteNote(%s) > %w", n.ID, err))
	}
	st.Body = n.Text
	s.notifier.Notify(notify.NoteSaved)
	return saved, nil
}

func (s *Service) saveFailed(err error) error {
	slog.Default().Error("failed to save note", "error", err)
	s.notifier.Notify(notify.SaveFailed)
	return err
}

// Delete removes n from the store. A note that was never saved has no id to
// delete; it is rejected with note.ErrUnsaved without calling the store.
func (s *Service) Delete(ctx context.Context, sess session.Session, n note.Note) error {
	if !n.IsSaved() {
		s.notifier.Notify(notify.MustSaveFirst)
		return note.ErrUnsaved
	}
	owner := n.Creator
	if owner == "" {
		owner = sess.UserID
	}
	if err := s.store.DeleteNote(ctx, n.ID, owner); err != nil {
		slog.Default().Error("failed to delete note",
			"id", n.ID,
			"error", err,
		)
		s.notifier.Notify(notify.DeleteFailed)
		return fmt.Errorf("store.DeleteNote(%s) > %w", n.ID, err)
	}
	s.notifier.Notify(notify.NoteDeleted)
	return nil
}

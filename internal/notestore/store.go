// Package notestore is the client of the remote note store. Every call is a
// single HTTP request: nothing is retried, batched or cached.
package notestore

import (
	"context"

	"github.com/livedreligion/wheresreligion/internal/note"
)

//go:generate mockgen -source=store.go -destination=../mocks/notestore/mock_store.go -package=mock_notestore

// Store is the set of operations the remote note store offers.
type Store interface {
	// FetchGlobalNotes returns the published notes of all users.
	FetchGlobalNotes(ctx context.Context) ([]note.Note, error)
	// FetchAllNotes returns every note regardless of publish state.
	FetchAllNotes(ctx context.Context) ([]note.Note, error)
	// FetchUserNotes returns the notes created by userID regardless of publish state.
	FetchUserNotes(ctx context.Context, userID string) ([]note.Note, error)
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	OverwriteNote(ctx context.Context, n note.Note) (note.Note, error)
	// DeleteNote deletes the note id owned by ownerID. The ownership check is
	// done by the remote store.
	DeleteNote(ctx context.Context, id, ownerID string) error
	SearchNotes(ctx context.Context, query string) ([]note.Note, error)
	FetchCreatorName(ctx context.Context, creatorURL string) (string, error)
}

package main

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/livedreligion/wheresreligion/internal/editor"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/session"
)

// createOptions are the fields of a note given on the command line.
type createOptions struct {
	title     string
	text      string
	latitude  float64
	longitude float64
	at        string
	tags      []string
	images    []string
	videos    []string
	audio     []string
	published bool
}

// newState builds the editor state of a new note from opts. Audio items are
// named after the last element of their URI.
func (opts createOptions) newState(now time.Time) (*editor.State, error) {
	st := editor.New(now)
	if opts.at != "" {
		at, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return nil, fmt.Errorf("invalid --time %q: %w", opts.at, err)
		}
		st.Time = at
	}
	st.Title = strings.TrimSpace(opts.title)
	st.Body = editor.FromPlainText(opts.text)
	st.SetLocation(note.Point{Lat: opts.latitude, Lng: opts.longitude})
	st.Published = opts.published
	for _, tag := range opts.tags {
		st.AddTag(tag)
	}
	for _, uri := range opts.images {
		st.AddMedia(uri, note.MediaKindImage)
	}
	for _, uri := range opts.videos {
		st.AddMedia(uri, note.MediaKindVideo)
	}
	for _, uri := range opts.audio {
		st.AddAudio(uri, path.Base(uri), 0)
	}
	return st, nil
}

func newNotesCreateCommand() *cobra.Command {
	var opts createOptions
	var user string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note owned by --user and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.newState(time.Now())
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			store, err := newStoreClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			service := editor.NewService(store, notify.LogNotifier{})
			saved, err := service.Save(cmd.Context(), session.Session{UserID: user}, st, true)
			if err != nil {
				return fmt.Errorf("service.Save() > %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
			return err
		},
	}
	flags := createCmd.Flags()
	flags.StringVar(&user, "user", "", "Creator id of the note owner")
	flags.StringVar(&opts.title, "title", "", "Title")
	flags.StringVar(&opts.text, "text", "", "Body as plain text. Blank lines separate paragraphs")
	flags.Float64Var(&opts.latitude, "lat", 0, "Latitude in decimal degrees")
	flags.Float64Var(&opts.longitude, "lng", 0, "Longitude in decimal degrees")
	flags.StringVar(&opts.at, "time", "", "Time of the note in RFC 3339. Defaults to now")
	flags.StringSliceVar(&opts.tags, "tag", nil, "Tag, repeatable")
	flags.StringSliceVar(&opts.images, "image", nil, "Image URL, repeatable")
	flags.StringSliceVar(&opts.videos, "video", nil, "Video URL, repeatable")
	flags.StringSliceVar(&opts.audio, "audio", nil, "Audio URL, repeatable")
	flags.BoolVar(&opts.published, "publish", false, "Publish the note to the global map")
	_ = createCmd.MarkFlagRequired("user")
	return createCmd
}

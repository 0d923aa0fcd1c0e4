package main

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/livedreligion/wheresreligion/internal/cli"
	"github.com/livedreligion/wheresreligion/internal/config"
	"github.com/livedreligion/wheresreligion/internal/editor"
	"github.com/livedreligion/wheresreligion/internal/mapview"
	"github.com/livedreligion/wheresreligion/internal/note"
	"github.com/livedreligion/wheresreligion/internal/notify"
	"github.com/livedreligion/wheresreligion/internal/pdf"
	"github.com/livedreligion/wheresreligion/internal/session"
)

type NoteSetFlag mapview.NoteSet

// Set implements pflag.Value.
func (s *NoteSetFlag) Set(v string) error {
	set, err := mapview.ParseNoteSet(v)
	if err != nil {
		return err
	}
	*s = NoteSetFlag(set)
	return nil
}

// String implements pflag.Value.
func (s *NoteSetFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *NoteSetFlag) Type() string {
	return "NoteSetFlag"
}

type FormatFlag cli.ExportFormat

// Set implements pflag.Value.
func (f *FormatFlag) Set(v string) error {
	switch cli.ExportFormat(v) {
	case cli.ExportMarkdown, cli.ExportYAML:
		*f = FormatFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q or %q", v, cli.ExportMarkdown, cli.ExportYAML)
	}
	return nil
}

// String implements pflag.Value.
func (f *FormatFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *FormatFlag) Type() string {
	return "FormatFlag"
}

var (
	_ pflag.Value = (*NoteSetFlag)(nil)
	_ pflag.Value = (*FormatFlag)(nil)
)

// sessionFlags identify who the command acts as.
type sessionFlags struct {
	user    string
	passkey string
}

func (f *sessionFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.user, "user", "", "Creator id of the user to act as")
	flags.StringVar(&f.passkey, "passkey", "", "Admin passkey. Lists every note as the global set")
}

func (f *sessionFlags) session(cfg *config.Config) session.Session {
	passkey := cfg.Admin.Passkey
	admin := f.passkey != "" && passkey != "" &&
		subtle.ConstantTimeCompare([]byte(f.passkey), []byte(passkey)) == 1
	return session.Session{UserID: f.user, Admin: admin}
}

func newNotesCommand() *cobra.Command {
	notesCommand := &cobra.Command{
		Use:   "notes",
		Short: "Browse and manage notes in the note store",
	}
	notesCommand.AddCommand(
		newNotesListCommand(),
		newNotesSearchCommand(),
		newNotesCreateCommand(),
		newNotesDeleteCommand(),
		newNotesExportCommand(),
	)
	return notesCommand
}

func newNotesListCommand() *cobra.Command {
	set := NoteSetFlag(mapview.NoteSetGlobal)
	var sessFlags sessionFlags
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the global or personal notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ctx := cmd.Context()
			notes, err := loadNotes(ctx, store, mapview.NoteSet(set), sessFlags.session(cfg))
			if err != nil {
				return err
			}
			return cli.NewCardPrinter(cmd.OutOrStdout(), store).Print(ctx, notes)
		},
	}
	listCmd.Flags().Var(&set, "set", "Notes to list. Options: global, personal")
	sessFlags.register(listCmd.Flags())
	return listCmd
}

func newNotesSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search notes by title, text and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ctx := cmd.Context()
			notes, err := store.SearchNotes(ctx, args[0])
			if err != nil {
				return fmt.Errorf("store.SearchNotes() > %w", err)
			}
			return cli.NewCardPrinter(cmd.OutOrStdout(), store).Print(ctx, note.Prepare(notes))
		},
	}
}

func newNotesDeleteCommand() *cobra.Command {
	var user string
	deleteCmd := &cobra.Command{
		Use:   "delete <note id>",
		Short: "Delete a note owned by --user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := service.Delete(cmd.Context(), session.Session{UserID: user}, note.Note{ID: args[0]}); err != nil {
				return fmt.Errorf("service.Delete(%s) > %w", args[0], err)
			}
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&user, "user", "", "Creator id of the note owner")
	_ = deleteCmd.MarkFlagRequired("user")
	return deleteCmd
}

func newNotesExportCommand() *cobra.Command {
	set := NoteSetFlag(mapview.NoteSetGlobal)
	format := FormatFlag(cli.ExportMarkdown)
	var sessFlags sessionFlags
	var pdfOptions pdf.Options
	var generatePDF bool
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the global or personal notes to the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			ctx := cmd.Context()
			notes, err := loadNotes(ctx, store, mapview.NoteSet(set), sessFlags.session(cfg))
			if err != nil {
				return err
			}
			paths, err := cli.ExportNotes(ctx, notes, store, cli.ExportOptions{
				Directory:    cfg.Outputs.NoteDirectory,
				Name:         string(set),
				Format:       cli.ExportFormat(format),
				TemplatePath: cfg.Templates.NoteTemplate,
				PDF:          generatePDF,
				PDFOptions:   pdfOptions,
			})
			if err != nil {
				return fmt.Errorf("cli.ExportNotes() > %w", err)
			}
			for _, path := range paths {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	flags := exportCmd.Flags()
	flags.Var(&set, "set", "Notes to export. Options: global, personal")
	flags.Var(&format, "format", "Output format. Options: markdown, yaml")
	flags.BoolVar(&generatePDF, "pdf", false, "Generate PDF output in addition to markdown")
	flags.BoolVar(&pdfOptions.Landscape, "landscape", false, "Landscape PDF pages")
	flags.StringVar(&pdfOptions.PaperSize, "paper", "A4", "PDF paper size")
	flags.BoolVar(&pdfOptions.Dark, "dark", false, "Dark PDF theme")
	sessFlags.register(flags)
	return exportCmd
}

// loadNotes fetches the collections the map page would show to sess and
// returns the one named by set.
func loadNotes(ctx context.Context, fetcher mapview.Fetcher, set mapview.NoteSet, sess session.Session) ([]note.Note, error) {
	if set == mapview.NoteSetPersonal && !sess.LoggedIn() {
		return nil, fmt.Errorf("--user is required for the %s set", set)
	}
	global, personal, err := mapview.NewLoader(fetcher, notify.LogNotifier{}).Load(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	if set == mapview.NoteSetPersonal {
		return personal, nil
	}
	return global, nil
}

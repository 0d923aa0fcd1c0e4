// Package cli renders notes for the terminal.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/livedreligion/wheresreligion/internal/editor"
	"github.com/livedreligion/wheresreligion/internal/note"
)

// UnknownCreatorName is shown when the author of a note cannot be resolved.
const UnknownCreatorName = "Error loading name"

const excerptLength = 120

// CreatorNamer resolves the display name of a note's creator.
type CreatorNamer interface {
	FetchCreatorName(ctx context.Context, creatorURL string) (string, error)
}

// CardPrinter prints notes as the cards of the note list.
type CardPrinter struct {
	out    io.Writer
	namer  CreatorNamer
	bold   *color.Color
	italic *color.Color
	faint  *color.Color
	green  *color.Color
	yellow *color.Color
}

// NewCardPrinter writes to out. A nil namer leaves creator names out.
func NewCardPrinter(out io.Writer, namer CreatorNamer) *CardPrinter {
	return &CardPrinter{
		out:    out,
		namer:  namer,
		bold:   color.New(color.Bold),
		italic: color.New(color.Italic),
		faint:  color.New(color.Faint),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
	}
}

// Print writes one card per note. Each creator is looked up once.
func (p *CardPrinter) Print(ctx context.Context, notes []note.Note) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(p.out, "No notes")
		return err
	}

	names := make(map[string]string)
	for i, n := range notes {
		if i > 0 {
			if _, err := fmt.Fprintln(p.out); err != nil {
				return err
			}
		}
		if err := p.printCard(n, p.creatorName(ctx, names, n.Creator)); err != nil {
			return fmt.Errorf("printCard(%s) > %w", n.ID, err)
		}
	}
	return nil
}

func (p *CardPrinter) creatorName(ctx context.Context, names map[string]string, creator string) string {
	if p.namer == nil {
		return ""
	}
	return lookupCreatorName(ctx, p.namer, names, creator)
}

// lookupCreatorName resolves creator through names first and records the
// answer there. A failed lookup is shown as UnknownCreatorName.
func lookupCreatorName(ctx context.Context, namer CreatorNamer, names map[string]string, creator string) string {
	if creator == "" {
		return ""
	}
	if name, ok := names[creator]; ok {
		return name
	}
	name, err := namer.FetchCreatorName(ctx, creator)
	if err != nil || name == "" {
		slog.Default().Debug("failed to fetch creator name", "creator", creator, "error", err)
		name = UnknownCreatorName
	}
	names[creator] = name
	return name
}

func (p *CardPrinter) printCard(n note.Note, creatorName string) error {
	title := n.Title
	if title == "" {
		title = "Untitled"
	}
	if _, err := p.bold.Fprintln(p.out, title); err != nil {
		return err
	}

	byline := note.FormatCardTime(n.Time)
	if creatorName != "" {
		byline += " by " + creatorName
	}
	if _, err := p.italic.Fprintf(p.out, "  %s\n", byline); err != nil {
		return err
	}

	if n.Published {
		_, _ = p.green.Fprint(p.out, "  published")
	} else {
		_, _ = p.yellow.Fprint(p.out, "  draft")
	}
	if location, ok := n.Location(); ok {
		fmt.Fprintf(p.out, "  %.6f, %.6f", location.Lat, location.Lng)
	}
	fmt.Fprintln(p.out)

	if len(n.Tags) > 0 {
		fmt.Fprintf(p.out, "  Tags: %s\n", strings.Join(n.Tags, ", "))
	}
	if excerpt := editor.Excerpt(n.Text, excerptLength); excerpt != "" {
		fmt.Fprintf(p.out, "  %s\n", excerpt)
	}
	if image, ok := n.FirstImage(); ok {
		_, _ = p.faint.Fprintf(p.out, "  Image: %s\n", image.URI)
	}
	if len(n.Media) > 0 || len(n.Audio) > 0 {
		_, _ = p.faint.Fprintf(p.out, "  %d media, %d audio\n", len(n.Media), len(n.Audio))
	}
	_, err := p.faint.Fprintf(p.out, "  %s\n", n.ID)
	return err
}

package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/files"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now in local time.
func (SystemClock) Now() time.Time { return time.Now().In(time.Local) }

// FixedClock always returns the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns c.At.
func (c FixedClock) Now() time.Time { return c.At }

// DateFormatter renders dates and times for a locale string.
type DateFormatter interface {
	Date(t time.Time, locale string) string
	Time(t time.Time, locale string) string
}

// CursorHandle positions the cursor of an editable view.
type CursorHandle interface {
	LastLine() int
	SetCursor(line, ch int)
}

// CursorReporter is implemented by handles that can say where the cursor
// actually landed, for instance after clamping.
type CursorReporter interface {
	Cursor() (line, ch int)
}

// Workspace is everything CreateEntry needs from the host: document
// resolution, creation and appends, plus view and cursor control.
type Workspace interface {
	Resolve(ctx context.Context, path string) (files.Node, error)
	Create(ctx context.Context, path, initial string) (*files.Document, error)
	Append(ctx context.Context, doc *files.Document, text string) error
	OpenInNewView(ctx context.Context, doc *files.Document) error
	ActiveEditor() (CursorHandle, bool)
}

// Composer writes journal entry headings.
type Composer struct {
	formatter DateFormatter
	logger    *log.Logger
}

// NewComposer wires a composer. A nil logger discards output.
func NewComposer(formatter DateFormatter, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Composer{formatter: formatter, logger: logger}
}

// Heading builds the text appended for an entry made at now: a blank line,
// the "## date time" heading and one blank line after it.
func (c *Composer) Heading(now time.Time, locale string) string {
	date := c.formatter.Date(now, locale)
	clock := c.formatter.Time(now, locale)
	return "\n" + headingMarker + date + " " + clock + "\n\n"
}

// CreateEntry appends a heading for the current time to the journal
// document, creating the document if needed, then opens it in a new view
// and moves the cursor past the end when that view is editable.
//
// If the journal path names a folder the call does nothing and returns a
// nil error with Outcome.Skipped set. Host failures are returned as-is.
func (c *Composer) CreateEntry(ctx context.Context, settings config.Settings, clock Clock, ws Workspace) (Outcome, error) {
	now := clock.Now()
	out := Outcome{
		Path:    settings.DocumentPath(),
		Heading: c.Heading(now, settings.Locale),
	}

	node, err := ws.Resolve(ctx, out.Path)
	if err != nil {
		return out, fmt.Errorf("resolve %s: %w", out.Path, err)
	}
	if node == nil {
		c.logger.Printf("creating %s", out.Path)
		created, err := ws.Create(ctx, out.Path, "")
		switch {
		case errors.Is(err, files.ErrExists):
			// Another trigger created it first.
			if node, err = ws.Resolve(ctx, out.Path); err != nil {
				return out, fmt.Errorf("resolve %s: %w", out.Path, err)
			}
		case err != nil:
			return out, fmt.Errorf("create %s: %w", out.Path, err)
		default:
			node = created
			out.Created = true
		}
	}

	doc, ok := node.(*files.Document)
	if !ok {
		c.logger.Printf("%s is not a document; skipping", out.Path)
		out.Skipped = true
		return out, nil
	}

	if err := ws.Append(ctx, doc, out.Heading); err != nil {
		return out, fmt.Errorf("append heading: %w", err)
	}
	c.logger.Printf("appended %q to %s", out.Heading, doc.Path)

	if err := ws.OpenInNewView(ctx, doc); err != nil {
		return out, fmt.Errorf("open %s: %w", doc.Path, err)
	}

	handle, ok := ws.ActiveEditor()
	if !ok || handle == nil {
		c.logger.Printf("no editable view for %s; cursor left alone", doc.Path)
		return out, nil
	}
	pos := Position{Line: handle.LastLine() + 1, Ch: 0}
	handle.SetCursor(pos.Line, pos.Ch)
	if r, ok := handle.(CursorReporter); ok {
		pos.Line, pos.Ch = r.Cursor()
	}
	out.Cursor = &pos
	return out, nil
}

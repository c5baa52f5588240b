package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jurnal/internal/journal"
)

type openMode string

const (
	openEditor  openMode = "editor"
	openPreview openMode = "preview"
	openNone    openMode = "none"
)

func resolveClock(atFlag string) (journal.Clock, error) {
	if atFlag == "" {
		return journal.SystemClock{}, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04", atFlag, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse --at: %w", err)
	}
	return journal.FixedClock{At: parsed}, nil
}

// resolveOpenMode picks the view for a new entry. Without a flag it opens
// the editor only when out is a terminal.
func resolveOpenMode(openFlag string, out io.Writer) (openMode, error) {
	if openFlag == "" {
		if isTerminal(out) {
			return openEditor, nil
		}
		return openNone, nil
	}

	switch mode := openMode(strings.ToLower(openFlag)); mode {
	case openEditor, openPreview, openNone:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --open %q (expected editor|preview|none)", openFlag)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printOutcome(cmd *cobra.Command, out journal.Outcome) {
	w := cmd.OutOrStdout()
	if out.Skipped {
		fmt.Fprintf(w, "Skipped: %s is a folder, not a document\n", out.Path)
		return
	}
	if out.Created {
		fmt.Fprintf(w, "Created %s\n", out.Path)
	}
	fmt.Fprintf(w, "Added %s to %s\n", strings.TrimSpace(out.Heading), out.Path)
	if out.Cursor != nil {
		fmt.Fprintf(w, "Cursor at line %d, column %d\n", out.Cursor.Line, out.Cursor.Ch)
	}
}

func printBlocks(cmd *cobra.Command, blocks []journal.Block) {
	w := cmd.OutOrStdout()
	for _, block := range blocks {
		fmt.Fprintf(w, "%4d  ## %s\n", block.Line, block.Heading)
		for _, line := range block.Body {
			fmt.Fprintf(w, "      %s\n", line)
		}
	}
}

package journal

// Block is one journal entry: a level-2 heading and the lines written under it.
type Block struct {
	// Heading is the heading text without the "## " marker.
	Heading string
	// Line is the 1-based line number of the heading in the document.
	Line int
	// Body holds the lines between this heading and the next, with
	// surrounding blank lines removed.
	Body []string
}

// Position is a zero-based line and column in a document.
type Position struct {
	Line int
	Ch   int
}

// Outcome describes what CreateEntry did.
type Outcome struct {
	// Path is the vault path of the journal document.
	Path string
	// Heading is the text appended to the document.
	Heading string
	// Created reports whether the document had to be created first.
	Created bool
	// Skipped reports that the path named something other than a document,
	// so nothing was appended or opened.
	Skipped bool
	// Cursor is where the cursor ended up, or nil when no editable view was
	// active after opening. Handles that do not implement CursorReporter
	// report the requested position.
	Cursor *Position
}

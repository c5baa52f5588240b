package journal

import "errors"

// ErrNoJournal is returned by the reader when the journal document does not exist yet.
var ErrNoJournal = errors.New("journal document not found")

// ErrNotDocument indicates the journal path names a folder rather than a document.
var ErrNotDocument = errors.New("journal path is not a document")

package journal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/faizmokh/jurnal/internal/config"
	"github.com/faizmokh/jurnal/internal/files"
)

// DocumentSource resolves and reads vault documents.
type DocumentSource interface {
	Resolve(ctx context.Context, path string) (files.Node, error)
	Read(ctx context.Context, doc *files.Document) (string, error)
}

// Reader loads entry blocks from the journal document.
type Reader struct {
	source DocumentSource
}

// NewReader wires a reader over the vault (or anything that can read documents).
func NewReader(source DocumentSource) *Reader {
	return &Reader{source: source}
}

// Blocks returns every block in the journal document in document order.
func (r *Reader) Blocks(ctx context.Context, settings config.Settings) ([]Block, error) {
	if r == nil || r.source == nil {
		return nil, errors.New("reader not initialized with document source")
	}

	path := settings.DocumentPath()
	node, err := r.source.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	var doc *files.Document
	switch n := node.(type) {
	case nil:
		return nil, fmt.Errorf("%w: %s", ErrNoJournal, path)
	case *files.Document:
		doc = n
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotDocument, path)
	}

	content, err := r.source.Read(ctx, doc)
	if err != nil {
		return nil, err
	}

	parser := NewParser(strings.NewReader(content))
	var blocks []Block
	for {
		block, err := parser.NextBlock()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return blocks, nil
			}
			return nil, err
		}
		blocks = append(blocks, *block)
	}
}

// Recent returns at most limit blocks from the end of the journal, oldest
// first. A limit of zero or less returns every block.
func (r *Reader) Recent(ctx context.Context, settings config.Settings, limit int) ([]Block, error) {
	blocks, err := r.Blocks(ctx, settings)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(blocks) > limit {
		blocks = blocks[len(blocks)-limit:]
	}
	return blocks, nil
}

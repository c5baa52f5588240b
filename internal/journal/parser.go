package journal

import (
	"bufio"
	"io"
	"strings"
)

const headingMarker = "## "

// Parser incrementally reads a journal document and emits blocks as they are discovered.
type Parser struct {
	r        io.Reader
	scanner  *bufio.Scanner
	pending  *Block
	line     int
	initDone bool
}

// NewParser returns a parser ready to tokenize Markdown from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: r}
}

// NextBlock streams the next parsed Block, returning io.EOF when the document is exhausted.
func (p *Parser) NextBlock() (*Block, error) {
	if !p.initDone {
		if p.r == nil {
			return nil, io.EOF
		}
		p.scanner = bufio.NewScanner(p.r)
		p.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		p.initDone = true
	}

	block := p.pending
	p.pending = nil

	if block == nil {
		var err error
		block, err = p.consumeUntilBlock()
		if err != nil {
			return nil, err
		}
		if block == nil {
			return nil, io.EOF
		}
	}

	for p.scanner.Scan() {
		p.line++
		line := strings.TrimRight(p.scanner.Text(), "\r")
		if heading, ok := parseHeading(line); ok {
			p.pending = &Block{Heading: heading, Line: p.line}
			block.Body = trimBlank(block.Body)
			return block, nil
		}
		block.Body = append(block.Body, line)
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}

	block.Body = trimBlank(block.Body)
	return block, nil
}

func (p *Parser) consumeUntilBlock() (*Block, error) {
	for p.scanner.Scan() {
		p.line++
		line := strings.TrimRight(p.scanner.Text(), "\r")
		if heading, ok := parseHeading(line); ok {
			return &Block{Heading: heading, Line: p.line}, nil
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func parseHeading(line string) (string, bool) {
	if !strings.HasPrefix(line, headingMarker) {
		return "", false
	}
	return strings.TrimSpace(line[len(headingMarker):]), true
}

func trimBlank(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if start == end {
		return nil
	}
	return lines[start:end]
}

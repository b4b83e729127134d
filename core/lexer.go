package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SkippedLine records input the lexer could not interpret as part of a tag.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// Lexer reads a DXF tag stream from an io.Reader.
//
// The lexer is recovery-oriented: lines that cannot be parsed as a group
// code are skipped and recorded rather than aborting the scan. A truncated
// final tag (group code with no value line) is reported as a skip and the
// stream ends cleanly.
type Lexer struct {
	scanner *bufio.Scanner
	line    int
	skipped []SkippedLine
}

// NewLexer creates a lexer for the given reader.
func NewLexer(r io.Reader) *Lexer {
	sc := bufio.NewScanner(r)
	// Large TEXT/MTEXT values can exceed the default token size.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Lexer{scanner: sc}
}

// Skipped returns the lines the lexer had to skip, in input order.
func (l *Lexer) Skipped() []SkippedLine {
	return l.skipped
}

// Next returns the next tag from the input. It returns io.EOF when the
// input is exhausted. Malformed input never produces an error; it is
// recorded via Skipped and lexing continues at the next valid tag.
func (l *Lexer) Next() (Tag, error) {
	for {
		codeLine, ok := l.nextLine()
		if !ok {
			return Tag{}, io.EOF
		}
		trimmed := strings.TrimSpace(codeLine)
		if trimmed == "" {
			continue
		}
		code, err := strconv.Atoi(trimmed)
		if err != nil {
			l.skip(l.line, codeLine, "expected group code")
			continue
		}
		codeAt := l.line

		valueLine, ok := l.nextLine()
		if !ok {
			l.skip(codeAt, codeLine, "group code at end of file without value")
			return Tag{}, io.EOF
		}
		return Tag{Code: code, Value: strings.TrimRight(valueLine, "\r"), Line: codeAt}, nil
	}
}

func (l *Lexer) nextLine() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	l.line++
	return l.scanner.Text(), true
}

func (l *Lexer) skip(line int, text, reason string) {
	l.skipped = append(l.skipped, SkippedLine{
		Line:   line,
		Text:   strings.TrimSpace(text),
		Reason: reason,
	})
}

// Err returns any underlying read error other than EOF.
func (l *Lexer) Err() error {
	if err := l.scanner.Err(); err != nil {
		return fmt.Errorf("read error at line %d: %w", l.line, err)
	}
	return nil
}

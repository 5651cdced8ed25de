package syntax

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// source is a character reader over a single line with position tracking.
type source struct {
	buf      string // line text, without the trailing newline
	filename string // source file name
	line     uint32 // 1-based line number
	col      uint32 // 1-based column of ch

	ch   rune // current character, -1 at end of line
	offs int  // byte offset of ch in buf
	w    int  // byte width of ch
}

// newSource returns a source positioned at the first character of text.
func newSource(filename string, line uint32, text string) source {
	s := source{
		buf:      text,
		filename: filename,
		line:     line,
	}
	s.read()
	s.col = 1
	return s
}

// nextch advances to the next character. At end of line ch is -1 and
// further calls are no-ops.
func (s *source) nextch() {
	if s.ch < 0 {
		return
	}
	s.offs += s.w
	s.col++
	s.read()
}

func (s *source) read() {
	if s.offs >= len(s.buf) {
		s.ch = -1
		s.w = 0
		return
	}
	r, w := utf8.DecodeRuneInString(s.buf[s.offs:])
	s.ch = r
	s.w = w
}

// skip advances n bytes. n must not cross a multi-byte character.
func (s *source) skip(n int) {
	for n > 0 && s.ch >= 0 {
		n -= s.w
		s.nextch()
	}
}

// peek returns the byte following ch, or 0 at end of line.
func (s *source) peek() byte {
	if i := s.offs + s.w; i < len(s.buf) {
		return s.buf[i]
	}
	return 0
}

// rest returns the text after ch.
func (s *source) rest() string {
	if s.ch < 0 {
		return ""
	}
	return s.buf[s.offs+s.w:]
}

// pos returns the position of ch.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// Character classification helpers. The language is ASCII.

func isAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentChar(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\v' || r == '\f'
}

// nextNonSpace returns the index of the first non-whitespace byte in
// text at or after i, or len(text).
func nextNonSpace(text string, i int) int {
	for i < len(text) && isWhitespace(rune(text[i])) {
		i++
	}
	return i
}

// ScanReader reads src line by line and scans each line with ScanLine.
// Only read errors are returned; lexical problems become _Unknown tokens.
func ScanReader(filename string, src io.Reader) ([]Token, error) {
	br := bufio.NewReader(src)
	var toks []Token
	var lineno uint32
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lineno++
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			toks = ScanLine(toks, line, lineno, filename)
		}
		if errors.Is(err, io.EOF) {
			return toks, nil
		}
		if err != nil {
			return toks, fmt.Errorf("reading %s: %w", filename, err)
		}
	}
}

// ScanFile opens path and scans its contents.
func ScanFile(path string) ([]Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ScanReader(path, f)
}

package syntax

import "strings"

// scanner performs lexical analysis of one source line.
type scanner struct {
	source // embedded character reader

	toks []Token // output sequence, appended to
}

// ScanLine scans one line of source text and appends its tokens to toks,
// returning the extended slice. A nil toks starts a new sequence.
// lineno is the 1-based line number and filename the originating file.
//
// ScanLine never fails: characters it does not recognize are kept as
// _Unknown tokens so the parser can report them with their position.
// An unterminated string literal or annotation ends the line silently.
func ScanLine(toks []Token, line string, lineno uint32, filename string) []Token {
	s := &scanner{
		source: newSource(filename, lineno, line),
		toks:   toks,
	}
	s.scan()
	return s.toks
}

func (s *scanner) emit(kind Kind, text string, pos Pos) {
	s.toks = append(s.toks, Token{Kind: kind, Text: text, Pos: pos})
}

// scan consumes the whole line.
func (s *scanner) scan() {
	for {
		for isWhitespace(s.ch) {
			s.nextch()
		}
		if s.ch < 0 {
			return
		}

		pos := s.pos()
		switch {
		case isAlpha(s.ch):
			s.scanWord(pos)

		case isDigit(s.ch):
			s.scanNumber(pos)

		case s.ch == '"':
			if !s.scanString(pos) {
				return
			}

		case s.ch == '#':
			if !s.scanHash(pos) {
				return
			}

		case s.ch == '/' && s.peek() == '/':
			// line comment
			return

		default:
			s.scanOperator(pos)
		}
	}
}

// scanWord scans an alphabetic run and classifies it as keyword,
// primitive type, pointer type, import clause, macro call or identifier.
func (s *scanner) scanWord(pos Pos) {
	start := s.offs
	for isIdentChar(s.ch) {
		s.nextch()
	}
	word := s.buf[start:s.offs]

	if kind := LookupKeyword(word); kind != _Name {
		s.emit(kind, word, pos)
		return
	}

	if IsPrimitive(word) {
		// i32* and i32 * both denote a pointer type.
		if i := nextNonSpace(s.buf, s.offs); i < len(s.buf) && s.buf[i] == '*' {
			s.skip(i + 1 - s.offs)
			s.emit(_PointerType, word+"*", pos)
			return
		}
		s.emit(_Type, word, pos)
		return
	}

	if word == "import" {
		s.scanImport(pos)
		return
	}

	// name! is a macro call; name!= is a comparison.
	if s.ch == '!' && s.peek() != '=' {
		s.nextch()
		s.emit(_Macro, word+"!", pos)
		return
	}

	s.emit(_Name, word, pos)
}

// scanImport captures the raw clause after the import keyword up to the
// next semicolon, which is left for the parser.
func (s *scanner) scanImport(pos Pos) {
	text := s.buf[s.offs:]
	n := strings.IndexByte(text, ';')
	if n < 0 {
		n = len(text)
	}
	s.skip(n)
	s.emit(_Import, strings.TrimSpace(text[:n]), pos)
}

// scanNumber scans an unsigned decimal integer.
func (s *scanner) scanNumber(pos Pos) {
	start := s.offs
	for isDigit(s.ch) {
		s.nextch()
	}
	s.emit(_Number, s.buf[start:s.offs], pos)
}

// scanString scans a double-quoted string. It reports false if the
// string is not terminated on this line.
func (s *scanner) scanString(pos Pos) bool {
	s.nextch() // skip opening "
	start := s.offs
	for s.ch != '"' {
		if s.ch < 0 {
			return false
		}
		s.nextch()
	}
	text := s.buf[start:s.offs]
	s.nextch() // skip closing "
	s.emit(_String, text, pos)
	return true
}

// scanHash scans either an annotation #[...] or the index sigil #.
// It reports false if an annotation is not closed on this line.
func (s *scanner) scanHash(pos Pos) bool {
	i := nextNonSpace(s.buf, s.offs+1)
	if i >= len(s.buf) || s.buf[i] != '[' {
		s.nextch()
		s.emit(_Hash, "#", pos)
		return true
	}

	s.skip(i + 1 - s.offs) // through [
	start := s.offs
	depth := 1
	for {
		switch s.ch {
		case -1:
			return false
		case '[':
			depth++
		case ']':
			depth--
		}
		if depth == 0 {
			break
		}
		s.nextch()
	}
	text := s.buf[start:s.offs]
	s.nextch() // skip ]
	s.emit(_Annotation, text, pos)
	return true
}

// scanOperator scans punctuation and operators. Anything else becomes
// an _Unknown token holding the character.
func (s *scanner) scanOperator(pos Pos) {
	ch := s.ch
	s.nextch()

	switch ch {
	case ':':
		if s.ch == ':' {
			s.nextch()
			s.emit(_ColonColon, "::", pos)
			return
		}
		s.emit(_Colon, ":", pos)
	case '=':
		if s.ch == '=' {
			s.nextch()
			s.emit(_Eql, "==", pos)
			return
		}
		s.emit(_Assign, "=", pos)
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.emit(_Neq, "!=", pos)
			return
		}
		s.emit(_Not, "!", pos)
	case '(':
		s.emit(_Lparen, "(", pos)
	case ')':
		s.emit(_Rparen, ")", pos)
	case '{':
		s.emit(_Lbrace, "{", pos)
	case '}':
		s.emit(_Rbrace, "}", pos)
	case '[':
		s.emit(_Lbrack, "[", pos)
	case ']':
		s.emit(_Rbrack, "]", pos)
	case ';':
		s.emit(_Semi, ";", pos)
	case ',':
		s.emit(_Comma, ",", pos)
	case '<':
		s.emit(_Lss, "<", pos)
	case '>':
		s.emit(_Gtr, ">", pos)
	case '.':
		s.emit(_Dot, ".", pos)
	case '+':
		s.emit(_Add, "+", pos)
	case '-':
		s.emit(_Sub, "-", pos)
	case '*':
		s.emit(_Mul, "*", pos)
	case '/':
		s.emit(_Div, "/", pos)
	default:
		s.emit(_Unknown, string(ch), pos)
	}
}

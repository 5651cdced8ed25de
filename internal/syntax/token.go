// Package syntax implements lexical and syntactic analysis for the ngc language.
package syntax

import "fmt"

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Special tokens
	_EOF     Kind = iota // end of token sequence, never produced by the scanner
	_Unknown             // unrecognized character

	// Names and literals
	_Name        // identifier: foo, bar, Rectangle
	_Number      // unsigned integer text: 0, 42
	_String      // string content without quotes
	_Type        // primitive type: i32, u8, bool
	_PointerType // primitive type followed by *: i32*

	// Verbatim captures
	_Import     // import clause, raw text up to ;
	_Annotation // #[...] contents
	_Macro      // macro call marker: name!

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Lbrack // [
	_Rbrack // ]
	_Semi   // ;
	_Comma  // ,
	_Dot    // .
	_Colon  // :

	// Compound punctuation
	_ColonColon // ::

	// Operators
	_Assign // =
	_Eql    // ==
	_Neq    // !=
	_Lss    // <
	_Gtr    // >
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /
	_Not    // !
	_Hash   // # (array index)

	// Keywords
	_Pub
	_Fn
	_If
	_Elif
	_Else
	_Return
	_Defer
	_Test

	kindCount
)

var kindNames = [...]string{
	_EOF:     "EOF",
	_Unknown: "UNKNOWN",

	_Name:        "NAME",
	_Number:      "NUMBER",
	_String:      "STRING",
	_Type:        "TYPE",
	_PointerType: "POINTER_TYPE",

	_Import:     "IMPORT",
	_Annotation: "ANNOTATION",
	_Macro:      "MACRO",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Lbrack: "[",
	_Rbrack: "]",
	_Semi:   ";",
	_Comma:  ",",
	_Dot:    ".",
	_Colon:  ":",

	_ColonColon: "::",

	_Assign: "=",
	_Eql:    "==",
	_Neq:    "!=",
	_Lss:    "<",
	_Gtr:    ">",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",
	_Not:    "!",
	_Hash:   "#",

	_Pub:    "pub",
	_Fn:     "fn",
	_If:     "if",
	_Elif:   "elif",
	_Else:   "else",
	_Return: "return",
	_Defer:  "defer",
	_Test:   "test",
}

// String returns the string representation of the token kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Precedence returns the binding power of k as a binary operator,
// or 0 if k is not a binary operator.
//
//	1: == != < >
//	2: + -
//	3: * /
func (k Kind) Precedence() int {
	switch k {
	case _Eql, _Neq, _Lss, _Gtr:
		return 1
	case _Add, _Sub:
		return 2
	case _Mul, _Div:
		return 3
	}
	return 0
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= _Pub && k <= _Test
}

// IsOperator reports whether k is an operator.
func (k Kind) IsOperator() bool {
	return k >= _Assign && k <= _Hash
}

// IsType reports whether k names a primitive or pointer type.
func (k Kind) IsType() bool {
	return k == _Type || k == _PointerType
}

// Token is one classified lexical unit with its source position.
// Tokens are values and are never modified after scanning.
type Token struct {
	Kind Kind
	Text string // literal text; string content without quotes
	Pos  Pos
}

// Line returns the 1-based line of the token.
func (t Token) Line() uint32 { return t.Pos.line }

// Col returns the 1-based column of the token.
func (t Token) Col() uint32 { return t.Pos.col }

// Filename returns the name of the file the token was scanned from.
func (t Token) Filename() string { return t.Pos.filename }

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

// keywords maps keyword strings to their token kind.
// "struct", "while" and "import" are not keywords; the parser and
// scanner recognize them by context.
var keywords = map[string]Kind{
	"pub":    _Pub,
	"fn":     _Fn,
	"if":     _If,
	"elif":   _Elif,
	"else":   _Else,
	"return": _Return,
	"defer":  _Defer,
	"test":   _Test,
}

// primitives is the set of built-in type names.
var primitives = map[string]bool{
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true,
	"f32": true, "f64": true,
	"bool": true,
}

// LookupKeyword returns the keyword kind for ident, or _Name.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Name
}

// IsPrimitive reports whether name is a built-in type name.
func IsPrimitive(name string) bool {
	return primitives[name]
}

package syntax

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tk is a token without its position.
type tk struct {
	Kind Kind
	Text string
}

func scanKinds(line string) []tk {
	var out []tk
	for _, tok := range ScanLine(nil, line, 1, "test.ngc") {
		out = append(out, tk{tok.Kind, tok.Text})
	}
	return out
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tk
	}{
		// Identifiers
		{"ident", "foo", []tk{{_Name, "foo"}}},
		{"ident_underscore", "foo_bar1", []tk{{_Name, "foo_bar1"}}},
		{"ident_caps", "Rectangle", []tk{{_Name, "Rectangle"}}},
		{"contextual_words", "struct while", []tk{{_Name, "struct"}, {_Name, "while"}}},

		// Literals
		{"number", "42", []tk{{_Number, "42"}}},
		{"number_zero", "0", []tk{{_Number, "0"}}},
		{"string", `"hello world"`, []tk{{_String, "hello world"}}},
		{"string_empty", `""`, []tk{{_String, ""}}},
		{"string_utf8", `"héllo"`, []tk{{_String, "héllo"}}},

		// Types
		{"primitive", "i32", []tk{{_Type, "i32"}}},
		{"primitive_bool", "bool", []tk{{_Type, "bool"}}},
		{"pointer", "i32* p;", []tk{{_PointerType, "i32*"}, {_Name, "p"}, {_Semi, ";"}}},
		{"pointer_spaced", "u8 * p", []tk{{_PointerType, "u8*"}, {_Name, "p"}}},
		{"mul_not_pointer", "x * y", []tk{{_Name, "x"}, {_Mul, "*"}, {_Name, "y"}}},
		{"named_type", "Point p", []tk{{_Name, "Point"}, {_Name, "p"}}},

		// Macros
		{"macro", "foo!", []tk{{_Macro, "foo!"}}},
		{"macro_call", "print!(x)", []tk{{_Macro, "print!"}, {_Lparen, "("}, {_Name, "x"}, {_Rparen, ")"}}},
		{"ident_space_paren", "foo ()", []tk{{_Name, "foo"}, {_Lparen, "("}, {_Rparen, ")"}}},
		{"ident_neq", "a!=b", []tk{{_Name, "a"}, {_Neq, "!="}, {_Name, "b"}}},
		{"not", "!x", []tk{{_Not, "!"}, {_Name, "x"}}},

		// Punctuation and operators
		{"path", "std::io", []tk{{_Name, "std"}, {_ColonColon, "::"}, {_Name, "io"}}},
		{"colon", "a:b", []tk{{_Name, "a"}, {_Colon, ":"}, {_Name, "b"}}},
		{"eql", "x == 1", []tk{{_Name, "x"}, {_Eql, "=="}, {_Number, "1"}}},
		{"assign", "x = 1", []tk{{_Name, "x"}, {_Assign, "="}, {_Number, "1"}}},
		{"singletons", "{}[](),.<>", []tk{
			{_Lbrace, "{"}, {_Rbrace, "}"}, {_Lbrack, "["}, {_Rbrack, "]"},
			{_Lparen, "("}, {_Rparen, ")"}, {_Comma, ","}, {_Dot, "."},
			{_Lss, "<"}, {_Gtr, ">"},
		}},
		{"arith", "a+b-c/d", []tk{
			{_Name, "a"}, {_Add, "+"}, {_Name, "b"}, {_Sub, "-"},
			{_Name, "c"}, {_Div, "/"}, {_Name, "d"},
		}},

		// Array indexing
		{"index", "arr#0#1", []tk{{_Name, "arr"}, {_Hash, "#"}, {_Number, "0"}, {_Hash, "#"}, {_Number, "1"}}},

		// Annotations
		{"annotation", "#[inline]", []tk{{_Annotation, "inline"}}},
		{"annotation_nested", "# [a[b]]", []tk{{_Annotation, "a[b]"}}},
		{"annotation_then_fn", "#[test] fn", []tk{{_Annotation, "test"}, {_Fn, "fn"}}},

		// Imports
		{"import", "import std::io;", []tk{{_Import, "std::io"}, {_Semi, ";"}}},
		{"import_no_semi", "import  foo bar ", []tk{{_Import, "foo bar"}}},

		// Keywords
		{"keywords", "pub fn if elif else return defer test", []tk{
			{_Pub, "pub"}, {_Fn, "fn"}, {_If, "if"}, {_Elif, "elif"},
			{_Else, "else"}, {_Return, "return"}, {_Defer, "defer"}, {_Test, "test"},
		}},

		// Comments and line ends
		{"comment", "x; // trailing", []tk{{_Name, "x"}, {_Semi, ";"}}},
		{"comment_only", "// nothing here", nil},
		{"empty", "", nil},
		{"blank", " \t ", nil},
		{"unterminated_string", `x "abc`, []tk{{_Name, "x"}}},
		{"unterminated_annotation", "#[abc", nil},

		// Unknown characters
		{"unknown", "x $ y", []tk{{_Name, "x"}, {_Unknown, "$"}, {_Name, "y"}}},
		{"leading_underscore", "_x", []tk{{_Unknown, "_"}, {_Name, "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanKinds(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ScanLine(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestScanPositions(t *testing.T) {
	got := ScanLine(nil, "fn  main :: i32* {", 3, "pos.ngc")
	want := []Token{
		{Kind: _Fn, Text: "fn", Pos: NewPos("pos.ngc", 3, 1)},
		{Kind: _Name, Text: "main", Pos: NewPos("pos.ngc", 3, 5)},
		{Kind: _ColonColon, Text: "::", Pos: NewPos("pos.ngc", 3, 10)},
		{Kind: _PointerType, Text: "i32*", Pos: NewPos("pos.ngc", 3, 13)},
		{Kind: _Lbrace, Text: "{", Pos: NewPos("pos.ngc", 3, 18)},
	}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Pos{})); diff != "" {
		t.Errorf("ScanLine mismatch (-want +got):\n%s", diff)
	}
}

// span returns the source text a token was scanned from, minus any
// interior whitespace.
func span(tok Token) string {
	switch tok.Kind {
	case _String:
		return `"` + tok.Text + `"`
	case _Annotation:
		return "#[" + tok.Text + "]"
	}
	return tok.Text
}

func TestScanPartition(t *testing.T) {
	lines := []string{
		"fn add<i32 a, i32 b> :: i32 { return a + b; }",
		`i32* p = foo!(x, "s t");`,
		"#[inline] pub fn f :: u8 { arr#0#1 = std::io.read(); } // done",
		"if (a != b) { x = -y * (z / 2); } elif (!c) { } else { }",
		"struct Point { i32 x; [u8] data; }",
	}

	for _, line := range lines {
		toks := ScanLine(nil, line, 1, "p.ngc")

		var b strings.Builder
		for _, tok := range toks {
			s := span(tok)
			b.WriteString(s)
			if rest := line[tok.Col()-1:]; !strings.HasPrefix(rest, s) {
				t.Errorf("%q: token %s does not start at its column", line, tok)
			}
		}

		src := line
		if i := strings.Index(src, "//"); i >= 0 {
			src = src[:i]
		}
		want := strings.Join(strings.Fields(removeStrings(src)), "")
		if got := removeStrings(b.String()); got != want {
			t.Errorf("%q: tokens reconstruct %q, want %q", line, got, want)
		}
	}
}

// removeStrings blanks out the contents of string literals so that the
// whitespace they hold does not take part in comparisons.
func removeStrings(s string) string {
	var b strings.Builder
	in := false
	for _, r := range s {
		if r == '"' {
			in = !in
			b.WriteRune(r)
			continue
		}
		if !in {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestScanLineAppends(t *testing.T) {
	var toks []Token
	toks = ScanLine(toks, "fn main :: i32 {", 1, "m.ngc")
	n := len(toks)
	toks = ScanLine(toks, "  return 0;", 2, "m.ngc")
	toks = ScanLine(toks, "}", 3, "m.ngc")

	if len(toks) != n+4 {
		t.Fatalf("got %d tokens, want %d", len(toks), n+4)
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Pos.Before(toks[i-1].Pos) {
			t.Errorf("token %s comes before %s", toks[i], toks[i-1])
		}
	}
	if last := toks[len(toks)-1]; last.Kind != _Rbrace || last.Line() != 3 {
		t.Errorf("last token = %s, want } on line 3", last)
	}
}

func TestScanPointerDisambiguation(t *testing.T) {
	toks := ScanLine(nil, "i32* p;", 1, "")
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3: %v", len(toks), toks)
	}
	if toks[0].Kind != _PointerType || toks[0].Text != "i32*" {
		t.Errorf("first token = %s, want POINTER_TYPE \"i32*\"", toks[0])
	}
	if toks[1].Kind != _Name || toks[1].Text != "p" {
		t.Errorf("second token = %s, want NAME \"p\"", toks[1])
	}
	for _, tok := range toks {
		if tok.Kind.IsOperator() {
			t.Errorf("unexpected operator token %s", tok)
		}
	}
}

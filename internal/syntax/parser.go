package syntax

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
	EOF bool // the input ended before the construct was complete
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrorList is the list of syntax errors collected by one parse,
// in the order they were reported.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns nil for an empty list, the single error for a list of
// one, and the list itself otherwise.
func (l ErrorList) Err() error {
	switch len(l) {
	case 0:
		return nil
	case 1:
		return l[0]
	}
	return l
}

// IsIncomplete reports whether err was caused by input that ended in the
// middle of a construct, i.e. more input could make it parse.
func IsIncomplete(err error) bool {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.EOF
	}
	return false
}

// Option configures a Parser.
type Option func(*Parser)

// MaxErrors sets how many errors are collected before parsing stops.
// The default of 1 stops at the first error. Larger values enable
// resynchronization at statement boundaries.
func MaxErrors(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxErrors = n
		}
	}
}

// ErrorHandler installs a callback invoked for each reported error.
func ErrorHandler(errh func(err *SyntaxError)) Option {
	return func(p *Parser) {
		p.errh = errh
	}
}

// Parser performs syntax analysis over a scanned token sequence.
type Parser struct {
	toks []Token
	cur  int   // index of tok in toks
	tok  Token // current token, or an _EOF sentinel past the end
	eof  Token // sentinel returned past the end

	// Error handling
	errh      func(err *SyntaxError)
	maxErrors int
	errs      ErrorList
	abort     bool // set when the error limit is reached

	annots []string // annotations waiting for the next definition
}

// NewParser creates a Parser over toks. The tokens are only read.
func NewParser(toks []Token, opts ...Option) *Parser {
	p := &Parser{
		toks:      toks,
		maxErrors: 1,
	}
	p.eof.Kind = _EOF
	if n := len(toks); n > 0 {
		last := toks[n-1]
		p.eof.Pos = last.Pos.shift(len(last.Text))
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cur = -1
	p.next() // prime the parser with the first token
	return p
}

// Parse parses a complete token sequence.
func Parse(toks []Token, opts ...Option) (*Block, error) {
	return NewParser(toks, opts...).Parse()
}

// ----------------------------------------------------------------------------
// Token navigation

// next advances to the next token.
func (p *Parser) next() {
	if p.cur < len(p.toks) {
		p.cur++
	}
	p.tok = p.peek(0)
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) Token {
	if i := p.cur + n; i >= 0 && i < len(p.toks) {
		return p.toks[i]
	}
	return p.eof
}

// got reports whether the current token is of the given kind.
// If so, it consumes the token and returns true.
func (p *Parser) got(kind Kind) bool {
	if p.tok.Kind == kind {
		p.next()
		return true
	}
	return false
}

// want consumes the current token if it is of the given kind.
// Otherwise, reports an error.
func (p *Parser) want(kind Kind) {
	if !p.got(kind) {
		p.unexpected(kind.String())
	}
}

// isWord reports whether the current token is the identifier w.
// Used for contextual keywords such as struct and while.
func (p *Parser) isWord(w string) bool {
	return p.tok.Kind == _Name && p.tok.Text == w
}

// ----------------------------------------------------------------------------
// Error handling

// describe returns a human readable description of tok.
func describe(tok Token) string {
	switch tok.Kind {
	case _EOF:
		return "end of input"
	case _Name:
		return "identifier " + tok.Text
	case _Number, _Type, _PointerType, _Macro:
		return strings.ToLower(tok.Kind.String()) + " " + tok.Text
	case _String:
		return fmt.Sprintf("string %q", tok.Text)
	case _Import:
		return "import clause"
	case _Annotation:
		return "annotation #[" + tok.Text + "]"
	case _Unknown:
		return fmt.Sprintf("unknown character %q", tok.Text)
	}
	return fmt.Sprintf("%q", tok.Kind.String())
}

// unexpected reports that the current token is not what was expected
// and skips to the next synchronization point.
func (p *Parser) unexpected(what string) {
	if p.tok.Kind == _EOF {
		p.errorAt(p.tok.Pos, true, "unexpected end of input, expected "+what)
	} else {
		p.errorAt(p.tok.Pos, false, "expected "+what+", found "+describe(p.tok))
	}
	p.advance()
}

// errorf reports an error at the current token and skips to the next
// synchronization point.
func (p *Parser) errorf(format string, args ...any) {
	p.errorAt(p.tok.Pos, p.tok.Kind == _EOF, fmt.Sprintf(format, args...))
	p.advance()
}

// errorAt records an error. Only the first error on a line is kept.
// Once the error limit is reached the parser jumps to the end of the
// input so every production unwinds quickly.
func (p *Parser) errorAt(pos Pos, eof bool, msg string) {
	if p.abort {
		return
	}
	if n := len(p.errs); n > 0 {
		last := p.errs[n-1].Pos
		if last.Filename() == pos.Filename() && last.Line() == pos.Line() {
			return
		}
	}
	err := &SyntaxError{Pos: pos, Msg: msg, EOF: eof}
	p.errs = append(p.errs, err)
	if p.errh != nil {
		p.errh(err)
	}
	if len(p.errs) >= p.maxErrors {
		p.abort = true
		p.cur = len(p.toks)
		p.tok = p.eof
	}
}

// advance skips tokens until it finds a synchronization point.
// The synchronization token itself is left for the caller.
func (p *Parser) advance() {
	sync := map[Kind]bool{
		_Semi:   true, // statement terminator
		_Rbrace: true, // block end
		_Rparen: true, // argument or condition end
		_Rbrack: true, // array end
		_Pub:    true,
		_Fn:     true,
		_If:     true,
		_Return: true,
		_Defer:  true,
	}

	for p.tok.Kind != _EOF && !sync[p.tok.Kind] {
		p.next()
	}
}

// progress skips the current token if nothing was consumed since start,
// so that loops over statements always terminate.
func (p *Parser) progress(start int) {
	if p.cur == start && p.tok.Kind != _EOF {
		p.next()
	}
}

// Errors returns the errors reported so far.
func (p *Parser) Errors() ErrorList {
	return p.errs
}

// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses top-level statements until the tokens are exhausted.
// It returns the root block, or nil if no statement was accepted.
// On error no tree is returned.
func (p *Parser) Parse() (*Block, error) {
	root := &Block{}
	root.pos = p.tok.Pos

	for !p.abort && p.tok.Kind != _EOF {
		start := p.cur
		if d := p.topDecl(); d != nil {
			root.Stmts = append(root.Stmts, d)
		}
		p.progress(start)
	}

	if err := p.errs.Err(); err != nil {
		return nil, err
	}
	if len(root.Stmts) == 0 {
		return nil, nil
	}
	return root, nil
}

// takeAnnotations returns and clears the pending annotations.
func (p *Parser) takeAnnotations() []string {
	a := p.annots
	p.annots = nil
	return a
}

// ----------------------------------------------------------------------------
// Top-level declarations

// topDecl parses one top-level statement:
// an import clause, an annotation, or pub? fn / pub? struct.
func (p *Parser) topDecl() Decl {
	pos := p.tok.Pos

	switch p.tok.Kind {
	case _Annotation:
		p.annots = append(p.annots, p.tok.Text)
		p.next()
		return nil

	case _Import:
		d := &ImportDecl{Path: p.tok.Text}
		d.pos = pos
		p.next()
		p.want(_Semi)
		return d

	case _Semi:
		p.next()
		return nil
	}

	pub := p.got(_Pub)
	switch {
	case p.tok.Kind == _Fn:
		return p.funcDecl(pos, pub)
	case p.isWord("struct"):
		return p.structDecl(pos, pub)
	case pub:
		p.unexpected("fn or struct after pub")
	default:
		p.errorf("unsupported top-level statement: %s", describe(p.tok))
	}
	return nil
}

// funcDecl parses: fn Name <T1 p1, T2 p2> :: Result { Body }
func (p *Parser) funcDecl(pos Pos, pub bool) *FuncDecl {
	d := &FuncDecl{Pub: pub, Annotations: p.takeAnnotations()}
	d.pos = pos

	p.want(_Fn)
	d.Name = p.name()

	if p.tok.Kind == _Lss {
		d.Params = p.paramList()
	}

	p.want(_ColonColon)
	d.Result = p.typ()
	d.Body = p.block()

	return d
}

// paramList parses <T1 p1, T2 p2, ...>. Types come before names.
func (p *Parser) paramList() []*Field {
	p.want(_Lss)
	if p.got(_Gtr) {
		return nil
	}

	var params []*Field
	for !p.abort {
		params = append(params, p.field())
		if p.got(_Comma) {
			continue
		}
		p.want(_Gtr)
		break
	}
	return params
}

// structDecl parses: struct Name { T1 f1; T2 f2; }
func (p *Parser) structDecl(pos Pos, pub bool) *StructDecl {
	d := &StructDecl{Pub: pub, Annotations: p.takeAnnotations()}
	d.pos = pos

	p.next() // struct
	d.Name = p.name()
	p.want(_Lbrace)

	for p.tok.Kind != _Rbrace && p.tok.Kind != _EOF {
		start := p.cur
		d.Fields = append(d.Fields, p.field())
		p.want(_Semi)
		p.progress(start)
	}

	p.want(_Rbrace)
	return d
}

// field parses a type followed by a name.
func (p *Parser) field() *Field {
	f := &Field{}
	f.pos = p.tok.Pos
	f.Type = p.typ()
	f.Name = p.name()
	return f
}

// ----------------------------------------------------------------------------
// Helper methods

// name parses an identifier and returns its text.
func (p *Parser) name() string {
	if p.tok.Kind != _Name {
		p.unexpected("identifier")
		return "_"
	}
	name := p.tok.Text
	p.next()
	return name
}

// typ parses a type: a primitive, a pointer type, a named type or [T].
func (p *Parser) typ() string {
	switch p.tok.Kind {
	case _Type, _PointerType, _Name:
		t := p.tok.Text
		p.next()
		return t

	case _Lbrack:
		p.next()
		elem := p.typ()
		p.want(_Rbrack)
		return "[" + elem + "]"
	}

	p.unexpected("type")
	return "_"
}

// ----------------------------------------------------------------------------
// Statements

// block parses { stmts... }
func (p *Parser) block() *Block {
	b := &Block{}
	b.pos = p.tok.Pos

	p.want(_Lbrace)

	for p.tok.Kind != _Rbrace && p.tok.Kind != _EOF {
		start := p.cur
		if s := p.stmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
		p.progress(start)
	}

	b.Rbrace = p.tok.Pos
	p.want(_Rbrace)
	p.annots = nil

	return b
}

// stmt parses one statement of a function body. It returns nil for
// tokens that produce no node (annotations, empty statements).
func (p *Parser) stmt() Stmt {
	pos := p.tok.Pos

	if p.tok.Kind == _Annotation {
		p.annots = append(p.annots, p.tok.Text)
		p.next()
		return nil
	}
	annots := p.takeAnnotations()

	switch p.tok.Kind {
	case _Semi:
		p.next()
		return nil

	case _Lbrace:
		return p.block()

	case _If:
		return p.ifStmt()

	case _Elif, _Else:
		p.errorf("%s without if", p.tok.Kind)
		return nil

	case _Return:
		s := &ReturnStmt{}
		s.pos = pos
		p.next()
		s.Result = p.expr(stmtEnd)
		p.want(_Semi)
		return s

	case _Defer:
		s := &DeferStmt{}
		s.pos = pos
		p.next()
		s.X = p.expr(stmtEnd)
		p.want(_Semi)
		return s

	case _Type, _PointerType:
		typ := p.tok.Text
		p.next()
		return p.definition(pos, typ, annots)

	case _Lbrack:
		return p.arrayDef(pos, annots)

	case _Name:
		return p.nameStmt(pos, annots)

	case _Macro:
		return p.exprStmt(pos)
	}

	p.errorf("unexpected %s in function body", describe(p.tok))
	return nil
}

// definition parses the rest of a variable definition after its type:
// Name = Value; or Name;
func (p *Parser) definition(pos Pos, typ string, annots []string) Stmt {
	name := p.name()

	switch p.tok.Kind {
	case _Assign:
		p.next()
		s := &VarDef{Name: name, Type: typ, Annotations: annots}
		s.pos = pos
		s.Value = p.expr(stmtEnd)
		p.want(_Semi)
		return s

	case _Semi:
		p.next()
		s := &TypeDecl{Name: name, Type: typ, Annotations: annots}
		s.pos = pos
		return s
	}

	p.unexpected("= or ;")
	return nil
}

// arrayDef parses [Elem] Name = Value; or [Elem] Name;
func (p *Parser) arrayDef(pos Pos, annots []string) Stmt {
	p.want(_Lbrack)
	elem := p.typ()
	p.want(_Rbrack)
	name := p.name()

	switch p.tok.Kind {
	case _Assign:
		p.next()
		s := &ArrayDef{Name: name, Elem: elem, Annotations: annots}
		s.pos = pos
		s.Value = p.expr(stmtEnd)
		p.want(_Semi)
		return s

	case _Semi:
		p.next()
		s := &TypeDecl{Name: name, Type: "[" + elem + "]", Annotations: annots}
		s.pos = pos
		return s
	}

	p.unexpected("= or ;")
	return nil
}

// nameStmt parses a statement starting with an identifier, using the
// following token to tell definitions, assignments and calls apart.
func (p *Parser) nameStmt(pos Pos, annots []string) Stmt {
	next := p.peek(1)

	switch {
	case p.isWord("while") && next.Kind == _Lparen:
		return p.whileStmt()

	case next.Kind == _Name:
		// Point p = ...; a definition with a named type
		typ := p.tok.Text
		p.next()
		return p.definition(pos, typ, annots)

	case next.Kind == _Assign:
		s := &Assign{Name: p.tok.Text}
		s.pos = pos
		p.next() // name
		p.next() // =
		s.Value = p.expr(stmtEnd)
		p.want(_Semi)
		return s

	case next.Kind == _Hash:
		return p.arrayAssign(pos)

	case next.Kind == _Lparen, next.Kind == _Dot, next.Kind == _ColonColon:
		return p.exprStmt(pos)
	}

	p.next()
	p.unexpected("definition, assignment or call after identifier")
	return nil
}

// arrayAssign parses Name#i#j = Value;
func (p *Parser) arrayAssign(pos Pos) Stmt {
	target := p.chain()
	idx, ok := target.(*Index)
	for x := target; ok && x != nil; x = child(x) {
		_, ok = x.(*Index)
	}
	if !ok {
		p.errorAt(target.Pos(), false, "cannot assign to this expression")
		p.advance()
		return nil
	}

	s := &ArrayAssign{Target: idx}
	s.pos = pos
	p.want(_Assign)
	s.Value = p.expr(stmtEnd)
	p.want(_Semi)
	return s
}

// exprStmt parses a call or macro expression used as a statement.
func (p *Parser) exprStmt(pos Pos) Stmt {
	s := &ExprStmt{}
	s.pos = pos
	s.X = p.expr(stmtEnd)
	p.want(_Semi)
	return s
}

// ifStmt parses: if (Cond) { Then } [elif (Cond) { ... }]... [else { ... }]
func (p *Parser) ifStmt() Stmt {
	s := &IfStmt{}
	s.pos = p.tok.Pos

	p.next() // if or elif
	s.Cond = p.cond()
	s.Then = p.block()

	switch p.tok.Kind {
	case _Elif:
		s.Else = p.ifStmt()
	case _Else:
		p.next()
		s.Else = p.block()
	}

	return s
}

// whileStmt parses: while (Cond) { Body }
func (p *Parser) whileStmt() Stmt {
	s := &WhileStmt{}
	s.pos = p.tok.Pos

	p.next() // while
	s.Cond = p.cond()
	s.Body = p.block()
	return s
}

// cond parses a parenthesized condition.
func (p *Parser) cond() Expr {
	p.want(_Lparen)
	x := p.expr(condEnd)
	p.want(_Rparen)
	return x
}

// ----------------------------------------------------------------------------
// Expressions

// Tokens that may end an expression in each parsing context.
// The terminator itself is left for the caller.
var (
	stmtEnd = []Kind{_Semi}
	argEnd  = []Kind{_Comma, _Rparen}
	condEnd = []Kind{_Rparen}
)

// expr parses an expression that must be followed by one of end.
func (p *Parser) expr(end []Kind) Expr {
	nerrs := len(p.errs)
	x := p.binaryExpr(0)
	if !p.abort && len(p.errs) == nerrs && !slices.Contains(end, p.tok.Kind) {
		if p.tok.Kind == _EOF {
			p.unexpected(kindList(end))
		} else {
			p.errorf("unexpected %s in expression", describe(p.tok))
		}
	}
	return x
}

// kindList describes a set of alternative tokens: ", or )".
func kindList(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Operators of equal precedence associate to the left.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()

	for {
		oprec := p.tok.Kind.Precedence()
		if oprec <= prec {
			return x
		}

		// Binary expression position starts at the left operand.
		op := &Binary{Op: p.tok.Kind, X: x}
		op.pos = x.Pos()

		p.next() // consume operator
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

// unaryExpr parses -X and !X.
func (p *Parser) unaryExpr() Expr {
	switch p.tok.Kind {
	case _Sub, _Not:
		op := &Unary{Op: p.tok.Kind}
		op.pos = p.tok.Pos
		p.next()
		op.X = p.unaryExpr()
		return op
	}
	return p.operand()
}

// operand parses the base of an expression.
func (p *Parser) operand() Expr {
	pos := p.tok.Pos

	switch p.tok.Kind {
	case _Name, _Macro:
		return p.chain()

	case _Number:
		return p.lit()

	case _String:
		return p.lit()

	case _Lbrack:
		return p.arrayLit()

	case _Lparen:
		p.next()
		x := &Paren{X: p.expr(condEnd)}
		x.pos = pos
		p.want(_Rparen)
		return x

	case _Type, _PointerType:
		if p.peek(1).Kind == _Lparen {
			c := &Cast{Type: p.tok.Text}
			c.pos = pos
			p.next()
			c.X = p.cond()
			return c
		}
	}

	p.unexpected("expression")
	r := &Ref{Name: "_"} // error recovery
	r.pos = pos
	return r
}

// lit parses a number or string literal.
func (p *Parser) lit() *Lit {
	l := &Lit{Value: p.tok.Text}
	l.pos = p.tok.Pos
	switch p.tok.Kind {
	case _Number:
		l.Kind = IntLit
	case _String:
		l.Kind = StringLit
	default:
		p.unexpected("literal")
		return l
	}
	p.next()
	return l
}

// arrayLit parses [lit, lit, ...]
func (p *Parser) arrayLit() Expr {
	a := &ArrayLit{}
	a.pos = p.tok.Pos

	p.want(_Lbrack)
	if p.got(_Rbrack) {
		return a
	}

	for !p.abort {
		a.Elems = append(a.Elems, p.lit())
		if p.got(_Comma) {
			continue
		}
		p.want(_Rbrack)
		break
	}
	return a
}

// chainBuilder appends steps to a reference chain. It keeps the open
// tail so that each step is attached in constant time.
type chainBuilder struct {
	head Expr
	tail Expr
}

func (c *chainBuilder) add(x Expr) {
	if c.head == nil {
		c.head, c.tail = x, x
		return
	}
	if !setChild(c.tail, x) {
		panic(fmt.Sprintf("syntax: cannot continue chain at %T", c.tail))
	}
	c.tail = x
}

// chain parses a reference chain: a named head followed by any number
// of .member, ::name, (args) and #index steps.
func (p *Parser) chain() Expr {
	var c chainBuilder
	c.add(p.segment())

	for {
		switch p.tok.Kind {
		case _Dot:
			p.next()
			m := &StructAccess{}
			m.pos = p.tok.Pos
			m.Member = p.name()
			c.add(m)

		case _ColonColon:
			p.next()
			c.add(p.segment())

		case _Lparen:
			c.add(p.call("", p.tok.Pos))

		case _Hash:
			c.add(p.index("", p.tok.Pos))

		default:
			return c.head
		}
	}
}

// segment parses one named step: Name, Name(args), Name#index or Name!(args).
func (p *Parser) segment() Expr {
	pos := p.tok.Pos

	if p.tok.Kind == _Macro {
		name := strings.TrimSuffix(p.tok.Text, "!")
		p.next()
		if p.tok.Kind != _Lparen {
			p.unexpected("( after macro " + name + "!")
		}
		call := p.call(name, pos)
		call.Macro = true
		return call
	}

	name := p.name()
	switch p.tok.Kind {
	case _Lparen:
		return p.call(name, pos)
	case _Hash:
		return p.index(name, pos)
	}

	r := &Ref{Name: name}
	r.pos = pos
	return r
}

// call parses (arg, arg, ...) for a call named name.
func (p *Parser) call(name string, pos Pos) *Call {
	c := &Call{Name: name}
	c.pos = pos

	p.want(_Lparen)
	if p.got(_Rparen) {
		return c
	}

	for !p.abort {
		c.Args = append(c.Args, p.expr(argEnd))
		if p.got(_Comma) {
			continue
		}
		p.want(_Rparen)
		break
	}
	return c
}

// index parses #i for an array access named name. The index is a
// number, a plain identifier, or a parenthesized expression.
func (p *Parser) index(name string, pos Pos) *Index {
	x := &Index{Name: name}
	x.pos = pos

	p.want(_Hash)
	switch p.tok.Kind {
	case _Number:
		x.Index = p.lit()
	case _Name:
		r := &Ref{Name: p.tok.Text}
		r.pos = p.tok.Pos
		p.next()
		x.Index = r
	case _Lparen:
		ppos := p.tok.Pos
		p.next()
		paren := &Paren{X: p.expr(condEnd)}
		paren.pos = ppos
		p.want(_Rparen)
		x.Index = paren
	default:
		p.unexpected("index")
	}
	return x
}

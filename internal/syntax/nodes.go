package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 3 main classes of nodes: Expressions, Statements, and Declarations.
// All nodes implement the Node interface. Every node exclusively owns its
// children: the tree has no shared or back references.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first token belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// Decl is the interface for top-level declarations. Declarations are
// also statements so they can live in the root Block.
type Decl interface {
	Stmt
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// decl is embedded in all declaration nodes.
type decl struct{ stmt }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Declarations

// ImportDecl is a raw import clause: import std::io;
// The path is kept verbatim; it is not resolved.
type ImportDecl struct {
	decl
	Path string
}

// FuncDecl is a function definition:
// pub fn Name <T1 p1, T2 p2> :: Result { Body }
type FuncDecl struct {
	decl
	Name        string
	Pub         bool
	Params      []*Field
	Result      string // return type
	Body        *Block
	Annotations []string // #[...] contents preceding the definition
}

// StructDecl is a struct definition: pub struct Name { T1 f1; T2 f2; }
type StructDecl struct {
	decl
	Name        string
	Pub         bool
	Fields      []*Field
	Annotations []string
}

// Field is a name/type pair of a parameter list or struct body.
type Field struct {
	node
	Name string
	Type string
}

// ----------------------------------------------------------------------------
// Statements

// Block is an ordered sequence of statements forming one scope.
// The root of a parsed file is a Block of declarations.
type Block struct {
	stmt
	Stmts  []Stmt
	Rbrace Pos // position of closing brace (invalid for the root)
}

// VarDef defines a variable with an initializer: Type Name = Value;
type VarDef struct {
	stmt
	Name        string
	Type        string
	Value       Expr
	Annotations []string
}

// ArrayDef defines an array variable with an initializer: [Elem] Name = Value;
type ArrayDef struct {
	stmt
	Name        string
	Elem        string // element type
	Value       Expr
	Annotations []string
}

// TypeDecl declares a variable without initializer: Type Name;
type TypeDecl struct {
	stmt
	Name        string
	Type        string // "[T]" for arrays
	Annotations []string
}

// Assign assigns to a variable: Name = Value;
type Assign struct {
	stmt
	Name  string
	Value Expr
}

// ArrayAssign assigns to an array element: Name#i#j = Value;
type ArrayAssign struct {
	stmt
	Target *Index
	Value  Expr
}

// IfStmt is if (Cond) { Then } with optional elif and else branches.
type IfStmt struct {
	stmt
	Cond Expr
	Then *Block
	Else Stmt // nil, *IfStmt (elif), or *Block (else)
}

// WhileStmt is while (Cond) { Body }.
type WhileStmt struct {
	stmt
	Cond Expr
	Body *Block
}

// ReturnStmt is return Result;
type ReturnStmt struct {
	stmt
	Result Expr
}

// DeferStmt is defer X;
type DeferStmt struct {
	stmt
	X Expr
}

// ExprStmt is an expression evaluated for its effect, such as a call.
type ExprStmt struct {
	stmt
	X Expr
}

// ----------------------------------------------------------------------------
// Expressions

// LitKind represents the kind of a literal.
type LitKind uint8

const (
	IntLit    LitKind = iota // 42
	StringLit                // "hello"
)

func (k LitKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case StringLit:
		return "string"
	}
	return "LitKind(?)"
}

// Lit is a number or string literal.
type Lit struct {
	expr
	Kind  LitKind
	Value string
}

// ArrayLit is a literal array: [v1, v2, ...]
type ArrayLit struct {
	expr
	Elems []*Lit
}

// Reference chains
//
// A reference chain is rooted at one named entity and continues through
// the Child field of Ref, StructAccess, Call and Index. The chain never
// branches; exactly one node, the tail, has a nil Child.
//
//	a.b        Ref{a} -> StructAccess{b}
//	std::io    Ref{std} -> Ref{io}
//	f(x).y     Call{f} -> StructAccess{y}
//	arr#0#1    Index{arr, 0} -> Index{"", 1}
//
// A name directly followed by ( or # becomes a named Call or Index.
// A ( or # after any other step is a nameless continuation of that step.

// Ref is a named access, either the head of a chain or a ::name step.
type Ref struct {
	expr
	Name  string
	Child Expr
}

// StructAccess is a .Member step of a reference chain.
type StructAccess struct {
	expr
	Member string
	Child  Expr
}

// Call is a function or macro call: Name(Args...) or Name!(Args...).
type Call struct {
	expr
	Name  string // empty for a continuation call
	Args  []Expr
	Macro bool
	Child Expr
}

// Index is an array access: Name#Index.
type Index struct {
	expr
	Name  string // empty for a continuation index
	Index Expr
	Child Expr
}

// Binary is a binary operation: X Op Y.
type Binary struct {
	expr
	Op Kind
	X  Expr
	Y  Expr
}

// Unary is a prefix operation: Op X.
type Unary struct {
	expr
	Op Kind
	X  Expr
}

// Cast converts X to a primitive type: Type(X).
type Cast struct {
	expr
	Type string
	X    Expr
}

// Paren is a parenthesized expression: (X).
type Paren struct {
	expr
	X Expr
}

// tail returns the open end of the reference chain starting at x.
func tail(x Expr) Expr {
	for {
		next := child(x)
		if next == nil {
			return x
		}
		x = next
	}
}

// child returns the continuation of a chain node, or nil.
func child(x Expr) Expr {
	switch n := x.(type) {
	case *Ref:
		return n.Child
	case *StructAccess:
		return n.Child
	case *Call:
		return n.Child
	case *Index:
		return n.Child
	}
	return nil
}

// setChild attaches c as the continuation of chain node x.
// It reports false if x cannot be continued.
func setChild(x, c Expr) bool {
	switch n := x.(type) {
	case *Ref:
		n.Child = c
	case *StructAccess:
		n.Child = c
	case *Call:
		n.Child = c
	case *Index:
		n.Child = c
	default:
		return false
	}
	return true
}

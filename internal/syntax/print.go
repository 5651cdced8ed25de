package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w, one line per
// node or attribute, indented by two spaces per depth.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// labeled prints a label line followed by node one level deeper.
func (p *printer) labeled(label string, node Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(node)
	p.indent--
}

func (p *printer) annotations(a []string) {
	for _, s := range a {
		p.printf("Annotation: #[%s]\n", s)
	}
}

func (p *printer) print(node Node) {
	if isNil(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		p.printf("Block %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *ImportDecl:
		p.printf("ImportDecl %s %q\n", n.pos, n.Path)

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.annotations(n.Annotations)
		p.printf("Name: %s\n", n.Name)
		if n.Pub {
			p.printf("Pub: true\n")
		}
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.print(f)
			}
			p.indent--
		}
		p.printf("Result: %s\n", n.Result)
		if n.Body != nil {
			p.labeled("Body", n.Body)
		}
		p.indent--

	case *StructDecl:
		p.printf("StructDecl %s\n", n.pos)
		p.indent++
		p.annotations(n.Annotations)
		p.printf("Name: %s\n", n.Name)
		if n.Pub {
			p.printf("Pub: true\n")
		}
		for _, f := range n.Fields {
			p.print(f)
		}
		p.indent--

	case *Field:
		p.printf("Field %s %s %s\n", n.pos, n.Type, n.Name)

	case *VarDef:
		p.printf("VarDef %s %s %s\n", n.pos, n.Type, n.Name)
		p.indent++
		p.annotations(n.Annotations)
		p.print(n.Value)
		p.indent--

	case *ArrayDef:
		p.printf("ArrayDef %s [%s] %s\n", n.pos, n.Elem, n.Name)
		p.indent++
		p.annotations(n.Annotations)
		p.print(n.Value)
		p.indent--

	case *TypeDecl:
		p.printf("TypeDecl %s %s %s\n", n.pos, n.Type, n.Name)
		p.indent++
		p.annotations(n.Annotations)
		p.indent--

	case *Assign:
		p.printf("Assign %s %s\n", n.pos, n.Name)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *ArrayAssign:
		p.printf("ArrayAssign %s\n", n.pos)
		p.indent++
		p.labeled("Target", n.Target)
		p.labeled("Value", n.Value)
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.labeled("Cond", n.Cond)
		p.labeled("Then", n.Then)
		if !isNil(n.Else) {
			p.labeled("Else", n.Else)
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.labeled("Cond", n.Cond)
		p.labeled("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		p.indent++
		p.print(n.Result)
		p.indent--

	case *DeferStmt:
		p.printf("DeferStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Lit:
		p.printf("Lit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *ArrayLit:
		p.printf("ArrayLit %s\n", n.pos)
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *Ref:
		p.printf("Ref %s %s\n", n.pos, n.Name)
		p.indent++
		p.print(n.Child)
		p.indent--

	case *StructAccess:
		p.printf("StructAccess %s .%s\n", n.pos, n.Member)
		p.indent++
		p.print(n.Child)
		p.indent--

	case *Call:
		name := n.Name
		if n.Macro {
			name += "!"
		}
		if name == "" {
			p.printf("Call %s\n", n.pos)
		} else {
			p.printf("Call %s %s\n", n.pos, name)
		}
		p.indent++
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		if !isNil(n.Child) {
			p.labeled("Child", n.Child)
		}
		p.indent--

	case *Index:
		if n.Name == "" {
			p.printf("Index %s\n", n.pos)
		} else {
			p.printf("Index %s %s\n", n.pos, n.Name)
		}
		p.indent++
		p.labeled("Index", n.Index)
		if !isNil(n.Child) {
			p.labeled("Child", n.Child)
		}
		p.indent--

	case *Binary:
		p.printf("Binary %s %s\n", n.pos, n.Op)
		p.indent++
		p.labeled("X", n.X)
		p.labeled("Y", n.Y)
		p.indent--

	case *Unary:
		p.printf("Unary %s %s\n", n.pos, n.Op)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Cast:
		p.printf("Cast %s %s\n", n.pos, n.Type)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Paren:
		p.printf("Paren %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("<%T>\n", node)
	}
}

// isNil reports whether node is nil or a typed nil pointer.
func isNil(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *IfStmt:
		return n == nil
	case *Index:
		return n == nil
	case *Lit:
		return n == nil
	}
	return false
}

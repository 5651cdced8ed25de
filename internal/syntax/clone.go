package syntax

import (
	"fmt"
	"slices"
)

// Clone returns a deep copy of the tree rooted at node. The copy shares
// no nodes or slices with the original.
func Clone[N Node](node N) N {
	if isNil(node) {
		return node
	}
	return clone(Node(node)).(N)
}

func cloneExpr(x Expr) Expr {
	if isNil(x) {
		return nil
	}
	return clone(x).(Expr)
}

func cloneStmt(s Stmt) Stmt {
	if isNil(s) {
		return nil
	}
	return clone(s).(Stmt)
}

func cloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	return clone(b).(*Block)
}

func cloneFields(fields []*Field) []*Field {
	if fields == nil {
		return nil
	}
	out := make([]*Field, len(fields))
	for i, f := range fields {
		c := *f
		out[i] = &c
	}
	return out
}

func clone(node Node) Node {
	switch n := node.(type) {
	case *Block:
		c := *n
		if n.Stmts != nil {
			c.Stmts = make([]Stmt, len(n.Stmts))
			for i, s := range n.Stmts {
				c.Stmts[i] = cloneStmt(s)
			}
		}
		return &c

	case *ImportDecl:
		c := *n
		return &c

	case *FuncDecl:
		c := *n
		c.Params = cloneFields(n.Params)
		c.Body = cloneBlock(n.Body)
		c.Annotations = slices.Clone(n.Annotations)
		return &c

	case *StructDecl:
		c := *n
		c.Fields = cloneFields(n.Fields)
		c.Annotations = slices.Clone(n.Annotations)
		return &c

	case *Field:
		c := *n
		return &c

	case *VarDef:
		c := *n
		c.Value = cloneExpr(n.Value)
		c.Annotations = slices.Clone(n.Annotations)
		return &c

	case *ArrayDef:
		c := *n
		c.Value = cloneExpr(n.Value)
		c.Annotations = slices.Clone(n.Annotations)
		return &c

	case *TypeDecl:
		c := *n
		c.Annotations = slices.Clone(n.Annotations)
		return &c

	case *Assign:
		c := *n
		c.Value = cloneExpr(n.Value)
		return &c

	case *ArrayAssign:
		c := *n
		if n.Target != nil {
			c.Target = clone(n.Target).(*Index)
		}
		c.Value = cloneExpr(n.Value)
		return &c

	case *IfStmt:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Then = cloneBlock(n.Then)
		c.Else = cloneStmt(n.Else)
		return &c

	case *WhileStmt:
		c := *n
		c.Cond = cloneExpr(n.Cond)
		c.Body = cloneBlock(n.Body)
		return &c

	case *ReturnStmt:
		c := *n
		c.Result = cloneExpr(n.Result)
		return &c

	case *DeferStmt:
		c := *n
		c.X = cloneExpr(n.X)
		return &c

	case *ExprStmt:
		c := *n
		c.X = cloneExpr(n.X)
		return &c

	case *Lit:
		c := *n
		return &c

	case *ArrayLit:
		c := *n
		if n.Elems != nil {
			c.Elems = make([]*Lit, len(n.Elems))
			for i, e := range n.Elems {
				l := *e
				c.Elems[i] = &l
			}
		}
		return &c

	case *Ref:
		c := *n
		c.Child = cloneExpr(n.Child)
		return &c

	case *StructAccess:
		c := *n
		c.Child = cloneExpr(n.Child)
		return &c

	case *Call:
		c := *n
		if n.Args != nil {
			c.Args = make([]Expr, len(n.Args))
			for i, a := range n.Args {
				c.Args[i] = cloneExpr(a)
			}
		}
		c.Child = cloneExpr(n.Child)
		return &c

	case *Index:
		c := *n
		c.Index = cloneExpr(n.Index)
		c.Child = cloneExpr(n.Child)
		return &c

	case *Binary:
		c := *n
		c.X = cloneExpr(n.X)
		c.Y = cloneExpr(n.Y)
		return &c

	case *Unary:
		c := *n
		c.X = cloneExpr(n.X)
		return &c

	case *Cast:
		c := *n
		c.X = cloneExpr(n.X)
		return &c

	case *Paren:
		c := *n
		c.X = cloneExpr(n.X)
		return &c
	}

	panic(fmt.Sprintf("syntax: Clone of unknown node %T", node))
}

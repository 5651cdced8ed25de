package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order, children in source order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if isNil(node) || !v(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, s := range n.Stmts {
			Walk(s, v)
		}

	case *FuncDecl:
		for _, f := range n.Params {
			Walk(f, v)
		}
		Walk(n.Body, v)

	case *StructDecl:
		for _, f := range n.Fields {
			Walk(f, v)
		}

	case *VarDef:
		Walk(n.Value, v)

	case *ArrayDef:
		Walk(n.Value, v)

	case *Assign:
		Walk(n.Value, v)

	case *ArrayAssign:
		Walk(n.Target, v)
		Walk(n.Value, v)

	case *IfStmt:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		Walk(n.Else, v)

	case *WhileStmt:
		Walk(n.Cond, v)
		Walk(n.Body, v)

	case *ReturnStmt:
		Walk(n.Result, v)

	case *DeferStmt:
		Walk(n.X, v)

	case *ExprStmt:
		Walk(n.X, v)

	case *ArrayLit:
		for _, e := range n.Elems {
			Walk(e, v)
		}

	case *Ref:
		Walk(n.Child, v)

	case *StructAccess:
		Walk(n.Child, v)

	case *Call:
		for _, a := range n.Args {
			Walk(a, v)
		}
		Walk(n.Child, v)

	case *Index:
		Walk(n.Index, v)
		Walk(n.Child, v)

	case *Binary:
		Walk(n.X, v)
		Walk(n.Y, v)

	case *Unary:
		Walk(n.X, v)

	case *Cast:
		Walk(n.X, v)

	case *Paren:
		Walk(n.X, v)

	// Leaf nodes: ImportDecl, Field, TypeDecl, Lit
	// No children to visit
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

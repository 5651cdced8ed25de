package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}

	switch n := node.(type) {
	case *Block:
		return map[string]interface{}{
			"type":  "Block",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *ImportDecl:
		return map[string]interface{}{
			"type": "ImportDecl",
			"pos":  n.pos.String(),
			"path": n.Path,
		}

	case *FuncDecl:
		m := map[string]interface{}{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"pub":    n.Pub,
			"params": mapSlice(n.Params, func(f *Field) interface{} { return toJSON(f) }),
			"result": n.Result,
			"body":   toJSON(n.Body),
		}
		addAnnotations(m, n.Annotations)
		return m

	case *StructDecl:
		m := map[string]interface{}{
			"type":   "StructDecl",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"pub":    n.Pub,
			"fields": mapSlice(n.Fields, func(f *Field) interface{} { return toJSON(f) }),
		}
		addAnnotations(m, n.Annotations)
		return m

	case *Field:
		return map[string]interface{}{
			"type":      "Field",
			"pos":       n.pos.String(),
			"name":      n.Name,
			"fieldtype": n.Type,
		}

	case *VarDef:
		m := map[string]interface{}{
			"type":    "VarDef",
			"pos":     n.pos.String(),
			"name":    n.Name,
			"vartype": n.Type,
			"value":   toJSON(n.Value),
		}
		addAnnotations(m, n.Annotations)
		return m

	case *ArrayDef:
		m := map[string]interface{}{
			"type":  "ArrayDef",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"elem":  n.Elem,
			"value": toJSON(n.Value),
		}
		addAnnotations(m, n.Annotations)
		return m

	case *TypeDecl:
		m := map[string]interface{}{
			"type":    "TypeDecl",
			"pos":     n.pos.String(),
			"name":    n.Name,
			"vartype": n.Type,
		}
		addAnnotations(m, n.Annotations)
		return m

	case *Assign:
		return map[string]interface{}{
			"type":  "Assign",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"value": toJSON(n.Value),
		}

	case *ArrayAssign:
		return map[string]interface{}{
			"type":   "ArrayAssign",
			"pos":    n.pos.String(),
			"target": toJSON(n.Target),
			"value":  toJSON(n.Value),
		}

	case *IfStmt:
		m := map[string]interface{}{
			"type": "IfStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"then": toJSON(n.Then),
		}
		if !isNil(n.Else) {
			m["else"] = toJSON(n.Else)
		}
		return m

	case *WhileStmt:
		return map[string]interface{}{
			"type": "WhileStmt",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"body": toJSON(n.Body),
		}

	case *ReturnStmt:
		return map[string]interface{}{
			"type":   "ReturnStmt",
			"pos":    n.pos.String(),
			"result": toJSON(n.Result),
		}

	case *DeferStmt:
		return map[string]interface{}{
			"type": "DeferStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *ExprStmt:
		return map[string]interface{}{
			"type": "ExprStmt",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *Lit:
		return map[string]interface{}{
			"type":  "Lit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *ArrayLit:
		return map[string]interface{}{
			"type":  "ArrayLit",
			"pos":   n.pos.String(),
			"elems": mapSlice(n.Elems, func(l *Lit) interface{} { return toJSON(l) }),
		}

	case *Ref:
		m := map[string]interface{}{
			"type": "Ref",
			"pos":  n.pos.String(),
			"name": n.Name,
		}
		addChild(m, n.Child)
		return m

	case *StructAccess:
		m := map[string]interface{}{
			"type":   "StructAccess",
			"pos":    n.pos.String(),
			"member": n.Member,
		}
		addChild(m, n.Child)
		return m

	case *Call:
		m := map[string]interface{}{
			"type": "Call",
			"pos":  n.pos.String(),
			"args": mapSlice(n.Args, func(a Expr) interface{} { return toJSON(a) }),
		}
		if n.Name != "" {
			m["name"] = n.Name
		}
		if n.Macro {
			m["macro"] = true
		}
		addChild(m, n.Child)
		return m

	case *Index:
		m := map[string]interface{}{
			"type":  "Index",
			"pos":   n.pos.String(),
			"index": toJSON(n.Index),
		}
		if n.Name != "" {
			m["name"] = n.Name
		}
		addChild(m, n.Child)
		return m

	case *Binary:
		return map[string]interface{}{
			"type": "Binary",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Unary:
		return map[string]interface{}{
			"type": "Unary",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *Cast:
		return map[string]interface{}{
			"type":     "Cast",
			"pos":      n.pos.String(),
			"casttype": n.Type,
			"x":        toJSON(n.X),
		}

	case *Paren:
		return map[string]interface{}{
			"type": "Paren",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func addChild(m map[string]interface{}, child Expr) {
	if !isNil(child) {
		m["child"] = toJSON(child)
	}
}

func addAnnotations(m map[string]interface{}, a []string) {
	if len(a) > 0 {
		m["annotations"] = a
	}
}

// mapSlice converts a slice of nodes to a JSON array; nil stays empty.
func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}

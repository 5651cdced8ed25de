package syntax

import (
	"fmt"
	"sort"
	"testing"
)

// kitchenSink contains at least one node of every kind.
const kitchenSink = `import std::io;
#[packed]
pub struct Point { i32 x; i32 y; }
fn main<i32 argc> :: i32 {
  #[hot]
  i32 x = 1 + 2 * 3;
  i32* p;
  [i32] a = [1, 2, 3];
  Point pt = make(1, -2);
  x = i64(x);
  a#0 = (x);
  if (x == 1) { print!("one"); } elif (!x) { x = 2; } else { x = 3; }
  while (x < 10) { x = x + 1; }
  defer std::io::close(pt.x);
  { x = 0; }
  return pt.x;
}
`

var allNodeTypes = []string{
	"*syntax.ArrayAssign", "*syntax.ArrayDef", "*syntax.ArrayLit", "*syntax.Assign",
	"*syntax.Binary", "*syntax.Block", "*syntax.Call", "*syntax.Cast",
	"*syntax.DeferStmt", "*syntax.ExprStmt", "*syntax.Field", "*syntax.FuncDecl",
	"*syntax.IfStmt", "*syntax.ImportDecl", "*syntax.Index", "*syntax.Lit",
	"*syntax.Paren", "*syntax.Ref", "*syntax.ReturnStmt", "*syntax.StructAccess",
	"*syntax.StructDecl", "*syntax.TypeDecl", "*syntax.Unary", "*syntax.VarDef",
	"*syntax.WhileStmt",
}

func nodeTypes(root Node) []string {
	seen := map[string]bool{}
	Inspect(root, func(n Node) bool {
		seen[fmt.Sprintf("%T", n)] = true
		return true
	})
	var types []string
	for typ := range seen {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

func TestKitchenSinkCoversAllNodes(t *testing.T) {
	got := nodeTypes(mustParse(t, kitchenSink))
	if len(got) != len(allNodeTypes) {
		t.Fatalf("visited node types:\n%v\nwant:\n%v", got, allNodeTypes)
	}
	for i := range got {
		if got[i] != allNodeTypes[i] {
			t.Errorf("node type %d = %s, want %s", i, got[i], allNodeTypes[i])
		}
	}
}

func TestChainHelpers(t *testing.T) {
	x := exprOf(t, "a.b(1)#2")

	last := tail(x)
	if _, ok := last.(*Index); !ok {
		t.Fatalf("tail is %T, want *Index", last)
	}
	if child(last) != nil {
		t.Error("tail has a child")
	}

	lit := &Lit{Value: "1"}
	if setChild(lit, x) {
		t.Error("setChild on a literal reported success")
	}
	if child(lit) != nil {
		t.Error("literal has a child")
	}

	ext := &StructAccess{Member: "c"}
	if !setChild(last, ext) || tail(x) != Expr(ext) {
		t.Error("setChild did not extend the chain")
	}
}

func TestChainBuilderPanicsOnClosedTail(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("add after a literal did not panic")
		}
	}()

	var c chainBuilder
	c.add(&Lit{Value: "1"})
	c.add(&Ref{Name: "x"})
}

func TestLitKindString(t *testing.T) {
	if IntLit.String() != "int" || StringLit.String() != "string" {
		t.Errorf("LitKind names = %s, %s", IntLit, StringLit)
	}
	if got := LitKind(9).String(); got != "LitKind(?)" {
		t.Errorf("LitKind(9) = %q", got)
	}
}

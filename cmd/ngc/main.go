// Package main implements the ngc compiler front end entry point.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/you-not-fish/ngc/internal/syntax"
)

// Compiler flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	emitDecls  = flag.Bool("emit-decls", false, "Output top-level declaration signatures")
	maxErrors  = flag.Int("max-errors", 1, "Number of syntax errors reported before stopping")
	replMode   = flag.Bool("repl", false, "Start an interactive parse session")
	version    = flag.Bool("version", false, "Print version")
)

// Version information
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ngc %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: ngc [options] <file.ngc>\n")
		fmt.Fprintf(os.Stderr, "       ngc -repl\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("ngc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *replMode {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: ngc [options] <file.ngc>")
		os.Exit(1)
	}

	filename := args[0]

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename))
	case *emitAST:
		os.Exit(runEmitAST(filename))
	case *emitDecls:
		os.Exit(runEmitDecls(filename))
	}

	os.Exit(runCheck(filename))
}

// parseFile scans and parses filename, writing each syntax error to
// stderr as it is found. It returns nil and false on any error.
func parseFile(filename string) (*syntax.Block, bool) {
	toks, err := syntax.ScanFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, false
	}

	errh := func(err *syntax.SyntaxError) {
		fmt.Fprintln(os.Stderr, err)
	}

	root, err := syntax.Parse(toks, syntax.MaxErrors(*maxErrors), syntax.ErrorHandler(errh))
	if err != nil {
		return nil, false
	}
	return root, true
}

// runCheck parses the input file and reports only errors.
func runCheck(filename string) int {
	if _, ok := parseFile(filename); !ok {
		return 1
	}
	return 0
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	root, ok := parseFile(filename)
	if !ok {
		return 1
	}
	if root == nil {
		return 0
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, root); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, root)
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	toks, err := syntax.ScanFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// Print header
	fmt.Printf("%-20s %-14s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-14s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 14), strings.Repeat("-", 20))

	for _, tok := range toks {
		fmt.Printf("%-20s %-14s %s\n", tok.Pos, tok.Kind, formatLiteral(tok.Text))
	}
	return 0
}

// runEmitDecls prints one signature line per top-level declaration.
func runEmitDecls(filename string) int {
	root, ok := parseFile(filename)
	if !ok {
		return 1
	}
	if root == nil {
		return 0
	}

	for _, s := range root.Stmts {
		fmt.Println(declSignature(s))
	}
	return 0
}

// declSignature renders a top-level declaration without its body.
func declSignature(s syntax.Stmt) string {
	var b strings.Builder
	switch d := s.(type) {
	case *syntax.ImportDecl:
		b.WriteString("import " + d.Path)

	case *syntax.FuncDecl:
		if d.Pub {
			b.WriteString("pub ")
		}
		b.WriteString("fn " + d.Name)
		if len(d.Params) > 0 {
			b.WriteString("<")
			for i, f := range d.Params {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(f.Type + " " + f.Name)
			}
			b.WriteString(">")
		}
		b.WriteString(" :: " + d.Result)
		fmt.Fprintf(&b, " (%d statements)", countStmts(d.Body))

	case *syntax.StructDecl:
		if d.Pub {
			b.WriteString("pub ")
		}
		b.WriteString("struct " + d.Name + " {")
		for _, f := range d.Fields {
			b.WriteString(" " + f.Type + " " + f.Name + ";")
		}
		b.WriteString(" }")

	default:
		fmt.Fprintf(&b, "<%T>", s)
	}
	return b.String()
}

// countStmts counts the statements nested anywhere inside body.
// Blocks are containers and are not counted.
func countStmts(body *syntax.Block) int {
	n := 0
	syntax.Inspect(body, func(node syntax.Node) bool {
		if _, ok := node.(*syntax.Block); ok {
			return true
		}
		if _, ok := node.(syntax.Stmt); ok {
			n++
		}
		return true
	})
	return n
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return "\"\""
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\t':
			b.WriteString("\\t")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

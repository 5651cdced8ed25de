package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/ngc/internal/syntax"
)

const (
	promptMain  = "ngc> "
	promptCont  = "...  "
	historyFile = ".ngc_history"
	replSource  = "<stdin>"
)

// lineReader is the subset of *liner.State used by the session.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runREPL starts an interactive session on the terminal. Each complete
// input is parsed and its AST printed; input that ends inside a
// construct prompts for continuation lines.
func runREPL() int {
	fmt.Printf("ngc %s. Type :help for commands.\n", Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return repl(ln, os.Stdout, os.Stderr)
}

// session holds the state of one interactive session.
type session struct {
	ln     lineReader
	stdout io.Writer
	stderr io.Writer
	tokens bool // print tokens instead of the AST
}

func repl(ln lineReader, stdout, stderr io.Writer) int {
	s := &session{ln: ln, stdout: stdout, stderr: stderr}

	for {
		src, toks, ok := s.read()
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if s.command(trimmed) {
				return 0
			}
			continue
		}

		s.eval(toks)
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// read collects lines until they form input that is either complete or
// wrong in a way more lines cannot fix. It reports false at end of input.
// An interrupted prompt discards the lines read so far.
func (s *session) read() (string, []syntax.Token, bool) {
	var b strings.Builder
	var toks []syntax.Token
	var lineno uint32

	for {
		prompt := promptMain
		if lineno > 0 {
			prompt = promptCont
		}

		line, err := s.ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", nil, true
		}
		if err != nil {
			return "", nil, false
		}

		lineno++
		if lineno > 1 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if lineno == 1 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return b.String(), nil, true
		}

		toks = syntax.ScanLine(toks, line, lineno, replSource)
		if _, err := syntax.Parse(toks); syntax.IsIncomplete(err) {
			continue
		}
		return b.String(), toks, true
	}
}

// command runs a :command. It reports whether the session should end.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return true
	case ":tokens":
		s.tokens = !s.tokens
		if s.tokens {
			fmt.Fprintln(s.stdout, "printing tokens")
		} else {
			fmt.Fprintln(s.stdout, "printing syntax trees")
		}
	case ":help":
		fmt.Fprintln(s.stdout, ":tokens  toggle between token and syntax tree output")
		fmt.Fprintln(s.stdout, ":quit    leave the session")
	default:
		fmt.Fprintf(s.stdout, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

func (s *session) eval(toks []syntax.Token) {
	if s.tokens {
		for _, tok := range toks {
			fmt.Fprintln(s.stdout, tok)
		}
		return
	}

	errh := func(err *syntax.SyntaxError) {
		fmt.Fprintln(s.stderr, err)
	}
	root, err := syntax.Parse(toks, syntax.MaxErrors(*maxErrors), syntax.ErrorHandler(errh))
	if err != nil || root == nil {
		return
	}
	syntax.Fprint(s.stdout, root)
}

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunEmitTokensListsKindsAndLiterals(t *testing.T) {
	filename := writeTempNgcFile(t, "i32* p;\nfoo!(\"a\tb\");\n")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitTokens exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.HasPrefix(out, "POSITION") {
		t.Fatalf("token output missing header:\n%s", out)
	}
	for _, want := range []string{
		filename + ":1:1",
		"POINTER_TYPE",
		`"i32*"`,
		filename + ":2:1",
		`"foo!"`,
		`"a\tb"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("token output missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitASTText(t *testing.T) {
	src := `fn add<i32 a, i32 b> :: i32 {
  return a + b;
}
`
	filename := writeTempNgcFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if !strings.Contains(out, "FuncDecl "+filename+":1:1") {
		t.Errorf("AST missing function:\n%s", out)
	}
	if !strings.Contains(out, "Binary "+filename+":2:10 +") {
		t.Errorf("AST missing return expression:\n%s", out)
	}
}

func TestRunEmitASTJSON(t *testing.T) {
	old := *astFormat
	*astFormat = "json"
	defer func() { *astFormat = old }()

	filename := writeTempNgcFile(t, "struct P { i32 x; }\n")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, `"type": "StructDecl"`) || !strings.Contains(out, `"fieldtype": "i32"`) {
		t.Errorf("JSON output missing struct:\n%s", out)
	}
}

func TestRunEmitASTReportsFirstError(t *testing.T) {
	src := `fn main :: i32 {
  i32 x = ;
  return );
}
`
	filename := writeTempNgcFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 1 {
		t.Fatalf("runEmitAST exit=%d, want 1", code)
	}
	if out != "" {
		t.Errorf("tree printed despite error:\n%s", out)
	}
	want := filename + ":2:11: expected expression, found \";\"\n"
	if errOut != want {
		t.Errorf("stderr = %q, want %q", errOut, want)
	}
}

func TestRunCheckMaxErrors(t *testing.T) {
	old := *maxErrors
	*maxErrors = 10
	defer func() { *maxErrors = old }()

	src := "fn main :: i32 {\n  i32 x = ;\n  return );\n}\n"
	filename := writeTempNgcFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runCheck(filename)
	})

	if code != 1 {
		t.Fatalf("runCheck exit=%d, want 1", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d diagnostics, want 2:\n%s", len(lines), errOut)
	}
	if !strings.HasPrefix(lines[1], filename+":3:10: ") {
		t.Errorf("second diagnostic = %q", lines[1])
	}
}

func TestRunCheck(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantCode int
	}{
		{"valid", "pub fn main :: i32 { return 0; }\n", 0},
		{"empty", "", 0},
		{"comments_only", "// nothing\n", 0},
		{"unsupported_top_level", "i32 x = 1;\n", 1},
		{"unterminated", "fn main :: i32 {\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filename := writeTempNgcFile(t, tt.src)
			code, out, _ := captureOutput(t, func() int {
				return runCheck(filename)
			})
			if code != tt.wantCode {
				t.Errorf("runCheck exit=%d, want %d", code, tt.wantCode)
			}
			if out != "" {
				t.Errorf("unexpected stdout:\n%s", out)
			}
		})
	}
}

func TestRunCheckMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.ngc")
	code, _, errOut := captureOutput(t, func() int {
		return runCheck(missing)
	})

	if code != 1 {
		t.Fatalf("runCheck exit=%d, want 1", code)
	}
	if !strings.HasPrefix(errOut, "error: ") {
		t.Errorf("stderr = %q, want error prefix", errOut)
	}
}

func TestRunEmitDecls(t *testing.T) {
	src := `import std::io;
#[inline]
pub fn add<i32 a, i32 b> :: i32 {
  if (a) { return a; }
  return b;
}
struct P { i32 x; u8* y; }
fn main :: i32 { }
`
	filename := writeTempNgcFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitDecls(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitDecls exit=%d\nstderr:\n%s", code, errOut)
	}
	want := `import std::io
pub fn add<i32 a, i32 b> :: i32 (3 statements)
struct P { i32 x; u8* y; }
fn main :: i32 (0 statements)
`
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{"", `""`},
		{"foo", `"foo"`},
		{"a\tb", `"a\tb"`},
		{`a\b`, `"a\\b"`},
		{`say "hi"`, `"say \"hi\""`},
	}

	for _, tt := range tests {
		if got := formatLiteral(tt.lit); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.lit, got, tt.want)
		}
	}
}

func writeTempNgcFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.ngc")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}

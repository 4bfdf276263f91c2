package compiler

import (
	"strings"
	"testing"
)

func mustCompile(t *testing.T, src string) string {
	t.Helper()
	out, err := New(src).Compile()
	if err != nil {
		t.Fatalf("unexpected error compiling %q: %s", src, err)
	}
	return out
}

func TestCompileLiteralAssignAndOutput(t *testing.T) {
	out := mustCompile(t, "x = 42\noutput x\n")

	if !strings.Contains(out, "var_x DAT 42") {
		t.Errorf("expected var_x to be declared with initial value 42, got:\n%s", out)
	}
	// The constant fold means no LDA/STA pair is emitted for the
	// assignment itself.
	if strings.Contains(out, "STA var_x") {
		t.Errorf("constant-initializer fold should emit no code, got:\n%s", out)
	}
	if !strings.Contains(out, "LDA var_x\nOUT\n") {
		t.Errorf("expected output to load and print x, got:\n%s", out)
	}
	if strings.Index(out, "HLT") > strings.Index(out, "var_x DAT") {
		t.Errorf("expected HLT before the data section, got:\n%s", out)
	}
}

func TestCompileInputArithmeticOutput(t *testing.T) {
	out := mustCompile(t, "input a\nb = a + 1\noutput b\n")

	want := []string{
		"INP\nSTA var_a\n",
		"LDA var_a\nADD const_1\nSTA var_b\n",
		"LDA var_b\nOUT\n",
		"var_a DAT 0",
		"var_b DAT 0",
		"const_1 DAT 1",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestCompileWhileLoop(t *testing.T) {
	out := mustCompile(t, "i = 0\nwhile i < 5\n  i = i + 1\nendwhile\noutput i\n")

	for _, w := range []string{
		"while_1 LDA var_i\nSUB const_5\nBRP while_1_end\nBRA while_1_body\n",
		"while_1_body ",
		"BRA while_1\nwhile_1_end ",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestCompileIfElse(t *testing.T) {
	out := mustCompile(t, "x = 1\nif x == 1\n  output 1\nelse\n  output 2\nendif\n")

	for _, w := range []string{
		"if_1_body",
		"BRA if_1_end\nif_1_else ",
		"if_1_end ADD const_0\n",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestCompileIfElseIfElseChain(t *testing.T) {
	src := "x = 1\nif x == 1\n  output 1\nelse if x == 2\n  output 2\nelse\n  output 3\nendif\n"
	out := mustCompile(t, src)

	for _, w := range []string{
		"if_1_body",
		"if_3_body",
		"if_1_end ADD const_0\n",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, out)
		}
	}
}

func TestCompileWhileTrueBreak(t *testing.T) {
	out := mustCompile(t, "while true\n  break\nendwhile\n")

	// The dangling "while_0 " label picks up whatever the next logical
	// line emits - here, the break's own branch instruction.
	if !strings.Contains(out, "while_0 BRA while_0_end\n") {
		t.Errorf("expected the while-true label to attach to the break's branch, got:\n%s", out)
	}
}

func TestCompileBogusPrograms(t *testing.T) {
	tests := []string{
		"x 5\n",
		"x = \n",
		"x = +\n",
		"output y\n",
		"endif\n",
		"endwhile\n",
		"else\n",
		"break\n",
		"if x == 1\n",
		"while x == 1\n",
		"$\n",
	}

	for _, src := range tests {
		if _, err := New(src).Compile(); err == nil {
			t.Errorf("expected an error compiling %q, got none", src)
		}
	}
}

func TestCompileEmptyProgramProducesJustHalt(t *testing.T) {
	out := mustCompile(t, "")
	if !strings.HasPrefix(out, "HLT\n") {
		t.Errorf("expected an empty program to compile to just HLT, got:\n%s", out)
	}
}

func TestCompileFailureHasNoPartialOutput(t *testing.T) {
	out, err := New("output undeclared\n").Compile()
	if err == nil {
		t.Fatalf("expected an error")
	}
	if out != "" {
		t.Errorf("expected no partial output on failure, got:\n%s", out)
	}
}

func TestWarningsSurfaceOutOfRangeLiterals(t *testing.T) {
	c := New("x = 12345\n")
	if _, err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(c.Warnings()) != 1 {
		t.Fatalf("expected one warning, got %d: %v", len(c.Warnings()), c.Warnings())
	}
}

func TestSetWarnBoundOverridesDefault(t *testing.T) {
	c := New("x = 50\n")
	c.SetWarnBound(10)
	if _, err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(c.Warnings()) != 1 {
		t.Fatalf("expected one warning with a tightened bound, got %d: %v", len(c.Warnings()), c.Warnings())
	}
}

func TestSetWarnBoundZeroRestoresDefault(t *testing.T) {
	c := New("x = 500\n")
	c.SetWarnBound(10)
	c.SetWarnBound(0)
	if _, err := c.Compile(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(c.Warnings()) != 0 {
		t.Fatalf("expected no warnings under the default bound, got %v", c.Warnings())
	}
}

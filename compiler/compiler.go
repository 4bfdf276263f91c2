// The compiler package contains the core of our compiler.
//
// In brief we go through a three-step process:
//
//  1. Use the lexer to tokenize the source program.
//
//  2. Split the flat token stream into logical lines, and walk them
//     one at a time, each dispatched by its first token's kind.
//
//  3. Emit LMC assembly for each construct directly as we walk - there
//     is no separate internal form, since each logical line maps onto
//     a handful of instructions with no further analysis needed.
//
// Two tables accumulate as we go: the variables the program declares,
// and the distinct integer constants referenced in instruction
// position. Both are emitted as DAT directives once the walk is done,
// since the LMC instruction set has no immediate operands - every
// value an instruction touches has to live at some address.
package compiler

import (
	"fmt"
	"strings"

	"github.com/ahawley/lmcc/lexer"
	"github.com/ahawley/lmcc/scope"
	"github.com/ahawley/lmcc/symbols"
	"github.com/ahawley/lmcc/token"
)

// Compiler holds our object-state.
type Compiler struct {
	// debug holds a flag to decide if debugging commentary is
	// generated in the output assembly.
	debug bool

	// bound is the out-of-range-literal warning threshold passed to
	// the lexer (see config.Lexer.WarnBound).
	bound int

	// src holds the program source we're compiling.
	src string

	// vars is the variable table: declared identifiers and their
	// initial value.
	vars *symbols.Vars

	// consts is the set of distinct integer constants referenced in
	// instruction position.
	consts *symbols.Consts

	// scopes is the stack of open while/if constructs, used to resolve
	// "endwhile", "endif", "else" and "break".
	scopes *scope.Stack

	// buf accumulates the emitted assembly text.
	buf strings.Builder

	// warnings holds out-of-range-literal warnings collected by the
	// lexer during the most recent Compile call.
	warnings []string
}

//
// Our public API consists of:
//  New
//  SetDebug
//  SetWarnBound
//  Compile
//  Warnings
//
// The rest of the code is an implementation detail.
//

// New creates a new compiler, given the program source in the
// constructor.
func New(src string) *Compiler {
	return &Compiler{
		src:    src,
		bound:  lexer.DefaultBound,
		vars:   symbols.NewVars(),
		consts: symbols.NewConsts(),
		scopes: scope.New(),
	}
}

// SetDebug changes the debug-flag for our output.
func (c *Compiler) SetDebug(val bool) {
	c.debug = val
}

// SetWarnBound overrides the out-of-range-literal warning threshold the
// lexer uses (see config.Lexer.WarnBound). A value of 0 restores the
// default.
func (c *Compiler) SetWarnBound(bound int) {
	if bound == 0 {
		bound = lexer.DefaultBound
	}
	c.bound = bound
}

// Warnings returns the out-of-range-literal warnings collected by the
// lexer during the most recent Compile call.
func (c *Compiler) Warnings() []string {
	return c.warnings
}

// Compile converts the input program into LMC assembly. On any error
// the returned string is empty - there is no partial output.
func (c *Compiler) Compile() (string, error) {
	lexed := lexer.NewWithBound(c.src, c.bound)
	tokens, warnings := lexed.Lex()
	c.warnings = warnings

	if c.debug {
		c.buf.WriteString("; debug build\n")
	}

	for _, line := range splitLogical(tokens) {
		if len(line) == 0 {
			continue
		}
		if err := c.generateLine(line); err != nil {
			c.buf.Reset()
			return "", err
		}
	}

	if c.scopes.Depth() > 0 {
		c.buf.Reset()
		return "", c.unclosedConstructError()
	}

	c.finalize()
	return c.buf.String(), nil
}

// emit appends formatted text to the output buffer.
func (c *Compiler) emit(format string, args ...interface{}) {
	fmt.Fprintf(&c.buf, format, args...)
}

// finalize appends the halt instruction and the trailing variable and
// constant data sections, each in first-reference order.
func (c *Compiler) finalize() {
	c.buf.WriteString("HLT\n\n")

	for _, name := range c.vars.Names() {
		c.emit("var_%s DAT %d\n", name, c.vars.Value(name))
	}

	c.buf.WriteString("\n")

	for _, n := range c.consts.Values() {
		c.emit("const_%d DAT %d\n", n, n)
	}
}

// unclosedConstructError reports the innermost while/if construct left
// open when the source ran out, identified by the line it started on.
// Walking off the end of the program silently in this situation is the
// behavior this compiler is descended from; raising an error here is a
// deliberate improvement, not a preserved quirk.
func (c *Compiler) unclosedConstructError() error {
	f, _ := c.scopes.Top()
	switch fr := f.(type) {
	case scope.WhileFrame:
		return fmt.Errorf("error: unclosed 'while' started on line %d", fr.StartLine)
	case scope.IfFrame:
		return fmt.Errorf("error: unclosed 'if' started on line %d", fr.IfStartLine)
	default:
		return fmt.Errorf("error: unclosed control flow construct")
	}
}

// splitLogical breaks a flat token stream into logical lines at each
// NewLine token, dropping the NewLine tokens themselves.
func splitLogical(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	var cur []token.Token

	for _, t := range tokens {
		if t.Kind == token.NewLine {
			lines = append(lines, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}

	return lines
}

// generator.go contains the code for emitting LMC assembly, one logical
// line at a time, dispatched by the first token's kind.

package compiler

import (
	"fmt"

	"github.com/ahawley/lmcc/scope"
	"github.com/ahawley/lmcc/token"
)

// generateLine dispatches a single logical line to its handler, keyed on
// the first token's kind.
func (c *Compiler) generateLine(line []token.Token) error {
	lineNo := line[0].Line

	switch line[0].Kind {
	case token.Identifier:
		return c.emitAssignment(line, lineNo)
	case token.Input:
		return c.emitInput(line, lineNo)
	case token.Output:
		return c.emitOutput(line, lineNo)
	case token.While:
		return c.emitWhile(line, lineNo)
	case token.Break:
		return c.emitBreak(line, lineNo)
	case token.EndWhile:
		return c.emitEndWhile(line, lineNo)
	case token.If:
		return c.emitIf(line, lineNo)
	case token.Else:
		return c.emitElse(line, lineNo)
	case token.EndIf:
		return c.emitEndIf(line, lineNo)
	default:
		return fmt.Errorf("error on line %d: expected assignment, input, output, or start or end of if statement or while loop", lineNo)
	}
}

// operandAt resolves the token at idx into operand text suitable for an
// instruction's address field: "var_<name>" for a declared identifier,
// "const_<n>" for a numeric literal (recorded in the constant set as a
// side effect). missingMsg is used verbatim when idx falls off the end
// of the line.
func (c *Compiler) operandAt(line []token.Token, idx, lineNo int, missingMsg string) (string, error) {
	if idx >= len(line) {
		return "", fmt.Errorf("error on line %d: %s", lineNo, missingMsg)
	}

	tok := line[idx]
	switch tok.Kind {
	case token.Identifier:
		if !c.vars.Has(tok.Literal) {
			return "", fmt.Errorf("error on line %d token %d: unknown identifier %q", lineNo, idx, tok.Literal)
		}
		return "var_" + tok.Literal, nil
	case token.Number:
		c.consts.Add(tok.Value)
		return fmt.Sprintf("const_%d", tok.Value), nil
	default:
		return "", fmt.Errorf("error on line %d token %d: expected identifier or number", lineNo, idx)
	}
}

// emitAssignment handles "name = A [op B]".
func (c *Compiler) emitAssignment(line []token.Token, lineNo int) error {
	name := line[0].Literal

	if len(line) < 2 || line[1].Kind != token.Assign {
		return fmt.Errorf("error on line %d: identifier at the beginning of a line must be followed by '='", lineNo)
	}
	if len(line) < 3 {
		return fmt.Errorf("error on line %d: expected identifier or number", lineNo)
	}

	// Constant-initializer fold: a first assignment of a bare numeric
	// literal to a new name declares the variable and emits no code.
	if len(line) == 3 && line[2].Kind == token.Number && !c.vars.Has(name) {
		c.vars.Declare(name, line[2].Value)
		return nil
	}

	lhsText, err := c.operandAt(line, 2, lineNo, "expected identifier or number")
	if err != nil {
		return err
	}
	c.emit("LDA %s\n", lhsText)

	if len(line) == 3 {
		// Matches the source behavior of resetting the variable's
		// recorded initial value to 0, even if it was previously
		// folded to a nonzero constant.
		c.vars.Set(name, 0)
		c.emit("STA var_%s\n", name)
		return nil
	}

	if len(line) < 4 {
		return fmt.Errorf("error on line %d: expected identifier or number", lineNo)
	}

	var mnemonic string
	switch line[3].Kind {
	case token.Add:
		mnemonic = "ADD"
	case token.Sub:
		mnemonic = "SUB"
	default:
		return fmt.Errorf("error on line %d token 3: expected '+' or '-'", lineNo)
	}

	rhsText, err := c.operandAt(line, 4, lineNo, "expected identifier or number")
	if err != nil {
		return err
	}

	if len(line) > 5 {
		return fmt.Errorf("error on line %d token 5: unexpected token", lineNo)
	}

	c.emit("%s %s\n", mnemonic, rhsText)
	c.emit("STA var_%s\n", name)
	c.vars.Declare(name, 0)
	return nil
}

// emitInput handles "input name".
func (c *Compiler) emitInput(line []token.Token, lineNo int) error {
	if len(line) < 2 {
		return fmt.Errorf("error on line %d: expected identifier", lineNo)
	}

	tok := line[1]
	if tok.Kind != token.Identifier {
		return fmt.Errorf("error on line %d token 1: expected identifier", lineNo)
	}

	c.vars.Declare(tok.Literal, 0)
	c.emit("INP\n")
	c.emit("STA var_%s\n", tok.Literal)

	if len(line) > 2 {
		return fmt.Errorf("error on line %d token 2: unexpected token", lineNo)
	}
	return nil
}

// emitOutput handles "output A [op B]" (also spelled "print").
func (c *Compiler) emitOutput(line []token.Token, lineNo int) error {
	lhsText, err := c.operandAt(line, 1, lineNo, "expected identifier or number")
	if err != nil {
		return err
	}
	c.emit("LDA %s\n", lhsText)

	if len(line) <= 2 {
		c.emit("OUT\n")
		return nil
	}

	var mnemonic string
	switch line[2].Kind {
	case token.Add:
		mnemonic = "ADD"
	case token.Sub:
		mnemonic = "SUB"
	default:
		return fmt.Errorf("error on line %d token 2: expected '+' or '-'", lineNo)
	}

	rhsText, err := c.operandAt(line, 3, lineNo, "expected identifier or number")
	if err != nil {
		return err
	}

	c.emit("%s %s\n", mnemonic, rhsText)
	c.emit("OUT\n")
	return nil
}

// emitCondition emits the shared comparison schema, branching to
// labelTrue or labelFalse depending on the operator at idxOp.
func (c *Compiler) emitCondition(line []token.Token, lineNo, idxLhs, idxOp, idxRhs int, labelTrue, labelFalse string) error {
	const missing = "expected condition formed of two arguments and a comparison operator"

	lhs, err := c.operandAt(line, idxLhs, lineNo, missing)
	if err != nil {
		return err
	}
	rhs, err := c.operandAt(line, idxRhs, lineNo, missing)
	if err != nil {
		return err
	}

	op := line[idxOp]
	if !token.IsCondOp(op.Kind) {
		return fmt.Errorf("error on line %d token %d: expected comparison operator", lineNo, idxOp)
	}

	switch op.Kind {
	case token.Eq:
		c.emit("LDA %s\nSUB %s\nBRZ %s\nBRA %s\n", lhs, rhs, labelTrue, labelFalse)
	case token.Ne:
		c.emit("LDA %s\nSUB %s\nBRZ %s\nBRA %s\n", lhs, rhs, labelFalse, labelTrue)
	case token.Gt:
		c.emit("LDA %s\nSUB %s\nBRP %s\nBRA %s\n", rhs, lhs, labelFalse, labelTrue)
	case token.Lt:
		c.emit("LDA %s\nSUB %s\nBRP %s\nBRA %s\n", lhs, rhs, labelFalse, labelTrue)
	case token.Ge:
		c.emit("LDA %s\nSUB %s\nBRP %s\nBRA %s\n", lhs, rhs, labelTrue, labelFalse)
	case token.Le:
		c.emit("LDA %s\nSUB %s\nBRP %s\nBRA %s\n", rhs, lhs, labelTrue, labelFalse)
	}
	return nil
}

// emitWhile handles "while A cmp B" and the special, fragile
// "while true" form. The body label is intentionally left unwritten on
// the true path: the next logical line's own emitted text picks up
// right after the "while_<line>" header label, exactly as the construct
// this was ported from behaves. Fixing this would change which
// instruction the loop header label attaches to, so it stays.
func (c *Compiler) emitWhile(line []token.Token, lineNo int) error {
	c.emit("while_%d ", lineNo)
	c.scopes.Push(scope.WhileFrame{StartLine: lineNo})

	if len(line) > 1 && line[1].Kind == token.True {
		return nil
	}

	labelTrue := fmt.Sprintf("while_%d_body", lineNo)
	labelFalse := fmt.Sprintf("while_%d_end", lineNo)

	if err := c.emitCondition(line, lineNo, 1, 2, 3, labelTrue, labelFalse); err != nil {
		return err
	}
	c.emit("%s ", labelTrue)
	return nil
}

// emitBreak handles "break", branching out of the nearest enclosing
// while loop regardless of any if-frames nested in between.
func (c *Compiler) emitBreak(line []token.Token, lineNo int) error {
	w, ok := c.scopes.InnermostWhile()
	if !ok {
		return fmt.Errorf("error on line %d: 'break' while not in loop", lineNo)
	}
	c.emit("BRA while_%d_end\n", w.StartLine)
	return nil
}

// emitEndWhile handles "endwhile".
func (c *Compiler) emitEndWhile(line []token.Token, lineNo int) error {
	structuralErr := fmt.Errorf("error on line %d: 'endwhile' found while 'while' loop was not inner most control flow construct", lineNo)

	f, err := c.scopes.Pop()
	if err != nil {
		return structuralErr
	}
	w, ok := f.(scope.WhileFrame)
	if !ok {
		return structuralErr
	}

	c.emit("BRA while_%d\n", w.StartLine)
	c.emit("while_%d_end ", w.StartLine)
	return nil
}

// emitIf handles "if A cmp B".
func (c *Compiler) emitIf(line []token.Token, lineNo int) error {
	c.scopes.Push(scope.IfFrame{IfStartLine: lineNo, ElseStartLine: lineNo, HasElse: false})

	labelTrue := fmt.Sprintf("if_%d_body", lineNo)
	labelFalse := fmt.Sprintf("if_%d_else", lineNo)

	if err := c.emitCondition(line, lineNo, 1, 2, 3, labelTrue, labelFalse); err != nil {
		return err
	}
	c.emit("%s ", labelTrue)
	return nil
}

// emitElse handles both plain "else" and "else if A cmp B".
func (c *Compiler) emitElse(line []token.Token, lineNo int) error {
	f, err := c.scopes.Pop()
	if err != nil {
		return fmt.Errorf("error on line %d: 'else' found while 'if' statement was not inner most control flow construct", lineNo)
	}
	ifFrame, ok := f.(scope.IfFrame)
	if !ok {
		return fmt.Errorf("error on line %d: 'else' found while 'if' statement was not inner most control flow construct", lineNo)
	}

	if len(line) == 1 {
		c.scopes.Push(scope.IfFrame{IfStartLine: ifFrame.IfStartLine, ElseStartLine: lineNo, HasElse: true})
		c.emit("BRA if_%d_end\n", ifFrame.IfStartLine)
		c.emit("if_%d_else ", ifFrame.ElseStartLine)
		return nil
	}

	if line[1].Kind != token.If {
		return fmt.Errorf("error on line %d: expected 'else if' or just 'else'", lineNo)
	}

	c.scopes.Push(scope.IfFrame{IfStartLine: ifFrame.IfStartLine, ElseStartLine: lineNo, HasElse: true})

	c.emit("BRA if_%d_end\n", ifFrame.IfStartLine)
	c.emit("if_%d_else ", ifFrame.ElseStartLine)

	labelTrue := fmt.Sprintf("if_%d_body", lineNo)
	labelFalse := fmt.Sprintf("if_%d_else", lineNo)

	if err := c.emitCondition(line, lineNo, 2, 3, 4, labelTrue, labelFalse); err != nil {
		return err
	}
	c.emit("%s ", labelTrue)
	return nil
}

// emitEndIf handles "endif", fixing the dangling end-label up with a
// no-op ADD const_0 so it has an instruction to attach to.
func (c *Compiler) emitEndIf(line []token.Token, lineNo int) error {
	structuralErr := fmt.Errorf("error on line %d: 'endif' found while 'if' statement was not inner most control flow construct", lineNo)

	f, err := c.scopes.Pop()
	if err != nil {
		return structuralErr
	}
	ifFrame, ok := f.(scope.IfFrame)
	if !ok {
		return structuralErr
	}

	if ifFrame.HasElse {
		c.emit("if_%d_end ADD const_0\n", ifFrame.IfStartLine)
	} else {
		c.emit("if_%d_else ADD const_0\n", ifFrame.IfStartLine)
	}
	return nil
}

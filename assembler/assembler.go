// Package assembler turns the textual LMC assembly our compiler emits
// into a 100-word memory image ready to hand to a Little Man Computer
// simulator. It is a conventional two-pass assembler: the first pass
// walks the source recording each label's address, the second resolves
// every operand against that table and encodes the instruction.
package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahawley/lmcc/instructions"
)

// memSize is the number of words of LMC memory.
const memSize = 100

// maxErrors bounds how many errors a single Assemble call reports
// before giving up, so a badly malformed program doesn't produce an
// unbounded error list.
const maxErrors = 10

// Errors collects every error found while assembling a program.
type Errors []error

func (e Errors) Error() string {
	lines := make([]string, len(e))
	for i, err := range e {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// pending is an instruction whose operand hasn't been resolved yet.
type pending struct {
	addr    int
	line    int
	op      instructions.Opcode
	operand string // label name, or a literal for DAT
}

// Assemble assembles LMC assembly source into a memory image. On
// success every referenced label has been resolved to its address and
// every instruction has been encoded into its numeric form.
func Assemble(src string) ([memSize]int, error) {
	var image [memSize]int
	var errs Errors

	labels := make(map[string]int)
	var work []pending
	addr := 0

	for lineNo, raw := range strings.Split(src, "\n") {
		if len(errs) >= maxErrors {
			break
		}

		line := raw
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if addr >= memSize {
			errs = append(errs, fmt.Errorf("line %d: program exceeds %d words of memory", lineNo, memSize))
			break
		}

		if _, ok := instructions.Lookup(fields[0]); !ok {
			label := fields[0]
			if _, dup := labels[label]; dup {
				errs = append(errs, fmt.Errorf("line %d: label %q redefined", lineNo, label))
				continue
			}
			labels[label] = addr
			fields = fields[1:]
		}

		if len(fields) == 0 {
			errs = append(errs, fmt.Errorf("line %d: label with no instruction", lineNo))
			continue
		}

		op, ok := instructions.Lookup(fields[0])
		if !ok {
			errs = append(errs, fmt.Errorf("line %d: unknown mnemonic %q", lineNo, fields[0]))
			continue
		}

		var operand string
		switch {
		case op.TakesOperand():
			if len(fields) < 2 {
				errs = append(errs, fmt.Errorf("line %d: %s requires an operand", lineNo, fields[0]))
				continue
			}
			operand = fields[1]
		case op == instructions.Dat:
			if len(fields) > 1 {
				operand = fields[1]
			}
		default:
			if len(fields) > 1 {
				errs = append(errs, fmt.Errorf("line %d: %s takes no operand", lineNo, fields[0]))
				continue
			}
		}

		work = append(work, pending{addr: addr, line: lineNo, op: op, operand: operand})
		addr++
	}

	for _, w := range work {
		if len(errs) >= maxErrors {
			break
		}

		var value int
		if w.operand != "" {
			if n, err := strconv.Atoi(w.operand); err == nil {
				value = n
			} else if w.op == instructions.Dat {
				errs = append(errs, fmt.Errorf("line %d: DAT requires a literal integer, got %q", w.line, w.operand))
				continue
			} else {
				resolved, ok := labels[w.operand]
				if !ok {
					errs = append(errs, fmt.Errorf("line %d: undefined label %q", w.line, w.operand))
					continue
				}
				value = resolved
			}
		}

		word, err := w.op.Encode(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %s", w.line, err))
			continue
		}
		image[w.addr] = word
	}

	if len(errs) > 0 {
		return [memSize]int{}, errs
	}
	return image, nil
}

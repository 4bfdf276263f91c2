// Package instructions describes the LMC opcode alphabet and how each
// mnemonic encodes into the three-digit numeric word the machine
// actually stores in memory.
//
// The compiler itself only ever emits the textual mnemonics; this
// package exists for the second-stage assembler (see the assembler
// package), which needs the numeric encoding to produce a memory image.
package instructions

import "fmt"

// Opcode holds the mnemonic of a single LMC instruction.
type Opcode byte

const (
	// Add is used to add the value at the given address to the
	// accumulator.
	Add Opcode = 'a'

	// Sub is used to subtract the value at the given address from the
	// accumulator.
	Sub Opcode = 's'

	// Sta stores the accumulator at the given address.
	Sta Opcode = 'S'

	// Lda loads the accumulator from the given address.
	Lda Opcode = 'l'

	// Bra branches unconditionally to the given address.
	Bra Opcode = 'b'

	// Brz branches to the given address if the accumulator is zero.
	Brz Opcode = 'z'

	// Brp branches to the given address if the accumulator is
	// non-negative.
	Brp Opcode = 'p'

	// Inp reads a value from the input stream into the accumulator.
	Inp Opcode = 'i'

	// Out writes the accumulator to the output stream.
	Out Opcode = 'o'

	// Hlt halts execution.
	Hlt Opcode = 'h'

	// Dat reserves a cell, optionally initialized to a literal value.
	Dat Opcode = 'd'
)

// mnemonics maps the textual mnemonic the compiler/assembler source
// uses onto its Opcode.
var mnemonics = map[string]Opcode{
	"ADD": Add,
	"SUB": Sub,
	"STA": Sta,
	"LDA": Lda,
	"BRA": Bra,
	"BRZ": Brz,
	"BRP": Brp,
	"INP": Inp,
	"OUT": Out,
	"HLT": Hlt,
	"DAT": Dat,
}

// Lookup returns the Opcode for a mnemonic, and whether it was found.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonics[mnemonic]
	return op, ok
}

// TakesOperand reports whether an instruction of this opcode consumes
// an address/label operand. DAT optionally takes a literal operand,
// which is handled separately by the assembler.
func (o Opcode) TakesOperand() bool {
	switch o {
	case Add, Sub, Sta, Lda, Bra, Brz, Brp:
		return true
	}
	return false
}

// Encode returns the three-digit LMC machine word for this opcode given
// an already-resolved address/literal operand.
func (o Opcode) Encode(operand int) (int, error) {
	switch o {
	case Add:
		return 100 + operand, nil
	case Sub:
		return 200 + operand, nil
	case Sta:
		return 300 + operand, nil
	case Lda:
		return 500 + operand, nil
	case Bra:
		return 600 + operand, nil
	case Brz:
		return 700 + operand, nil
	case Brp:
		return 800 + operand, nil
	case Inp:
		return 901, nil
	case Out:
		return 902, nil
	case Hlt:
		return 0, nil
	case Dat:
		return operand, nil
	default:
		return 0, fmt.Errorf("unknown opcode %q", byte(o))
	}
}

package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Disassembler renders a Program's compiled functions as human-readable
// text for a variable-width byte stream: each instruction's operand width
// is looked up by opcode (operandWidth) rather than unpacked from a
// fixed-size word.
type Disassembler struct {
	writer io.Writer
	prog   *Program
}

func NewDisassembler(prog *Program, writer io.Writer) *Disassembler {
	return &Disassembler{writer: writer, prog: prog}
}

// Disassemble prints every function in the program in compiled order.
func (d *Disassembler) Disassemble() {
	for _, fn := range d.prog.Functions {
		d.disassembleFunction(fn)
	}
	if len(d.prog.Strings) > 0 {
		fmt.Fprintf(d.writer, "== strings ==\n")
		for i, s := range d.prog.Strings {
			fmt.Fprintf(d.writer, "  [%04d] %q\n", i, s)
		}
	}
}

func (d *Disassembler) disassembleFunction(fn *Function) {
	fmt.Fprintf(d.writer, "== %s ==\n", fn.Name)
	offset := 0
	for instr := 0; offset < len(fn.Code); instr++ {
		offset = d.disassembleInstruction(fn, offset, instr)
	}
	fmt.Fprintln(d.writer)
}

// disassembleInstruction prints the instruction at offset (the instr-th
// instruction of fn, which indexes fn.Lines) and returns the offset of the
// instruction following it.
func (d *Disassembler) disassembleInstruction(fn *Function, offset, instr int) int {
	op := OpCode(fn.Code[offset])
	width := operandWidth(op)
	operand := fn.Code[offset+1 : offset+1+width]
	line := fn.Lines[instr]

	fmt.Fprintf(d.writer, "%04d %4d %-16s", offset, line, op.String())
	switch op {
	case OpJump, OpJumpIfFalse:
		rel := int16(binary.LittleEndian.Uint16(operand))
		target := offset + 3 + int(rel)
		fmt.Fprintf(d.writer, " %d -> %04d", rel, target)
	case OpStackAlloc, OpStackFree:
		n := binary.LittleEndian.Uint64(pad8(operand))
		fmt.Fprintf(d.writer, " %d", n)
	case OpCall:
		idx := binary.LittleEndian.Uint16(operand)
		fmt.Fprintf(d.writer, " func=%d", idx)
	case OpLoadImmediate8:
		fmt.Fprintf(d.writer, " %d", operand[0])
	case OpLoadImmediate16:
		fmt.Fprintf(d.writer, " %d", binary.LittleEndian.Uint16(operand))
	case OpLoadImmediate32:
		fmt.Fprintf(d.writer, " %d", binary.LittleEndian.Uint32(operand))
	case OpLoadImmediate64:
		fmt.Fprintf(d.writer, " %d", binary.LittleEndian.Uint64(operand))
	}
	fmt.Fprintln(d.writer)
	return offset + 1 + width
}

func pad8(b []byte) []byte {
	if len(b) >= 8 {
		return b
	}
	var out [8]byte
	copy(out[:], b)
	return out[:]
}

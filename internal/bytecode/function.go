package bytecode

import "encoding/binary"

// Function is one compiled function's code: a byte stream plus a parallel
// per-instruction-start source-offset table for runtime diagnostics.
// Lines holds source byte offsets (token.Span.Start), not resolved line
// numbers; a consumer maps them through internal/lexer.LineIndex when it
// needs line:column form.
type Function struct {
	Name  string
	Code  []byte
	Lines []int
}

func newFunction(name string) *Function {
	return &Function{Name: name}
}

// emitOp appends a zero-operand opcode, recording line as that
// instruction's source line.
func (f *Function) emitOp(op OpCode, line int) int {
	idx := len(f.Code)
	f.Code = append(f.Code, byte(op))
	f.Lines = append(f.Lines, line)
	return idx
}

// emit appends op followed by operand bytes verbatim, recording line once
// for the whole instruction (the Lines table tracks instruction starts, not
// individual operand bytes).
func (f *Function) emit(op OpCode, operand []byte, line int) int {
	idx := len(f.Code)
	f.Code = append(f.Code, byte(op))
	f.Code = append(f.Code, operand...)
	f.Lines = append(f.Lines, line)
	return idx
}

func (f *Function) emitJump(op OpCode, line int) int {
	idx := len(f.Code)
	f.Code = append(f.Code, byte(op), 0, 0) // placeholder signed 16-bit offset
	f.Lines = append(f.Lines, line)
	return idx
}

func (f *Function) emitImmediate(width int, bits uint64, line int) {
	switch width {
	case 1:
		f.emit(OpLoadImmediate8, []byte{byte(bits)}, line)
	case 2:
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(bits))
		f.emit(OpLoadImmediate16, b[:], line)
	case 4:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(bits))
		f.emit(OpLoadImmediate32, b[:], line)
	default:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], bits)
		f.emit(OpLoadImmediate64, b[:], line)
	}
}

// emitStackOp appends OpStackAlloc/OpStackFree followed by its pointer-sized
// byte-count operand.
func (f *Function) emitStackOp(op OpCode, n int, line int) {
	var b [PointerWidth]byte
	binary.LittleEndian.PutUint64(b[:], uint64(n))
	f.emit(op, b[:], line)
}

// backpatch overwrites the signed 16-bit relative-offset field of a
// previously emitted OpJump/OpJumpIfFalse at byteIndex (the index of the
// opcode byte itself) so it lands on target, generalized directly from the
// teacher's compiler_core.go: patchJumpToTarget, adapted to a byte-stream
// rather than a fixed 32-bit instruction word. The offset is relative to
// the instruction following the two-byte offset field.
func (f *Function) backpatch(byteIndex, target int) {
	offsetFrom := byteIndex + 3 // opcode byte + 2-byte offset field
	offset := target - offsetFrom
	if offset > 32767 || offset < -32768 {
		panic("internal compiler error: jump offset overflows signed 16 bits")
	}
	binary.LittleEndian.PutUint16(f.Code[byteIndex+1:byteIndex+3], uint16(int16(offset)))
}

// here returns the index the next emitted instruction will occupy,
// equivalently the backpatch target for a jump meant to land "after" the
// code emitted so far.
func (f *Function) here() int { return len(f.Code) }

// Package isa defines the LC-2K instruction set: opcode numbering,
// instruction formats, and the 32-bit field layout. It is the single
// source of truth shared by the assembler and the simulator, so the
// two halves of the toolchain cannot drift apart.
//
// A machine word is 32 bits, stored and printed as an unsigned
// decimal value. The machine has 8 registers and 65536 words of
// memory; register 0 reads as zero after every executed step.
package isa

// Machine geometry and execution bounds.
const (
	NUM_REGS   = 8         // register file size
	MEM_SIZE   = 1 << 16   // memory size in words
	STEP_LIMIT = 1_000_000 // default execution bound
	MASK_32    = 0xFFFFFFFF
)

// Opcode is the 3-bit operation code of an instruction word.
type Opcode uint32

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD  = Opcode(0) // add
	OP_NAND = Opcode(1) // nand
	OP_LW   = Opcode(2) // lw
	OP_SW   = Opcode(3) // sw
	OP_BEQ  = Opcode(4) // beq
	OP_JALR = Opcode(5) // jalr
	OP_HALT = Opcode(6) // halt
	OP_NOOP = Opcode(7) // noop
)

// Format is an instruction field layout.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_J = Format(2) // J
	FORMAT_O = Format(3) // O
)

// Field layout of a 32-bit instruction word. The destination
// register of an R-format instruction sits in bits 0-2, not at a
// 16-bit shift like regA/regB; both halves of the toolchain depend
// on that asymmetry.
const (
	SHIFT_OPCODE = 22
	SHIFT_REGA   = 19
	SHIFT_REGB   = 16
	MASK_REG     = 0x7
	MASK_IMM     = 0xFFFF
)

var opcodes = map[string]Opcode{
	"add":  OP_ADD,
	"nand": OP_NAND,
	"lw":   OP_LW,
	"sw":   OP_SW,
	"beq":  OP_BEQ,
	"jalr": OP_JALR,
	"halt": OP_HALT,
	"noop": OP_NOOP,
}

// Lookup maps a mnemonic to its opcode.
func Lookup(mnemonic string) (op Opcode, ok bool) {
	op, ok = opcodes[mnemonic]
	return
}

// IsMnemonic reports whether a token names an instruction.
func IsMnemonic(tok string) bool {
	_, ok := opcodes[tok]
	return ok
}

// Format returns the field layout for the opcode.
func (op Opcode) Format() Format {
	switch op {
	case OP_ADD, OP_NAND:
		return FORMAT_R
	case OP_LW, OP_SW, OP_BEQ:
		return FORMAT_I
	case OP_JALR:
		return FORMAT_J
	case OP_HALT, OP_NOOP:
		return FORMAT_O
	}

	panic("opcode out of range")
}

// MakeR packs an R-format instruction (add, nand).
func MakeR(op Opcode, regA, regB, dest uint32) uint32 {
	return uint32(op)<<SHIFT_OPCODE | regA<<SHIFT_REGA | regB<<SHIFT_REGB | (dest & MASK_REG)
}

// MakeI packs an I-format instruction (lw, sw, beq). The offset is a
// signed 16-bit value truncated into the low 16 bits.
func MakeI(op Opcode, regA, regB uint32, offset int32) uint32 {
	return uint32(op)<<SHIFT_OPCODE | regA<<SHIFT_REGA | regB<<SHIFT_REGB | (uint32(offset) & MASK_IMM)
}

// MakeJ packs a J-format instruction (jalr). The low 16 bits are zero.
func MakeJ(op Opcode, regA, regB uint32) uint32 {
	return uint32(op)<<SHIFT_OPCODE | regA<<SHIFT_REGA | regB<<SHIFT_REGB
}

// MakeO packs an O-format instruction (halt, noop).
func MakeO(op Opcode) uint32 {
	return uint32(op) << SHIFT_OPCODE
}

// Fields is the decoded view of an instruction word. Dest is only
// meaningful for R-format words, Imm only for I-format words.
type Fields struct {
	Op   Opcode
	RegA uint32
	RegB uint32
	Dest uint32
	Imm  uint16
}

// Decode splits a machine word into its instruction fields.
func Decode(word uint32) Fields {
	return Fields{
		Op:   Opcode((word >> SHIFT_OPCODE) & MASK_REG),
		RegA: (word >> SHIFT_REGA) & MASK_REG,
		RegB: (word >> SHIFT_REGB) & MASK_REG,
		Dest: word & MASK_REG,
		Imm:  uint16(word & MASK_IMM),
	}
}

// Offset returns the 16-bit immediate field sign-extended.
func (fl Fields) Offset() int32 {
	return Sext16(fl.Imm)
}

// Sext16 sign-extends a 16-bit field to 32 bits.
func Sext16(v uint16) int32 {
	return int32(int16(v))
}

package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeR(t *testing.T) {
	assert := assert.New(t)

	// The destination register lands in bits 0-2, unshifted.
	assert.Equal(uint32(1), MakeR(OP_ADD, 0, 0, 1))
	assert.Equal(uint32(0<<22|1<<19|2<<16|3), MakeR(OP_ADD, 1, 2, 3))
	assert.Equal(uint32(1<<22|7<<19|7<<16|7), MakeR(OP_NAND, 7, 7, 7))
}

func TestMakeI(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(2<<22|0<<19|1<<16|2), MakeI(OP_LW, 0, 1, 2))
	assert.Equal(uint32(4<<22|0xFFFF), MakeI(OP_BEQ, 0, 0, -1))
	assert.Equal(uint32(3<<22|5<<19|6<<16|0x8000), MakeI(OP_SW, 5, 6, -32768))
	assert.Equal(uint32(2<<22|0x7FFF), MakeI(OP_LW, 0, 0, 32767))
}

func TestMakeJO(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(5<<22|1<<19|2<<16), MakeJ(OP_JALR, 1, 2))
	assert.Equal(uint32(25165824), MakeO(OP_HALT))
	assert.Equal(uint32(7<<22), MakeO(OP_NOOP))
}

// Decoding a packed word must recover the exact field values used at
// encode time, for every format.
func TestDecodeInverse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		word uint32
	}){
		{"add", MakeR(OP_ADD, 1, 2, 3)},
		{"nand", MakeR(OP_NAND, 7, 0, 5)},
		{"lw", MakeI(OP_LW, 0, 1, 2)},
		{"sw", MakeI(OP_SW, 3, 4, -5)},
		{"beq", MakeI(OP_BEQ, 0, 0, -1)},
		{"beq_max", MakeI(OP_BEQ, 6, 5, 32767)},
		{"jalr", MakeJ(OP_JALR, 1, 2)},
		{"halt", MakeO(OP_HALT)},
		{"noop", MakeO(OP_NOOP)},
	}

	for _, entry := range table {
		fl := Decode(entry.word)

		var again uint32
		switch fl.Op.Format() {
		case FORMAT_R:
			again = MakeR(fl.Op, fl.RegA, fl.RegB, fl.Dest)
		case FORMAT_I:
			again = MakeI(fl.Op, fl.RegA, fl.RegB, fl.Offset())
		case FORMAT_J:
			again = MakeJ(fl.Op, fl.RegA, fl.RegB)
		case FORMAT_O:
			again = MakeO(fl.Op)
		}

		assert.Equal(entry.word, again, entry.name)
	}
}

func TestSext16(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(int32(0), Sext16(0))
	assert.Equal(int32(32767), Sext16(0x7FFF))
	assert.Equal(int32(-32768), Sext16(0x8000))
	assert.Equal(int32(-1), Sext16(0xFFFF))
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	for name, want := range map[string]Opcode{
		"add": OP_ADD, "nand": OP_NAND, "lw": OP_LW, "sw": OP_SW,
		"beq": OP_BEQ, "jalr": OP_JALR, "halt": OP_HALT, "noop": OP_NOOP,
	} {
		op, ok := Lookup(name)
		assert.True(ok, name)
		assert.Equal(want, op, name)
		assert.Equal(name, op.String())
	}

	_, ok := Lookup("mov")
	assert.False(ok)
	assert.False(IsMnemonic(".fill"))
}

func TestOpcodeFormat(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(FORMAT_R, OP_ADD.Format())
	assert.Equal(FORMAT_R, OP_NAND.Format())
	assert.Equal(FORMAT_I, OP_LW.Format())
	assert.Equal(FORMAT_I, OP_SW.Format())
	assert.Equal(FORMAT_I, OP_BEQ.Format())
	assert.Equal(FORMAT_J, OP_JALR.Format())
	assert.Equal(FORMAT_O, OP_HALT.Format())
	assert.Equal(FORMAT_O, OP_NOOP.Format())
}

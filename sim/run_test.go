package sim_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/archsim/lc2k/asm"
	"github.com/archsim/lc2k/isa"
	"github.com/archsim/lc2k/sim"
)

// Assemble a countdown program, push it through the machine-code
// text format, and execute it to completion.
func TestAssembleAndRun(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"	lw   0 1 five",
		"	lw   0 2 neg1",
		"loop	add  1 2 1",
		"	beq  0 1 done",
		"	beq  0 0 loop",
		"done	halt",
		"five	.fill 5",
		"neg1	.fill -1",
	}, "\n")

	a := &asm.Assembler{}
	prog, err := a.Assemble(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(8, len(prog.Words))

	// Through the text codec, as the simulator would load it.
	loaded, err := isa.ReadProgram(bytes.NewReader(prog.Encode()))
	assert.NoError(err)
	assert.Equal(prog.Words, loaded.Words)

	m, err := sim.NewMachine(loaded)
	assert.NoError(err)

	trace := &bytes.Buffer{}
	m.Trace = trace

	outcome, err := m.Run()
	assert.NoError(err)
	assert.Equal(sim.HALTED, outcome)

	assert.Equal(uint32(0), m.Reg[1])
	assert.Equal(uint32(0xFFFFFFFF), m.Reg[2])
	assert.Equal(16, m.Steps)
	assert.Contains(trace.String(), "machine halted\n")
	assert.Contains(trace.String(), "instructions executed: 16\n")
	assert.Contains(trace.String(), "mem[6] = 5\n")
}

// Executing an assembled program decodes the same field values the
// encoder packed, for every instruction it runs.
func TestEncodeDecodeAgree(t *testing.T) {
	assert := assert.New(t)

	a := &asm.Assembler{}
	prog, err := a.Assemble(strings.NewReader(strings.Join([]string{
		"add 1 2 3",
		"nand 4 5 6",
		"lw 0 1 7",
		"sw 2 3 -8",
		"beq 4 4 100",
		"jalr 6 7",
		"noop",
		"halt",
	}, "\n")))
	assert.NoError(err)

	want := []isa.Fields{
		{Op: isa.OP_ADD, RegA: 1, RegB: 2, Dest: 3, Imm: 3},
		{Op: isa.OP_NAND, RegA: 4, RegB: 5, Dest: 6, Imm: 6},
		{Op: isa.OP_LW, RegA: 0, RegB: 1, Imm: 7, Dest: 7},
		{Op: isa.OP_SW, RegA: 2, RegB: 3, Imm: 0xFFF8, Dest: 0},
		{Op: isa.OP_BEQ, RegA: 4, RegB: 4, Imm: 100, Dest: 4},
		{Op: isa.OP_JALR, RegA: 6, RegB: 7},
		{Op: isa.OP_NOOP},
		{Op: isa.OP_HALT},
	}

	for n, word := range prog.Words {
		assert.Equal(want[n], isa.Decode(word), "word %d", n)
	}
}

// A self-branch never halts; the step limit is the only way out.
func TestInfiniteLoopAborts(t *testing.T) {
	assert := assert.New(t)

	a := &asm.Assembler{}
	prog, err := a.Assemble(strings.NewReader("loop beq 0 0 loop"))
	assert.NoError(err)
	assert.Equal([]uint32{4<<22 | 0xFFFF}, prog.Words)

	m, err := sim.NewMachine(prog)
	assert.NoError(err)
	m.Limit = 100

	outcome, err := m.Run()
	assert.NoError(err)
	assert.Equal(sim.ABORTED, outcome)
}

// Package sim implements the LC-2K simulator: a deterministic
// fetch-decode-execute loop over a register/memory machine, bounded
// by a step limit.
//
// Every executed step emits one trace line to the machine's Trace
// writer before dispatch; halting additionally emits a summary with
// the executed-instruction count, a register dump, and every nonzero
// memory cell. Routing the trace (file only, file plus console) is
// the caller's business.
package sim

import (
	"fmt"
	"io"
	"strings"

	"github.com/archsim/lc2k/isa"
)

// Outcome is the tagged result of one executed step. The run loop
// inspects it after every step; there is no other way out of a run.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	CONTINUE = Outcome(0) // continue
	HALTED   = Outcome(1) // halted
	ABORTED  = Outcome(2) // aborted
)

// Machine is the complete mutable state of one simulated run.
// Register 0 is hardwired: whatever a step writes there is discarded
// when the step completes.
type Machine struct {
	Reg   [isa.NUM_REGS]uint32
	Mem   []uint32 // isa.MEM_SIZE words
	Pc    uint32
	Steps int

	Limit int       // step bound; NewMachine defaults it to isa.STEP_LIMIT
	Trace io.Writer // per-step trace sink; NewMachine defaults it to io.Discard
}

// NewMachine loads a program image into a fresh machine: words at
// addresses 0..N-1, zeroes beyond, all registers and counters zero.
// A program longer than memory is rejected before any execution.
func NewMachine(prog *isa.Program) (m *Machine, err error) {
	if len(prog.Words) > isa.MEM_SIZE {
		return nil, ErrProgramTooLarge(len(prog.Words))
	}

	m = &Machine{
		Mem:   make([]uint32, isa.MEM_SIZE),
		Limit: isa.STEP_LIMIT,
		Trace: io.Discard,
	}
	copy(m.Mem, prog.Words)

	return
}

// Run steps the machine until it halts or exceeds the step limit.
// The returned error is only ever a trace-sink write failure.
func (m *Machine) Run() (outcome Outcome, err error) {
	for {
		outcome, err = m.Step()
		if err != nil || outcome != CONTINUE {
			return
		}
	}
}

// Step executes a single instruction: trace, dispatch, hardwire
// register 0 back to zero, count the step against the limit.
func (m *Machine) Step() (Outcome, error) {
	fl := isa.Decode(m.Mem[m.Pc])

	if err := m.dump(); err != nil {
		return CONTINUE, err
	}

	next := (m.Pc + 1) % isa.MEM_SIZE

	switch fl.Op {
	case isa.OP_ADD:
		m.Reg[fl.Dest] = m.Reg[fl.RegA] + m.Reg[fl.RegB]
		m.Pc = next
	case isa.OP_NAND:
		m.Reg[fl.Dest] = ^(m.Reg[fl.RegA] & m.Reg[fl.RegB])
		m.Pc = next
	case isa.OP_LW:
		m.Reg[fl.RegB] = m.Mem[m.address(fl)]
		m.Pc = next
	case isa.OP_SW:
		m.Mem[m.address(fl)] = m.Reg[fl.RegB]
		m.Pc = next
	case isa.OP_BEQ:
		if m.Reg[fl.RegA] == m.Reg[fl.RegB] {
			m.Pc = uint32(int64(m.Pc)+1+int64(fl.Offset())) % isa.MEM_SIZE
		} else {
			m.Pc = next
		}
	case isa.OP_JALR:
		// Link before jump: jalr with regA == regB targets pc+1.
		m.Reg[fl.RegB] = m.Pc + 1
		m.Pc = m.Reg[fl.RegA] % isa.MEM_SIZE
	case isa.OP_HALT:
		return HALTED, m.haltReport()
	case isa.OP_NOOP:
		m.Pc = next
	}

	m.Reg[0] = 0
	m.Steps++
	if m.Steps > m.Limit {
		return ABORTED, m.emit("step limit %d exceeded", m.Limit)
	}

	return CONTINUE, nil
}

// address computes an lw/sw target, wrapping modulo memory size.
func (m *Machine) address(fl isa.Fields) uint32 {
	return (m.Reg[fl.RegA] + uint32(fl.Offset())) % isa.MEM_SIZE
}

// haltReport emits the halt notice. The instruction count reflects
// the steps completed before the halt itself.
func (m *Machine) haltReport() (err error) {
	if err = m.emit("machine halted"); err != nil {
		return
	}
	if err = m.emit("instructions executed: %d", m.Steps); err != nil {
		return
	}
	if err = m.dump(); err != nil {
		return
	}
	if err = m.emit("--- memory state ---"); err != nil {
		return
	}
	for addr, val := range m.Mem {
		if val == 0 {
			continue
		}
		if err = m.emit("mem[%d] = %d", addr, val); err != nil {
			return
		}
	}

	return
}

// dump emits the per-step trace line.
func (m *Machine) dump() error {
	regs := make([]string, 0, len(m.Reg))
	for i, r := range m.Reg {
		regs = append(regs, fmt.Sprintf("r%d:%d", i, r))
	}

	return m.emit("pc:%d  %s", m.Pc, strings.Join(regs, " "))
}

func (m *Machine) emit(format string, args ...any) error {
	_, err := fmt.Fprintf(m.Trace, format+"\n", args...)
	return err
}

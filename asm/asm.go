// Package asm implements the two-pass LC-2K assembler: a line
// parser, a positional symbol table, and an instruction encoder that
// packs each source line into one 32-bit machine word.
package asm

import (
	"bufio"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/k0kubun/pp/v3"

	"github.com/archsim/lc2k/isa"
)

// fillDirective emits a raw data word instead of an instruction.
const fillDirective = ".fill"

var (
	// A label is a letter followed by up to five alphanumerics.
	labelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,5}$`)
	// A literal operand is a signed decimal integer.
	literalRe = regexp.MustCompile(`^-?[0-9]+$`)
)

// SourceLine is one non-blank, non-comment input line, immutable
// after parse.
type SourceLine struct {
	LineNo   int    // 1-based, for diagnostics
	Label    string // optional
	Mnemonic string
	Operands []string
	Raw      string // original text, kept for error reports
}

// Assembler holds the state of a single assembly: the parsed line
// records and the label addresses collected in pass one.
type Assembler struct {
	Verbose bool // If set, logs each parsed line and dumps the symbol table.

	Lines   []SourceLine
	Symbols map[string]int
}

// Assemble runs both passes over the source text and returns the
// machine-word image. Any error aborts the assembly before a program
// is produced, and reports the 1-based source line with its text.
func (a *Assembler) Assemble(input io.Reader) (prog *isa.Program, err error) {
	err = a.parse(input)
	if err != nil {
		return
	}

	err = a.buildSymbols()
	if err != nil {
		return
	}

	if a.Verbose {
		pp.Fprintf(os.Stderr, "symbols %v\n", a.Symbols)
	}

	words, err := a.encode()
	if err != nil {
		return
	}

	prog = &isa.Program{Words: words}

	return
}

// parse splits the source into SourceLine records. Everything from
// the first '#' to end of line is a comment; blank lines are
// dropped. The leading token is a label only when it matches the
// label grammar and is not a mnemonic or the .fill keyword.
func (a *Assembler) parse(input io.Reader) (err error) {
	a.Lines = a.Lines[:0]

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		raw := scanner.Text()

		if a.Verbose {
			log.Printf("%v: %v", lineno, raw)
		}

		code, _, _ := strings.Cut(raw, "#")
		tokens := strings.Fields(code)
		if len(tokens) == 0 {
			continue
		}

		line := SourceLine{LineNo: lineno, Raw: raw}
		if labelRe.MatchString(tokens[0]) && !isa.IsMnemonic(tokens[0]) && tokens[0] != fillDirective {
			line.Label = tokens[0]
			tokens = tokens[1:]
		}

		if len(tokens) == 0 {
			return &ErrSyntax{LineNo: lineno, Line: raw, Err: ErrMissingOpcode}
		}

		line.Mnemonic = tokens[0]
		line.Operands = tokens[1:]
		a.Lines = append(a.Lines, line)
	}

	return scanner.Err()
}

// buildSymbols assigns each line its zero-based address and records
// label definitions. Every line, instruction or .fill, occupies
// exactly one word, so the address is the positional index; that is
// what lets pass two resolve forward references.
func (a *Assembler) buildSymbols() error {
	a.Symbols = make(map[string]int, len(a.Lines))

	for addr, line := range a.Lines {
		if line.Label == "" {
			continue
		}

		if _, ok := a.Symbols[line.Label]; ok {
			return &ErrSyntax{LineNo: line.LineNo, Line: line.Raw, Err: ErrDuplicateLabel(line.Label)}
		}

		a.Symbols[line.Label] = addr
	}

	return nil
}

// encode is pass two: a pure function of the parsed lines and the
// completed symbol table, producing one masked 32-bit word per line
// in program order.
func (a *Assembler) encode() (words []uint32, err error) {
	words = make([]uint32, 0, len(a.Lines))

	for addr, line := range a.Lines {
		var word uint32
		word, err = a.encodeLine(addr, line)
		if err != nil {
			return nil, &ErrSyntax{LineNo: line.LineNo, Line: line.Raw, Err: err}
		}

		words = append(words, word)
	}

	return
}

func (a *Assembler) encodeLine(addr int, line SourceLine) (word uint32, err error) {
	if line.Mnemonic == fillDirective {
		if err = checkArgc(line, 1); err != nil {
			return
		}
		var value int64
		value, err = a.resolveValue(line.Operands[0], true)
		if err != nil {
			return
		}
		// Raw resolved value, two's-complement truncated; no packing.
		return uint32(value), nil
	}

	op, ok := isa.Lookup(line.Mnemonic)
	if !ok {
		return 0, ErrUnknownOpcode(line.Mnemonic)
	}

	switch op {
	case isa.OP_ADD, isa.OP_NAND:
		if err = checkArgc(line, 3); err != nil {
			return
		}
		var regA, regB, dest uint32
		if regA, err = parseReg(line.Operands[0]); err != nil {
			return
		}
		if regB, err = parseReg(line.Operands[1]); err != nil {
			return
		}
		if dest, err = parseReg(line.Operands[2]); err != nil {
			return
		}
		return isa.MakeR(op, regA, regB, dest), nil

	case isa.OP_LW, isa.OP_SW:
		if err = checkArgc(line, 3); err != nil {
			return
		}
		var regA, regB uint32
		if regA, err = parseReg(line.Operands[0]); err != nil {
			return
		}
		if regB, err = parseReg(line.Operands[1]); err != nil {
			return
		}
		// A label offset is the label's absolute address, not a
		// displacement.
		var offset int64
		if offset, err = a.resolveValue(line.Operands[2], true); err != nil {
			return
		}
		if err = checkOffset(offset); err != nil {
			return
		}
		return isa.MakeI(op, regA, regB, int32(offset)), nil

	case isa.OP_BEQ:
		if err = checkArgc(line, 3); err != nil {
			return
		}
		var regA, regB uint32
		if regA, err = parseReg(line.Operands[0]); err != nil {
			return
		}
		if regB, err = parseReg(line.Operands[1]); err != nil {
			return
		}
		// A known label encodes PC-relative to the address after
		// this instruction; anything else must be a literal offset.
		var offset int64
		if target, ok := a.Symbols[line.Operands[2]]; ok {
			offset = int64(target - (addr + 1))
		} else if offset, err = a.resolveValue(line.Operands[2], false); err != nil {
			return
		}
		if err = checkOffset(offset); err != nil {
			return
		}
		return isa.MakeI(op, regA, regB, int32(offset)), nil

	case isa.OP_JALR:
		if err = checkArgc(line, 2); err != nil {
			return
		}
		var regA, regB uint32
		if regA, err = parseReg(line.Operands[0]); err != nil {
			return
		}
		if regB, err = parseReg(line.Operands[1]); err != nil {
			return
		}
		return isa.MakeJ(op, regA, regB), nil

	case isa.OP_HALT, isa.OP_NOOP:
		if err = checkArgc(line, 0); err != nil {
			return
		}
		return isa.MakeO(op), nil
	}

	panic("opcode out of range")
}

// resolveValue returns the integer value of an operand token: a
// literal decimal, or a label's address when allowLabel is set.
// Arithmetic expressions are not a supported operand form.
func (a *Assembler) resolveValue(tok string, allowLabel bool) (int64, error) {
	if literalRe.MatchString(tok) {
		return strconv.ParseInt(tok, 10, 64)
	}

	if allowLabel {
		if addr, ok := a.Symbols[tok]; ok {
			return int64(addr), nil
		}
	}

	return 0, ErrUndefinedSymbol(tok)
}

func checkArgc(line SourceLine, want int) error {
	if len(line.Operands) != want {
		return &ErrArgumentCount{Mnemonic: line.Mnemonic, Want: want, Got: len(line.Operands)}
	}

	return nil
}

func parseReg(tok string) (uint32, error) {
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil || n >= isa.NUM_REGS {
		return 0, ErrInvalidRegister(tok)
	}

	return uint32(n), nil
}

func checkOffset(v int64) error {
	if v < -0x8000 || v > 0x7FFF {
		return ErrOffsetRange(v)
	}

	return nil
}
